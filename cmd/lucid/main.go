// Command lucid is the ambient CLI surface around the core toolchain: file
// discovery, flag parsing, and config loading all live here, deliberately
// outside the core packages per spec.md §1's non-goals.
package main

import (
	"fmt"
	"os"

	"github.com/lucidlang/lucid/cmd/lucid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
