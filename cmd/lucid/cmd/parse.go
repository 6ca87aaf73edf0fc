package cmd

import (
	"fmt"
	"os"

	"github.com/lucidlang/lucid/internal/ast"
	"github.com/lucidlang/lucid/internal/lexer"
	"github.com/lucidlang/lucid/internal/parser"
	"github.com/lucidlang/lucid/internal/pkgbuilder"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse one file into a Package and print its declarations",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	file := args[0]
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}

	l := lexer.New(string(content), lexer.WithFile(file))
	p := parser.New(l, file)
	b := pkgbuilder.NewBuilder()

	for {
		node, ok := p.Next()
		if node != nil && node.Kind == ast.KindError {
			return fmt.Errorf("%s", node.Error.Message)
		}
		if !ok {
			break
		}
		if err := b.Add(node); err != nil {
			return err
		}
	}

	pkg := b.Package()
	fmt.Printf("package %s\n", pkg.Name)
	for key := range pkg.Imports {
		fmt.Printf("  import %s -> %s\n", key, pkg.Imports[key])
	}
	for name := range pkg.Types {
		fmt.Printf("  type %s\n", name)
	}
	for key := range pkg.Methods {
		fmt.Printf("  method %s\n", key)
	}
	return nil
}
