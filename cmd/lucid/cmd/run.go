package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/lucidlang/lucid/internal/bytecode"
	"github.com/lucidlang/lucid/internal/loader"
	"github.com/spf13/cobra"
)

var mainOverride string

var runCmd = &cobra.Command{
	Use:   "run [glob]",
	Short: "Load bytecode and invoke its #main entry point",
	Long: `Load bytecode and invoke its #main entry point.

If no glob is given, LUCID_SRC (set directly, or via a .lucidrc/.env file)
names the default search root: run globs "$LUCID_SRC/**/*.lbc".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&mainOverride, "main", "", "entry point as Class.method, overriding #main")
}

func runRun(cmd *cobra.Command, args []string) error {
	patterns, err := patternsOrDefault(args, "lbc")
	if err != nil {
		return err
	}
	files, err := expandGlobs(patterns)
	if err != nil {
		return err
	}

	p := loader.New()
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		if err := p.Load(file, string(content)); err != nil {
			return err
		}
	}

	vm := bytecode.NewVirtualMachine()
	if err := p.LoadInto(vm); err != nil {
		return err
	}

	class, method, err := entryPoint(p)
	if err != nil {
		return err
	}

	if verboseFlag(cmd) {
		fmt.Fprintf(os.Stderr, "invoking %s.%s\n", class, method)
	}
	return vm.Run(class, method)
}

func entryPoint(p *loader.Program) (class, method string, err error) {
	if mainOverride != "" {
		if dot := strings.LastIndex(mainOverride, "."); dot >= 0 {
			return mainOverride[:dot], mainOverride[dot+1:], nil
		}
		return mainOverride, "main", nil
	}
	return p.Entry()
}
