package cmd

import (
	"fmt"
	"os"

	"github.com/lucidlang/lucid/internal/loader"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [glob]",
	Short: "Load one or more textual bytecode files and report load errors",
	Long: `Load one or more textual bytecode files and report load errors.

If no glob is given, LUCID_SRC (set directly, or via a .lucidrc/.env file)
names the default search root: build globs "$LUCID_SRC/**/*.lbc".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
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

	if verboseFlag(cmd) {
		for _, c := range p.Classes {
			fmt.Fprintf(cmd.ErrOrStderr(), "loaded class %s (%d method(s))\n", c.Name, len(c.Methods))
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "loaded %d class(es) from %d file(s)\n", len(p.Classes), len(files))
	return nil
}
