package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/lucidlang/lucid/internal/lexer"
	"github.com/lucidlang/lucid/pkg/token"
	"github.com/spf13/cobra"
)

var lexFormat string

var lexCmd = &cobra.Command{
	Use:   "lex [file|glob]",
	Short: "Tokenize one or more Lucid source files and print the token stream",
	Long: `Tokenize one or more Lucid source files and print the token stream.

If no file or glob is given, LUCID_SRC (set directly, or via a .lucidrc/
.env file) names the default search root: lex globs "$LUCID_SRC/**/*.lucid".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVar(&lexFormat, "format", "text", "output format: text|json")
}

func runLex(cmd *cobra.Command, args []string) error {
	patterns, err := patternsOrDefault(args, "lucid")
	if err != nil {
		return err
	}
	files, err := expandGlobs(patterns)
	if err != nil {
		return err
	}
	verbose := verboseFlag(cmd)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "lexing %s\n", file)
		}
		l := lexer.New(string(content), lexer.WithFile(file))
		for {
			tok := l.Next()
			printToken(cmd.OutOrStdout(), tok)
			if tok.Kind == token.Finish {
				break
			}
		}
		if diags := l.Errors(); len(diags) > 0 {
			for _, d := range diags {
				fmt.Fprintln(cmd.ErrOrStderr(), d.Format(colorFlag(cmd)))
			}
			return fmt.Errorf("lexing %s failed with %d error(s)", file, len(diags))
		}
	}
	return nil
}

func printToken(w io.Writer, tok token.Token) {
	switch lexFormat {
	case "json":
		fmt.Fprintf(w, "{\"kind\":%q,\"value\":%q,\"line\":%d,\"column\":%d}\n",
			tok.Kind.String(), tok.Value, tok.Pos.Line, tok.Pos.Column)
	default:
		if tok.Value == "" {
			fmt.Fprintf(w, "[%s] @%s\n", tok.Kind, tok.Pos)
		} else {
			fmt.Fprintf(w, "[%s] %q @%s\n", tok.Kind, tok.Value, tok.Pos)
		}
	}
}
