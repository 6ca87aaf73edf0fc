package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "lucid",
	Short: "Lucid lexer, parser, package builder and bytecode VM",
	Long: `lucid is a toolchain for the Lucid language: a tokenizer and
recursive-descent parser that turn source into a Package's symbol table,
and a textual-bytecode loader plus virtual machine that run compiled
classes.

This CLI is the external collaborator the core packages deliberately stay
ignorant of: file discovery, flag parsing, and config all live here.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	loadDotenv()
	return rootCmd.Execute()
}

// loadDotenv loads optional CLI defaults from a .lucidrc or .env file in
// the working directory into the process environment, following the
// dotenv-config pattern used elsewhere in the retrieved corpus
// (termfx-morfx): LUCID_SRC (default glob root for lex/build/run when no
// file/glob argument is given) and LUCID_COLOR (fallback for --color when
// the flag isn't passed explicitly) are read back by files.go/colorFlag.
// A missing file is not an error — these are optional defaults, not
// required configuration. The core packages never read environment state
// themselves; only this CLI layer does.
func loadDotenv() {
	for _, name := range []string{".lucidrc", ".env"} {
		if _, err := os.Stat(name); err == nil {
			_ = godotenv.Load(name)
			return
		}
	}
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("color", true, "colorize diagnostics")
}

func verboseFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}

// colorFlag reports whether diagnostics should be colorized: an explicit
// --color flag always wins, otherwise LUCID_COLOR (set directly, or via
// loadDotenv from .lucidrc/.env) overrides the flag's own default.
func colorFlag(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("color") {
		c, _ := cmd.Flags().GetBool("color")
		return c
	}
	if v, ok := os.LookupEnv("LUCID_COLOR"); ok {
		return v != "false" && v != "0"
	}
	c, _ := cmd.Flags().GetBool("color")
	return c
}
