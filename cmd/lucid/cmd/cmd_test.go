package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs rootCmd with args and returns its combined stdout/stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lucid version")
}

func TestLexCommandTokenizesAFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "hello.lucid")
	require.NoError(t, os.WriteFile(file, []byte("package demo;\n"), 0644))

	out, err := execute(t, "lex", file)
	require.NoError(t, err)
	assert.Contains(t, out, "demo")
}

func TestBuildCommandReportsLoadedClasses(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.lbc")
	src := "cdef Main\ncbegin\n  mdef entry\n  mmod static\n  mreturn V\n  mbegin\n  mend\ncend\n"
	require.NoError(t, os.WriteFile(file, []byte(src), 0644))

	out, err := execute(t, "build", file)
	require.NoError(t, err)
	assert.Contains(t, out, "loaded 1 class(es)")
}

func TestRunCommandInvokesMainOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.lbc")
	src := "cdef Main\ncbegin\n  mdef entry\n  mmod static\n  mreturn V\n  mbegin\n  mend\ncend\n"
	require.NoError(t, os.WriteFile(file, []byte(src), 0644))

	_, err := execute(t, "run", file, "--main", "Main.entry")
	require.NoError(t, err)
}

// TestBuildCommandDefaultsToLucidSrcEnv exercises the LUCID_SRC fallback
// end to end: with no glob argument, build must still find main.lbc by
// globbing under the directory LUCID_SRC names.
func TestBuildCommandDefaultsToLucidSrcEnv(t *testing.T) {
	dir := t.TempDir()
	src := "cdef Main\ncbegin\n  mdef entry\n  mmod static\n  mreturn V\n  mbegin\n  mend\ncend\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.lbc"), []byte(src), 0644))
	t.Setenv("LUCID_SRC", dir)

	out, err := execute(t, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "loaded 1 class(es)")
}

func TestBuildCommandFailsWithoutArgOrLucidSrc(t *testing.T) {
	_, err := execute(t, "build")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LUCID_SRC")
}

// TestColorFlagExplicitFlagOverridesEnv confirms an explicit --color flag
// always wins over LUCID_COLOR.
func TestColorFlagExplicitFlagOverridesEnv(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Bool("color", true, "")
	require.NoError(t, cmd.Flags().Set("color", "true"))
	t.Setenv("LUCID_COLOR", "false")

	assert.True(t, colorFlag(cmd))
}

// TestColorFlagFallsBackToEnv confirms LUCID_COLOR (set directly, or via
// loadDotenv from .lucidrc/.env) drives --color's effective value when the
// flag itself was never passed.
func TestColorFlagFallsBackToEnv(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Bool("color", true, "")
	t.Setenv("LUCID_COLOR", "false")

	assert.False(t, colorFlag(cmd))
}

func TestColorFlagDefaultsWithoutEnvOrFlag(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Bool("color", true, "")

	assert.True(t, colorFlag(cmd))
}

func TestPatternsOrDefaultUsesLucidSrcEnv(t *testing.T) {
	t.Setenv("LUCID_SRC", filepath.Join("some", "root"))

	got, err := patternsOrDefault(nil, "lucid")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("some", "root", "**", "*.lucid")}, got)
}

func TestPatternsOrDefaultPrefersExplicitArgs(t *testing.T) {
	t.Setenv("LUCID_SRC", filepath.Join("some", "root"))

	got, err := patternsOrDefault([]string{"explicit.lucid"}, "lucid")
	require.NoError(t, err)
	assert.Equal(t, []string{"explicit.lucid"}, got)
}
