package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/kiro-session/internal"
	"github.com/iksnae/kiro-session/testutil"
)

// resetFlags restores flag variables, which persist between Execute calls
func resetFlags() {
	verbose = false
	storagePath = ""
	copyDB = false
	settingsPath = ""
	modelOverride = ""
	listLimit = internal.DefaultListLimit
	limit = 0
	format = "jsonl"
	outputDir = "./exports"
	exportKey = ""
	exportLimit = internal.DefaultListLimit
	followInput = ""
	followKey = ""
	followAbortPending = false

	// help and version keep their parsed value between executions
	for _, c := range append(rootCmd.Commands(), rootCmd) {
		for _, name := range []string{"help", "version"} {
			if f := c.Flags().Lookup(name); f != nil {
				_ = f.Value.Set("false")
				f.Changed = false
			}
		}
	}
}

// executeCommand runs the root command with args and returns its output
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))

	err := rootCmd.Execute()
	return out.String(), err
}

// fixtureDir creates a kiro-cli data directory and a path to a settings
// file that does not exist
func fixtureDir(t *testing.T) (dataDir, settings string) {
	t.Helper()
	dir := testutil.CreateTempDir(t)
	testutil.CreateSQLiteFixture(t, filepath.Join(dir, internal.DataFileName))
	return dir, filepath.Join(dir, "missing-settings.json")
}
