package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/kiro-session/internal"
	"github.com/spf13/cobra"
)

var (
	verbose       bool
	storagePath   string
	copyDB        bool
	settingsPath  string
	modelOverride string
	version       string = "dev"
	commit        string = "unknown"
	date          string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kiro-session",
	Short: "Browse, export and follow kiro-cli conversations",
	Long: `A CLI tool to read the conversation history kiro-cli keeps in its
SQLite data file and render it as a canonical message transcript.

Features:
  • List recent conversations with metadata
  • View a conversation with tool call status
  • Export in multiple formats (JSONL, Markdown, YAML, JSON)
  • Follow a live JSONL event stream from a running agent

Quick Start:
  kiro-session list                      # List recent conversations
  kiro-session show <key>                # View a conversation
  kiro-session export --format md        # Export as Markdown
  kiro-cli ... | kiro-session follow     # Follow a live stream`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStore locates the kiro-cli database, optionally copies it, and opens
// it read-only. The returned closer releases the connection and any copy.
func openStore() (*internal.Storage, func(), error) {
	path, err := internal.DetectDataPath(storagePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to locate kiro-cli data: %w", err)
	}

	cleanup := func() error { return nil }
	if copyDB {
		path, cleanup, err = internal.CopyDatabase(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to copy database files: %w", err)
		}
	}

	storage, err := internal.OpenStorage(path)
	if err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	internal.LogDebug("Using database %s", path)

	return storage, func() {
		if err := storage.Close(); err != nil {
			internal.LogWarn("Failed to close database: %v", err)
		}
		if err := cleanup(); err != nil {
			internal.LogWarn("Failed to cleanup temporary files: %v", err)
		} else if copyDB {
			internal.LogInfo("Cleaned up temporary database files")
		}
	}, nil
}

// fallbackModel resolves the model used when history carries none
func fallbackModel() string {
	path := settingsPath
	if path == "" {
		var err error
		if path, err = internal.DefaultSettingsPath(); err != nil {
			internal.LogDebug("No settings path: %v", err)
		}
	}
	return internal.LoadAssistantSettings(path).FallbackModel(modelOverride)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Custom data location (path to data.sqlite3 or the directory holding it)")
	rootCmd.PersistentFlags().BoolVar(&copyDB, "copy", false, "Copy database files to temporary location to avoid locking issues")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Assistant settings file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&modelOverride, "model", "", "Model to attribute to responses whose history names none")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
