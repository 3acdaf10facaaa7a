package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/kiro-session/internal"
	"github.com/iksnae/kiro-session/internal/export"
	"github.com/spf13/cobra"
)

var (
	format      string
	outputDir   string
	exportKey   string
	exportLimit int
)

var successStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("42")).
	Bold(true)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export conversations to file",
	Long: `Export conversations to various formats (jsonl, md, yaml, json).

Exports the most recent conversations, or a single one with --key.
Use 'kiro-session list' to see available conversations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		var sessions []*internal.Session
		if exportKey != "" {
			session, found := internal.LoadSession(store, exportKey, fallbackModel())
			if !found {
				return fmt.Errorf("conversation not found: %s (use 'kiro-session list' to see recent conversations)", exportKey)
			}
			sessions = append(sessions, session)
		} else {
			sessions = internal.LoadRecentSessions(store, exportLimit, fallbackModel())
		}

		if outputDir == "-" {
			for _, session := range sessions {
				if err := exporter.Export(session, cmd.OutOrStdout()); err != nil {
					return &internal.ExportError{Format: format, Path: "stdout", Err: err}
				}
			}
			return nil
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		exported := 0
		for _, session := range sessions {
			path := filepath.Join(outputDir, exportFileName(session.ID, exporter.Extension()))
			if err := exportSession(exporter, session, path); err != nil {
				internal.LogError("Failed to export conversation %s: %v", session.ID, err)
				continue
			}
			exported++
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✅ Export complete: %d conversation(s) exported to %s", exported, outputDir)))
		return nil
	},
}

func exportSession(exporter export.Exporter, session *internal.Session, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	if err := exporter.Export(session, file); err != nil {
		_ = file.Close()
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	if err := file.Close(); err != nil {
		internal.LogWarn("Failed to close file %s: %v", path, err)
	}
	return nil
}

// exportFileName derives a file name safe on every platform
func exportFileName(id, ext string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.Trim(id, "/\\"))
	if safe == "" {
		safe = "untitled"
	}
	return fmt.Sprintf("session_%s.%s", safe, ext)
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory, or - for stdout")
	exportCmd.Flags().StringVar(&exportKey, "key", "", "Export a single conversation by ID or directory")
	exportCmd.Flags().IntVarP(&exportLimit, "limit", "n", internal.DefaultListLimit, "Number of recent conversations to export")
}
