package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/kiro-session/internal"
	"github.com/spf13/cobra"
)

var (
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check if kiro-session can locate and read conversation data",
	Long: `Check the health of kiro-session by verifying:
  • Data file detection
  • Database accessibility
  • Conversation count
  • Assistant settings

This command is useful for debugging storage issues, especially in CI/CD environments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHealthcheck(cmd.OutOrStdout())
	},
}

func runHealthcheck(out io.Writer) error {
	_, _ = fmt.Fprintln(out, sectionStyle.Render("🔍 Kiro Session Health Check"))
	_, _ = fmt.Fprintln(out)

	// Step 1: Detect the data file
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 1: Detecting kiro-cli data file..."))
	path, err := internal.DetectDataPath(storagePath)
	if err != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Failed to locate data file:"), err)
		if dir, dirErr := internal.SupportDirectory(); dirErr == nil && storagePath == "" && os.Getenv(internal.EnvDataPath) == "" {
			_, _ = fmt.Fprintf(out, "   Expected: %s\n", dir)
			_, _ = fmt.Fprintln(out, "   This file is created when kiro-cli is first used")
		}
		return fmt.Errorf("health check failed: %w", err)
	}
	_, _ = fmt.Fprintln(out, successStyle.Render("✅ Data file found"))
	if verbose {
		_, _ = fmt.Fprintf(out, "   Database: %s\n", path)
	}
	_, _ = fmt.Fprintln(out)

	// Step 2: Open it
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 2: Opening database..."))
	store, closeStore, err := openStore()
	if err != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Failed to open database:"), err)
		return fmt.Errorf("health check failed: %w", err)
	}
	defer closeStore()
	_, _ = fmt.Fprintln(out, successStyle.Render("✅ Database opened read-only"))
	_, _ = fmt.Fprintln(out)

	// Step 3: Load conversations
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 3: Loading recent conversations..."))
	records, err := store.ListRecentConversations(internal.DefaultListLimit)
	if err != nil {
		_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Failed to query conversations:"), err)
		return fmt.Errorf("health check failed: %w", err)
	}
	if len(records) > 0 {
		_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d recent conversation(s)", len(records))))
		if verbose {
			for i, record := range records {
				if i == 5 {
					_, _ = fmt.Fprintf(out, "   ... and %d more\n", len(records)-5)
					break
				}
				_, _ = fmt.Fprintf(out, "   [%d] %s (%d entries)\n", i+1, record, len(record.History))
			}
		}
	} else {
		_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  No conversations found"))
		_, _ = fmt.Fprintln(out, "   This could mean:")
		_, _ = fmt.Fprintln(out, "   • No chat sessions have been created yet")
		_, _ = fmt.Fprintln(out, "   • Stored conversations could not be parsed (run with --verbose)")
	}
	_, _ = fmt.Fprintln(out)

	// Step 4: Settings
	_, _ = fmt.Fprintln(out, infoStyle.Render("Step 4: Reading assistant settings..."))
	if model := fallbackModel(); model != "" {
		_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Fallback model: %s", model)))
	} else {
		_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  No default model configured; responses without one stay unattributed"))
	}
	_, _ = fmt.Fprintln(out)

	// Summary
	_, _ = fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
	_, _ = fmt.Fprintln(out)
	if len(records) == 0 {
		_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  Storage available but no conversations found"))
		return nil
	}
	_, _ = fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
	return nil
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
