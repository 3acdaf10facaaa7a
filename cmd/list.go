package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/kiro-session/internal"
	"github.com/spf13/cobra"
)

var (
	listLimit int
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	workspaceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversations",
	Long:  `List the most recently updated conversations in the kiro-cli data file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		sessions := internal.LoadRecentSessions(store, listLimit, fallbackModel())
		displaySessions(cmd.OutOrStdout(), sessions)
		return nil
	},
}

func displaySessions(out io.Writer, sessions []*internal.Session) {
	if len(sessions) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render("📋 No conversations found"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("📋 Found %d conversation(s)", len(sessions)))
	_, _ = fmt.Fprintln(out, header)
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Tools")+"\t"+titleStyle.Render("Updated")+"\t"+titleStyle.Render("Directory")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 110))

	for _, session := range sessions {
		title := session.Metadata.Title
		if title == "" {
			title = "Untitled"
		}
		if len([]rune(title)) > 50 {
			title = string([]rune(title)[:47]) + "..."
		}
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Render(title)

		msgCount := countStyle.Render(strconv.Itoa(session.Metadata.MessageCount))
		toolCount := dateStyle.Render(strconv.Itoa(session.Metadata.ToolUseCount))
		updated := formatUpdated(session.Metadata.UpdatedAt)

		directory := dateStyle.Render("—")
		if session.Key != "" {
			directory = workspaceStyle.Render(shortenPath(session.Key, 25))
		}

		// Short ID for readability; show accepts the full ID or the directory key
		shortID := session.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n", idStyle.Render(shortID), title, msgCount, toolCount, updated, directory)
	}

	_ = w.Flush()
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, idStyle.Render("💡 Tip: Use the full ID (e.g., ")+
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(sessions[0].ID)+
		idStyle.Render(") or directory with `kiro-session show <key>`"))
}

// formatUpdated renders an RFC3339 timestamp relative to now
func formatUpdated(value string) string {
	if value == "" {
		return dateStyle.Render("—")
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return dateStyle.Render(value)
	}

	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return dateStyle.Render(t.Format("Today 15:04"))
	case diff < 7*24*time.Hour:
		return dateStyle.Render(t.Format("Mon 15:04"))
	case diff < 365*24*time.Hour:
		return dateStyle.Render(t.Format("Jan 02 15:04"))
	default:
		return dateStyle.Render(t.Format("2006-01-02"))
	}
}

// shortenPath keeps the last path element, truncated to max runes
func shortenPath(path string, max int) string {
	trimmed := strings.TrimRight(path, "/\\")
	if i := strings.LastIndexAny(trimmed, "/\\"); i >= 0 && i < len(trimmed)-1 {
		trimmed = trimmed[i+1:]
	}
	if trimmed == "" {
		trimmed = path
	}
	runes := []rune(trimmed)
	if len(runes) > max {
		return string(runes[:max-3]) + "..."
	}
	return trimmed
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", internal.DefaultListLimit, "Maximum number of conversations to list")
}
