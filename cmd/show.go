package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/kiro-session/internal"
	"github.com/iksnae/kiro-session/internal/schema"
	"github.com/iksnae/kiro-session/internal/toolstatus"
	"github.com/spf13/cobra"
)

var (
	limit int
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	toolMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	statusStyles = map[toolstatus.State]lipgloss.Style{
		toolstatus.Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		toolstatus.Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		toolstatus.Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show the transcript of a conversation",
	Long: `Display a conversation as canonical messages. The key is either the
conversation ID or the directory kiro-cli was started in.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		session, found := internal.LoadSession(store, key, fallbackModel())
		if !found {
			return fmt.Errorf("conversation not found: %s (use 'kiro-session list' to see recent conversations)", key)
		}

		renderSession(cmd.OutOrStdout(), session, limit)
		return nil
	},
}

// renderSession prints the header and up to max messages (all when max <= 0)
func renderSession(out io.Writer, session *internal.Session, max int) {
	tracker := toolstatus.NewTracker()
	tracker.ObserveAll(session.Messages)

	displaySessionHeader(out, session)

	messages := session.Messages
	total := len(messages)
	if max > 0 && max < total {
		messages = messages[:max]
	}

	for i, msg := range messages {
		displayMessage(out, i+1, msg, total, tracker)
	}

	if max > 0 && max < total {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, timestampStyle.Render(fmt.Sprintf("... (%d more message(s))", total-max)))
	}
}

func displaySessionHeader(out io.Writer, session *internal.Session) {
	if session == nil {
		return
	}
	title := session.Metadata.Title
	if title == "" {
		title = "Untitled"
	}
	_, _ = fmt.Fprintln(out, sessionHeaderStyle.Render(fmt.Sprintf("💬 %s", title)))

	var metaParts []string
	if session.Metadata.UpdatedAt != "" {
		metaParts = append(metaParts, fmt.Sprintf("Updated: %s", session.Metadata.UpdatedAt))
	}
	metaParts = append(metaParts, fmt.Sprintf("Messages: %d", len(session.Messages)))
	if session.Metadata.Model != "" {
		metaParts = append(metaParts, fmt.Sprintf("Model: %s", session.Metadata.Model))
	}
	if session.Key != "" && session.Key != session.ID {
		metaParts = append(metaParts, fmt.Sprintf("Directory: %s", session.Key))
	}

	_, _ = fmt.Fprintln(out, sessionMetaStyle.Render(strings.Join(metaParts, " • ")))
	_, _ = fmt.Fprintln(out)
}

func displayMessage(out io.Writer, index int, msg schema.Message, total int, tracker *toolstatus.Tracker) {
	var header string
	var body []string

	switch m := msg.(type) {
	case *schema.UserPromptMessage:
		header = userMessageStyle.Render("👤 User")
		body = append(body, m.Prompt)
	case *schema.AssistantMessage:
		header = assistantMessageStyle.Render("🤖 Assistant")
		if m.Model != "" {
			header += " " + timestampStyle.Render(m.Model)
		}
		for _, block := range m.Content {
			switch b := block.(type) {
			case schema.TextBlock:
				body = append(body, b.Text)
			case schema.ToolUseBlock:
				body = append(body, toolUseLine(b, tracker))
			}
		}
	case *schema.UserToolResultMessage:
		header = toolMessageStyle.Render("🔧 Tool result")
		for _, result := range m.Content {
			label := result.ToolUseID
			if result.IsError {
				label += " (error)"
			}
			body = append(body, timestampStyle.Render(label), schema.Text(result.Content))
		}
	default:
		return
	}

	_, _ = fmt.Fprintln(out, header+" "+timestampStyle.Render(fmt.Sprintf("[%d/%d]", index, total)))

	content := strings.TrimSpace(strings.Join(body, "\n"))
	if content != "" {
		_, _ = fmt.Fprintln(out, messageContentStyle.Render(wrapText(content, 80)))
	} else {
		_, _ = fmt.Fprintln(out, messageContentStyle.Foreground(lipgloss.Color("240")).Render("(empty message)"))
	}
	_, _ = fmt.Fprintln(out)
}

// toolUseLine renders one invocation with its status dot
func toolUseLine(use schema.ToolUseBlock, tracker *toolstatus.Tracker) string {
	state, ok := tracker.Status(use.ID)
	if !ok {
		state = toolstatus.Pending
	}
	line := statusStyles[state].Render("●") + " " + use.Name
	if len(use.Input) > 0 {
		if input, err := json.Marshal(use.Input); err == nil {
			line += " " + timestampStyle.Render(string(input))
		}
	}
	return line
}

func wrapText(text string, width int) string {
	lines := strings.Split(text, "\n")
	var wrapped []string

	for _, line := range lines {
		if len(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}

		// Wrap long lines
		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				if currentLine != "" {
					wrapped = append(wrapped, currentLine)
					currentLine = word
				} else {
					wrapped = append(wrapped, word)
					currentLine = ""
				}
			} else {
				if currentLine == "" {
					currentLine = word
				} else {
					currentLine += " " + word
				}
			}
		}
		if currentLine != "" {
			wrapped = append(wrapped, currentLine)
		}
	}

	return strings.Join(wrapped, "\n")
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of messages to show")
}
