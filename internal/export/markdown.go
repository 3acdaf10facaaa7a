package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/kiro-session/internal"
	"github.com/iksnae/kiro-session/internal/schema"
	"github.com/iksnae/kiro-session/internal/toolstatus"
)

// MarkdownExporter exports sessions in Markdown format
type MarkdownExporter struct{}

// Export exports a session to Markdown format. Tool invocations are
// annotated with the status derived from the session's own results.
func (e *MarkdownExporter) Export(session *internal.Session, w io.Writer) error {
	if session == nil {
		return errNilSession
	}

	tracker := toolstatus.NewTracker()
	tracker.ObserveAll(session.Messages)

	// Header
	_, _ = fmt.Fprintf(w, "# Session %s\n\n", session.ID)

	if session.Metadata.Title != "" {
		_, _ = fmt.Fprintf(w, "**Title:** %s  \n", escapeMarkdown(session.Metadata.Title))
	}
	if session.Key != "" && session.Key != session.ID {
		_, _ = fmt.Fprintf(w, "**Key:** %s  \n", session.Key)
	}
	_, _ = fmt.Fprintf(w, "**Source:** %s  \n", session.Source)
	if session.Metadata.Model != "" {
		_, _ = fmt.Fprintf(w, "**Model:** %s  \n", session.Metadata.Model)
	}
	if session.Metadata.UpdatedAt != "" {
		_, _ = fmt.Fprintf(w, "**Updated:** %s  \n", session.Metadata.UpdatedAt)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(session.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages\n\n")

	for i, msg := range session.Messages {
		switch m := msg.(type) {
		case *schema.UserPromptMessage:
			_, _ = fmt.Fprintf(w, "**user:**\n\n%s\n\n", escapeMarkdown(m.Prompt))
		case *schema.UserToolResultMessage:
			writeToolResults(w, m)
		case *schema.AssistantMessage:
			writeAssistant(w, m, tracker)
		}

		if i < len(session.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func writeAssistant(w io.Writer, m *schema.AssistantMessage, tracker *toolstatus.Tracker) {
	model := ""
	if m.Model != "" {
		model = fmt.Sprintf(" (%s)", m.Model)
	}
	_, _ = fmt.Fprintf(w, "**assistant:**%s\n\n", model)

	for _, block := range m.Content {
		switch b := block.(type) {
		case schema.TextBlock:
			_, _ = fmt.Fprintf(w, "%s\n\n", escapeMarkdown(b.Text))
		case schema.ToolUseBlock:
			state, ok := tracker.Status(b.ID)
			if !ok {
				state = toolstatus.Pending
			}
			_, _ = fmt.Fprintf(w, "%s `%s` `%s` _%s_\n\n", statusMark(state), b.Name, b.ID, state)
			input, err := json.MarshalIndent(b.Input, "", "  ")
			if err != nil || len(b.Input) == 0 {
				continue
			}
			writeFenced(w, "json", string(input))
		}
	}
}

func writeToolResults(w io.Writer, m *schema.UserToolResultMessage) {
	for _, result := range m.Content {
		label := "tool result"
		if result.IsError {
			label = "tool error"
		}
		_, _ = fmt.Fprintf(w, "**%s:** `%s`\n\n", label, result.ToolUseID)
		writeFenced(w, "", schema.Text(result.Content))
	}
}

// writeFenced writes text as a code block whose fence is longer than any
// backtick run inside it.
func writeFenced(w io.Writer, lang, text string) {
	fence := "```"
	for strings.Contains(text, fence) {
		fence += "`"
	}
	_, _ = fmt.Fprintf(w, "%s%s\n%s\n%s\n\n", fence, lang, text, fence)
}

func statusMark(state toolstatus.State) string {
	switch state {
	case toolstatus.Success:
		return "✓"
	case toolstatus.Error:
		return "✗"
	default:
		return "…"
	}
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
