package internal

import (
	"strings"
	"unicode/utf8"

	"github.com/iksnae/kiro-session/internal/schema"
)

const titleLength = 60

// Session is a conversation rendered into canonical messages
type Session struct {
	ID       string           `json:"id"`
	Key      string           `json:"key,omitempty"`
	Source   string           `json:"source"` // "conversations_v2" or "live"
	Messages []schema.Message `json:"messages"`
	Metadata Metadata         `json:"metadata"`
}

// Metadata contains additional session information
type Metadata struct {
	Title        string `json:"title,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
	Model        string `json:"model,omitempty"`
	MessageCount int    `json:"message_count"`
	ToolUseCount int    `json:"tool_use_count"`
}

// summarize fills the message-derived metadata fields
func (s *Session) summarize() {
	s.Metadata.MessageCount = len(s.Messages)
	s.Metadata.ToolUseCount = 0
	for _, msg := range s.Messages {
		switch m := msg.(type) {
		case *schema.UserPromptMessage:
			if s.Metadata.Title == "" {
				s.Metadata.Title = truncate(strings.Join(strings.Fields(m.Prompt), " "), titleLength)
			}
		case *schema.AssistantMessage:
			if m.Model != "" {
				s.Metadata.Model = m.Model
			}
		}
		s.Metadata.ToolUseCount += len(schema.ToolUses(msg))
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
