// Package adapter converts persisted kiro-cli conversation history into the
// canonical message schema.
package adapter

import (
	"strings"

	"github.com/google/uuid"

	"github.com/iksnae/kiro-session/internal/schema"
)

const defaultToolName = "tool"

// Adapter converts history entries to canonical messages. It holds no state
// between calls and is safe for concurrent use.
type Adapter struct {
	newID func() string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithIDGenerator replaces the generator used to mint identifiers.
func WithIDGenerator(fn func() string) Option {
	return func(a *Adapter) {
		if fn != nil {
			a.newID = fn
		}
	}
}

// NewAdapter creates a new Adapter
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{newID: uuid.NewString}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Adapt converts entries with a default Adapter.
func Adapt(entries []HistoryEntry, conversationID, fallbackModel string) []schema.Message {
	return NewAdapter().Adapt(entries, conversationID, fallbackModel)
}

// Adapt converts entries, in order, into canonical messages. Each entry
// yields at most a prompt, a tool-result message, a tool-use assistant
// message and a response assistant message, in that order.
func (a *Adapter) Adapt(entries []HistoryEntry, conversationID, fallbackModel string) []schema.Message {
	messages := make([]schema.Message, 0, len(entries))

	for _, entry := range entries {
		messageID, _ := entry.Metadata["message_id"].(string)
		model := ResolveModel(entry.Metadata, fallbackModel)

		if entry.Prompt != nil && strings.TrimSpace(entry.Prompt.Prompt) != "" {
			messages = append(messages, &schema.UserPromptMessage{
				UUID:   a.coerceID(messageID),
				Prompt: entry.Prompt.Prompt,
			})
		}

		if entry.ToolUseResults != nil && len(entry.ToolUseResults.Results) > 0 {
			messages = append(messages, &schema.UserToolResultMessage{
				UUID:           a.coerceID(messageID),
				ConversationID: conversationID,
				Content:        a.toolResults(entry.ToolUseResults.Results),
			})
		}

		if entry.ToolUse != nil && len(entry.ToolUse.ToolUses) > 0 {
			messages = append(messages, &schema.AssistantMessage{
				UUID:           a.coerceID(entry.ToolUse.MessageID),
				ConversationID: conversationID,
				Content:        a.toolUses(entry.ToolUse.ToolUses),
				Model:          model,
			})
		}

		if entry.Response != nil && truthy(entry.Response.Content) {
			transcript := NormalizeTextBlocks(entry.Response.Content)
			content := make([]schema.ContentBlock, 0, len(transcript))
			for _, block := range transcript {
				content = append(content, block)
			}
			messages = append(messages, &schema.AssistantMessage{
				UUID:           a.coerceID(entry.Response.MessageID),
				ConversationID: conversationID,
				Content:        content,
				Model:          model,
				Transcript:     transcript,
			})
		}
	}

	return messages
}

func (a *Adapter) toolResults(records []ToolResultRecord) []schema.ToolResultBlock {
	blocks := make([]schema.ToolResultBlock, 0, len(records))
	for _, r := range records {
		content := r.Content
		if content == nil && (r.Stdout != "" || r.Stderr != "") {
			content = map[string]any{"stdout": r.Stdout, "stderr": r.Stderr}
		}
		blocks = append(blocks, schema.ToolResultBlock{
			ToolUseID: a.coerceID(r.ToolUseID),
			Content:   NormalizeTextBlocks(content),
			IsError:   strings.EqualFold(r.Status, "error"),
		})
	}
	return blocks
}

func (a *Adapter) toolUses(records []ToolUseRecord) []schema.ContentBlock {
	blocks := make([]schema.ContentBlock, 0, len(records))
	for _, r := range records {
		input := r.Args
		if input == nil {
			input = r.OrigArgs
		}
		if input == nil {
			input = map[string]any{}
		}
		blocks = append(blocks, schema.ToolUseBlock{
			ID:    a.coerceID(r.ID),
			Name:  firstNonEmpty(r.Name, r.OrigName, defaultToolName),
			Input: input,
		})
	}
	return blocks
}

// coerceID keeps a supplied identifier verbatim and mints one otherwise.
func (a *Adapter) coerceID(candidate string) string {
	if strings.TrimSpace(candidate) != "" {
		return candidate
	}
	return a.newID()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
