// Package schema defines the canonical message schema shared by replayed
// history and live agent output.
//
// Messages are a closed tagged union:
//   - UserPromptMessage: a prompt typed by the user
//   - UserToolResultMessage: results of tool invocations
//   - AssistantMessage: assistant text and tool invocations
package schema

import "strings"

// Message is implemented by every canonical message variant.
type Message interface {
	// ID returns the stable identifier of the message.
	ID() string
	message()
}

// UserPromptMessage is a prompt typed by the user.
type UserPromptMessage struct {
	UUID   string
	Prompt string
}

// UserToolResultMessage carries the outcome of one or more tool invocations.
type UserToolResultMessage struct {
	UUID           string
	ConversationID string
	Content        []ToolResultBlock
}

// AssistantMessage carries assistant output: text and tool invocations.
type AssistantMessage struct {
	UUID           string
	ConversationID string
	Content        []ContentBlock
	// Model is empty when unresolved; it is never whitespace-only.
	Model      string
	Transcript []TextBlock
}

func (m *UserPromptMessage) ID() string     { return m.UUID }
func (m *UserToolResultMessage) ID() string { return m.UUID }
func (m *AssistantMessage) ID() string      { return m.UUID }

func (*UserPromptMessage) message()     {}
func (*UserToolResultMessage) message() {}
func (*AssistantMessage) message()      {}

// ContentBlock is implemented by TextBlock and ToolUseBlock.
type ContentBlock interface {
	contentBlock()
}

// TextBlock is a run of text.
type TextBlock struct {
	Text string
}

// ToolUseBlock is a single tool invocation.
type ToolUseBlock struct {
	ID    string
	Name  string
	Input map[string]any
}

func (TextBlock) contentBlock()    {}
func (ToolUseBlock) contentBlock() {}

// ToolResultBlock is the outcome of the tool invocation named by ToolUseID.
// Content always holds at least one block.
type ToolResultBlock struct {
	ToolUseID string
	Content   []TextBlock
	IsError   bool
}

// Text joins the text of blocks with newlines.
func Text(blocks []TextBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "\n")
}

// ToolUses returns the tool invocations contained in msg, if any.
func ToolUses(msg Message) []ToolUseBlock {
	am, ok := msg.(*AssistantMessage)
	if !ok || am == nil {
		return nil
	}
	var uses []ToolUseBlock
	for _, block := range am.Content {
		if use, ok := block.(ToolUseBlock); ok {
			uses = append(uses, use)
		}
	}
	return uses
}

// ToolResults returns the tool results contained in msg, if any.
func ToolResults(msg Message) []ToolResultBlock {
	if rm, ok := msg.(*UserToolResultMessage); ok && rm != nil {
		return rm.Content
	}
	return nil
}
