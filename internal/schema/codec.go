package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Wire discriminators.
const (
	TypeUserPrompt = "user_prompt"
	TypeUser       = "user"
	TypeAssistant  = "assistant"

	BlockText       = "text"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// ErrUnsupportedMessage is returned by DecodeMessage for well-formed frames
// that are not canonical messages (system frames, run results, plain user
// echoes without tool results).
var ErrUnsupportedMessage = errors.New("unsupported message")

type textWire struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolUseWire struct {
	Type  string         `json:"type"`
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

type toolResultWire struct {
	Type      string     `json:"type"`
	ToolUseID string     `json:"tool_use_id"`
	Content   []textWire `json:"content"`
	IsError   bool       `json:"is_error"`
}

type bodyWire struct {
	ID         string     `json:"id"`
	Role       string     `json:"role"`
	Content    any        `json:"content"`
	Transcript []textWire `json:"transcript,omitempty"`
}

type messageWire struct {
	Type      string    `json:"type"`
	UUID      string    `json:"uuid"`
	SessionID string    `json:"session_id,omitempty"`
	Prompt    string    `json:"prompt,omitempty"`
	Model     string    `json:"model,omitempty"`
	Message   *bodyWire `json:"message,omitempty"`
}

func textsToWire(blocks []TextBlock) []textWire {
	out := make([]textWire, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, textWire{Type: BlockText, Text: b.Text})
	}
	return out
}

// MarshalJSON encodes the prompt in its wire form.
func (m *UserPromptMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageWire{Type: TypeUserPrompt, UUID: m.UUID, Prompt: m.Prompt})
}

// MarshalJSON encodes the tool results in their wire form.
func (m *UserToolResultMessage) MarshalJSON() ([]byte, error) {
	content := make([]toolResultWire, 0, len(m.Content))
	for _, r := range m.Content {
		content = append(content, toolResultWire{
			Type:      BlockToolResult,
			ToolUseID: r.ToolUseID,
			Content:   textsToWire(r.Content),
			IsError:   r.IsError,
		})
	}
	return json.Marshal(messageWire{
		Type:      TypeUser,
		UUID:      m.UUID,
		SessionID: m.ConversationID,
		Message:   &bodyWire{ID: m.UUID, Role: "user", Content: content},
	})
}

// MarshalJSON encodes the assistant message in its wire form.
func (m *AssistantMessage) MarshalJSON() ([]byte, error) {
	content := make([]any, 0, len(m.Content))
	for _, block := range m.Content {
		switch b := block.(type) {
		case TextBlock:
			content = append(content, textWire{Type: BlockText, Text: b.Text})
		case ToolUseBlock:
			input := b.Input
			if input == nil {
				input = map[string]any{}
			}
			content = append(content, toolUseWire{Type: BlockToolUse, ID: b.ID, Name: b.Name, Input: input})
		}
	}
	body := &bodyWire{ID: m.UUID, Role: "assistant", Content: content}
	if len(m.Transcript) > 0 {
		body.Transcript = textsToWire(m.Transcript)
	}
	return json.Marshal(messageWire{
		Type:      TypeAssistant,
		UUID:      m.UUID,
		SessionID: m.ConversationID,
		Model:     m.Model,
		Message:   body,
	})
}

type rawBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	ToolUseID string          `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`
	IsError   bool            `json:"is_error"`
}

type rawBody struct {
	ID         string          `json:"id"`
	Model      string          `json:"model"`
	Content    json.RawMessage `json:"content"`
	Transcript []rawBlock      `json:"transcript"`
}

type rawMessage struct {
	Type      string   `json:"type"`
	UUID      string   `json:"uuid"`
	SessionID string   `json:"session_id"`
	Prompt    string   `json:"prompt"`
	Model     string   `json:"model"`
	Message   *rawBody `json:"message"`
}

// DecodeMessage decodes one live protocol frame into a canonical message.
func DecodeMessage(data []byte) (Message, error) {
	var raw rawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}

	switch raw.Type {
	case TypeUserPrompt:
		return &UserPromptMessage{UUID: raw.UUID, Prompt: raw.Prompt}, nil
	case TypeUser:
		return decodeToolResults(raw)
	case TypeAssistant:
		return decodeAssistant(raw)
	default:
		return nil, fmt.Errorf("%w: type %q", ErrUnsupportedMessage, raw.Type)
	}
}

func messageUUID(raw rawMessage) string {
	if raw.UUID != "" {
		return raw.UUID
	}
	if raw.Message != nil {
		return raw.Message.ID
	}
	return ""
}

// blocks decodes a content array; a string or missing content yields nil.
func blocks(data json.RawMessage) []rawBlock {
	var out []rawBlock
	if len(data) == 0 || json.Unmarshal(data, &out) != nil {
		return nil
	}
	return out
}

func decodeToolResults(raw rawMessage) (Message, error) {
	if raw.Message == nil {
		return nil, fmt.Errorf("%w: user message without body", ErrUnsupportedMessage)
	}
	msg := &UserToolResultMessage{UUID: messageUUID(raw), ConversationID: raw.SessionID}
	for _, b := range blocks(raw.Message.Content) {
		if b.Type != BlockToolResult {
			continue
		}
		msg.Content = append(msg.Content, ToolResultBlock{
			ToolUseID: b.ToolUseID,
			Content:   decodeResultContent(b.Content),
			IsError:   b.IsError,
		})
	}
	if len(msg.Content) == 0 {
		return nil, fmt.Errorf("%w: user message without tool results", ErrUnsupportedMessage)
	}
	return msg, nil
}

// decodeResultContent accepts a plain string or an array of blocks and
// always yields at least one text block.
func decodeResultContent(data json.RawMessage) []TextBlock {
	var s string
	if len(data) > 0 && json.Unmarshal(data, &s) == nil {
		return []TextBlock{{Text: s}}
	}
	var out []TextBlock
	for _, b := range blocks(data) {
		if b.Type == BlockText {
			out = append(out, TextBlock{Text: b.Text})
		}
	}
	if len(out) == 0 {
		return []TextBlock{{Text: ""}}
	}
	return out
}

func decodeAssistant(raw rawMessage) (Message, error) {
	if raw.Message == nil {
		return nil, fmt.Errorf("%w: assistant message without body", ErrUnsupportedMessage)
	}
	msg := &AssistantMessage{UUID: messageUUID(raw), ConversationID: raw.SessionID}
	msg.Model = strings.TrimSpace(raw.Model)
	if msg.Model == "" {
		msg.Model = strings.TrimSpace(raw.Message.Model)
	}
	for _, b := range blocks(raw.Message.Content) {
		switch b.Type {
		case BlockText:
			msg.Content = append(msg.Content, TextBlock{Text: b.Text})
		case BlockToolUse:
			var input map[string]any
			if len(b.Input) > 0 {
				_ = json.Unmarshal(b.Input, &input)
			}
			if input == nil {
				input = map[string]any{}
			}
			msg.Content = append(msg.Content, ToolUseBlock{ID: b.ID, Name: b.Name, Input: input})
		}
	}
	for _, b := range raw.Message.Transcript {
		if b.Type == BlockText || b.Type == "" {
			msg.Transcript = append(msg.Transcript, TextBlock{Text: b.Text})
		}
	}
	return msg, nil
}
