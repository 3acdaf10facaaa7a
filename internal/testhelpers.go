package internal

import (
	"time"

	"github.com/iksnae/kiro-session/internal/schema"
)

// CreateTestSession creates a test session with a prompt, a tool call, its
// result and a reply
func CreateTestSession(id string) *Session {
	return CreateTestSessionWithMessages(id, []schema.Message{
		&schema.UserPromptMessage{UUID: id + "-prompt", Prompt: "List the files"},
		&schema.AssistantMessage{
			UUID:           id + "-tool",
			ConversationID: id,
			Model:          "claude-sonnet-4",
			Content: []schema.ContentBlock{
				schema.ToolUseBlock{ID: id + "-t1", Name: "execute_bash", Input: map[string]any{"command": "ls"}},
			},
		},
		&schema.UserToolResultMessage{
			UUID:           id + "-result",
			ConversationID: id,
			Content: []schema.ToolResultBlock{
				{ToolUseID: id + "-t1", Content: []schema.TextBlock{{Text: "Stdout:\nmain.go"}}},
			},
		},
		&schema.AssistantMessage{
			UUID:           id + "-reply",
			ConversationID: id,
			Model:          "claude-sonnet-4",
			Content:        []schema.ContentBlock{schema.TextBlock{Text: "There is one file: main.go"}},
			Transcript:     []schema.TextBlock{{Text: "There is one file: main.go"}},
		},
	})
}

// CreateTestSessionWithMessages creates a test session with custom messages
func CreateTestSessionWithMessages(id string, messages []schema.Message) *Session {
	session := &Session{
		ID:       id,
		Key:      "/home/test/" + id,
		Source:   sourceHistory,
		Messages: messages,
		Metadata: Metadata{
			UpdatedAt: time.Now().Format(time.RFC3339),
		},
	}
	session.summarize()
	return session
}
