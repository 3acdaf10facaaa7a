package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/kiro-session/internal"
	"github.com/iksnae/kiro-session/internal/schema"
)

func TestMarkdownExporter_Export(t *testing.T) {
	tests := []struct {
		name    string
		session *internal.Session
		want    []string
		notWant []string
		wantErr bool
	}{
		{
			name:    "basic session",
			session: internal.CreateTestSession("test1"),
			want: []string{
				"# Session test1",
				"**Title:** List the files",
				"**Key:** /home/test/test1",
				"**Source:** conversations_v2",
				"**Model:** claude-sonnet-4",
				"**Messages:** 4",
				"## Messages",
				"**user:**\n\nList the files",
				"**assistant:** (claude-sonnet-4)",
				"✓ `execute_bash` `test1-t1` _success_",
				"```json\n{\n  \"command\": \"ls\"\n}\n```",
				"**tool result:** `test1-t1`",
				"```\nStdout:\nmain.go\n```",
				"There is one file: main.go",
			},
			wantErr: false,
		},
		{
			name: "pending and failed tool uses",
			session: internal.CreateTestSessionWithMessages("test2", []schema.Message{
				&schema.AssistantMessage{UUID: "a1", Content: []schema.ContentBlock{
					schema.ToolUseBlock{ID: "t1", Name: "fs_read"},
					schema.ToolUseBlock{ID: "t2", Name: "fs_write", Input: map[string]any{"path": "x"}},
				}},
				&schema.UserToolResultMessage{UUID: "r1", Content: []schema.ToolResultBlock{
					{ToolUseID: "t2", Content: []schema.TextBlock{{Text: "permission denied"}}, IsError: true},
				}},
			}),
			want: []string{
				"… `fs_read` `t1` _pending_",
				"✗ `fs_write` `t2` _error_",
				"**tool error:** `t2`",
			},
			notWant: []string{"**Model:**"},
			wantErr: false,
		},
		{
			name: "result containing a fence",
			session: internal.CreateTestSessionWithMessages("test3", []schema.Message{
				&schema.UserToolResultMessage{UUID: "r1", Content: []schema.ToolResultBlock{
					{ToolUseID: "t1", Content: []schema.TextBlock{{Text: "```go\nx\n```"}}},
				}},
			}),
			want:    []string{"````\n```go\nx\n```\n````"},
			wantErr: false,
		},
		{
			name: "session without key",
			session: &internal.Session{
				ID:       "test4",
				Source:   "live",
				Messages: []schema.Message{},
			},
			want: []string{
				"# Session test4",
				"**Source:** live",
			},
			notWant: []string{"**Key:**", "**Title:**"},
			wantErr: false,
		},
		{
			name:    "empty session",
			session: internal.CreateTestSessionWithMessages("test5", []schema.Message{}),
			want: []string{
				"# Session test5",
				"**Messages:** 0",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &MarkdownExporter{}

			err := exporter.Export(tt.session, &buf)
			if (err != nil) != tt.wantErr {
				t.Errorf("MarkdownExporter.Export() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				output := buf.String()
				for _, wantStr := range tt.want {
					if !strings.Contains(output, wantStr) {
						t.Errorf("Output should contain %q, got:\n%s", wantStr, output)
					}
				}
				for _, notWantStr := range tt.notWant {
					if strings.Contains(output, notWantStr) {
						t.Errorf("Output should not contain %q, got:\n%s", notWantStr, output)
					}
				}
			}
		})
	}
}

func TestMarkdownExporter_Extension(t *testing.T) {
	exporter := &MarkdownExporter{}
	if got := exporter.Extension(); got != "md" {
		t.Errorf("MarkdownExporter.Extension() = %v, want md", got)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		notWant []string
	}{
		{
			name:  "basic text",
			input: "Hello world",
			want:  []string{"Hello world"},
		},
		{
			name:    "markdown bold",
			input:   "This is **bold** text",
			want:    []string{"\\*\\*bold\\*\\*"},
			notWant: []string{"**bold**"},
		},
		{
			name:    "markdown underline",
			input:   "This is __underlined__ text",
			want:    []string{"\\_\\_underlined\\_\\_"},
			notWant: []string{"__underlined__"},
		},
		{
			name:  "code block preserved",
			input: "```go\npackage main\n```",
			want:  []string{"```go", "package main", "```"},
		},
		{
			name:    "mixed content",
			input:   "Regular text **bold** and ```code```",
			want:    []string{"\\*\\*bold\\*\\*", "```code```"},
			notWant: []string{"**bold**"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := escapeMarkdown(tt.input)
			for _, wantStr := range tt.want {
				if !strings.Contains(got, wantStr) {
					t.Errorf("escapeMarkdown() should contain %q, got: %s", wantStr, got)
				}
			}
			for _, notWantStr := range tt.notWant {
				if strings.Contains(got, notWantStr) {
					t.Errorf("escapeMarkdown() should not contain %q, got: %s", notWantStr, got)
				}
			}
		})
	}
}
