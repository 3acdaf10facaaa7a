package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/kiro-session/internal"
	"github.com/iksnae/kiro-session/internal/schema"
	"github.com/iksnae/kiro-session/internal/toolstatus"
)

func TestShowCommand(t *testing.T) {
	dir, settings := fixtureDir(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "by conversation id",
			args: []string{"show", "conv-1"},
			want: []string{"List the files", "execute_bash", "Model: claude-sonnet-4", "[4/4]", "There is one file: main.go"},
		},
		{
			name: "by directory",
			args: []string{"show", "/home/test/project"},
			want: []string{"Directory: /home/test/project"},
		},
		{
			name: "with limit",
			args: []string{"show", "conv-1", "--limit", "1"},
			want: []string{"[1/4]", "... (3 more message(s))"},
		},
		{
			name:    "unknown conversation",
			args:    []string{"show", "missing"},
			wantErr: true,
		},
		{
			name:    "missing argument",
			args:    []string{"show"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--storage", dir, "--settings", settings)
			out, err := executeCommand(t, "", args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("show error = %v, wantErr %v\n%s", err, tt.wantErr, out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestRenderSession(t *testing.T) {
	session := internal.CreateTestSessionWithMessages("s1", []schema.Message{
		&schema.UserPromptMessage{UUID: "p1", Prompt: "check the build"},
		&schema.AssistantMessage{UUID: "a1", Content: []schema.ContentBlock{
			schema.TextBlock{Text: "Running it now."},
			schema.ToolUseBlock{ID: "t1", Name: "execute_bash", Input: map[string]any{"command": "make"}},
		}},
		&schema.UserToolResultMessage{UUID: "r1", Content: []schema.ToolResultBlock{
			{ToolUseID: "t1", Content: []schema.TextBlock{{Text: "make: *** No rule"}}, IsError: true},
		}},
		&schema.AssistantMessage{UUID: "a2", Content: []schema.ContentBlock{}},
	})

	var buf bytes.Buffer
	renderSession(&buf, session, 0)
	out := buf.String()

	for _, want := range []string{
		"check the build",
		"Running it now.",
		`● execute_bash {"command":"make"}`,
		"t1 (error)",
		"make: *** No rule",
		"(empty message)",
		"[4/4]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestToolUseLine(t *testing.T) {
	tracker := toolstatus.NewTracker()
	use := schema.ToolUseBlock{ID: "t1", Name: "fs_read"}

	if got := toolUseLine(use, tracker); got != "● fs_read" {
		t.Errorf("toolUseLine() = %q, want %q", got, "● fs_read")
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{name: "short", text: "hello", width: 10, want: "hello"},
		{name: "wraps on words", text: "one two three four", width: 9, want: "one two\nthree\nfour"},
		{name: "keeps newlines", text: "a\nb", width: 10, want: "a\nb"},
		{name: "long word", text: "abcdefghijkl x", width: 5, want: "abcdefghijkl\nx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.width); got != tt.want {
				t.Errorf("wrapText() = %q, want %q", got, tt.want)
			}
		})
	}
}
