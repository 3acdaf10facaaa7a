package export

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/iksnae/kiro-session/internal"
	"github.com/iksnae/kiro-session/internal/schema"
)

func TestYAMLExporter_Export(t *testing.T) {
	tests := []struct {
		name    string
		session *internal.Session
		want    []string
	}{
		{
			name:    "basic session",
			session: internal.CreateTestSession("test1"),
			want: []string{
				"id: test1",
				"source: conversations_v2",
				"type: user_prompt",
				"prompt: List the files",
				"name: execute_bash",
				"text: |-",
				"message_count: 4",
			},
		},
		{
			name:    "empty session",
			session: internal.CreateTestSessionWithMessages("test2", []schema.Message{}),
			want:    []string{"id: test2", "messages: []"},
		},
		{
			name: "strings that look like other types stay strings",
			session: internal.CreateTestSessionWithMessages("test3", []schema.Message{
				&schema.UserPromptMessage{UUID: "p1", Prompt: "true"},
			}),
			want: []string{`prompt: "true"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &YAMLExporter{}

			if err := exporter.Export(tt.session, &buf); err != nil {
				t.Fatalf("YAMLExporter.Export() error = %v", err)
			}

			output := buf.String()
			var doc map[string]interface{}
			if err := yaml.Unmarshal([]byte(output), &doc); err != nil {
				t.Fatalf("Output is not valid YAML: %v\nOutput: %s", err, output)
			}
			if doc["id"] != tt.session.ID {
				t.Errorf("id = %v, want %s", doc["id"], tt.session.ID)
			}

			for _, wantStr := range tt.want {
				if !strings.Contains(output, wantStr) {
					t.Errorf("Output should contain %q, got:\n%s", wantStr, output)
				}
			}
			if strings.Contains(output, "{\"") {
				t.Errorf("Output should use block style, got:\n%s", output)
			}
		})
	}
}

func TestYAMLExporter_Extension(t *testing.T) {
	exporter := &YAMLExporter{}
	if got := exporter.Extension(); got != "yaml" {
		t.Errorf("YAMLExporter.Extension() = %v, want yaml", got)
	}
}
