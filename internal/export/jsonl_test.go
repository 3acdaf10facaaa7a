package export

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/iksnae/kiro-session/internal"
	"github.com/iksnae/kiro-session/internal/schema"
	"github.com/iksnae/kiro-session/internal/toolstatus"
)

func TestJSONLExporter_Export(t *testing.T) {
	tests := []struct {
		name    string
		session *internal.Session
	}{
		{
			name:    "empty session",
			session: internal.CreateTestSessionWithMessages("test1", []schema.Message{}),
		},
		{
			name:    "session with messages",
			session: internal.CreateTestSession("test2"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &JSONLExporter{}

			if err := exporter.Export(tt.session, &buf); err != nil {
				t.Fatalf("JSONLExporter.Export() error = %v", err)
			}

			output := buf.String()
			if len(tt.session.Messages) == 0 {
				if output != "" {
					t.Errorf("Empty session should produce empty output, got: %q", output)
				}
				return
			}

			lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
			if len(lines) != len(tt.session.Messages) {
				t.Fatalf("got %d lines, want %d", len(lines), len(tt.session.Messages))
			}
			for i, line := range lines {
				msg, err := schema.DecodeMessage([]byte(line))
				if err != nil {
					t.Fatalf("Line %d does not decode: %v", i, err)
				}
				if !reflect.DeepEqual(msg, tt.session.Messages[i]) {
					t.Errorf("Line %d = %#v, want %#v", i, msg, tt.session.Messages[i])
				}
			}
		})
	}
}

func TestJSONLExporter_Replay(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(internal.CreateTestSession("test3"), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	conv := internal.NewConversation("test3")
	n, err := conv.Consume(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if n != 4 {
		t.Errorf("Consume() appended %d messages, want 4", n)
	}
	if state, _ := conv.Tracker().Status("test3-t1"); state != toolstatus.Success {
		t.Errorf("replayed tool status = %q, want success", state)
	}
}

func TestJSONLExporter_Extension(t *testing.T) {
	exporter := &JSONLExporter{}
	if got := exporter.Extension(); got != "jsonl" {
		t.Errorf("JSONLExporter.Extension() = %v, want jsonl", got)
	}
}
