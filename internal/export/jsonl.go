package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/kiro-session/internal"
)

// JSONLExporter writes one canonical message frame per line. The output can
// be replayed into a conversation with Conversation.Consume.
type JSONLExporter struct{}

// Export exports a session to JSONL format
func (e *JSONLExporter) Export(session *internal.Session, w io.Writer) error {
	if session == nil {
		return errNilSession
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for i, msg := range session.Messages {
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("failed to encode message %d: %w", i, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
