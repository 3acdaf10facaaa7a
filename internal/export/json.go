package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/kiro-session/internal"
)

// JSONExporter writes the whole session as one indented document. Messages
// keep the wire shape of the live stream, so an exported "messages" array can
// be decoded with schema.DecodeMessage element by element.
type JSONExporter struct{}

// Export writes session to w
func (e *JSONExporter) Export(session *internal.Session, w io.Writer) error {
	if session == nil {
		return errNilSession
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(session)
}

// Extension is "json"
func (e *JSONExporter) Extension() string {
	return "json"
}
