package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/iksnae/kiro-session/internal"
)

var errNilSession = errors.New("nil session")

// Exporter writes one conversation, as canonical messages, in a single format
type Exporter interface {
	Export(session *internal.Session, w io.Writer) error
	Extension() string
}

// NewExporter returns the exporter for a --format value; "md" and "yml" are
// accepted as short names.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}
