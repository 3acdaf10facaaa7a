package adapter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iksnae/kiro-session/internal/schema"
)

func texts(blocks []schema.TextBlock) []string {
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.Text)
	}
	return out
}

func TestNormalizeTextBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "null", input: `null`, want: []string{""}},
		{name: "string", input: `"hello"`, want: []string{"hello"}},
		{name: "mixed list", input: `[{"Text": "a"}, "b", {"text": "c"}, {}]`, want: []string{"a", "b", "c", "{}"}},
		{name: "falsy elements dropped", input: `[null, "", false, 0, "x"]`, want: []string{"x"}},
		{name: "empty list", input: `[]`, want: []string{""}},
		{name: "only falsy", input: `[null, ""]`, want: []string{""}},
		{name: "nested list is serialized", input: `[["a", "b"]]`, want: []string{`["a","b"]`}},
		{name: "non-string Text falls through", input: `[{"Text": 1, "text": "t"}]`, want: []string{"t"}},
		{name: "stdout only", input: `{"stdout": "ok", "stderr": ""}`, want: []string{"Stdout:\nok"}},
		{name: "stdout and stderr", input: `{"stdout": "out", "stderr": "err"}`, want: []string{"Stdout:\nout", "Stderr:\nerr"}},
		{name: "blank streams", input: `{"stdout": " ", "exit_status": 1}`, want: []string{"{\n  \"exit_status\": 1,\n  \"stdout\": \" \"\n}"}},
		{name: "Text map", input: `{"Text": "body"}`, want: []string{"body"}},
		{name: "other map", input: `{"Json": {"a": 1}}`, want: []string{"{\n  \"Json\": {\n    \"a\": 1\n  }\n}"}},
		{name: "number", input: `12.50`, want: []string{"12.50"}},
		{name: "bool", input: `true`, want: []string{"true"}},
		{name: "no html escaping", input: `{"k": "<a&b>"}`, want: []string{"{\n  \"k\": \"<a&b>\"\n}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := value(json.RawMessage(tt.input))
			assert.Equal(t, tt.want, texts(NormalizeTextBlocks(v)))
		})
	}
}

func TestNormalizeTextBlocks_NeverEmpty(t *testing.T) {
	inputs := []any{nil, "", []any{}, map[string]any{}, []any{nil}, map[string]any{"stderr": ""}}
	for _, in := range inputs {
		assert.NotEmpty(t, NormalizeTextBlocks(in), "input %#v", in)
	}
}
