package adapter

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/iksnae/kiro-session/internal/schema"
)

// NormalizeTextBlocks turns an arbitrary decoded JSON value into text blocks.
// The result always holds at least one block.
//
// Lists are flattened one level: strings are kept, maps contribute their
// Text or text field, and anything else is serialized. Deeper nesting is
// serialized rather than recursed into.
func NormalizeTextBlocks(v any) []schema.TextBlock {
	switch val := v.(type) {
	case nil:
		return single("")
	case string:
		return single(val)
	case []any:
		return normalizeList(val)
	case map[string]any:
		return normalizeMap(val)
	}
	return single(marshal(v, true))
}

func normalizeList(items []any) []schema.TextBlock {
	var out []schema.TextBlock
	for _, item := range items {
		if !truthy(item) {
			continue
		}
		out = append(out, schema.TextBlock{Text: itemText(item)})
	}
	if len(out) == 0 {
		return single("")
	}
	return out
}

func itemText(item any) string {
	switch val := item.(type) {
	case string:
		return val
	case map[string]any:
		if text, ok := val["Text"].(string); ok {
			return text
		}
		if text, ok := val["text"].(string); ok {
			return text
		}
	}
	return marshal(item, false)
}

func normalizeMap(m map[string]any) []schema.TextBlock {
	_, hasStdout := m["stdout"]
	_, hasStderr := m["stderr"]
	if hasStdout || hasStderr {
		var out []schema.TextBlock
		if stdout, ok := m["stdout"].(string); ok && strings.TrimSpace(stdout) != "" {
			out = append(out, schema.TextBlock{Text: "Stdout:\n" + stdout})
		}
		if stderr, ok := m["stderr"].(string); ok && strings.TrimSpace(stderr) != "" {
			out = append(out, schema.TextBlock{Text: "Stderr:\n" + stderr})
		}
		if len(out) == 0 {
			return single(marshal(m, true))
		}
		return out
	}
	if text, ok := m["Text"].(string); ok {
		return single(text)
	}
	return single(marshal(m, true))
}

func single(text string) []schema.TextBlock {
	return []schema.TextBlock{{Text: text}}
}

// truthy reports whether v counts as a present value in the persisted
// history: null, empty strings, false and zero do not.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	case float64:
		return val != 0
	}
	return true
}

// marshal serializes v without HTML escaping, indented by two spaces when
// pretty is set.
func marshal(v any, pretty bool) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
