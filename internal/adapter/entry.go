package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errInvalidEntry = errors.New("invalid history entry")

// HistoryEntry is one raw kiro-cli history record, decoded once into the
// facets it carries. A facet with the wrong shape is left nil.
type HistoryEntry struct {
	Prompt         *PromptFacet
	ToolUseResults *ToolUseResultsFacet
	ToolUse        *ToolUseFacet
	Response       *ResponseFacet
	// Metadata is the open request_metadata map.
	Metadata map[string]any
}

// PromptFacet is user.Prompt.
type PromptFacet struct {
	Prompt string
}

// ToolUseResultsFacet is user.ToolUseResults.
type ToolUseResultsFacet struct {
	Results []ToolResultRecord
}

// ToolUseFacet is assistant.ToolUse.
type ToolUseFacet struct {
	MessageID string
	ToolUses  []ToolUseRecord
}

// ResponseFacet is assistant.Response. Content is an arbitrary JSON value.
type ResponseFacet struct {
	MessageID string
	Content   any
}

// ToolUseRecord is a single tool invocation as persisted by the agent.
// Name/OrigName and Args/OrigArgs come from different producers.
type ToolUseRecord struct {
	ID       string
	Name     string
	OrigName string
	Args     map[string]any
	OrigArgs map[string]any
}

// ToolResultRecord is a single tool outcome as persisted by the agent.
type ToolResultRecord struct {
	ToolUseID string
	Content   any
	Status    string
	Stdout    string
	Stderr    string
}

// UnmarshalJSON decodes the facets of a raw entry. Only syntactically invalid
// JSON is an error; anything else that does not match an expected shape is
// dropped.
func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	if !json.Valid(data) {
		return errInvalidEntry
	}
	*e = HistoryEntry{}

	root := object(data)
	if root == nil {
		return nil
	}

	if user := object(root["user"]); user != nil {
		// kiro-cli nests the facets under user.content.
		facets := user
		if content := object(user["content"]); content != nil {
			facets = content
		}
		e.Prompt = decodePrompt(facets["Prompt"])
		e.ToolUseResults = decodeToolUseResults(facets["ToolUseResults"])
	}

	if assistant := object(root["assistant"]); assistant != nil {
		e.ToolUse = decodeToolUse(assistant["ToolUse"])
		e.Response = decodeResponse(assistant["Response"])
	}

	if meta, ok := value(root["request_metadata"]).(map[string]any); ok {
		e.Metadata = meta
	}
	return nil
}

// DecodeHistory decodes a raw history array. Entries that are not valid JSON
// are skipped.
func DecodeHistory(raw []json.RawMessage) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(raw))
	for _, r := range raw {
		var entry HistoryEntry
		if err := entry.UnmarshalJSON(r); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func decodePrompt(data json.RawMessage) *PromptFacet {
	obj := object(data)
	if obj == nil {
		return nil
	}
	prompt, ok := str(obj["prompt"])
	if !ok {
		return nil
	}
	return &PromptFacet{Prompt: prompt}
}

func decodeToolUseResults(data json.RawMessage) *ToolUseResultsFacet {
	obj := object(data)
	if obj == nil {
		return nil
	}
	items, ok := array(obj["tool_use_results"])
	if !ok {
		return nil
	}
	facet := &ToolUseResultsFacet{Results: make([]ToolResultRecord, 0, len(items))}
	for _, item := range items {
		rec := object(item)
		r := ToolResultRecord{}
		r.ToolUseID, _ = str(rec["tool_use_id"])
		r.Status, _ = str(rec["status"])
		r.Stdout, _ = str(rec["stdout"])
		r.Stderr, _ = str(rec["stderr"])
		if raw, ok := rec["content"]; ok {
			r.Content = value(raw)
		}
		facet.Results = append(facet.Results, r)
	}
	return facet
}

func decodeToolUse(data json.RawMessage) *ToolUseFacet {
	obj := object(data)
	if obj == nil {
		return nil
	}
	facet := &ToolUseFacet{}
	facet.MessageID, _ = str(obj["message_id"])
	items, _ := array(obj["tool_uses"])
	for _, item := range items {
		rec := object(item)
		u := ToolUseRecord{}
		u.ID, _ = str(rec["id"])
		u.Name, _ = str(rec["name"])
		u.OrigName, _ = str(rec["orig_name"])
		u.Args, _ = value(rec["args"]).(map[string]any)
		u.OrigArgs, _ = value(rec["orig_args"]).(map[string]any)
		facet.ToolUses = append(facet.ToolUses, u)
	}
	return facet
}

func decodeResponse(data json.RawMessage) *ResponseFacet {
	obj := object(data)
	if obj == nil {
		return nil
	}
	facet := &ResponseFacet{Content: value(obj["content"])}
	facet.MessageID, _ = str(obj["message_id"])
	return facet
}

// object returns the members of a JSON object, or nil for anything else.
func object(data json.RawMessage) map[string]json.RawMessage {
	if len(data) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	return obj
}

func array(data json.RawMessage) ([]json.RawMessage, bool) {
	if len(data) == 0 {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return nil, false
	}
	return items, true
}

func str(data json.RawMessage) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return s, true
}

// value decodes an arbitrary JSON value, keeping numbers as json.Number so
// they print back exactly as stored.
func value(data json.RawMessage) any {
	if len(data) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}
