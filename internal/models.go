package internal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/iksnae/kiro-session/internal/adapter"
)

// ConversationRecord is a parsed conversations_v2 row
type ConversationRecord struct {
	Key            string
	ConversationID string
	UpdatedAt      int64
	History        []adapter.HistoryEntry
}

type conversationPayload struct {
	ConversationID string          `json:"conversation_id"`
	History        json.RawMessage `json:"history"`
}

// ParseConversationRow parses the JSON value of a conversation row. A payload
// without a history array yields an empty history.
func ParseConversationRow(row ConversationRow) (*ConversationRecord, error) {
	var payload conversationPayload
	if err := json.Unmarshal([]byte(row.Value), &payload); err != nil {
		return nil, &ParseError{Source: "conversations_v2", Key: row.Key, Err: err}
	}

	record := &ConversationRecord{
		Key:            row.Key,
		ConversationID: row.ConversationID,
		UpdatedAt:      row.UpdatedAt,
	}
	if record.ConversationID == "" {
		record.ConversationID = payload.ConversationID
	}

	var raw []json.RawMessage
	if len(payload.History) > 0 && json.Unmarshal(payload.History, &raw) == nil {
		record.History = adapter.DecodeHistory(raw)
	}
	if record.History == nil {
		record.History = []adapter.HistoryEntry{}
	}

	return record, nil
}

// GetUpdatedAt returns a time.Time from the updated_at column (milliseconds)
func (r *ConversationRecord) GetUpdatedAt() time.Time {
	if r.UpdatedAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(r.UpdatedAt)
}

// String identifies the record in log output
func (r *ConversationRecord) String() string {
	return fmt.Sprintf("%s (%s)", r.Key, r.ConversationID)
}
