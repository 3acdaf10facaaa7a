package internal

import (
	"time"

	"github.com/iksnae/kiro-session/internal/adapter"
)

const sourceHistory = "conversations_v2"

// LoadSession loads and adapts the conversation identified by id. Any store
// failure is logged and treated as "no history": the returned session is
// empty and found is false.
func LoadSession(store HistoryStore, id, fallbackModel string) (session *Session, found bool) {
	session = &Session{ID: id, Key: id, Source: sourceHistory}

	record, err := store.LoadConversation(id)
	if err != nil {
		LogWarn("No history for %s: %v", id, err)
		session.summarize()
		return session, false
	}

	return NewSessionFromRecord(record, fallbackModel), true
}

// LoadRecentSessions adapts the most recent conversations. A store failure
// yields an empty list.
func LoadRecentSessions(store HistoryStore, limit int, fallbackModel string) []*Session {
	records, err := store.ListRecentConversations(limit)
	if err != nil {
		LogWarn("Failed to list conversations: %v", err)
		return nil
	}

	sessions := make([]*Session, 0, len(records))
	for _, record := range records {
		sessions = append(sessions, NewSessionFromRecord(record, fallbackModel))
	}
	return sessions
}

// NewSessionFromRecord runs the history adapter over a stored conversation
func NewSessionFromRecord(record *ConversationRecord, fallbackModel string) *Session {
	session := &Session{
		ID:       record.ConversationID,
		Key:      record.Key,
		Source:   sourceHistory,
		Messages: adapter.Adapt(record.History, record.ConversationID, fallbackModel),
	}
	if session.ID == "" {
		session.ID = record.Key
	}
	if t := record.GetUpdatedAt(); !t.IsZero() {
		session.Metadata.UpdatedAt = t.Format(time.RFC3339)
	}
	session.summarize()
	LogDebug("Adapted %d history entries of %s into %d messages", len(record.History), record, len(session.Messages))
	return session
}
