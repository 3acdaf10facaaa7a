package internal

import (
	"database/sql"
	"errors"
	"fmt"
)

// DefaultListLimit is the number of conversations listed when no limit is given
const DefaultListLimit = 20

// ErrConversationNotFound is returned when no row matches a lookup
var ErrConversationNotFound = errors.New("conversation not found")

// HistoryStore is the read-only source of persisted conversations
type HistoryStore interface {
	LoadConversation(id string) (*ConversationRecord, error)
	ListRecentConversations(limit int) ([]*ConversationRecord, error)
}

// Storage reads conversations from the kiro-cli data file
type Storage struct {
	db   *sql.DB
	path string
}

// NewStorage creates a new Storage instance
func NewStorage(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// OpenStorage opens the data file at path read-only
func OpenStorage(path string) (*Storage, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}
	return &Storage{db: db, path: path}, nil
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// LoadConversation loads the conversation whose key or conversation id is id
func (s *Storage) LoadConversation(id string) (*ConversationRecord, error) {
	row, err := QueryConversation(s.db, id)
	if err != nil {
		return nil, &StorageError{Path: s.path, Op: "query", Err: err}
	}
	if row == nil {
		return nil, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}
	return ParseConversationRow(*row)
}

// ListRecentConversations loads up to limit conversations, newest first.
// Rows whose payload cannot be parsed are skipped.
func (s *Storage) ListRecentConversations(limit int) ([]*ConversationRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := QueryRecentConversations(s.db, limit)
	if err != nil {
		return nil, &StorageError{Path: s.path, Op: "query", Err: err}
	}

	records := make([]*ConversationRecord, 0, len(rows))
	for _, row := range rows {
		record, err := ParseConversationRow(row)
		if err != nil {
			LogWarn("Failed to parse conversation payload: %v", err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
