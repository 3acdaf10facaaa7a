package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const conversationColumns = "key, conversation_id, value, updated_at"

// OpenDatabase opens a SQLite database in read-only mode
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// readOnlyDSN builds a file: URI for path. Characters such as '?' and '#'
// are percent-encoded so they stay part of the file name.
func readOnlyDSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path // C:/... on Windows
	}
	u := url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}
	return u.String()
}

// ConversationRow is a raw row of the conversations_v2 table
type ConversationRow struct {
	Key            string
	ConversationID string
	Value          string
	UpdatedAt      int64
}

// QueryConversation returns the most recent row whose key or conversation_id
// matches id, or nil when there is none.
func QueryConversation(db *sql.DB, id string) (*ConversationRow, error) {
	query := "SELECT " + conversationColumns + " FROM conversations_v2 WHERE key = ? OR conversation_id = ? ORDER BY updated_at DESC LIMIT 1"
	row, err := scanConversation(db.QueryRow(query, id, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return row, nil
}

// QueryRecentConversations returns up to limit rows, most recently updated first
func QueryRecentConversations(db *sql.DB, limit int) ([]ConversationRow, error) {
	query := "SELECT " + conversationColumns + " FROM conversations_v2 ORDER BY updated_at DESC LIMIT ?"
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var result []ConversationRow
	for rows.Next() {
		row, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		result = append(result, *row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversation(s rowScanner) (*ConversationRow, error) {
	var (
		row            ConversationRow
		conversationID sql.NullString
		value          sql.NullString
		updatedAt      sql.NullInt64
	)
	if err := s.Scan(&row.Key, &conversationID, &value, &updatedAt); err != nil {
		return nil, err
	}
	row.ConversationID = conversationID.String
	row.Value = value.String
	row.UpdatedAt = updatedAt.Int64
	return &row, nil
}
