package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateConversationsTableSQL mirrors the kiro-cli conversations_v2 schema
const CreateConversationsTableSQL = `
	CREATE TABLE IF NOT EXISTS conversations_v2 (
		key TEXT NOT NULL,
		conversation_id TEXT NOT NULL,
		value TEXT NOT NULL,
		created_at INTEGER,
		updated_at INTEGER,
		PRIMARY KEY (key, conversation_id)
	)`

// CreateInMemoryDB creates an in-memory SQLite database for testing
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	// Every pooled connection would otherwise see its own empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(CreateConversationsTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create conversations_v2 table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestDB creates a test database with sample conversations
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)

	InsertConversation(t, db, "/home/test/project", "conv-1", SampleConversationJSON, 2000)
	InsertConversation(t, db, "/home/test/other", "conv-2", `{"conversation_id":"conv-2","history":[{"user":{"content":{"Prompt":{"prompt":"second"}}}}]}`, 3000)
	InsertConversation(t, db, "/home/test/broken", "conv-3", `{"history": [`, 1000)

	return db
}

// InsertConversation inserts a conversation row into the database
func InsertConversation(t *testing.T, db *sql.DB, key, conversationID, value string, updatedAt int64) {
	t.Helper()
	insertSQL := "INSERT INTO conversations_v2 (key, conversation_id, value, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	if _, err := db.Exec(insertSQL, key, conversationID, value, updatedAt, updatedAt); err != nil {
		t.Fatalf("Failed to insert conversation: %v", err)
	}
}
