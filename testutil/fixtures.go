package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// SampleConversationJSON is a conversation payload with a prompt, a tool
// call, its result and a reply, in the shape kiro-cli persists.
const SampleConversationJSON = `{
	"conversation_id": "conv-1",
	"history": [
		{
			"user": {"content": {"Prompt": {"prompt": "List the files"}}},
			"assistant": {"ToolUse": {"message_id": "m-1", "tool_uses": [
				{"id": "tooluse_1", "name": "execute_bash", "orig_name": "execute_bash", "args": {"command": "ls"}}
			]}},
			"request_metadata": {"message_id": "p-1", "model_id": "claude-sonnet-4"}
		},
		{
			"user": {"content": {"ToolUseResults": {"tool_use_results": [
				{"tool_use_id": "tooluse_1", "content": [{"Json": {"exit_status": "0", "stdout": "main.go", "stderr": ""}}], "status": "Success"}
			]}}},
			"assistant": {"Response": {"message_id": "m-2", "content": "There is one file: main.go"}},
			"request_metadata": {"message_id": "r-2"}
		}
	]
}`

// CreateSQLiteFixture creates a kiro-cli data file with one sample conversation
func CreateSQLiteFixture(t *testing.T, dbPath string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(CreateConversationsTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	InsertConversation(t, db, "/home/test/project", "conv-1", SampleConversationJSON, 2000)
}
