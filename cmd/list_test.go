package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/iksnae/kiro-session/internal"
)

func TestListCommand(t *testing.T) {
	dir, settings := fixtureDir(t)

	out, err := executeCommand(t, "", "list", "--storage", dir, "--settings", settings)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	for _, want := range []string{"Found 1 conversation(s)", "List the files", "conv-1", "project"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output should contain %q, got:\n%s", want, out)
		}
	}

	if _, err := executeCommand(t, "", "list", "--storage", dir+"/missing"); err == nil {
		t.Error("list with a missing data file should fail")
	}
}

func TestDisplaySessions(t *testing.T) {
	tests := []struct {
		name     string
		sessions []*internal.Session
		want     []string
	}{
		{
			name:     "no sessions",
			sessions: nil,
			want:     []string{"No conversations found"},
		},
		{
			name: "sessions",
			sessions: []*internal.Session{
				internal.CreateTestSession("abcdef123456"),
				{ID: "untitled", Metadata: internal.Metadata{}},
			},
			want: []string{"Found 2 conversation(s)", "abcdef12", "List the files", "Untitled", "abcdef123456"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			displaySessions(&buf, tt.sessions)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestFormatUpdated(t *testing.T) {
	if got := formatUpdated(""); got != "—" {
		t.Errorf("formatUpdated(empty) = %q", got)
	}
	if got := formatUpdated("not a date"); got != "not a date" {
		t.Errorf("formatUpdated(invalid) = %q", got)
	}
	if got := formatUpdated("2001-02-03T04:05:06Z"); got != "2001-02-03" {
		t.Errorf("formatUpdated(old) = %q", got)
	}
	recent := time.Now().Add(-time.Minute).Format(time.RFC3339)
	if got := formatUpdated(recent); !strings.HasPrefix(got, "Today") {
		t.Errorf("formatUpdated(recent) = %q", got)
	}
}

func TestShortenPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/home/test/project", want: "project"},
		{path: "/home/test/project/", want: "project"},
		{path: `C:\Users\me\repo`, want: "repo"},
		{path: "/", want: "/"},
		{path: "/work/a-very-long-directory-name-indeed", want: "a-very-long-directory-..."},
	}
	for _, tt := range tests {
		if got := shortenPath(tt.path, 25); got != tt.want {
			t.Errorf("shortenPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
