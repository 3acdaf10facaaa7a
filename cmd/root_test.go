package cmd

import (
	"strings"
	"testing"

	"github.com/iksnae/kiro-session/internal"
	"github.com/iksnae/kiro-session/testutil"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "version flag",
			args: []string{"--version"},
			want: "dev",
		},
		{
			name: "help flag",
			args: []string{"--help"},
			want: "kiro-session",
		},
		{
			name:    "nonexistent command",
			args:    []string{"nonexistent-command"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, "", tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("rootCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output should contain %q, got:\n%s", tt.want, out)
			}
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := map[string]bool{"list": false, "show": false, "export": false, "follow": false, "healthcheck": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("%s command not registered", name)
		}
	}
}

func TestOpenStore(t *testing.T) {
	dir, _ := fixtureDir(t)
	resetFlags()
	t.Cleanup(resetFlags)

	storagePath = dir
	copyDB = true
	store, closeStore, err := openStore()
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	if _, err := store.LoadConversation("conv-1"); err != nil {
		t.Errorf("LoadConversation() error = %v", err)
	}
	closeStore()

	storagePath = testutil.CreateTempDir(t)
	if _, _, err := openStore(); err == nil {
		t.Error("openStore() without a database should fail")
	}
}

func TestFallbackModel(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	resetFlags()
	t.Cleanup(resetFlags)

	path := dir + "/assistant-settings.json"
	if err := internal.SaveAssistantSettings(path, internal.AssistantSettings{DefaultModel: "from-settings"}); err != nil {
		t.Fatal(err)
	}

	settingsPath = path
	if got := fallbackModel(); got != "from-settings" {
		t.Errorf("fallbackModel() = %q, want from-settings", got)
	}

	modelOverride = "from-flag"
	if got := fallbackModel(); got != "from-flag" {
		t.Errorf("fallbackModel() with --model = %q, want from-flag", got)
	}
}
