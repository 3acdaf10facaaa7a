package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/kiro-session/internal"
	"github.com/iksnae/kiro-session/internal/toolstatus"
	"github.com/spf13/cobra"
)

const abortReason = "Tool call aborted: the agent stopped before reporting a result"

var (
	followInput        string
	followKey          string
	followAbortPending bool
)

var followSummaryStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("62")).
	Bold(true)

// followCmd represents the follow command
var followCmd = &cobra.Command{
	Use:   "follow",
	Short: "Follow a live agent event stream",
	Long: `Read canonical messages, one JSON object per line, from a running agent
and print tool call status changes as they happen.

With --key the conversation is first seeded from stored history, so results
for tool calls made before the stream started are correlated too.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if followInput != "" && followInput != "-" {
			file, err := os.Open(followInput)
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			defer func() { _ = file.Close() }()
			in = file
		}

		conv, err := seedConversation()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		_, err = followConversation(ctx, conv, in, cmd.OutOrStdout(), followAbortPending)
		return err
	},
}

func seedConversation() (*internal.Conversation, error) {
	if followKey == "" {
		return internal.NewConversation("live"), nil
	}

	store, closeStore, err := openStore()
	if err != nil {
		return nil, err
	}
	defer closeStore()

	session, found := internal.LoadSession(store, followKey, fallbackModel())
	if !found {
		internal.LogWarn("No stored history for %s, following without it", followKey)
	}
	return internal.NewConversationFromSession(session), nil
}

// followConversation consumes r into conv, printing each status change. When
// abortPending is set, tool uses still pending at end of stream are resolved
// as errors.
func followConversation(ctx context.Context, conv *internal.Conversation, r io.Reader, out io.Writer, abortPending bool) (int, error) {
	unsubscribe := conv.Tracker().Subscribe(func(c toolstatus.Change) {
		_, _ = fmt.Fprintf(out, "%s %s %s\n", statusStyles[c.State].Render("●"), c.ToolUseID, timestampStyle.Render(string(c.State)))
	})
	defer unsubscribe()

	n, err := conv.Consume(ctx, r)
	if err != nil && ctx.Err() == nil {
		return n, err
	}

	if abortPending {
		conv.Terminate(abortReason)
	}

	pending := len(conv.Tracker().Pending())
	_, _ = fmt.Fprintln(out, followSummaryStyle.Render(fmt.Sprintf("📊 %d message(s) received, %d tool call(s) tracked, %d pending", n, conv.Tracker().Len(), pending)))
	return n, nil
}

func init() {
	rootCmd.AddCommand(followCmd)
	followCmd.Flags().StringVarP(&followInput, "input", "i", "", "Read the stream from a file instead of stdin")
	followCmd.Flags().StringVar(&followKey, "key", "", "Seed the conversation from stored history")
	followCmd.Flags().BoolVar(&followAbortPending, "abort-pending", false, "Mark tool calls still pending at end of stream as failed")
}
