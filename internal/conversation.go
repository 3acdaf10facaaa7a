package internal

import (
	"sync"

	"github.com/google/uuid"

	"github.com/iksnae/kiro-session/internal/schema"
	"github.com/iksnae/kiro-session/internal/toolstatus"
)

const sourceLive = "live"

// Conversation owns the append-only message sequence of one conversation and
// the tool status table derived from it.
type Conversation struct {
	id      string
	tracker *toolstatus.Tracker

	// appendMu serializes Append so each message is fully applied before the
	// next; mu guards messages for readers, including tracker listeners.
	appendMu sync.Mutex
	mu       sync.RWMutex
	messages []schema.Message
}

// NewConversation creates an empty conversation with its own tracker
func NewConversation(id string) *Conversation {
	return &Conversation{id: id, tracker: toolstatus.NewTracker()}
}

// NewConversationFromSession seeds a conversation with replayed history
func NewConversationFromSession(session *Session) *Conversation {
	c := NewConversation(session.ID)
	c.AppendAll(session.Messages)
	return c
}

// ID returns the conversation identifier
func (c *Conversation) ID() string {
	return c.id
}

// Tracker returns the tool status table of this conversation
func (c *Conversation) Tracker() *toolstatus.Tracker {
	return c.tracker
}

// Append adds msg to the sequence and updates tool status
func (c *Conversation) Append(msg schema.Message) {
	if isNilMessage(msg) {
		return
	}
	c.appendMu.Lock()
	defer c.appendMu.Unlock()

	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()

	c.tracker.Observe(msg)
}

func isNilMessage(msg schema.Message) bool {
	switch m := msg.(type) {
	case nil:
		return true
	case *schema.UserPromptMessage:
		return m == nil
	case *schema.UserToolResultMessage:
		return m == nil
	case *schema.AssistantMessage:
		return m == nil
	}
	return false
}

// AppendAll appends messages in order
func (c *Conversation) AppendAll(messages []schema.Message) {
	for _, msg := range messages {
		c.Append(msg)
	}
}

// Messages returns a copy of the sequence
func (c *Conversation) Messages() []schema.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]schema.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Terminate resolves every pending tool use with a synthetic error result,
// as when the agent process exits before reporting them. It returns the
// appended message, or nil when nothing was pending.
func (c *Conversation) Terminate(reason string) *schema.UserToolResultMessage {
	pending := c.tracker.Pending()
	if len(pending) == 0 {
		return nil
	}

	msg := &schema.UserToolResultMessage{
		UUID:           uuid.NewString(),
		ConversationID: c.id,
		Content:        make([]schema.ToolResultBlock, 0, len(pending)),
	}
	for _, id := range pending {
		msg.Content = append(msg.Content, schema.ToolResultBlock{
			ToolUseID: id,
			Content:   []schema.TextBlock{{Text: reason}},
			IsError:   true,
		})
	}
	c.Append(msg)
	LogDebug("Terminated %d pending tool use(s) in %s", len(pending), c.id)
	return msg
}

// Session snapshots the conversation
func (c *Conversation) Session() *Session {
	session := &Session{ID: c.id, Source: sourceLive, Messages: c.Messages()}
	session.summarize()
	return session
}
