// Package toolstatus tracks the completion state of tool invocations across
// the canonical messages of one conversation.
package toolstatus

import (
	"sort"
	"sync"

	"github.com/iksnae/kiro-session/internal/schema"
)

// State is the completion state of a tool invocation.
type State string

const (
	Pending State = "pending"
	Success State = "success"
	Error   State = "error"
)

// Change describes one state transition.
type Change struct {
	ToolUseID string
	State     State
}

// Listener is notified after each state change.
type Listener func(Change)

type subscription struct {
	id int
	fn Listener
}

// Tracker maps tool-use identifiers to their state. One Tracker belongs to
// exactly one conversation; create a new one per conversation.
//
// Messages are expected on a single timeline; the lock only makes lookups
// from other goroutines safe.
type Tracker struct {
	mu        sync.RWMutex
	states    map[string]State
	listeners []subscription
	nextID    int
}

// NewTracker creates an empty Tracker
func NewTracker() *Tracker {
	return &Tracker{states: make(map[string]State)}
}

// Observe applies the effects of one message: tool uses not seen before
// become pending, and tool results set success or error regardless of the
// prior state.
func (t *Tracker) Observe(msg schema.Message) {
	var changes []Change

	t.mu.Lock()
	for _, use := range schema.ToolUses(msg) {
		if use.ID == "" {
			continue
		}
		if _, ok := t.states[use.ID]; ok {
			continue
		}
		t.states[use.ID] = Pending
		changes = append(changes, Change{ToolUseID: use.ID, State: Pending})
	}
	for _, result := range schema.ToolResults(msg) {
		if result.ToolUseID == "" {
			continue
		}
		state := Success
		if result.IsError {
			state = Error
		}
		if prev, ok := t.states[result.ToolUseID]; ok && prev == state {
			continue
		}
		t.states[result.ToolUseID] = state
		changes = append(changes, Change{ToolUseID: result.ToolUseID, State: state})
	}
	listeners := make([]subscription, len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.Unlock()

	for _, change := range changes {
		for _, l := range listeners {
			l.fn(change)
		}
	}
}

// ObserveAll applies messages in order.
func (t *Tracker) ObserveAll(messages []schema.Message) {
	for _, msg := range messages {
		t.Observe(msg)
	}
}

// Status returns the state of a tool use. The boolean is false when the
// identifier has never been observed; display code treats that as pending.
func (t *Tracker) Status(toolUseID string) (State, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	state, ok := t.states[toolUseID]
	return state, ok
}

// Subscribe registers fn and returns a function that removes it. Listeners
// run synchronously in registration order and may call Status, but must not
// call Observe.
func (t *Tracker) Subscribe(fn Listener) (unsubscribe func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners = append(t.listeners, subscription{id: id, fn: fn})
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			for i, s := range t.listeners {
				if s.id == id {
					t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Pending returns the sorted identifiers still awaiting a result.
func (t *Tracker) Pending() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var ids []string
	for id, state := range t.states {
		if state == Pending {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Snapshot returns a copy of the table.
func (t *Tracker) Snapshot() map[string]State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]State, len(t.states))
	for id, state := range t.states {
		out[id] = state
	}
	return out
}

// Len returns the number of tracked tool uses.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.states)
}
