// Package channeltest provides an in-memory channel.Messenger for tests.
package channeltest

import (
	"context"
	"sync"

	"github.com/edgard/channelcat/internal/channel"
)

// Call is one recorded messenger call.
type Call struct {
	Method    string
	Chat      string
	MessageID int
	Text      string
	Opts      channel.SendOptions
}

// Messenger records calls and hands out increasing message ids starting at
// FirstID (default 100).
type Messenger struct {
	FirstID int

	// SendErr, when set, fails every send.
	SendErr error
	// EditErr, when set, decides the result of each edit by message id.
	EditErr func(messageID int) error

	mu     sync.Mutex
	nextID int
	calls  []Call
}

// SendMessage implements channel.Messenger.
func (m *Messenger) SendMessage(_ context.Context, chat, text string, opts channel.SendOptions) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendErr != nil {
		m.calls = append(m.calls, Call{Method: "send", Chat: chat, Text: text, Opts: opts})
		return 0, m.SendErr
	}
	if m.nextID == 0 {
		m.nextID = m.FirstID
		if m.nextID == 0 {
			m.nextID = 100
		}
	}
	id := m.nextID
	m.nextID++
	m.calls = append(m.calls, Call{Method: "send", Chat: chat, MessageID: id, Text: text, Opts: opts})
	return id, nil
}

// EditMessageText implements channel.Messenger.
func (m *Messenger) EditMessageText(_ context.Context, chat string, messageID int, text string, opts channel.SendOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Method: "edit", Chat: chat, MessageID: messageID, Text: text, Opts: opts})
	if m.EditErr != nil {
		return m.EditErr(messageID)
	}
	return nil
}

// Calls returns every recorded call in order.
func (m *Messenger) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// Sends returns the recorded sends.
func (m *Messenger) Sends() []Call {
	return m.filter("send")
}

// Edits returns the recorded edits.
func (m *Messenger) Edits() []Call {
	return m.filter("edit")
}

func (m *Messenger) filter(method string) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}
