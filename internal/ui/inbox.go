package ui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mapdeck/internal/state"
)

const inboxSize = 64

// Inbox carries results from lifecycle hooks, which run off the UI loop,
// back into Update.
type Inbox struct {
	ch chan inboxMsg
}

type inboxMsg struct {
	events  []state.Event
	consent bool
}

// NewInbox returns an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{ch: make(chan inboxMsg, inboxSize)}
}

// Post queues events for dispatch on the UI loop.
func (i *Inbox) Post(events ...state.Event) {
	if len(events) == 0 {
		return
	}
	i.send(inboxMsg{events: events})
}

// RequestConsent asks the UI to show the location consent prompt.
func (i *Inbox) RequestConsent() {
	i.send(inboxMsg{consent: true})
}

func (i *Inbox) send(msg inboxMsg) {
	select {
	case i.ch <- msg:
	default:
		slog.Warn("ui inbox full, dropping message", "events", len(msg.events), "consent", msg.consent)
	}
}

func (i *Inbox) wait() tea.Cmd {
	return func() tea.Msg {
		return <-i.ch
	}
}

// notices holds the single transient message shown in the footer.
type notices struct {
	text      string
	seq       int
	scheduled int
}

type noticeExpiredMsg struct{ seq int }

// Notify implements locate.Notifier.
func (n *notices) Notify(msg string) {
	n.text = msg
	n.seq++
}

// expireCmd schedules removal of the newest notice once.
func (n *notices) expireCmd() tea.Cmd {
	if n.text == "" || n.scheduled == n.seq {
		return nil
	}
	n.scheduled = n.seq
	seq := n.seq
	return tea.Tick(NoticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (n *notices) expire(seq int) {
	if seq == n.seq {
		n.text = ""
	}
}
