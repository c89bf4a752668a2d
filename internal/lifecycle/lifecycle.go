// Package lifecycle runs start and stop hooks around a screen session.
//
// The hosting shell registers hooks before the screen starts, calls Start
// whenever the screen (re)gains the foreground and Stop exactly once when
// it is torn down. Stop runs hooks in reverse registration order.
package lifecycle

import (
	"context"
	"log/slog"
	"sync"
)

// Hook is one participant in the screen lifecycle. Either func may be nil.
type Hook struct {
	Name    string
	OnStart func(ctx context.Context)
	OnStop  func()
}

// Hooks is an ordered set of lifecycle hooks.
type Hooks struct {
	mu      sync.Mutex
	hooks   []registered
	nextID  int
	stopped bool
}

type registered struct {
	id int
	Hook
}

// Register adds h. It returns a func that removes h without running OnStop.
func (l *Hooks) Register(h Hook) (deregister func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return func() {}
	}
	l.nextID++
	id := l.nextID
	l.hooks = append(l.hooks, registered{id: id, Hook: h})
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, r := range l.hooks {
			if r.id == id {
				l.hooks = append(l.hooks[:i], l.hooks[i+1:]...)
				return
			}
		}
	}
}

// Start runs every OnStart in registration order. It does nothing after Stop.
func (l *Hooks) Start(ctx context.Context) {
	for _, h := range l.snapshot() {
		if h.OnStart == nil {
			continue
		}
		slog.Debug("lifecycle start", "hook", h.Name)
		h.OnStart(ctx)
	}
}

// Stop runs every OnStop in reverse order. Later calls do nothing.
func (l *Hooks) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	hooks := l.hooks
	l.hooks = nil
	l.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		if hooks[i].OnStop == nil {
			continue
		}
		slog.Debug("lifecycle stop", "hook", hooks[i].Name)
		hooks[i].OnStop()
	}
}

// Len reports how many hooks are registered.
func (l *Hooks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hooks)
}

func (l *Hooks) snapshot() []registered {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return nil
	}
	out := make([]registered, len(l.hooks))
	copy(out, l.hooks)
	return out
}
