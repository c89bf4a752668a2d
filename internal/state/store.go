package state

import "sync"

// Observer is called after every replacement with the event that caused it
// and the new state.
type Observer func(Event, MapState)

// Store owns the MapState of one screen session.
type Store struct {
	mu        sync.Mutex
	state     MapState
	observers []observerEntry
	nextID    int
	closed    bool
}

type observerEntry struct {
	id int
	fn Observer
}

// NewStore returns a Store holding DefaultMapState.
func NewStore() *Store {
	return &Store{state: DefaultMapState()}
}

// State returns the current state.
func (s *Store) State() MapState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch replaces the state with Reduce(current, ev) and notifies
// observers synchronously. It returns false, and changes nothing, once the
// store has been closed.
func (s *Store) Dispatch(ev Event) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.state = Reduce(s.state, ev)
	next := s.state
	observers := make([]observerEntry, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(ev, next)
	}
	return true
}

// Subscribe registers fn for every later replacement. The returned func
// removes it again and is safe to call more than once.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observerEntry{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Store) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o.id == id {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Close tears the store down. Later dispatches are ignored.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.observers = nil
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
