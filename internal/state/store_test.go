package state

import (
	"sync"
	"testing"
)

func TestStore_DispatchReplacesState(t *testing.T) {
	s := NewStore()

	if got := s.State(); got != DefaultMapState() {
		t.Fatalf("initial state = %#v, want defaults", got)
	}

	if ok := s.Dispatch(SetStylePickerVisible{Visible: true}); !ok {
		t.Fatalf("Dispatch returned false on open store")
	}
	snap := s.State()
	if !snap.ShowStylePicker {
		t.Fatalf("ShowStylePicker = false, want true")
	}

	// The returned value is a copy.
	snap.ShowStylePicker = false
	if !s.State().ShowStylePicker {
		t.Fatalf("State() should return an independent copy")
	}
}

func TestStore_ObserversSeeEachReplacement(t *testing.T) {
	s := NewStore()

	var got []Event
	var states []MapState
	unsubscribe := s.Subscribe(func(ev Event, st MapState) {
		got = append(got, ev)
		states = append(states, st)
	})

	s.Dispatch(GPSChanged{Enabled: true})
	s.Dispatch(SetMapKind{Kind: KindHybrid})

	if len(got) != 2 {
		t.Fatalf("observer called %d times, want 2", len(got))
	}
	if got[0] != (GPSChanged{Enabled: true}) {
		t.Fatalf("first event = %#v, want GPSChanged", got[0])
	}
	if !states[1].GPSEnabled || states[1].Properties.Kind != KindHybrid {
		t.Fatalf("second state = %#v, want gps on and hybrid", states[1])
	}

	unsubscribe()
	unsubscribe()
	s.Dispatch(SetDialogVisible{Visible: false})
	if len(got) != 2 {
		t.Fatalf("observer called after unsubscribe")
	}
}

func TestStore_ObserverMayReadState(t *testing.T) {
	s := NewStore()
	var seen MapState
	s.Subscribe(func(Event, MapState) {
		seen = s.State()
	})
	s.Dispatch(APIUnsupported{})
	if !seen.APIUnavailable {
		t.Fatalf("observer read stale state %#v", seen)
	}
}

func TestStore_CloseIgnoresLateDispatch(t *testing.T) {
	s := NewStore()
	calls := 0
	s.Subscribe(func(Event, MapState) { calls++ })

	s.Close()
	if !s.Closed() {
		t.Fatalf("Closed() = false after Close")
	}
	if ok := s.Dispatch(RequestLocationFocus{Want: false}); ok {
		t.Fatalf("Dispatch returned true after Close")
	}
	if !s.State().WantsLocationFocus {
		t.Fatalf("state changed after Close")
	}
	if calls != 0 {
		t.Fatalf("observer called %d times after Close", calls)
	}

	unsubscribe := s.Subscribe(func(Event, MapState) { calls++ })
	unsubscribe()
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Dispatch(GPSChanged{Enabled: i%2 == 0})
			_ = s.State()
		}(i)
	}
	wg.Wait()
	s.Close()
}
