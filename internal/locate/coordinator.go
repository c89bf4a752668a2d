// Package locate turns a pending location-focus request into exactly one
// last-known-location query and one camera animation.
package locate

import (
	"context"
	"log/slog"
	"sync"

	"github.com/five82/mapdeck/internal/geo"
	"github.com/five82/mapdeck/internal/location"
	"github.com/five82/mapdeck/internal/state"
)

// FocusZoom is the zoom level used when centering on the user.
const FocusZoom = 18

// UnavailableNotice is shown when no fix could be obtained.
const UnavailableNotice = "current location unavailable"

// Animator moves the camera.
type Animator interface {
	Animate(target geo.LatLng, zoom float64)
}

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(msg string)
}

// Store is the part of state.Store the coordinator needs.
type Store interface {
	Dispatch(ev state.Event) bool
	Subscribe(fn state.Observer) func()
	Closed() bool
}

// Request is one issued location query.
type Request struct {
	seq    uint64
	source location.Source
}

// Result is the outcome of Request.Run.
type Result struct {
	seq uint64
	Fix *location.Fix
	Err error
}

// Run performs the query. It never retries.
func (r Request) Run(ctx context.Context) Result {
	if r.source == nil {
		return Result{seq: r.seq}
	}
	fix, err := r.source.LastKnown(ctx)
	return Result{seq: r.seq, Fix: fix, Err: err}
}

// Coordinator decides when to query and applies the answer.
type Coordinator struct {
	store    Store
	source   location.Source
	animator Animator
	notifier Notifier

	mu       sync.Mutex
	armed    bool
	inFlight bool
	seq      uint64
	unsub    func()
}

// New returns an armed coordinator. It re-arms whenever the store sees
// RequestLocationFocus{Want: true}.
func New(store Store, source location.Source, animator Animator, notifier Notifier) *Coordinator {
	c := &Coordinator{
		store:    store,
		source:   source,
		animator: animator,
		notifier: notifier,
		armed:    true,
	}
	c.unsub = store.Subscribe(c.observe)
	return c
}

func (c *Coordinator) observe(ev state.Event, _ state.MapState) {
	if req, ok := ev.(state.RequestLocationFocus); ok && req.Want {
		c.mu.Lock()
		c.armed = true
		c.mu.Unlock()
	}
}

// Next returns a request when s wants focus, focus is possible, the
// coordinator is armed and nothing is in flight. Issuing disarms it.
func (c *Coordinator) Next(s state.MapState) (Request, bool) {
	if !s.CanFocusLocation() {
		return Request{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.armed || c.inFlight {
		return Request{}, false
	}
	c.armed = false
	c.inFlight = true
	c.seq++
	slog.Debug("location query issued", "seq", c.seq)
	return Request{seq: c.seq, source: c.source}, true
}

// Complete applies a result on the UI loop. A success animates the camera
// once and clears the focus request. Failures only notify. Results that
// arrive after the store is closed are dropped.
func (c *Coordinator) Complete(r Result) {
	c.mu.Lock()
	if r.seq == c.seq {
		c.inFlight = false
	}
	c.mu.Unlock()

	if c.store.Closed() {
		slog.Debug("location result dropped after teardown", "seq", r.seq)
		return
	}
	if r.Err != nil || r.Fix == nil {
		if r.Err != nil {
			slog.Warn("location query failed", "error", r.Err)
		} else {
			slog.Info("location query returned no fix")
		}
		if c.notifier != nil {
			c.notifier.Notify(UnavailableNotice)
		}
		return
	}

	slog.Info("location fix", "position", r.Fix.Position.String(), "accuracy_m", r.Fix.Accuracy, "source", r.Fix.Source)
	if c.animator != nil {
		c.animator.Animate(r.Fix.Position, FocusZoom)
	}
	c.store.Dispatch(state.RequestLocationFocus{Want: false})
}

// Close stops watching the store.
func (c *Coordinator) Close() {
	if c.unsub != nil {
		c.unsub()
	}
}
