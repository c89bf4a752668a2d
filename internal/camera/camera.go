// Package camera tracks the map camera and eases it between positions.
package camera

import (
	"time"

	"github.com/five82/mapdeck/internal/geo"
)

// DefaultDuration is how long Animate takes to reach its target.
const DefaultDuration = 600 * time.Millisecond

// Position is where the camera looks.
type Position struct {
	Target geo.LatLng
	Zoom   float64
}

type animation struct {
	from, to Position
	start    time.Time
}

// Camera holds the current position and at most one running animation.
// It is owned by the UI loop and is not safe for concurrent use.
type Camera struct {
	pos      Position
	anim     *animation
	Duration time.Duration
	now      func() time.Time
}

// New returns a camera resting at pos.
func New(pos Position) *Camera {
	return &Camera{pos: clampPosition(pos), Duration: DefaultDuration, now: time.Now}
}

// WithClock replaces the time source. Intended for tests.
func (c *Camera) WithClock(now func() time.Time) *Camera {
	c.now = now
	return c
}

// Position returns the current camera position.
func (c *Camera) Position() Position {
	return c.pos
}

// Moving reports whether an animation is in progress.
func (c *Camera) Moving() bool {
	return c.anim != nil
}

// Move jumps to pos and cancels any animation.
func (c *Camera) Move(pos Position) {
	c.anim = nil
	c.pos = clampPosition(pos)
}

// Animate starts easing from the current position to target at zoom.
func (c *Camera) Animate(target geo.LatLng, zoom float64) {
	c.anim = &animation{
		from:  c.pos,
		to:    clampPosition(Position{Target: target, Zoom: zoom}),
		start: c.now(),
	}
	if c.Duration <= 0 {
		c.finish()
	}
}

// Step advances the animation to the current time and reports whether it
// is still running.
func (c *Camera) Step() bool {
	if c.anim == nil {
		return false
	}
	elapsed := c.now().Sub(c.anim.start)
	if elapsed >= c.Duration {
		c.finish()
		return false
	}
	t := easeInOutCubic(float64(elapsed) / float64(c.Duration))
	c.pos = Position{
		Target: geo.Lerp(c.anim.from.Target, c.anim.to.Target, t),
		Zoom:   c.anim.from.Zoom + (c.anim.to.Zoom-c.anim.from.Zoom)*t,
	}
	return true
}

func (c *Camera) finish() {
	c.pos = c.anim.to
	c.anim = nil
}

func clampPosition(p Position) Position {
	return Position{Target: p.Target.Clamp(), Zoom: geo.ClampZoom(p.Zoom)}
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := 2*t - 2
	return 0.5*f*f*f + 1
}
