// Package location answers last-known-location queries.
//
// A Source returns at most one fix per call. A nil fix with a nil error
// means the source is reachable but has no position yet.
package location

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/mapdeck/internal/geo"
)

// Fix is one position report.
type Fix struct {
	Position geo.LatLng
	Accuracy float64 // meters, zero when unknown
	Time     time.Time
	Source   string
}

// Source answers last-known-location queries.
type Source interface {
	LastKnown(ctx context.Context) (*Fix, error)
}

// Source kinds accepted by New.
const (
	KindGPSD   = "gpsd"
	KindGoogle = "google"
	KindStatic = "static"
)

// ErrUnknownSource is returned by New for an unsupported kind.
var ErrUnknownSource = errors.New("unknown location source")

// Options collects what each source kind needs.
type Options struct {
	GPSDAddress  string
	GoogleAPIKey string
	Static       geo.LatLng
	Timeout      time.Duration
}

// New builds the Source named by kind.
func New(kind string, opts Options) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindGPSD, "":
		return NewGPSD(opts.GPSDAddress, opts.Timeout), nil
	case KindGoogle:
		return NewGoogle(opts.GoogleAPIKey)
	case KindStatic:
		if !opts.Static.Valid() {
			return nil, fmt.Errorf("static location %v out of range", opts.Static)
		}
		return Static{Position: opts.Static}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
	}
}

// Static always reports the same position.
type Static struct {
	Position geo.LatLng
}

// LastKnown implements Source.
func (s Static) LastKnown(ctx context.Context) (*Fix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Fix{Position: s.Position, Time: time.Now(), Source: KindStatic}, nil
}
