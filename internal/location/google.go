package location

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"googlemaps.github.io/maps"

	"github.com/five82/mapdeck/internal/geo"
)

const googleTimeout = 10 * time.Second

// Google asks the Google Geolocation API for a position estimate.
type Google struct {
	client *maps.Client
	mu     sync.Mutex
}

// NewGoogle builds a Google source. Extra client options are passed through
// to the maps client.
func NewGoogle(apiKey string, opts ...maps.ClientOption) (*Google, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("google geolocation needs an API key")
	}
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &Google{client: client}, nil
}

// LastKnown implements Source.
func (g *Google) LastKnown(ctx context.Context) (*Fix, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, googleTimeout)
	defer cancel()

	resp, err := g.client.Geolocate(ctx, &maps.GeolocationRequest{ConsiderIP: true})
	if err != nil {
		return nil, fmt.Errorf("geolocate: %w", err)
	}
	if resp == nil {
		return nil, nil
	}
	pos := geo.LatLng{Lat: resp.Location.Lat, Lng: resp.Location.Lng}
	if !pos.Valid() {
		return nil, fmt.Errorf("geolocate returned invalid position %v", pos)
	}
	return &Fix{
		Position: pos,
		Accuracy: resp.Accuracy,
		Time:     time.Now(),
		Source:   KindGoogle,
	}, nil
}
