// Package geo converts between geographic coordinates, Web Mercator world
// pixels and terminal cells.
package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/maptile"
)

const (
	// TileSize is the edge of one slippy-map tile in world pixels.
	TileSize = 256

	// MaxLatitude is the Web Mercator latitude limit.
	MaxLatitude = 85.0511

	MinZoom = 0
	MaxZoom = 21

	earthCircumference = 40075016.686 // meters at equator
)

// LatLng is a geographic point in degrees.
type LatLng struct {
	Lat, Lng float64
}

func (ll LatLng) String() string {
	return fmt.Sprintf("%.5f, %.5f", ll.Lat, ll.Lng)
}

// Point returns ll as an orb point (lon, lat).
func (ll LatLng) Point() orb.Point {
	return orb.Point{ll.Lng, ll.Lat}
}

// FromPoint converts an orb point back to LatLng.
func FromPoint(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// Valid reports whether ll is a finite coordinate inside the usual ranges.
func (ll LatLng) Valid() bool {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return false
	}
	return ll.Lat >= -90 && ll.Lat <= 90 && ll.Lng >= -180 && ll.Lng <= 180
}

// Clamp keeps ll within the Web Mercator latitude limit and wraps longitude.
func (ll LatLng) Clamp() LatLng {
	ll.Lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, ll.Lat))
	for ll.Lng < -180 {
		ll.Lng += 360
	}
	for ll.Lng > 180 {
		ll.Lng -= 360
	}
	return ll
}

// ClampZoom keeps z within [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// World returns the world pixel coordinates of ll at a possibly fractional
// zoom level.
func World(ll LatLng, zoom float64) (x, y float64) {
	f := maptile.Fraction(ll.Clamp().Point(), 0)
	scale := TileSize * math.Pow(2, zoom)
	return f[0] * scale, f[1] * scale
}

// FromWorld converts world pixel coordinates back to a geographic point.
func FromWorld(x, y, zoom float64) LatLng {
	n := TileSize * math.Pow(2, zoom)
	lng := x/n*360 - 180
	latRad := math.Atan(math.Sinh(math.Pi * (1 - 2*y/n)))
	return LatLng{Lat: latRad * 180 / math.Pi, Lng: lng}.Clamp()
}

// TileAt returns the slippy-map tile containing ll at integer zoom z.
func TileAt(ll LatLng, z int) maptile.Tile {
	z = int(ClampZoom(float64(z)))
	return maptile.At(ll.Clamp().Point(), maptile.Zoom(z))
}

// MetersPerPixel returns the ground resolution at latitude and zoom.
func MetersPerPixel(lat, zoom float64) float64 {
	return earthCircumference * math.Cos(lat*math.Pi/180) / (math.Pow(2, zoom) * TileSize)
}

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b LatLng) float64 {
	return orbgeo.Distance(a.Point(), b.Point())
}

// Lerp interpolates between a and b; t=0 yields a, t=1 yields b.
func Lerp(a, b LatLng, t float64) LatLng {
	dLng := b.Lng - a.Lng
	// Take the short way around the antimeridian.
	if dLng > 180 {
		dLng -= 360
	} else if dLng < -180 {
		dLng += 360
	}
	return LatLng{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lng: a.Lng + dLng*t,
	}.Clamp()
}
