package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb/maptile"
)

func almost(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestWorld_OriginAtCenter(t *testing.T) {
	x, y := World(LatLng{}, 0)
	if !almost(x, 128, 1e-9) || !almost(y, 128, 1e-9) {
		t.Fatalf("World(0,0,z0) = (%v, %v), want (128, 128)", x, y)
	}
	x, y = World(LatLng{}, 1)
	if !almost(x, 256, 1e-9) || !almost(y, 256, 1e-9) {
		t.Fatalf("World(0,0,z1) = (%v, %v), want (256, 256)", x, y)
	}
}

func TestFromWorld_RoundTrip(t *testing.T) {
	cases := []LatLng{
		{Lat: 1.35, Lng: 103.87},
		{Lat: 51.507222, Lng: -0.1275},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 0, Lng: 0},
	}
	for _, ll := range cases {
		for _, z := range []float64{0, 3.5, 12, 18} {
			x, y := World(ll, z)
			got := FromWorld(x, y, z)
			if !almost(got.Lat, ll.Lat, 1e-6) || !almost(got.Lng, ll.Lng, 1e-6) {
				t.Fatalf("round trip %v at z%v = %v", ll, z, got)
			}
		}
	}
}

func TestTileAt(t *testing.T) {
	cases := []struct {
		name string
		ll   LatLng
		z    int
		want maptile.Tile
	}{
		{"london", LatLng{Lat: 51.507222, Lng: -0.1275}, 12, maptile.New(2046, 1362, 12)},
		{"marker", LatLng{Lat: 1.35, Lng: 103.87}, 18, maptile.New(206707, 130088, 18)},
		{"zoom clamped", LatLng{}, -4, maptile.New(0, 0, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TileAt(tc.ll, tc.z); got != tc.want {
				t.Fatalf("TileAt = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	got := LatLng{Lat: 89, Lng: 190}.Clamp()
	if !almost(got.Lat, MaxLatitude, 1e-9) || !almost(got.Lng, -170, 1e-9) {
		t.Fatalf("Clamp = %v, want (%v, -170)", got, MaxLatitude)
	}
	if ClampZoom(30) != MaxZoom || ClampZoom(-1) != MinZoom {
		t.Fatalf("ClampZoom did not clamp")
	}
}

func TestValid(t *testing.T) {
	if !(LatLng{Lat: 1.35, Lng: 103.87}).Valid() {
		t.Fatalf("marker should be valid")
	}
	for _, ll := range []LatLng{{Lat: 91}, {Lng: -181}, {Lat: math.NaN()}, {Lng: math.Inf(1)}} {
		if ll.Valid() {
			t.Fatalf("%v should be invalid", ll)
		}
	}
}

func TestDistance(t *testing.T) {
	a := LatLng{Lat: 1.35, Lng: 103.87}
	if d := Distance(a, a); d != 0 {
		t.Fatalf("Distance to self = %v, want 0", d)
	}
	// One degree of latitude is roughly 111 km.
	d := Distance(LatLng{Lat: 0, Lng: 0}, LatLng{Lat: 1, Lng: 0})
	if d < 110000 || d > 112500 {
		t.Fatalf("Distance one degree = %v, want ~111km", d)
	}
}

func TestLerp(t *testing.T) {
	a := LatLng{Lat: 0, Lng: 170}
	b := LatLng{Lat: 10, Lng: -170}
	mid := Lerp(a, b, 0.5)
	if !almost(mid.Lat, 5, 1e-9) || !almost(math.Abs(mid.Lng), 180, 1e-9) {
		t.Fatalf("Lerp across antimeridian = %v, want (5, ±180)", mid)
	}
	if got := Lerp(a, b, 1); !almost(got.Lng, -170, 1e-9) {
		t.Fatalf("Lerp(t=1) = %v, want %v", got, b)
	}
}

func TestMetersPerPixel(t *testing.T) {
	got := MetersPerPixel(0, 0)
	if !almost(got, earthCircumference/TileSize, 1e-6) {
		t.Fatalf("MetersPerPixel(0,0) = %v", got)
	}
	if MetersPerPixel(60, 10) >= MetersPerPixel(0, 10) {
		t.Fatalf("resolution should shrink away from the equator")
	}
}
