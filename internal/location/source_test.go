package location

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"github.com/five82/mapdeck/internal/geo"
)

// fakeGPSD accepts one connection, waits for the WATCH command and writes
// the given lines.
func fakeGPSD(t *testing.T, lines ...string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		reader := bufio.NewReader(conn)
		cmd, err := reader.ReadString('\n')
		if err != nil || !strings.HasPrefix(cmd, "?WATCH=") {
			return
		}
		for _, line := range lines {
			_, _ = conn.Write([]byte(line + "\n"))
		}
		// Hold the connection open until the client gives up.
		_, _ = reader.ReadString('\n')
	}()
	return ln.Addr().String()
}

func TestGPSD_ReturnsFirstTPVWithFix(t *testing.T) {
	addr := fakeGPSD(t,
		`{"class":"VERSION","release":"3.25"}`,
		`{"class":"TPV","mode":1}`,
		`not json`,
		`{"class":"TPV","mode":3,"time":"2026-10-19T08:00:00.000Z","lat":1.35,"lon":103.87,"eph":4.5}`,
	)

	src := NewGPSD(addr, time.Second)
	fix, err := src.LastKnown(context.Background())
	require.NoError(t, err)
	require.NotNil(t, fix)
	assert.Equal(t, geo.LatLng{Lat: 1.35, Lng: 103.87}, fix.Position)
	assert.Equal(t, 4.5, fix.Accuracy)
	assert.Equal(t, KindGPSD, fix.Source)
	assert.Equal(t, 2026, fix.Time.Year())
}

func TestGPSD_NoFixBeforeTimeoutIsNil(t *testing.T) {
	addr := fakeGPSD(t, `{"class":"TPV","mode":1}`)

	src := NewGPSD(addr, 150*time.Millisecond)
	fix, err := src.LastKnown(context.Background())
	require.NoError(t, err)
	assert.Nil(t, fix)
}

func TestGPSD_DialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = NewGPSD(addr, time.Second).LastKnown(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial gpsd")
}

func TestGPSD_Defaults(t *testing.T) {
	g := NewGPSD("  ", 0)
	assert.Equal(t, DefaultGPSDAddress, g.Address)
	assert.Equal(t, defaultGPSDTimeout, g.Timeout)
}

func TestParseTPV_Accuracy(t *testing.T) {
	fix, ok := parseTPV([]byte(`{"class":"TPV","mode":2,"lat":10,"lon":20,"epx":3,"epy":7}`))
	require.True(t, ok)
	assert.Equal(t, 7.0, fix.Accuracy)

	_, ok = parseTPV([]byte(`{"class":"TPV","mode":2,"lat":100,"lon":20}`))
	assert.False(t, ok, "out of range latitude")
	_, ok = parseTPV([]byte(`{"class":"SKY","mode":3,"lat":1,"lon":2}`))
	assert.False(t, ok, "not a TPV")
}

func TestGoogle_Geolocate(t *testing.T) {
	var gotKey string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"location":{"lat":1.35,"lng":103.87},"accuracy":42}`))
	}))
	t.Cleanup(server.Close)

	src, err := NewGoogle("test-key", maps.WithBaseURL(server.URL))
	require.NoError(t, err)

	fix, err := src.LastKnown(context.Background())
	require.NoError(t, err)
	require.NotNil(t, fix)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, true, gotBody["considerIp"])
	assert.Equal(t, geo.LatLng{Lat: 1.35, Lng: 103.87}, fix.Position)
	assert.Equal(t, 42.0, fix.Accuracy)
	assert.Equal(t, KindGoogle, fix.Source)
}

func TestGoogle_RequiresKey(t *testing.T) {
	_, err := NewGoogle("   ")
	require.Error(t, err)
}

func TestStatic(t *testing.T) {
	src := Static{Position: geo.LatLng{Lat: 1.35, Lng: 103.87}}
	fix, err := src.LastKnown(context.Background())
	require.NoError(t, err)
	assert.Equal(t, src.Position, fix.Position)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.LastKnown(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNew(t *testing.T) {
	src, err := New("GPSD", Options{})
	require.NoError(t, err)
	assert.IsType(t, &GPSD{}, src)

	src, err = New(KindStatic, Options{Static: geo.LatLng{Lat: 1, Lng: 2}})
	require.NoError(t, err)
	assert.IsType(t, Static{}, src)

	_, err = New(KindStatic, Options{Static: geo.LatLng{Lat: 200}})
	require.Error(t, err)

	_, err = New(KindGoogle, Options{})
	require.Error(t, err)

	_, err = New("carrier-pigeon", Options{})
	require.ErrorIs(t, err, ErrUnknownSource)
}
