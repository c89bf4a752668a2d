package location

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/five82/mapdeck/internal/geo"
)

const (
	// DefaultGPSDAddress is where gpsd listens out of the box.
	DefaultGPSDAddress = "127.0.0.1:2947"

	defaultGPSDTimeout = 3 * time.Second
	watchCommand       = `?WATCH={"enable":true,"json":true}` + "\n"
)

// GPSD reads the next position report from a gpsd daemon.
type GPSD struct {
	Address string
	Timeout time.Duration
	dialer  net.Dialer
}

// NewGPSD returns a gpsd source. Blank values fall back to defaults.
func NewGPSD(address string, timeout time.Duration) *GPSD {
	address = strings.TrimSpace(address)
	if address == "" {
		address = DefaultGPSDAddress
	}
	if timeout <= 0 {
		timeout = defaultGPSDTimeout
	}
	return &GPSD{Address: address, Timeout: timeout}
}

// tpv is the subset of a gpsd TPV report we read.
type tpv struct {
	Class string   `json:"class"`
	Mode  int      `json:"mode"`
	Time  string   `json:"time"`
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
	EPH   float64  `json:"eph"`
	EPX   float64  `json:"epx"`
	EPY   float64  `json:"epy"`
}

// LastKnown implements Source. It returns nil, nil when gpsd has no 2D
// fix before the timeout.
func (g *GPSD) LastKnown(ctx context.Context) (*Fix, error) {
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	conn, err := g.dialer.DialContext(ctx, "tcp", g.Address)
	if err != nil {
		return nil, fmt.Errorf("dial gpsd: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	if _, err := conn.Write([]byte(watchCommand)); err != nil {
		return nil, fmt.Errorf("send watch: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 16*1024), 256*1024)
	for scanner.Scan() {
		fix, ok := parseTPV(scanner.Bytes())
		if ok {
			return fix, nil
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			if parent := context.Cause(ctx); parent != nil && !errors.Is(parent, context.DeadlineExceeded) {
				return nil, parent
			}
			return nil, nil
		}
		return nil, fmt.Errorf("read gpsd: %w", err)
	}
	return nil, nil
}

func parseTPV(line []byte) (*Fix, bool) {
	var report tpv
	if err := json.Unmarshal(line, &report); err != nil {
		return nil, false
	}
	if report.Class != "TPV" || report.Mode < 2 || report.Lat == nil || report.Lon == nil {
		return nil, false
	}
	pos := geo.LatLng{Lat: *report.Lat, Lng: *report.Lon}
	if !pos.Valid() {
		return nil, false
	}
	fix := &Fix{Position: pos, Source: KindGPSD, Time: time.Now()}
	if ts, err := time.Parse(time.RFC3339Nano, report.Time); err == nil {
		fix.Time = ts
	}
	switch {
	case report.EPH > 0:
		fix.Accuracy = report.EPH
	case report.EPX > 0 || report.EPY > 0:
		fix.Accuracy = max(report.EPX, report.EPY)
	}
	return fix, true
}
