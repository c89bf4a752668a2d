package device

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/mapdeck/internal/state"
)

const (
	defaultUserAgent = "mapdeck/0.1"
	defaultTimeout   = 2 * time.Second
)

// ServiceChecker reports whether the map backend can serve requests.
type ServiceChecker interface {
	Available(ctx context.Context) error
}

// GPSChecker reports whether a GPS provider is reachable.
type GPSChecker interface {
	Enabled(ctx context.Context) bool
}

// Ensure the checkers satisfy the checker interfaces at compile time.
var (
	_ ServiceChecker = (*TileServer)(nil)
	_ GPSChecker     = (*GPSDialer)(nil)
)

// TileServer fetches a single tile from the configured tile server.
type TileServer struct {
	tileURL   string
	http      *http.Client
	userAgent string
}

// NewTileServer builds a checker for a {z}/{x}/{y} tile URL template.
func NewTileServer(tileURL string, timeout time.Duration) *TileServer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &TileServer{
		tileURL:   strings.TrimSpace(tileURL),
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// Available requests tile 0/0/0 and returns an error when the server cannot
// be reached or answers with a status of 400 or above.
func (p *TileServer) Available(ctx context.Context) error {
	if p == nil {
		return fmt.Errorf("tile server is nil")
	}
	target, err := tileZeroURL(p.tileURL)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("tile server %s returned status %d", target.Host, resp.StatusCode)
	}
	return nil
}

func tileZeroURL(template string) (*url.URL, error) {
	if template == "" {
		return nil, fmt.Errorf("tile url is empty")
	}
	replacer := strings.NewReplacer("{z}", "0", "{x}", "0", "{y}", "0", "{s}", "a")
	raw := replacer.Replace(template)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse tile url %q: %w", template, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("tile url %q must be http or https", template)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("tile url %q has no host", template)
	}
	return u, nil
}

// GPSDialer dials gpsd to see whether it is running.
type GPSDialer struct {
	Address string
	Timeout time.Duration
	dialer  net.Dialer
}

// NewGPSDialer returns a checker for the gpsd daemon at address.
func NewGPSDialer(address string, timeout time.Duration) *GPSDialer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &GPSDialer{Address: strings.TrimSpace(address), Timeout: timeout}
}

// Enabled reports whether a TCP connection to gpsd succeeds within the timeout.
func (p *GPSDialer) Enabled(ctx context.Context) bool {
	if p == nil || p.Address == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	conn, err := p.dialer.DialContext(ctx, "tcp", p.Address)
	if err != nil {
		slog.Debug("gpsd unreachable", "address", p.Address, "error", err)
		return false
	}
	_ = conn.Close()
	return true
}

// Checker turns check results into state events.
type Checker struct {
	Service ServiceChecker
	GPS     GPSChecker
}

// Check tests the map backend and GPS. A failed backend check yields
// APIUnsupported; GPS always yields GPSChanged.
func (c *Checker) Check(ctx context.Context) []state.Event {
	var events []state.Event
	if c.Service != nil {
		if err := c.Service.Available(ctx); err != nil {
			slog.Warn("map service unavailable", "error", err)
			events = append(events, state.APIUnsupported{})
		} else {
			slog.Debug("map service available")
		}
	}
	return append(events, c.CheckGPS(ctx))
}

// CheckGPS checks only the GPS provider.
func (c *Checker) CheckGPS(ctx context.Context) state.Event {
	enabled := c.GPS != nil && c.GPS.Enabled(ctx)
	slog.Debug("gps checked", "enabled", enabled)
	return state.GPSChanged{Enabled: enabled}
}
