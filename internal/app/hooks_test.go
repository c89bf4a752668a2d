package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/mapdeck/internal/device"
	"github.com/five82/mapdeck/internal/lifecycle"
	"github.com/five82/mapdeck/internal/state"
)

type recordingPoster struct {
	mu       sync.Mutex
	events   []state.Event
	consents int
}

func (p *recordingPoster) Post(events ...state.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

func (p *recordingPoster) RequestConsent() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.consents++
}

type stubService struct{ err error }

func (s stubService) Available(context.Context) error { return s.err }

type stubGPS struct{ on bool }

func (g stubGPS) Enabled(context.Context) bool { return g.on }

func setupHooks(t *testing.T, serviceErr error, gps bool) (*lifecycle.Hooks, *state.Store, *recordingPoster, *device.Permissions) {
	t.Helper()
	hooks := &lifecycle.Hooks{}
	store := state.NewStore()
	out := &recordingPoster{}
	checker := &device.Checker{Service: stubService{err: serviceErr}, GPS: stubGPS{on: gps}}
	perms := device.NewPermissions(filepath.Join(t.TempDir(), "prefs.toml"))
	registerHooks(hooks, store, out, checker, perms)
	return hooks, store, out, perms
}

func TestHooks_UndecidedConsentPrompts(t *testing.T) {
	hooks, _, out, _ := setupHooks(t, nil, true)

	hooks.Start(context.Background())

	assert.Equal(t, []state.Event{state.GPSChanged{Enabled: true}}, out.events)
	assert.Equal(t, 1, out.consents)
}

func TestHooks_ServiceFailureAndStoredConsent(t *testing.T) {
	hooks, _, out, perms := setupHooks(t, errors.New("offline"), false)
	require.NoError(t, perms.Record(device.Deny))

	hooks.Start(context.Background())

	assert.Equal(t, []state.Event{
		state.APIUnsupported{},
		state.GPSChanged{Enabled: false},
		state.PermissionResult{Status: state.ShouldShowRationale},
	}, out.events)
	assert.Zero(t, out.consents)
}

func TestHooks_RerunOnEveryStart(t *testing.T) {
	hooks, _, out, perms := setupHooks(t, nil, true)
	require.NoError(t, perms.Record(device.Allow))

	hooks.Start(context.Background())
	hooks.Start(context.Background())

	assert.Len(t, out.events, 4)
	assert.Equal(t, state.PermissionResult{Status: state.Granted}, out.events[3])
}

func TestHooks_StopClosesStore(t *testing.T) {
	hooks, store, out, _ := setupHooks(t, nil, true)

	hooks.Stop()
	assert.True(t, store.Closed())
	assert.False(t, store.Dispatch(state.GPSChanged{Enabled: true}))

	hooks.Start(context.Background())
	assert.Empty(t, out.events)
}
