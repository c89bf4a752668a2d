package device

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/mapdeck/internal/prefs"
	"github.com/five82/mapdeck/internal/state"
)

func TestPermissions_Flow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	p := NewPermissions(path)

	_, ok := p.Evaluate()
	assert.False(t, ok, "undecided consent yields no status")

	require.NoError(t, p.Record(Deny))
	status, ok := p.Evaluate()
	require.True(t, ok)
	assert.Equal(t, state.ShouldShowRationale, status)

	require.NoError(t, p.Record(Allow))
	status, ok = p.Evaluate()
	require.True(t, ok)
	assert.Equal(t, state.Granted, status)

	require.NoError(t, p.Record(DenyAlways))
	status, ok = p.Evaluate()
	require.True(t, ok)
	assert.Equal(t, state.PermanentDenied, status)
	assert.Equal(t, 2, p.Consent().Denials)

	require.NoError(t, p.Reset())
	_, ok = p.Evaluate()
	assert.False(t, ok, "reset forgets the answer")
}

func TestPermissions_KeepsOtherPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, prefs.Save(path, prefs.Prefs{Theme: "Slate", MapKind: "terrain"}))

	require.NoError(t, NewPermissions(path).Record(Allow))

	loaded, err := prefs.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Slate", loaded.Theme)
	assert.Equal(t, "terrain", loaded.MapKind)
	assert.True(t, loaded.Consent.Granted)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		consent prefs.Consent
		want    state.PermissionStatus
		ok      bool
	}{
		{prefs.Consent{}, state.Granted, false},
		{prefs.Consent{Granted: true, Denials: 4}, state.Granted, true},
		{prefs.Consent{NeverAsk: true, Denials: 1}, state.PermanentDenied, true},
		{prefs.Consent{Denials: 1}, state.ShouldShowRationale, true},
	}
	for _, tc := range tests {
		got, ok := Status(tc.consent)
		assert.Equal(t, tc.ok, ok, "%+v", tc.consent)
		if ok {
			assert.Equal(t, tc.want, got, "%+v", tc.consent)
		}
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "deny-always", DenyAlways.String())
	assert.Equal(t, "Decision(9)", Decision(9).String())
}
