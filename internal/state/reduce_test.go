package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allEvents() []Event {
	return []Event{
		APIUnsupported{},
		RequestLocationFocus{Want: true},
		RequestLocationFocus{Want: false},
		PermissionResult{Status: Granted},
		PermissionResult{Status: ShouldShowRationale},
		PermissionResult{Status: PermanentDenied},
		GPSChanged{Enabled: true},
		GPSChanged{Enabled: false},
		SetDialogVisible{Visible: true},
		SetDialogVisible{Visible: false},
		SetStylePickerVisible{Visible: true},
		SetStylePickerVisible{Visible: false},
		SetMapKind{Kind: KindTerrain},
		SetMapKind{Kind: KindHybrid},
	}
}

func TestDefaultMapState(t *testing.T) {
	s := DefaultMapState()
	assert.False(t, s.APIUnavailable)
	assert.True(t, s.WantsLocationFocus)
	assert.Equal(t, Granted, s.Permission)
	assert.False(t, s.GPSEnabled)
	assert.True(t, s.ShowDialog)
	assert.False(t, s.ShowStylePicker)
	assert.Equal(t, Properties{Kind: KindNormal}, s.Properties)
}

func TestReduce_TransitionTable(t *testing.T) {
	base := DefaultMapState()

	tests := []struct {
		name   string
		start  MapState
		event  Event
		mutate func(*MapState)
	}{
		{
			name:  "api unsupported hides picker",
			start: func() MapState { s := base; s.ShowStylePicker = true; return s }(),
			event: APIUnsupported{},
			mutate: func(s *MapState) {
				s.APIUnavailable = true
				s.ShowStylePicker = false
			},
		},
		{
			name:  "request focus shows dialog",
			start: func() MapState { s := base; s.ShowDialog = false; s.WantsLocationFocus = false; return s }(),
			event: RequestLocationFocus{Want: true},
			mutate: func(s *MapState) {
				s.WantsLocationFocus = true
				s.ShowDialog = true
			},
		},
		{
			name:  "cancel focus still shows dialog",
			start: func() MapState { s := base; s.ShowDialog = false; return s }(),
			event: RequestLocationFocus{Want: false},
			mutate: func(s *MapState) {
				s.WantsLocationFocus = false
				s.ShowDialog = true
			},
		},
		{
			name:  "permission result uses previous status",
			start: func() MapState { s := base; s.Permission = PermanentDenied; s.PermissionReported = true; return s }(),
			event: PermissionResult{Status: Granted},
			mutate: func(s *MapState) {
				s.Properties.MyLocationEnabled = false
				s.Permission = Granted
			},
		},
		{
			name:  "permission result after granted enables layer",
			start: func() MapState { s := base; s.PermissionReported = true; return s }(),
			event: PermissionResult{Status: PermanentDenied},
			mutate: func(s *MapState) {
				s.Properties.MyLocationEnabled = true
				s.Permission = PermanentDenied
			},
		},
		{
			name:  "first permission result is lagged",
			start: base,
			event: PermissionResult{Status: Granted},
			mutate: func(s *MapState) {
				s.Properties.MyLocationEnabled = false
				s.PermissionReported = true
			},
		},
		{
			name:  "gps changed",
			start: base,
			event: GPSChanged{Enabled: true},
			mutate: func(s *MapState) {
				s.GPSEnabled = true
			},
		},
		{
			name:  "dialog hidden",
			start: base,
			event: SetDialogVisible{Visible: false},
			mutate: func(s *MapState) {
				s.ShowDialog = false
			},
		},
		{
			name:  "picker shown",
			start: base,
			event: SetStylePickerVisible{Visible: true},
			mutate: func(s *MapState) {
				s.ShowStylePicker = true
			},
		},
		{
			name:  "map kind",
			start: base,
			event: SetMapKind{Kind: KindTerrain},
			mutate: func(s *MapState) {
				s.Properties.Kind = KindTerrain
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.start
			tt.mutate(&want)
			got := Reduce(tt.start, tt.event)
			require.Equal(t, want, got)
		})
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	start := DefaultMapState()
	before := start
	for _, ev := range allEvents() {
		_ = Reduce(start, ev)
	}
	require.Equal(t, before, start)
}

func TestReduce_NilEventKeepsState(t *testing.T) {
	start := DefaultMapState()
	require.Equal(t, start, Reduce(start, nil))
}

func TestReduce_APIUnavailableIsMonotonic(t *testing.T) {
	events := allEvents()
	s := Reduce(DefaultMapState(), APIUnsupported{})
	// Walk several permutations of every event and check the flag sticks.
	for round := 0; round < 3; round++ {
		for i := range events {
			ev := events[(i*7+round)%len(events)]
			s = Reduce(s, ev)
			require.Truef(t, s.APIUnavailable, "APIUnavailable cleared by %#v", ev)
		}
	}
}

func TestReduce_MyLocationLagsOneResult(t *testing.T) {
	s := Reduce(DefaultMapState(), PermissionResult{Status: Granted})
	assert.False(t, s.Properties.MyLocationEnabled, "first result has no reported predecessor")
	s = Reduce(s, PermissionResult{Status: Granted})
	assert.True(t, s.Properties.MyLocationEnabled)

	s = Reduce(DefaultMapState(), PermissionResult{Status: ShouldShowRationale})
	s = Reduce(s, PermissionResult{Status: Granted})
	assert.False(t, s.Properties.MyLocationEnabled)
	s = Reduce(s, PermissionResult{Status: Granted})
	assert.True(t, s.Properties.MyLocationEnabled)

	s = Reduce(s, PermissionResult{Status: PermanentDenied})
	assert.True(t, s.Properties.MyLocationEnabled, "still follows the previous Granted")
	s = Reduce(s, PermissionResult{Status: PermanentDenied})
	assert.False(t, s.Properties.MyLocationEnabled)
}

func TestCanFocusLocation(t *testing.T) {
	s := DefaultMapState()
	assert.False(t, s.CanFocusLocation(), "gps off by default")
	s.GPSEnabled = true
	assert.True(t, s.CanFocusLocation())
	s.Permission = ShouldShowRationale
	assert.False(t, s.CanFocusLocation())
	s.Permission = Granted
	s.WantsLocationFocus = false
	assert.False(t, s.CanFocusLocation())
}

func TestParseMapKind(t *testing.T) {
	for kind, name := range kindNames {
		got, ok := ParseMapKind("  " + name + " ")
		require.True(t, ok, name)
		require.Equal(t, kind, got)
		require.Equal(t, name, kind.String())
	}
	got, ok := ParseMapKind("roadmap")
	assert.False(t, ok)
	assert.Equal(t, KindNormal, got)
	assert.Equal(t, "unknown", MapKind(42).String())
	assert.Equal(t, "unknown", PermissionStatus(9).String())
}
