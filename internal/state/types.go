package state

import "strings"

// PermissionStatus is the last known outcome of the location consent flow.
type PermissionStatus int

const (
	Granted PermissionStatus = iota
	ShouldShowRationale
	PermanentDenied
)

func (p PermissionStatus) String() string {
	switch p {
	case Granted:
		return "granted"
	case ShouldShowRationale:
		return "should_show_rationale"
	case PermanentDenied:
		return "permanent_denied"
	default:
		return "unknown"
	}
}

// MapKind selects how the map surface is drawn.
type MapKind int

const (
	KindNormal MapKind = iota
	KindSatellite
	KindTerrain
	KindHybrid
	KindNone
)

var kindNames = map[MapKind]string{
	KindNormal:    "normal",
	KindSatellite: "satellite",
	KindTerrain:   "terrain",
	KindHybrid:    "hybrid",
	KindNone:      "none",
}

func (k MapKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseMapKind maps a persisted name back to a MapKind. Unknown names
// report false.
func ParseMapKind(name string) (MapKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, n := range kindNames {
		if n == name {
			return kind, true
		}
	}
	return KindNormal, false
}

// Properties are the rendering properties of the map surface.
type Properties struct {
	Kind              MapKind
	MyLocationEnabled bool
}

// MapState is the single source of truth for rendering the map screen.
// It is copied by value and never mutated in place by the Store.
type MapState struct {
	APIUnavailable     bool
	WantsLocationFocus bool
	Permission         PermissionStatus
	PermissionReported bool
	GPSEnabled         bool
	ShowDialog         bool
	ShowStylePicker    bool
	Properties         Properties
}

// DefaultMapState returns the state a screen session starts with.
func DefaultMapState() MapState {
	return MapState{
		WantsLocationFocus: true,
		Permission:         Granted,
		ShowDialog:         true,
		Properties:         Properties{Kind: KindNormal},
	}
}

// CanFocusLocation reports whether a location fix may be requested.
func (s MapState) CanFocusLocation() bool {
	return s.WantsLocationFocus && s.Permission == Granted && s.GPSEnabled
}
