package state

// Event is the only way external input reaches the map state. The set of
// variants is closed: only types in this package implement it.
type Event interface {
	mapEvent()
}

// APIUnsupported reports that the map backend is unusable for the session.
type APIUnsupported struct{}

// RequestLocationFocus asks for (or cancels) recentering on the next fix.
type RequestLocationFocus struct {
	Want bool
}

// PermissionResult carries the evaluated location consent.
type PermissionResult struct {
	Status PermissionStatus
}

// GPSChanged carries the latest GPS availability.
type GPSChanged struct {
	Enabled bool
}

// SetDialogVisible shows or hides the modal prompt.
type SetDialogVisible struct {
	Visible bool
}

// SetStylePickerVisible shows or hides the map-type picker overlay.
type SetStylePickerVisible struct {
	Visible bool
}

// SetMapKind switches the map type.
type SetMapKind struct {
	Kind MapKind
}

func (APIUnsupported) mapEvent()        {}
func (RequestLocationFocus) mapEvent()  {}
func (PermissionResult) mapEvent()      {}
func (GPSChanged) mapEvent()            {}
func (SetDialogVisible) mapEvent()      {}
func (SetStylePickerVisible) mapEvent() {}
func (SetMapKind) mapEvent()            {}
