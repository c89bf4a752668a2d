package state

// Reduce returns the state that follows s after ev. It has no side effects.
func Reduce(s MapState, ev Event) MapState {
	switch ev := ev.(type) {
	case APIUnsupported:
		s.APIUnavailable = true
		s.ShowStylePicker = false
	case RequestLocationFocus:
		s.WantsLocationFocus = ev.Want
		s.ShowDialog = true
	case PermissionResult:
		// The layer follows the status held before this result arrives. The
		// default status is not a reported fact.
		s.Properties.MyLocationEnabled = s.PermissionReported && s.Permission == Granted
		s.Permission = ev.Status
		s.PermissionReported = true
	case GPSChanged:
		s.GPSEnabled = ev.Enabled
	case SetDialogVisible:
		s.ShowDialog = ev.Visible
	case SetStylePickerVisible:
		s.ShowStylePicker = ev.Visible
	case SetMapKind:
		s.Properties.Kind = ev.Kind
	}
	return s
}
