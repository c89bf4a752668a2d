// Package state holds the map screen's state-reduction controller.
//
// # Overview
//
// Every input to the map screen (availability checks, consent answers, GPS
// changes, key presses) arrives as an Event. Reduce folds an Event into the
// current MapState and returns the next one. Store owns the state for one
// screen session and publishes every replacement to its observers.
//
//	collaborator ──Event──> Store.Dispatch ──Reduce──> MapState
//	                                │
//	                                └──> observers (render surface, locate)
//
// # Core Types
//
// MapState:
//   - Immutable snapshot, copied by value
//   - Created with DefaultMapState at store construction
//   - Replaced, never mutated, on every dispatch
//
// Event:
//   - Sealed interface, variants live in events.go
//   - Reduce handles every variant; there is no catch-all branch that
//     could drop a field
//
// Store:
//   - Dispatch applies Reduce and notifies observers synchronously
//   - Subscribe returns an unsubscribe func
//   - Close tears the session down; later dispatches are ignored so a
//     location fix that lands after teardown has no effect
//
// # Transition Table
//
//	APIUnsupported           APIUnavailable=true, ShowStylePicker=false
//	RequestLocationFocus(b)  WantsLocationFocus=b, ShowDialog=true
//	PermissionResult(st)     MyLocationEnabled=(previous Permission==Granted
//	                         and a previous result was reported),
//	                         Permission=st, PermissionReported=true
//	GPSChanged(b)            GPSEnabled=b
//	SetDialogVisible(b)      ShowDialog=b
//	SetStylePickerVisible(b) ShowStylePicker=b
//	SetMapKind(k)            Properties.Kind=k
//
// APIUnavailable is monotonic: no event clears it.
//
// PermissionResult derives MyLocationEnabled from the status held before
// the result, so the my-location layer turns on one report after consent.
// The availability checker re-reports consent on every start and focus,
// which closes the gap on the next check.
//
// # Concurrency Model
//
// The UI loop is the only caller of Dispatch in normal operation. The
// mutex exists so a completion delivered from another goroutine after
// teardown sees a consistent closed flag. Observers run outside the lock
// and may read State.
package state
