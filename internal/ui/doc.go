// Package ui renders the mapdeck terminal map surface with Bubble Tea.
//
// The Model owns no domain state of its own. Every change goes through
// state.Store as an Event, and View renders the current state.State plus
// the camera position. Work that blocks (availability checks, location
// queries, $EDITOR) runs as tea.Cmd values and reports back as messages.
//
// Layout, top to bottom:
//
//   - header: availability, GPS, permission, map kind, camera position
//   - map canvas, or a banner when the map service is unavailable
//   - style picker (toggled with s)
//   - footer: transient notices or key hints
//
// Dialogs (permission rationale, permanently denied, GPS off) and the
// consent prompt are drawn as centered overlays and take keyboard focus
// until dismissed.
//
// Background producers such as lifecycle hooks talk to the Model through
// an Inbox, which is drained by a waiting tea.Cmd.
package ui
