// Package device answers the questions the map screen asks about its
// surroundings: can the tile server be reached, is GPS running, and has
// the user allowed location access.
//
// Checker combines a TileServer (one HTTP request for tile 0/0/0) and a
// GPSDialer (one TCP dial of gpsd) into state events. Permissions keeps the
// consent answers in the prefs file and maps them to a PermissionStatus:
//
//   - granted                 → Granted
//   - never ask again         → PermanentDenied
//   - denied at least once    → ShouldShowRationale
//   - never answered          → no status; the consent prompt is shown
package device
