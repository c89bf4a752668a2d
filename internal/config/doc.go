// Package config loads mapdeck's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/mapdeck/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Environment variables override whatever the file said
//
// # Default Values
//
//   - Tile URL: https://tile.openstreetmap.org/{z}/{x}/{y}.png
//   - gpsd: 127.0.0.1:2947, 2s request timeout, GPS re-checked every 5s
//   - Location source: gpsd
//   - Camera: centered on the default marker at zoom 11
//   - Markers: "Marker 1" at 1.35, 103.87
//   - Log file: ~/.local/state/mapdeck/mapdeck.log
//
// # TOML Format
//
//	log_file = "~/.local/state/mapdeck/mapdeck.log"
//
//	[map]
//	tile_url = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
//	center_lat = 1.35
//	center_lng = 103.87
//	zoom = 11
//
//	[gps]
//	address = "127.0.0.1:2947"
//	request_timeout = "2s"
//	poll_interval = "5s"
//
//	[location]
//	source = "gpsd"        # gpsd, google or static
//	static_lat = 1.35
//	static_lng = 103.87
//	google_api_key = ""
//
//	[[markers]]
//	title = "Marker 1"
//	snippet = "don't click this"
//	lat = 1.35
//	lng = 103.87
//
// Durations use Go syntax ("500ms", "2s"). Tilde expansion is performed for
// the log file.
//
// # Environment
//
//   - MAPDECK_TILE_URL
//   - MAPDECK_GPSD_ADDRESS
//   - MAPDECK_LOCATION_SOURCE
//   - MAPDECK_GOOGLE_API_KEY
//   - MAPDECK_LOG_FILE
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors, bad durations and out of range
// coordinates. A missing file is not an error.
package config
