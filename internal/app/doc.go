// Package app is the composition root for mapdeck.
//
// Run loads config.toml and prefs.toml, opens the log file, builds the
// location source and device checkers, registers the lifecycle hooks and
// hands everything to the UI. It blocks until the UI exits, then stops the
// hooks, which closes the state store so late location results are
// dropped.
//
// Hooks registered here:
//
//   - store: closes the state.Store on Stop
//   - availability: checks the tile server and gpsd on every Start
//   - permissions: re-evaluates stored location consent on every Start
//
// Start hooks run off the UI loop. They post events to the UI inbox and
// never dispatch directly.
//
// Check and Locate back the one-shot CLI subcommands. They share config
// loading and checker construction with Run and print plain text.
//
// Fatal errors (config parse, unknown location source, log file) are
// returned to main. Check and location failures are logged and shown in
// the UI instead.
package app
