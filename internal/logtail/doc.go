// Package logtail reads the tail of the mapdeck session log.
//
// The TUI owns the terminal, so the session logs through slog's text
// handler to a file. Read returns the last N lines using a ring buffer, so
// memory stays bounded by N regardless of file size. Parse understands the
// leading time, level and msg keys of a slog text line, Filter drops lines
// below a level and FormatLine renders a compact colored view for the
// `mapdeck logs` command.
package logtail
