package logtail

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Errorf("Read() = %v, want nil", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
		level slog.Level
		msg   string
		attrs string
	}{
		{
			name:  "quoted msg with attrs",
			input: `time=2026-10-19T08:00:00.000+00:00 level=INFO msg="mapdeck starting" source=gpsd`,
			ok:    true,
			level: slog.LevelInfo,
			msg:   "mapdeck starting",
			attrs: "source=gpsd",
		},
		{
			name:  "bare msg",
			input: `time=2026-10-19T08:00:01.250Z level=WARN msg=offline`,
			ok:    true,
			level: slog.LevelWarn,
			msg:   "offline",
		},
		{
			name:  "escaped quote in msg",
			input: `time=2026-10-19T08:00:00Z level=ERROR msg="say \"hi\"" error="boom"`,
			ok:    true,
			level: slog.LevelError,
			msg:   `say "hi"`,
			attrs: `error="boom"`,
		},
		{name: "not slog", input: "panic: runtime error", ok: false},
		{name: "bad level", input: `time=2026-10-19T08:00:00Z level=LOUD msg=x`, ok: false},
		{name: "bad time", input: `time=yesterday level=INFO msg=x`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := Parse(tt.input)
			if ok != tt.ok {
				t.Fatalf("Parse() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if e.Level != tt.level || e.Msg != tt.msg || e.Attrs != tt.attrs {
				t.Errorf("Parse() = %+v, want level %v msg %q attrs %q", e, tt.level, tt.msg, tt.attrs)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		`time=2026-10-19T08:00:00Z level=DEBUG msg="gps checked" enabled=true`,
		`time=2026-10-19T08:00:01Z level=WARN msg="map service unavailable"`,
		`    continuation of the warning`,
		`time=2026-10-19T08:00:02Z level=INFO msg="location consent recorded"`,
		`    continuation of the info`,
	}

	got := Filter(lines, slog.LevelWarn)
	want := []string{lines[1], lines[2]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter(warn) = %v, want %v", got, want)
	}

	if got := Filter(lines, slog.LevelDebug); len(got) != len(lines) {
		t.Errorf("Filter(debug) kept %d lines, want %d", len(got), len(lines))
	}
}

func TestFormatLine(t *testing.T) {
	raw := "not a slog line"
	if got := FormatLine(raw); got != raw {
		t.Errorf("FormatLine(%q) = %q, want unchanged", raw, got)
	}

	line := `time=2026-10-19T08:00:00Z level=WARN msg="map service unavailable" error="status 503"`
	got := ansi.Strip(FormatLine(line))
	for _, want := range []string{"WARN", "map service unavailable", `error="status 503"`} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatLine() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "level=") {
		t.Errorf("FormatLine() = %q, should drop the level key", got)
	}

	formatted := FormatLines([]string{raw, line})
	if len(formatted) != 2 || formatted[0] != raw {
		t.Errorf("FormatLines() = %v", formatted)
	}
}
