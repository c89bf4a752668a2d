package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file is not an error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one line written by the slog text handler.
type Entry struct {
	Time  time.Time
	Level slog.Level
	Msg   string
	Attrs string
}

// Parse splits a slog text line into its leading time, level and msg keys.
// The remaining key=value pairs are kept verbatim in Attrs.
func Parse(line string) (Entry, bool) {
	var e Entry
	rest := line

	v, rest, ok := cutPair(rest, slog.TimeKey)
	if !ok {
		return Entry{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return Entry{}, false
	}
	e.Time = ts

	v, rest, ok = cutPair(rest, slog.LevelKey)
	if !ok || e.Level.UnmarshalText([]byte(v)) != nil {
		return Entry{}, false
	}

	if e.Msg, rest, ok = cutPair(rest, slog.MessageKey); !ok {
		return Entry{}, false
	}
	e.Attrs = strings.TrimSpace(rest)
	return e, true
}

func cutPair(s, key string) (value, rest string, ok bool) {
	s = strings.TrimLeft(s, " ")
	prefix := key + "="
	if !strings.HasPrefix(s, prefix) {
		return "", s, false
	}
	s = s[len(prefix):]
	if strings.HasPrefix(s, `"`) {
		quoted, err := strconv.QuotedPrefix(s)
		if err != nil {
			return "", s, false
		}
		value, err := strconv.Unquote(quoted)
		if err != nil {
			return "", s, false
		}
		return value, s[len(quoted):], true
	}
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i], s[i:], true
	}
	return s, "", true
}

// Filter keeps lines at or above minLevel. Lines that do not parse belong to
// the entry before them.
func Filter(lines []string, minLevel slog.Level) []string {
	var out []string
	keep := false
	for _, line := range lines {
		if e, ok := Parse(line); ok {
			keep = e.Level >= minLevel
		}
		if keep {
			out = append(out, line)
		}
	}
	return out
}

var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	attrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	levelStyle = map[slog.Level]lipgloss.Style{
		slog.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		slog.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		slog.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		slog.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

// FormatLine renders a slog line as "15:04:05 LEVEL msg attrs" with
// colors. Lines that do not parse are returned unchanged.
func FormatLine(line string) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}
	style, found := levelStyle[e.Level]
	if !found {
		style = levelStyle[slog.LevelInfo]
	}
	parts := []string{
		timeStyle.Render(e.Time.Local().Format(time.TimeOnly)),
		style.Render(fmt.Sprintf("%-5s", e.Level.String())),
		e.Msg,
	}
	if e.Attrs != "" {
		parts = append(parts, attrStyle.Render(e.Attrs))
	}
	return strings.Join(parts, " ")
}

// FormatLines applies FormatLine to each line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = FormatLine(line)
	}
	return out
}
