package ui

import (
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mapdeck/internal/state"
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogRationale
	dialogPermanentDenied
	dialogGPSOff
)

// activeDialog picks the prompt for s. Permission problems come before GPS.
// gpsKnown is false until the first GPS check has been dispatched.
func activeDialog(s state.MapState, gpsKnown bool) dialogKind {
	if !s.ShowDialog {
		return dialogNone
	}
	switch s.Permission {
	case state.ShouldShowRationale:
		return dialogRationale
	case state.PermanentDenied:
		return dialogPermanentDenied
	}
	if gpsKnown && !s.GPSEnabled {
		return dialogGPSOff
	}
	return dialogNone
}

func (m Model) renderDialog(kind dialogKind) string {
	confirm := button{key: "enter", label: "Open settings"}
	dismiss := button{key: "esc", label: "Close"}
	switch kind {
	case dialogRationale:
		return m.modalBox("Permission Request",
			"mapdeck needs your location to center the map on you. Allow access to use My location.",
			[]button{{key: "enter", label: "Ask again"}, dismiss}, m.theme.Warn)
	case dialogPermanentDenied:
		return m.modalBox("Permission is permanently denied",
			"Location access was turned off. Edit the consent section of "+m.prefsPath+" to turn it back on.",
			[]button{confirm, dismiss}, m.theme.Alert)
	case dialogGPSOff:
		return m.modalBox("GPS Off",
			"No GPS provider answered at "+m.gpsAddress+". Start gpsd or point mapdeck at another one.",
			[]button{confirm, dismiss}, m.theme.Warn)
	default:
		return ""
	}
}

// renderConsent renders the location consent prompt.
func (m Model) renderConsent() string {
	return m.modalBox("Allow mapdeck to access this device's location?",
		"Your position is only used to center the map.",
		[]button{{key: "a", label: "Allow"}, {key: "d", label: "Deny"}, {key: "D", label: "Don't ask again"}},
		m.theme.Accent)
}

type editorDoneMsg struct{ err error }

// editorCmd opens path in $EDITOR, falling back to vi.
func editorCmd(path string) tea.Cmd {
	editor := strings.Fields(os.Getenv("EDITOR"))
	if len(editor) == 0 {
		editor = []string{"vi"}
	}
	args := append(editor[1:], path)
	cmd := exec.Command(editor[0], args...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorDoneMsg{err: err}
	})
}
