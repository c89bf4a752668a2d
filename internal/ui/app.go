package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mapdeck/internal/camera"
	"github.com/five82/mapdeck/internal/device"
	"github.com/five82/mapdeck/internal/geo"
	"github.com/five82/mapdeck/internal/lifecycle"
	"github.com/five82/mapdeck/internal/locate"
	"github.com/five82/mapdeck/internal/location"
	"github.com/five82/mapdeck/internal/prefs"
	"github.com/five82/mapdeck/internal/state"
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Store       *state.Store
	Hooks       *lifecycle.Hooks
	Inbox       *Inbox
	Checker     *device.Checker
	Permissions *device.Permissions
	Source      location.Source

	Center      geo.LatLng
	Zoom        float64
	Markers     []Marker
	GPSInterval time.Duration
	GPSAddress  string

	ThemeName  string
	PrefsPath  string
	ConfigPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	store       *state.Store
	hooks       *lifecycle.Hooks
	inbox       *Inbox
	checker     *device.Checker
	perms       *device.Permissions
	prefsPath   string
	configPath  string
	gpsAddress  string
	gpsInterval time.Duration
	markers     []Marker

	// Collaborators owned by the UI loop
	camera      *camera.Camera
	coordinator *locate.Coordinator
	notices     *notices

	// UI state
	keys          keyMap
	theme         Theme
	width         int
	height        int
	ready         bool
	showHelp      bool
	consentPrompt bool
	pickerIndex   int
	markerIndex   int
	animating     bool
	gpsKnown      bool
	lastFix       *location.Fix
}

// New creates a new Bubble Tea model. It registers the location
// coordinator with opts.Hooks so it is released on Stop.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	store := opts.Store
	if store == nil {
		store = state.NewStore()
	}

	hooks := opts.Hooks
	if hooks == nil {
		hooks = &lifecycle.Hooks{}
	}

	inbox := opts.Inbox
	if inbox == nil {
		inbox = NewInbox()
	}

	gpsInterval := opts.GPSInterval
	if gpsInterval <= 0 {
		gpsInterval = DefaultGPSInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath, err := prefs.ResolvePath(opts.PrefsPath)
	if err != nil {
		slog.Warn("resolve prefs path", "error", err)
		prefsPath = opts.PrefsPath
	}

	cam := camera.New(camera.Position{Target: opts.Center, Zoom: opts.Zoom})
	board := &notices{}
	coordinator := locate.New(store, opts.Source, cam, board)
	hooks.Register(lifecycle.Hook{Name: "locate", OnStop: coordinator.Close})

	return Model{
		ctx:         ctx,
		store:       store,
		hooks:       hooks,
		inbox:       inbox,
		checker:     opts.Checker,
		perms:       opts.Permissions,
		prefsPath:   prefsPath,
		configPath:  opts.ConfigPath,
		gpsAddress:  opts.GPSAddress,
		gpsInterval: gpsInterval,
		markers:     opts.Markers,
		camera:      cam,
		coordinator: coordinator,
		notices:     board,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		pickerIndex: pickerIndexFor(store.State().Properties.Kind),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.inbox.wait(),
		m.startHooksCmd(),
		tickCmd(m.gpsInterval),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.FocusMsg:
		// Terminal regained focus: re-run the start hooks.
		return m, m.startHooksCmd()

	case inboxMsg:
		if msg.consent {
			m.consentPrompt = true
		}
		cmd := m.dispatch(msg.events...)
		return m, tea.Batch(cmd, m.inbox.wait())

	case checkedMsg:
		cmd := m.dispatch(msg.events...)
		return m, cmd

	case tickMsg:
		return m, tea.Batch(m.checkGPSCmd(), tickCmd(m.gpsInterval))

	case locateMsg:
		return m.handleLocateResult(msg.result)

	case frameMsg:
		if m.camera.Step() {
			return m, frameCmd()
		}
		m.animating = false
		return m, nil

	case noticeExpiredMsg:
		m.notices.expire(msg.seq)
		return m, nil

	case editorDoneMsg:
		if msg.err != nil {
			slog.Warn("editor exited with error", "error", msg.err)
		}
		// Settings round trip: re-evaluate consent and GPS.
		return m, m.startHooksCmd()

	case hooksDoneMsg:
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.consentPrompt {
		return m.renderConsent()
	}

	s := m.store.State()
	if d := activeDialog(s, m.gpsKnown); d != dialogNone {
		return m.renderDialog(d)
	}

	return m.renderMain(s)
}

// renderMain renders the header, the map (or banner), the picker and the footer.
func (m Model) renderMain(s state.MapState) string {
	var b strings.Builder

	b.WriteString(m.renderHeader(s))
	b.WriteString("\n")

	showPicker := s.ShowStylePicker && !s.APIUnavailable
	rows := m.height - headerRows - footerRows
	if showPicker {
		rows -= pickerRows()
	}
	rows = max(rows, 1)

	if s.APIUnavailable {
		b.WriteString(m.renderBanner(rows))
	} else {
		b.WriteString(m.renderCanvas(s, m.scene(rows)))
	}
	b.WriteString("\n")

	if showPicker {
		b.WriteString(m.renderPicker(s.Properties.Kind))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter(s))
	return b.String()
}

func (m Model) scene(rows int) scene {
	pos := m.camera.Position()
	sc := scene{
		viewport: geo.NewViewport(pos.Target, pos.Zoom, m.width, rows),
		markers:  m.markers,
	}
	if m.lastFix != nil {
		loc := m.lastFix.Position
		sc.location = &loc
	}
	return sc
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.consentPrompt {
		return m.handleConsentKey(msg)
	}

	s := m.store.State()
	if d := activeDialog(s, m.gpsKnown); d != dialogNone {
		return m.handleDialogKey(d, msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		name := m.theme.Name
		cmd := m.savePrefs(func(p *prefs.Prefs) { p.Theme = name })
		return m, cmd
	}

	if s.APIUnavailable {
		return m, nil
	}

	if s.ShowStylePicker {
		if handled, model, cmd := m.handlePickerKey(msg); handled {
			return model, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Locate):
		cmd := m.dispatch(state.RequestLocationFocus{Want: true})
		return m, cmd

	case key.Matches(msg, m.keys.StylePicker):
		m.pickerIndex = pickerIndexFor(s.Properties.Kind)
		cmd := m.dispatch(state.SetStylePickerVisible{Visible: !s.ShowStylePicker})
		return m, cmd

	case key.Matches(msg, m.keys.NextMarker):
		return m.focusNextMarker()

	case key.Matches(msg, m.keys.PanUp):
		return m.pan(0, -1)
	case key.Matches(msg, m.keys.PanDown):
		return m.pan(0, 1)
	case key.Matches(msg, m.keys.PanLeft):
		return m.pan(-1, 0)
	case key.Matches(msg, m.keys.PanRight):
		return m.pan(1, 0)
	case key.Matches(msg, m.keys.ZoomIn):
		return m.zoom(zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		return m.zoom(-zoomStep)
	}

	return m, nil
}

func (m Model) handleConsentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var decision device.Decision
	switch {
	case key.Matches(msg, m.keys.DenyAlways):
		decision = device.DenyAlways
	case key.Matches(msg, m.keys.Allow):
		decision = device.Allow
	case key.Matches(msg, m.keys.Deny):
		decision = device.Deny
	default:
		return m, nil
	}
	m.consentPrompt = false
	if m.perms == nil {
		return m, nil
	}
	if err := m.perms.Record(decision); err != nil {
		slog.Error("saving consent failed", "error", err)
	}
	status, ok := m.perms.Evaluate()
	if !ok {
		return m, nil
	}
	cmd := m.dispatch(state.PermissionResult{Status: status})
	return m, cmd
}

func (m Model) handleDialogKey(d dialogKind, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		switch d {
		case dialogRationale:
			m.consentPrompt = true
			return m, nil
		case dialogPermanentDenied:
			return m, editorCmd(m.prefsPath)
		case dialogGPSOff:
			cmd := m.dispatch(state.SetDialogVisible{Visible: false})
			if m.configPath == "" {
				return m, cmd
			}
			return m, tea.Batch(cmd, editorCmd(m.configPath))
		}
	case key.Matches(msg, m.keys.Close):
		cmd := m.dispatch(state.SetDialogVisible{Visible: false})
		return m, cmd
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return m, nil
}

// handlePickerKey returns handled=false for keys the map should see, such
// as panning, which also closes the picker.
func (m Model) handlePickerKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.pickerIndex > 0 {
			m.pickerIndex--
		}
		return true, m, nil
	case key.Matches(msg, m.keys.Down):
		if m.pickerIndex < len(pickerOptions)-1 {
			m.pickerIndex++
		}
		return true, m, nil
	case key.Matches(msg, m.keys.Confirm):
		cmd := m.selectKind(pickerOptions[m.pickerIndex].kind)
		return true, m, cmd
	case key.Matches(msg, m.keys.Close):
		cmd := m.dispatch(state.SetStylePickerVisible{Visible: false})
		return true, m, cmd
	}
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] < '1'+byte(len(pickerOptions)) {
		m.pickerIndex = int(s[0] - '1')
		cmd := m.selectKind(pickerOptions[m.pickerIndex].kind)
		return true, m, cmd
	}
	return false, m, nil
}

func (m Model) selectKind(kind state.MapKind) tea.Cmd {
	name := kind.String()
	saved := m.savePrefs(func(p *prefs.Prefs) { p.MapKind = name })
	return tea.Batch(saved, m.dispatch(
		state.SetMapKind{Kind: kind},
		state.SetStylePickerVisible{Visible: false},
	))
}

// pan and zoom move the camera directly; any camera move closes the picker.
func (m Model) pan(dCols, dRows int) (tea.Model, tea.Cmd) {
	pos := m.camera.Position()
	vp := geo.NewViewport(pos.Target, pos.Zoom, max(m.width, 1), max(m.height-headerRows-footerRows, 1))
	step := max(vp.Cols/8, 1)
	if dRows != 0 {
		step = max(vp.Rows/6, 1)
	}
	m.camera.Move(camera.Position{Target: vp.Pan(dCols*step, dRows*step), Zoom: pos.Zoom})
	cmd := m.closePicker()
	return m, cmd
}

func (m Model) zoom(delta float64) (tea.Model, tea.Cmd) {
	pos := m.camera.Position()
	m.camera.Move(camera.Position{Target: pos.Target, Zoom: pos.Zoom + delta})
	cmd := m.closePicker()
	return m, cmd
}

func (m Model) closePicker() tea.Cmd {
	if !m.store.State().ShowStylePicker {
		return nil
	}
	return m.dispatch(state.SetStylePickerVisible{Visible: false})
}

// focusNextMarker flies to the next marker and shows its snippet.
func (m Model) focusNextMarker() (tea.Model, tea.Cmd) {
	if len(m.markers) == 0 {
		return m, nil
	}
	mk := m.markers[m.markerIndex%len(m.markers)]
	m.markerIndex++
	m.camera.Animate(mk.Position, max(m.camera.Position().Zoom, 15))
	text := mk.Title
	if mk.Snippet != "" {
		text += ": " + mk.Snippet
	}
	m.notices.Notify(text)
	cmd := tea.Batch(m.closePicker(), m.animate(), m.notices.expireCmd())
	return m, cmd
}

func (m Model) handleLocateResult(result locate.Result) (tea.Model, tea.Cmd) {
	m.coordinator.Complete(result)
	if result.Err == nil && result.Fix != nil && !m.store.Closed() {
		m.lastFix = result.Fix
	}
	cmd := tea.Batch(m.animate(), m.notices.expireCmd(), m.maybeLocate())
	return m, cmd
}

// dispatch applies events on the UI loop and starts a location query if
// the new state calls for one.
func (m *Model) dispatch(events ...state.Event) tea.Cmd {
	for _, ev := range events {
		if ev == nil {
			continue
		}
		if _, ok := ev.(state.GPSChanged); ok {
			m.gpsKnown = true
		}
		m.store.Dispatch(ev)
	}
	return m.maybeLocate()
}

func (m Model) maybeLocate() tea.Cmd {
	req, ok := m.coordinator.Next(m.store.State())
	if !ok {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return locateMsg{result: req.Run(ctx)}
	}
}

// animate starts the frame loop if the camera is moving and no loop runs yet.
func (m *Model) animate() tea.Cmd {
	if !m.camera.Moving() || m.animating {
		return nil
	}
	m.animating = true
	return frameCmd()
}

// savePrefs persists a preference change. A failure is logged and shown
// as a notice; the in-memory change stands.
func (m Model) savePrefs(fn func(*prefs.Prefs)) tea.Cmd {
	if m.prefsPath == "" {
		return nil
	}
	if _, err := prefs.Update(m.prefsPath, fn); err != nil {
		slog.Warn("saving preferences failed", "path", m.prefsPath, "error", err)
		m.notices.Notify(PrefsNotSavedNotice)
		return m.notices.expireCmd()
	}
	return nil
}

// Messages

type tickMsg time.Time

type frameMsg struct{}

type hooksDoneMsg struct{}

type checkedMsg struct{ events []state.Event }

type locateMsg struct{ result locate.Result }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func frameCmd() tea.Cmd {
	return tea.Tick(FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m Model) startHooksCmd() tea.Cmd {
	hooks, ctx := m.hooks, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, CheckTimeout)
		defer cancel()
		hooks.Start(ctx)
		return hooksDoneMsg{}
	}
}

func (m Model) checkGPSCmd() tea.Cmd {
	if m.checker == nil {
		return nil
	}
	checker, ctx := m.checker, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, CheckTimeout)
		defer cancel()
		return checkedMsg{events: []state.Event{checker.CheckGPS(ctx)}}
	}
}

// Run starts the Bubble Tea program and returns when it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
