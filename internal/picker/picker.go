// Package picker is the interactive terminal UI: a live swatch with all ten
// representations, the history list, and key bindings for freeze, copy,
// palette files and the topmost preference.
package picker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/timvw/cpick/internal/colorspace"
	"github.com/timvw/cpick/internal/config"
	"github.com/timvw/cpick/internal/history"
	telem "github.com/timvw/cpick/internal/otel"
	"github.com/timvw/cpick/internal/sampling"
)

// DefaultPaletteFile is offered by the save/load prompt until another path
// has been used.
const DefaultPaletteFile = "cpick-palette.json"

// Journal records commits beyond the lifetime of the process.
type Journal interface {
	Add(ctx context.Context, at time.Time, value, hex string, values colorspace.Set) error
}

// Picker runs the interactive picker.
type Picker struct {
	Loop         *sampling.Loop
	History      *history.Store
	Journal      Journal            // optional
	Clipboard    func(string) error // nil means the system clipboard
	PollInterval time.Duration
	Theme        Theme

	PreferencesFile string
	Preferences     config.Preferences

	Logger  *slog.Logger
	Metrics *telem.Metrics
}

type mode int

const (
	modeMain mode = iota
	modePath
	modeConfirmClear
)

type pathAction int

const (
	pathSave pathAction = iota
	pathLoad
)

// messages
type tickMsg time.Time

type frameMsg struct {
	frame sampling.Frame
	acted bool
}

type freezeMsg struct {
	frame sampling.Frame
}

type pickerModel struct {
	ctx       context.Context
	loop      *sampling.Loop
	store     *history.Store
	journal   Journal
	clipboard func(string) error
	poll      time.Duration
	logger    *slog.Logger
	metrics   *telem.Metrics
	styles    styles

	prefsPath string
	prefs     config.Preferences

	frame  sampling.Frame
	title  string
	cursor int // selected history row

	mode        mode
	pathAction  pathAction
	input       textinput.Model
	paletteFile string

	message  string
	msgIsErr bool

	width  int
	height int
}

func newModel(ctx context.Context, p *Picker) *pickerModel {
	ti := textinput.New()
	ti.Placeholder = DefaultPaletteFile
	ti.CharLimit = 1024
	ti.Width = 60

	clip := p.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}
	poll := p.PollInterval
	if poll <= 0 {
		poll = 20 * time.Millisecond
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	frame := p.Loop.Current()
	return &pickerModel{
		ctx:         ctx,
		loop:        p.Loop,
		store:       p.History,
		journal:     p.Journal,
		clipboard:   clip,
		poll:        poll,
		logger:      logger,
		metrics:     p.Metrics,
		styles:      newStyles(p.Theme),
		prefsPath:   p.PreferencesFile,
		prefs:       p.Preferences,
		frame:       frame,
		title:       frame.Title,
		input:       ti,
		paletteFile: DefaultPaletteFile,
	}
}

// Run blocks until the user quits or ctx is cancelled. The topmost
// preference keeps the picker on the alternate screen.
func (p *Picker) Run(ctx context.Context) error {
	m := newModel(ctx, p)
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.Preferences.Topmost {
		opts = append(opts, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

func (m *pickerModel) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(m.title), m.sample())
}

// sample runs one loop tick off the UI goroutine. The next tick is only
// scheduled once its frameMsg arrives, so ticks never overlap.
func (m *pickerModel) sample() tea.Cmd {
	loop, ctx := m.loop, m.ctx
	return func() tea.Msg {
		f, acted := loop.Tick(ctx, time.Now())
		return frameMsg{frame: f, acted: acted}
	}
}

func (m *pickerModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.poll, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *pickerModel) toggleFreeze() tea.Cmd {
	loop, ctx := m.loop, m.ctx
	return func() tea.Msg {
		return freezeMsg{frame: loop.ToggleFreeze(ctx)}
	}
}

// setFrame stores f and returns a title update when the state changed.
func (m *pickerModel) setFrame(f sampling.Frame) tea.Cmd {
	m.frame = f
	if f.Title == m.title {
		return nil
	}
	m.title = f.Title
	return tea.SetWindowTitle(f.Title)
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		var title tea.Cmd
		if msg.acted {
			title = m.setFrame(msg.frame)
		}
		return m, tea.Batch(title, m.scheduleTick())

	case tickMsg:
		return m, m.sample()

	case freezeMsg:
		return m, m.setFrame(msg.frame)
	}
	return m, nil
}

func (m *pickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	switch m.mode {
	case modePath:
		return m.handlePathKey(msg)
	case modeConfirmClear:
		return m.handleConfirmKey(msg)
	}
	return m.handleMainKey(msg)
}

func (m *pickerModel) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "esc":
		return m, tea.Quit

	case " ":
		return m, m.toggleFreeze()

	case "c":
		m.commit(colorspace.KindHex)

	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
		k := colorspace.Kind(key[0] - '1')
		if key == "0" {
			k = colorspace.KindXYZ
		}
		m.commit(k)

	case "enter":
		m.copyEntry()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}

	case "d", "delete":
		if m.store.Delete(m.cursor) {
			m.setMessage("Entry deleted", false)
			m.clampCursor()
		}

	case "x":
		if m.store.Len() == 0 {
			m.setMessage("History is already empty", false)
			return m, nil
		}
		m.mode = modeConfirmClear

	case "s":
		if m.store.Len() == 0 {
			m.setMessage("History is empty, nothing to save", true)
			return m, nil
		}
		return m, m.promptPath(pathSave)

	case "o":
		return m, m.promptPath(pathLoad)

	case "t":
		return m, m.toggleTopmost()
	}
	return m, nil
}

// commit copies the value of kind to the clipboard and records the current
// colour in the history and the journal.
func (m *pickerModel) commit(kind colorspace.Kind) {
	f := m.loop.Current()
	value := f.Values.Get(kind)
	hex := f.Sample.Hex()

	m.store.Commit(value, hex, f.Values)
	m.cursor = 0
	m.metrics.RecordCommit(m.ctx)
	m.logger.Debug("colour committed", "value", value, "hex", hex)

	var journalErr error
	if m.journal != nil {
		if journalErr = m.journal.Add(m.ctx, time.Now(), value, hex, f.Values); journalErr != nil {
			m.logger.Debug("journal write failed", "err", journalErr)
		}
	}

	if err := m.clipboard(value); err != nil {
		m.setMessage(fmt.Sprintf("Saved %s to history, clipboard unavailable: %v", value, err), true)
		return
	}
	if journalErr != nil {
		m.setMessage(fmt.Sprintf("Copied %s, journal write failed: %v", value, journalErr), true)
		return
	}
	m.setMessage("Copied "+value, false)
}

// copyEntry copies the selected history entry's value without a new commit.
func (m *pickerModel) copyEntry() {
	entries := m.store.Entries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return
	}
	value := entries[m.cursor].Value
	if err := m.clipboard(value); err != nil {
		m.setMessage(fmt.Sprintf("Clipboard unavailable: %v", err), true)
		return
	}
	m.setMessage("Copied "+value, false)
}

func (m *pickerModel) clampCursor() {
	if n := m.store.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *pickerModel) setMessage(s string, isErr bool) {
	m.message = s
	m.msgIsErr = isErr
}

func (m *pickerModel) toggleTopmost() tea.Cmd {
	next := config.Preferences{Topmost: !m.prefs.Topmost}
	if err := config.SavePreferences(m.prefsPath, next); err != nil {
		m.setMessage(fmt.Sprintf("Could not save preference: %v", err), true)
		return nil
	}
	m.prefs = next
	if next.Topmost {
		m.setMessage("Always on top: on", false)
		return tea.EnterAltScreen
	}
	m.setMessage("Always on top: off", false)
	return tea.ExitAltScreen
}

func (m *pickerModel) promptPath(action pathAction) tea.Cmd {
	m.mode = modePath
	m.pathAction = action
	m.input.SetValue(m.paletteFile)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *pickerModel) handlePathKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeMain
		m.input.Blur()
		return m, nil

	case "enter":
		path := m.input.Value()
		if path == "" {
			path = DefaultPaletteFile
		}
		m.mode = modeMain
		m.input.Blur()
		if m.pathAction == pathSave {
			m.savePalette(path)
		} else {
			m.loadPalette(path)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *pickerModel) savePalette(path string) {
	err := history.SavePalette(path, m.store.Export())
	m.metrics.RecordPalette(m.ctx, "save", err)
	if err != nil {
		m.setMessage(fmt.Sprintf("Save failed: %v", err), true)
		return
	}
	m.paletteFile = path
	m.setMessage(fmt.Sprintf("Saved %d colours to %s", m.store.Len(), path), false)
}

func (m *pickerModel) loadPalette(path string) {
	entries, err := history.LoadPalette(path)
	m.metrics.RecordPalette(m.ctx, "load", err)
	if err != nil {
		m.setMessage(fmt.Sprintf("Load failed: %v", err), true)
		return
	}
	m.store.Import(entries)
	m.paletteFile = path
	m.cursor = 0
	m.setMessage(fmt.Sprintf("Loaded %d colours from %s", len(entries), path), false)
}

func (m *pickerModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeMain
	switch msg.String() {
	case "y", "Y":
		m.store.Clear()
		m.cursor = 0
		m.setMessage("History cleared", false)
	default:
		m.setMessage("Clear cancelled", false)
	}
	return m, nil
}
