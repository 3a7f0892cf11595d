package picker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timvw/cpick/internal/colorspace"
	"github.com/timvw/cpick/internal/config"
	"github.com/timvw/cpick/internal/history"
	"github.com/timvw/cpick/internal/sampling"
)

// pointer is a PixelSampler whose colour the test moves around.
type pointer struct {
	at colorspace.Sample
}

func (p *pointer) Name() string { return "pointer" }

func (p *pointer) Sample(context.Context) (colorspace.Sample, error) {
	return p.at, nil
}

type fakeJournal struct {
	values []string
	err    error
}

func (j *fakeJournal) Add(_ context.Context, _ time.Time, value, _ string, _ colorspace.Set) error {
	if j.err != nil {
		return j.err
	}
	j.values = append(j.values, value)
	return nil
}

type testEnv struct {
	m       *pickerModel
	ptr     *pointer
	store   *history.Store
	journal *fakeJournal
	clip    []string
	clipErr error
	dir     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		ptr:     &pointer{at: colorspace.Sample{R: 255}},
		store:   history.NewStore(),
		journal: &fakeJournal{},
		dir:     t.TempDir(),
	}
	p := &Picker{
		Loop:    sampling.New(env.ptr, sampling.Options{}),
		History: env.store,
		Journal: env.journal,
		Clipboard: func(s string) error {
			if env.clipErr != nil {
				return env.clipErr
			}
			env.clip = append(env.clip, s)
			return nil
		},
		Theme:           DarkTheme(),
		PreferencesFile: filepath.Join(env.dir, "preferences.json"),
	}
	env.m = newModel(context.Background(), p)
	env.m.width = 100
	env.m.height = 40
	return env
}

// tick runs one sampling tick through Update the way the program would.
func (e *testEnv) tick(t *testing.T) {
	t.Helper()
	msg := e.m.sample()()
	if _, ok := msg.(frameMsg); !ok {
		t.Fatalf("sample() produced %T", msg)
	}
	e.m.Update(msg)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (e *testEnv) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = e.m.Update(key(k))
	}
	return cmd
}

func TestCopy_CommitsHexAndJournals(t *testing.T) {
	e := newTestEnv(t)
	e.tick(t)
	e.press("c")

	if len(e.clip) != 1 || e.clip[0] != "#FF0000" {
		t.Fatalf("clipboard = %v, want [#FF0000]", e.clip)
	}
	entries := e.store.Entries()
	if len(entries) != 1 || entries[0].Hex != "#FF0000" || entries[0].Value != "#FF0000" {
		t.Fatalf("history = %+v", entries)
	}
	if entries[0].Values != colorspace.Convert(colorspace.Sample{R: 255}) {
		t.Error("history entry should carry all ten values")
	}
	if len(e.journal.values) != 1 {
		t.Errorf("journal got %d commits, want 1", len(e.journal.values))
	}
	if e.m.msgIsErr {
		t.Errorf("unexpected error message %q", e.m.message)
	}
}

func TestCopy_DigitSelectsRepresentation(t *testing.T) {
	e := newTestEnv(t)
	e.tick(t)
	e.press("3")
	if got := e.store.Entries()[0].Value; got != "HSL(0°, 100%, 50%)" {
		t.Errorf("value = %q, want the HSL string", got)
	}
	e.press("0")
	if got := e.store.Entries()[0].Value; !strings.HasPrefix(got, "CIE XYZ(") {
		t.Errorf("value = %q, want the XYZ string", got)
	}
}

func TestCopy_ClipboardFailureStillCommits(t *testing.T) {
	e := newTestEnv(t)
	e.clipErr = errors.New("no xclip")
	e.tick(t)
	e.press("c")
	if e.store.Len() != 1 {
		t.Errorf("history len = %d, want 1", e.store.Len())
	}
	if len(e.journal.values) != 1 {
		t.Errorf("journal got %d commits, want 1", len(e.journal.values))
	}
	if !e.m.msgIsErr {
		t.Error("expected a clipboard error message")
	}
}

func TestCopy_JournalFailureIsNonFatal(t *testing.T) {
	e := newTestEnv(t)
	e.journal.err = errors.New("disk full")
	e.tick(t)
	e.press("c")
	if e.store.Len() != 1 || len(e.clip) != 1 {
		t.Errorf("commit should succeed without the journal")
	}
	if !e.m.msgIsErr || !strings.Contains(e.m.message, "journal") {
		t.Errorf("message = %q", e.m.message)
	}
}

func TestFreeze_PinsColourAgainstPointerMoves(t *testing.T) {
	e := newTestEnv(t)
	e.tick(t)

	cmd := e.press(" ")
	if cmd == nil {
		t.Fatal("space should return a freeze command")
	}
	e.m.Update(cmd())
	if !e.m.frame.Frozen || e.m.frame.Title != "Advanced Color Picker - Frozen" {
		t.Fatalf("frame = %+v, want frozen", e.m.frame)
	}

	e.ptr.at = colorspace.Sample{B: 255}
	time.Sleep(sampling.DefaultMinInterval)
	e.tick(t)
	if got := e.m.frame.Values.Primary(); got != "#FF0000" {
		t.Errorf("frozen display = %s, want #FF0000", got)
	}
	e.press("c")
	if got := e.store.Entries()[0].Hex; got != "#FF0000" {
		t.Errorf("committed %s while frozen, want #FF0000", got)
	}

	e.m.Update(e.press(" ")())
	e.tick(t)
	if got := e.m.frame.Values.Primary(); got != "#0000FF" {
		t.Errorf("after unfreeze display = %s, want #0000FF", got)
	}
}

func TestHistory_NavigateAndDelete(t *testing.T) {
	e := newTestEnv(t)
	for _, c := range []colorspace.Sample{{R: 1}, {R: 2}, {R: 3}} {
		e.store.Commit(c.Hex(), c.Hex(), colorspace.Convert(c))
	}
	e.press("down", "down", "down")
	if e.m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 (clamped)", e.m.cursor)
	}
	e.press("d")
	if e.store.Len() != 2 {
		t.Fatalf("len = %d after delete", e.store.Len())
	}
	if e.m.cursor != 1 {
		t.Errorf("cursor = %d, want 1 after deleting the last row", e.m.cursor)
	}
	e.press("up", "enter")
	if len(e.clip) != 1 || e.clip[0] != "#030000" {
		t.Errorf("clipboard = %v, want the selected entry", e.clip)
	}
	if e.store.Len() != 2 {
		t.Error("copying an entry must not commit a new one")
	}
}

func TestClear_RequiresConfirmation(t *testing.T) {
	e := newTestEnv(t)
	e.store.Commit("#010101", "#010101", colorspace.Set{})

	e.press("x")
	if e.m.mode != modeConfirmClear {
		t.Fatal("x should ask for confirmation")
	}
	e.press("n")
	if e.store.Len() != 1 {
		t.Fatal("declining must keep the history")
	}

	e.press("x", "y")
	if e.store.Len() != 0 {
		t.Error("confirming should clear the history")
	}
	if e.m.mode != modeMain {
		t.Error("should return to the main view")
	}
}

func TestSave_EmptyHistoryRefused(t *testing.T) {
	e := newTestEnv(t)
	e.press("s")
	if e.m.mode != modeMain {
		t.Error("save with empty history should not open the prompt")
	}
	if !e.m.msgIsErr {
		t.Errorf("message = %q, want a notice", e.m.message)
	}
}

func TestSaveAndLoadPalette(t *testing.T) {
	e := newTestEnv(t)
	for _, c := range []colorspace.Sample{{G: 10}, {G: 20}} {
		set := colorspace.Convert(c)
		e.store.Commit(set.Primary(), c.Hex(), set)
	}
	want := e.store.Export()
	path := filepath.Join(e.dir, "colours.json")

	e.press("s")
	if e.m.mode != modePath {
		t.Fatal("s should open the path prompt")
	}
	e.m.input.SetValue(path)
	e.press("enter")
	if e.m.msgIsErr {
		t.Fatalf("save failed: %s", e.m.message)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("palette not written: %v", err)
	}

	e.press("x", "y")
	e.press("o")
	if got := e.m.input.Value(); got != path {
		t.Errorf("prompt prefilled with %q, want last path", got)
	}
	e.press("enter")
	got := e.store.Export()
	if len(got) != len(want) {
		t.Fatalf("loaded %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %s, want %s", i, got[i].Hex, want[i].Hex)
		}
	}
}

func TestLoad_FailureLeavesHistory(t *testing.T) {
	e := newTestEnv(t)
	e.store.Commit("#ABCDEF", "#ABCDEF", colorspace.Set{})
	e.press("o")
	e.m.input.SetValue(filepath.Join(e.dir, "missing.json"))
	e.press("enter")
	if !e.m.msgIsErr {
		t.Error("expected a load error message")
	}
	if e.store.Len() != 1 {
		t.Error("failed load changed the history")
	}
}

func TestPathPrompt_EscCancels(t *testing.T) {
	e := newTestEnv(t)
	e.press("o", "esc")
	if e.m.mode != modeMain {
		t.Error("esc should close the prompt")
	}
}

func TestTopmost_PersistsPreference(t *testing.T) {
	e := newTestEnv(t)
	if cmd := e.press("t"); cmd == nil {
		t.Error("turning topmost on should enter the alternate screen")
	}
	p, err := config.LoadPreferences(e.m.prefsPath)
	if err != nil || !p.Topmost {
		t.Fatalf("preferences = %+v, %v; want topmost", p, err)
	}
	e.press("t")
	p, _ = config.LoadPreferences(e.m.prefsPath)
	if p.Topmost {
		t.Error("second toggle should persist topmost=false")
	}
}

func TestTopmost_SaveFailureKeepsState(t *testing.T) {
	e := newTestEnv(t)
	blocker := filepath.Join(e.dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	e.m.prefsPath = filepath.Join(blocker, "preferences.json")
	e.press("t")
	if e.m.prefs.Topmost {
		t.Error("topmost changed although the preference could not be saved")
	}
	if !e.m.msgIsErr {
		t.Error("expected an error message")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		e := newTestEnv(t)
		cmd := e.press(k)
		if cmd == nil {
			t.Fatalf("%s returned no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not quit", k)
		}
	}
}

func TestTickChain(t *testing.T) {
	e := newTestEnv(t)
	_, cmd := e.m.Update(e.m.sample()())
	if cmd == nil {
		t.Fatal("a frame should schedule the next tick")
	}
	_, cmd = e.m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("a tick should start a capture")
	}
	if _, ok := cmd().(frameMsg); !ok {
		t.Error("tick command should yield a frame")
	}
}

func TestView(t *testing.T) {
	e := newTestEnv(t)
	e.tick(t)
	e.press("c")
	out := e.m.View()
	for _, want := range []string{"Advanced Color Picker", "HEX/HTML", "CIE XYZ", "HSL(0°, 100%, 50%)", "History (1/50)"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	e.press("x")
	if out := e.m.View(); !strings.Contains(out, "(y/n)") {
		t.Error("confirmation prompt not shown")
	}
}

func TestCopyKey(t *testing.T) {
	if copyKey(colorspace.KindHex) != "1" || copyKey(colorspace.KindYCbCr) != "9" || copyKey(colorspace.KindXYZ) != "0" {
		t.Error("copy keys do not match the digit bindings")
	}
}

func TestContrast(t *testing.T) {
	if !contrastIsDark("#FFFFFF") {
		t.Error("white needs dark text")
	}
	if contrastIsDark("#000000") {
		t.Error("black needs light text")
	}
}
