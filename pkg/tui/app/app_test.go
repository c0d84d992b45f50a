package teaui

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/treedrag/pkg/app"
	"tableflip.dev/treedrag/pkg/store"
)

var (
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyUp    = tea.KeyPressMsg{Code: tea.KeyUp}
	keySpace = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	keyEsc   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: string(r), Code: r}
}

func newTestModel(t *testing.T, pb store.Pasteboard) (*Model, *app.Service) {
	t.Helper()
	svc := app.New(store.Static{GroupCount: 3, ItemCount: 5}, pb)
	m := New(svc, nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return m, svc
}

func press(m *Model, keys ...tea.KeyPressMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

func cursorTo(t *testing.T, m *Model, label string) {
	t.Helper()
	for i, r := range m.rows {
		if r.Label == label {
			m.cursor = i
			m.ensureVisible()
			return
		}
	}
	t.Fatalf("no row labelled %q", label)
}

func labelsUnder(svc *app.Service, group string) []string {
	var out []string
	for _, r := range svc.Tree() {
		if r.Depth == 2 && strings.HasPrefix(r.Path, group+"/") {
			out = append(out, r.Label)
		}
	}
	return out
}

func TestViewRendersTree(t *testing.T) {
	m, _ := newTestModel(t, nil)
	view := m.View()
	for _, want := range []string{"treedrag", "Group 0", "Item 4 of Group 2", "x drag"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewScrollsWithCursor(t *testing.T) {
	svc := app.New(store.Static{GroupCount: 3, ItemCount: 5}, nil)
	m := New(svc, nil)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 10})

	for range 17 {
		press(m, keyDown)
	}
	if m.cursor != 17 {
		t.Fatalf("expected cursor on last row, got %d", m.cursor)
	}
	view := m.View()
	if strings.Contains(view, "Group 0") || !strings.Contains(view, "Item 4 of Group 2") {
		t.Fatalf("expected view scrolled to the end:\n%s", view)
	}
	if got := strings.Count(view, "\n") + 1; got > 10 {
		t.Fatalf("view taller than terminal: %d lines", got)
	}
	for _, line := range strings.Split(view, "\n") {
		if w := ansi.PrintableRuneWidth(line); w > 80 {
			t.Fatalf("line wider than expected (%d): %q", w, line)
		}
	}

	press(m, keyRune('g'))
	if m.cursor != 0 || m.offset != 0 {
		t.Fatalf("expected home to reset, cursor %d offset %d", m.cursor, m.offset)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, keyUp, keyUp)
	if m.cursor != 0 {
		t.Fatalf("cursor moved above first row: %d", m.cursor)
	}
	for range 40 {
		press(m, keyRune('j'))
	}
	if m.cursor != len(m.rows)-1 {
		t.Fatalf("cursor moved past last row: %d", m.cursor)
	}
}

func TestSelectAndDropOnGroup(t *testing.T) {
	m, svc := newTestModel(t, nil)

	// rows: Group 0, Item 0 of Group 0, Item 1 of Group 0, Item 2 of Group 0
	press(m, keyDown, keySpace, keyDown, keyDown, keySpace)
	if want := []string{"0/0", "0/2"}; !slices.Equal(m.selectedPaths(), want) {
		t.Fatalf("expected selection %v, got %v", want, m.selectedPaths())
	}

	press(m, keyRune('x'))
	if want := []string{"0/0", "0/2"}; !slices.Equal(m.pendingPaths, want) {
		t.Fatalf("expected pending %v, got %v", want, m.pendingPaths)
	}
	if !strings.Contains(m.View(), "Dragging: 0/0, 0/2") {
		t.Fatalf("view does not show the drag:\n%s", m.View())
	}

	cursorTo(t, m, "Group 2")
	press(m, keyRune('p'))

	want := []string{
		"Item 0 of Group 2", "Item 1 of Group 2", "Item 2 of Group 2",
		"Item 3 of Group 2", "Item 4 of Group 2",
		"Item 0 of Group 0", "Item 2 of Group 0",
	}
	if got := labelsUnder(svc, "2"); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !m.pending.IsEmpty() || len(m.selected) != 0 {
		t.Fatalf("expected drag state to reset after drop")
	}
	if r, _ := m.current(); r.Label != "Item 0 of Group 0" {
		t.Fatalf("expected cursor on first moved item, got %q", r.Label)
	}
	if !strings.Contains(m.status, "Moved 2 item(s) to 2 at row 5") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestDropOnItemInsertsBefore(t *testing.T) {
	m, svc := newTestModel(t, nil)

	cursorTo(t, m, "Item 0 of Group 0")
	press(m, keyRune('x'))
	cursorTo(t, m, "Item 0 of Group 1")
	press(m, keyRune('p'))

	got := labelsUnder(svc, "1")
	if len(got) != 6 || got[0] != "Item 0 of Group 0" || got[1] != "Item 0 of Group 1" {
		t.Fatalf("unexpected group 1 children %v", got)
	}
}

func TestDropWithinGroupMovesDown(t *testing.T) {
	m, svc := newTestModel(t, nil)

	cursorTo(t, m, "Item 0 of Group 0")
	press(m, keyRune('x'))
	cursorTo(t, m, "Item 3 of Group 0")
	press(m, keyRune('p'))

	want := []string{"Item 1 of Group 0", "Item 2 of Group 0", "Item 0 of Group 0", "Item 3 of Group 0", "Item 4 of Group 0"}
	if got := labelsUnder(svc, "0"); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestKeyErrors(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(m, keyRune('p'))
	if !m.statusErr || !strings.Contains(m.status, "nothing to drop") {
		t.Fatalf("expected nothing to drop error, got %q", m.status)
	}

	press(m, keySpace) // cursor on Group 0
	if !m.statusErr || !strings.Contains(m.status, "cannot be dragged") {
		t.Fatalf("expected not draggable error, got %q", m.status)
	}

	press(m, keyRune('x'))
	if !m.statusErr || !m.pending.IsEmpty() {
		t.Fatalf("expected group drag to fail, got %q", m.status)
	}
}

func TestEscCancelsDrag(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, keyDown, keySpace, keyRune('x'))
	if m.pending.IsEmpty() {
		t.Fatalf("expected a pending drag")
	}
	press(m, keyEsc)
	if !m.pending.IsEmpty() || len(m.selected) != 0 || m.status != "Drag cancelled" {
		t.Fatalf("expected drag cancelled, status %q", m.status)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, keyRune('?'))
	if m.mode != modeHelp {
		t.Fatalf("expected help mode")
	}
	if err := m.help.Err(); err != nil {
		t.Fatalf("help failed to render: %v", err)
	}
	if view := m.View(); !strings.Contains(view, "Move items between groups") {
		t.Fatalf("help view missing content:\n%s", view)
	}
	press(m, keyEsc)
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after esc")
	}
}

func TestQuitStopsWatch(t *testing.T) {
	m, _ := newTestModel(t, nil)
	cancelled := false
	m.watchCancel = func() { cancelled = true }
	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
	if !cancelled || m.watchCh != nil {
		t.Fatalf("expected watch stopped")
	}
}

func TestDropFromAnotherProcess(t *testing.T) {
	ctx := context.Background()
	cfg := store.Static{Path: t.TempDir(), GroupCount: 3, ItemCount: 5}
	pb, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m, svc := newTestModel(t, pb)

	other, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := app.New(cfg, other).Drag(ctx, []string{"1/1"}); err != nil {
		t.Fatalf("Drag failed: %v", err)
	}

	m.Update(m.loadPending()())
	if want := []string{"1/1"}; !slices.Equal(m.pendingPaths, want) {
		t.Fatalf("expected pending %v, got %v", want, m.pendingPaths)
	}

	press(m, keyRune('p')) // cursor on Group 0
	if got := labelsUnder(svc, "0"); got[len(got)-1] != "Item 1 of Group 1" {
		t.Fatalf("expected item appended to group 0, got %v", got)
	}
	if _, err := pb.Get(ctx); !errors.Is(err, store.ErrEmpty) {
		t.Fatalf("expected pasteboard cleared, got %v", err)
	}

	m.Update(m.loadPending()())
	if !m.pending.IsEmpty() {
		t.Fatalf("expected nothing pending after drop")
	}
}

func TestWatchEvents(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, keyDown, keyRune('x'))

	m.Update(watchEventMsg{event: store.Event{Type: store.EventPayloadCleared}})
	if !m.pending.IsEmpty() || m.status != "Pasteboard cleared" {
		t.Fatalf("expected pending cleared, status %q", m.status)
	}

	_, cmd := m.Update(watchEventMsg{event: store.Event{Type: store.EventPayloadChanged}})
	if cmd == nil {
		t.Fatalf("expected a reload command")
	}
}

func TestLoggerReceivesMoves(t *testing.T) {
	var buf bytes.Buffer
	svc := app.New(store.Static{GroupCount: 2, ItemCount: 2}, nil)
	m := New(svc, &buf)

	press(m, keyDown, keyRune('x'))
	cursorTo(t, m, "Group 1")
	press(m, keyRune('p'))

	if !strings.Contains(buf.String(), `move "Item 0 of Group 0"`) {
		t.Fatalf("expected move logged, got %q", buf.String())
	}
	press(m, keyRune('q'))
	buf.Reset()
	if _, err := svc.Move(context.Background(), []string{"0/0"}, "1", app.AppendRow); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no logging after quit, got %q", buf.String())
	}
}
