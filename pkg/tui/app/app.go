package teaui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/treedrag/pkg/app"
	"tableflip.dev/treedrag/pkg/store"
	"tableflip.dev/treedrag/pkg/tree/viewmodel"
	"tableflip.dev/treedrag/pkg/tui/components/help"
	"tableflip.dev/treedrag/pkg/tui/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeHelp
)

// title, blank, pending, status and key hints
const chromeLines = 5

const keyHints = "↑/↓ move • space select • x drag • p drop • esc cancel • ? help • q quit"

// Model is the Bubble Tea model for browsing the tree and moving items.
type Model struct {
	ctx    context.Context
	svc    *app.Service
	theme  theme.Theme
	logger io.Writer

	rows     []app.Row
	cursor   int
	offset   int
	selected map[string]bool

	// pending is the payload a drop will apply. It comes from a local drag
	// or from the pasteboard.
	pending      viewmodel.Payload
	pendingPaths []string

	mode mode
	help *help.Model

	status    string
	statusErr bool

	termWidth  int
	termHeight int

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
	unsubscribe func()
}

// New creates a Model over svc. Move steps are written to logger when it is
// not nil.
func New(svc *app.Service, logger io.Writer) *Model {
	m := &Model{
		ctx:      context.Background(),
		svc:      svc,
		theme:    theme.Default(),
		logger:   logger,
		selected: make(map[string]bool),
	}
	if svc != nil && logger != nil {
		m.unsubscribe = svc.Subscribe(func(ev viewmodel.MoveEvent) {
			_, _ = fmt.Fprintf(logger, "move %q: %s row %d -> %s row %d\n",
				ev.Node.Name(), ev.SourceParent, ev.SourceRow, ev.DestParent, ev.DestRow)
		})
	}
	m.reload()
	return m
}

type errMsg struct{ err error }

type pendingLoadedMsg struct {
	payload viewmodel.Payload
	err     error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func (m *Model) Init() tea.Cmd {
	if m.svc == nil || m.svc.Pasteboard == nil {
		return nil
	}
	return tea.Batch(m.loadPending(), startWatchCmd(m.ctx, m.svc))
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil || svc.Pasteboard == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) loadPending() tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		p, err := svc.Pending(ctx)
		return pendingLoadedMsg{payload: p, err: err}
	}
}

func (m *Model) handleWatchEvent(ev store.Event, cmds *[]tea.Cmd) {
	switch ev.Type {
	case store.EventPayloadChanged:
		*cmds = append(*cmds, m.loadPending())
	case store.EventPayloadCleared:
		if !m.pending.IsEmpty() {
			m.clearPending()
			m.setStatus("Pasteboard cleared")
		}
	}
}

func (m *Model) handlePendingLoaded(msg pendingLoadedMsg) {
	if msg.err != nil {
		if errors.Is(msg.err, app.ErrNothingToDrop) {
			m.clearPending()
			return
		}
		m.setError(msg.err)
		return
	}
	if msg.payload.Format == m.pending.Format && bytes.Equal(msg.payload.Data, m.pending.Data) {
		return
	}
	paths, err := m.svc.Decode(msg.payload)
	if err != nil {
		m.setError(err)
		return
	}
	m.pending = msg.payload
	m.pendingPaths = paths
	m.setStatus(fmt.Sprintf("Picked up %d item(s) from the pasteboard", len(paths)))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		if m.help != nil {
			m.help.SetSize(msg.Width, msg.Height)
		}
		m.ensureVisible()
	case errMsg:
		m.setError(msg.err)
	case pendingLoadedMsg:
		m.handlePendingLoaded(msg)
	case watchStartedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("watch: %w", msg.err))
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event, &cmds)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
	case tea.KeyPressMsg:
		if cmd := m.handleKeyPress(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	default:
		if m.mode == modeHelp && m.help != nil {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}

	if m.mode == modeHelp {
		switch key {
		case "esc", "?", "q":
			m.mode = modeNormal
			return nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return cmd
	}

	switch key {
	case "q":
		return m.quit()
	case "?":
		if m.help == nil {
			m.help = help.New(m.theme.Help.Frame, m.termWidth, m.termHeight)
		}
		m.mode = modeHelp
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "home", "g":
		m.moveCursor(-len(m.rows))
	case "end", "G":
		m.moveCursor(len(m.rows))
	case "space", " ":
		m.toggleSelection()
	case "x":
		m.drag()
	case "p":
		m.drop()
	case "r":
		m.reload()
		m.setStatus("Reloaded")
	case "esc":
		m.cancel()
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.stopWatch()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	return tea.Quit
}

func (m *Model) reload() {
	if m.svc == nil {
		m.rows = nil
		return
	}
	m.rows = m.svc.Tree()
	m.cursor = clamp(m.cursor, 0, len(m.rows)-1)
	m.ensureVisible()
}

func (m *Model) current() (app.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return app.Row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.rows)-1)
	m.ensureVisible()
}

func (m *Model) focusLabel(label string) {
	for i, r := range m.rows {
		if r.Label == label {
			m.cursor = i
			m.ensureVisible()
			return
		}
	}
}

func (m *Model) toggleSelection() {
	r, ok := m.current()
	if !ok {
		return
	}
	if !r.Draggable {
		m.setError(fmt.Errorf("%w: %s", app.ErrNotDraggable, r.Label))
		return
	}
	if m.selected[r.Path] {
		delete(m.selected, r.Path)
	} else {
		m.selected[r.Path] = true
	}
	m.setStatus(fmt.Sprintf("%d selected", len(m.selected)))
}

// selectedPaths lists the selection in display order.
func (m *Model) selectedPaths() []string {
	var paths []string
	for _, r := range m.rows {
		if m.selected[r.Path] {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

func (m *Model) drag() {
	paths := m.selectedPaths()
	if len(paths) == 0 {
		if r, ok := m.current(); ok {
			paths = []string{r.Path}
		}
	}
	p, err := m.svc.Drag(m.ctx, paths)
	if err != nil {
		m.setError(err)
		return
	}
	m.pending = p
	m.pendingPaths = paths
	m.setStatus(fmt.Sprintf("Dragging %d item(s), press p on a group or item to drop", len(paths)))
}

// dropTarget maps a row to the parent and insert row a drop at that row
// uses. Groups take the items at their end, items take them before
// themselves.
func dropTarget(r app.Row) (target string, row int, ok bool) {
	path, err := viewmodel.ParsePath(r.Path)
	if err != nil {
		return "", 0, false
	}
	switch len(path) {
	case 1:
		return r.Path, app.AppendRow, true
	case 2:
		return viewmodel.FormatPath(path[:1]), path[1], true
	}
	return "", 0, false
}

func (m *Model) drop() {
	if m.pending.IsEmpty() {
		m.setError(app.ErrNothingToDrop)
		return
	}
	r, ok := m.current()
	if !ok {
		return
	}
	target, row, ok := dropTarget(r)
	if !ok {
		m.setError(fmt.Errorf("%w: %s", app.ErrInvalidTarget, r.Label))
		return
	}

	var (
		res app.DropResult
		err error
	)
	if m.svc.Pasteboard != nil {
		res, err = m.svc.Drop(m.ctx, target, row)
	} else {
		res, err = m.svc.DropPayload(m.pending, target, row)
	}
	if err != nil {
		m.setError(err)
		return
	}

	m.clearPending()
	m.selected = make(map[string]bool)
	m.reload()
	if len(res.Moved) > 0 {
		m.focusLabel(res.Moved[0])
	}
	m.setStatus(fmt.Sprintf("Moved %d item(s) to %s at row %d", len(res.Moved), res.Target, res.Row))
}

func (m *Model) cancel() {
	m.selected = make(map[string]bool)
	if m.pending.IsEmpty() {
		m.setStatus("")
		return
	}
	m.clearPending()
	if m.svc.Pasteboard != nil {
		if err := m.svc.Pasteboard.Clear(m.ctx); err != nil {
			m.setError(err)
			return
		}
	}
	m.setStatus("Drag cancelled")
}

func (m *Model) clearPending() {
	m.pending = viewmodel.Payload{}
	m.pendingPaths = nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = "ERR: " + err.Error()
	m.statusErr = true
}

func (m *Model) treeHeight() int {
	if m.termHeight == 0 {
		return len(m.rows)
	}
	return max(m.termHeight-chromeLines, 1)
}

func (m *Model) ensureVisible() {
	height := m.treeHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	m.offset = clamp(m.offset, 0, max(len(m.rows)-height, 0))
}

func (m *Model) View() string {
	if m.mode == modeHelp && m.help != nil {
		return m.help.View()
	}

	var b strings.Builder
	b.WriteString(m.theme.Tree.Title.Render("treedrag"))
	b.WriteString("\n\n")

	end := min(len(m.rows), m.offset+m.treeHeight())
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteByte('\n')
	}

	footer := []string{m.pendingLine(), m.statusLine(), m.theme.Footer.Help.Render(keyHints)}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, footer...))
	return b.String()
}

func (m *Model) renderRow(i int) string {
	r := m.rows[i]
	marker := "  "
	if m.selected[r.Path] {
		marker = "● "
	}
	text := marker + strings.Repeat("  ", max(r.Depth-1, 0)) + r.Label

	if i == m.cursor {
		if !m.pending.IsEmpty() {
			if _, _, ok := dropTarget(r); ok {
				return m.theme.Tree.Cursor.Render(text) + m.theme.Tree.Target.Render("  ← drop here")
			}
		}
		return m.theme.Tree.Cursor.Render(text)
	}

	style := m.theme.Tree.Item
	switch {
	case slices.Contains(m.pendingPaths, r.Path):
		style = m.theme.Tree.Dragged
	case m.selected[r.Path]:
		style = m.theme.Tree.Selected
	case r.Depth == 1:
		style = m.theme.Tree.Group
	}
	return style.Render(text)
}

func (m *Model) pendingLine() string {
	if len(m.pendingPaths) == 0 {
		return ""
	}
	return m.theme.Footer.Pending.Render("Dragging: " + strings.Join(m.pendingPaths, ", "))
}

func (m *Model) statusLine() string {
	status := m.status
	if m.termWidth > 0 {
		status = wordwrap.String(status, m.termWidth)
	}
	if m.statusErr {
		return m.theme.Footer.Error.Render(status)
	}
	return m.theme.Footer.Status.Render(status)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// Run starts the UI over svc and blocks until the user quits.
func Run(svc *app.Service, logger io.Writer) error {
	p := tea.NewProgram(New(svc, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
