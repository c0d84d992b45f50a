package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tableflip.dev/treedrag/pkg/store"
	"tableflip.dev/treedrag/pkg/tree"
	"tableflip.dev/treedrag/pkg/tree/viewmodel"
)

// Service provides drag and drop operations over a single tree model.
// It wraps the model and the pasteboard so UIs, the CLI and the MCP server
// can share logic. Methods are safe for concurrent use.
type Service struct {
	Model      *viewmodel.Model
	Pasteboard store.Pasteboard

	mu sync.Mutex
}

var (
	ErrNothingToDrop    = errors.New("app: nothing to drop")
	ErrInvalidTarget    = errors.New("app: invalid drop target")
	ErrInvalidPath      = errors.New("app: invalid path")
	ErrNotDraggable     = errors.New("app: item cannot be dragged")
	ErrMalformedPayload = errors.New("app: malformed payload")
	ErrNoPasteboard     = errors.New("app: no pasteboard configured")
)

// AppendRow asks a drop to land after the last child of the target.
const AppendRow = -1

// New builds a Service over a fresh sample tree shaped by cfg. pb may be nil.
func New(cfg store.Config, pb store.Pasteboard) *Service {
	groups, items := tree.DefaultGroups, tree.DefaultItems
	if cfg != nil {
		groups, items = cfg.Groups(), cfg.Items()
	}
	return &Service{
		Model:      viewmodel.NewSample(groups, items),
		Pasteboard: pb,
	}
}

func (s *Service) model() *viewmodel.Model {
	if s.Model == nil {
		s.Model = viewmodel.NewSample(tree.DefaultGroups, tree.DefaultItems)
	}
	return s.Model
}

// Row is one line of the flattened tree.
type Row struct {
	Path      string `json:"path"`
	Depth     int    `json:"depth"`
	Label     string `json:"label"`
	Flags     string `json:"flags"`
	Draggable bool   `json:"draggable"`
	Droppable bool   `json:"droppable"`
}

// Tree flattens the tree in display order.
func (s *Service) Tree() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.model()

	var rows []Row
	m.Root().Walk(func(n *tree.Node, depth int) bool {
		a := m.AddressOf(n)
		flags := m.Flags(a)
		rows = append(rows, Row{
			Path:      viewmodel.FormatPath(m.PathOf(a)),
			Depth:     depth,
			Label:     m.Data(a),
			Flags:     flags.String(),
			Draggable: flags.Has(viewmodel.ItemIsDragEnabled),
			Droppable: flags.Has(viewmodel.ItemIsDropEnabled),
		})
		return true
	})
	return rows
}

// Resolve turns textual paths into addresses. Every path must exist.
func (s *Service) Resolve(paths []string) ([]viewmodel.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(paths)
}

func (s *Service) resolve(paths []string) ([]viewmodel.Address, error) {
	m := s.model()
	out := make([]viewmodel.Address, 0, len(paths))
	for _, p := range paths {
		a, err := s.resolveOne(p)
		if err != nil {
			return nil, err
		}
		if !a.IsValid() {
			return nil, fmt.Errorf("%w: %q is the root", ErrInvalidPath, p)
		}
		out = append(out, m.Refresh(a))
	}
	return out, nil
}

func (s *Service) resolveOne(p string) (viewmodel.Address, error) {
	path, err := viewmodel.ParsePath(p)
	if err != nil {
		return viewmodel.Address{}, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	a := s.model().AddressAt(path)
	if len(path) > 0 && !a.IsValid() {
		return viewmodel.Address{}, fmt.Errorf("%w: %q not found", ErrInvalidPath, p)
	}
	return a, nil
}

// Drag packages the items at paths into a payload and, when a pasteboard is
// configured, stores it there.
func (s *Service) Drag(ctx context.Context, paths []string) (viewmodel.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := s.drag(paths)
	if err != nil {
		return viewmodel.Payload{}, err
	}
	if s.Pasteboard != nil {
		if err := s.Pasteboard.Put(ctx, payload); err != nil {
			return viewmodel.Payload{}, err
		}
	}
	return payload, nil
}

func (s *Service) drag(paths []string) (viewmodel.Payload, error) {
	if len(paths) == 0 {
		return viewmodel.Payload{}, ErrNothingToDrop
	}
	addrs, err := s.resolve(paths)
	if err != nil {
		return viewmodel.Payload{}, err
	}
	m := s.model()
	for i, a := range addrs {
		if !m.Flags(a).Has(viewmodel.ItemIsDragEnabled) {
			return viewmodel.Payload{}, fmt.Errorf("%w: %q", ErrNotDraggable, paths[i])
		}
	}
	return m.MimeData(addrs), nil
}

// DropResult reports where a drop landed.
type DropResult struct {
	Target string   `json:"target"`
	Row    int      `json:"row"`
	Moved  []string `json:"moved"`
}

// Drop applies the pasteboard payload under target at row and clears the
// pasteboard once the drop succeeds.
func (s *Service) Drop(ctx context.Context, target string, row int) (DropResult, error) {
	if s.Pasteboard == nil {
		return DropResult{}, ErrNoPasteboard
	}
	payload, err := s.Pasteboard.Get(ctx)
	if err != nil {
		if errors.Is(err, store.ErrEmpty) {
			return DropResult{}, ErrNothingToDrop
		}
		return DropResult{}, err
	}

	res, err := s.DropPayload(payload, target, row)
	if err != nil {
		return DropResult{}, err
	}
	if err := s.Pasteboard.Clear(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// DropPayload applies p under target at row. row may be AppendRow.
func (s *Service) DropPayload(p viewmodel.Payload, target string, row int) (DropResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropPayload(p, target, row)
}

func (s *Service) dropPayload(p viewmodel.Payload, target string, row int) (DropResult, error) {
	m := s.model()
	parent, err := s.resolveOne(target)
	if err != nil {
		return DropResult{}, err
	}
	if row == AppendRow {
		row = m.RowCount(parent)
	}
	if !m.CanDropMimeData(p, viewmodel.MoveAction, row, 0, parent) {
		return DropResult{}, fmt.Errorf("%w: %q row %d", ErrInvalidTarget, target, row)
	}

	var moved []string
	for _, a := range m.Deserialize(p.Data) {
		if a.IsValid() {
			moved = append(moved, m.Data(a))
		}
	}
	if len(moved) == 0 {
		return DropResult{}, ErrNothingToDrop
	}
	if !m.DropMimeData(p, viewmodel.MoveAction, row, 0, parent) {
		return DropResult{}, fmt.Errorf("%w: %q row %d", ErrInvalidTarget, target, row)
	}
	return DropResult{
		Target: viewmodel.FormatPath(m.PathOf(parent)),
		Row:    row,
		Moved:  moved,
	}, nil
}

// Move drags paths and drops them under target in one step, without
// touching the pasteboard.
func (s *Service) Move(_ context.Context, paths []string, target string, row int) (DropResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := s.drag(paths)
	if err != nil {
		return DropResult{}, err
	}
	return s.dropPayload(payload, target, row)
}

// Decode lists the paths carried by p without resolving them.
func (s *Service) Decode(p viewmodel.Payload) ([]string, error) {
	if p.Format != viewmodel.PayloadFormat {
		return nil, fmt.Errorf("%w: format %q", ErrMalformedPayload, p.Format)
	}
	paths, ok := viewmodel.DecodePaths(p.Data)
	if !ok {
		return nil, ErrMalformedPayload
	}
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		out = append(out, viewmodel.FormatPath(path))
	}
	return out, nil
}

// Pending returns the payload waiting on the pasteboard.
func (s *Service) Pending(ctx context.Context) (viewmodel.Payload, error) {
	if s.Pasteboard == nil {
		return viewmodel.Payload{}, ErrNoPasteboard
	}
	p, err := s.Pasteboard.Get(ctx)
	if errors.Is(err, store.ErrEmpty) {
		return viewmodel.Payload{}, ErrNothingToDrop
	}
	return p, err
}

// Watch subscribes to pasteboard change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Pasteboard == nil {
		return nil, ErrNoPasteboard
	}
	return s.Pasteboard.Watch(ctx)
}

// Subscribe forwards single move notifications from the model. fn runs with
// the service locked and must not call back into it.
func (s *Service) Subscribe(fn func(viewmodel.MoveEvent)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model().Subscribe(fn)
}
