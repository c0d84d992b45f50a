// Package mcp provides the Model Context Protocol server integration for
// treedrag.
package mcp

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/treedrag/pkg/app"
	"tableflip.dev/treedrag/pkg/clip"
)

// Service adapts app.Service to transport-friendly values for the MCP
// server.
type Service struct {
	App *app.Service
}

// TreeDTO is the flattened tree.
type TreeDTO struct {
	Rows  []app.Row `json:"rows"`
	Count int       `json:"count"`
}

// DragDTO carries a payload as clipboard text so agents can hand it back to
// drop.
type DragDTO struct {
	Format  string   `json:"format"`
	Payload string   `json:"payload"`
	Paths   []string `json:"paths"`
}

// DropOptions captures the parameters of a drop. An empty Payload uses the
// pasteboard.
type DropOptions struct {
	Payload string
	Target  string
	Row     int
}

// NewService builds a service wrapper around svc.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc}
}

func (s *Service) app() (*app.Service, error) {
	if s.App == nil {
		return nil, errors.New("tree service is not configured")
	}
	return s.App, nil
}

// ListTree returns every row of the tree.
func (s *Service) ListTree(_ context.Context) (TreeDTO, error) {
	a, err := s.app()
	if err != nil {
		return TreeDTO{}, err
	}
	rows := a.Tree()
	return TreeDTO{Rows: rows, Count: len(rows)}, nil
}

// Drag serializes the items at paths.
func (s *Service) Drag(ctx context.Context, paths []string) (DragDTO, error) {
	a, err := s.app()
	if err != nil {
		return DragDTO{}, err
	}
	p, err := a.Drag(ctx, cleanPaths(paths))
	if err != nil {
		return DragDTO{}, err
	}
	return DragDTO{Format: p.Format, Payload: clip.Encode(p), Paths: cleanPaths(paths)}, nil
}

// Drop applies a payload, or the pasteboard when none is given.
func (s *Service) Drop(ctx context.Context, opts DropOptions) (app.DropResult, error) {
	a, err := s.app()
	if err != nil {
		return app.DropResult{}, err
	}
	if strings.TrimSpace(opts.Payload) == "" {
		return a.Drop(ctx, opts.Target, opts.Row)
	}
	p, err := clip.Decode(opts.Payload)
	if err != nil {
		return app.DropResult{}, err
	}
	return a.DropPayload(p, opts.Target, opts.Row)
}

// Move drags and drops in one step.
func (s *Service) Move(ctx context.Context, paths []string, target string, row int) (app.DropResult, error) {
	a, err := s.app()
	if err != nil {
		return app.DropResult{}, err
	}
	return a.Move(ctx, cleanPaths(paths), target, row)
}

// DecodePayload lists the paths carried by an encoded payload.
func (s *Service) DecodePayload(_ context.Context, payload string) ([]string, error) {
	a, err := s.app()
	if err != nil {
		return nil, err
	}
	p, err := clip.Decode(payload)
	if err != nil {
		return nil, err
	}
	return a.Decode(p)
}

func cleanPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
