package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/treedrag/pkg/tree/viewmodel"
)

// ErrEmpty is returned by Get when nothing has been dragged.
var ErrEmpty = errors.New("store: pasteboard empty")

// Pasteboard holds the payload of the most recent drag so a drop can happen
// in another process. It never holds the tree itself.
type Pasteboard interface {
	Put(ctx context.Context, p viewmodel.Payload) error
	Get(ctx context.Context) (viewmodel.Payload, error)
	Clear(ctx context.Context) error
	Watch(ctx context.Context) (<-chan Event, error)
}

const (
	slotKey = "pasteboard"
	tempDir = ".tmp"
)

// record is the on-disk form of a payload.
type record struct {
	Format string    `json:"format"`
	Data   []byte    `json:"data"`
	Stored time.Time `json:"stored"`
}

// Load creates a Pasteboard backed by diskv using the provided config.
func Load(cfg Config) (Pasteboard, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &pasteboard{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, tempDir),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// No cache: other processes write the same slot.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type pasteboard struct {
	d        *diskv.Diskv
	basePath string
}

func (p *pasteboard) Put(_ context.Context, payload viewmodel.Payload) error {
	if payload.Format == "" {
		return errors.New("store: payload format required")
	}
	data, err := json.Marshal(record{
		Format: payload.Format,
		Data:   payload.Data,
		Stored: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	if err := p.d.Write(slotKey, data); err != nil {
		return fmt.Errorf("store: write payload: %w", err)
	}
	return nil
}

func (p *pasteboard) Get(_ context.Context) (viewmodel.Payload, error) {
	val, err := p.d.Read(slotKey)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return viewmodel.Payload{}, ErrEmpty
		}
		return viewmodel.Payload{}, fmt.Errorf("store: read payload: %w", err)
	}
	if len(val) == 0 {
		return viewmodel.Payload{}, ErrEmpty
	}
	var r record
	if err := json.Unmarshal(val, &r); err != nil {
		return viewmodel.Payload{}, fmt.Errorf("store: decode payload: %w", err)
	}
	return viewmodel.Payload{Format: r.Format, Data: r.Data}, nil
}

func (p *pasteboard) Clear(_ context.Context) error {
	if err := p.d.Erase(slotKey); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: clear payload: %w", err)
	}
	return nil
}

func (p *pasteboard) slotPath() string {
	pk := keyToPathTransform(slotKey)
	return filepath.Join(append([]string{p.basePath}, append(pk.Path, pk.FileName)...)...)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
