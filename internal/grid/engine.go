// Package grid converts between screen, world and tile coordinates for square
// and hexagonal grids, and generates the tiles, lines and outlines a renderer
// needs for the current viewport.
//
// An Engine holds no state of its own besides the configuration source it was
// built with. Every call reads one snapshot of the settings and returns plain
// values; nothing is cached between calls.
package grid

import (
	"errors"
	"fmt"
)

// Engine answers grid queries against a configuration source
type Engine struct {
	src    Source
	lod    LODPolicy
	report func(Adjustment)
}

// Option customises an Engine at construction
type Option func(*Engine)

// WithLODPolicy replaces the default generation limits
func WithLODPolicy(p LODPolicy) Option {
	return func(e *Engine) { e.lod = p }
}

// WithReporter receives every substitution made for invalid settings. It is
// called synchronously from the query that read the settings.
func WithReporter(fn func(Adjustment)) Option {
	return func(e *Engine) { e.report = fn }
}

// New binds an engine to its configuration source
func New(src Source, opts ...Option) (*Engine, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	e := &Engine{src: src, lod: DefaultLODPolicy()}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.lod.Validate(); err != nil {
		return nil, fmt.Errorf("creating grid engine: %w", err)
	}
	return e, nil
}

func (e *Engine) mustBeReady() {
	if e == nil || e.src == nil {
		panic(ErrNotInitialized)
	}
}

// snapshot reads and sanitises the current settings
func (e *Engine) snapshot() Settings {
	e.mustBeReady()
	s, adj := sanitize(e.src.GridSettings())
	if e.report != nil {
		for _, a := range adj {
			e.report(a)
		}
	}
	return s
}

// Settings returns the sanitised settings the next query would use
func (e *Engine) Settings() Settings {
	return e.snapshot()
}

// Policy returns the generation limits in use
func (e *Engine) Policy() LODPolicy {
	if e == nil {
		panic(ErrNotInitialized)
	}
	return e.lod
}

// Check reports the substitutions the current settings need, wrapped in
// ErrInvalidConfig, or nil when the settings are valid as given.
func (e *Engine) Check() error {
	if e == nil || e.src == nil {
		return ErrNotInitialized
	}
	_, adj := sanitize(e.src.GridSettings())
	if len(adj) == 0 {
		return nil
	}
	errs := make([]error, len(adj))
	for i, a := range adj {
		errs[i] = fmt.Errorf("%w: %s", ErrInvalidConfig, a)
	}
	return errors.Join(errs...)
}

// HexLayout returns the hex layout for the current tile size and offset
func (e *Engine) HexLayout() HexLayout {
	s := e.snapshot()
	return HexLayout{Width: s.TileSize, OffsetX: s.OffsetX, OffsetY: s.OffsetY}
}
