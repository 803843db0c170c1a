package hittest

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrNegativeSize is returned when a region has a negative width or height.
var ErrNegativeSize = errors.New("hit region has negative size")

// DragRegion is a draggable area with optional holes of its own. Holes are
// only consulted when this region is the first one to contain the point.
type DragRegion struct {
	Bounds Rect
	Holes  []Rect
}

// Config is the immutable set of regions a window classifies against.
// Draggable regions are tested in order; excluded regions suppress a drag
// inside whichever draggable region matched first.
type Config struct {
	draggable []DragRegion
	excluded  []Rect
}

// NewConfig validates and copies both region lists. Either list may be empty.
func NewConfig(draggable, excluded []Rect) (*Config, error) {
	regions := make([]DragRegion, len(draggable))
	for i, r := range draggable {
		regions[i] = DragRegion{Bounds: r}
	}
	return NewRegionConfig(regions, excluded)
}

// NewRegionConfig is NewConfig for draggable regions that carry holes.
func NewRegionConfig(draggable []DragRegion, excluded []Rect) (*Config, error) {
	for i, d := range draggable {
		if err := validateRect("draggable", i, d.Bounds); err != nil {
			return nil, err
		}
		for j, h := range d.Holes {
			if err := validateRect(fmt.Sprintf("draggable region %d hole", i), j, h); err != nil {
				return nil, err
			}
		}
	}
	if err := validate("excluded", excluded); err != nil {
		return nil, err
	}
	return &Config{
		draggable: cloneRegions(draggable),
		excluded:  cloneRects(excluded),
	}, nil
}

// Simple builds a config with no excluded regions. It panics on a negative
// size, so it is meant for regions known at compile time.
func Simple(draggable ...Rect) *Config {
	cfg, err := NewConfig(draggable, nil)
	if err != nil {
		panic(err)
	}
	return cfg
}

// WithExcluded returns a new config with the same draggable regions and the
// given excluded regions. The receiver is left untouched.
func (c *Config) WithExcluded(excluded []Rect) (*Config, error) {
	if err := validate("excluded", excluded); err != nil {
		return nil, err
	}
	next := &Config{excluded: cloneRects(excluded)}
	if c != nil {
		// draggable is never mutated after construction, so it can be shared.
		next.draggable = c.draggable
	}
	return next, nil
}

// Draggable returns a copy of the draggable bounds, in test order.
func (c *Config) Draggable() []Rect {
	if c == nil || len(c.draggable) == 0 {
		return nil
	}
	out := make([]Rect, len(c.draggable))
	for i, d := range c.draggable {
		out[i] = d.Bounds
	}
	return out
}

// Regions returns a copy of the draggable regions including their holes.
func (c *Config) Regions() []DragRegion {
	if c == nil {
		return nil
	}
	return cloneRegions(c.draggable)
}

// Excluded returns a copy of the excluded regions.
func (c *Config) Excluded() []Rect {
	if c == nil {
		return nil
	}
	return cloneRects(c.excluded)
}

func validate(list string, rects []Rect) error {
	for i, r := range rects {
		if err := validateRect(list, i, r); err != nil {
			return err
		}
	}
	return nil
}

func validateRect(list string, i int, r Rect) error {
	if r.W < 0 || r.H < 0 {
		return fmt.Errorf("%s region %d %s: %w", list, i, r, ErrNegativeSize)
	}
	return nil
}

func cloneRects(rects []Rect) []Rect {
	if len(rects) == 0 {
		return nil
	}
	out := make([]Rect, len(rects))
	copy(out, rects)
	return out
}

func cloneRegions(regions []DragRegion) []DragRegion {
	if len(regions) == 0 {
		return nil
	}
	out := make([]DragRegion, len(regions))
	for i, d := range regions {
		out[i] = DragRegion{Bounds: d.Bounds, Holes: cloneRects(d.Holes)}
	}
	return out
}

// Regions holds the config currently in effect for a window. Store may be
// called from any goroutine while the event loop calls Load.
type Regions struct {
	cur atomic.Pointer[Config]
}

// NewRegions returns a holder initialised with cfg.
func NewRegions(cfg *Config) *Regions {
	r := &Regions{}
	r.Store(cfg)
	return r
}

// Load returns the current config. It never returns nil.
func (r *Regions) Load() *Config {
	if r == nil {
		return &Config{}
	}
	if cfg := r.cur.Load(); cfg != nil {
		return cfg
	}
	return &Config{}
}

// Store replaces the current config.
func (r *Regions) Store(cfg *Config) {
	if cfg == nil {
		cfg = &Config{}
	}
	r.cur.Store(cfg)
}
