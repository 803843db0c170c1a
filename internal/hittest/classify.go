// Package hittest decides whether a point inside a window should move the
// window (a title-bar style drag area) or behave as ordinary content.
package hittest

// Result is the outcome of a hit test.
type Result int

const (
	Normal Result = iota
	Draggable
)

func (r Result) String() string {
	switch r {
	case Normal:
		return "NORMAL"
	case Draggable:
		return "DRAGGABLE"
	default:
		return "UNKNOWN"
	}
}

// Func is the shape of a hit-test callback: the host passes its window
// handle, the point in window coordinates and the config registered with it.
type Func func(window any, pt Point, cfg *Config) Result

var _ Func = HitTest

// HitTest classifies pt for a window. The window handle is not consulted.
func HitTest(_ any, pt Point, cfg *Config) Result {
	return Classify(pt, cfg)
}

// Classify returns Draggable when pt is inside a draggable region and not
// inside any excluded region. Only the first draggable region containing pt
// is considered: its holes and the excluded list are checked against it and
// later draggable regions are never looked at. A nil config never matches.
func Classify(pt Point, cfg *Config) Result {
	if cfg == nil {
		return Normal
	}
	for _, d := range cfg.draggable {
		if !d.Bounds.Contains(pt) {
			continue
		}
		if anyContains(d.Holes, pt) || anyContains(cfg.excluded, pt) {
			return Normal
		}
		return Draggable
	}
	return Normal
}

func anyContains(rects []Rect, pt Point) bool {
	for _, r := range rects {
		if r.Contains(pt) {
			return true
		}
	}
	return false
}
