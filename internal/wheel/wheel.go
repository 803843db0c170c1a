// Package wheel extracts scroll amounts from input events.
package wheel

// Kind tags an input event.
type Kind int

const (
	KindOther Kind = iota
	KindMouseWheel
	KindGesture
	KindKeyPress
	KindMouseButton
	KindMouseMotion
)

func (k Kind) String() string {
	switch k {
	case KindMouseWheel:
		return "wheel"
	case KindGesture:
		return "gesture"
	case KindKeyPress:
		return "key"
	case KindMouseButton:
		return "button"
	case KindMouseMotion:
		return "motion"
	default:
		return "other"
	}
}

// Event is the part of an input event the extractor reads. PreciseY is only
// meaningful for wheel events; positive values scroll away from the user.
type Event struct {
	Kind     Kind
	PreciseY float32
}

// GestureSentinel is what WheelY reports for a gesture event. It is a marker,
// not a scroll amount.
const GestureSentinel float32 = 100000.0

// DeltaKind tags the result of Extract.
type DeltaKind int

const (
	DeltaNone DeltaKind = iota
	DeltaScroll
	DeltaGesture
)

// Delta is the scroll carried by an event. Y is set only for DeltaScroll.
type Delta struct {
	Kind DeltaKind
	Y    float32
}

// Extract reports the vertical scroll carried by ev.
func Extract(ev Event) Delta {
	switch ev.Kind {
	case KindMouseWheel:
		return Delta{Kind: DeltaScroll, Y: ev.PreciseY}
	case KindGesture:
		return Delta{Kind: DeltaGesture}
	default:
		return Delta{}
	}
}

// WheelY is Extract flattened to a single float for callers that expect the
// gesture to show up as GestureSentinel.
func WheelY(ev Event) float32 {
	d := Extract(ev)
	switch d.Kind {
	case DeltaScroll:
		return d.Y
	case DeltaGesture:
		return GestureSentinel
	default:
		return 0
	}
}
