package wheel

import tea "charm.land/bubbletea/v2"

// GestureMsg is sent by hosts that recognise a multi-touch gesture. Terminals
// do not report gestures, so nothing in the program loop produces it.
type GestureMsg struct {
	Name string
}

// FromMsg converts a Bubble Tea message into an Event. Terminal wheels report
// whole notches, so a wheel message becomes a delta of one notch; horizontal
// wheel movement is a wheel event with no vertical component.
func FromMsg(msg tea.Msg) Event {
	switch msg := msg.(type) {
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			return Event{Kind: KindMouseWheel, PreciseY: 1}
		case tea.MouseWheelDown:
			return Event{Kind: KindMouseWheel, PreciseY: -1}
		default:
			return Event{Kind: KindMouseWheel}
		}
	case GestureMsg, *GestureMsg:
		return Event{Kind: KindGesture}
	case tea.KeyPressMsg:
		return Event{Kind: KindKeyPress}
	case tea.MouseClickMsg, tea.MouseReleaseMsg:
		return Event{Kind: KindMouseButton}
	case tea.MouseMotionMsg:
		return Event{Kind: KindMouseMotion}
	default:
		return Event{Kind: KindOther}
	}
}
