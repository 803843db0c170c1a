package window

import "charm.land/bubbles/v2/key"

// KeyMap holds the window key bindings.
type KeyMap struct {
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	MoveLeft   key.Binding
	MoveRight  key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Collapse   key.Binding
	Copy       key.Binding
	Close      key.Binding
	PlayPause  key.Binding
	NextTrack  key.Binding
	PrevTrack  key.Binding
	Love       key.Binding
}

// DefaultKeyMap returns the default window bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ScrollUp:   key.NewBinding(key.WithKeys("k", "up")),
		ScrollDown: key.NewBinding(key.WithKeys("j", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "b")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "space")),
		Top:        key.NewBinding(key.WithKeys("g", "home")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end")),
		MoveLeft:   key.NewBinding(key.WithKeys("shift+left", "H")),
		MoveRight:  key.NewBinding(key.WithKeys("shift+right", "L")),
		MoveUp:     key.NewBinding(key.WithKeys("shift+up", "K")),
		MoveDown:   key.NewBinding(key.WithKeys("shift+down", "J")),
		Collapse:   key.NewBinding(key.WithKeys("z")),
		Copy:       key.NewBinding(key.WithKeys("c")),
		Close:      key.NewBinding(key.WithKeys("x")),
		PlayPause:  key.NewBinding(key.WithKeys("p")),
		NextTrack:  key.NewBinding(key.WithKeys(">", "n")),
		PrevTrack:  key.NewBinding(key.WithKeys("<", "N")),
		Love:       key.NewBinding(key.WithKeys("l")),
	}
}
