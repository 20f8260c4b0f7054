package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all key bindings for the preview.
type KeyMap struct {
	Up       Key
	Down     Key
	PageUp   Key
	PageDown Key
	Home     Key
	End      Key

	Confirm   Key
	Summary   Key
	Help      Key
	Quit      Key
	ForceQuit Key
}

// Key represents a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: Key{
			Keys:    []string{"up", "k"},
			Help:    "up",
			Enabled: true,
		},
		Down: Key{
			Keys:    []string{"down", "j"},
			Help:    "down",
			Enabled: true,
		},
		PageUp: Key{
			Keys:    []string{"pgup", "ctrl+u"},
			Help:    "page up",
			Enabled: true,
		},
		PageDown: Key{
			Keys:    []string{"pgdown", "ctrl+d"},
			Help:    "page down",
			Enabled: true,
		},
		Home: Key{
			Keys:    []string{"home", "g"},
			Help:    "first record",
			Enabled: true,
		},
		End: Key{
			Keys:    []string{"end", "G"},
			Help:    "last record",
			Enabled: true,
		},

		Confirm: Key{
			Keys:    []string{"w", "enter"},
			Help:    "write dataset",
			Enabled: true,
		},
		Summary: Key{
			Keys:    []string{"tab"},
			Help:    "toggle summary",
			Enabled: true,
		},
		Help: Key{
			Keys:    []string{"?", "f1"},
			Help:    "help",
			Enabled: true,
		},
		Quit: Key{
			Keys:    []string{"q", "esc"},
			Help:    "discard",
			Enabled: true,
		},
		ForceQuit: Key{
			Keys:    []string{"ctrl+c"},
			Help:    "discard now",
			Enabled: true,
		},
	}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}

	keyStr := msg.String()
	for _, key := range k.Keys {
		if keyStr == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// IsNavigation checks if the key message is a navigation key.
func (km KeyMap) IsNavigation(msg tea.KeyMsg) bool {
	return MatchesAny(msg, km.Up, km.Down, km.PageUp, km.PageDown, km.Home, km.End)
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp() string {
	return "[W]rite [Tab]Summary [?]Help [Q]Discard"
}
