package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studentgen/studentgen/internal/config"
	"github.com/studentgen/studentgen/internal/testutil"
)

// newTestApp creates an App previewing n fixture students. The window is set
// to 120x40 and marked ready.
func newTestApp(t *testing.T, n int) *App {
	t.Helper()

	app := New(testutil.FixtureStudents(n), nil, testOptions())

	app.width = 120
	app.height = 40
	app.ready = true
	app.updateViewDimensions()

	return app
}

func testOptions() Options {
	return Options{
		ColorScheme: config.ColorSchemeGreenPhosphor,
		OutputPath:  "out/students.csv",
		Seed:        42,
	}
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}
