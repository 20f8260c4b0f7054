package tui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/studentgen/studentgen/internal/testutil"
)

// newE2EApp creates an App for end-to-end testing via teatest.
// Unlike newTestApp, this does NOT pre-configure width/height/ready
// since teatest sends WindowSizeMsg via WithInitialTermSize.
func newE2EApp(t *testing.T) *App {
	t.Helper()
	return New(testutil.FixtureStudents(50), nil, testOptions())
}

// waitFor is a convenience wrapper around teatest.WaitFor with a standard timeout.
func waitFor(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte(text))
	}, teatest.WithDuration(5*time.Second))
}

func finalApp(t *testing.T, tm *teatest.TestModel) *App {
	t.Helper()
	m := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	app, ok := m.(*App)
	if !ok {
		t.Fatalf("expected *App, got %T", m)
	}
	return app
}

func TestE2E_PreviewOnStartup(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "STUDENTGEN DATASET PREVIEW")
	waitFor(t, tm, "Student0 Lovelace")
}

func TestE2E_SummaryAndBack(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "Student0 Lovelace")

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	waitFor(t, tm, "DATASET SUMMARY")

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	waitFor(t, tm, "Page 1/")
}

func TestE2E_HelpScreenAndBack(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "STUDENTGEN DATASET PREVIEW")

	tm.Send(tea.KeyMsg{Type: tea.KeyF1})
	waitFor(t, tm, "Press Esc to return")

	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	waitFor(t, tm, "Page 1/")
}

func TestE2E_WriteFlow(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))

	waitFor(t, tm, "STUDENTGEN DATASET PREVIEW")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})

	if got := finalApp(t, tm).Outcome(); got != OutcomeConfirmed {
		t.Errorf("expected confirmed, got %s", got)
	}
}

func TestE2E_DiscardFlow(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))

	waitFor(t, tm, "STUDENTGEN DATASET PREVIEW")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitFor(t, tm, "DISCARD DATASET")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	if got := finalApp(t, tm).Outcome(); got != OutcomeCancelled {
		t.Errorf("expected cancelled, got %s", got)
	}
}

func TestE2E_DiscardDeclined(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))

	waitFor(t, tm, "STUDENTGEN DATASET PREVIEW")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitFor(t, tm, "DISCARD DATASET")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	waitFor(t, tm, "Page 1/")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	if got := finalApp(t, tm).Outcome(); got != OutcomeConfirmed {
		t.Errorf("expected confirmed after declining discard, got %s", got)
	}
}

func TestE2E_ForceQuit(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))

	waitFor(t, tm, "STUDENTGEN DATASET PREVIEW")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	if got := finalApp(t, tm).Outcome(); got != OutcomeCancelled {
		t.Errorf("expected cancelled, got %s", got)
	}
}
