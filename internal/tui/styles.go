// Package tui provides the terminal dataset preview for studentgen.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studentgen/studentgen/internal/config"
	"github.com/studentgen/studentgen/internal/tui/components"
)

// Theme contains all style definitions for the TUI.
type Theme struct {
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	AccentColor    lipgloss.Color
	MutedColor     lipgloss.Color

	Base      lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Box      lipgloss.Style
	Selected lipgloss.Style

	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	TableRowAlt lipgloss.Style
	TableBorder lipgloss.Style

	StatusDivider lipgloss.Style
}

// NewTheme creates a new theme based on the color scheme configuration.
func NewTheme(scheme config.ColorScheme) *Theme {
	switch scheme {
	case config.ColorSchemeAmber:
		return buildTheme(palette{
			primary:   "#FFAA00",
			secondary: "#AA7700",
			accent:    "#FFCC66",
			muted:     "#664400",
			warning:   "#FFFF00",
			success:   "#FFAA00",
		})
	case config.ColorSchemeWhite:
		return buildTheme(palette{
			primary:   "#FFFFFF",
			secondary: "#AAAAAA",
			accent:    "#FFFFFF",
			muted:     "#666666",
			warning:   "#FFAA00",
			success:   "#00FF00",
		})
	default:
		return buildTheme(palette{
			primary:   "#00FF00",
			secondary: "#00AA00",
			accent:    "#66FF66",
			muted:     "#006600",
			warning:   "#FFAA00",
			success:   "#00FF00",
		})
	}
}

type palette struct {
	primary, secondary, accent, muted, warning, success lipgloss.Color
}

func buildTheme(p palette) *Theme {
	background := lipgloss.Color("#000000")

	t := &Theme{
		PrimaryColor:   p.primary,
		SecondaryColor: p.secondary,
		AccentColor:    p.accent,
		MutedColor:     p.muted,
	}

	t.Base = lipgloss.NewStyle().Foreground(p.primary)
	t.Primary = lipgloss.NewStyle().Foreground(p.primary)
	t.Secondary = lipgloss.NewStyle().Foreground(p.secondary)
	t.Accent = lipgloss.NewStyle().Foreground(p.accent)
	t.Muted = lipgloss.NewStyle().Foreground(p.muted)
	t.Success = lipgloss.NewStyle().Foreground(p.success)
	t.Warning = lipgloss.NewStyle().Foreground(p.warning).Bold(true)

	t.Header = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true).
		Padding(0, 1)

	t.Footer = lipgloss.NewStyle().
		Foreground(p.secondary).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true).
		Padding(0, 1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(p.primary).
		Padding(0, 1)

	t.Label = lipgloss.NewStyle().Foreground(p.secondary)
	t.Value = lipgloss.NewStyle().Foreground(p.primary)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.secondary).
		Padding(0, 1)

	t.Selected = lipgloss.NewStyle().
		Foreground(background).
		Background(p.primary).
		Bold(true)

	t.TableHeader = lipgloss.NewStyle().Foreground(p.accent).Bold(true)
	t.TableRow = lipgloss.NewStyle().Foreground(p.primary)
	t.TableRowAlt = lipgloss.NewStyle().Foreground(p.secondary)
	t.TableBorder = lipgloss.NewStyle().Foreground(p.secondary)

	t.StatusDivider = lipgloss.NewStyle().
		Foreground(p.muted).
		SetString(" │ ")

	return t
}

// ApplyTable styles a table with the theme's colors.
func (t *Theme) ApplyTable(table *components.Table) {
	table.SetStyles(t.TableHeader, t.TableRow, t.TableRowAlt, t.Selected, t.TableBorder)
}

// DrawHorizontalLine draws a horizontal line.
func (t *Theme) DrawHorizontalLine(width int) string {
	return t.Secondary.Render(strings.Repeat("─", max(width, 0)))
}

// DrawDoubleLine draws a double horizontal line.
func (t *Theme) DrawDoubleLine(width int) string {
	return t.Primary.Render(strings.Repeat("═", max(width, 0)))
}
