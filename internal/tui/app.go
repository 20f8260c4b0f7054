package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studentgen/studentgen/internal/config"
	"github.com/studentgen/studentgen/internal/models"
	"github.com/studentgen/studentgen/internal/stats"
	"github.com/studentgen/studentgen/internal/tui/components"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 140

// chromeLines is the number of lines used by the header, status line and footer.
const chromeLines = 6

// Outcome reports how a preview session ended.
type Outcome int

const (
	// OutcomePending means the user has not decided yet.
	OutcomePending Outcome = iota
	// OutcomeConfirmed means the dataset should be written.
	OutcomeConfirmed
	// OutcomeCancelled means the dataset should be discarded.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

// Options configures the preview.
type Options struct {
	ColorScheme config.ColorScheme
	OutputPath  string
	Seed        int64
}

// App is the dataset preview Bubble Tea model.
type App struct {
	students []*models.Student
	summary  *stats.Summary
	opts     Options
	table    *components.Table

	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool
	showSummary bool
	showHelp    bool

	outcome Outcome
}

// New creates a preview of students. A nil summary is computed from students.
func New(students []*models.Student, summary *stats.Summary, opts Options) *App {
	if summary == nil {
		summary = stats.Summarize(students)
	}

	theme := NewTheme(opts.ColorScheme)

	table := components.NewTable(previewColumns())
	table.SetRows(previewRows(students))
	table.Focus(true)
	theme.ApplyTable(table)

	a := &App{
		students: students,
		summary:  summary,
		opts:     opts,
		table:    table,
		theme:    theme,
		keys:     DefaultKeyMap(),
	}
	a.updatePagination()

	return a
}

func previewColumns() []components.Column {
	return []components.Column{
		{Title: "#", Width: 6, Priority: 9, Align: lipgloss.Right},
		{Title: "Name", Width: 16, Weight: 2, Priority: 10},
		{Title: "Age", Width: 3, Priority: 8, Align: lipgloss.Right},
		{Title: "School", Width: 10, Weight: 1, Priority: 7},
		{Title: "Occupation", Width: 10, Priority: 6},
		{Title: "Salary", Width: 10, Priority: 5, Align: lipgloss.Right},
		{Title: "Prev", Width: 4, Priority: 4, Align: lipgloss.Right},
		{Title: "Curr", Width: 4, Priority: 4, Align: lipgloss.Right},
		{Title: "Eyes", Width: 5, Priority: 2},
		{Title: "Hair", Width: 6, Priority: 1},
	}
}

func previewRows(students []*models.Student) [][]string {
	rows := make([][]string, len(students))
	for i, s := range students {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			s.FullName(),
			strconv.Itoa(s.Age),
			s.SchoolName,
			string(s.ParentsOccupation),
			models.FormatSalary(s.ParentsSalary),
			models.FormatTenths(s.PreviousYearGrades),
			models.FormatTenths(s.CurrentYearGrades),
			string(s.EyeColor),
			string(s.HairColor),
		}
	}
	return rows
}

// Outcome returns the user's decision.
func (a *App) Outcome() Outcome {
	return a.outcome
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.updateViewDimensions()
		return a, nil
	}

	return a, nil
}

func (a *App) updateViewDimensions() {
	// Header row, separator and page indicator take four lines.
	a.table.SetVisibleRows(ContentHeight(a.height, chromeLines) - 4)
	a.updatePagination()
}

func (a *App) updatePagination() {
	per := a.table.VisibleRows()
	total := a.table.RowCount()
	pages := max((total+per-1)/per, 1)
	a.table.SetPagination(a.table.Selected()/per+1, pages, total)
}

func (a *App) finish(outcome Outcome) (tea.Model, tea.Cmd) {
	a.outcome = outcome
	a.quitting = true
	return a, tea.Quit
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.keys.ForceQuit.Matches(msg) {
		return a.finish(OutcomeCancelled)
	}

	// Discard confirmation is modal.
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			return a.finish(OutcomeCancelled)
		case "n", "N", "esc":
			a.showConfirm = false
		}
		return a, nil
	}

	if a.showHelp {
		if a.keys.Help.Matches(msg) || a.keys.Quit.Matches(msg) {
			a.showHelp = false
		}
		return a, nil
	}

	switch {
	case a.keys.Quit.Matches(msg):
		a.showConfirm = true
		return a, nil
	case a.keys.Confirm.Matches(msg):
		return a.finish(OutcomeConfirmed)
	case a.keys.Summary.Matches(msg):
		a.showSummary = !a.showSummary
		return a, nil
	case a.keys.Help.Matches(msg):
		a.showHelp = true
		return a, nil
	}

	if a.showSummary || !a.keys.IsNavigation(msg) {
		return a, nil
	}

	switch {
	case a.keys.Up.Matches(msg):
		a.table.MoveUp()
	case a.keys.Down.Matches(msg):
		a.table.MoveDown()
	case a.keys.PageUp.Matches(msg):
		a.table.PageUp()
	case a.keys.PageDown.Matches(msg):
		a.table.PageDown()
	case a.keys.Home.Matches(msg):
		a.table.GoToTop()
	case a.keys.End.Matches(msg):
		a.table.GoToBottom()
	}
	a.updatePagination()

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		if a.outcome == OutcomeConfirmed {
			return a.theme.Success.Render("Writing dataset...")
		}
		return a.theme.Title.Render("Preview cancelled. Nothing was written.")
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderStatusLine())
	b.WriteString("\n")

	contentHeight := ContentHeight(a.height, chromeLines)
	if a.showConfirm {
		b.WriteString(a.renderConfirmDialog(contentHeight))
	} else {
		b.WriteString(a.renderContent(contentHeight))
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	title := fmt.Sprintf("STUDENTGEN DATASET PREVIEW v%s", Version)
	if GetBreakpoint(a.width) == BreakpointNarrow {
		title = "STUDENTGEN"
	}

	info := fmt.Sprintf("%d RECORDS | SEED %d", len(a.students), a.opts.Seed)

	spacing := max(a.width-lipgloss.Width(title)-lipgloss.Width(info)-4, 1)

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(info)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

// renderStatusLine shows the destination and the selected record.
func (a *App) renderStatusLine() string {
	half := max(a.width/2-12, 8)
	dest := a.theme.Label.Render(" OUTPUT: ") + a.theme.Value.Render(Truncate(a.opts.OutputPath, half))

	var selected string
	if row := a.table.SelectedRow(); row != nil {
		selected = a.theme.Label.Render("SELECTED: ") + a.theme.Value.Render(Truncate(row[0]+" "+row[1], half))
	} else {
		selected = a.theme.Warning.Render("Dataset is empty")
	}

	return dest + a.theme.StatusDivider.Render() + selected
}

// renderContent renders the main content area.
func (a *App) renderContent(height int) string {
	contentWidth := ContentWidth(a.width, 20, MaxContentWidth)

	var content string
	switch {
	case a.showHelp:
		content = a.renderHelp()
	case a.showSummary:
		content = a.renderSummary(contentWidth)
	default:
		content = a.table.RenderResponsive(contentWidth)
	}

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	return style.Render(lipgloss.NewStyle().Width(contentWidth).Render(content))
}

// renderSummary renders the dataset summary pane.
func (a *App) renderSummary(width int) string {
	sum := a.summary
	panelWidth := width/2 - 2
	if GetBreakpoint(width) == BreakpointNarrow {
		panelWidth = width
	}
	barWidth := max(panelWidth-34, 6)
	total := float64(max(sum.Total, 1))

	var ages strings.Builder
	for _, bucket := range []struct {
		label string
		count int
	}{
		{"0-2", sum.Ages.Infants},
		{"3-12", sum.Ages.Children},
		{"13-17", sum.Ages.Adolescents},
		{"18-25", sum.Ages.YoungAdults},
		{"26+", sum.Ages.Adults},
	} {
		fmt.Fprintf(&ages, "%s %s %s\n",
			a.theme.Label.Render(PadRight(bucket.label, 6)),
			PadLeft(strconv.Itoa(bucket.count), 7),
			a.theme.Bar(float64(bucket.count), total, barWidth))
	}
	fmt.Fprintf(&ages, "%s %.1f   %s %.1f",
		a.theme.Label.Render("Mean"), sum.Ages.AverageAge,
		a.theme.Label.Render("Median"), sum.Ages.MedianAge)

	var schools strings.Builder
	for i, sc := range sum.Schools {
		if i > 0 {
			schools.WriteString("\n")
		}
		fmt.Fprintf(&schools, "%s %s",
			a.theme.Label.Render(PadRight(Truncate(schoolLabel(sum, i), 18), 18)),
			PadLeft(strconv.Itoa(sc.Count), 7))
	}

	var parents strings.Builder
	for i, occ := range sum.Occupations {
		if i > 0 {
			parents.WriteString("\n")
		}
		fmt.Fprintf(&parents, "%s %s  avg %s",
			a.theme.Label.Render(PadRight(string(occ.Occupation), 11)),
			PadLeft(strconv.Itoa(occ.Count), 7),
			a.theme.Value.Render(strconv.FormatFloat(occ.MeanSalary, 'f', 2, 64)))
	}

	var looks strings.Builder
	for _, c := range models.EyeColors {
		fmt.Fprintf(&looks, "%s %s\n", a.theme.Label.Render(PadRight("Eyes "+string(c), 13)),
			PadLeft(strconv.Itoa(sum.EyeColors[c]), 7))
	}
	for _, c := range models.HairColors {
		fmt.Fprintf(&looks, "%s %s\n", a.theme.Label.Render(PadRight("Hair "+string(c), 13)),
			PadLeft(strconv.Itoa(sum.HairColors[c]), 7))
	}
	fmt.Fprintf(&looks, "%s %.2f   %s %.2f",
		a.theme.Label.Render("Grades prev"), sum.MeanPreviousGrades,
		a.theme.Label.Render("curr"), sum.MeanCurrentGrades)

	left := a.theme.Panel("AGES", ages.String(), panelWidth) + "\n" +
		a.theme.Panel("SCHOOLS", schools.String(), panelWidth)
	right := a.theme.Panel("PARENTS", parents.String(), panelWidth) + "\n" +
		a.theme.Panel("APPEARANCE & GRADES", looks.String(), panelWidth)

	return a.theme.Title.Render("═══ DATASET SUMMARY ═══") + "\n\n" + SideBySide(left, right, width, 2)
}

// renderHelp renders the help screen.
// schoolLabel names the i-th summary school, adding the zip code when
// another school has the same name.
func schoolLabel(sum *stats.Summary, i int) string {
	school := sum.Schools[i].School
	for j, other := range sum.Schools {
		if j != i && other.School.Name == school.Name {
			return school.Name + " " + school.ZipCode
		}
	}
	return school.Name
}

func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ HELP ═══"))
	b.WriteString("\n\n")

	bindings := []Key{
		a.keys.Up, a.keys.Down, a.keys.PageUp, a.keys.PageDown, a.keys.Home, a.keys.End,
		a.keys.Summary, a.keys.Confirm, a.keys.Quit, a.keys.ForceQuit,
	}
	for _, k := range bindings {
		line := fmt.Sprintf("    %-14s  %s", strings.Join(k.Keys, "/"), k.Help)
		b.WriteString(a.theme.Base.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("Press Esc to return"))

	return b.String()
}

// renderConfirmDialog renders the discard confirmation dialog.
func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("DISCARD DATASET") + "\n\n" +
			a.theme.Subtitle.Render("Exit without writing the dataset?") + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	return a.theme.DrawHorizontalLine(a.width) + "\n" + a.theme.Footer.Render(a.keys.StatusBarHelp())
}

// Run shows the preview and blocks until the user decides or ctx is done.
// A cancelled context counts as a discard.
func Run(ctx context.Context, students []*models.Student, summary *stats.Summary, opts Options) (Outcome, error) {
	app := New(students, summary, opts)

	p := tea.NewProgram(app, tea.WithAltScreen())

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			p.Quit()
		case <-done:
		}
	}()

	m, err := p.Run()
	if err != nil {
		return OutcomeCancelled, fmt.Errorf("running preview: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return OutcomeCancelled, err
	}

	final, ok := m.(*App)
	if !ok || final.Outcome() == OutcomePending {
		return OutcomeCancelled, nil
	}

	return final.Outcome(), nil
}
