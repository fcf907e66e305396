// Package month renders a Monday-first month grid with holiday and conflict markers.
package month

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/projcal/internal/calendar"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(5).
			Align(lipgloss.Center)

	dayStyle = lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center)

	holidayStyle = dayStyle.
			Foreground(lipgloss.Color("42"))

	conflictStyle = dayStyle.
			Foreground(lipgloss.Color("196")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Underline(true)
)

// Day carries what the grid shows for one date.
type Day struct {
	Holiday   bool
	Conflicts int
}

type Model struct {
	month  time.Time
	cursor time.Time
	days   map[string]Day
}

func New(month time.Time) Model {
	first, _ := calendar.MonthBounds(month)
	return Model{month: first, cursor: first, days: map[string]Day{}}
}

func (m Model) Month() time.Time  { return m.month }
func (m Model) Cursor() time.Time { return m.cursor }

func (m *Model) SetDays(days map[string]Day) {
	m.days = days
}

// MoveCursor shifts the cursor by n days, following it into the adjacent month.
func (m *Model) MoveCursor(n int) {
	m.cursor = calendar.AddDays(m.cursor, n)
	m.month, _ = calendar.MonthBounds(m.cursor)
}

// ShiftMonth jumps n months, keeping the cursor on the first of the month.
func (m *Model) ShiftMonth(n int) {
	m.month = m.month.AddDate(0, n, 0)
	m.cursor = m.month
}

// mondayIndex maps Sunday=0 weekdays onto a Monday-first column.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.month.Format("January 2006")))
	b.WriteString("\n")

	var header []string
	for _, name := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		header = append(header, weekdayStyle.Render(name))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	first, last := calendar.MonthBounds(m.month)
	cells := make([]string, mondayIndex(first.Weekday()))
	for i := range cells {
		cells[i] = dayStyle.Render("")
	}
	for d := first; !d.After(last); d = calendar.Next(d) {
		cells = append(cells, m.renderDay(d))
		if len(cells) == 7 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			b.WriteString("\n")
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDay(d time.Time) string {
	info := m.days[calendar.Format(d)]
	label := fmt.Sprintf("%d", d.Day())
	style := dayStyle
	switch {
	case info.Conflicts > 0:
		label += "!"
		style = conflictStyle
	case info.Holiday:
		label += "*"
		style = holidayStyle
	}
	if d.Equal(m.cursor) {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(label)
}
