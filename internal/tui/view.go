package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/projcal/internal/calendar"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateMonth:
		content = docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.month.View(), m.viewDay()))
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	}

	parts := []string{m.viewTabs(), content}
	if m.err != nil {
		parts = append(parts, dangerStyle.Render("Error: "+m.err.Error()))
	} else if m.status != "" {
		parts = append(parts, noteStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewDay describes the date under the cursor.
func (m Model) viewDay() string {
	date := calendar.Format(m.month.Cursor())
	var b strings.Builder
	b.WriteString(date)

	h, ok := m.holidays[date]
	if !ok {
		b.WriteString(": working day")
		return b.String()
	}

	b.WriteString(fmt.Sprintf(": %s holiday", h.Kind))
	if h.Waivable {
		b.WriteString(" (waivable)")
	}
	if h.Notes != "" {
		b.WriteString("\n" + noteStyle.Render(h.Notes))
	}
	for _, t := range m.conflicts[date] {
		b.WriteString("\n" + dangerStyle.Render("! "+t.Name) + " " + noteStyle.Render(string(t.Status)))
	}
	return b.String()
}
