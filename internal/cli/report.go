package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/projcal/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Width(12)
)

func taskSpan(start, end string) string {
	if end == "" || end == start {
		return start
	}
	return start + " → " + end
}

// PrintBatch writes a holiday batch report.
func PrintBatch(w io.Writer, r models.BatchResult) {
	fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("✓ %d created, %d updated", r.Created, r.Updated)))
	for _, e := range r.Entries {
		line := dateStyle.Render(e.Date) + " " + string(e.Action)
		if len(e.Tasks) > 0 {
			line += " " + warningStyle.Render(fmt.Sprintf("(%d conflicting)", len(e.Tasks)))
		}
		fmt.Fprintln(w, "  "+line)
	}
	if r.HasConflicts() {
		fmt.Fprintln(w)
		PrintConflicts(w, r.Conflicts)
	}
}

// PrintConflicts lists the open tasks colliding with each holiday date.
func PrintConflicts(w io.Writer, conflicts []models.DateConflict) {
	if len(conflicts) == 0 {
		fmt.Fprintln(w, okStyle.Render("No conflicting tasks."))
		return
	}
	fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("⚠ %d holiday date(s) with conflicting tasks", len(conflicts))))
	for _, c := range conflicts {
		fmt.Fprintln(w, "  "+dateStyle.Render(c.Date))
		for _, t := range c.Tasks {
			fmt.Fprintf(w, "    %s  %s  %s\n", t.Name, mutedStyle.Render(taskSpan(t.StartDate, t.EndDate)), mutedStyle.Render(t.ID))
		}
	}
}

// PrintMove reports the tasks shifted by a move.
func PrintMove(w io.Writer, r models.MoveResult) {
	fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("✓ %d task(s) processed", r.MovedCount)))
	for _, t := range r.Tasks {
		fmt.Fprintf(w, "  %s  %s → %s\n", mutedStyle.Render(t.ID), taskSpan(t.OldStart, t.OldEnd), taskSpan(t.NewStart, t.NewEnd))
	}
}

func PrintHolidays(w io.Writer, list []models.Holiday) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No holidays found.")
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-12s %-10s %-10s %-8s %-8s %s", "DATE", "WEEKDAY", "KIND", "WAIVABLE", "STATUS", "ID")))
	for _, h := range list {
		waivable := "no"
		if h.Waivable {
			waivable = "yes"
		}
		line := fmt.Sprintf("%-12s %-10s %-10s %-8s %-8s %s", h.Date, h.WeekdayName(), h.Kind, waivable, h.Status, h.ID)
		if !h.IsActive() {
			line = mutedStyle.Render(line)
		}
		fmt.Fprintln(w, line)
		if h.Notes != "" {
			fmt.Fprintln(w, mutedStyle.Render("  "+strings.ReplaceAll(h.Notes, "\n", " ")))
		}
	}
}

func PrintTasks(w io.Writer, list []models.Task) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-25s %-25s %-12s %s", "NAME", "DATES", "STATUS", "ID")))
	for _, t := range list {
		line := fmt.Sprintf("%-25s %-25s %-12s %s", t.Name, taskSpan(t.StartDate, t.EndDate), t.Status, t.ID)
		if t.Status.IsTerminal() {
			line = mutedStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}
