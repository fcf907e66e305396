// Package tui is the read-mostly calendar viewer of one project: a month grid
// marking holidays and conflicts, plus the project's task list.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/projcal/internal/models"
	"github.com/julianstephens/projcal/internal/tui/components/month"
	"github.com/julianstephens/projcal/internal/tui/components/tasklist"
)

// Source is the slice of holidays.Service the viewer needs.
type Source interface {
	ListHolidays(ctx context.Context, projectID string, includeDeleted bool) ([]models.Holiday, error)
	ActiveConflicts(ctx context.Context, projectID string) ([]models.DateConflict, error)
	ListTasks(ctx context.Context, projectID string) ([]models.Task, error)
	MoveTasks(ctx context.Context, projectID string, taskIDs []string, n int) (models.MoveResult, error)
}

type SessionState int

const (
	StateMonth SessionState = iota
	StateTasks
)

var tabTitles = []string{"Month", "Tasks"}

type dataMsg struct {
	holidays  []models.Holiday
	conflicts []models.DateConflict
	tasks     []models.Task
}

type movedMsg struct {
	result models.MoveResult
}

type errMsg struct {
	err error
}

type Model struct {
	ctx       context.Context
	source    Source
	projectID string

	state     SessionState
	keys      KeyMap
	help      help.Model
	month     month.Model
	taskList  tasklist.Model
	holidays  map[string]models.Holiday
	conflicts map[string][]models.TaskSummary
	status    string
	err       error
	quitting  bool
	width     int
	height    int
}

func NewModel(ctx context.Context, source Source, projectID string, start time.Time) Model {
	return Model{
		ctx:       ctx,
		source:    source,
		projectID: projectID,
		state:     StateMonth,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		month:     month.New(start),
		taskList:  tasklist.New(nil, 0, 0),
		holidays:  map[string]models.Holiday{},
		conflicts: map[string][]models.TaskSummary{},
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		holidays, err := m.source.ListHolidays(m.ctx, m.projectID, false)
		if err != nil {
			return errMsg{err}
		}
		conflicts, err := m.source.ActiveConflicts(m.ctx, m.projectID)
		if err != nil {
			return errMsg{err}
		}
		tasks, err := m.source.ListTasks(m.ctx, m.projectID)
		if err != nil {
			return errMsg{err}
		}
		return dataMsg{holidays: holidays, conflicts: conflicts, tasks: tasks}
	}
}

func (m Model) moveTask(id string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.source.MoveTasks(m.ctx, m.projectID, []string{id}, 1)
		if err != nil {
			return errMsg{err}
		}
		return movedMsg{result}
	}
}

func (m *Model) apply(data dataMsg) {
	m.holidays = make(map[string]models.Holiday, len(data.holidays))
	days := make(map[string]month.Day, len(data.holidays))
	for _, h := range data.holidays {
		m.holidays[h.Date] = h
		days[h.Date] = month.Day{Holiday: true}
	}
	m.conflicts = make(map[string][]models.TaskSummary, len(data.conflicts))
	for _, c := range data.conflicts {
		m.conflicts[c.Date] = c.Tasks
		d := days[c.Date]
		d.Conflicts = len(c.Tasks)
		days[c.Date] = d
	}
	m.month.SetDays(days)
	m.taskList.SetTasks(data.tasks)
}

func (m Model) ShortHelp() []key.Binding {
	if m.state == StateTasks {
		return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	}
	return []key.Binding{m.keys.Tab, m.keys.PrevMonth, m.keys.NextMonth, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh},
		{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.PrevMonth, m.keys.NextMonth},
	}
}
