package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/projcal/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.taskList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case dataMsg:
		m.err = nil
		m.apply(msg)
		return m, nil

	case movedMsg:
		if len(msg.result.Tasks) > 0 {
			t := msg.result.Tasks[0]
			m.status = fmt.Sprintf("Moved task to %s", t.NewStart)
		}
		return m, m.load()

	case errMsg:
		m.err = msg.err
		return m, nil

	case tasklist.MoveTaskMsg:
		return m, m.moveTask(msg.ID)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			return m, m.load()
		}

		if m.state == StateMonth {
			switch {
			case key.Matches(msg, m.keys.Left):
				m.month.MoveCursor(-1)
			case key.Matches(msg, m.keys.Right):
				m.month.MoveCursor(1)
			case key.Matches(msg, m.keys.Up):
				m.month.MoveCursor(-7)
			case key.Matches(msg, m.keys.Down):
				m.month.MoveCursor(7)
			case key.Matches(msg, m.keys.PrevMonth):
				m.month.ShiftMonth(-1)
			case key.Matches(msg, m.keys.NextMonth):
				m.month.ShiftMonth(1)
			}
			return m, nil
		}
	}

	if m.state == StateTasks {
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd
	}
	return m, nil
}
