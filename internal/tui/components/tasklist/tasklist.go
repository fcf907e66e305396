package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/projcal/internal/models"
)

// MoveTaskMsg asks the parent to push a task forward by one working day.
type MoveTaskMsg struct {
	ID string
}

type Item struct {
	Task models.Task
}

func (i Item) Title() string {
	if i.Task.Status.IsTerminal() {
		return i.Task.Name + " (" + string(i.Task.Status) + ")"
	}
	return i.Task.Name
}

func (i Item) Description() string {
	span := i.Task.StartDate
	if i.Task.EndDate != "" && i.Task.EndDate != i.Task.StartDate {
		span += " → " + i.Task.EndDate
	}
	return fmt.Sprintf("%s | %s", span, i.Task.Status)
}

func (i Item) FilterValue() string { return i.Task.Name }

type KeyMap struct {
	Move key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move +1 working day"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(tasks []models.Task, width, height int) Model {
	l := list.New(toItems(tasks), list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Move}
	}
	return Model{list: l, keys: keys}
}

func toItems(tasks []models.Task) []list.Item {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Task: t}
	}
	return items
}

func (m *Model) SetTasks(tasks []models.Task) {
	m.list.SetItems(toItems(tasks))
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Move) {
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Task.Status.IsTerminal() {
				id := i.Task.ID
				return m, func() tea.Msg { return MoveTaskMsg{ID: id} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No tasks in this project yet.\n  Add one with 'projcal task add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
