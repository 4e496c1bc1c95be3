package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID   string
	Name string
}

type PauseHabitMsg struct {
	ID string
}

type Item struct {
	Habit models.HabitView
}

func (i Item) Title() string {
	if i.Habit.IsCompletedToday {
		return "✓ " + i.Habit.Name
	}
	return "○ " + i.Habit.Name
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %s", i.Habit.FrequencyDescription, i.Habit.CategoryOrDefault())
	if i.Habit.IsDueToday {
		return desc + " | due today"
	}
	return desc + " | next " + i.Habit.NextDueDate.String()
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Toggle key.Binding
	Add    key.Binding
	Delete key.Binding
	Pause  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter", "x"),
			key.WithHelp("space", "toggle done"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
	}
}

// Model lists habits. With dueOnly set it shows just the habits due today.
type Model struct {
	list    list.Model
	keys    KeyMap
	dueOnly bool
}

func New(title string, dueOnly bool, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Delete, keys.Pause}
	}

	return Model{list: l, keys: keys, dueOnly: dueOnly}
}

func (m *Model) SetHabits(habits []models.HabitView) {
	items := make([]list.Item, 0, len(habits))
	for _, h := range habits {
		if m.dueOnly && !h.IsDueToday {
			continue
		}
		items = append(items, Item{Habit: h})
	}
	m.list.SetItems(items)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID, Name: i.Habit.Name} }
			}
		case key.Matches(msg, m.keys.Pause):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return PauseHabitMsg{ID: i.Habit.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		if m.dueOnly {
			return "\n  Nothing due today."
		}
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
