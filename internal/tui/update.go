package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateAddHabit {
		return m.updateAddHabit(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		// Tabs, status line and help.
		listHeight := msg.Height - v - 4
		m.today.SetSize(msg.Width-h, listHeight)
		m.all.SetSize(msg.Width-h, listHeight)
		return m, nil

	case habitsLoadedMsg:
		m.err = msg.err
		m.setHabits(m.cache.Habits())
		return m, nil

	case analyticsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		snap := msg.snapshot
		m.analytics = &snap
		return m, nil

	case toggledMsg:
		// The cache has already reconciled or rolled back.
		m.setHabits(m.cache.Habits())
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		return m, m.loadAnalytics()

	case changedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = msg.status
		m.setHabits(m.cache.Habits())
		return m, tea.Batch(m.refreshHabits(), m.loadAnalytics())

	case habitlist.ToggleHabitMsg:
		return m, m.toggle(msg.ID)

	case habitlist.AddHabitMsg:
		m.previousState = m.state
		m.form = m.newHabitForm()
		m.state = StateAddHabit
		return m, m.form.Init()

	case habitlist.PauseHabitMsg:
		return m, m.pause(msg.ID)

	case habitlist.DeleteHabitMsg:
		m.previousState = m.state
		m.habitToDeleteID = msg.ID
		m.habitToDeleteName = msg.Name
		m.state = StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		if m.state == StateConfirmDelete {
			switch {
			case key.Matches(msg, m.keys.Confirm):
				m.state = m.previousState
				return m, m.deleteHabit(m.habitToDeleteID, m.habitToDeleteName)
			case key.Matches(msg, m.keys.Cancel):
				m.state = m.previousState
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			return m, tea.Batch(m.refreshHabits(), m.loadAnalytics())
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.today, cmd = m.today.Update(msg)
	case StateHabits:
		m.all, cmd = m.all.Update(msg)
	}
	return m, cmd
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		return m, tea.Batch(cmd, m.createHabit(m.habitForm.Input()))
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}
