package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateToday:
		content = docStyle.Render(m.today.View())
	case StateHabits:
		content = docStyle.Render(m.all.View())
	case StateAnalytics:
		content = docStyle.Render(m.viewAnalytics())
	case StateAddHabit:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}

	var tabs []string
	for i, title := range []string{"Today", "Habits", "Analytics"} {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return errorStyle.Render("  " + m.err.Error())
	}
	if m.status != "" {
		return statusStyle.Render("  " + m.status)
	}
	return ""
}

func (m Model) viewAnalytics() string {
	if m.analytics == nil {
		return "Loading analytics..."
	}
	a := m.analytics
	o := a.Overview

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Habits", fmt.Sprint(o.TotalHabits)),
		card("Today", fmt.Sprintf("%d%%", o.TodayCompletionRate)),
		card("Streak", fmt.Sprintf("%d days", o.CurrentStreak)),
		card("This week", fmt.Sprintf("%d%%", o.WeeklyCompletionRate)),
		card("Completions", fmt.Sprint(o.TotalCompletions)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		"",
		labelStyle.Render("Last 30 days"),
		renderHeatmap(a.Heatmap),
		"",
		labelStyle.Render("Categories"),
		renderCategories(a.Breakdown.Categories),
	)
}

func card(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

// renderHeatmap draws one cell per day, oldest first.
func renderHeatmap(heatmap map[models.Day]int) string {
	days := make([]models.Day, 0, len(heatmap))
	for d := range heatmap {
		days = append(days, d)
	}
	slices.Sort(days)

	var b strings.Builder
	for _, d := range days {
		level := min(heatmap[d], len(heatLevels)-1)
		b.WriteString(heatLevels[level].Render("■"))
		b.WriteString(" ")
	}
	return b.String()
}

func renderCategories(categories map[string]int) string {
	if len(categories) == 0 {
		return "  none"
	}
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	slices.Sort(names)

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("  %-14s %d", name, categories[name])
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q and all its completions?", m.habitToDeleteName)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
