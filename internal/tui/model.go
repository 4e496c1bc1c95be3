package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/habitcache"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/service"
	"github.com/julianstephens/habitual/internal/tui/components/habitlist"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHabits
	StateAnalytics
	StateAddHabit
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

// opTimeout bounds each store round trip started from the UI.
const opTimeout = 10 * time.Second

type HabitFormModel struct {
	Name      string
	Category  string
	Frequency string
	Interval  string
	Days      []int
}

type Model struct {
	svc    *service.Service
	cache  *habitcache.Cache
	userID string

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	today         habitlist.Model
	all           habitlist.Model
	analytics     *models.AnalyticsSnapshot
	form          *huh.Form
	habitForm     *HabitFormModel

	habitToDeleteID   string
	habitToDeleteName string

	status   string
	err      error
	quitting bool
	width    int
	height   int
}

type habitsLoadedMsg struct{ err error }

type analyticsLoadedMsg struct {
	snapshot models.AnalyticsSnapshot
	err      error
}

type toggledMsg struct {
	result models.ToggleResult
	err    error
}

// changedMsg reports a write that requires a reload.
type changedMsg struct {
	status string
	err    error
}

func NewModel(svc *service.Service, cache *habitcache.Cache, userID string) Model {
	m := Model{
		svc:    svc,
		cache:  cache,
		userID: userID,
		state:  StateToday,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		today:  habitlist.New("Today", true, 0, 0),
		all:    habitlist.New("Habits", false, 0, 0),
	}
	// Show the persisted list until the first fetch lands.
	m.setHabits(cache.Habits())
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Toggle, m.keys.Add)
	case StateHabits:
		keys = append(keys, m.keys.Toggle, m.keys.Add, m.keys.Delete)
	case StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return append(keys, m.keys.Refresh)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Toggle}

	var actions []key.Binding
	switch m.state {
	case StateToday:
		actions = []key.Binding{m.keys.Add}
	case StateHabits:
		actions = []key.Binding{m.keys.Add, m.keys.Pause, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshHabits(), m.loadAnalytics())
}

func (m *Model) setHabits(habits []models.HabitView) {
	m.today.SetHabits(habits)
	m.all.SetHabits(habits)
}

func (m Model) refreshHabits() tea.Cmd {
	cache := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return habitsLoadedMsg{err: cache.Refresh(ctx)}
	}
}

func (m Model) loadAnalytics() tea.Cmd {
	svc, userID := m.svc, m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		snap, err := svc.Analytics(ctx, userID)
		return analyticsLoadedMsg{snapshot: snap, err: err}
	}
}

func (m Model) toggle(id string) tea.Cmd {
	cache := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		res, err := cache.Toggle(ctx, id)
		return toggledMsg{result: res, err: err}
	}
}

func (m Model) pause(id string) tea.Cmd {
	svc, userID := m.svc, m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		h, err := svc.SetActive(ctx, userID, id, false)
		return changedMsg{status: "Paused " + h.Name, err: err}
	}
}

func (m Model) deleteHabit(id, name string) tea.Cmd {
	svc, userID := m.svc, m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		err := svc.DeleteHabit(ctx, userID, id)
		return changedMsg{status: "Deleted " + name, err: err}
	}
}

func (m Model) createHabit(in models.HabitInput) tea.Cmd {
	cache := m.cache
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		h, err := cache.Create(ctx, in)
		return changedMsg{status: "Added " + h.Name, err: err}
	}
}

func (m *Model) newHabitForm() *huh.Form {
	m.habitForm = &HabitFormModel{
		Category:  string(constants.CategoryOther),
		Frequency: string(constants.FrequencyDaily),
		Interval:  "1",
	}
	f := m.habitForm

	categories := make([]huh.Option[string], len(constants.Categories))
	for i, c := range constants.Categories {
		categories[i] = huh.NewOption(string(c), string(c))
	}

	weekdays := make([]huh.Option[int], 7)
	for d := range 7 {
		weekdays[d] = huh.NewOption(time.Weekday(d).String(), d)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(func(s string) error {
					if n := len(strings.TrimSpace(s)); n < 2 || n > 100 {
						return errNameLength
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(categories...).
				Value(&f.Category),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", string(constants.FrequencyDaily)),
					huh.NewOption("Weekly", string(constants.FrequencyWeekly)),
					huh.NewOption("Every N days", "interval"),
					huh.NewOption("Specific weekdays", "weekdays"),
				).
				Value(&f.Frequency),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Every how many days?").
				Value(&f.Interval).
				Validate(validInterval),
		).WithHideFunc(func() bool { return f.Frequency != "interval" }),
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("On which days?").
				Options(weekdays...).
				Value(&f.Days),
		).WithHideFunc(func() bool { return f.Frequency != "weekdays" }),
	)
}

// Input converts the form into a create payload.
func (f HabitFormModel) Input() models.HabitInput {
	in := models.HabitInput{
		Name:     strings.TrimSpace(f.Name),
		Category: f.Category,
	}
	switch f.Frequency {
	case "interval":
		n, _ := strconv.Atoi(strings.TrimSpace(f.Interval))
		in.FrequencyType = string(constants.FrequencyCustom)
		in.CustomIntervalType = string(constants.IntervalDays)
		in.CustomIntervalValue = n
	case "weekdays":
		in.FrequencyType = string(constants.FrequencyCustom)
		in.CustomSpecificDays = f.Days
	default:
		in.FrequencyType = f.Frequency
	}
	return in
}

func validInterval(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errInterval
	}
	return nil
}
