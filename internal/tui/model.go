// Package tui provides the interactive plan builder: a configuration form
// followed by a day-by-day card viewer.
package tui

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/quickhire/internal/models"
)

const storeTimeout = 5 * time.Second

// PlanStore persists plans viewed in the TUI.
type PlanStore interface {
	Save(ctx context.Context, plan models.GeneratedPlan) (models.StudyPlan, error)
	SetDayCompleted(ctx context.Context, planID string, day int, done bool) (models.PlanDay, error)
}

type planSavedMsg struct{ plan models.StudyPlan }

type dayToggledMsg struct{ day models.PlanDay }

type errMsg struct{ err error }

type Model struct {
	plan    models.GeneratedPlan
	notices []string
	planID  string
	index   int

	store    PlanStore
	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	ready    bool

	width  int
	height int
	status string
	err    error
	busy   bool
}

// NewModel opens the viewer on the first day of plan. A nil store disables
// saving and completion tracking.
func NewModel(plan models.GeneratedPlan, notices []string, store PlanStore) Model {
	plan.Days = slices.Clone(plan.Days)
	m := Model{
		plan:     plan,
		notices:  notices,
		store:    store,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(80, 20),
	}
	m.viewport.SetContent(renderCard(m.currentDay(), 76))
	return m
}

// WithSavedPlan starts the viewer on an already persisted plan.
func (m Model) WithSavedPlan(id string) Model {
	m.planID = id
	return m
}

// SavedID is the ID of the persisted plan, empty until it is saved.
func (m Model) SavedID() string {
	return m.planID
}

// Err reports the last storage failure, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Index() int {
	return m.index
}

func (m Model) Plan() models.GeneratedPlan {
	return m.plan
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) currentDay() models.PlanDay {
	if len(m.plan.Days) == 0 {
		return models.PlanDay{}
	}
	return m.plan.Days[m.index]
}

func (m Model) saveCmd() tea.Cmd {
	store, plan := m.store, m.plan
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		saved, err := store.Save(ctx, plan)
		if err != nil {
			return errMsg{err}
		}
		return planSavedMsg{saved}
	}
}

func (m Model) toggleCmd() tea.Cmd {
	store, id, day := m.store, m.planID, m.currentDay()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		updated, err := store.SetDayCompleted(ctx, id, day.DayNumber, !day.IsCompleted)
		if err != nil {
			return errMsg{err}
		}
		return dayToggledMsg{updated}
	}
}

// Run shows plan in a full-screen viewer and returns the final model state.
func Run(plan models.GeneratedPlan, notices []string, store PlanStore, savedID string) (Model, error) {
	m := NewModel(plan, notices, store).WithSavedPlan(savedID)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return m, err
	}
	return final.(Model), nil
}
