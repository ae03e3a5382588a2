package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// headerLines and footerLines reserve room around the day card.
const (
	headerLines = 4
	footerLines = 3
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = max(20, msg.Width-6)
		m.viewport.Height = max(5, msg.Height-headerLines-footerLines-len(m.notices)-4)
		m.ready = true
		m.refresh()
		return m, nil

	case planSavedMsg:
		m.busy = false
		m.err = nil
		m.planID = msg.plan.ID
		for i := range m.plan.Days {
			if i < len(msg.plan.Days) {
				m.plan.Days[i].ID = msg.plan.Days[i].ID
			}
		}
		m.status = fmt.Sprintf("Saved plan %s", msg.plan.ID)
		return m, nil

	case dayToggledMsg:
		m.busy = false
		m.err = nil
		if i := msg.day.DayNumber - 1; i >= 0 && i < len(m.plan.Days) {
			m.plan.Days[i].IsCompleted = msg.day.IsCompleted
			m.plan.Days[i].CompletedAt = msg.day.CompletedAt
		}
		if msg.day.IsCompleted {
			m.status = fmt.Sprintf("Day %d marked done", msg.day.DayNumber)
		} else {
			m.status = fmt.Sprintf("Day %d marked not done", msg.day.DayNumber)
		}
		m.refresh()
		return m, nil

	case errMsg:
		m.busy = false
		m.err = msg.err
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if m.index > 0 {
			m.index--
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if m.index < len(m.plan.Days)-1 {
			m.index++
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Save):
		switch {
		case m.store == nil:
			m.status = "Saving is not available"
		case m.planID != "":
			m.status = "Plan already saved"
		case m.busy:
		default:
			m.busy = true
			m.status = "Saving..."
			return m, m.saveCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		switch {
		case m.store == nil:
			m.status = "Completion tracking is not available"
		case m.planID == "":
			m.status = "Save the plan first (s)"
		case m.busy, len(m.plan.Days) == 0:
		default:
			m.busy = true
			return m, m.toggleCmd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) refresh() {
	m.viewport.SetContent(renderCard(m.currentDay(), m.viewport.Width-2))
	m.viewport.GotoTop()
}
