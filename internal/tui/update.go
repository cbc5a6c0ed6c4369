package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/store"
	"github.com/julianstephens/habitual/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := msg.Height - 4
		m.goalsModel.SetSize(msg.Width, contentHeight)
		m.habitList.SetSize(msg.Width, contentHeight)
	}

	// Form states consume all input until completed or aborted.
	switch m.state {
	case StateAddIdentity:
		return m.updateAddIdentity(msg, cmds)
	case StateAddHabit, StateEditHabit:
		return m.updateHabitForm(msg, cmds)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ViewMode):
			if m.viewMode == models.ViewWeek {
				m.viewMode = models.ViewMonth
			} else {
				m.viewMode = models.ViewWeek
			}
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Identity):
			if m.state == StateGoals {
				m.identityForm = &IdentityFormModel{}
				m.form = NewIdentityForm(m.identityForm)
				m.state = StateAddIdentity
				return m, m.form.Init()
			}
		}

	case habitlist.AddHabitMsg:
		if len(m.collection.Identities()) == 0 {
			m.validationWarning = "⚠ Add an identity first (press 'i' on the Goals tab)"
			return m, nil
		}
		m.habitForm = &HabitFormModel{
			IdentityID: m.collection.Identities()[0].ID,
			Target:     "1",
			Period:     models.PeriodWeek,
		}
		m.form = NewHabitForm(m.habitForm, m.collection.Identities())
		m.editingHabitID = ""
		m.state = StateAddHabit
		return m, m.form.Init()

	case habitlist.EditHabitMsg:
		m.habitForm = &HabitFormModel{
			IdentityID: msg.Habit.IdentityID,
			Text:       msg.Habit.Text,
			Target:     strconv.Itoa(msg.Habit.TargetCount),
			Period:     msg.Habit.TargetPeriod,
			Emoji:      msg.Habit.Emoji,
		}
		m.form = NewHabitForm(m.habitForm, m.collection.Identities())
		m.editingHabitID = msg.Habit.ID
		m.state = StateEditHabit
		return m, m.form.Init()

	case habitlist.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case habitlist.LogHabitMsg:
		now := time.Now()
		m.collection.LogOccurrence(msg.ID, now, now)
		m.persist()
		m.refresh()
		return m, nil

	case habitlist.UnlogHabitMsg:
		if habit, ok := m.collection.Habit(msg.ID); ok {
			today := time.Now().Format(constants.DayFormat)
			for _, log := range habit.Logs {
				if log.Date.Format(constants.DayFormat) == today {
					m.collection.DeleteLog(msg.ID, log.Date)
					m.persist()
					m.refresh()
					break
				}
			}
		}
		return m, nil
	}

	if m.state == StateHabits {
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		cmds = append(cmds, cmd)
	} else if m.state == StateGoals {
		var cmd tea.Cmd
		m.goalsModel, cmd = m.goalsModel.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateAddIdentity(msg tea.Msg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateGoals
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		m.collection.AddIdentity(m.identityForm.Label)
		m.persist()
		m.refresh()
		m.state = StateGoals
	case huh.StateAborted:
		m.state = StateGoals
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateHabitForm(msg tea.Msg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		target, err := strconv.Atoi(m.habitForm.Target)
		if err != nil {
			target = 1
		}
		if m.editingHabitID == "" {
			m.collection.AddHabit(m.habitForm.IdentityID, m.habitForm.Text, target, m.habitForm.Period, m.habitForm.Emoji)
		} else {
			m.collection.EditHabit(m.editingHabitID, store.HabitUpdate{
				Text:         &m.habitForm.Text,
				TargetCount:  &target,
				TargetPeriod: &m.habitForm.Period,
				Emoji:        &m.habitForm.Emoji,
			})
		}
		m.persist()
		m.refresh()
		m.state = StateHabits
	case huh.StateAborted:
		m.state = StateHabits
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			m.collection.DeleteHabit(m.habitToDeleteID)
			m.habitToDeleteID = ""
			m.persist()
			m.refresh()
			m.state = StateHabits
		case "n", "N", "esc", "q":
			m.habitToDeleteID = ""
			m.state = StateHabits
		}
	}
	return m, nil
}
