package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateGoals:
		content = docStyle.Render(m.goalsModel.View())
	case StateHabits:
		content = docStyle.Render(m.habitList.View())
	case StateAddIdentity, StateAddHabit, StateEditHabit:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewTabs(), content}
	if m.validationWarning != "" {
		sections = append(sections, warningStyle.Render(m.validationWarning))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Goals", "Habits"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}

	mode := "week"
	if m.viewMode == models.ViewMonth {
		mode = "month to date"
	}
	tabs = append(tabs, inactiveTabStyle.Render("["+mode+"]"))

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete() string {
	habitName := "this habit"
	if habit, ok := m.collection.Habit(m.habitToDeleteID); ok {
		habitName = "\"" + habit.Text + "\""
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete "+habitName+" and all its logs?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
