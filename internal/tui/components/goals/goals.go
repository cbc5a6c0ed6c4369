package goals

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/progress"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	habitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("249")).
			PaddingLeft(2)
)

const barWidth = 20

type Model struct {
	viewport   viewport.Model
	identities []models.Identity
	habits     []models.Habit
	now        time.Time
	mode       models.ViewMode
	width      int
	height     int
}

func New(width, height int) Model {
	vp := viewport.New(width, height)
	return Model{viewport: vp, mode: models.ViewWeek, now: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.identities) == 0 {
		return "\n  No identity goals yet.\n  Press 'i' to add one."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetData(identities []models.Identity, habits []models.Habit, now time.Time, mode models.ViewMode) {
	m.identities = identities
	m.habits = habits
	m.now = now
	m.mode = mode
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder

	for _, identity := range m.identities {
		group := habitsFor(m.habits, identity.ID)
		stats := progress.IdentityStats(identity.ID, group, m.now, m.mode)
		percent := progress.Percent(stats)

		b.WriteString(fmt.Sprintf("%s\n%s %s\n",
			labelStyle.Render(identity.Label),
			barStyle.Render(renderBar(percent, barWidth)),
			statsStyle.Render(fmt.Sprintf("%d out of %d (%d%%)", stats.Count, stats.Target, percent)),
		))

		for _, h := range group {
			hs := progress.HabitStats(h, m.now, m.mode)
			line := fmt.Sprintf("%s  %d/%d", habitName(h), hs.Count, hs.Target)
			if streak := progress.Streak(h, m.now); streak > 0 {
				line += fmt.Sprintf("  🔥 %d", streak)
			}
			b.WriteString(habitStyle.Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
}

func habitsFor(habits []models.Habit, identityID string) []models.Habit {
	var out []models.Habit
	for _, h := range habits {
		if h.IdentityID == identityID {
			out = append(out, h)
		}
	}
	return out
}

func habitName(h models.Habit) string {
	if h.Emoji != "" {
		return h.Emoji + " " + h.Text
	}
	return h.Text
}

func renderBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
