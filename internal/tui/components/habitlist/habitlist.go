package habitlist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/progress"
)

type AddHabitMsg struct{}

type EditHabitMsg struct {
	Habit models.Habit
}

type DeleteHabitMsg struct {
	ID string
}

type LogHabitMsg struct {
	ID string
}

type UnlogHabitMsg struct {
	ID string
}

type Item struct {
	Habit       models.Habit
	Identity    string
	Stats       progress.Stats
	Streak      int
	LoggedToday bool
}

func (i Item) Title() string {
	title := i.Habit.Text
	if i.Habit.Emoji != "" {
		title = i.Habit.Emoji + " " + title
	}
	if i.LoggedToday {
		title += " ✓"
	}
	return title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %d/%d this %s", i.Identity, i.Stats.Count, i.Stats.Target, i.Habit.TargetPeriod)
	if i.Streak > 0 {
		desc += fmt.Sprintf(" | 🔥 %d day streak", i.Streak)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Text }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Log    key.Binding
	Unlog  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Log: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m", "mark today"),
		),
		Unlog: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unmark today"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Log, keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Log, keys.Unlog, keys.Add, keys.Edit, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

// BuildItems derives list items for the given habits, resolving identity
// labels and the current window's progress.
func BuildItems(identities []models.Identity, habits []models.Habit, now time.Time, mode models.ViewMode) []Item {
	labels := make(map[string]string, len(identities))
	for _, identity := range identities {
		labels[identity.ID] = identity.Label
	}

	today := now.Format(constants.DayFormat)
	items := make([]Item, len(habits))
	for i, h := range habits {
		logged := false
		for _, log := range h.Logs {
			if log.Date.Format(constants.DayFormat) == today {
				logged = true
				break
			}
		}
		items[i] = Item{
			Habit:       h,
			Identity:    labels[h.IdentityID],
			Stats:       progress.HabitStats(h, now, mode),
			Streak:      progress.Streak(h, now),
			LoggedToday: logged,
		}
	}
	return items
}

func (m *Model) SetItems(items []Item) {
	m.list.SetItems(toListItems(items))
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
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
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditHabitMsg{Habit: i.Habit} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Log):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return LogHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Unlog):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return UnlogHabitMsg{ID: i.Habit.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
