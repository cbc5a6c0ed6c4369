package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/store"
	"github.com/julianstephens/habitual/internal/tui/components/goals"
	"github.com/julianstephens/habitual/internal/tui/components/habitlist"
	"github.com/julianstephens/habitual/internal/validation"
)

type SessionState int

const (
	StateGoals SessionState = iota
	StateHabits
	StateAddIdentity
	StateAddHabit
	StateEditHabit
	StateConfirmDelete
)

const tabCount = 2

type IdentityFormModel struct {
	Label string
}

type HabitFormModel struct {
	IdentityID string
	Text       string
	Target     string
	Period     models.Period
	Emoji      string
}

type Model struct {
	store               storage.Provider
	collection          *store.Collection
	state               SessionState
	keys                KeyMap
	help                help.Model
	goalsModel          goals.Model
	habitList           habitlist.Model
	form                *huh.Form
	identityForm        *IdentityFormModel
	habitForm           *HabitFormModel
	editingHabitID      string
	habitToDeleteID     string
	viewMode            models.ViewMode
	quitting            bool
	width               int
	height              int
	validationWarning   string
	validationConflicts []validation.Conflict
}

func NewModel(provider storage.Provider, collection *store.Collection) Model {
	now := time.Now()

	gm := goals.New(0, 0)
	gm.SetData(collection.Identities(), collection.Habits(), now, models.ViewWeek)

	items := habitlist.BuildItems(collection.Identities(), collection.Habits(), now, models.ViewWeek)
	hl := habitlist.New(items, 0, 0)

	m := Model{
		store:      provider,
		collection: collection,
		state:      StateGoals,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		goalsModel: gm,
		habitList:  hl,
		viewMode:   models.ViewWeek,
	}

	m.updateValidationStatus()

	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateGoals:
		keys = append(keys, m.keys.ViewMode, m.keys.Identity)
	case StateHabits:
		keys = append(keys, m.keys.Log, m.keys.Add)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.ViewMode}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateGoals:
		actions = []key.Binding{m.keys.Identity}
	case StateHabits:
		actions = []key.Binding{m.keys.Log, m.keys.Unlog, m.keys.Add, m.keys.Edit, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// persist writes the collection back to storage. On failure the in-memory
// state keeps the change; the next successful save picks it up.
func (m *Model) persist() {
	if err := m.store.Save(m.collection); err != nil {
		m.validationWarning = fmt.Sprintf("⚠ Save failed: %v", err)
	}
}

// refresh rebuilds both tab components from the collection.
func (m *Model) refresh() {
	now := time.Now()
	m.goalsModel.SetData(m.collection.Identities(), m.collection.Habits(), now, m.viewMode)
	m.habitList.SetItems(habitlist.BuildItems(m.collection.Identities(), m.collection.Habits(), now, m.viewMode))
	m.updateValidationStatus()
}

// updateValidationStatus runs validation and updates the warning message
func (m *Model) updateValidationStatus() {
	result := validation.New().ValidateCollection(m.collection, time.Now())
	m.validationConflicts = result.Conflicts

	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}
