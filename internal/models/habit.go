package models

import "time"

// Period is the span a habit's target count applies to.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ViewMode selects which progress window to compute: the current
// Sunday-start week, or the current month to date.
type ViewMode string

const (
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// Habit is a recurring action tracked against exactly one identity.
type Habit struct {
	ID           string `json:"id"`
	IdentityID   string `json:"identityId"`
	Text         string `json:"text"`
	TargetCount  int    `json:"targetCount"`
	TargetPeriod Period `json:"targetPeriod"`
	Emoji        string `json:"emoji,omitempty"`
	Logs         []Log  `json:"logs"`
}

// Log records that a habit occurred on a specific calendar day. The
// stored timestamp keeps its time of day, but every comparison operates
// on the local calendar date.
type Log struct {
	Date time.Time `json:"date"`
}
