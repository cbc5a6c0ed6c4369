package constants

import "time"

const (
	// WeekStart is the weekday the progress week begins on. The week
	// window math in internal/progress assumes Sunday; changing this
	// constant requires revisiting the weekday offset there.
	WeekStart = time.Sunday

	// DaysPerWeek is the fixed length of the week view window.
	DaysPerWeek = 7

	// MinTargetCount is the floor applied to habit target counts.
	MinTargetCount = 1

	// DayFormat is the YYYY-MM-DD layout used for date arguments and
	// calendar-day keys.
	DayFormat = "2006-01-02"
)
