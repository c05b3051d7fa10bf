package service

import (
	"time"

	"quiz-prep/internal/util"
)

// CalculateStudyStreak counts consecutive UTC calendar days with a study session,
// walking back from today. dates must be ordered most recent first. A streak may
// begin yesterday when the user has not studied yet today; the first gap ends it.
func CalculateStudyStreak(dates []time.Time, today time.Time) int {
	expected := util.StartOfDayUTC(today)
	yesterday := expected.AddDate(0, 0, -1)

	streak := 0
	var last time.Time
	for _, d := range dates {
		day := util.StartOfDayUTC(d)
		if streak > 0 && day.Equal(last) {
			continue
		}
		switch {
		case day.Equal(expected):
		case streak == 0 && day.Equal(yesterday):
		default:
			return streak
		}
		streak++
		last = day
		expected = day.AddDate(0, 0, -1)
	}
	return streak
}
