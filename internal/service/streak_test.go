package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateStudyStreak(t *testing.T) {
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{name: "no sessions", dates: nil, want: 0},
		{name: "today only", dates: []time.Time{day(0)}, want: 1},
		{name: "three consecutive days", dates: []time.Time{day(0), day(-1), day(-2)}, want: 3},
		{name: "gap after today", dates: []time.Time{day(0), day(-2)}, want: 1},
		{name: "starts yesterday", dates: []time.Time{day(-1), day(-2), day(-3)}, want: 3},
		{name: "last session two days ago", dates: []time.Time{day(-2), day(-3)}, want: 0},
		{name: "run beyond gap is ignored", dates: []time.Time{day(0), day(-1), day(-3), day(-4), day(-5)}, want: 2},
		{name: "duplicate days", dates: []time.Time{day(0), day(0), day(-1)}, want: 2},
		{name: "future session", dates: []time.Time{day(1), day(0)}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateStudyStreak(tt.dates, today))
		})
	}
}

func TestCalculateStudyStreak_UsesUTCCalendarDay(t *testing.T) {
	// 23:30 on March 9 in UTC-5 is March 10 in UTC.
	est := time.FixedZone("EST", -5*60*60)
	session := time.Date(2026, 3, 9, 23, 30, 0, 0, est)
	today := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, CalculateStudyStreak([]time.Time{session}, today))
}
