package streak_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2beens/gymstreak/internal/streak"
)

var testToday = streak.NewCalendarDate(2024, 6, 12)

func daysAgo(days ...int) []streak.CalendarDate {
	dates := make([]streak.CalendarDate, 0, len(days))
	for _, d := range days {
		dates = append(dates, testToday.AddDays(-d))
	}
	return dates
}

func TestCalculateStreak(t *testing.T) {
	testCases := []struct {
		name           string
		dates          []streak.CalendarDate
		restDaysBuffer int
		want           streak.Streak
	}{
		{
			name:           "no dates",
			dates:          nil,
			restDaysBuffer: 3,
			want:           streak.Streak{},
		},
		{
			name:           "today and yesterday, no buffer",
			dates:          daysAgo(0, 1),
			restDaysBuffer: 0,
			want:           streak.Streak{Length: 2, BufferDaysUsed: 0},
		},
		{
			name:           "one missed day bridged by buffer",
			dates:          daysAgo(0, 2),
			restDaysBuffer: 1,
			want:           streak.Streak{Length: 3, BufferDaysUsed: 1},
		},
		{
			name:           "last log too old",
			dates:          daysAgo(3),
			restDaysBuffer: 1,
			want:           streak.Streak{},
		},
		{
			name:           "cumulative buffer stops the walk",
			dates:          daysAgo(0, 2, 5),
			restDaysBuffer: 2,
			want:           streak.Streak{Length: 3, BufferDaysUsed: 1},
		},
		{
			name:           "cumulative buffer large enough for both gaps",
			dates:          daysAgo(0, 2, 5),
			restDaysBuffer: 3,
			want:           streak.Streak{Length: 6, BufferDaysUsed: 3},
		},
		{
			name:           "only yesterday, no buffer",
			dates:          daysAgo(1),
			restDaysBuffer: 0,
			want:           streak.Streak{},
		},
		{
			name:           "only yesterday, buffer of one",
			dates:          daysAgo(1),
			restDaysBuffer: 1,
			want:           streak.Streak{Length: 2, BufferDaysUsed: 1},
		},
		{
			name:           "only today",
			dates:          daysAgo(0),
			restDaysBuffer: 0,
			want:           streak.Streak{Length: 1, BufferDaysUsed: 0},
		},
		{
			name:           "consecutive run then a gap",
			dates:          daysAgo(0, 1, 2, 3, 4, 6, 7),
			restDaysBuffer: 0,
			want:           streak.Streak{Length: 5, BufferDaysUsed: 0},
		},
		{
			name:           "gap to today consumes buffer first",
			dates:          daysAgo(1, 3, 4),
			restDaysBuffer: 2,
			want:           streak.Streak{Length: 5, BufferDaysUsed: 2},
		},
		{
			name:           "gap to today leaves no room for older gaps",
			dates:          daysAgo(2, 4),
			restDaysBuffer: 2,
			want:           streak.Streak{Length: 3, BufferDaysUsed: 2},
		},
		{
			name:           "future dates are ignored",
			dates:          []streak.CalendarDate{testToday.AddDays(2), testToday, testToday.AddDays(-1)},
			restDaysBuffer: 0,
			want:           streak.Streak{Length: 2, BufferDaysUsed: 0},
		},
		{
			name:           "only future dates",
			dates:          []streak.CalendarDate{testToday.AddDays(1)},
			restDaysBuffer: 5,
			want:           streak.Streak{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, streak.CalculateStreak(tc.dates, testToday, tc.restDaysBuffer))
		})
	}
}

func TestCalculateStreak_GapBreak(t *testing.T) {
	const restDaysBuffer = 2
	for gap := 0; gap <= 6; gap++ {
		s := streak.CalculateStreak(daysAgo(gap), testToday, restDaysBuffer)
		if gap <= restDaysBuffer {
			assert.Equal(t, gap+1, s.Length, "gap %d", gap)
			assert.Equal(t, gap, s.BufferDaysUsed, "gap %d", gap)
		} else {
			assert.Equal(t, 0, s.Length, "gap %d", gap)
			assert.Equal(t, 0, s.BufferDaysUsed, "gap %d", gap)
		}
	}
}

// every subset of the last 12 days, for buffers 0..4
func TestCalculateStreak_Invariants(t *testing.T) {
	const window = 12
	for restDaysBuffer := 0; restDaysBuffer <= 4; restDaysBuffer++ {
		for mask := 0; mask < 1<<window; mask++ {
			var dates []streak.CalendarDate
			for i := 0; i < window; i++ {
				if mask&(1<<i) != 0 {
					dates = append(dates, testToday.AddDays(-i))
				}
			}
			datesCopy := append([]streak.CalendarDate(nil), dates...)

			s := streak.CalculateStreak(dates, testToday, restDaysBuffer)

			if s.Length < 0 || s.BufferDaysUsed < 0 || s.BufferDaysUsed > restDaysBuffer {
				t.Fatalf("mask %b, buffer %d: invalid result %+v", mask, restDaysBuffer, s)
			}
			if len(dates) == 0 && s != (streak.Streak{}) {
				t.Fatalf("mask %b, buffer %d: expected empty streak, got %+v", mask, restDaysBuffer, s)
			}
			if s.Length > 0 {
				// the run covers the worked days plus the rest days it used
				worked := s.Length - s.BufferDaysUsed
				if worked < 1 {
					t.Fatalf("mask %b, buffer %d: run with no workout days %+v", mask, restDaysBuffer, s)
				}
			}
			if again := streak.CalculateStreak(dates, testToday, restDaysBuffer); again != s {
				t.Fatalf("mask %b, buffer %d: non deterministic, %+v != %+v", mask, restDaysBuffer, s, again)
			}
			assert.Equal(t, datesCopy, dates)
		}
	}
}
