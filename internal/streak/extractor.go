package streak

import (
	"sort"
	"time"
)

// WorkoutLog is the engine's read-only view of a single logged exercise.
type WorkoutLog struct {
	LogID          string
	UserID         string
	ExerciseID     string
	WorkoutInstant time.Time
}

// WorkoutDates is the output of ExtractWorkoutDates.
type WorkoutDates struct {
	TotalLogs         int
	ExercisesToday    int
	ExercisesThisWeek int
	// Dates holds distinct workout dates, most recent first.
	Dates []CalendarDate
}

// ExtractWorkoutDates reduces raw logs into distinct calendar dates in loc, sorted
// descending, and counts distinct exercises done today and this week (Sunday..Saturday
// around today, local time). The logs slice is not modified.
func ExtractWorkoutDates(logs []WorkoutLog, loc *time.Location, today time.Time) WorkoutDates {
	todayDate := Normalize(today, loc)
	weekStart := todayDate.AddDays(-int(todayDate.Weekday()))
	weekEnd := weekStart.AddDays(6)

	seenDates := make(map[CalendarDate]struct{}, len(logs))
	exercisesToday := make(map[string]struct{})
	exercisesThisWeek := make(map[string]struct{})

	dates := make([]CalendarDate, 0, len(logs))
	for _, l := range logs {
		date := Normalize(l.WorkoutInstant, loc)
		if _, ok := seenDates[date]; !ok {
			seenDates[date] = struct{}{}
			dates = append(dates, date)
		}

		if date == todayDate {
			exercisesToday[l.ExerciseID] = struct{}{}
		}
		if !date.Before(weekStart) && !date.After(weekEnd) {
			exercisesThisWeek[l.ExerciseID] = struct{}{}
		}
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})

	return WorkoutDates{
		TotalLogs:         len(logs),
		ExercisesToday:    len(exercisesToday),
		ExercisesThisWeek: len(exercisesThisWeek),
		Dates:             dates,
	}
}
