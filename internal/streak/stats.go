package streak

import (
	"time"
)

// LogStats is the derived consistency summary for one user. It is never persisted.
type LogStats struct {
	TotalLogs         int            `json:"totalLogs"`
	ExercisesToday    int            `json:"exercisesToday"`
	ExercisesThisWeek int            `json:"exercisesThisWeek"`
	DatesWithWorkouts []CalendarDate `json:"datesWithWorkouts"`
	Streak            int            `json:"streak"`
	BufferDaysUsed    int            `json:"bufferDaysUsed"`
	RestDaysBuffer    int            `json:"restDaysBuffer"`
}

// ComputeStats runs the whole engine over one user's logs. It is a pure function of
// (logs, settings, now): no clock is read and no input is modified.
func ComputeStats(logs []WorkoutLog, settings Settings, now time.Time) (LogStats, error) {
	if err := settings.validate(); err != nil {
		return LogStats{}, err
	}

	loc := settings.Location()
	workoutDates := ExtractWorkoutDates(logs, loc, now)
	s := CalculateStreak(workoutDates.Dates, Normalize(now, loc), settings.RestDaysBuffer())

	return AssembleStats(workoutDates, s, settings.RestDaysBuffer()), nil
}

// AssembleStats merges extractor and calculator outputs into a LogStats value.
func AssembleStats(workoutDates WorkoutDates, s Streak, restDaysBuffer int) LogStats {
	dates := make([]CalendarDate, len(workoutDates.Dates))
	copy(dates, workoutDates.Dates)

	return LogStats{
		TotalLogs:         workoutDates.TotalLogs,
		ExercisesToday:    workoutDates.ExercisesToday,
		ExercisesThisWeek: workoutDates.ExercisesThisWeek,
		DatesWithWorkouts: dates,
		Streak:            s.Length,
		BufferDaysUsed:    s.BufferDaysUsed,
		RestDaysBuffer:    restDaysBuffer,
	}
}
