package logs

import (
	"time"

	"github.com/2beens/gymstreak/internal/streak"
)

// WorkoutLog is a single logged exercise, as stored in the workout_log table.
type WorkoutLog struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ExerciseID     string    `json:"exerciseId"`
	MuscleGroup    string    `json:"muscleGroup"`
	WorkoutInstant time.Time `json:"workoutInstant"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (l WorkoutLog) ToEngine() streak.WorkoutLog {
	return streak.WorkoutLog{
		LogID:          l.ID,
		UserID:         l.UserID,
		ExerciseID:     l.ExerciseID,
		WorkoutInstant: l.WorkoutInstant,
	}
}

func ToEngineLogs(workoutLogs []WorkoutLog) []streak.WorkoutLog {
	engineLogs := make([]streak.WorkoutLog, 0, len(workoutLogs))
	for _, l := range workoutLogs {
		engineLogs = append(engineLogs, l.ToEngine())
	}
	return engineLogs
}
