package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/2beens/gymstreak/internal/streak"

	"github.com/google/uuid"
)

// readLogsCSV reads workout logs from CSV with an "exercise_id,workout_instant" header.
// An optional "log_id" column is used when present, otherwise ids are generated.
// Instants are RFC 3339.
func readLogsCSV(r io.Reader) ([]streak.WorkoutLog, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []streak.WorkoutLog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	exerciseCol, ok := columns["exercise_id"]
	if !ok {
		return nil, errors.New("missing exercise_id column")
	}
	instantCol, ok := columns["workout_instant"]
	if !ok {
		return nil, errors.New("missing workout_instant column")
	}
	logIDCol, hasLogID := columns["log_id"]

	workoutLogs := make([]streak.WorkoutLog, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// csv.ParseError carries the line itself
			return nil, fmt.Errorf("read record: %w", err)
		}

		instant, err := time.Parse(time.RFC3339, strings.TrimSpace(record[instantCol]))
		if err != nil {
			line, _ := reader.FieldPos(instantCol)
			return nil, fmt.Errorf("line %d: invalid workout_instant [%s]", line, record[instantCol])
		}

		logID := ""
		if hasLogID {
			logID = strings.TrimSpace(record[logIDCol])
		}
		if logID == "" {
			logID = uuid.NewString()
		}

		workoutLogs = append(workoutLogs, streak.WorkoutLog{
			LogID:          logID,
			ExerciseID:     strings.TrimSpace(record[exerciseCol]),
			WorkoutInstant: instant.UTC(),
		})
	}

	return workoutLogs, nil
}
