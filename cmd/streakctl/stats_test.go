package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2beens/gymstreak/internal/streak"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLogsCSV = `exercise_id,workout_instant
squat,2024-06-12T07:30:00Z
bench,2024-06-12T07:50:00Z
squat,2024-06-10T18:00:00Z
row,2024-06-07T18:00:00Z
`

func executeCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStatsCmd_JSONFromStdin(t *testing.T) {
	out, err := executeCmd(t, testLogsCSV,
		"stats", "-", "--rest-days", "1", "--now", "2024-06-12T15:00:00Z", "--json",
	)
	require.NoError(t, err)

	var logStats streak.LogStats
	require.NoError(t, json.Unmarshal([]byte(out), &logStats))
	assert.Equal(t, 4, logStats.TotalLogs)
	assert.Equal(t, 2, logStats.ExercisesToday)
	assert.Equal(t, 3, logStats.Streak)
	assert.Equal(t, 1, logStats.BufferDaysUsed)
	assert.Equal(t, 1, logStats.RestDaysBuffer)
	assert.Equal(t, []streak.CalendarDate{
		streak.NewCalendarDate(2024, 6, 12),
		streak.NewCalendarDate(2024, 6, 10),
		streak.NewCalendarDate(2024, 6, 7),
	}, logStats.DatesWithWorkouts)
}

func TestStatsCmd_TextFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.csv")
	require.NoError(t, os.WriteFile(path, []byte(testLogsCSV), 0o600))

	out, err := executeCmd(t, "",
		"stats", path, "--tz", "Europe/Berlin", "--now", "2024-06-12T15:00:00Z",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Workout stats")
	assert.Contains(t, out, "Europe/Berlin")
	assert.Contains(t, out, "1 days")
	assert.Contains(t, out, "2024-06-12, 2024-06-10, 2024-06-07")
}

func TestStatsCmd_Errors(t *testing.T) {
	_, err := executeCmd(t, testLogsCSV, "stats", "--rest-days", "-1")
	require.Error(t, err)
	assert.True(t, streak.IsValidationError(err))

	_, err = executeCmd(t, testLogsCSV, "stats", "--tz", "Mars/Olympus")
	require.Error(t, err)
	assert.True(t, streak.IsConfigurationError(err))

	_, err = executeCmd(t, testLogsCSV, "stats", "--now", "tomorrow")
	assert.ErrorContains(t, err, "invalid --now [tomorrow]")

	_, err = executeCmd(t, "", "stats", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "open logs file")
}
