package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/2beens/gymstreak/internal/streak"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFBF00"))
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Width(22)
	valueStyle = lipgloss.NewStyle().
			Bold(true)
	streakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50C878"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0115F"))
)

func renderJSON(w io.Writer, logStats streak.LogStats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(logStats)
}

func renderText(w io.Writer, logStats streak.LogStats, timezone string) error {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Workout stats") + " " + mutedStyle.Render("("+timezone+")") + "\n\n")

	row := func(key, value string) {
		sb.WriteString(keyStyle.Render(key) + value + "\n")
	}
	row("streak", streakStyle.Render(fmt.Sprintf("%d days", logStats.Streak)))
	row("rest days used", valueStyle.Render(fmt.Sprintf("%d/%d", logStats.BufferDaysUsed, logStats.RestDaysBuffer)))
	row("exercises today", valueStyle.Render(fmt.Sprintf("%d", logStats.ExercisesToday)))
	row("exercises this week", valueStyle.Render(fmt.Sprintf("%d", logStats.ExercisesThisWeek)))
	row("total logs", valueStyle.Render(fmt.Sprintf("%d", logStats.TotalLogs)))

	if len(logStats.DatesWithWorkouts) > 0 {
		recent := logStats.DatesWithWorkouts
		if len(recent) > 7 {
			recent = recent[:7]
		}
		dates := make([]string, 0, len(recent))
		for _, d := range recent {
			dates = append(dates, d.String())
		}
		row("recent workout days", mutedStyle.Render(strings.Join(dates, ", ")))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
