package streak

// Streak is the result of CalculateStreak.
type Streak struct {
	Length         int
	BufferDaysUsed int
}

// CalculateStreak walks the distinct workout dates (most recent first) backward from
// today and returns the length of the current run and the rest days it consumed.
//
// The rest-day buffer is cumulative: restDaysBuffer bounds the total number of rest
// days across the whole run, counting the days between the latest workout and today.
// A gap whose rest days would push the total over the buffer ends the run, so
// 0 <= BufferDaysUsed <= restDaysBuffer always holds.
//
// restDaysBuffer must be >= 0. Callers going through ComputeStats get a *ValidationError
// for a negative buffer before the walk runs.
//
// Dates after today are ignored. The input slice is not modified.
func CalculateStreak(sortedDatesDesc []CalendarDate, today CalendarDate, restDaysBuffer int) Streak {
	first := 0
	for first < len(sortedDatesDesc) && sortedDatesDesc[first].After(today) {
		first++
	}
	dates := sortedDatesDesc[first:]
	if len(dates) == 0 {
		return Streak{}
	}

	gapToday := DaysBetween(today, dates[0])
	if gapToday > restDaysBuffer {
		// broken by inactivity since the last logged day
		return Streak{}
	}

	cursor := dates[0]
	bufferUsed := gapToday
	for _, older := range dates[1:] {
		restDays := DaysBetween(cursor, older) - 1
		if restDays < 0 {
			// duplicate date
			continue
		}
		if bufferUsed+restDays > restDaysBuffer {
			break
		}
		bufferUsed += restDays
		cursor = older
	}

	return Streak{
		Length:         DaysBetween(today, cursor) + 1,
		BufferDaysUsed: bufferUsed,
	}
}
