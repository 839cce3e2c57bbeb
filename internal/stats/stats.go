package stats

import (
	"time"

	"getitdone-backend/internal/models"
)

// DefaultStreakThreshold is the minimum number of focused minutes a UTC
// calendar day must accumulate to count toward the streak. Matches one
// default pomodoro length. Overridable via STREAK_MIN_MINUTES.
const DefaultStreakThreshold = 25.0

// All calendar arithmetic in this package uses UTC day boundaries
// (day = [00:00:00Z, 24:00:00Z)). Both bucket generation and session
// classification extract UTC fields, so a session can never land in a
// bucket keyed by a different convention.

// DayBucket is the aggregated focus time for one UTC calendar date.
type DayBucket struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	Day          string  `json:"day"`  // Sun..Sat
	TotalMinutes float64 `json:"totalMinutes"`
}

// Summary bundles all three aggregates computed from a single session
// snapshot, so totals, streak and the weekly series can never disagree.
type Summary struct {
	TotalMinutes float64
	Streak       int
	Last7Days    []DayBucket
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func dayLabel(t time.Time) string {
	return t.UTC().Weekday().String()[:3]
}

// utcDayStart truncates t to the start of its UTC calendar day.
func utcDayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekWindowStart returns the start of the 7-day window ending on now's
// UTC calendar day: 00:00:00Z six days before now.
func WeekWindowStart(now time.Time) time.Time {
	return utcDayStart(now).AddDate(0, 0, -6)
}

// minutesByDay folds sessions into per-UTC-date totals.
func minutesByDay(sessions []models.FocusSession) map[string]float64 {
	totals := make(map[string]float64, len(sessions))
	for _, s := range sessions {
		totals[dayKey(s.CreatedAt)] += s.DurationMinutes
	}
	return totals
}

// TotalMinutes sums the duration of every session, with no time window.
func TotalMinutes(sessions []models.FocusSession) float64 {
	var total float64
	for _, s := range sessions {
		total += s.DurationMinutes
	}
	return total
}

// WeeklySeries returns exactly 7 buckets, oldest first, covering the UTC
// calendar days [today-6 .. today] relative to now. Days without sessions
// get a zero bucket; sessions outside the window are ignored.
func WeeklySeries(sessions []models.FocusSession, now time.Time) []DayBucket {
	windowStart := WeekWindowStart(now)

	buckets := make([]DayBucket, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		d := windowStart.AddDate(0, 0, i)
		key := dayKey(d)
		buckets[i] = DayBucket{Date: key, Day: dayLabel(d)}
		index[key] = i
	}

	for _, s := range sessions {
		if i, ok := index[dayKey(s.CreatedAt)]; ok {
			buckets[i].TotalMinutes += s.DurationMinutes
		}
	}

	return buckets
}

// CurrentStreak counts consecutive successful UTC days ending today or, as
// a grace window, yesterday. A day is successful iff its summed minutes
// reach thresholdMinutes. A streak ending before yesterday has lapsed and
// reports 0.
func CurrentStreak(sessions []models.FocusSession, now time.Time, thresholdMinutes float64) int {
	totals := minutesByDay(sessions)
	if len(totals) == 0 {
		return 0
	}

	successful := func(day time.Time) bool {
		return totals[dayKey(day)] >= thresholdMinutes
	}

	today := utcDayStart(now)
	yesterday := today.AddDate(0, 0, -1)

	var start time.Time
	switch {
	case successful(today):
		start = today
	case successful(yesterday):
		start = yesterday
	default:
		return 0
	}

	// The walk is bounded by the number of distinct days on record.
	streak := 1
	day := start
	for i := 1; i < len(totals); i++ {
		day = day.AddDate(0, 0, -1)
		if !successful(day) {
			break
		}
		streak++
	}
	return streak
}

// Summarize computes all three aggregates from one snapshot.
func Summarize(sessions []models.FocusSession, now time.Time, thresholdMinutes float64) Summary {
	return Summary{
		TotalMinutes: TotalMinutes(sessions),
		Streak:       CurrentStreak(sessions, now, thresholdMinutes),
		Last7Days:    WeeklySeries(sessions, now),
	}
}
