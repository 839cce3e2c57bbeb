package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"getitdone-backend/internal/models"
)

// now is a fixed Wednesday, mid-afternoon UTC.
var now = time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)

func session(createdAt time.Time, minutes float64) models.FocusSession {
	return models.FocusSession{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		TaskName:        models.DefaultTaskName,
		DurationMinutes: minutes,
		CreatedAt:       createdAt,
	}
}

func daysAgo(n int) time.Time {
	return now.AddDate(0, 0, -n)
}

// ─── TotalMinutes ───

func TestTotalMinutes(t *testing.T) {
	tests := []struct {
		name     string
		sessions []models.FocusSession
		expected float64
	}{
		{"empty input", nil, 0},
		{"single session", []models.FocusSession{session(now, 25)}, 25},
		{"sums across days", []models.FocusSession{
			session(daysAgo(0), 30),
			session(daysAgo(1), 25.5),
			session(daysAgo(10), 44.5),
		}, 100},
		{"fractional minutes preserved", []models.FocusSession{
			session(now, 0.1),
			session(now, 0.2),
		}, 0.30000000000000004},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TotalMinutes(tc.sessions)
			if got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestTotalMinutes_IgnoresWindow(t *testing.T) {
	// 1500 minutes spread across all time, including far outside any
	// weekly window.
	sessions := []models.FocusSession{
		session(daysAgo(0), 500),
		session(daysAgo(100), 500),
		session(daysAgo(365), 500),
	}

	if got := TotalMinutes(sessions); got != 1500 {
		t.Errorf("Expected 1500, got %v", got)
	}
	if hours := int(TotalMinutes(sessions)) / 60; hours != 25 {
		t.Errorf("Expected floor(1500/60) == 25 hours, got %d", hours)
	}
}

// ─── WeeklySeries ───

func TestWeeklySeries_AlwaysSevenBuckets(t *testing.T) {
	tests := []struct {
		name     string
		sessions []models.FocusSession
	}{
		{"no sessions", nil},
		{"one session", []models.FocusSession{session(now, 25)}},
		{"only out-of-window sessions", []models.FocusSession{session(daysAgo(10), 120)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buckets := WeeklySeries(tc.sessions, now)
			if len(buckets) != 7 {
				t.Fatalf("Expected 7 buckets, got %d", len(buckets))
			}
		})
	}
}

func TestWeeklySeries_BucketDatesAndOrder(t *testing.T) {
	buckets := WeeklySeries(nil, now)

	// Oldest first: [today-6 .. today] in UTC.
	for i, b := range buckets {
		want := now.UTC().AddDate(0, 0, i-6).Format("2006-01-02")
		if b.Date != want {
			t.Errorf("bucket %d: expected date %s, got %s", i, want, b.Date)
		}
		if b.TotalMinutes != 0 {
			t.Errorf("bucket %d: expected 0 minutes, got %v", i, b.TotalMinutes)
		}
	}

	// now is a Wednesday, so the series runs Thu..Wed.
	wantDays := []string{"Thu", "Fri", "Sat", "Sun", "Mon", "Tue", "Wed"}
	for i, b := range buckets {
		if b.Day != wantDays[i] {
			t.Errorf("bucket %d: expected day %s, got %s", i, wantDays[i], b.Day)
		}
	}
}

func TestWeeklySeries_SumsPerDay(t *testing.T) {
	sessions := []models.FocusSession{
		session(daysAgo(0), 30),
		session(daysAgo(0), 15.5),
		session(daysAgo(3), 25),
		session(daysAgo(6), 10),
		session(daysAgo(7), 999), // just outside the window
	}

	buckets := WeeklySeries(sessions, now)

	if got := buckets[6].TotalMinutes; got != 45.5 {
		t.Errorf("today: expected 45.5, got %v", got)
	}
	if got := buckets[3].TotalMinutes; got != 25 {
		t.Errorf("today-3: expected 25, got %v", got)
	}
	if got := buckets[0].TotalMinutes; got != 10 {
		t.Errorf("today-6: expected 10, got %v", got)
	}

	var total float64
	for _, b := range buckets {
		total += b.TotalMinutes
	}
	if total != 80.5 {
		t.Errorf("window total: expected 80.5, got %v", total)
	}
}

func TestWeeklySeries_UTCDayBoundaries(t *testing.T) {
	dayStart := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		bucket    int // index into the 7-day series, -1 for excluded
	}{
		{"first instant of today", dayStart, 6},
		{"last instant of yesterday", dayStart.Add(-time.Nanosecond), 5},
		{"first instant of window", dayStart.AddDate(0, 0, -6), 0},
		{"last instant before window", dayStart.AddDate(0, 0, -6).Add(-time.Nanosecond), -1},
		{"non-UTC timestamp classified by its UTC date", dayStart.Add(-time.Hour).In(time.FixedZone("UTC+7", 7*3600)), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buckets := WeeklySeries([]models.FocusSession{session(tc.createdAt, 10)}, now)
			for i, b := range buckets {
				want := 0.0
				if i == tc.bucket {
					want = 10
				}
				if b.TotalMinutes != want {
					t.Errorf("bucket %d: expected %v, got %v", i, want, b.TotalMinutes)
				}
			}
		})
	}
}

// ─── CurrentStreak ───

func TestCurrentStreak_Threshold(t *testing.T) {
	tests := []struct {
		name     string
		minutes  []float64 // all on today
		expected int
	}{
		{"just under threshold", []float64{24.9}, 0},
		{"exactly at threshold", []float64{25.0}, 1},
		{"sums across sessions to reach threshold", []float64{10, 10, 5}, 1},
		{"sums across sessions but falls short", []float64{10, 10, 4.9}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sessions []models.FocusSession
			for _, m := range tc.minutes {
				sessions = append(sessions, session(now, m))
			}
			if got := CurrentStreak(sessions, now, DefaultStreakThreshold); got != tc.expected {
				t.Errorf("Expected streak %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestCurrentStreak_Walks(t *testing.T) {
	tests := []struct {
		name     string
		days     map[int]float64 // daysAgo -> minutes
		expected int
	}{
		{"no sessions", nil, 0},
		{"today only", map[int]float64{0: 30}, 1},
		{"three consecutive days ending today", map[int]float64{0: 30, 1: 25, 2: 25}, 3},
		{"gap at yesterday stops the walk", map[int]float64{0: 30, 2: 30, 3: 30}, 1},
		{"grace: yesterday successful, today empty", map[int]float64{1: 25}, 1},
		{"grace chain counts backward from yesterday", map[int]float64{1: 25, 2: 25, 3: 40}, 3},
		{"lapsed: last success two days ago", map[int]float64{2: 60, 3: 60}, 0},
		{"below-threshold day breaks the chain", map[int]float64{0: 30, 1: 10, 2: 30}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sessions []models.FocusSession
			for ago, m := range tc.days {
				sessions = append(sessions, session(daysAgo(ago), m))
			}
			if got := CurrentStreak(sessions, now, DefaultStreakThreshold); got != tc.expected {
				t.Errorf("Expected streak %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestCurrentStreak_MixedDayTotals(t *testing.T) {
	// D: 30, D-1: 25, D-2: 10 -> successful days {D, D-1}, streak 2.
	sessions := []models.FocusSession{
		session(daysAgo(0), 30),
		session(daysAgo(1), 25),
		session(daysAgo(2), 10),
	}

	if got := CurrentStreak(sessions, now, DefaultStreakThreshold); got != 2 {
		t.Errorf("Expected streak 2, got %d", got)
	}
}

func TestCurrentStreak_CustomThreshold(t *testing.T) {
	sessions := []models.FocusSession{
		session(daysAgo(0), 5),
		session(daysAgo(1), 5),
	}

	if got := CurrentStreak(sessions, now, 1); got != 2 {
		t.Errorf("threshold 1: expected streak 2, got %d", got)
	}
	if got := CurrentStreak(sessions, now, DefaultStreakThreshold); got != 0 {
		t.Errorf("threshold 25: expected streak 0, got %d", got)
	}
}

func TestCurrentStreak_MonthBoundary(t *testing.T) {
	// Sept 1st with successful days on Aug 30 and 31: the backward walk
	// must cross the month boundary.
	firstOfMonth := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	sessions := []models.FocusSession{
		session(firstOfMonth, 25),
		session(time.Date(2026, 8, 31, 22, 0, 0, 0, time.UTC), 25),
		session(time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC), 25),
	}

	if got := CurrentStreak(sessions, firstOfMonth, DefaultStreakThreshold); got != 3 {
		t.Errorf("Expected streak 3 across month boundary, got %d", got)
	}
}

// ─── Summarize ───

func TestSummarize_ConsistentSnapshot(t *testing.T) {
	sessions := []models.FocusSession{
		session(daysAgo(0), 30),
		session(daysAgo(1), 25),
		session(daysAgo(10), 45), // outside weekly window, inside total
	}

	s := Summarize(sessions, now, DefaultStreakThreshold)

	if s.TotalMinutes != 100 {
		t.Errorf("Expected total 100, got %v", s.TotalMinutes)
	}
	if s.Streak != 2 {
		t.Errorf("Expected streak 2, got %d", s.Streak)
	}
	if len(s.Last7Days) != 7 {
		t.Fatalf("Expected 7 buckets, got %d", len(s.Last7Days))
	}
	if s.Last7Days[6].TotalMinutes != 30 || s.Last7Days[5].TotalMinutes != 25 {
		t.Errorf("Unexpected weekly buckets: %+v", s.Last7Days)
	}
}

func TestSummarize_EmptyInput(t *testing.T) {
	s := Summarize(nil, now, DefaultStreakThreshold)

	if s.TotalMinutes != 0 {
		t.Errorf("Expected total 0, got %v", s.TotalMinutes)
	}
	if s.Streak != 0 {
		t.Errorf("Expected streak 0, got %d", s.Streak)
	}
	if len(s.Last7Days) != 7 {
		t.Fatalf("Expected 7 buckets, got %d", len(s.Last7Days))
	}
	for i, b := range s.Last7Days {
		if b.TotalMinutes != 0 {
			t.Errorf("bucket %d: expected 0 minutes, got %v", i, b.TotalMinutes)
		}
	}
}

func TestAggregates_Idempotent(t *testing.T) {
	sessions := []models.FocusSession{
		session(daysAgo(0), 30.25),
		session(daysAgo(1), 25),
		session(daysAgo(4), 12.5),
	}

	first := Summarize(sessions, now, DefaultStreakThreshold)
	second := Summarize(sessions, now, DefaultStreakThreshold)

	if first.TotalMinutes != second.TotalMinutes || first.Streak != second.Streak {
		t.Errorf("Repeated computation diverged: %+v vs %+v", first, second)
	}
	for i := range first.Last7Days {
		if first.Last7Days[i] != second.Last7Days[i] {
			t.Errorf("bucket %d diverged: %+v vs %+v", i, first.Last7Days[i], second.Last7Days[i])
		}
	}
}
