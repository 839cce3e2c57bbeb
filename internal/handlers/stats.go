package handlers

import (
	"math"
	"net/http"
	"time"

	"getitdone-backend/internal/middleware"
	"getitdone-backend/internal/repository"
	"getitdone-backend/internal/stats"
)

// StatsHandler fetches a session snapshot from the store and runs the
// statistics engine over it. Field names in the payloads follow the
// original public API, which existing clients already consume.
type StatsHandler struct {
	sessionRepo      *repository.FocusSessionRepo
	streakMinMinutes float64
}

func NewStatsHandler(sessionRepo *repository.FocusSessionRepo, streakMinMinutes float64) *StatsHandler {
	return &StatsHandler{sessionRepo: sessionRepo, streakMinMinutes: streakMinMinutes}
}

type totalResponse struct {
	TotalMinutes float64 `json:"totalMinutes"`
	TotalHours   int     `json:"totalHours"`
}

type weeklyEntry struct {
	Day   string  `json:"day"`
	Hours float64 `json:"hours"`
}

type streakResponse struct {
	Streak int `json:"streak"`
}

type combinedEntry struct {
	Day          string  `json:"day"`
	TotalMinutes float64 `json:"totalMinutes"`
}

type combinedResponse struct {
	TotalTimeAllTimeMinutes float64         `json:"totalTimeAllTimeMinutes"`
	CurrentStreak           int             `json:"currentStreak"`
	Last7Days               []combinedEntry `json:"last7Days"`
}

// Total reports all-time focus minutes plus whole hours.
func (h *StatsHandler) Total(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	totalMinutes, err := h.sessionRepo.TotalMinutes(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch total stats", r))
		return
	}

	writeJSON(w, http.StatusOK, totalResponse{
		TotalMinutes: totalMinutes,
		TotalHours:   int(totalMinutes) / 60,
	})
}

// Weekly reports the last 7 UTC days as hours, one decimal, oldest first.
func (h *StatsHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	now := time.Now()

	sessions, err := h.sessionRepo.ListByUserSince(r.Context(), userID, stats.WeekWindowStart(now))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch weekly stats", r))
		return
	}

	buckets := stats.WeeklySeries(sessions, now)
	entries := make([]weeklyEntry, len(buckets))
	for i, b := range buckets {
		// Full precision internally, rounded only here at the boundary.
		entries[i] = weeklyEntry{
			Day:   b.Day,
			Hours: math.Round(b.TotalMinutes/60*10) / 10,
		}
	}

	writeJSON(w, http.StatusOK, entries)
}

// Streak reports the current consecutive-day streak.
func (h *StatsHandler) Streak(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	sessions, err := h.sessionRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch streak", r))
		return
	}

	writeJSON(w, http.StatusOK, streakResponse{
		Streak: stats.CurrentStreak(sessions, time.Now(), h.streakMinMinutes),
	})
}

// Statistics bundles total, streak, and the weekly series from a single
// snapshot read so the three can never disagree under concurrent writes.
func (h *StatsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	sessions, err := h.sessionRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch statistics", r))
		return
	}

	summary := stats.Summarize(sessions, time.Now(), h.streakMinMinutes)

	last7 := make([]combinedEntry, len(summary.Last7Days))
	for i, b := range summary.Last7Days {
		last7[i] = combinedEntry{Day: b.Day, TotalMinutes: b.TotalMinutes}
	}

	writeJSON(w, http.StatusOK, combinedResponse{
		TotalTimeAllTimeMinutes: summary.TotalMinutes,
		CurrentStreak:           summary.Streak,
		Last7Days:               last7,
	})
}
