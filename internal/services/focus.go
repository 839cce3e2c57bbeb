package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"getitdone-backend/internal/models"
	"getitdone-backend/internal/repository"
)

// FocusService records completed (or interrupted) focus intervals. It is
// the only writer of the data the statistics engine reads.
type FocusService struct {
	sessionRepo *repository.FocusSessionRepo
	redis       *redis.Client
}

func NewFocusService(sessionRepo *repository.FocusSessionRepo, redisClient *redis.Client) *FocusService {
	return &FocusService{
		sessionRepo: sessionRepo,
		redis:       redisClient,
	}
}

// SessionView is a FocusSession with a display-friendly duration.
type SessionView struct {
	models.FocusSession
	DurationFormatted string `json:"durationFormatted"`
}

// Record validates and persists one focus interval. Zero or negative
// durations are rejected before any row is created.
func (s *FocusService) Record(ctx context.Context, userID uuid.UUID, req models.RecordSessionRequest) (*models.FocusSession, error) {
	taskName, err := normalizeSessionInput(req.TaskName, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	session := &models.FocusSession{
		UserID:          userID,
		TaskName:        taskName,
		DurationMinutes: req.DurationMinutes,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.publishRecorded(ctx, session)

	return session, nil
}

// List returns the user's sessions, newest first, with formatted durations.
func (s *FocusService) List(ctx context.Context, userID uuid.UUID) ([]SessionView, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]SessionView, len(sessions))
	for i, session := range sessions {
		views[i] = SessionView{
			FocusSession:      session,
			DurationFormatted: formatDuration(session.DurationMinutes),
		}
	}
	return views, nil
}

// publishRecorded notifies the user's other clients so open statistics
// views can refresh. Best effort: a pub/sub failure never fails the write.
func (s *FocusService) publishRecorded(ctx context.Context, session *models.FocusSession) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":    "session_recorded",
		"session": session,
	})
	if err != nil {
		return
	}

	channel := "stats_updates:" + session.UserID.String()
	if err := s.redis.Publish(ctx, channel, payload).Err(); err != nil {
		log.Printf("Failed to publish session event for user %s: %v", session.UserID, err)
	}
}

func normalizeSessionInput(taskName string, durationMinutes float64) (string, error) {
	if durationMinutes <= 0 {
		return "", &ValidationError{Fields: map[string]string{
			"durationMinutes": "Duration must be greater than 0",
		}}
	}

	taskName = strings.TrimSpace(taskName)
	if taskName == "" {
		taskName = models.DefaultTaskName
	}
	return taskName, nil
}

// formatDuration renders fractional minutes as HH:MM:SS.
func formatDuration(durationMinutes float64) string {
	totalSeconds := int(math.Round(durationMinutes * 60))

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
