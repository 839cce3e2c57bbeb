package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTaskName is used when a session is recorded without a task label.
const DefaultTaskName = "Focus Session"

// FocusSession is one completed or interrupted focus interval. Rows are
// append-only: once created they are never updated or deleted.
// Wire names stay camelCase: the focus/statistics API predates this
// service and existing clients consume these fields.
type FocusSession struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	TaskName        string    `json:"taskName"`
	DurationMinutes float64   `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
}

type RecordSessionRequest struct {
	TaskName        string  `json:"taskName"`
	DurationMinutes float64 `json:"durationMinutes"`
}
