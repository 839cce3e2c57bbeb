package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"getitdone-backend/internal/models"
)

// FocusSessionRepo is the sole writer of focus_sessions. Rows are
// append-only; there are no update or delete paths.
type FocusSessionRepo struct {
	pool *pgxpool.Pool
}

func NewFocusSessionRepo(pool *pgxpool.Pool) *FocusSessionRepo {
	return &FocusSessionRepo{pool: pool}
}

func (r *FocusSessionRepo) Create(ctx context.Context, s *models.FocusSession) error {
	query := `
		INSERT INTO focus_sessions (id, user_id, task_name, duration_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	s.ID = uuid.New()

	return r.pool.QueryRow(ctx, query, s.ID, s.UserID, s.TaskName, s.DurationMinutes).Scan(&s.CreatedAt)
}

// ListByUser returns the user's full session snapshot, newest first.
func (r *FocusSessionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.FocusSession, error) {
	query := `SELECT id, user_id, task_name, duration_minutes, created_at
		FROM focus_sessions WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.FocusSession, 0)
	for rows.Next() {
		var s models.FocusSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.TaskName, &s.DurationMinutes, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// ListByUserSince returns sessions created at or after the given instant.
func (r *FocusSessionRepo) ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.FocusSession, error) {
	query := `SELECT id, user_id, task_name, duration_minutes, created_at
		FROM focus_sessions WHERE user_id = $1 AND created_at >= $2 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.FocusSession, 0)
	for rows.Next() {
		var s models.FocusSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.TaskName, &s.DurationMinutes, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// TotalMinutes sums all of the user's focus time in SQL.
func (r *FocusSessionRepo) TotalMinutes(ctx context.Context, userID uuid.UUID) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(duration_minutes), 0) FROM focus_sessions WHERE user_id = $1", userID,
	).Scan(&total)
	return total, err
}
