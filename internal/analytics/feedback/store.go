// internal/analytics/feedback/store.go

// Package feedback persists per-message helpfulness votes so resolution
// quality can be reviewed offline.
package feedback

import (
	"context"
	"errors"
	"fmt"

	"analytics-dashboard/internal/common/database"
	"analytics-dashboard/internal/models"
)

var ErrSaveFailed = errors.New("FEEDBACK_SAVE_FAILED")

const insertQuery = `
	INSERT INTO message_feedback (session_id, message_id, helpful, comment, created_at)
	VALUES ($1, $2, $3, $4, $5)`

const countQuery = `
	SELECT
		COUNT(*) FILTER (WHERE helpful),
		COUNT(*) FILTER (WHERE NOT helpful)
	FROM message_feedback
	WHERE session_id = $1`

// Store writes feedback rows through the shared postgres client.
type Store struct {
	db *database.PostgresClient
}

func NewStore(db *database.PostgresClient) *Store {
	return &Store{db: db}
}

// Save records one vote. Duplicate votes for the same message are allowed;
// the latest row wins at read time.
func (s *Store) Save(ctx context.Context, fb models.Feedback) error {
	_, err := s.db.Exec(ctx, insertQuery,
		fb.SessionID, fb.MessageID, fb.Helpful, fb.Comment, fb.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return nil
}

// Counts returns the helpful and unhelpful totals for a session.
func (s *Store) Counts(ctx context.Context, sessionID string) (helpful, unhelpful int, err error) {
	row := s.db.QueryRow(ctx, countQuery, sessionID)
	if err := row.Scan(&helpful, &unhelpful); err != nil {
		return 0, 0, fmt.Errorf("feedback counts: %w", err)
	}
	return helpful, unhelpful, nil
}
