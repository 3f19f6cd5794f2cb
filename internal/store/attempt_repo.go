package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttemptRepo appends to the attempt audit log.
type AttemptRepo interface {
	Append(ctx context.Context, tx *gorm.DB, ev *AttemptEvent) error
	// RecentByUser returns the user's latest attempts, newest first.
	RecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]AttemptEvent, error)
}

type attemptRepo struct {
	s *Store
}

func newAttemptRepo(s *Store) AttemptRepo {
	return &attemptRepo{s: s}
}

func (r *attemptRepo) Append(ctx context.Context, tx *gorm.DB, ev *AttemptEvent) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	return r.s.handle(ctx, tx).Create(ev).Error
}

func (r *attemptRepo) RecentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]AttemptEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []AttemptEvent
	err := r.s.handle(ctx, tx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
