package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edusprint/quizengine/internal/progression"
)

// ProgressRepo reads and writes the per-(user, topic) adaptive state.
type ProgressRepo interface {
	// GetForUpdate loads the row, locking it for the remainder of the
	// transaction on backends that support row locks. Returns nil when
	// the user has never answered in the topic.
	GetForUpdate(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID) (*progression.TopicProgress, error)
	// Save upserts on the (user, topic) pair.
	Save(ctx context.Context, tx *gorm.DB, p *progression.TopicProgress) error
	// ListByUser returns the user's progress rows, restricted to
	// topicIDs when non-empty.
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, topicIDs []uuid.UUID) ([]*progression.TopicProgress, error)
}

type progressRepo struct {
	s *Store
}

func newProgressRepo(s *Store) ProgressRepo {
	return &progressRepo{s: s}
}

func (r *progressRepo) GetForUpdate(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID) (*progression.TopicProgress, error) {
	q := r.s.handle(ctx, tx)
	if r.s.locks && tx != nil {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row UserTopicProgress
	err := q.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *progressRepo) Save(ctx context.Context, tx *gorm.DB, p *progression.TopicProgress) error {
	row := UserTopicProgress{
		ID:      uuid.New(),
		UserID:  p.UserID,
		TopicID: p.TopicID,
	}
	row.applyDomain(p)
	row.UpdatedAt = time.Now().UTC()

	return r.s.handle(ctx, tx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "topic_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"bloom_level", "mastery_score",
			"streak_correct", "streak_wrong",
			"total_answered", "total_correct",
			"last_studied_at", "updated_at",
		}),
	}).Create(&row).Error
}

func (r *progressRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, topicIDs []uuid.UUID) ([]*progression.TopicProgress, error) {
	q := r.s.handle(ctx, tx).Where("user_id = ?", userID)
	if len(topicIDs) > 0 {
		q = q.Where("topic_id IN ?", topicIDs)
	}

	var rows []UserTopicProgress
	if err := q.Order("topic_id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*progression.TopicProgress, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}
