package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edusprint/quizengine/internal/topics"
)

// TopicRepo reads and writes the course topic tree.
type TopicRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, ts []topics.Topic) error
	// ListAll returns every topic; callers build a topics.Hierarchy
	// from the result.
	ListAll(ctx context.Context, tx *gorm.DB) ([]topics.Topic, error)
}

type topicRepo struct {
	s *Store
}

func newTopicRepo(s *Store) TopicRepo {
	return &topicRepo{s: s}
}

func (r *topicRepo) Upsert(ctx context.Context, tx *gorm.DB, ts []topics.Topic) error {
	if len(ts) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]Topic, 0, len(ts))
	for _, t := range ts {
		rows = append(rows, Topic{
			ID:        t.ID,
			ParentID:  t.ParentID,
			NameEN:    t.Name.EN,
			NameHU:    t.Name.HU,
			UpdatedAt: now,
		})
	}
	return r.s.handle(ctx, tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"parent_id", "name_en", "name_hu", "updated_at"}),
	}).Create(&rows).Error
}

func (r *topicRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]topics.Topic, error) {
	var rows []Topic
	if err := r.s.handle(ctx, tx).Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]topics.Topic, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}
