package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edusprint/quizengine/internal/question"
)

// ErrNotFound is returned by lookups for rows that do not exist.
var ErrNotFound = errors.New("store: not found")

// QuestionRepo reads and writes the authored question bank.
type QuestionRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, qs []*question.Question) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*question.Question, error)
	// ListByTopic returns the active questions of a topic.
	ListByTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*question.Question, error)
}

type questionRepo struct {
	s *Store
}

func newQuestionRepo(s *Store) QuestionRepo {
	return &questionRepo{s: s}
}

func (r *questionRepo) Upsert(ctx context.Context, tx *gorm.DB, qs []*question.Question) error {
	if len(qs) == 0 {
		return nil
	}
	rows := make([]*Question, 0, len(qs))
	for _, q := range qs {
		row, err := QuestionFromDomain(q)
		if err != nil {
			return fmt.Errorf("encode question %s: %w", q.ID, err)
		}
		rows = append(rows, row)
	}
	return r.s.handle(ctx, tx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&rows).Error
}

func (r *questionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*question.Question, error) {
	var row Question
	err := r.s.handle(ctx, tx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToDomain()
}

func (r *questionRepo) ListByTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*question.Question, error) {
	var rows []Question
	err := r.s.handle(ctx, tx).
		Where("topic_id = ? AND active = ?", topicID, true).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*question.Question, 0, len(rows))
	for i := range rows {
		q, err := rows[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("decode question %s: %w", rows[i].ID, err)
		}
		out = append(out, q)
	}
	return out, nil
}
