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

// MasteryRepo reads and writes the per-(user, question) review state.
type MasteryRepo interface {
	// GetForUpdate loads the row, locking it for the remainder of the
	// transaction on backends that support row locks. Returns nil when
	// the user has never answered the question.
	GetForUpdate(ctx context.Context, tx *gorm.DB, userID, questionID uuid.UUID) (*progression.MasteryRecord, error)
	// Save upserts on the (user, question) pair.
	Save(ctx context.Context, tx *gorm.DB, rec *progression.MasteryRecord) error
	// ListDue returns the user's records whose next review is at or
	// before now, soonest first. limit <= 0 means no limit.
	ListDue(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*progression.MasteryRecord, error)
}

type masteryRepo struct {
	s *Store
}

func newMasteryRepo(s *Store) MasteryRepo {
	return &masteryRepo{s: s}
}

func (r *masteryRepo) GetForUpdate(ctx context.Context, tx *gorm.DB, userID, questionID uuid.UUID) (*progression.MasteryRecord, error) {
	q := r.s.handle(ctx, tx)
	if r.s.locks && tx != nil {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row MasteryRecord
	err := q.Where("user_id = ? AND question_id = ?", userID, questionID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *masteryRepo) Save(ctx context.Context, tx *gorm.DB, rec *progression.MasteryRecord) error {
	row := MasteryRecord{
		ID:         uuid.New(),
		UserID:     rec.UserID,
		QuestionID: rec.QuestionID,
	}
	row.applyDomain(rec)
	row.UpdatedAt = time.Now().UTC()

	return r.s.handle(ctx, tx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"easiness", "interval_days", "repetitions",
			"next_review", "last_reviewed", "updated_at",
		}),
	}).Create(&row).Error
}

func (r *masteryRepo) ListDue(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*progression.MasteryRecord, error) {
	q := r.s.handle(ctx, tx).
		Where("user_id = ? AND next_review <= ?", userID, now).
		Order("next_review")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []MasteryRecord
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*progression.MasteryRecord, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}
