package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/edusprint/quizengine/internal/progression"
	"github.com/edusprint/quizengine/internal/question"
	"github.com/edusprint/quizengine/internal/topics"
)

// Question is the persisted shape of an authored question. The flexible
// string-or-JSON ambiguity of correct_answer stays confined to the
// normalizer; the store only carries the raw value through.
type Question struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TopicID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Type          string    `gorm:"not null"`
	BloomLevel    int       `gorm:"not null;default:1"`
	PromptEN      string
	PromptHU      string
	ExplanationEN string
	ExplanationHU string
	Content       datatypes.JSON
	CorrectAnswer string
	OptionsEN     datatypes.JSON
	OptionsHU     datatypes.JSON
	// No default tag: gorm drops zero-valued fields that carry one
	// from the INSERT, which would pin retired questions to active.
	Active    bool `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ToDomain converts a stored row into the scoring-side view.
func (q *Question) ToDomain() (*question.Question, error) {
	opts, err := decodeOptions(q.OptionsEN, q.OptionsHU)
	if err != nil {
		return nil, err
	}
	return &question.Question{
		ID:            q.ID,
		TopicID:       q.TopicID,
		Type:          question.TypeTag(q.Type),
		BloomLevel:    q.BloomLevel,
		Prompt:        question.Bilingual{EN: q.PromptEN, HU: q.PromptHU},
		Explanation:   question.Bilingual{EN: q.ExplanationEN, HU: q.ExplanationHU},
		Content:       json.RawMessage(q.Content),
		CorrectAnswer: q.CorrectAnswer,
		Options:       opts,
		Active:        q.Active,
	}, nil
}

// QuestionFromDomain converts a scoring-side question into its stored
// shape.
func QuestionFromDomain(q *question.Question) (*Question, error) {
	row := &Question{
		ID:            q.ID,
		TopicID:       q.TopicID,
		Type:          string(q.Type),
		BloomLevel:    q.BloomLevel,
		PromptEN:      q.Prompt.EN,
		PromptHU:      q.Prompt.HU,
		ExplanationEN: q.Explanation.EN,
		ExplanationHU: q.Explanation.HU,
		Content:       datatypes.JSON(q.Content),
		CorrectAnswer: q.CorrectAnswer,
		Active:        q.Active,
	}
	if q.Options != nil {
		en, err := json.Marshal(q.Options.EN)
		if err != nil {
			return nil, err
		}
		hu, err := json.Marshal(q.Options.HU)
		if err != nil {
			return nil, err
		}
		row.OptionsEN = datatypes.JSON(en)
		row.OptionsHU = datatypes.JSON(hu)
	}
	return row, nil
}

func decodeOptions(en, hu datatypes.JSON) (*question.OptionSet, error) {
	if len(en) == 0 && len(hu) == 0 {
		return nil, nil
	}
	opts := &question.OptionSet{}
	if len(en) > 0 {
		if err := json.Unmarshal(en, &opts.EN); err != nil {
			return nil, err
		}
	}
	if len(hu) > 0 {
		if err := json.Unmarshal(hu, &opts.HU); err != nil {
			return nil, err
		}
	}
	if opts.IsEmpty() {
		return nil, nil
	}
	return opts, nil
}

// Topic is one persisted node of the course topic tree.
type Topic struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	NameEN    string
	NameHU    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Topic) ToDomain() topics.Topic {
	return topics.Topic{
		ID:       t.ID,
		ParentID: t.ParentID,
		Name:     question.Bilingual{EN: t.NameEN, HU: t.NameHU},
	}
}

// UserTopicProgress is the persisted adaptive state per (user, topic).
// The pair is unique; all mutation goes through the engine's transaction.
type UserTopicProgress struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_topic"`
	TopicID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_topic"`
	BloomLevel    int       `gorm:"not null;default:1"`
	MasteryScore  float64   `gorm:"not null;default:0"`
	StreakCorrect int       `gorm:"not null;default:0"`
	StreakWrong   int       `gorm:"not null;default:0"`
	TotalAnswered int       `gorm:"not null;default:0"`
	TotalCorrect  int       `gorm:"not null;default:0"`
	LastStudiedAt time.Time
	UpdatedAt     time.Time
}

func (p *UserTopicProgress) ToDomain() *progression.TopicProgress {
	return &progression.TopicProgress{
		UserID:        p.UserID,
		TopicID:       p.TopicID,
		BloomLevel:    p.BloomLevel,
		MasteryScore:  p.MasteryScore,
		StreakCorrect: p.StreakCorrect,
		StreakWrong:   p.StreakWrong,
		TotalAnswered: p.TotalAnswered,
		TotalCorrect:  p.TotalCorrect,
		LastStudiedAt: p.LastStudiedAt,
	}
}

func (p *UserTopicProgress) applyDomain(d *progression.TopicProgress) {
	p.BloomLevel = d.BloomLevel
	p.MasteryScore = d.MasteryScore
	p.StreakCorrect = d.StreakCorrect
	p.StreakWrong = d.StreakWrong
	p.TotalAnswered = d.TotalAnswered
	p.TotalCorrect = d.TotalCorrect
	p.LastStudiedAt = d.LastStudiedAt
}

// MasteryRecord is the persisted spaced-repetition state per
// (user, question).
type MasteryRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_mastery_user_question"`
	QuestionID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_mastery_user_question"`
	Easiness     float64   `gorm:"not null"`
	IntervalDays int       `gorm:"not null;default:0"`
	Repetitions  int       `gorm:"not null;default:0"`
	NextReview   time.Time `gorm:"index"`
	LastReviewed time.Time
	UpdatedAt    time.Time
}

func (r *MasteryRecord) ToDomain() *progression.MasteryRecord {
	return &progression.MasteryRecord{
		UserID:       r.UserID,
		QuestionID:   r.QuestionID,
		Easiness:     r.Easiness,
		IntervalDays: r.IntervalDays,
		Repetitions:  r.Repetitions,
		NextReview:   r.NextReview,
		LastReviewed: r.LastReviewed,
	}
}

func (r *MasteryRecord) applyDomain(d *progression.MasteryRecord) {
	r.Easiness = d.Easiness
	r.IntervalDays = d.IntervalDays
	r.Repetitions = d.Repetitions
	r.NextReview = d.NextReview
	r.LastReviewed = d.LastReviewed
}

// AttemptEvent is the append-only audit record of one scored submission.
// It feeds analytics and the content-integrity signal; the engine never
// reads it back on the scoring path.
type AttemptEvent struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID `gorm:"type:uuid;index;not null"`
	QuestionID        uuid.UUID `gorm:"type:uuid;index;not null"`
	TopicID           uuid.UUID `gorm:"type:uuid;index;not null"`
	QuestionType      string
	Correct           bool
	Score             int
	RawAnswer         string
	NormalizedCorrect string
	CreatedAt         time.Time
}
