package progression

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MasteryRecord is the spaced-repetition state for one (user, question)
// pair, updated independently of the topic-level bloom state. NextReview
// drives smart-review selection: a question is eligible once NextReview is
// at or before now.
type MasteryRecord struct {
	UserID       uuid.UUID
	QuestionID   uuid.UUID
	Easiness     float64
	IntervalDays int
	Repetitions  int
	NextReview   time.Time
	LastReviewed time.Time
}

// NewMasteryRecord returns the initial scheduling state for a question the
// user has never attempted.
func NewMasteryRecord(cfg Config, userID, questionID uuid.UUID, now time.Time) *MasteryRecord {
	return &MasteryRecord{
		UserID:     userID,
		QuestionID: questionID,
		Easiness:   cfg.StartEasiness,
		NextReview: now,
	}
}

// IsDue reports whether the question is eligible for review.
func (r *MasteryRecord) IsDue(now time.Time) bool {
	return !now.Before(r.NextReview)
}

// SM-2 quality grades. The engine only observes a binary verdict, so
// correct maps to a confident recall and incorrect to a failed one.
const (
	qualityCorrect   = 5
	qualityIncorrect = 2
)

// ApplyToRecord updates the per-question schedule by one attempt result,
// SM-2 style. A correct answer increments repetitions, lengthens the
// interval (1 day, then 6, then growth by the easiness factor) and nudges
// easiness upward. An incorrect answer resets repetitions, shortens the
// interval to the review floor (not a decayed fraction of the prior
// interval) and nudges easiness downward, never below its floor.
func (e *Engine) ApplyToRecord(r *MasteryRecord, correct bool, now time.Time) {
	quality := qualityIncorrect
	if correct {
		quality = qualityCorrect
	}

	// Canonical SM-2 easiness update.
	q := float64(quality)
	r.Easiness += 0.1 - (5-q)*(0.08+(5-q)*0.02)
	if r.Easiness < e.cfg.MinEasiness {
		r.Easiness = e.cfg.MinEasiness
	}

	if correct {
		r.Repetitions++
		switch r.Repetitions {
		case 1:
			r.IntervalDays = e.cfg.FirstIntervalDays
		case 2:
			r.IntervalDays = e.cfg.SecondIntervalDays
		default:
			r.IntervalDays = int(math.Round(float64(r.IntervalDays) * r.Easiness))
		}
		if r.IntervalDays > e.cfg.MaxIntervalDays {
			r.IntervalDays = e.cfg.MaxIntervalDays
		}
		if r.IntervalDays < e.cfg.MinIntervalDays {
			r.IntervalDays = e.cfg.MinIntervalDays
		}
	} else {
		r.Repetitions = 0
		r.IntervalDays = e.cfg.MinIntervalDays
	}

	r.LastReviewed = now
	r.NextReview = now.AddDate(0, 0, r.IntervalDays)
}
