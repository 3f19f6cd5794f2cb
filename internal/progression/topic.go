package progression

import (
	"time"

	"github.com/google/uuid"

	"github.com/edusprint/quizengine/internal/question"
)

// TopicProgress is the adaptive state for one (user, topic) pair. It is
// created lazily on the first attempt in a topic and mutated on every
// attempt after that; no other code path changes it.
type TopicProgress struct {
	UserID        uuid.UUID
	TopicID       uuid.UUID
	BloomLevel    int
	MasteryScore  float64
	StreakCorrect int
	StreakWrong   int
	TotalAnswered int
	TotalCorrect  int
	LastStudiedAt time.Time
}

// NewTopicProgress returns the initial state for a first attempt: bloom
// level 1, zero mastery, empty streaks.
func NewTopicProgress(userID, topicID uuid.UUID) *TopicProgress {
	return &TopicProgress{
		UserID:     userID,
		TopicID:    topicID,
		BloomLevel: question.MinBloom,
	}
}

// Accuracy returns the lifetime correctness ratio for the topic.
func (p *TopicProgress) Accuracy() float64 {
	if p.TotalAnswered == 0 {
		return 0
	}
	return float64(p.TotalCorrect) / float64(p.TotalAnswered)
}

// LevelTransition records a bloom level change for event logging and
// learner feedback.
type LevelTransition struct {
	TopicID uuid.UUID
	From    int
	To      int
	Trigger string // "streak-advance" or "streak-regress"
}

// ApplyToTopic transitions a topic's state by one attempt result. Returns
// a LevelTransition when the attempt moved the bloom level, nil otherwise.
//
// Correct answers push the mastery score toward 100 with a diminishing
// increment and extend the correct streak; a long enough streak advances
// the bloom level (capped at 6) and resets both streaks. Incorrect answers
// decay the score by a bounded step and extend the wrong streak; a long
// enough wrong streak drops the level (floored at 1) and resets both
// streaks. The regression rule is the only non-monotone bloom movement.
func (e *Engine) ApplyToTopic(p *TopicProgress, correct bool, now time.Time) *LevelTransition {
	p.TotalAnswered++
	p.LastStudiedAt = now

	if correct {
		p.TotalCorrect++
		p.StreakCorrect++
		p.StreakWrong = 0
		p.MasteryScore = clampScore(p.MasteryScore + (100-p.MasteryScore)*e.cfg.MasteryGain)

		threshold := e.cfg.advanceStreakFor(p.BloomLevel)
		if threshold > 0 && p.StreakCorrect >= threshold && p.BloomLevel < question.MaxBloom {
			from := p.BloomLevel
			p.BloomLevel++
			p.StreakCorrect = 0
			p.StreakWrong = 0
			return &LevelTransition{TopicID: p.TopicID, From: from, To: p.BloomLevel, Trigger: "streak-advance"}
		}
		return nil
	}

	p.StreakWrong++
	p.StreakCorrect = 0
	p.MasteryScore = clampScore(p.MasteryScore - e.cfg.MasteryPenalty)

	if p.StreakWrong >= e.cfg.RegressStreak && p.BloomLevel > question.MinBloom {
		from := p.BloomLevel
		p.BloomLevel--
		p.StreakCorrect = 0
		p.StreakWrong = 0
		return &LevelTransition{TopicID: p.TopicID, From: from, To: p.BloomLevel, Trigger: "streak-regress"}
	}
	return nil
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
