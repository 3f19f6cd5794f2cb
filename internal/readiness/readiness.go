// Package readiness is the read side of the mastery engine: it rolls
// per-topic progress rows up into a single exam-readiness figure and a
// weak-topic list for dashboards. It has no mutation rights and is safe to
// compute on every request without locking.
package readiness

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/edusprint/quizengine/internal/progression"
)

// DefaultWeakThreshold is the mastery score below which a topic counts as
// weak.
const DefaultWeakThreshold = 60.0

// Config tunes the aggregation.
type Config struct {
	// WeakThreshold is the mastery score below which a topic is listed as
	// weak.
	WeakThreshold float64
	// CacheTTL bounds how long a cached snapshot may serve before being
	// recomputed. Zero disables caching.
	CacheTTL time.Duration
}

// DefaultConfig returns the standard aggregation policy.
func DefaultConfig() Config {
	return Config{
		WeakThreshold: DefaultWeakThreshold,
		CacheTTL:      5 * time.Minute,
	}
}

// TopicScore pairs a topic with its mastery score.
type TopicScore struct {
	TopicID      uuid.UUID `json:"topic_id"`
	MasteryScore float64   `json:"mastery_score"`
	BloomLevel   int       `json:"bloom_level"`
}

// Snapshot is the derived readiness view. It is never persisted; it is
// recomputed from the progress rows on demand (optionally through a cache).
type Snapshot struct {
	// AvgReadiness is the equal-weight mean mastery score across topics,
	// 0-100. Topics are weighted equally rather than by question count:
	// the syllabus treats each topic as one exam unit.
	AvgReadiness float64 `json:"avg_readiness"`
	// WeakTopics lists topics below the threshold, weakest first.
	WeakTopics []TopicScore `json:"weak_topics"`
	// CorrectnessRate is total-correct over total-attempted across all
	// attempts in scope, 0-1.
	CorrectnessRate float64 `json:"correctness_rate"`
	// TopicCount is the number of topics that entered the aggregate.
	TopicCount  int       `json:"topic_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Compute aggregates a set of per-topic progress rows. The caller scopes
// the rows (all topics, or one subtree of the hierarchy) before calling.
func Compute(rows []progression.TopicProgress, cfg Config, now time.Time) Snapshot {
	snap := Snapshot{GeneratedAt: now, TopicCount: len(rows)}
	if len(rows) == 0 {
		return snap
	}

	var scoreSum float64
	var answered, correct int
	for _, p := range rows {
		scoreSum += p.MasteryScore
		answered += p.TotalAnswered
		correct += p.TotalCorrect

		if p.MasteryScore < cfg.WeakThreshold {
			snap.WeakTopics = append(snap.WeakTopics, TopicScore{
				TopicID:      p.TopicID,
				MasteryScore: p.MasteryScore,
				BloomLevel:   p.BloomLevel,
			})
		}
	}

	snap.AvgReadiness = scoreSum / float64(len(rows))
	if answered > 0 {
		snap.CorrectnessRate = float64(correct) / float64(answered)
	}

	// Weakest first; topic ID breaks ties deterministically.
	sort.Slice(snap.WeakTopics, func(i, j int) bool {
		if snap.WeakTopics[i].MasteryScore != snap.WeakTopics[j].MasteryScore {
			return snap.WeakTopics[i].MasteryScore < snap.WeakTopics[j].MasteryScore
		}
		return snap.WeakTopics[i].TopicID.String() < snap.WeakTopics[j].TopicID.String()
	})

	return snap
}
