// Package engine wires scoring, adaptive progression and readiness
// aggregation behind one facade. Handlers call the engine; the engine
// owns transaction boundaries and cache invalidation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edusprint/quizengine/internal/logger"
	"github.com/edusprint/quizengine/internal/progression"
	"github.com/edusprint/quizengine/internal/question"
	"github.com/edusprint/quizengine/internal/readiness"
	"github.com/edusprint/quizengine/internal/store"
	"github.com/edusprint/quizengine/internal/strategy"
	"github.com/edusprint/quizengine/internal/topics"
)

// ErrConflict is returned when an attempt could not be applied after
// retrying past concurrent writers. Callers may resubmit.
var ErrConflict = errors.New("engine: concurrent update, retry")

// applyRetries bounds how often a conflicted transaction is rerun
// before giving up.
const applyRetries = 3

// Deps carries everything an Engine needs. Repos and the runner
// normally all come from one *store.Store; tests swap in fakes.
type Deps struct {
	Runner    store.TxRunner
	Progress  store.ProgressRepo
	Mastery   store.MasteryRepo
	Attempts  store.AttemptRepo
	Questions store.QuestionRepo
	Topics    store.TopicRepo

	Registry    *strategy.Registry
	Progression *progression.Engine

	// Cache may be nil; readiness is then recomputed on every call.
	Cache        readiness.Cache
	ReadinessCfg readiness.Config
	Log          *logger.Logger
	Now          func() time.Time
}

// Engine is the application facade over the quiz domain.
type Engine struct {
	d Deps
}

func New(d Deps) *Engine {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = logger.NewNop()
	}
	return &Engine{d: d}
}

// ScoreAnswer evaluates a raw submission against a question. It is
// pure: no state is read or written. A question whose stored correct
// answer normalizes to nothing is logged as a content-integrity
// problem and scored incorrect.
func (e *Engine) ScoreAnswer(q *question.Question, rawAnswer any) (question.AttemptResult, error) {
	strat, err := e.d.Registry.Get(q.Type)
	if err != nil {
		return question.AttemptResult{}, err
	}
	res := strat.CheckAnswer(q, rawAnswer)
	if len(res.NormalizedCorrect) == 0 {
		e.d.Log.Warn("question has no resolvable correct answer",
			"question_id", q.ID, "type", q.Type)
	}
	return res, nil
}

// ApplyOutcome is the state produced by applying one attempt.
type ApplyOutcome struct {
	Progress   *progression.TopicProgress
	Record     *progression.MasteryRecord
	Transition *progression.LevelTransition
}

// SubmitAnswer scores a raw submission and folds the result into the
// user's state in one call.
func (e *Engine) SubmitAnswer(ctx context.Context, userID uuid.UUID, q *question.Question, rawAnswer any) (question.AttemptResult, *ApplyOutcome, error) {
	res, err := e.ScoreAnswer(q, rawAnswer)
	if err != nil {
		return question.AttemptResult{}, nil, err
	}
	out, err := e.ApplyAttempt(ctx, userID, q, rawAnswer, res)
	if err != nil {
		return question.AttemptResult{}, nil, err
	}
	return res, out, nil
}

// ApplyAttempt folds one scored attempt into the user's topic progress
// and per-question review schedule, and appends the audit event, all
// in a single transaction. Conflicting writers are retried a bounded
// number of times; past that the caller gets ErrConflict.
func (e *Engine) ApplyAttempt(ctx context.Context, userID uuid.UUID, q *question.Question, rawAnswer any, res question.AttemptResult) (*ApplyOutcome, error) {
	now := e.d.Now().UTC()

	var out *ApplyOutcome
	var err error
	for attempt := 0; attempt < applyRetries; attempt++ {
		out, err = e.applyOnce(ctx, userID, q, rawAnswer, res, now)
		if err == nil {
			break
		}
		if !store.IsConflict(err) {
			return nil, err
		}
		e.d.Log.Debug("attempt apply conflicted, retrying",
			"user_id", userID, "question_id", q.ID, "try", attempt+1)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	}

	e.invalidateReadiness(ctx, userID, q.TopicID)
	return out, nil
}

func (e *Engine) applyOnce(ctx context.Context, userID uuid.UUID, q *question.Question, rawAnswer any, res question.AttemptResult, now time.Time) (*ApplyOutcome, error) {
	var out ApplyOutcome
	err := e.d.Runner.Transaction(ctx, func(tx *gorm.DB) error {
		prog, err := e.d.Progress.GetForUpdate(ctx, tx, userID, q.TopicID)
		if err != nil {
			return err
		}
		if prog == nil {
			prog = progression.NewTopicProgress(userID, q.TopicID)
		}
		out.Transition = e.d.Progression.ApplyToTopic(prog, res.Correct, now)
		if err := e.d.Progress.Save(ctx, tx, prog); err != nil {
			return err
		}
		out.Progress = prog

		rec, err := e.d.Mastery.GetForUpdate(ctx, tx, userID, q.ID)
		if err != nil {
			return err
		}
		if rec == nil {
			rec = progression.NewMasteryRecord(e.d.Progression.Config(), userID, q.ID, now)
		}
		e.d.Progression.ApplyToRecord(rec, res.Correct, now)
		if err := e.d.Mastery.Save(ctx, tx, rec); err != nil {
			return err
		}
		out.Record = rec

		return e.d.Attempts.Append(ctx, tx, &store.AttemptEvent{
			UserID:            userID,
			QuestionID:        q.ID,
			TopicID:           q.TopicID,
			QuestionType:      string(q.Type),
			Correct:           res.Correct,
			Score:             res.Score,
			RawAnswer:         fmt.Sprintf("%v", rawAnswer),
			NormalizedCorrect: strings.Join(res.NormalizedCorrect, ","),
			CreatedAt:         now,
		})
	})
	if err != nil {
		return nil, err
	}

	if out.Transition != nil {
		e.d.Log.Info("bloom level changed",
			"user_id", userID, "topic_id", q.TopicID,
			"from", out.Transition.From, "to", out.Transition.To,
			"trigger", out.Transition.Trigger)
	}
	return &out, nil
}

// ComputeReadiness aggregates the user's topic progress into a
// readiness snapshot. A non-nil scope restricts the aggregate to that
// topic's subtree. The cache, when configured, is consulted first and
// refreshed after a recompute; cache failures only cost a recompute.
func (e *Engine) ComputeReadiness(ctx context.Context, userID uuid.UUID, scope *uuid.UUID) (*readiness.Snapshot, error) {
	key := readiness.CacheKey(userID, scope)
	if e.d.Cache != nil {
		snap, ok, err := e.d.Cache.Get(ctx, key)
		if err != nil {
			e.d.Log.Debug("readiness cache read failed", "key", key, "error", err)
		} else if ok {
			return snap, nil
		}
	}

	var scopeIDs []uuid.UUID
	if scope != nil {
		h, err := e.loadHierarchy(ctx)
		if err != nil {
			return nil, err
		}
		scopeIDs = h.Descendants(*scope)
	}

	rows, err := e.d.Progress.ListByUser(ctx, nil, userID, scopeIDs)
	if err != nil {
		return nil, err
	}
	values := make([]progression.TopicProgress, 0, len(rows))
	for _, p := range rows {
		values = append(values, *p)
	}

	snap := readiness.Compute(values, e.d.ReadinessCfg, e.d.Now().UTC())
	if e.d.Cache != nil {
		if err := e.d.Cache.Set(ctx, key, &snap, e.d.ReadinessCfg.CacheTTL); err != nil {
			e.d.Log.Debug("readiness cache write failed", "key", key, "error", err)
		}
	}
	return &snap, nil
}

// DueQuestions returns the questions whose review schedule has come
// due for the user, soonest first. Records pointing at retired or
// deleted questions are skipped.
func (e *Engine) DueQuestions(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]*question.Question, error) {
	recs, err := e.d.Mastery.ListDue(ctx, nil, userID, now, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*question.Question, 0, len(recs))
	for _, rec := range recs {
		q, err := e.d.Questions.GetByID(ctx, nil, rec.QuestionID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !q.Active {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// invalidateReadiness drops the user's cached snapshots touched by a
// write in topicID: the whole-syllabus key, the topic's own key and
// every ancestor's key. Best effort.
func (e *Engine) invalidateReadiness(ctx context.Context, userID, topicID uuid.UUID) {
	if e.d.Cache == nil {
		return
	}
	keys := []string{readiness.CacheKey(userID, nil)}
	if h, err := e.loadHierarchy(ctx); err == nil {
		for id := topicID; ; {
			keys = append(keys, readiness.CacheKey(userID, &id))
			t, ok := h.Get(id)
			if !ok || t.ParentID == nil {
				break
			}
			id = *t.ParentID
		}
	} else {
		keys = append(keys, readiness.CacheKey(userID, &topicID))
	}
	for _, key := range keys {
		if err := e.d.Cache.Invalidate(ctx, key); err != nil {
			e.d.Log.Debug("readiness cache invalidate failed", "key", key, "error", err)
		}
	}
}

func (e *Engine) loadHierarchy(ctx context.Context) (*topics.Hierarchy, error) {
	all, err := e.d.Topics.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return topics.NewHierarchy(all)
}
