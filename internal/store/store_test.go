package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edusprint/quizengine/internal/logger"
	"github.com/edusprint/quizengine/internal/progression"
	"github.com/edusprint/quizengine/internal/question"
	"github.com/edusprint/quizengine/internal/topics"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared", logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestQuestionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	q := &question.Question{
		ID:            uuid.New(),
		TopicID:       uuid.New(),
		Type:          question.TypeMultipleChoice,
		BloomLevel:    2,
		Prompt:        question.Bilingual{EN: "Pick the primes.", HU: "Válaszd ki a prímeket."},
		Content:       json.RawMessage(`{}`),
		CorrectAnswer: `["A","C"]`,
		Options: &question.OptionSet{
			EN: []string{"2", "4", "5"},
			HU: []string{"2", "4", "5"},
		},
		Active: true,
	}
	require.NoError(t, s.Questions.Upsert(ctx, nil, []*question.Question{q}))

	got, err := s.Questions.GetByID(ctx, nil, q.ID)
	require.NoError(t, err)
	require.Equal(t, q.Type, got.Type)
	require.Equal(t, q.CorrectAnswer, got.CorrectAnswer)
	require.Equal(t, q.Options.EN, got.Options.EN)
	require.Equal(t, q.Prompt.HU, got.Prompt.HU)

	_, err = s.Questions.GetByID(ctx, nil, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestQuestionUpsertOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	q := &question.Question{
		ID:            uuid.New(),
		TopicID:       uuid.New(),
		Type:          question.TypeShortAnswer,
		BloomLevel:    1,
		Prompt:        question.Bilingual{EN: "2+2?"},
		CorrectAnswer: "4",
		Active:        true,
	}
	require.NoError(t, s.Questions.Upsert(ctx, nil, []*question.Question{q}))

	q.CorrectAnswer = `["4","four"]`
	require.NoError(t, s.Questions.Upsert(ctx, nil, []*question.Question{q}))

	got, err := s.Questions.GetByID(ctx, nil, q.ID)
	require.NoError(t, err)
	require.Equal(t, `["4","four"]`, got.CorrectAnswer)
}

func TestListByTopicSkipsInactive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	topicID := uuid.New()

	active := &question.Question{ID: uuid.New(), TopicID: topicID, Type: question.TypeShortAnswer, BloomLevel: 1, CorrectAnswer: "4", Active: true}
	retired := &question.Question{ID: uuid.New(), TopicID: topicID, Type: question.TypeShortAnswer, BloomLevel: 1, CorrectAnswer: "5", Active: false}
	require.NoError(t, s.Questions.Upsert(ctx, nil, []*question.Question{active, retired}))

	got, err := s.Questions.ListByTopic(ctx, nil, topicID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, active.ID, got[0].ID)

	// the retired flag must survive the INSERT, not just the filter
	stored, err := s.Questions.GetByID(ctx, nil, retired.ID)
	require.NoError(t, err)
	require.False(t, stored.Active)
}

func TestProgressUpsertOnPair(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	userID, topicID := uuid.New(), uuid.New()

	got, err := s.Progress.GetForUpdate(ctx, nil, userID, topicID)
	require.NoError(t, err)
	require.Nil(t, got)

	p := progression.NewTopicProgress(userID, topicID)
	p.MasteryScore = 15
	p.TotalAnswered = 1
	require.NoError(t, s.Progress.Save(ctx, nil, p))

	p.MasteryScore = 27.75
	p.TotalAnswered = 2
	require.NoError(t, s.Progress.Save(ctx, nil, p))

	got, err = s.Progress.GetForUpdate(ctx, nil, userID, topicID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.InDelta(t, 27.75, got.MasteryScore, 1e-9)
	require.Equal(t, 2, got.TotalAnswered)

	rows, err := s.Progress.ListByUser(ctx, nil, userID, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestProgressListByUserScope(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	userID := uuid.New()
	inScope, outOfScope := uuid.New(), uuid.New()

	require.NoError(t, s.Progress.Save(ctx, nil, progression.NewTopicProgress(userID, inScope)))
	require.NoError(t, s.Progress.Save(ctx, nil, progression.NewTopicProgress(userID, outOfScope)))
	require.NoError(t, s.Progress.Save(ctx, nil, progression.NewTopicProgress(uuid.New(), inScope)))

	rows, err := s.Progress.ListByUser(ctx, nil, userID, []uuid.UUID{inScope})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, inScope, rows[0].TopicID)
}

func TestMasteryListDueOrdering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	save := func(due time.Time) uuid.UUID {
		rec := progression.NewMasteryRecord(progression.DefaultConfig(), userID, uuid.New(), now.Add(-time.Hour))
		rec.NextReview = due
		require.NoError(t, s.Mastery.Save(ctx, nil, rec))
		return rec.QuestionID
	}

	later := save(now.Add(-time.Minute))
	earlier := save(now.Add(-time.Hour))
	save(now.Add(24 * time.Hour)) // not due

	due, err := s.Mastery.ListDue(ctx, nil, userID, now, 0)
	require.NoError(t, err)
	require.Len(t, due, 2)
	require.Equal(t, earlier, due[0].QuestionID)
	require.Equal(t, later, due[1].QuestionID)

	due, err = s.Mastery.ListDue(ctx, nil, userID, now, 1)
	require.NoError(t, err)
	require.Len(t, due, 1)
}

func TestAttemptAppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		ev := &AttemptEvent{
			UserID:       userID,
			QuestionID:   uuid.New(),
			TopicID:      uuid.New(),
			QuestionType: string(question.TypeTrueFalse),
			Correct:      i%2 == 0,
			RawAnswer:    "igaz",
			CreatedAt:    time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, s.Attempts.Append(ctx, nil, ev))
		require.NotEqual(t, uuid.Nil, ev.ID)
	}

	rows, err := s.Attempts.RecentByUser(ctx, nil, userID, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.True(t, !rows[0].CreatedAt.Before(rows[1].CreatedAt))
}

func TestTopicRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	root := topics.Topic{ID: uuid.New(), Name: question.Bilingual{EN: "Algebra", HU: "Algebra"}}
	child := topics.Topic{ID: uuid.New(), ParentID: &root.ID, Name: question.Bilingual{EN: "Equations", HU: "Egyenletek"}}
	require.NoError(t, s.Topics.Upsert(ctx, nil, []topics.Topic{root, child}))

	all, err := s.Topics.ListAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	h, err := topics.NewHierarchy(all)
	require.NoError(t, err)
	require.Len(t, h.Descendants(root.ID), 2)
}

func TestTransactionRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	userID, topicID := uuid.New(), uuid.New()

	sentinel := errors.New("boom")
	err := s.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.Progress.Save(ctx, tx, progression.NewTopicProgress(userID, topicID)); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	got, err := s.Progress.GetForUpdate(ctx, nil, userID, topicID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestIsConflict(t *testing.T) {
	require.False(t, IsConflict(nil))
	require.False(t, IsConflict(errors.New("constraint failed")))
	require.True(t, IsConflict(errors.New("ERROR: could not serialize access (SQLSTATE 40001)")))
	require.True(t, IsConflict(errors.New("deadlock detected (SQLSTATE 40P01)")))
	require.True(t, IsConflict(errors.New("database is locked")))
}
