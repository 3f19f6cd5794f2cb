package bank

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/edusprint/quizengine/internal/strategy"
)

const sampleBank = `{
  "topics": [
    {"id": "11111111-1111-1111-1111-111111111111", "name_en": "Algebra", "name_hu": "Algebra"},
    {"id": "22222222-2222-2222-2222-222222222222", "parent_id": "11111111-1111-1111-1111-111111111111", "name_en": "Equations", "name_hu": "Egyenletek"}
  ],
  "questions": [
    {
      "topic_id": "22222222-2222-2222-2222-222222222222",
      "type": "single_choice",
      "bloom_level": 2,
      "prompt_en": "Which value solves x+2=5?",
      "prompt_hu": "Melyik érték oldja meg az x+2=5 egyenletet?",
      "correct_answer": "3",
      "options_en": ["2", "3", "5"],
      "options_hu": ["2", "3", "5"]
    },
    {
      "topic_id": "22222222-2222-2222-2222-222222222222",
      "type": "true_false",
      "bloom_level": 1,
      "prompt_en": "Zero is even.",
      "prompt_hu": "A nulla páros.",
      "content": {"statement": {"en": "Zero is even.", "hu": "A nulla páros."}},
      "correct_answer": "igaz"
    }
  ]
}`

func TestParseAssignsDefaults(t *testing.T) {
	b, err := Parse([]byte(sampleBank))
	require.NoError(t, err)
	require.Len(t, b.Topics, 2)
	require.Len(t, b.Questions, 2)
	require.NotEqual(t, uuid.Nil, b.Questions[0].ID)
	require.True(t, b.Questions[0].Active)
	require.Equal(t, []string{"2", "3", "5"}, b.Questions[0].Options.EN)
}

func TestValidateCleanBank(t *testing.T) {
	b, err := Parse([]byte(sampleBank))
	require.NoError(t, err)

	problems, err := b.Validate(strategy.NewDefaultRegistry())
	require.NoError(t, err)
	require.Empty(t, problems)
}

func TestValidateFlagsUnknownTopicAndBadQuestion(t *testing.T) {
	b, err := Parse([]byte(sampleBank))
	require.NoError(t, err)

	b.Questions[0].TopicID = uuid.New()
	b.Questions[1].CorrectAnswer = ""

	problems, err := b.Validate(strategy.NewDefaultRegistry())
	require.NoError(t, err)
	require.Len(t, problems, 2)

	fields := []string{problems[0].Issue.Field, problems[1].Issue.Field}
	require.Contains(t, fields, "topic_id")
	require.Contains(t, fields, "correct_answer")
}

func TestValidateRejectsBrokenTree(t *testing.T) {
	b, err := Parse([]byte(sampleBank))
	require.NoError(t, err)

	dangling := uuid.New()
	b.Topics[0].ParentID = &dangling

	_, err = b.Validate(strategy.NewDefaultRegistry())
	require.Error(t, err)
}

func TestParseRejectsMissingTopicID(t *testing.T) {
	_, err := Parse([]byte(`{"questions": [{"type": "short_answer", "correct_answer": "4"}]}`))
	require.Error(t, err)
}
