package strategy

import (
	"strings"

	"github.com/edusprint/quizengine/internal/answers"
	"github.com/edusprint/quizengine/internal/question"
)

// MultipleChoice scores multi-select questions. Both the submitted answer
// and the stored correct answer pass through the normalizer (JSON-encoded
// arrays, legacy CSV, and plain lists all work), and correctness is
// order-independent set equality through the bilingual position
// resolution. Every selected option must match; there is no partial
// credit.
type MultipleChoice struct{}

func (MultipleChoice) Tag() question.TypeTag { return question.TypeMultipleChoice }

func (MultipleChoice) AllowShuffle() bool { return true }

func (MultipleChoice) AnswerSchema() string {
	return `{"type": "array", "items": {"type": "string"}, "minItems": 1}`
}

func (s MultipleChoice) ValidateAuthoring(q *question.Question) []Issue {
	issues := validateCommon(q)
	issues = append(issues, validateOptionSet(q.Options, 3)...)

	// Every correct token must be drawn from the declared options.
	if q.CorrectAnswer != "" && !q.Options.IsEmpty() {
		m := answers.ValidateBilingual(q.CorrectAnswer, q.CorrectAnswer, q.Options)
		for _, tok := range m.NormalizedCorrect {
			if !optionContainsToken(q.Options, tok) {
				issues = append(issues, Issue{
					Field:   "correct_answer",
					Message: "value " + tok + " is not one of the declared options",
				})
			}
		}
	}
	if issue := validateContent(q.Type, q.Content); issue != nil {
		issues = append(issues, *issue)
	}
	return issues
}

func (s MultipleChoice) CheckAnswer(q *question.Question, rawAnswer any) question.AttemptResult {
	m := answers.ValidateBilingual(rawAnswer, q.CorrectAnswer, q.Options)

	res := question.AttemptResult{
		Correct:           m.Correct,
		NormalizedCorrect: m.NormalizedCorrect,
	}
	if m.Correct {
		res.Score = 1
		res.Feedback = feedbackCorrect(m.Language)
	} else {
		res.Feedback = feedbackIncorrect(m.Language, strings.Join(m.NormalizedCorrect, ", "))
	}
	return res
}

func (s MultipleChoice) OptionsForLearner(q *question.Question) LearnerView {
	return LearnerView{
		Type:    q.Type,
		Options: learnerOptions(q.Options, s.AllowShuffle()),
	}
}

func (s MultipleChoice) OptionsForAuthor(q *question.Question) AuthorView {
	return AuthorView{
		Type:    q.Type,
		Options: authorOptions(q),
	}
}

// optionContainsToken reports whether a normalized token matches any
// option in either language, case-insensitively.
func optionContainsToken(opts *question.OptionSet, token string) bool {
	for _, o := range opts.EN {
		if strings.EqualFold(strings.TrimSpace(o), token) {
			return true
		}
	}
	for _, o := range opts.HU {
		if strings.EqualFold(strings.TrimSpace(o), token) {
			return true
		}
	}
	return false
}
