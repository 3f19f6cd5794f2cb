package strategy

import (
	"github.com/edusprint/quizengine/internal/answers"
	"github.com/edusprint/quizengine/internal/question"
)

// SingleChoice scores questions where the learner picks exactly one
// option. Comparison is raw value equality against the stored correct
// answer: case-sensitive and untrimmed. This is deliberately stricter
// than the bilingual path: single-choice clients submit the stored option
// value verbatim, so any deviation is a client bug, not a learner error.
type SingleChoice struct{}

func (SingleChoice) Tag() question.TypeTag { return question.TypeSingleChoice }

func (SingleChoice) AllowShuffle() bool { return true }

func (SingleChoice) AnswerSchema() string {
	return `{"type": "string", "minLength": 1}`
}

func (s SingleChoice) ValidateAuthoring(q *question.Question) []Issue {
	issues := validateCommon(q)
	issues = append(issues, validateOptionSet(q.Options, 2)...)
	if q.CorrectAnswer != "" && !q.Options.IsEmpty() && !optionContains(q.Options, q.CorrectAnswer) {
		issues = append(issues, Issue{Field: "correct_answer", Message: "must be one of the declared options"})
	}
	if issue := validateContent(q.Type, q.Content); issue != nil {
		issues = append(issues, *issue)
	}
	return issues
}

func (s SingleChoice) CheckAnswer(q *question.Question, rawAnswer any) question.AttemptResult {
	submitted, ok := rawAnswer.(string)
	correct := ok && submitted == q.CorrectAnswer && q.CorrectAnswer != ""

	res := question.AttemptResult{
		Correct:           correct,
		NormalizedCorrect: answers.Normalize(q.CorrectAnswer),
	}
	if correct {
		res.Score = 1
		res.Feedback = feedbackCorrect(question.LangEN)
	} else {
		res.Feedback = feedbackIncorrect(question.LangEN, q.CorrectAnswer)
	}
	return res
}

func (s SingleChoice) OptionsForLearner(q *question.Question) LearnerView {
	return LearnerView{
		Type:    q.Type,
		Options: learnerOptions(q.Options, s.AllowShuffle()),
	}
}

func (s SingleChoice) OptionsForAuthor(q *question.Question) AuthorView {
	return AuthorView{
		Type:    q.Type,
		Options: authorOptions(q),
	}
}

// authorOptions marks the positions whose value matches the stored correct
// answer. Shared by the choice-based strategies.
func authorOptions(q *question.Question) []AuthorOption {
	correctTokens := answers.Normalize(q.CorrectAnswer)
	correctSet := make(map[string]bool, len(correctTokens))
	for _, t := range correctTokens {
		correctSet[t] = true
	}

	n := q.Options.Len()
	out := make([]AuthorOption, 0, n)
	for i := 0; i < n; i++ {
		label := optionLabel(q.Options, i)
		tokens := answers.Normalize([]string{label.EN, label.HU})
		isCorrect := false
		for _, t := range tokens {
			if t != "" && correctSet[t] {
				isCorrect = true
				break
			}
		}
		out = append(out, AuthorOption{Position: i, Label: label, Correct: isCorrect})
	}
	return out
}
