package strategy

import (
	"strings"

	"github.com/edusprint/quizengine/internal/answers"
	"github.com/edusprint/quizengine/internal/question"
)

// ShortAnswer scores free-text questions that still have a closed answer
// key. The stored correct answer may carry several accepted spellings (a
// JSON array or legacy CSV); the submission is correct when its normalized
// token matches any of them. Comparison is trimmed and case-insensitive;
// free text typed by a learner cannot be held to the single-choice
// verbatim standard.
type ShortAnswer struct{}

func (ShortAnswer) Tag() question.TypeTag { return question.TypeShortAnswer }

func (ShortAnswer) AllowShuffle() bool { return false }

func (ShortAnswer) AnswerSchema() string {
	return `{"type": "string", "minLength": 1}`
}

func (s ShortAnswer) ValidateAuthoring(q *question.Question) []Issue {
	issues := validateCommon(q)
	if q.CorrectAnswer != "" && len(answers.Normalize(q.CorrectAnswer)) == 0 {
		issues = append(issues, Issue{Field: "correct_answer", Message: "must contain at least one accepted answer"})
	}
	if issue := validateContent(q.Type, q.Content); issue != nil {
		issues = append(issues, *issue)
	}
	return issues
}

func (s ShortAnswer) CheckAnswer(q *question.Question, rawAnswer any) question.AttemptResult {
	accepted := answers.Normalize(q.CorrectAnswer)
	submitted := answers.Normalize(rawAnswer)

	res := question.AttemptResult{NormalizedCorrect: accepted}

	correct := false
	if len(accepted) > 0 && len(submitted) == 1 {
		for _, a := range accepted {
			if submitted[0] == a {
				correct = true
				break
			}
		}
	}

	if correct {
		res.Correct = true
		res.Score = 1
		res.Feedback = feedbackCorrect(question.LangEN)
	} else {
		res.Feedback = feedbackIncorrect(question.LangEN, strings.Join(accepted, ", "))
	}
	return res
}

// OptionsForLearner is empty: free text has no option surface.
func (s ShortAnswer) OptionsForLearner(q *question.Question) LearnerView {
	return LearnerView{Type: q.Type}
}

func (s ShortAnswer) OptionsForAuthor(q *question.Question) AuthorView {
	return AuthorView{Type: q.Type}
}
