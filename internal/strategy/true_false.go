package strategy

import (
	"github.com/edusprint/quizengine/internal/answers"
	"github.com/edusprint/quizengine/internal/question"
)

// defaultBoolOptions is the implicit option structure for true/false
// questions authored without explicit options. Positions are fixed:
// 0 = true/igaz, 1 = false/hamis.
var defaultBoolOptions = &question.OptionSet{
	EN: []string{"True", "False"},
	HU: []string{"Igaz", "Hamis"},
}

// TrueFalse scores boolean questions through the bilingual matcher, so
// "Igaz" and "True" (and their stored-answer counterparts) are
// interchangeable regardless of which language the question was authored
// in.
type TrueFalse struct{}

func (TrueFalse) Tag() question.TypeTag { return question.TypeTrueFalse }

// AllowShuffle is false: true always renders before false.
func (TrueFalse) AllowShuffle() bool { return false }

func (TrueFalse) AnswerSchema() string {
	return `{"type": "string", "enum": ["true", "false", "True", "False", "igaz", "hamis", "Igaz", "Hamis"]}`
}

func (s TrueFalse) ValidateAuthoring(q *question.Question) []Issue {
	issues := validateCommon(q)
	if q.CorrectAnswer != "" {
		m := answers.ValidateBilingual(q.CorrectAnswer, q.CorrectAnswer, s.options(q))
		if !m.Correct {
			issues = append(issues, Issue{Field: "correct_answer", Message: "must be a true/false value (true, false, igaz, hamis)"})
		}
	}
	if issue := validateContent(q.Type, q.Content); issue != nil {
		issues = append(issues, *issue)
	}
	return issues
}

func (s TrueFalse) CheckAnswer(q *question.Question, rawAnswer any) question.AttemptResult {
	m := answers.ValidateBilingual(rawAnswer, q.CorrectAnswer, s.options(q))

	res := question.AttemptResult{
		Correct:           m.Correct,
		NormalizedCorrect: m.NormalizedCorrect,
	}
	if m.Correct {
		res.Score = 1
		res.Feedback = feedbackCorrect(m.Language)
		return res
	}

	correctText := ""
	if len(m.NormalizedCorrect) > 0 {
		correctText = m.NormalizedCorrect[0]
		// Render the fallback answer in the inferred language.
		if alias, ok := crossLanguageSpelling(correctText, m.Language); ok {
			correctText = alias
		}
	}
	res.Feedback = feedbackIncorrect(m.Language, correctText)
	return res
}

func (s TrueFalse) OptionsForLearner(q *question.Question) LearnerView {
	return LearnerView{
		Type:    q.Type,
		Options: learnerOptions(s.options(q), false),
	}
}

func (s TrueFalse) OptionsForAuthor(q *question.Question) AuthorView {
	qq := *q
	if qq.Options.IsEmpty() {
		qq.Options = defaultBoolOptions
	}
	return AuthorView{
		Type:    q.Type,
		Options: authorOptions(&qq),
	}
}

func (TrueFalse) options(q *question.Question) *question.OptionSet {
	if !q.Options.IsEmpty() {
		return q.Options
	}
	return defaultBoolOptions
}

// crossLanguageSpelling maps a normalized boolean token to the spelling of
// the requested language.
func crossLanguageSpelling(token string, lang question.Language) (string, bool) {
	spellings := map[string]question.Bilingual{
		"true":  {EN: "true", HU: "igaz"},
		"igaz":  {EN: "true", HU: "igaz"},
		"false": {EN: "false", HU: "hamis"},
		"hamis": {EN: "false", HU: "hamis"},
	}
	b, ok := spellings[token]
	if !ok {
		return token, false
	}
	return b.In(lang), true
}
