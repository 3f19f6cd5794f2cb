package strategy

import (
	"strings"

	"github.com/edusprint/quizengine/internal/answers"
	"github.com/edusprint/quizengine/internal/question"
)

// relationDomain is the fixed answer domain of relation analysis. Each
// item pairs a statement with a reason; the letter encodes the truth of
// both halves and whether the reason explains the statement. The domain is
// semantic, not authored content, so it is identical for every question of
// this type and must never be shuffled.
var relationDomain = []DomainLabel{
	{Code: "A", Meaning: question.Bilingual{
		EN: "Both the statement and the reason are true, and the reason explains the statement.",
		HU: "Az állítás és az indoklás is igaz, és az indoklás magyarázza az állítást.",
	}},
	{Code: "B", Meaning: question.Bilingual{
		EN: "Both the statement and the reason are true, but the reason does not explain the statement.",
		HU: "Az állítás és az indoklás is igaz, de az indoklás nem magyarázza az állítást.",
	}},
	{Code: "C", Meaning: question.Bilingual{
		EN: "The statement is true, but the reason is false.",
		HU: "Az állítás igaz, az indoklás hamis.",
	}},
	{Code: "D", Meaning: question.Bilingual{
		EN: "The statement is false, but the reason is true.",
		HU: "Az állítás hamis, az indoklás igaz.",
	}},
	{Code: "E", Meaning: question.Bilingual{
		EN: "Both the statement and the reason are false.",
		HU: "Az állítás és az indoklás is hamis.",
	}},
}

// RelationAnalysis scores paired statement-and-reason questions answered
// with a single letter from the fixed A-E domain. Matching is
// case-insensitive; feedback always carries the canonical meaning of the
// correct letter so the learner sees why, not just which.
type RelationAnalysis struct{}

func (RelationAnalysis) Tag() question.TypeTag { return question.TypeRelationAnalysis }

// AllowShuffle is false: option identity is the letter itself, not the
// authored content.
func (RelationAnalysis) AllowShuffle() bool { return false }

func (RelationAnalysis) AnswerSchema() string {
	return `{"type": "string", "enum": ["A", "B", "C", "D", "E", "a", "b", "c", "d", "e"]}`
}

func (s RelationAnalysis) ValidateAuthoring(q *question.Question) []Issue {
	issues := validateCommon(q)
	if q.CorrectAnswer != "" && domainLabel(q.CorrectAnswer) == nil {
		issues = append(issues, Issue{Field: "correct_answer", Message: "must be one of A, B, C, D, E"})
	}
	if issue := validateContent(q.Type, q.Content); issue != nil {
		issues = append(issues, *issue)
	}
	return issues
}

func (s RelationAnalysis) CheckAnswer(q *question.Question, rawAnswer any) question.AttemptResult {
	correctLabel := domainLabel(q.CorrectAnswer)

	res := question.AttemptResult{
		NormalizedCorrect: answers.Normalize(q.CorrectAnswer),
	}

	// Malformed stored letter: degrade to always-incorrect.
	if correctLabel == nil {
		res.Feedback = feedbackIncorrect(question.LangEN, "")
		return res
	}

	submitted, _ := rawAnswer.(string)
	if strings.EqualFold(strings.TrimSpace(submitted), correctLabel.Code) {
		res.Correct = true
		res.Score = 1
		res.Feedback = feedbackCorrect(question.LangEN) + " " + correctLabel.Meaning.In(question.LangEN)
		return res
	}

	res.Feedback = feedbackIncorrect(question.LangEN, correctLabel.Code+": "+correctLabel.Meaning.In(question.LangEN))
	return res
}

// OptionsForLearner presents the lettered domain without marking the
// correct entry. Order is fixed.
func (s RelationAnalysis) OptionsForLearner(q *question.Question) LearnerView {
	opts := make([]LearnerOption, len(relationDomain))
	for i, d := range relationDomain {
		opts[i] = LearnerOption{Position: i, Label: d.Meaning}
	}
	return LearnerView{Type: q.Type, Options: opts}
}

func (s RelationAnalysis) OptionsForAuthor(q *question.Question) AuthorView {
	opts := make([]AuthorOption, len(relationDomain))
	for i, d := range relationDomain {
		opts[i] = AuthorOption{
			Position: i,
			Label:    d.Meaning,
			Correct:  strings.EqualFold(strings.TrimSpace(q.CorrectAnswer), d.Code),
		}
	}
	return AuthorView{Type: q.Type, Options: opts, Domain: relationDomain}
}

// domainLabel resolves a stored letter to its domain entry, or nil when
// the letter is outside A-E.
func domainLabel(letter string) *DomainLabel {
	trimmed := strings.TrimSpace(letter)
	for i := range relationDomain {
		if strings.EqualFold(relationDomain[i].Code, trimmed) {
			return &relationDomain[i]
		}
	}
	return nil
}
