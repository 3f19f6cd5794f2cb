// Package strategy implements the per-question-type behavior of the scoring
// engine: authoring validation, answer checking, and learner/author
// presentation. Strategies are pure functions of (question, answer); none
// holds mutable state, so checking answers is safe to run concurrently
// across requests without coordination.
package strategy

import (
	"fmt"
	"math/rand"

	"github.com/edusprint/quizengine/internal/question"
)

// Strategy is the variant-specific logic for one question format.
// Implementations must be stateless and safe for concurrent use.
type Strategy interface {
	// Tag returns the type tag this strategy handles.
	Tag() question.TypeTag

	// ValidateAuthoring runs the authoring-time structural checks: required
	// fields present, correct-answer values drawn from the declared option
	// set, minimum option counts, content payload shape. It runs before a
	// question is persisted or published, never on the student-answer path.
	// An empty slice means the question is valid.
	ValidateAuthoring(q *question.Question) []Issue

	// CheckAnswer scores a submitted answer. It never fails: a malformed
	// stored correct answer degrades to an incorrect verdict rather than
	// an error, so one corrupted question cannot break a scoring request.
	CheckAnswer(q *question.Question, rawAnswer any) question.AttemptResult

	// OptionsForLearner shapes the question's options for a learner:
	// correctness flags stripped, order shuffled when the format permits.
	OptionsForLearner(q *question.Question) LearnerView

	// OptionsForAuthor shapes the question's options for the editing UI,
	// including correctness flags and fixed answer-domain labels.
	OptionsForAuthor(q *question.Question) AuthorView

	// AnswerSchema returns a JSON Schema describing the submitted-answer
	// shape this strategy expects, for client-side validation.
	AnswerSchema() string

	// AllowShuffle reports whether learner-facing option order may be
	// shuffled. Formats with a fixed lettered answer domain must not
	// shuffle, because option identity is the letter, not the text.
	AllowShuffle() bool
}

// Issue describes one authoring-time defect found in a question.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// LearnerOption is one option position as presented to a learner. Position
// is the stable identity; the label pair carries both languages so the
// client picks the rendering.
type LearnerOption struct {
	Position int                `json:"position"`
	Label    question.Bilingual `json:"label"`
}

// LearnerView is the learner-facing presentation payload of a question's
// answer surface. Correctness information never appears here.
type LearnerView struct {
	Type    question.TypeTag `json:"type"`
	Options []LearnerOption  `json:"options,omitempty"`
}

// AuthorOption is one option position with its correctness flag, for the
// editing UI.
type AuthorOption struct {
	Position int                `json:"position"`
	Label    question.Bilingual `json:"label"`
	Correct  bool               `json:"correct"`
}

// DomainLabel is one entry of a fixed answer domain (the A-E letters of
// relation analysis) with its canonical meaning.
type DomainLabel struct {
	Code    string             `json:"code"`
	Meaning question.Bilingual `json:"meaning"`
}

// AuthorView is the author-facing presentation payload.
type AuthorView struct {
	Type    question.TypeTag `json:"type"`
	Options []AuthorOption   `json:"options,omitempty"`
	Domain  []DomainLabel    `json:"domain,omitempty"`
}

// learnerOptions builds the learner option list from a bilingual option
// set, shuffling when permitted. Positions survive the shuffle so answer
// identity is unaffected by presentation order.
func learnerOptions(opts *question.OptionSet, shuffle bool) []LearnerOption {
	n := opts.Len()
	out := make([]LearnerOption, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, LearnerOption{Position: i, Label: optionLabel(opts, i)})
	}
	if shuffle {
		rand.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	}
	return out
}

func optionLabel(opts *question.OptionSet, i int) question.Bilingual {
	var b question.Bilingual
	if i < len(opts.EN) {
		b.EN = opts.EN[i]
	}
	if i < len(opts.HU) {
		b.HU = opts.HU[i]
	}
	return b
}

// feedbackCorrect returns the learner-facing confirmation text.
func feedbackCorrect(lang question.Language) string {
	if lang == question.LangHU {
		return "Helyes!"
	}
	return "Correct!"
}

// feedbackIncorrect returns the learner-facing fallback text naming the
// correct answer.
func feedbackIncorrect(lang question.Language, correctText string) string {
	if lang == question.LangHU {
		return fmt.Sprintf("Helytelen. A helyes válasz: %s", correctText)
	}
	return fmt.Sprintf("Incorrect. The correct answer: %s", correctText)
}

// validateCommon holds the structural checks shared by every format.
func validateCommon(q *question.Question) []Issue {
	var issues []Issue
	if q.Prompt.EN == "" && q.Prompt.HU == "" {
		issues = append(issues, Issue{Field: "prompt", Message: "at least one language is required"})
	}
	if q.BloomLevel < question.MinBloom || q.BloomLevel > question.MaxBloom {
		issues = append(issues, Issue{
			Field:   "bloom_level",
			Message: fmt.Sprintf("must be between %d and %d, got %d", question.MinBloom, question.MaxBloom, q.BloomLevel),
		})
	}
	if q.CorrectAnswer == "" {
		issues = append(issues, Issue{Field: "correct_answer", Message: "is required"})
	}
	return issues
}

// validateOptionSet checks that a bilingual option set is present, parallel,
// and large enough.
func validateOptionSet(opts *question.OptionSet, minOptions int) []Issue {
	var issues []Issue
	if opts.IsEmpty() {
		return append(issues, Issue{Field: "options", Message: "are required"})
	}
	if len(opts.EN) > 0 && len(opts.HU) > 0 && len(opts.EN) != len(opts.HU) {
		issues = append(issues, Issue{
			Field:   "options",
			Message: fmt.Sprintf("en and hu lists must be parallel, got %d and %d entries", len(opts.EN), len(opts.HU)),
		})
	}
	if opts.Len() < minOptions {
		issues = append(issues, Issue{
			Field:   "options",
			Message: fmt.Sprintf("at least %d options required, got %d", minOptions, opts.Len()),
		})
	}
	return issues
}

// optionContains reports whether value appears in either language list of
// the option set. Comparison is exact; authoring must store the canonical
// spelling it intends learners to match.
func optionContains(opts *question.OptionSet, value string) bool {
	if opts == nil {
		return false
	}
	for _, o := range opts.EN {
		if o == value {
			return true
		}
	}
	for _, o := range opts.HU {
		if o == value {
			return true
		}
	}
	return false
}
