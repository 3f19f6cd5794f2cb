package question

import (
	"encoding/json"

	"github.com/google/uuid"
)

// TypeTag identifies a question format. Each tag maps to exactly one
// strategy in the registry; an unrecognized tag is a configuration error.
type TypeTag string

const (
	TypeSingleChoice     TypeTag = "single_choice"
	TypeMultipleChoice   TypeTag = "multiple_choice"
	TypeTrueFalse        TypeTag = "true_false"
	TypeRelationAnalysis TypeTag = "relation_analysis"
	TypeShortAnswer      TypeTag = "short_answer"
)

// AllTypes returns every supported type tag in display order.
func AllTypes() []TypeTag {
	return []TypeTag{
		TypeSingleChoice,
		TypeMultipleChoice,
		TypeTrueFalse,
		TypeRelationAnalysis,
		TypeShortAnswer,
	}
}

// Bloom level bounds. Levels follow the revised Bloom taxonomy:
// 1 remember, 2 understand, 3 apply, 4 analyze, 5 evaluate, 6 create.
const (
	MinBloom = 1
	MaxBloom = 6
)

// Language selects which side of a bilingual pair to render.
type Language string

const (
	LangEN Language = "en"
	LangHU Language = "hu"
)

// Bilingual holds the English and Hungarian renditions of one text field.
type Bilingual struct {
	EN string `json:"en"`
	HU string `json:"hu"`
}

// In returns the text in the requested language, falling back to the
// other language when the requested one is empty.
func (b Bilingual) In(lang Language) string {
	if lang == LangHU {
		if b.HU != "" {
			return b.HU
		}
		return b.EN
	}
	if b.EN != "" {
		return b.EN
	}
	return b.HU
}

// OptionSet is a parallel pair of ordered option lists. Option position is
// the semantic key: index i in EN and index i in HU denote the same option,
// so the learner's language choice never changes which positions are correct.
type OptionSet struct {
	EN []string `json:"en"`
	HU []string `json:"hu"`
}

// Len returns the number of option positions. The lists are expected to be
// the same length; authoring validation enforces it.
func (o *OptionSet) Len() int {
	if o == nil {
		return 0
	}
	if len(o.EN) >= len(o.HU) {
		return len(o.EN)
	}
	return len(o.HU)
}

// IsEmpty reports whether the set carries no options in either language.
func (o *OptionSet) IsEmpty() bool {
	return o == nil || (len(o.EN) == 0 && len(o.HU) == 0)
}

// Question is the scoring-side view of an authored question. The HTTP and
// persistence layers own their own shapes; this is what strategies consume.
type Question struct {
	ID          uuid.UUID
	TopicID     uuid.UUID
	Type        TypeTag
	BloomLevel  int
	Prompt      Bilingual
	Explanation Bilingual

	// Content is the type-specific authoring payload (statements for
	// relation analysis, distractor metadata, etc.). Validated against a
	// per-type JSON Schema at authoring time.
	Content json.RawMessage

	// CorrectAnswer is the stored correct answer. Its shape depends on the
	// type: a single value, a JSON-encoded array, or a letter code. The
	// normalizer owns all flexible parsing of this field.
	CorrectAnswer string

	// Options is the bilingual option structure, nil for formats that have
	// no authored options (short answer, relation analysis).
	Options *OptionSet

	Active bool
}

// AttemptResult is the outcome of scoring one submitted answer. It is
// transient: produced per submission and consumed by the progression
// engine, never stored directly.
type AttemptResult struct {
	Correct bool
	// Score is 0 or 1; there is no partial credit in any format.
	Score int
	// Feedback is learner-facing text in the inferred answer language.
	Feedback string
	// NormalizedCorrect is the canonical token list of the correct answer,
	// exposed so clients can render it without re-parsing stored shapes.
	NormalizedCorrect []string
}
