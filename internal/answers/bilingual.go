package answers

import (
	"github.com/edusprint/quizengine/internal/question"
)

// booleanAliases maps the Hungarian boolean spellings onto the English
// canonical tokens and back. True/false options frequently appear in one
// language while the stored correct answer uses the other; resolution has
// to cross that boundary.
var booleanAliases = map[string]string{
	"igaz":  "true",
	"hamis": "false",
	"true":  "igaz",
	"false": "hamis",
}

// Match is the outcome of comparing a submitted answer against the stored
// correct answer.
type Match struct {
	Correct bool
	// NormalizedCorrect is the canonical token list of the correct answer.
	NormalizedCorrect []string
	// Language is the language inferred from the learner's tokens, used to
	// render feedback. Defaults to English when nothing matched Hungarian.
	Language question.Language
}

// ValidateBilingual compares a submitted answer against the stored correct
// answer under a bilingual option structure.
//
// Both sides are normalized independently, then every token is resolved to
// an option position: first against the lowercased English list, then the
// Hungarian one, with cross-language boolean aliases tried last. Correctness
// is set equality of the resolved positions; order never matters and
// unresolvable tokens are dropped rather than counted as wrong; the answer
// is wrong only if the final sets differ.
//
// When opts carries no options, comparison falls back to literal
// order-independent set equality of the normalized token lists.
func ValidateBilingual(userAnswer, correctAnswer any, opts *question.OptionSet) Match {
	normUser := Normalize(userAnswer)
	normCorrect := Normalize(correctAnswer)

	if opts.IsEmpty() {
		return Match{
			Correct:           len(normCorrect) > 0 && sameSet(normUser, normCorrect),
			NormalizedCorrect: normCorrect,
			Language:          question.LangEN,
		}
	}

	en := lowered(opts.EN)
	hu := lowered(opts.HU)

	correctSet := make(map[int]bool)
	for _, tok := range normCorrect {
		if pos, _, ok := resolvePosition(tok, en, hu); ok {
			correctSet[pos] = true
		}
	}

	lang := question.LangEN
	userSet := make(map[int]bool)
	for _, tok := range normUser {
		pos, viaHU, ok := resolvePosition(tok, en, hu)
		if !ok {
			continue
		}
		userSet[pos] = true
		if viaHU {
			lang = question.LangHU
		}
	}

	// An empty correct set means the stored answer resolved to nothing
	// (malformed or stale content). Degrade to incorrect rather than
	// letting empty == empty score as a pass.
	correct := len(correctSet) > 0 && samePositionSet(userSet, correctSet)

	return Match{
		Correct:           correct,
		NormalizedCorrect: normCorrect,
		Language:          lang,
	}
}

// resolvePosition maps a normalized token to an option position. The
// English list wins ties; viaHU reports that the match came from the
// Hungarian list, which drives feedback language inference.
func resolvePosition(token string, en, hu []string) (pos int, viaHU bool, ok bool) {
	if i := indexOf(en, token); i >= 0 {
		return i, false, true
	}
	if i := indexOf(hu, token); i >= 0 {
		return i, true, true
	}
	if alias, has := booleanAliases[token]; has {
		if i := indexOf(en, alias); i >= 0 {
			return i, false, true
		}
		if i := indexOf(hu, alias); i >= 0 {
			return i, true, true
		}
	}
	return 0, false, false
}

func indexOf(list []string, token string) int {
	for i, s := range list {
		if s == token {
			return i
		}
	}
	return -1
}

func lowered(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = canonToken(s)
	}
	return out
}

// sameSet reports order-independent set equality of two token lists.
// Duplicates collapse: {"a","a"} equals {"a"}.
func sameSet(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, t := range a {
		as[t] = true
	}
	bs := make(map[string]bool, len(b))
	for _, t := range b {
		bs[t] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for t := range as {
		if !bs[t] {
			return false
		}
	}
	return true
}

func samePositionSet(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for p := range a {
		if !b[p] {
			return false
		}
	}
	return true
}
