package answers

import (
	"reflect"
	"testing"

	"github.com/edusprint/quizengine/internal/question"
)

func boolOptions() *question.OptionSet {
	return &question.OptionSet{
		EN: []string{"True", "False"},
		HU: []string{"Igaz", "Hamis"},
	}
}

func TestValidateBilingual_BooleanSymmetry(t *testing.T) {
	// Stored correct answer is the Hungarian spelling; both languages must
	// score identically through position resolution.
	tests := []struct {
		name    string
		user    any
		correct bool
	}{
		{name: "english true", user: "True", correct: true},
		{name: "hungarian true", user: "Igaz", correct: true},
		{name: "english false", user: "False", correct: false},
		{name: "hungarian false", user: "Hamis", correct: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := ValidateBilingual(tc.user, "igaz", boolOptions())
			if m.Correct != tc.correct {
				t.Errorf("ValidateBilingual(%q, igaz) = %v, want %v", tc.user, m.Correct, tc.correct)
			}
		})
	}
}

func TestValidateBilingual_AliasAcrossSpellings(t *testing.T) {
	// Option lists only carry the Hungarian spellings; the English token
	// must still resolve via the boolean alias table.
	opts := &question.OptionSet{HU: []string{"Igaz", "Hamis"}}
	m := ValidateBilingual("true", "igaz", opts)
	if !m.Correct {
		t.Error("english token should resolve against hungarian-only options")
	}
}

func TestValidateBilingual_MultiSelectPositions(t *testing.T) {
	opts := &question.OptionSet{
		EN: []string{"Mitochondrion", "Nucleus", "Ribosome"},
		HU: []string{"Mitokondrium", "Sejtmag", "Riboszóma"},
	}

	tests := []struct {
		name    string
		user    any
		correct any
		want    bool
	}{
		{name: "mixed languages same positions", user: `["Mitokondrium","Ribosome"]`, correct: `["Mitochondrion","Ribosome"]`, want: true},
		{name: "order independent", user: `["Ribosome","Mitochondrion"]`, correct: `["Mitochondrion","Ribosome"]`, want: true},
		{name: "partial set is wrong", user: `["Mitochondrion"]`, correct: `["Mitochondrion","Ribosome"]`, want: false},
		{name: "extra selection is wrong", user: `["Mitochondrion","Nucleus","Ribosome"]`, correct: `["Mitochondrion","Ribosome"]`, want: false},
		{name: "unresolved token dropped", user: `["Mitokondrium","Riboszóma","bogus"]`, correct: `["Mitochondrion","Ribosome"]`, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := ValidateBilingual(tc.user, tc.correct, opts)
			if m.Correct != tc.want {
				t.Errorf("ValidateBilingual(%v, %v) = %v, want %v", tc.user, tc.correct, m.Correct, tc.want)
			}
		})
	}
}

func TestValidateBilingual_LanguageInference(t *testing.T) {
	opts := boolOptions()

	m := ValidateBilingual("Igaz", "true", opts)
	if m.Language != question.LangHU {
		t.Errorf("Language = %s, want hu when a token matched the hungarian list", m.Language)
	}

	m = ValidateBilingual("True", "true", opts)
	if m.Language != question.LangEN {
		t.Errorf("Language = %s, want en default", m.Language)
	}
}

func TestValidateBilingual_FallbackLiteralSets(t *testing.T) {
	// No option structure: literal order-independent set equality.
	m := ValidateBilingual(`["C","A"]`, `["A","C"]`, nil)
	if !m.Correct {
		t.Error("literal fallback should be order independent")
	}
	if !reflect.DeepEqual(m.NormalizedCorrect, []string{"a", "c"}) {
		t.Errorf("NormalizedCorrect = %v, want [a c]", m.NormalizedCorrect)
	}

	m = ValidateBilingual(`["A"]`, `["A","C"]`, nil)
	if m.Correct {
		t.Error("partial set must not score correct")
	}
}

func TestValidateBilingual_MalformedCorrectNeverPasses(t *testing.T) {
	// A correct answer that resolves to no positions degrades to
	// always-incorrect, even when the user submits nothing.
	m := ValidateBilingual("", "zzz-not-an-option", boolOptions())
	if m.Correct {
		t.Error("unresolvable correct answer must score incorrect")
	}

	m = ValidateBilingual(nil, nil, nil)
	if m.Correct {
		t.Error("empty correct answer must score incorrect")
	}
}
