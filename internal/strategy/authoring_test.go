package strategy

import (
	"encoding/json"
	"testing"

	"github.com/edusprint/quizengine/internal/question"
)

func hasIssue(issues []Issue, field string) bool {
	for _, i := range issues {
		if i.Field == field {
			return true
		}
	}
	return false
}

func TestSingleChoice_ValidateAuthoring(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*question.Question)
		wantField string
	}{
		{name: "valid", mutate: func(q *question.Question) {}, wantField: ""},
		{name: "missing prompt", mutate: func(q *question.Question) { q.Prompt = question.Bilingual{} }, wantField: "prompt"},
		{name: "bloom out of range", mutate: func(q *question.Question) { q.BloomLevel = 7 }, wantField: "bloom_level"},
		{name: "missing correct answer", mutate: func(q *question.Question) { q.CorrectAnswer = "" }, wantField: "correct_answer"},
		{name: "answer not in options", mutate: func(q *question.Question) { q.CorrectAnswer = "Z" }, wantField: "correct_answer"},
		{name: "no options", mutate: func(q *question.Question) { q.Options = nil }, wantField: "options"},
		{name: "non-parallel lists", mutate: func(q *question.Question) { q.Options.HU = q.Options.HU[:2] }, wantField: "options"},
		{
			name: "too few options",
			mutate: func(q *question.Question) {
				q.Options = &question.OptionSet{EN: []string{"A"}, HU: []string{"A"}}
				q.CorrectAnswer = "A"
			},
			wantField: "options",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := choiceQuestion(question.TypeSingleChoice, "B")
			tc.mutate(q)
			issues := SingleChoice{}.ValidateAuthoring(q)
			if tc.wantField == "" {
				if len(issues) != 0 {
					t.Errorf("issues = %v, want none", issues)
				}
				return
			}
			if !hasIssue(issues, tc.wantField) {
				t.Errorf("issues = %v, want one on field %q", issues, tc.wantField)
			}
		})
	}
}

func TestMultipleChoice_ValidateAuthoring_AnswerOutsideOptions(t *testing.T) {
	q := choiceQuestion(question.TypeMultipleChoice, `["A","Z"]`)
	issues := MultipleChoice{}.ValidateAuthoring(q)
	if !hasIssue(issues, "correct_answer") {
		t.Errorf("issues = %v, want a correct_answer issue for the undeclared value", issues)
	}
}

func TestTrueFalse_ValidateAuthoring(t *testing.T) {
	content := json.RawMessage(`{"statement": {"en": "The Danube flows through Budapest.", "hu": "A Duna átfolyik Budapesten."}}`)

	q := &question.Question{
		Type:          question.TypeTrueFalse,
		BloomLevel:    1,
		Prompt:        question.Bilingual{EN: "True or false?"},
		Content:       content,
		CorrectAnswer: "igaz",
	}
	if issues := (TrueFalse{}).ValidateAuthoring(q); len(issues) != 0 {
		t.Errorf("issues = %v, want none", issues)
	}

	q.CorrectAnswer = "maybe"
	if issues := (TrueFalse{}).ValidateAuthoring(q); !hasIssue(issues, "correct_answer") {
		t.Errorf("issues = %v, want a correct_answer issue", issues)
	}

	q.CorrectAnswer = "igaz"
	q.Content = nil
	if issues := (TrueFalse{}).ValidateAuthoring(q); !hasIssue(issues, "content") {
		t.Errorf("issues = %v, want a content issue when the statement payload is missing", issues)
	}
}

func TestRelationAnalysis_ValidateAuthoring_ContentSchema(t *testing.T) {
	valid := json.RawMessage(`{
		"statement": {"en": "Water boils at 100C at sea level.", "hu": "A víz tengerszinten 100 fokon forr."},
		"reason": {"en": "Air pressure affects boiling point.", "hu": "A légnyomás befolyásolja a forráspontot."}
	}`)

	q := &question.Question{
		Type:          question.TypeRelationAnalysis,
		BloomLevel:    4,
		Prompt:        question.Bilingual{EN: "Evaluate the pair"},
		Content:       valid,
		CorrectAnswer: "A",
	}
	if issues := (RelationAnalysis{}).ValidateAuthoring(q); len(issues) != 0 {
		t.Errorf("issues = %v, want none", issues)
	}

	q.Content = json.RawMessage(`{"statement": {"en": "only english"}}`)
	if issues := (RelationAnalysis{}).ValidateAuthoring(q); !hasIssue(issues, "content") {
		t.Errorf("issues = %v, want a content schema issue", issues)
	}

	q.Content = valid
	q.CorrectAnswer = "F"
	if issues := (RelationAnalysis{}).ValidateAuthoring(q); !hasIssue(issues, "correct_answer") {
		t.Errorf("issues = %v, want a correct_answer issue for a letter outside A-E", issues)
	}
}

func TestOptionsForLearner_StripsCorrectness(t *testing.T) {
	q := choiceQuestion(question.TypeSingleChoice, "B")
	view := SingleChoice{}.OptionsForLearner(q)

	if len(view.Options) != 3 {
		t.Fatalf("len(Options) = %d, want 3", len(view.Options))
	}
	// All three positions must be present exactly once regardless of order.
	seen := make(map[int]bool)
	for _, o := range view.Options {
		seen[o.Position] = true
	}
	for p := 0; p < 3; p++ {
		if !seen[p] {
			t.Errorf("position %d missing from learner view", p)
		}
	}
}

func TestOptionsForAuthor_MarksCorrect(t *testing.T) {
	q := choiceQuestion(question.TypeSingleChoice, "B")
	view := SingleChoice{}.OptionsForAuthor(q)

	for _, o := range view.Options {
		want := o.Label.EN == "B"
		if o.Correct != want {
			t.Errorf("position %d Correct = %v, want %v", o.Position, o.Correct, want)
		}
	}
}

func TestRelationAnalysis_FixedDomainNeverShuffled(t *testing.T) {
	q := &question.Question{Type: question.TypeRelationAnalysis, CorrectAnswer: "A"}

	for run := 0; run < 5; run++ {
		view := RelationAnalysis{}.OptionsForLearner(q)
		for i, o := range view.Options {
			if o.Position != i {
				t.Fatalf("run %d: position %d rendered at index %d; domain order must be fixed", run, o.Position, i)
			}
		}
	}
}
