// Package bank loads authored question banks from JSON files and runs
// the authoring-time checks before anything reaches the store.
package bank

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/edusprint/quizengine/internal/question"
	"github.com/edusprint/quizengine/internal/strategy"
	"github.com/edusprint/quizengine/internal/topics"
)

// File is the on-disk shape of a question bank.
type File struct {
	Topics    []TopicEntry    `json:"topics"`
	Questions []QuestionEntry `json:"questions"`
}

type TopicEntry struct {
	ID       uuid.UUID  `json:"id"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
	NameEN   string     `json:"name_en"`
	NameHU   string     `json:"name_hu"`
}

type QuestionEntry struct {
	ID            uuid.UUID       `json:"id"`
	TopicID       uuid.UUID       `json:"topic_id"`
	Type          string          `json:"type"`
	BloomLevel    int             `json:"bloom_level"`
	PromptEN      string          `json:"prompt_en"`
	PromptHU      string          `json:"prompt_hu"`
	ExplanationEN string          `json:"explanation_en,omitempty"`
	ExplanationHU string          `json:"explanation_hu,omitempty"`
	Content       json.RawMessage `json:"content,omitempty"`
	CorrectAnswer string          `json:"correct_answer"`
	OptionsEN     []string        `json:"options_en,omitempty"`
	OptionsHU     []string        `json:"options_hu,omitempty"`
	Active        *bool           `json:"active,omitempty"`
}

// Bank is a parsed question bank in domain form.
type Bank struct {
	Topics    []topics.Topic
	Questions []*question.Question
}

// Load reads and parses a bank file. Parsing only; run Validate for
// the authoring checks.
func Load(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	return Parse(raw)
}

// Parse converts raw bank JSON into domain form. Missing question IDs
// are generated; active defaults to true.
func Parse(raw []byte) (*Bank, error) {
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}

	b := &Bank{}
	for _, t := range f.Topics {
		if t.ID == uuid.Nil {
			return nil, fmt.Errorf("topic %q: missing id", t.NameEN)
		}
		b.Topics = append(b.Topics, topics.Topic{
			ID:       t.ID,
			ParentID: t.ParentID,
			Name:     question.Bilingual{EN: t.NameEN, HU: t.NameHU},
		})
	}
	for i, e := range f.Questions {
		q := &question.Question{
			ID:            e.ID,
			TopicID:       e.TopicID,
			Type:          question.TypeTag(e.Type),
			BloomLevel:    e.BloomLevel,
			Prompt:        question.Bilingual{EN: e.PromptEN, HU: e.PromptHU},
			Explanation:   question.Bilingual{EN: e.ExplanationEN, HU: e.ExplanationHU},
			Content:       e.Content,
			CorrectAnswer: e.CorrectAnswer,
			Active:        true,
		}
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
		if q.TopicID == uuid.Nil {
			return nil, fmt.Errorf("question %d: missing topic_id", i)
		}
		if len(e.OptionsEN) > 0 || len(e.OptionsHU) > 0 {
			q.Options = &question.OptionSet{EN: e.OptionsEN, HU: e.OptionsHU}
		}
		if e.Active != nil {
			q.Active = *e.Active
		}
		b.Questions = append(b.Questions, q)
	}
	return b, nil
}

// Problem is one authoring issue tied to a question.
type Problem struct {
	QuestionID uuid.UUID
	Issue      strategy.Issue
}

func (p Problem) String() string {
	return fmt.Sprintf("question %s: %s", p.QuestionID, p.Issue)
}

// Validate runs the topic-tree and per-question authoring checks on
// the bank. A tree error is fatal; question issues are collected.
func (b *Bank) Validate(reg *strategy.Registry) ([]Problem, error) {
	var problems []Problem

	known := make(map[uuid.UUID]bool, len(b.Topics))
	if len(b.Topics) > 0 {
		if _, err := topics.NewHierarchy(b.Topics); err != nil {
			return nil, err
		}
		for _, t := range b.Topics {
			known[t.ID] = true
		}
	}

	for _, q := range b.Questions {
		if len(known) > 0 && !known[q.TopicID] {
			problems = append(problems, Problem{
				QuestionID: q.ID,
				Issue:      strategy.Issue{Field: "topic_id", Message: fmt.Sprintf("unknown topic %s", q.TopicID)},
			})
		}
		for _, issue := range reg.ValidateAuthoring(q) {
			problems = append(problems, Problem{QuestionID: q.ID, Issue: issue})
		}
	}
	return problems, nil
}
