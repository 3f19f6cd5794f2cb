package strategy

import (
	"errors"
	"fmt"

	"github.com/edusprint/quizengine/internal/question"
)

// ErrUnknownType is returned when a question carries a type tag no
// registered strategy handles. This is a configuration defect: the
// registry is assembled once at startup, so the error should never occur
// on a live scoring path.
var ErrUnknownType = errors.New("unknown question type")

// Registry maps type tags to strategies. It is immutable after
// construction and must be passed explicitly to the components that score
// or validate questions; there is no package-level singleton.
type Registry struct {
	strategies map[question.TypeTag]Strategy
}

// NewRegistry builds a registry from the given strategies. A duplicate tag
// is a fatal configuration error.
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	r := &Registry{strategies: make(map[question.TypeTag]Strategy, len(strategies))}
	for _, s := range strategies {
		tag := s.Tag()
		if _, exists := r.strategies[tag]; exists {
			return nil, fmt.Errorf("duplicate strategy for type %q", tag)
		}
		r.strategies[tag] = s
	}
	return r, nil
}

// NewDefaultRegistry returns a registry with every built-in strategy
// installed.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(
		SingleChoice{},
		MultipleChoice{},
		TrueFalse{},
		RelationAnalysis{},
		ShortAnswer{},
	)
	if err != nil {
		// The built-in set is static; a duplicate here is a programming error.
		panic(err)
	}
	return r
}

// Get returns the strategy for a type tag.
func (r *Registry) Get(tag question.TypeTag) (Strategy, error) {
	s, ok := r.strategies[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}
	return s, nil
}

// Tags returns the registered type tags.
func (r *Registry) Tags() []question.TypeTag {
	tags := make([]question.TypeTag, 0, len(r.strategies))
	for _, t := range question.AllTypes() {
		if _, ok := r.strategies[t]; ok {
			tags = append(tags, t)
		}
	}
	return tags
}

// ValidateAuthoring routes a question to its strategy's authoring checks.
// An unknown type is reported as an issue rather than an error so the
// authoring UI can render it alongside field problems.
func (r *Registry) ValidateAuthoring(q *question.Question) []Issue {
	s, err := r.Get(q.Type)
	if err != nil {
		return []Issue{{Field: "type", Message: fmt.Sprintf("unknown question type %q", q.Type)}}
	}
	return s.ValidateAuthoring(q)
}
