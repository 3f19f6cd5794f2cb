// Package progression implements the adaptive mastery rules: the per-topic
// bloom state machine and the per-question spaced-repetition schedule.
// Both transition purely as a function of an attempt result; persistence
// and locking live at the storage boundary, not here.
package progression

// Engine applies the progression policy. It is stateless apart from its
// configuration and safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given policy.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the policy the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}
