// Package topics models the course topic tree. The scoring engine itself
// is topic-agnostic beyond using topic IDs as keys; the hierarchy exists
// for the readiness aggregator, which rolls per-topic mastery up through
// parent topics.
package topics

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/edusprint/quizengine/internal/question"
)

// Topic is one node of the course topic tree.
type Topic struct {
	ID       uuid.UUID
	ParentID *uuid.UUID // nil for a root topic
	Name     question.Bilingual
}

// Hierarchy holds the topic tree with precomputed child indices.
type Hierarchy struct {
	byID     map[uuid.UUID]*Topic
	children map[uuid.UUID][]uuid.UUID
	roots    []uuid.UUID
}

// NewHierarchy builds a hierarchy from a topic list and validates its
// structure: duplicate IDs, dangling parents, and cycles are all fatal.
func NewHierarchy(list []Topic) (*Hierarchy, error) {
	h := &Hierarchy{
		byID:     make(map[uuid.UUID]*Topic, len(list)),
		children: make(map[uuid.UUID][]uuid.UUID),
	}

	for i := range list {
		t := &list[i]
		if _, dup := h.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate topic ID %s", t.ID)
		}
		h.byID[t.ID] = t
	}

	for i := range list {
		t := &list[i]
		if t.ParentID == nil {
			h.roots = append(h.roots, t.ID)
			continue
		}
		if _, ok := h.byID[*t.ParentID]; !ok {
			return nil, fmt.Errorf("topic %s references nonexistent parent %s", t.ID, *t.ParentID)
		}
		h.children[*t.ParentID] = append(h.children[*t.ParentID], t.ID)
	}

	// Deterministic ordering for children and roots.
	sortIDs(h.roots)
	for _, ids := range h.children {
		sortIDs(ids)
	}

	if err := h.checkCycles(); err != nil {
		return nil, err
	}
	return h, nil
}

// checkCycles walks down from the roots; any node never reached sits on a
// cycle.
func (h *Hierarchy) checkCycles() error {
	visited := make(map[uuid.UUID]bool, len(h.byID))
	queue := append([]uuid.UUID(nil), h.roots...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		queue = append(queue, h.children[id]...)
	}
	if len(visited) < len(h.byID) {
		var cycled []string
		for id := range h.byID {
			if !visited[id] {
				cycled = append(cycled, id.String())
			}
		}
		sort.Strings(cycled)
		return fmt.Errorf("topic tree has a cycle involving: %v", cycled)
	}
	return nil
}

// Get returns a topic by ID.
func (h *Hierarchy) Get(id uuid.UUID) (*Topic, bool) {
	t, ok := h.byID[id]
	return t, ok
}

// Roots returns the root topic IDs.
func (h *Hierarchy) Roots() []uuid.UUID {
	return append([]uuid.UUID(nil), h.roots...)
}

// Descendants returns the given topic and every topic below it, in
// breadth-first order. Unknown IDs yield just themselves, so a caller can
// scope by any key without a lookup round first.
func (h *Hierarchy) Descendants(id uuid.UUID) []uuid.UUID {
	out := []uuid.UUID{id}
	queue := append([]uuid.UUID(nil), h.children[id]...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		out = append(out, next)
		queue = append(queue, h.children[next]...)
	}
	return out
}

// Len returns the number of topics in the hierarchy.
func (h *Hierarchy) Len() int {
	return len(h.byID)
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}
