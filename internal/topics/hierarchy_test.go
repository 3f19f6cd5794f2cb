package topics

import (
	"testing"

	"github.com/google/uuid"

	"github.com/edusprint/quizengine/internal/question"
)

func topic(id uuid.UUID, parent *uuid.UUID, name string) Topic {
	return Topic{ID: id, ParentID: parent, Name: question.Bilingual{EN: name}}
}

func TestNewHierarchy_DescendantsAndRoots(t *testing.T) {
	root := uuid.New()
	child1 := uuid.New()
	child2 := uuid.New()
	grandchild := uuid.New()

	h, err := NewHierarchy([]Topic{
		topic(root, nil, "Biology"),
		topic(child1, &root, "Cell biology"),
		topic(child2, &root, "Genetics"),
		topic(grandchild, &child1, "Organelles"),
	})
	if err != nil {
		t.Fatalf("NewHierarchy: %v", err)
	}

	if got := h.Roots(); len(got) != 1 || got[0] != root {
		t.Errorf("Roots() = %v, want [%s]", got, root)
	}

	desc := h.Descendants(root)
	if len(desc) != 4 {
		t.Errorf("Descendants(root) = %d topics, want 4", len(desc))
	}

	desc = h.Descendants(child1)
	if len(desc) != 2 {
		t.Errorf("Descendants(child1) = %d topics, want 2", len(desc))
	}

	// Unknown IDs scope to themselves.
	unknown := uuid.New()
	if desc := h.Descendants(unknown); len(desc) != 1 || desc[0] != unknown {
		t.Errorf("Descendants(unknown) = %v, want itself only", desc)
	}
}

func TestNewHierarchy_Defects(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	// Duplicate ID.
	_, err := NewHierarchy([]Topic{topic(a, nil, "x"), topic(a, nil, "y")})
	if err == nil {
		t.Error("expected error for duplicate topic ID")
	}

	// Dangling parent.
	missing := uuid.New()
	_, err = NewHierarchy([]Topic{topic(a, &missing, "x")})
	if err == nil {
		t.Error("expected error for dangling parent")
	}

	// Cycle: a → b → a.
	_, err = NewHierarchy([]Topic{topic(a, &b, "x"), topic(b, &a, "y")})
	if err == nil {
		t.Error("expected error for a parent cycle")
	}
}
