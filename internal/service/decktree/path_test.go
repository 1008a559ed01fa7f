package decktree

import (
	"testing"

	"memoria/internal/domain/models/flashcard"

	"github.com/stretchr/testify/assert"
)

func TestComputePath(t *testing.T) {
	tests := []struct {
		name     string
		parent   *flashcard.Deck
		deckName string
		want     string
	}{
		{name: "root deck", parent: nil, deckName: "Spanish", want: "Spanish"},
		{name: "root deck trims name", parent: nil, deckName: "  Spanish \t", want: "Spanish"},
		{name: "blank parent path acts as root", parent: &flashcard.Deck{Path: "   "}, deckName: "Verbs", want: "Verbs"},
		{name: "child deck", parent: &flashcard.Deck{Path: "Spanish"}, deckName: "Verbs", want: "Spanish::Verbs"},
		{name: "both sides trimmed", parent: &flashcard.Deck{Path: " Spanish::Verbs "}, deckName: " Irregular ", want: "Spanish::Verbs::Irregular"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputePath(tt.parent, tt.deckName))
		})
	}
}

func TestParentPath(t *testing.T) {
	p, ok := ParentPath("A::B::C")
	assert.True(t, ok)
	assert.Equal(t, "A::B", p)

	_, ok = ParentPath("A")
	assert.False(t, ok)
}

func TestResolveAccessLevel(t *testing.T) {
	shared := &flashcard.Deck{Path: "P", AccessLevel: flashcard.AccessShared}

	tests := []struct {
		name      string
		requested flashcard.AccessLevel
		parent    *flashcard.Deck
		want      flashcard.AccessLevel
	}{
		{name: "default without parent is private", requested: flashcard.AccessDefault, parent: nil, want: flashcard.AccessPrivate},
		{name: "default inherits parent", requested: flashcard.AccessDefault, parent: shared, want: flashcard.AccessShared},
		{name: "explicit public wins over parent", requested: flashcard.AccessPublic, parent: shared, want: flashcard.AccessPublic},
		{name: "explicit public without parent", requested: flashcard.AccessPublic, parent: nil, want: flashcard.AccessPublic},
		{name: "absent is private even with parent", requested: "", parent: shared, want: flashcard.AccessPrivate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAccessLevel(tt.requested, tt.parent))
		})
	}
}
