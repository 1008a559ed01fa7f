package flashcard

import (
	"context"
	"errors"
	"testing"

	"memoria/internal/domain"
	models "memoria/internal/domain/models/flashcard"
	flashSvc "memoria/internal/domain/services/flashcard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "user-1"

func newDeckFixture() (*memStore, *passthroughTx, flashSvc.DeckService) {
	s := newMemStore()
	tx := &passthroughTx{}
	svc := NewDeckService(&fakeDeckRepo{s}, &fakeCardRepo{s}, tx, discardLogger())
	return s, tx, svc
}

func createDeck(t *testing.T, svc flashSvc.DeckService, parent, name string) *models.Deck {
	t.Helper()
	req := &flashSvc.CreateDeckRequest{OwnerID: owner, Name: name}
	if parent != "" {
		req.ParentPath = &parent
	}
	deck, err := svc.CreateDeck(context.Background(), req)
	require.NoError(t, err)
	return deck
}

func TestDeckService_CreateDeck(t *testing.T) {
	ctx := context.Background()
	s, tx, svc := newDeckFixture()

	root := createDeck(t, svc, "", " Languages ")
	assert.Equal(t, "Languages", root.Path)
	assert.Nil(t, root.ParentID)
	assert.Equal(t, models.AccessPrivate, root.AccessLevel)
	assert.NotEmpty(t, root.ID)

	parent := "Languages"
	child, err := svc.CreateDeck(ctx, &flashSvc.CreateDeckRequest{
		OwnerID: owner, Name: "Spanish", ParentPath: &parent, AccessLevel: models.AccessDefault,
	})
	require.NoError(t, err)
	assert.Equal(t, "Languages::Spanish", child.Path)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)
	assert.Equal(t, models.AccessPrivate, child.AccessLevel)

	assert.Equal(t, 2, tx.calls)
	assert.Equal(t, []string{owner, owner}, s.locks)

	t.Run("duplicate path", func(t *testing.T) {
		_, err := svc.CreateDeck(ctx, &flashSvc.CreateDeckRequest{OwnerID: owner, Name: "Spanish", ParentPath: &parent})
		var ce *domain.ConflictError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, child.ID, ce.ResourceID)
	})

	t.Run("same path for another owner", func(t *testing.T) {
		_, err := svc.CreateDeck(ctx, &flashSvc.CreateDeckRequest{OwnerID: "user-2", Name: "Languages"})
		assert.NoError(t, err)
	})

	t.Run("missing parent", func(t *testing.T) {
		missing := "Nope"
		_, err := svc.CreateDeck(ctx, &flashSvc.CreateDeckRequest{OwnerID: owner, Name: "X", ParentPath: &missing})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("unknown access level", func(t *testing.T) {
		_, err := svc.CreateDeck(ctx, &flashSvc.CreateDeckRequest{OwnerID: owner, Name: "X", AccessLevel: "SECRET"})
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := svc.CreateDeck(ctx, &flashSvc.CreateDeckRequest{OwnerID: owner, Name: "   "})
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})
}

func TestDeckService_RenameDeckCascades(t *testing.T) {
	ctx := context.Background()
	s, _, svc := newDeckFixture()

	lang := createDeck(t, svc, "", "Languages")
	spanish := createDeck(t, svc, "Languages", "Spanish")
	verbs := createDeck(t, svc, "Languages::Spanish", "Verbs")
	other := createDeck(t, svc, "", "Math")

	renamed, err := svc.RenameDeck(ctx, &flashSvc.RenameDeckRequest{OwnerID: owner, DeckID: lang.ID, Name: "Idiomas"})
	require.NoError(t, err)
	assert.Equal(t, "Idiomas", renamed.Path)
	assert.Equal(t, lang.ID, renamed.ID)

	assert.Equal(t, "Idiomas::Spanish", s.decks[spanish.ID].Path)
	assert.Equal(t, "Idiomas::Spanish::Verbs", s.decks[verbs.ID].Path)
	assert.Equal(t, "Math", s.decks[other.ID].Path)
	assert.Equal(t, lang.ID, *s.decks[spanish.ID].ParentID)

	t.Run("collision leaves tree untouched", func(t *testing.T) {
		_, err := svc.RenameDeck(ctx, &flashSvc.RenameDeckRequest{OwnerID: owner, DeckID: other.ID, Name: "Idiomas"})
		assert.True(t, errors.Is(err, domain.ErrConflict))
		assert.Equal(t, "Math", s.decks[other.ID].Path)
	})

	t.Run("other owner's deck", func(t *testing.T) {
		_, err := svc.RenameDeck(ctx, &flashSvc.RenameDeckRequest{OwnerID: "user-2", DeckID: lang.ID, Name: "Mine"})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestDeckService_DeleteDeck(t *testing.T) {
	ctx := context.Background()
	s, _, svc := newDeckFixture()
	tpl := s.basicTemplate()

	lang := createDeck(t, svc, "", "Languages")
	spanish := createDeck(t, svc, "Languages", "Spanish")
	verbs := createDeck(t, svc, "Languages::Spanish", "Verbs")
	math := createDeck(t, svc, "", "Math")

	s.cards["card-1"] = &models.Card{ID: "card-1", DeckID: verbs.ID, TemplateID: tpl.ID}

	t.Run("non-empty subtree without force", func(t *testing.T) {
		_, err := svc.DeleteDeck(ctx, owner, lang.ID, false)
		var ce *domain.ConflictError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, []string{verbs.ID}, ce.ResourceIDs)
		assert.Len(t, s.decks, 4)
	})

	t.Run("empty deck", func(t *testing.T) {
		ids, err := svc.DeleteDeck(ctx, owner, math.ID, false)
		require.NoError(t, err)
		assert.Equal(t, []string{math.ID}, ids)
		assert.NotContains(t, s.decks, math.ID)
	})

	t.Run("force removes subtree and cards", func(t *testing.T) {
		ids, err := svc.DeleteDeck(ctx, owner, lang.ID, true)
		require.NoError(t, err)
		assert.Equal(t, []string{lang.ID, spanish.ID, verbs.ID}, ids)
		assert.Empty(t, s.decks)
		assert.Empty(t, s.cards)
	})

	t.Run("missing deck", func(t *testing.T) {
		_, err := svc.DeleteDeck(ctx, owner, lang.ID, true)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestDeckService_GetDeckTree(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDeckFixture()

	createDeck(t, svc, "", "Languages")
	createDeck(t, svc, "Languages", "Spanish")
	createDeck(t, svc, "Languages", "French")
	createDeck(t, svc, "", "Math")

	forest, err := svc.GetDeckTree(ctx, owner)
	require.NoError(t, err)
	require.Len(t, forest, 2)

	var lang *models.DeckNode
	for _, n := range forest {
		if n.Name == "Languages" {
			lang = n
		}
	}
	require.NotNil(t, lang)
	var names []string
	for _, c := range lang.Children {
		names = append(names, c.Path)
	}
	assert.ElementsMatch(t, []string{"Languages::Spanish", "Languages::French"}, names)

	empty, err := svc.GetDeckTree(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
