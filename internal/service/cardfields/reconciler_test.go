package cardfields

import (
	"errors"
	"testing"

	"memoria/internal/domain"
	"memoria/internal/domain/models/flashcard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_NewCard(t *testing.T) {
	schema := NewSchema(vocabTemplate())
	card := &flashcard.Card{TemplateID: "tpl-vocab"}

	outcome, err := Reconcile(card, schema, []flashcard.FieldSubmission{
		sub("tf-word", "perro"),
		sub("tf-meaning", "dog"),
		sub("tf-pos", "noun"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, &Outcome{Created: 3}, outcome)
	require.Len(t, card.Fields, 3)
	assert.Equal(t, "tf-word", card.Fields[0].TemplateFieldID())
	assert.Equal(t, "perro", card.Fields[0].Content)
	assert.NoError(t, ValidateStructure(card.Fields))
}

func TestReconcile_LastWriteWinsWithinSubmission(t *testing.T) {
	schema := NewSchema(vocabTemplate())
	card := &flashcard.Card{}

	outcome, err := Reconcile(card, schema, []flashcard.FieldSubmission{
		sub("tf-word", "first"),
		sub("tf-word", "second"),
	}, nil)
	require.NoError(t, err)
	require.Len(t, card.Fields, 1)
	assert.Equal(t, "second", card.Fields[0].Content)
	assert.Equal(t, 1, outcome.Created)
	assert.Equal(t, 0, outcome.Updated)
}

func TestReconcile_PartialUpdate(t *testing.T) {
	tpl := vocabTemplate()
	schema := NewSchema(tpl)
	card := &flashcard.Card{
		ID: "card-1",
		Fields: []*flashcard.Field{
			{ID: "f1", CardID: "card-1", TemplateField: &tpl.Fields[0], Content: "perro"},
			{ID: "f2", CardID: "card-1", TemplateField: &tpl.Fields[1], Content: "dog"},
		},
	}

	outcome, err := Reconcile(card, schema, []flashcard.FieldSubmission{
		sub("tf-meaning", "hound"),
		sub("tf-note", "masculine"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, &Outcome{Created: 1, Updated: 1}, outcome)

	require.Len(t, card.Fields, 3)
	assert.Equal(t, "perro", card.Fields[0].Content)
	assert.Equal(t, "f2", card.Fields[1].ID)
	assert.Equal(t, "hound", card.Fields[1].Content)
	assert.Equal(t, "tf-note", card.Fields[2].TemplateFieldID())
	assert.Equal(t, "card-1", card.Fields[2].CardID)
	assert.Empty(t, card.Fields[2].ID)
}

func TestReconcile_UnknownTemplateField(t *testing.T) {
	schema := NewSchema(vocabTemplate())
	card := &flashcard.Card{}

	_, err := Reconcile(card, schema, []flashcard.FieldSubmission{
		sub("tf-word", "perro"),
		sub("tf-missing", "x"),
	}, nil)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "template field", nf.ResourceType)
	assert.Empty(t, card.Fields)
}

func TestReconcile_InvalidContentLeavesCardUntouched(t *testing.T) {
	tpl := vocabTemplate()
	schema := NewSchema(tpl)
	original := &flashcard.Field{ID: "f1", TemplateField: &tpl.Fields[0], Content: "perro"}
	card := &flashcard.Card{Fields: []*flashcard.Field{original}}

	_, err := Reconcile(card, schema, []flashcard.FieldSubmission{
		sub("tf-word", "gato"),
		sub("tf-pos", "adverb"),
	}, nil)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"noun", "verb", "adjective"}, ve.AllowedOptions)

	require.Len(t, card.Fields, 1)
	assert.Same(t, original, card.Fields[0])
	assert.Equal(t, "perro", original.Content)
}

func TestReconcile_CheckRunsAfterContentRule(t *testing.T) {
	schema := NewSchema(vocabTemplate())
	var checked []string
	check := func(tf *flashcard.TemplateField, content string) error {
		checked = append(checked, tf.ID+"="+content)
		if content == "perro" {
			return &domain.DuplicateError{Message: "dup", CardIDs: []string{"card-9"}}
		}
		return nil
	}

	card := &flashcard.Card{}
	_, err := Reconcile(card, schema, []flashcard.FieldSubmission{
		sub("tf-meaning", "dog"),
		sub("tf-word", "perro"),
	}, check)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Equal(t, []string{"tf-meaning=dog", "tf-word=perro"}, checked)
	assert.Empty(t, card.Fields)

	// invalid enum content never reaches the check
	checked = nil
	_, err = Reconcile(card, schema, []flashcard.FieldSubmission{sub("tf-pos", "adverb")}, check)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Empty(t, checked)
}

func TestBuildView(t *testing.T) {
	tpl := vocabTemplate()
	schema := NewSchema(tpl)
	card := &flashcard.Card{
		ID:         "card-1",
		DeckID:     "deck-1",
		TemplateID: tpl.ID,
		Fields: []*flashcard.Field{
			{ID: "f2", TemplateField: &tpl.Fields[1], Content: "dog"},
			{ID: "f1", TemplateField: &tpl.Fields[0], Content: "perro"},
		},
	}

	view := BuildView(card, schema)
	require.Len(t, view.Fields, len(tpl.Fields))
	assert.Equal(t, "f1", view.Fields[0].FieldID)
	assert.Equal(t, "perro", view.Fields[0].Content)
	assert.Equal(t, "dog", view.Fields[1].Content)
	assert.Empty(t, view.Fields[2].FieldID)
	assert.Empty(t, view.Fields[2].Content)
	assert.Equal(t, "Part of speech", view.Fields[2].TemplateField.Name)
}
