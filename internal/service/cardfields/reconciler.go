package cardfields

import (
	"memoria/internal/domain"
	"memoria/internal/domain/models/flashcard"
)

// FieldCheck runs after a submission's content passed its type rule and before
// it is applied. Duplicate detection plugs in here.
type FieldCheck func(tf *flashcard.TemplateField, content string) error

// Outcome counts what a reconciliation changed
type Outcome struct {
	Created int
	Updated int
}

// Reconcile merges submissions into the card's fields:
//   - unknown template field → NotFound
//   - field already on the card → content updated in place
//   - otherwise → new field appended
//
// Submissions apply in order, so a repeated template field keeps the last content.
// Fields absent from the submission are left untouched. On error the card is
// not modified.
func Reconcile(card *flashcard.Card, schema *Schema, submissions []flashcard.FieldSubmission, check FieldCheck) (*Outcome, error) {
	// Work on copies so a failure leaves the card as it was
	fields := make([]*flashcard.Field, 0, len(card.Fields)+len(submissions))
	byTemplateField := make(map[string]*flashcard.Field, len(card.Fields))
	for _, f := range card.Fields {
		cp := *f
		fields = append(fields, &cp)
		if id := cp.TemplateFieldID(); id != "" {
			byTemplateField[id] = &cp
		}
	}

	outcome := &Outcome{}
	touched := make(map[string]bool)

	for _, sub := range submissions {
		tf, ok := schema.Field(sub.TemplateFieldID)
		if !ok {
			return nil, domain.NewNotFoundError("template field", "template field not found: %s", sub.TemplateFieldID)
		}

		if err := ValidateContent(tf, sub.Content); err != nil {
			return nil, err
		}
		if check != nil {
			if err := check(tf, sub.Content); err != nil {
				return nil, err
			}
		}

		if existing, ok := byTemplateField[tf.ID]; ok {
			existing.Content = sub.Content
			if !touched[tf.ID] {
				outcome.Updated++
				touched[tf.ID] = true
			}
			continue
		}

		field := &flashcard.Field{
			CardID:        card.ID,
			TemplateField: tf,
			Content:       sub.Content,
		}
		fields = append(fields, field)
		byTemplateField[tf.ID] = field
		touched[tf.ID] = true
		outcome.Created++
	}

	card.Fields = fields
	return outcome, nil
}

// BuildView pairs every template field with the card's value, blank when missing
func BuildView(card *flashcard.Card, schema *Schema) *flashcard.CardView {
	view := &flashcard.CardView{
		ID:         card.ID,
		DeckID:     card.DeckID,
		TemplateID: card.TemplateID,
		Fields:     make([]flashcard.FieldView, 0, len(schema.Fields())),
	}
	for _, tf := range schema.Fields() {
		fv := flashcard.FieldView{TemplateField: tf}
		if f := card.FieldByTemplateField(tf.ID); f != nil {
			fv.FieldID = f.ID
			fv.Content = f.Content
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}
