package flashcard

import "time"

// Field is a card's value for one template field.
// TemplateField is always populated when a card is loaded through the repository.
type Field struct {
	ID            string         `json:"id" db:"id"`
	CardID        string         `json:"card_id" db:"card_id"`
	TemplateField *TemplateField `json:"template_field"`
	Content       string         `json:"content" db:"content"`
}

// TemplateFieldID returns the id of the template field this value is bound to
func (f *Field) TemplateFieldID() string {
	if f.TemplateField == nil {
		return ""
	}
	return f.TemplateField.ID
}

type Card struct {
	ID         string    `json:"id" db:"id"`
	DeckID     string    `json:"deck_id" db:"deck_id"`
	TemplateID string    `json:"template_id" db:"template_id"` // Fixed at creation
	Fields     []*Field  `json:"fields"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// FieldByTemplateField returns the card's field bound to templateFieldID, or nil
func (c *Card) FieldByTemplateField(templateFieldID string) *Field {
	for _, f := range c.Fields {
		if f.TemplateFieldID() == templateFieldID {
			return f
		}
	}
	return nil
}

// FieldSubmission is one (template field, content) pair from a create/update request
type FieldSubmission struct {
	TemplateFieldID string `json:"template_field_id"`
	Content         string `json:"content"`
}

// CardView is a card with one entry per template field, blanks included
type CardView struct {
	ID         string      `json:"id"`
	DeckID     string      `json:"deck_id"`
	TemplateID string      `json:"template_id"`
	Fields     []FieldView `json:"fields"`
}

// FieldView pairs a template field with the card's value for it.
// FieldID is empty when the card holds no value for the template field yet.
type FieldView struct {
	FieldID       string        `json:"field_id,omitempty"`
	Content       string        `json:"content"`
	TemplateField TemplateField `json:"template_field"`
}

// DeckWithCards is a deck together with the cards it owns
type DeckWithCards struct {
	Deck  *Deck   `json:"deck"`
	Cards []*Card `json:"cards"`
}
