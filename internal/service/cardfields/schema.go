package cardfields

import (
	"memoria/internal/domain/models/flashcard"
)

// Schema is a read-only view of a template's ordered field definitions
type Schema struct {
	templateID string
	fields     []flashcard.TemplateField
	byID       map[string]*flashcard.TemplateField
}

// NewSchema indexes the template's fields by ID
func NewSchema(template *flashcard.Template) *Schema {
	s := &Schema{
		templateID: template.ID,
		fields:     template.Fields,
		byID:       make(map[string]*flashcard.TemplateField, len(template.Fields)),
	}
	for i := range s.fields {
		s.byID[s.fields[i].ID] = &s.fields[i]
	}
	return s
}

// TemplateID returns the ID of the underlying template
func (s *Schema) TemplateID() string {
	return s.templateID
}

// Field looks up a template field by ID
func (s *Schema) Field(id string) (*flashcard.TemplateField, bool) {
	tf, ok := s.byID[id]
	return tf, ok
}

// Fields returns the field definitions in template order
func (s *Schema) Fields() []flashcard.TemplateField {
	return s.fields
}
