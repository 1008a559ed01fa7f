package flashcard

import (
	"context"

	"memoria/internal/domain/models/flashcard"
)

// TemplateRepository defines read access to card templates.
// Upsert exists for catalog seeding only.
type TemplateRepository interface {
	// GetByID retrieves a template with its fields ordered by position
	GetByID(ctx context.Context, id string) (*flashcard.Template, error)

	// List retrieves all templates with their fields
	List(ctx context.Context) ([]flashcard.Template, error)

	// Upsert inserts or replaces a template by name, keeping existing field ids stable
	Upsert(ctx context.Context, template *flashcard.Template) error
}
