package flashcard

import (
	"context"

	"memoria/internal/domain/models/flashcard"
)

// TemplateService exposes the read-only template catalog
type TemplateService interface {
	// ListTemplates returns every template with its ordered fields
	ListTemplates(ctx context.Context) ([]flashcard.Template, error)

	// GetTemplate returns one template
	GetTemplate(ctx context.Context, id string) (*flashcard.Template, error)

	// SeedCatalog upserts the given templates (admin tooling only)
	SeedCatalog(ctx context.Context, templates []flashcard.Template) error
}
