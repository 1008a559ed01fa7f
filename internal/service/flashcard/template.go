package flashcard

import (
	"context"
	"fmt"
	"log/slog"

	"memoria/internal/domain"
	models "memoria/internal/domain/models/flashcard"
	"memoria/internal/domain/repositories"
	flashRepo "memoria/internal/domain/repositories/flashcard"
	flashSvc "memoria/internal/domain/services/flashcard"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type templateService struct {
	templateRepo flashRepo.TemplateRepository
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewTemplateService creates a new template service
func NewTemplateService(
	templateRepo flashRepo.TemplateRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) flashSvc.TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

func (s *templateService) ListTemplates(ctx context.Context) ([]models.Template, error) {
	return s.templateRepo.List(ctx)
}

func (s *templateService) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	return s.templateRepo.GetByID(ctx, id)
}

// SeedCatalog upserts every template in one transaction
func (s *templateService) SeedCatalog(ctx context.Context, templates []models.Template) error {
	for i := range templates {
		if err := validateTemplate(&templates[i]); err != nil {
			return err
		}
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for i := range templates {
			if err := s.templateRepo.Upsert(txCtx, &templates[i]); err != nil {
				return fmt.Errorf("upsert template %q: %w", templates[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("template catalog seeded", "count", len(templates))
	return nil
}

// validateTemplate rejects catalog entries no card could ever satisfy
func validateTemplate(t *models.Template) error {
	err := validation.ValidateStruct(t,
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.Fields, validation.Required),
	)
	if err != nil {
		return &domain.ValidationError{Message: fmt.Sprintf("template %q: %v", t.Name, err)}
	}

	var front, back bool
	for _, f := range t.Fields {
		switch f.Type.Kind {
		case models.KindText, models.KindEnum, models.KindMultiTag:
		default:
			return domain.NewValidationError("template %q: field %q has unknown type %q", t.Name, f.Name, f.Type.Kind)
		}
		if f.Type.HasOptions() && len(f.Type.Options) == 0 {
			return domain.NewValidationError("template %q: field %q needs options", t.Name, f.Name)
		}
		front = front || f.Role == models.RoleFront
		back = back || f.Role == models.RoleBack
	}
	if !front || !back {
		return domain.NewValidationError("template %q must define a FRONT and a BACK field", t.Name)
	}
	return nil
}
