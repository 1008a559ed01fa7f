package flashcard

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"memoria/internal/config"
	"memoria/internal/domain"
	models "memoria/internal/domain/models/flashcard"
	"memoria/internal/domain/repositories"
	flashRepo "memoria/internal/domain/repositories/flashcard"
	flashSvc "memoria/internal/domain/services/flashcard"
	"memoria/internal/service/cardfields"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type cardService struct {
	cardRepo     flashRepo.CardRepository
	deckRepo     flashRepo.DeckRepository
	templateRepo flashRepo.TemplateRepository
	detector     *cardfields.DuplicateDetector
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewCardService creates a new card service
func NewCardService(
	cardRepo flashRepo.CardRepository,
	deckRepo flashRepo.DeckRepository,
	templateRepo flashRepo.TemplateRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) flashSvc.CardService {
	return &cardService{
		cardRepo:     cardRepo,
		deckRepo:     deckRepo,
		templateRepo: templateRepo,
		detector:     cardfields.NewDuplicateDetector(cardRepo),
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateCard reconciles the submitted fields against the template and stores
// the card. Content rules and duplicate checks run per field; the FRONT/BACK
// gate runs last.
func (s *cardService) CreateCard(ctx context.Context, req *flashSvc.CreateCardRequest) (*models.Card, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.DeckID, validation.Required),
		validation.Field(&req.TemplateID, validation.Required),
		validation.Field(&req.Fields, validation.Required.Error("at least one field is required"), validation.By(submissionRules)),
	); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	card := &models.Card{DeckID: req.DeckID, TemplateID: req.TemplateID}
	var outcome *cardfields.Outcome

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.deckRepo.LockOwner(txCtx, req.OwnerID); err != nil {
			return err
		}

		// Scopes the card to the caller's decks
		if _, err := s.deckRepo.GetByID(txCtx, req.OwnerID, req.DeckID); err != nil {
			return err
		}

		template, err := s.templateRepo.GetByID(txCtx, req.TemplateID)
		if err != nil {
			return err
		}

		outcome, err = s.reconcile(txCtx, card, cardfields.NewSchema(template), req.OwnerID, req.Fields, req.AllowDuplicate)
		if err != nil {
			return err
		}

		return s.cardRepo.Create(txCtx, card)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("card created",
		"id", card.ID,
		"deck_id", card.DeckID,
		"template_id", card.TemplateID,
		"fields", outcome.Created,
		"allow_duplicate", req.AllowDuplicate,
	)

	return card, nil
}

// UpdateCard merges the submitted fields into the card. Fields that are not
// submitted keep their content.
func (s *cardService) UpdateCard(ctx context.Context, req *flashSvc.UpdateCardRequest) (*models.Card, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.CardID, validation.Required),
		validation.Field(&req.Fields, validation.By(submissionRules)),
	); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	var (
		card    *models.Card
		outcome *cardfields.Outcome
	)
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.deckRepo.LockOwner(txCtx, req.OwnerID); err != nil {
			return err
		}

		var err error
		card, err = s.loadOwnedCard(txCtx, req.OwnerID, req.CardID)
		if err != nil {
			return err
		}

		template, err := s.templateRepo.GetByID(txCtx, card.TemplateID)
		if err != nil {
			return err
		}

		outcome, err = s.reconcile(txCtx, card, cardfields.NewSchema(template), req.OwnerID, req.Fields, req.AllowDuplicate)
		if err != nil {
			return err
		}

		return s.cardRepo.Update(txCtx, card)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("card updated",
		"id", card.ID,
		"deck_id", card.DeckID,
		"created_fields", outcome.Created,
		"updated_fields", outcome.Updated,
		"allow_duplicate", req.AllowDuplicate,
	)

	return card, nil
}

// GetCard returns the card paired with its template, blanks included
func (s *cardService) GetCard(ctx context.Context, ownerID, cardID string) (*models.CardView, error) {
	card, err := s.loadOwnedCard(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}

	template, err := s.templateRepo.GetByID(ctx, card.TemplateID)
	if err != nil {
		return nil, err
	}

	return cardfields.BuildView(card, cardfields.NewSchema(template)), nil
}

// ListDeckCards returns one of the owner's decks with its cards
func (s *cardService) ListDeckCards(ctx context.Context, ownerID, deckID string) (*models.DeckWithCards, error) {
	deck, err := s.deckRepo.GetByID(ctx, ownerID, deckID)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.ListByDeck(ctx, deck.ID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	return &models.DeckWithCards{Deck: deck, Cards: cards}, nil
}

// DeleteCard deletes one of the owner's cards
func (s *cardService) DeleteCard(ctx context.Context, ownerID, cardID string) error {
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.deckRepo.LockOwner(txCtx, ownerID); err != nil {
			return err
		}
		if _, err := s.loadOwnedCard(txCtx, ownerID, cardID); err != nil {
			return err
		}
		return s.cardRepo.Delete(txCtx, cardID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("card deleted", "id", cardID, "owner_id", ownerID)
	return nil
}

// reconcile applies submissions to card and enforces the structural gate.
// card is only modified when every step succeeds.
func (s *cardService) reconcile(
	ctx context.Context,
	card *models.Card,
	schema *cardfields.Schema,
	ownerID string,
	submissions []models.FieldSubmission,
	allowDuplicate bool,
) (*cardfields.Outcome, error) {
	check := func(_ *models.TemplateField, content string) error {
		return s.detector.Check(ctx, ownerID, content, card.ID, allowDuplicate)
	}

	staged := *card
	outcome, err := cardfields.Reconcile(&staged, schema, submissions, check)
	if err != nil {
		return nil, err
	}
	if err := cardfields.ValidateStructure(staged.Fields); err != nil {
		return nil, err
	}

	card.Fields = staged.Fields
	return outcome, nil
}

// loadOwnedCard hides cards in other owners' decks behind NotFound
func (s *cardService) loadOwnedCard(ctx context.Context, ownerID, cardID string) (*models.Card, error) {
	owner, err := s.cardRepo.OwnerOf(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if owner != ownerID {
		return nil, domain.NewNotFoundError("card", "card not found: %s", cardID)
	}
	return s.cardRepo.GetByID(ctx, cardID)
}

func submissionRules(value interface{}) error {
	subs, _ := value.([]models.FieldSubmission)
	if len(subs) > config.MaxFieldsPerSubmission {
		return fmt.Errorf("at most %d fields per request", config.MaxFieldsPerSubmission)
	}
	for i, sub := range subs {
		if sub.TemplateFieldID == "" {
			return fmt.Errorf("field %d: template_field_id is required", i)
		}
		if utf8.RuneCountInString(sub.Content) > config.MaxFieldContentLength {
			return fmt.Errorf("field %d: content exceeds %d characters", i, config.MaxFieldContentLength)
		}
	}
	return nil
}
