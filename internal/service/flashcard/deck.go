package flashcard

import (
	"context"
	"fmt"
	"log/slog"

	"memoria/internal/config"
	"memoria/internal/domain"
	models "memoria/internal/domain/models/flashcard"
	"memoria/internal/domain/repositories"
	flashRepo "memoria/internal/domain/repositories/flashcard"
	flashSvc "memoria/internal/domain/services/flashcard"
	"memoria/internal/service/decktree"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type deckService struct {
	deckRepo  flashRepo.DeckRepository
	cardRepo  flashRepo.CardRepository
	engine    *decktree.Engine
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewDeckService creates a new deck service
func NewDeckService(
	deckRepo flashRepo.DeckRepository,
	cardRepo flashRepo.CardRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) flashSvc.DeckService {
	return &deckService{
		deckRepo: deckRepo,
		cardRepo: cardRepo,
		engine: decktree.NewEngine(decktree.Limits{
			MaxNameLength: config.MaxDeckNameLength,
			MaxPathLength: config.MaxDeckPathLength,
		}),
		txManager: txManager,
		logger:    logger,
	}
}

// CreateDeck creates a deck under the deck addressed by req.ParentPath.
// The owner lock is taken before the owner's decks are read, so the
// uniqueness check and the insert see the same tree.
func (s *deckService) CreateDeck(ctx context.Context, req *flashSvc.CreateDeckRequest) (*models.Deck, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	parentPath := ""
	if req.ParentPath != nil {
		parentPath = *req.ParentPath
	}

	var deck *models.Deck
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.deckRepo.LockOwner(txCtx, req.OwnerID); err != nil {
			return err
		}

		decks, err := s.deckRepo.ListByOwner(txCtx, req.OwnerID)
		if err != nil {
			return fmt.Errorf("list decks: %w", err)
		}

		deck, err = s.engine.Create(req.OwnerID, decks, parentPath, req.Name, req.AccessLevel)
		if err != nil {
			return err
		}

		return s.deckRepo.Create(txCtx, deck)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("deck created",
		"id", deck.ID,
		"owner_id", deck.OwnerID,
		"path", deck.Path,
		"access_level", deck.AccessLevel,
	)

	return deck, nil
}

// GetDeck retrieves one of the owner's decks
func (s *deckService) GetDeck(ctx context.Context, ownerID, deckID string) (*models.Deck, error) {
	return s.deckRepo.GetByID(ctx, ownerID, deckID)
}

// GetDeckTree builds the owner's forest from one flat read
func (s *deckService) GetDeckTree(ctx context.Context, ownerID string) ([]*models.DeckNode, error) {
	decks, err := s.deckRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}

	return decktree.NewTreeIndex(decks).Forest(), nil
}

// RenameDeck renames a deck and rewrites the path of every descendant in the
// same transaction
func (s *deckService) RenameDeck(ctx context.Context, req *flashSvc.RenameDeckRequest) (*models.Deck, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.DeckID, validation.Required),
	); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	var (
		deck *models.Deck
		plan *decktree.RenamePlan
	)
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.deckRepo.LockOwner(txCtx, req.OwnerID); err != nil {
			return err
		}

		var err error
		deck, err = s.deckRepo.GetByID(txCtx, req.OwnerID, req.DeckID)
		if err != nil {
			return err
		}

		decks, err := s.deckRepo.ListByOwner(txCtx, req.OwnerID)
		if err != nil {
			return fmt.Errorf("list decks: %w", err)
		}

		plan, err = s.engine.Rename(deck, req.Name, decks)
		if err != nil {
			return err
		}

		return s.deckRepo.UpdatePaths(txCtx, req.OwnerID, plan.Updates())
	})
	if err != nil {
		return nil, err
	}

	oldPath := deck.Path
	deck.Name = plan.Target.Name
	deck.Path = plan.Target.Path

	s.logger.Info("deck renamed",
		"id", deck.ID,
		"owner_id", deck.OwnerID,
		"old_path", oldPath,
		"new_path", deck.Path,
	)
	s.logger.Debug("rename cascade", "id", deck.ID, "descendants", len(plan.Descendants))

	return deck, nil
}

// DeleteDeck deletes a deck and its whole subtree. Without force, a subtree
// holding any card is refused.
func (s *deckService) DeleteDeck(ctx context.Context, ownerID, deckID string, force bool) ([]string, error) {
	var deleted []string
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.deckRepo.LockOwner(txCtx, ownerID); err != nil {
			return err
		}

		target, err := s.deckRepo.GetByID(txCtx, ownerID, deckID)
		if err != nil {
			return err
		}

		decks, err := s.deckRepo.ListByOwner(txCtx, ownerID)
		if err != nil {
			return fmt.Errorf("list decks: %w", err)
		}

		nonEmpty := map[string]bool{}
		if !force {
			ix := decktree.NewTreeIndex(decks)
			subtree := ix.CollectSubtree(target)
			ids := make([]string, 0, len(subtree))
			for _, d := range subtree {
				ids = append(ids, d.ID)
			}
			withCards, err := s.cardRepo.DeckIDsWithCards(txCtx, ids)
			if err != nil {
				return fmt.Errorf("check decks for cards: %w", err)
			}
			for _, id := range withCards {
				nonEmpty[id] = true
			}
		}

		deleted, err = s.engine.Delete(target, decks, nonEmpty, force)
		if err != nil {
			return err
		}

		return s.deckRepo.DeleteBatch(txCtx, ownerID, deleted)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("decks deleted",
		"root_id", deckID,
		"owner_id", ownerID,
		"count", len(deleted),
		"force", force,
	)

	return deleted, nil
}

func (s *deckService) validateCreateRequest(req *flashSvc.CreateDeckRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.ParentPath, validation.Length(0, config.MaxDeckPathLength)), // blank = root
		validation.Field(&req.AccessLevel, validation.By(validAccessLevel)),
	)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}

func validAccessLevel(value interface{}) error {
	level, _ := value.(models.AccessLevel)
	if level == "" || level.Valid() {
		return nil
	}
	return fmt.Errorf("must be one of %s, %s, %s or %s",
		models.AccessPrivate, models.AccessShared, models.AccessPublic, models.AccessDefault)
}
