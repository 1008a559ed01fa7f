package flashcard

import (
	"context"

	"memoria/internal/domain/models/flashcard"
)

// CardRepository defines data access operations for cards and their fields
type CardRepository interface {
	// GetByID retrieves a card with its fields and each field's template field
	GetByID(ctx context.Context, id string) (*flashcard.Card, error)

	// OwnerOf returns the owner of the deck holding the card
	OwnerOf(ctx context.Context, cardID string) (string, error)

	// ListByDeck retrieves all cards of a deck with their fields
	ListByDeck(ctx context.Context, deckID string) ([]*flashcard.Card, error)

	// FindIDsByContent returns ids of the owner's cards holding a field with exactly this content
	FindIDsByContent(ctx context.Context, ownerID, content string) ([]string, error)

	// DeckIDsWithCards returns the subset of deckIDs that own at least one card
	DeckIDsWithCards(ctx context.Context, deckIDs []string) ([]string, error)

	// Create persists a new card with its fields
	Create(ctx context.Context, card *flashcard.Card) error

	// Update persists the card's field list (insert new fields, update existing ones)
	Update(ctx context.Context, card *flashcard.Card) error

	// Delete deletes a card and its fields
	Delete(ctx context.Context, id string) error
}
