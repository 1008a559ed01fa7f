package flashcard

import (
	"context"

	"memoria/internal/domain/models/flashcard"
)

// CardService handles card business logic
type CardService interface {
	// CreateCard creates a card in one of the owner's decks
	CreateCard(ctx context.Context, req *CreateCardRequest) (*flashcard.Card, error)

	// UpdateCard reconciles submitted fields into an existing card
	UpdateCard(ctx context.Context, req *UpdateCardRequest) (*flashcard.Card, error)

	// GetCard returns the card with one entry per template field (blanks included)
	GetCard(ctx context.Context, ownerID, cardID string) (*flashcard.CardView, error)

	// ListDeckCards returns a deck with its cards
	ListDeckCards(ctx context.Context, ownerID, deckID string) (*flashcard.DeckWithCards, error)

	// DeleteCard deletes a card
	DeleteCard(ctx context.Context, ownerID, cardID string) error
}

// CreateCardRequest represents a card creation request
type CreateCardRequest struct {
	OwnerID        string                      `json:"-"`
	DeckID         string                      `json:"deck_id"`
	TemplateID     string                      `json:"template_id"`
	Fields         []flashcard.FieldSubmission `json:"fields"`
	AllowDuplicate bool                        `json:"-"`
}

// UpdateCardRequest represents a card update request (partial: unsubmitted fields are kept)
type UpdateCardRequest struct {
	OwnerID        string                      `json:"-"`
	CardID         string                      `json:"-"`
	Fields         []flashcard.FieldSubmission `json:"fields"`
	AllowDuplicate bool                        `json:"-"`
}
