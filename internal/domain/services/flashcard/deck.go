package flashcard

import (
	"context"

	"memoria/internal/domain/models/flashcard"
)

// DeckService handles deck tree business logic
type DeckService interface {
	// CreateDeck creates a deck under the parent addressed by ParentPath (root when blank)
	CreateDeck(ctx context.Context, req *CreateDeckRequest) (*flashcard.Deck, error)

	// GetDeck retrieves one of the owner's decks
	GetDeck(ctx context.Context, ownerID, deckID string) (*flashcard.Deck, error)

	// GetDeckTree returns the owner's decks as a forest of root nodes
	GetDeckTree(ctx context.Context, ownerID string) ([]*flashcard.DeckNode, error)

	// RenameDeck renames a deck and cascades the new path to every descendant
	RenameDeck(ctx context.Context, req *RenameDeckRequest) (*flashcard.Deck, error)

	// DeleteDeck deletes a deck with its whole subtree and returns the deleted ids
	DeleteDeck(ctx context.Context, ownerID, deckID string, force bool) ([]string, error)
}

// CreateDeckRequest represents a deck creation request
type CreateDeckRequest struct {
	OwnerID     string                `json:"-"`
	Name        string                `json:"name"`
	ParentPath  *string               `json:"path,omitempty"`         // Parent deck path (nil or blank for root)
	AccessLevel flashcard.AccessLevel `json:"access_level,omitempty"` // Empty = PRIVATE, DEFAULT = inherit
}

// RenameDeckRequest represents a deck rename request
type RenameDeckRequest struct {
	OwnerID string `json:"-"`
	DeckID  string `json:"-"`
	Name    string `json:"name"`
}
