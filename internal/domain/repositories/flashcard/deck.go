package flashcard

import (
	"context"

	"memoria/internal/domain/models/flashcard"
)

// DeckRepository defines data access operations for decks
type DeckRepository interface {
	// ListByOwner retrieves all decks of an owner (flat list)
	ListByOwner(ctx context.Context, ownerID string) ([]flashcard.Deck, error)

	// GetByPath retrieves a deck by exact path within an owner's decks
	GetByPath(ctx context.Context, ownerID, path string) (*flashcard.Deck, error)

	// GetByID retrieves a deck by ID within an owner's decks
	GetByID(ctx context.Context, ownerID, id string) (*flashcard.Deck, error)

	// Create persists a new deck and assigns its ID and timestamps
	Create(ctx context.Context, deck *flashcard.Deck) error

	// UpdatePaths persists a rename batch (name and path per deck) in one statement
	UpdatePaths(ctx context.Context, ownerID string, updates []flashcard.DeckPathUpdate) error

	// DeleteBatch deletes the given decks; their cards and fields cascade
	DeleteBatch(ctx context.Context, ownerID string, ids []string) error

	// LockOwner serializes tree mutations of one owner until the surrounding transaction ends
	LockOwner(ctx context.Context, ownerID string) error
}
