package flashcard

import (
	"context"
	"fmt"

	"memoria/internal/domain"
	models "memoria/internal/domain/models/flashcard"
	"memoria/internal/domain/repositories"
	flashRepo "memoria/internal/domain/repositories/flashcard"
	"memoria/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const deckColumns = `id::text, owner_id, parent_id::text, name, path, access_level, created_at, updated_at`

// PostgresDeckRepository implements the DeckRepository interface
type PostgresDeckRepository struct {
	pool *pgxpool.Pool
}

// NewDeckRepository creates a new deck repository
func NewDeckRepository(config *postgres.RepositoryConfig) flashRepo.DeckRepository {
	return &PostgresDeckRepository{pool: config.Pool}
}

// ListByOwner retrieves the owner's decks ordered by path
func (r *PostgresDeckRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Deck, error) {
	query := `SELECT ` + deckColumns + ` FROM decks WHERE owner_id = $1 ORDER BY path`

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}

	decks, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Deck])
	if err != nil {
		return nil, fmt.Errorf("scan decks: %w", err)
	}
	return decks, nil
}

// GetByPath retrieves a deck by exact path
func (r *PostgresDeckRepository) GetByPath(ctx context.Context, ownerID, path string) (*models.Deck, error) {
	query := `SELECT ` + deckColumns + ` FROM decks WHERE owner_id = $1 AND path = $2`
	return r.getOne(ctx, query, path, ownerID, path)
}

// GetByID retrieves a deck by ID within the owner's decks
func (r *PostgresDeckRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Deck, error) {
	query := `SELECT ` + deckColumns + ` FROM decks WHERE id = $1 AND owner_id = $2`
	return r.getOne(ctx, query, id, id, ownerID)
}

func (r *PostgresDeckRepository) getOne(ctx context.Context, query, ref string, args ...any) (*models.Deck, error) {
	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		if postgres.IsPgInvalidInputError(err) {
			return nil, domain.NewNotFoundError("deck", "deck not found: %s", ref)
		}
		return nil, fmt.Errorf("get deck: %w", err)
	}

	deck, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Deck])
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidInputError(err) {
			return nil, domain.NewNotFoundError("deck", "deck not found: %s", ref)
		}
		return nil, fmt.Errorf("get deck: %w", err)
	}
	return deck, nil
}

// Create inserts the deck and fills in its ID and timestamps
func (r *PostgresDeckRepository) Create(ctx context.Context, deck *models.Deck) error {
	query := `
		INSERT INTO decks (owner_id, parent_id, name, path, access_level)
		VALUES ($1, $2::uuid, $3, $4, $5)
		RETURNING id::text, created_at, updated_at
	`

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		deck.OwnerID,
		deck.ParentID,
		deck.Name,
		deck.Path,
		string(deck.AccessLevel),
	).Scan(&deck.ID, &deck.CreatedAt, &deck.UpdatedAt)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			conflict := &domain.ConflictError{
				Message:      fmt.Sprintf("path already exists: %s", deck.Path),
				ResourceType: "deck",
			}
			if existing, getErr := r.GetByPath(ctx, deck.OwnerID, deck.Path); getErr == nil {
				conflict.ResourceID = existing.ID
			}
			return conflict
		}
		if postgres.IsPgForeignKeyError(err) {
			return domain.NewNotFoundError("deck", "parent deck not found")
		}
		return fmt.Errorf("create deck: %w", err)
	}

	return nil
}

// UpdatePaths applies a rename batch with a single UPDATE joined against the
// unnested (id, name, path) arrays
func (r *PostgresDeckRepository) UpdatePaths(ctx context.Context, ownerID string, updates []models.DeckPathUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	ids := make([]string, len(updates))
	names := make([]string, len(updates))
	paths := make([]string, len(updates))
	for i, u := range updates {
		ids[i], names[i], paths[i] = u.ID, u.Name, u.Path
	}

	query := `
		UPDATE decks AS d
		SET name = u.name, path = u.path, updated_at = now()
		FROM unnest($2::text[], $3::text[], $4::text[]) AS u(id, name, path)
		WHERE d.id = u.id::uuid AND d.owner_id = $1
	`

	result, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, ownerID, ids, names, paths)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "a renamed path collides with an existing deck",
				ResourceType: "deck",
				ResourceID:   updates[0].ID,
			}
		}
		return fmt.Errorf("update deck paths: %w", err)
	}

	if int(result.RowsAffected()) != len(updates) {
		return domain.NewNotFoundError("deck", "deck not found while updating %d paths (updated %d)", len(updates), result.RowsAffected())
	}
	return nil
}

// DeleteBatch deletes the given decks; their cards and fields cascade
func (r *PostgresDeckRepository) DeleteBatch(ctx context.Context, ownerID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM decks WHERE owner_id = $1 AND id = ANY($2::text[]::uuid[])`
	if _, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, ownerID, ids); err != nil {
		return fmt.Errorf("delete decks: %w", err)
	}
	return nil
}

// LockOwner takes a transaction-scoped advisory lock keyed by the owner id
func (r *PostgresDeckRepository) LockOwner(ctx context.Context, ownerID string) error {
	if !repositories.InTx(ctx) {
		return fmt.Errorf("lock owner %s: no transaction in context", ownerID)
	}

	if _, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, ownerID); err != nil {
		return fmt.Errorf("lock owner: %w", err)
	}
	return nil
}
