package flashcard

import (
	"context"
	"fmt"

	"memoria/internal/domain"
	models "memoria/internal/domain/models/flashcard"
	flashRepo "memoria/internal/domain/repositories/flashcard"
	"memoria/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCardRepository implements the CardRepository interface
type PostgresCardRepository struct {
	pool *pgxpool.Pool
}

// NewCardRepository creates a new card repository
func NewCardRepository(config *postgres.RepositoryConfig) flashRepo.CardRepository {
	return &PostgresCardRepository{pool: config.Pool}
}

// GetByID retrieves a card with its fields
func (r *PostgresCardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	query := `
		SELECT id::text, deck_id::text, template_id::text, created_at, updated_at
		FROM cards
		WHERE id = $1
	`

	executor := postgres.GetExecutor(ctx, r.pool)
	var card models.Card
	err := executor.QueryRow(ctx, query, id).Scan(
		&card.ID,
		&card.DeckID,
		&card.TemplateID,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidInputError(err) {
			return nil, domain.NewNotFoundError("card", "card not found: %s", id)
		}
		return nil, fmt.Errorf("get card: %w", err)
	}

	fields, err := loadFields(ctx, executor, []string{card.ID})
	if err != nil {
		return nil, err
	}
	card.Fields = fields[card.ID]

	return &card, nil
}

// OwnerOf returns the owner of the deck holding the card
func (r *PostgresCardRepository) OwnerOf(ctx context.Context, cardID string) (string, error) {
	query := `
		SELECT d.owner_id
		FROM cards c
		JOIN decks d ON d.id = c.deck_id
		WHERE c.id = $1
	`

	var ownerID string
	err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, cardID).Scan(&ownerID)
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidInputError(err) {
			return "", domain.NewNotFoundError("card", "card not found: %s", cardID)
		}
		return "", fmt.Errorf("get card owner: %w", err)
	}
	return ownerID, nil
}

// ListByDeck retrieves the deck's cards, oldest first, with their fields
func (r *PostgresCardRepository) ListByDeck(ctx context.Context, deckID string) ([]*models.Card, error) {
	query := `
		SELECT id::text, deck_id::text, template_id::text, created_at, updated_at
		FROM cards
		WHERE deck_id = $1
		ORDER BY created_at, id
	`

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, deckID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	cards, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Card, error) {
		var c models.Card
		err := row.Scan(&c.ID, &c.DeckID, &c.TemplateID, &c.CreatedAt, &c.UpdatedAt)
		return &c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan cards: %w", err)
	}

	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	fields, err := loadFields(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range cards {
		c.Fields = fields[c.ID]
	}

	return cards, nil
}

// FindIDsByContent returns the owner's cards holding a field with exactly content
func (r *PostgresCardRepository) FindIDsByContent(ctx context.Context, ownerID, content string) ([]string, error) {
	query := `
		SELECT DISTINCT c.id::text
		FROM fields f
		JOIN cards c ON c.id = f.card_id
		JOIN decks d ON d.id = c.deck_id
		WHERE d.owner_id = $1 AND f.content = $2
		ORDER BY 1
	`

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, ownerID, content)
	if err != nil {
		return nil, fmt.Errorf("find cards by content: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan card ids: %w", err)
	}
	return ids, nil
}

// DeckIDsWithCards returns the subset of deckIDs holding at least one card
func (r *PostgresCardRepository) DeckIDsWithCards(ctx context.Context, deckIDs []string) ([]string, error) {
	if len(deckIDs) == 0 {
		return nil, nil
	}

	query := `SELECT DISTINCT deck_id::text FROM cards WHERE deck_id = ANY($1::text[]::uuid[])`

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, deckIDs)
	if err != nil {
		return nil, fmt.Errorf("find non-empty decks: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan deck ids: %w", err)
	}
	return ids, nil
}

// Create inserts the card and all of its fields
func (r *PostgresCardRepository) Create(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (deck_id, template_id)
		VALUES ($1, $2)
		RETURNING id::text, created_at, updated_at
	`

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, card.DeckID, card.TemplateID).
		Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return domain.NewNotFoundError("deck", "deck or template not found")
		}
		return fmt.Errorf("create card: %w", err)
	}

	for _, f := range card.Fields {
		f.CardID = card.ID
	}
	return r.writeFields(ctx, card.Fields)
}

// Update touches the card and writes its fields: existing ones by id, new ones inserted
func (r *PostgresCardRepository) Update(ctx context.Context, card *models.Card) error {
	query := `UPDATE cards SET updated_at = now() WHERE id = $1 RETURNING updated_at`

	err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, card.ID).Scan(&card.UpdatedAt)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return domain.NewNotFoundError("card", "card not found: %s", card.ID)
		}
		return fmt.Errorf("update card: %w", err)
	}

	for _, f := range card.Fields {
		f.CardID = card.ID
	}
	return r.writeFields(ctx, card.Fields)
}

// writeFields sends every field write in one batch round trip
func (r *PostgresCardRepository) writeFields(ctx context.Context, fields []*models.Field) error {
	if len(fields) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, f := range fields {
		if f.ID == "" {
			batch.Queue(`
				INSERT INTO fields (card_id, template_field_id, content)
				VALUES ($1, $2, $3)
				RETURNING id::text
			`, f.CardID, f.TemplateFieldID(), f.Content)
			continue
		}
		batch.Queue(`UPDATE fields SET content = $2 WHERE id = $1 RETURNING id::text`, f.ID, f.Content)
	}

	results := postgres.GetExecutor(ctx, r.pool).SendBatch(ctx, batch)
	defer results.Close()

	for _, f := range fields {
		if err := results.QueryRow().Scan(&f.ID); err != nil {
			if postgres.IsPgDuplicateError(err) {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("card already has a value for template field %s", f.TemplateFieldID()),
					ResourceType: "field",
					ResourceID:   f.CardID,
				}
			}
			if postgres.IsPgNoRowsError(err) {
				return domain.NewNotFoundError("field", "field not found: %s", f.ID)
			}
			return fmt.Errorf("write field: %w", err)
		}
	}

	return results.Close()
}

// Delete deletes a card; its fields cascade
func (r *PostgresCardRepository) Delete(ctx context.Context, id string) error {
	result, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFoundError("card", "card not found: %s", id)
	}
	return nil
}
