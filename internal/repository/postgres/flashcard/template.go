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

// PostgresTemplateRepository implements the TemplateRepository interface
type PostgresTemplateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(config *postgres.RepositoryConfig) flashRepo.TemplateRepository {
	return &PostgresTemplateRepository{pool: config.Pool}
}

// GetByID retrieves a template with its fields ordered by position
func (r *PostgresTemplateRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	query := `SELECT id::text, name, description, created_at FROM templates WHERE id = $1`

	executor := postgres.GetExecutor(ctx, r.pool)
	var t models.Template
	err := executor.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt)
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidInputError(err) {
			return nil, domain.NewNotFoundError("template", "template not found: %s", id)
		}
		return nil, fmt.Errorf("get template: %w", err)
	}

	fields, err := r.loadTemplateFields(ctx, []string{t.ID})
	if err != nil {
		return nil, err
	}
	t.Fields = fields[t.ID]

	return &t, nil
}

// List retrieves every template ordered by name
func (r *PostgresTemplateRepository) List(ctx context.Context) ([]models.Template, error) {
	query := `SELECT id::text, name, description, created_at FROM templates ORDER BY name`

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	templates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Template, error) {
		var t models.Template
		err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan templates: %w", err)
	}

	ids := make([]string, len(templates))
	for i := range templates {
		ids[i] = templates[i].ID
	}
	fields, err := r.loadTemplateFields(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		templates[i].Fields = fields[templates[i].ID]
	}

	return templates, nil
}

// Upsert inserts or updates a template by name. Fields are matched by name so
// their ids, and therefore existing card fields, stay valid across reseeds.
func (r *PostgresTemplateRepository) Upsert(ctx context.Context, t *models.Template) error {
	query := `
		INSERT INTO templates (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		RETURNING id::text, created_at
	`

	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, t.Name, t.Description).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("upsert template: %w", err)
	}

	if len(t.Fields) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range t.Fields {
		f := &t.Fields[i]
		f.TemplateID = t.ID
		options := f.Type.Options
		if options == nil {
			options = []string{}
		}
		batch.Queue(`
			INSERT INTO template_fields (template_id, name, role, kind, options, position)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (template_id, name) DO UPDATE
			SET role = EXCLUDED.role, kind = EXCLUDED.kind, options = EXCLUDED.options, position = EXCLUDED.position
			RETURNING id::text
		`, t.ID, f.Name, string(f.Role), string(f.Type.Kind), options, f.Position)
	}

	results := executor.SendBatch(ctx, batch)
	defer results.Close()

	for i := range t.Fields {
		if err := results.QueryRow().Scan(&t.Fields[i].ID); err != nil {
			return fmt.Errorf("upsert template field %q: %w", t.Fields[i].Name, err)
		}
	}

	return results.Close()
}

func (r *PostgresTemplateRepository) loadTemplateFields(ctx context.Context, templateIDs []string) (map[string][]models.TemplateField, error) {
	out := make(map[string][]models.TemplateField, len(templateIDs))
	if len(templateIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT ` + templateFieldColumns + `
		FROM template_fields tf
		WHERE tf.template_id = ANY($1::text[]::uuid[])
		ORDER BY tf.template_id, tf.position, tf.name
	`

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, templateIDs)
	if err != nil {
		return nil, fmt.Errorf("query template fields: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		tf, err := scanTemplateField(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template field: %w", err)
		}
		out[tf.TemplateID] = append(out[tf.TemplateID], *tf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template fields: %w", err)
	}
	return out, nil
}
