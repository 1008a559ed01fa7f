package flashcard

import (
	"context"
	"fmt"

	models "memoria/internal/domain/models/flashcard"
	"memoria/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
)

const templateFieldColumns = `tf.id::text, tf.template_id::text, tf.name, tf.role, tf.kind, tf.options, tf.position`

// scanTemplateField reads templateFieldColumns from the current row position,
// after any leading columns already bound in dest
func scanTemplateField(row pgx.Row, dest ...any) (*models.TemplateField, error) {
	var (
		tf   models.TemplateField
		role string
		kind string
	)
	dest = append(dest, &tf.ID, &tf.TemplateID, &tf.Name, &role, &kind, &tf.Type.Options, &tf.Position)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	tf.Role = models.FieldRole(role)
	tf.Type.Kind = models.FieldKind(kind)
	if !tf.Type.HasOptions() {
		tf.Type.Options = nil
	}
	return &tf, nil
}

// loadFields returns the fields of every given card, keyed by card id and
// ordered by template position
func loadFields(ctx context.Context, db repositories.DBTX, cardIDs []string) (map[string][]*models.Field, error) {
	out := make(map[string][]*models.Field, len(cardIDs))
	if len(cardIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT f.id::text, f.card_id::text, f.content, ` + templateFieldColumns + `
		FROM fields f
		JOIN template_fields tf ON tf.id = f.template_field_id
		WHERE f.card_id = ANY($1::text[]::uuid[])
		ORDER BY f.card_id, tf.position
	`

	rows, err := db.Query(ctx, query, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("query fields: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f models.Field
		tf, err := scanTemplateField(rows, &f.ID, &f.CardID, &f.Content)
		if err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		f.TemplateField = tf
		out[f.CardID] = append(out[f.CardID], &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fields: %w", err)
	}
	return out, nil
}
