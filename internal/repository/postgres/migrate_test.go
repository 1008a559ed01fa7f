package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(Migrations(), "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "00001_init.sql", names[0])

	for _, name := range names {
		body, err := fs.ReadFile(Migrations(), name)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), "%s has no Up section", name)
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), "%s has no Down section", name)
	}
}

func TestInitMigrationDefinesConstraints(t *testing.T) {
	body, err := fs.ReadFile(Migrations(), "00001_init.sql")
	require.NoError(t, err)
	sql := string(body)

	for _, want := range []string{
		"decks_owner_path_key UNIQUE (owner_id, path) DEFERRABLE",
		"REFERENCES decks (id) ON DELETE CASCADE",
		"REFERENCES cards (id) ON DELETE CASCADE",
		"fields_card_template_field_key",
	} {
		assert.Contains(t, sql, want)
	}
}
