package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Create Supplies Table")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.Contains(t, mf.UpPath, "create_supplies_table.up.sql")
	assert.Contains(t, mf.DownPath, "create_supplies_table.down.sql")

	for _, path := range []string{mf.UpPath, mf.DownPath} {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Create Supplies Table")
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Create Supplies Table", "create_supplies_table"},
		{"add-order-status", "add_order_status"},
		{"weird!!chars##here", "weirdcharshere"},
		{"trailing space ", "trailing_space"},
		{"double  spaces", "double_spaces"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sanitizeName(tt.input))
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	_, err := CreateMigration(dir, "first")
	require.NoError(t, err)

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Contains(t, migrations[0], "first")
}

func TestListMigrationsMissingDir(t *testing.T) {
	migrations, err := ListMigrations("/nonexistent/migrations")
	require.NoError(t, err)
	assert.Empty(t, migrations)
}
