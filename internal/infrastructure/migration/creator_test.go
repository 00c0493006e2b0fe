package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/laiyolobaru/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add writers table", "add_writers_table"},
		{"Add-Writers-Table", "add_writers_table"},
		{"ADD_WRITERS_TABLE", "add_writers_table"},
		{"add__writers__table", "add_writers_table"},
		{"Add Dusun 4", "add_dusun_4"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_NumbersSequentially(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add writers table", "Writers with dusun")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, "000001_add_writers_table.up.sql", filepath.Base(first.UpPath))
	assert.True(t, strings.HasSuffix(first.DownPath, "000001_add_writers_table.down.sql"))

	second, err := CreateMigration(dir, "add index", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	upContent, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "add writers table")
	assert.Contains(t, string(upContent), "Writers with dusun")

	downContent, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(downContent), "Rollback")
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(nested, "init", "")
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{
		"000002_add_articles.up.sql",
		"000002_add_articles.down.sql",
		"000001_init_schema.up.sql",
		"000001_init_schema.down.sql",
		"README.md",
		"notaversion_x.up.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- test"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000009_dir.up.sql"), 0o755))

	entries, err := ListMigrations(os.DirFS(dir))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Version: 1, Name: "000001_init_schema"},
		{Version: 2, Name: "000002_add_articles"},
	}, entries)
}

func TestListMigrations_NonexistentDirectory(t *testing.T) {
	entries, err := ListMigrations(os.DirFS("/nonexistent/path/to/migrations"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEmbeddedMigrations_ArePaired(t *testing.T) {
	entries, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for i, e := range entries {
		assert.Equal(t, uint(i+1), e.Version, "versions must be contiguous")
		_, err := migrations.FS.Open(e.Name + ".down.sql")
		assert.NoError(t, err, "missing down migration for %s", e.Name)
	}
}
