package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestList_EmbeddedMigrations(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "000001_create_admins", lines[0])
	assert.Contains(t, out, "000005_create_demography")
}

func TestList_EmptyDirectory(t *testing.T) {
	out, err := execute(t, "list", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No migrations found")
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "create", "add_umkm_rating", "Add rating column", "--path", dir)
	require.NoError(t, err)

	up := filepath.Join(dir, "000001_add_umkm_rating.up.sql")
	down := filepath.Join(dir, "000001_add_umkm_rating.down.sql")
	assert.Contains(t, out, up)
	assert.FileExists(t, up)
	assert.FileExists(t, down)

	content, err := os.ReadFile(up)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Add rating column")

	_, err = execute(t, "create", "add_travel_rating", "--path", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "000002_add_travel_rating.up.sql"))
}

func TestArgumentValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"steps needs a count", []string{"steps"}},
		{"steps rejects text", []string{"steps", "abc"}},
		{"steps rejects zero", []string{"steps", "0"}},
		{"goto rejects negative", []string{"goto", "-1"}},
		{"force rejects text", []string{"force", "v1"}},
		{"create needs a name", []string{"create"}},
		{"up takes no args", []string{"up", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
