package bookfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	d := Definition{Concept: "A heist novel set on a generation ship."}
	assert.Equal(t, "a-heist-novel-set-on.yml", d.Filename())

	assert.Equal(t, "book.yml", Definition{}.Filename())
}

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	d := FromFormData("sess-1", map[string]string{
		"concept":            "A heist novel set on a generation ship.",
		"genre":              "science_fiction",
		"audience":           "adult",
		"contentPreferences": "no gore",
	})

	path, err := Write(dir, d)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a-heist-novel-set-on.yml"), path)

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "science_fiction", got.Genre)
	assert.Equal(t, "no gore", got.ContentPreferences)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestWriteCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "books")
	_, err := Write(dir, Definition{Concept: "A ship that sails through time."})
	require.NoError(t, err)
}
