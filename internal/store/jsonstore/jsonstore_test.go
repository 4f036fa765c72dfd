package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Names []string `json:"names"`
}

func TestStore_MissingFileIsEmpty(t *testing.T) {
	s := New[doc](filepath.Join(t.TempDir(), "db.json"))
	v, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, v.Names)
}

func TestStore_SaveLoad(t *testing.T) {
	s := New[doc](filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, s.Save(doc{Names: []string{"a", "b"}}))

	v, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Names)

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestStore_Corrupt(t *testing.T) {
	p := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(p, []byte("{nope"), 0o644))
	_, err := New[doc](p).Load()
	assert.ErrorContains(t, err, "json unmarshal")
}
