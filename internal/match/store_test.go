// File: internal/match/store_test.go
package match

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreDefaultsOnly(t *testing.T) {
	store := NewFileStore("")
	pairs, err := store.ListAliases(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, pairs)

	idx := BuildIndex(pairs)
	key, ok := idx.Match("Email Address")
	require.True(t, ok)
	assert.Equal(t, "email", key)
}

func TestFileStoreUserAliasesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	content := `aliases:
  github: ["code portfolio"]
  portfolio: ["email address"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := NewFileStore(path)
	pairs, err := store.ListAliases(context.Background())
	require.NoError(t, err)

	idx := BuildIndex(pairs)

	key, ok := idx.Match("code portfolio")
	require.True(t, ok)
	assert.Equal(t, "github", key)

	// User rows are listed before the defaults, so on a conflicting alias the
	// user's mapping wins.
	key, ok = idx.Match("email address")
	require.True(t, ok)
	assert.Equal(t, "portfolio", key)
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "does_not_exist.yaml"))
	_, err := store.ListAliases(context.Background())
	assert.Error(t, err)
}
