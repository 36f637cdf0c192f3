// File: internal/match/store.go
package match

import (
	"context"
	"fmt"
	"os"

	"github.com/hireloop/autopilot/api/schemas"
	"gopkg.in/yaml.v3"
)

// FileStore is an alias store backed by the built-in defaults plus an
// optional user-editable yaml file. User rows are listed first so they win
// over defaults on duplicate aliases (BuildIndex keeps the first registration).
type FileStore struct {
	path string
}

// NewFileStore creates a store reading user aliases from path. An empty path
// yields the defaults only.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// aliasFile is the on-disk shape: a map from canonical key to alias phrases.
//
//	aliases:
//	  email: ["email address", "work e-mail"]
type aliasFile struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// ListAliases implements schemas.AliasStore.
func (s *FileStore) ListAliases(ctx context.Context) ([]schemas.AliasPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var pairs []schemas.AliasPair
	if s.path != "" {
		raw, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read alias file %q: %w", s.path, err)
		}
		var f aliasFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("failed to parse alias file %q: %w", s.path, err)
		}
		for key, aliases := range f.Aliases {
			for _, alias := range aliases {
				pairs = append(pairs, schemas.AliasPair{CanonicalKey: key, Alias: alias})
			}
		}
	}

	return append(pairs, DefaultAliases()...), nil
}
