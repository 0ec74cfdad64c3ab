// Package preferences stores non-secret client flags in the metadata table.
package preferences

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/localboost/internal/client/repositories/metadata"
)

const keyHasOnboarded = "has_onboarded"

type Store struct {
	repo metadata.Repository
}

func New(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// HasOnboarded reports whether the onboarding screen was already shown.
func (s *Store) HasOnboarded(ctx context.Context) (bool, error) {
	v, err := s.repo.Get(ctx, keyHasOnboarded)
	if err != nil {
		return false, fmt.Errorf("preferences: %w", err)
	}
	return string(v) == "true", nil
}

func (s *Store) SetOnboarded(ctx context.Context) error {
	if err := s.repo.Set(ctx, keyHasOnboarded, []byte("true")); err != nil {
		return fmt.Errorf("preferences: %w", err)
	}
	return nil
}
