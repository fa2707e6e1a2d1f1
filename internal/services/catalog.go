package services

import (
	"context"
	"strings"

	"fyno/internal/domain"
	apperrors "fyno/pkg/errors"
)

// CatalogService serves the fixed service catalogue.
type CatalogService struct {
	entries []domain.CatalogService
	bySlug  map[string]int
}

func NewCatalogService(entries []domain.CatalogService) *CatalogService {
	bySlug := make(map[string]int, len(entries))
	for i, e := range entries {
		bySlug[e.Slug] = i
	}
	return &CatalogService{entries: entries, bySlug: bySlug}
}

// List returns the catalogue in display order.
func (s *CatalogService) List(ctx context.Context) []domain.CatalogService {
	out := make([]domain.CatalogService, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns one entry by slug.
func (s *CatalogService) Get(ctx context.Context, slug string) (*domain.CatalogService, error) {
	i, ok := s.bySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, apperrors.NotFound("service not found")
	}
	entry := s.entries[i]
	return &entry, nil
}
