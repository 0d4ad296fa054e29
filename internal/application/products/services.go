package products

import (
	"context"

	domain "github.com/bryanwahyu/personacolor/internal/domain/products"
)

// MaxRecommendations caps every recommendation response.
const MaxRecommendations = 12

// Service implements catalog use-cases: the recommendation matcher plus
// the public read endpoints.
type Service struct {
	Repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{Repo: repo}
}

// Recommend selects matching catalog entries. Tags take priority when
// non-empty; the palette name is the fallback match key. An empty result
// is not an error.
func (s *Service) Recommend(ctx context.Context, tags []string, palette string) ([]*domain.Product, error) {
	if len(tags) > 0 {
		return s.Repo.FindByTags(ctx, tags, MaxRecommendations)
	}
	if palette == "" {
		return nil, nil
	}
	return s.Repo.FindByPalette(ctx, palette, MaxRecommendations)
}

// List returns the catalog, optionally filtered by exact palette.
func (s *Service) List(ctx context.Context, palette string, limit int) ([]*domain.Product, error) {
	return s.Repo.List(ctx, palette, limit)
}

// Get returns one entry, nil when absent.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.Repo.Get(ctx, id)
}
