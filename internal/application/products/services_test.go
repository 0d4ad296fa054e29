package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/personacolor/internal/domain/products"
)

// fakeCatalog applies the entity predicates over an in-memory catalog,
// mirroring what the SQL repos do with LIKE.
type fakeCatalog struct {
	items []*domain.Product

	tagsCalls    [][]string
	paletteCalls []string
}

func (f *fakeCatalog) FindByTags(_ context.Context, tags []string, limit int) ([]*domain.Product, error) {
	f.tagsCalls = append(f.tagsCalls, tags)
	var out []*domain.Product
	for _, p := range f.items {
		if p.MatchesAnyTag(tags) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindByPalette(_ context.Context, palette string, limit int) ([]*domain.Product, error) {
	f.paletteCalls = append(f.paletteCalls, palette)
	var out []*domain.Product
	for _, p := range f.items {
		if p.MatchesPalette(palette) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeCatalog) List(_ context.Context, _ string, limit int) ([]*domain.Product, error) {
	if limit > len(f.items) {
		limit = len(f.items)
	}
	return f.items[:limit], nil
}

func (f *fakeCatalog) Get(_ context.Context, id int64) (*domain.Product, error) {
	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func catalogWithTags(total, tagged int, tag string) *fakeCatalog {
	f := &fakeCatalog{}
	for i := 0; i < total; i++ {
		p := &domain.Product{ID: int64(i + 1), Name: fmt.Sprintf("item-%d", i+1), Tags: "plain"}
		if i < tagged {
			p.Tags = "plain," + tag
		}
		f.items = append(f.items, p)
	}
	return f
}

func TestRecommendByTags(t *testing.T) {
	catalog := catalogWithTags(15, 5, "earth")
	svc := NewService(catalog)

	got, err := svc.Recommend(context.Background(), []string{"earth"}, "")
	require.NoError(t, err)

	require.Len(t, got, 5)
	// catalog order preserved
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(5), got[4].ID)
}

func TestRecommendCappedAtTwelve(t *testing.T) {
	catalog := catalogWithTags(30, 20, "earth")
	svc := NewService(catalog)

	got, err := svc.Recommend(context.Background(), []string{"earth"}, "")
	require.NoError(t, err)

	assert.Len(t, got, MaxRecommendations)
}

func TestRecommendTagsTakePriorityOverPalette(t *testing.T) {
	catalog := catalogWithTags(3, 1, "earth")
	svc := NewService(catalog)

	_, err := svc.Recommend(context.Background(), []string{"earth"}, "Autumn Warm")
	require.NoError(t, err)

	assert.Len(t, catalog.tagsCalls, 1)
	assert.Empty(t, catalog.paletteCalls, "palette lookup must not run when tags are present")
}

func TestRecommendPaletteFallbackSubstring(t *testing.T) {
	catalog := &fakeCatalog{items: []*domain.Product{
		{ID: 1, Name: "scarf", Palette: "Autumn Warm Deluxe"},
		{ID: 2, Name: "hat", Palette: "Winter Cool"},
	}}
	svc := NewService(catalog)

	got, err := svc.Recommend(context.Background(), nil, "Autumn Warm")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "scarf", got[0].Name)
}

func TestRecommendNothingMatchesIsNotAnError(t *testing.T) {
	catalog := catalogWithTags(4, 0, "earth")
	svc := NewService(catalog)

	got, err := svc.Recommend(context.Background(), []string{"earth"}, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecommendNoTagsNoPalette(t *testing.T) {
	catalog := catalogWithTags(4, 4, "earth")
	svc := NewService(catalog)

	got, err := svc.Recommend(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, catalog.tagsCalls)
	assert.Empty(t, catalog.paletteCalls)
}
