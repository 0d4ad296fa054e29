package products

import "context"

// Repository port (read-only catalog access)
type Repository interface {
	// FindByTags returns entries whose tag field contains any of the given
	// tags as a substring, in catalog order, capped at limit.
	FindByTags(ctx context.Context, tags []string, limit int) ([]*Product, error)
	// FindByPalette returns entries whose palette field contains the
	// palette name as a substring, capped at limit.
	FindByPalette(ctx context.Context, palette string, limit int) ([]*Product, error)
	List(ctx context.Context, palette string, limit int) ([]*Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
}
