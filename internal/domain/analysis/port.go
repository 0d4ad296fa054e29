package analysis

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, h *History) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*History, error)
	Latest(ctx context.Context, userID string) (*History, error)
	// Delete removes a record scoped to its owner. ErrNotFound when the id
	// does not exist or belongs to someone else.
	Delete(ctx context.Context, userID string, id HistoryID) error
}
