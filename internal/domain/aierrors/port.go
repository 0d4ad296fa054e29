package aierrors

import "context"

// Repository defines persistence for AI failure entries
type Repository interface {
	Save(ctx context.Context, e *AIError) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*AIError, error)
}
