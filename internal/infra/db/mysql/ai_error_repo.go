package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	domain "github.com/bryanwahyu/personacolor/internal/domain/aierrors"
)

type AIErrorRepository struct {
	db *sql.DB
}

func NewAIErrorRepository(db *sql.DB) *AIErrorRepository { return &AIErrorRepository{db: db} }

func (r *AIErrorRepository) Save(ctx context.Context, e *domain.AIError) error {
	const q = `
INSERT INTO ai_errors
  (user_id, provider, phase, message, details_json, created_at)
VALUES (?,?,?,?,?,?);
`
	msg := e.Message
	if strings.TrimSpace(msg) == "" {
		msg = "-"
	}
	details := e.DetailsJSON
	if strings.TrimSpace(details) == "" {
		details = "{}"
	} else {
		// details_json column requires valid JSON; wrap junk as a string field
		var js any
		if json.Unmarshal([]byte(details), &js) != nil {
			b, _ := json.Marshal(map[string]string{"raw": details})
			details = string(b)
		}
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, e.UserID, e.Provider, e.Phase, msg, details, created)
	return err
}

func (r *AIErrorRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.AIError, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, user_id, provider, phase, message, details_json, created_at
FROM ai_errors
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.AIError
	for rows.Next() {
		var e domain.AIError
		if err := rows.Scan(&e.ID, &e.UserID, &e.Provider, &e.Phase, &e.Message, &e.DetailsJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
