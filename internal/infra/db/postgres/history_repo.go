package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	domain "github.com/bryanwahyu/personacolor/internal/domain/analysis"
)

type HistoryRepository struct{ db *sql.DB }

func NewHistoryRepository(db *sql.DB) *HistoryRepository { return &HistoryRepository{db: db} }

func (r *HistoryRepository) Save(ctx context.Context, h *domain.History) error {
	const q = `
INSERT INTO analysis_histories
  (id, user_id, result_palette, ai_result, input_data, colors, notes, image_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9);`
	created := h.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		h.ID, h.UserID, nullString(h.ResultPalette),
		jsonOrEmpty(h.AIResult), jsonOrEmpty(h.InputData), jsonArray(h.Colors),
		nullString(h.Notes), nullString(h.ImageURL), created,
	)
	return err
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.History, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, user_id, result_palette, ai_result, input_data, colors, notes, image_url, created_at
FROM analysis_histories
WHERE user_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2;`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.History
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *HistoryRepository) Latest(ctx context.Context, userID string) (*domain.History, error) {
	const q = `
SELECT id, user_id, result_palette, ai_result, input_data, colors, notes, image_url, created_at
FROM analysis_histories
WHERE user_id=$1
ORDER BY created_at DESC, id DESC
LIMIT 1;`
	h, err := scanHistory(r.db.QueryRowContext(ctx, q, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *HistoryRepository) Delete(ctx context.Context, userID string, id domain.HistoryID) error {
	const q = `DELETE FROM analysis_histories WHERE user_id=$1 AND id=$2;`
	res, err := r.db.ExecContext(ctx, q, userID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistory(row rowScanner) (*domain.History, error) {
	var h domain.History
	var palette, notes, imageURL sql.NullString
	var aiResult, inputData, colors []byte
	if err := row.Scan(
		&h.ID, &h.UserID, &palette, &aiResult, &inputData, &colors,
		&notes, &imageURL, &h.CreatedAt,
	); err != nil {
		return nil, err
	}
	h.ResultPalette = palette.String
	h.Notes = notes.String
	h.ImageURL = imageURL.String
	_ = json.Unmarshal(aiResult, &h.AIResult)
	_ = json.Unmarshal(inputData, &h.InputData)
	_ = json.Unmarshal(colors, &h.Colors)
	return &h, nil
}
