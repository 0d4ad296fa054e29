package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	domain "github.com/bryanwahyu/personacolor/internal/domain/products"
)

type ProductRepository struct{ db *sql.DB }

func NewProductRepository(db *sql.DB) *ProductRepository { return &ProductRepository{db: db} }

const productColumns = `id, name, brand, price, image_url, palette, tags, description, created_at`

func (r *ProductRepository) FindByTags(ctx context.Context, tags []string, limit int) ([]*domain.Product, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 12
	}

	var conds []string
	var args []any
	for _, t := range tags {
		if t == "" {
			continue
		}
		args = append(args, "%"+escapeLikePattern(t)+"%")
		conds = append(conds, fmt.Sprintf("tags LIKE $%d", len(args)))
	}
	if len(conds) == 0 {
		return nil, nil
	}
	args = append(args, limit)

	q := `SELECT ` + productColumns + `
FROM products
WHERE ` + strings.Join(conds, " OR ") + fmt.Sprintf(`
ORDER BY created_at DESC, id DESC
LIMIT $%d;`, len(args))

	return r.query(ctx, q, args...)
}

func (r *ProductRepository) FindByPalette(ctx context.Context, palette string, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = 12
	}
	const q = `SELECT ` + productColumns + `
FROM products
WHERE palette LIKE $1
ORDER BY created_at DESC, id DESC
LIMIT $2;`
	return r.query(ctx, q, "%"+escapeLikePattern(palette)+"%", limit)
}

func (r *ProductRepository) List(ctx context.Context, palette string, limit int) ([]*domain.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	if palette != "" {
		const q = `SELECT ` + productColumns + `
FROM products
WHERE palette = $1
ORDER BY created_at DESC, id DESC
LIMIT $2;`
		return r.query(ctx, q, palette, limit)
	}
	const q = `SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC, id DESC
LIMIT $1;`
	return r.query(ctx, q, limit)
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id=$1 LIMIT 1;`
	p, err := scanProduct(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) query(ctx context.Context, q string, args ...any) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var brand, imageURL, palette, tags, desc sql.NullString
	if err := row.Scan(
		&p.ID, &p.Name, &brand, &p.Price, &imageURL, &palette, &tags, &desc, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Brand = brand.String
	p.ImageURL = imageURL.String
	p.Palette = palette.String
	p.Tags = tags.String
	p.Description = desc.String
	return &p, nil
}
