package storage

import (
	"context"
	"fmt"

	"kbradar/internal/models"
)

type BrandRepo struct {
	db *DB
}

func NewBrandRepo(db *DB) *BrandRepo {
	return &BrandRepo{db: db}
}

func (r *BrandRepo) GetBrand(ctx context.Context, id string) (models.Brand, error) {
	var b models.Brand
	err := r.db.Pool.QueryRow(ctx, `
SELECT id::text, name, COALESCE(name_kr,''), COALESCE(category,'')
FROM brands
WHERE id::text = $1`, id).Scan(&b.ID, &b.Name, &b.NameKR, &b.Category)
	if err != nil {
		return models.Brand{}, wrapNotFound("get brand", err)
	}
	return b, nil
}

// SearchBrands matches name or Korean name case-insensitively.
func (r *BrandRepo) SearchBrands(ctx context.Context, term string, limit int) ([]models.Brand, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT id::text, name, COALESCE(name_kr,''), COALESCE(category,'')
FROM brands
WHERE name ILIKE $1 OR name_kr ILIKE $1
ORDER BY length(name), name
LIMIT $2`, containsPattern(term), limit)
	if err != nil {
		return nil, fmt.Errorf("search brands: %w", err)
	}
	defer rows.Close()

	out := make([]models.Brand, 0)
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.NameKR, &b.Category); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brands: %w", err)
	}
	return out, nil
}

// ListBrandsByNames returns brands whose name is one of names.
func (r *BrandRepo) ListBrandsByNames(ctx context.Context, names []string) ([]models.Brand, error) {
	if len(names) == 0 {
		return []models.Brand{}, nil
	}
	rows, err := r.db.Pool.Query(ctx, `
SELECT id::text, name, COALESCE(name_kr,''), COALESCE(category,'')
FROM brands
WHERE name = ANY($1)`, names)
	if err != nil {
		return nil, fmt.Errorf("list brands by names: %w", err)
	}
	defer rows.Close()

	out := make([]models.Brand, 0, len(names))
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.NameKR, &b.Category); err != nil {
			return nil, fmt.Errorf("scan brand by name: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brands by names: %w", err)
	}
	return out, nil
}
