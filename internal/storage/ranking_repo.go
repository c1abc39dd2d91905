package storage

import (
	"context"
	"fmt"

	"kbradar/internal/category"
	"kbradar/internal/models"

	"github.com/jackc/pgx/v5"
)

type RankingRepo struct {
	db *DB
}

func NewRankingRepo(db *DB) *RankingRepo {
	return &RankingRepo{db: db}
}

// SnapshotFilter selects one platform/region ranking across category aliases.
type SnapshotFilter struct {
	Platform string
	Region   string
	Aliases  []string
}

const rankingColumns = `platform, region, COALESCE(category,''), snapshot_date::text, rank_position,
       brand_text, COALESCE(title,''), price::float8, COALESCE(currency,'USD'), rating::float8, review_count`

// SnapshotDates returns distinct snapshot dates for the filter, newest first.
// limit <= 0 returns all of them.
func (r *RankingRepo) SnapshotDates(ctx context.Context, f SnapshotFilter, limit int) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT DISTINCT snapshot_date::text
FROM commerce_rankings
WHERE platform=$1 AND region=$2 AND (category = ANY($3) OR category LIKE ANY($4))
ORDER BY 1 DESC
LIMIT NULLIF($5::int, 0)`,
		f.Platform, f.Region, f.Aliases, category.LikePatterns(f.Aliases), limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshot dates: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan snapshot date: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot dates: %w", err)
	}
	return out, nil
}

// SnapshotRows returns rows for the filter on the given dates, ordered by
// date then rank. maxRank <= 0 disables the rank cutoff.
func (r *RankingRepo) SnapshotRows(ctx context.Context, f SnapshotFilter, dates []string, maxRank int) ([]models.CommerceRankingRow, error) {
	if len(dates) == 0 {
		return []models.CommerceRankingRow{}, nil
	}
	rows, err := r.db.Pool.Query(ctx, `
SELECT `+rankingColumns+`
FROM commerce_rankings
WHERE platform=$1 AND region=$2 AND (category = ANY($3) OR category LIKE ANY($4))
  AND snapshot_date = ANY($5::text[]::date[])
  AND ($6::int <= 0 OR rank_position <= $6::int)
ORDER BY snapshot_date, rank_position, title`,
		f.Platform, f.Region, f.Aliases, category.LikePatterns(f.Aliases), dates, maxRank)
	if err != nil {
		return nil, fmt.Errorf("list snapshot rows: %w", err)
	}
	defer rows.Close()
	return collectRankingRows(rows)
}

// LatestBrandSnapshotDate returns the newest snapshot that lists the brand.
func (r *RankingRepo) LatestBrandSnapshotDate(ctx context.Context, brand string) (string, error) {
	var d string
	err := r.db.Pool.QueryRow(ctx, `
SELECT snapshot_date::text FROM commerce_rankings
WHERE brand_text ILIKE $1
ORDER BY snapshot_date DESC
LIMIT 1`, escapeLike(brand)).Scan(&d)
	if err != nil {
		return "", wrapNotFound("latest brand snapshot", err)
	}
	return d, nil
}

func (r *RankingRepo) BrandRows(ctx context.Context, brand, date string, limit int) ([]models.CommerceRankingRow, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT `+rankingColumns+`
FROM commerce_rankings
WHERE snapshot_date = $1::date AND brand_text ILIKE $2
ORDER BY rank_position, platform
LIMIT $3`, date, escapeLike(brand), limit)
	if err != nil {
		return nil, fmt.Errorf("list brand rows: %w", err)
	}
	defer rows.Close()
	return collectRankingRows(rows)
}

func collectRankingRows(rows pgx.Rows) ([]models.CommerceRankingRow, error) {
	out := make([]models.CommerceRankingRow, 0)
	for rows.Next() {
		var row models.CommerceRankingRow
		if err := rows.Scan(&row.Platform, &row.Region, &row.Category, &row.SnapshotDate, &row.RankPosition,
			&row.BrandText, &row.Title, &row.Price, &row.Currency, &row.Rating, &row.ReviewCount); err != nil {
			return nil, fmt.Errorf("scan ranking row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ranking rows: %w", err)
	}
	return out, nil
}
