package storage

import (
	"context"
	"fmt"

	"kbradar/internal/models"

	"github.com/jackc/pgx/v5"
)

type MetricRepo struct {
	db *DB
}

func NewMetricRepo(db *DB) *MetricRepo {
	return &MetricRepo{db: db}
}

const metricColumns = `m.brand_id::text, m.week_start::text, m.global_best_rank,
       COALESCE(m.leader_score,0)::float8, COALESCE(m.growth_score,0)::float8,
       COALESCE(m.new_leader_score,0)::float8, COALESCE(m.cross_border_score,0)::float8,
       m.wow_rank_change, COALESCE(m.consecutive_weeks_rising,0), m.four_week_improvement,
       COALESCE(m.is_new_entrant,false), m.markets_present::text, COALESCE(m.explanation,''),
       m.oliveyoung_best_rank, m.amazon_us_best_rank, m.amazon_ae_best_rank,
       m.sephora_us_best_rank, m.ulta_best_rank, m.tiktokshop_best_rank, m.noon_ae_best_rank,
       COALESCE(b.name,''), COALESCE(b.name_kr,''), COALESCE(b.category,'')`

const metricFrom = `
FROM weekly_brand_metrics m
LEFT JOIN brands b ON b.id = m.brand_id`

// Weeks returns distinct week starts, newest first. limit <= 0 returns all.
func (r *MetricRepo) Weeks(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT DISTINCT week_start::text
FROM weekly_brand_metrics
ORDER BY 1 DESC
LIMIT NULLIF($1::int, 0)`, limit)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan week: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weeks: %w", err)
	}
	return out, nil
}

// TopRankedInWeeks returns rows in the given weeks whose global best rank is
// set and at most maxRank.
func (r *MetricRepo) TopRankedInWeeks(ctx context.Context, weeks []string, maxRank int) ([]models.WeeklyBrandMetric, error) {
	if len(weeks) == 0 {
		return []models.WeeklyBrandMetric{}, nil
	}
	rows, err := r.db.Pool.Query(ctx, `
SELECT `+metricColumns+metricFrom+`
WHERE m.week_start = ANY($1::text[]::date[])
  AND m.global_best_rank IS NOT NULL AND m.global_best_rank <= $2
ORDER BY m.week_start, m.global_best_rank, m.brand_id`, weeks, maxRank)
	if err != nil {
		return nil, fmt.Errorf("list top ranked metrics: %w", err)
	}
	defer rows.Close()
	return collectMetrics(rows)
}

// WeekMetrics returns every brand's row for one week.
func (r *MetricRepo) WeekMetrics(ctx context.Context, week string) ([]models.WeeklyBrandMetric, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT `+metricColumns+metricFrom+`
WHERE m.week_start = $1::date
ORDER BY m.global_best_rank NULLS LAST, m.brand_id`, week)
	if err != nil {
		return nil, fmt.Errorf("list week metrics: %w", err)
	}
	defer rows.Close()
	return collectMetrics(rows)
}

// BrandHistory returns the brand's most recent rows, newest first.
func (r *MetricRepo) BrandHistory(ctx context.Context, brandID string, limit int) ([]models.WeeklyBrandMetric, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT `+metricColumns+metricFrom+`
WHERE m.brand_id::text = $1
ORDER BY m.week_start DESC
LIMIT $2`, brandID, limit)
	if err != nil {
		return nil, fmt.Errorf("list brand history: %w", err)
	}
	defer rows.Close()
	return collectMetrics(rows)
}

func collectMetrics(rows pgx.Rows) ([]models.WeeklyBrandMetric, error) {
	out := make([]models.WeeklyBrandMetric, 0)
	for rows.Next() {
		var m models.WeeklyBrandMetric
		var markets *string
		if err := rows.Scan(&m.BrandID, &m.WeekStart, &m.GlobalBestRank,
			&m.LeaderScore, &m.GrowthScore, &m.NewLeaderScore, &m.CrossBorderScore,
			&m.WowRankChange, &m.ConsecutiveWeeksRising, &m.FourWeekImprovement,
			&m.IsNewEntrant, &markets, &m.Explanation,
			&m.OliveYoungBestRank, &m.AmazonUSBestRank, &m.AmazonAEBestRank,
			&m.SephoraUSBestRank, &m.UltaBestRank, &m.TikTokShopBestRank, &m.NoonAEBestRank,
			&m.BrandName, &m.BrandNameKR, &m.BrandCategory); err != nil {
			return nil, fmt.Errorf("scan weekly metric: %w", err)
		}
		if markets != nil {
			// Malformed values read as NULL rather than failing the whole week.
			if parsed, err := parseMarkets([]byte(*markets)); err == nil {
				m.MarketsPresent = parsed
			}
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weekly metrics: %w", err)
	}
	return out, nil
}
