// Package signals computes the dashboard's ranking and brand-signal views
// from ranking snapshots and weekly brand metrics.
//
// Every exported Service method has a total contract: storage failures are
// logged, counted and turned into an empty result, never returned.
package signals

import (
	"context"

	"kbradar/internal/logger"
	"kbradar/internal/metrics"
	"kbradar/internal/models"
	"kbradar/internal/storage"
)

type RankingStore interface {
	SnapshotDates(ctx context.Context, f storage.SnapshotFilter, limit int) ([]string, error)
	SnapshotRows(ctx context.Context, f storage.SnapshotFilter, dates []string, maxRank int) ([]models.CommerceRankingRow, error)
	LatestBrandSnapshotDate(ctx context.Context, brand string) (string, error)
	BrandRows(ctx context.Context, brand, date string, limit int) ([]models.CommerceRankingRow, error)
}

type MetricStore interface {
	Weeks(ctx context.Context, limit int) ([]string, error)
	TopRankedInWeeks(ctx context.Context, weeks []string, maxRank int) ([]models.WeeklyBrandMetric, error)
	WeekMetrics(ctx context.Context, week string) ([]models.WeeklyBrandMetric, error)
	BrandHistory(ctx context.Context, brandID string, limit int) ([]models.WeeklyBrandMetric, error)
}

type BrandStore interface {
	GetBrand(ctx context.Context, id string) (models.Brand, error)
	SearchBrands(ctx context.Context, term string, limit int) ([]models.Brand, error)
	ListBrandsByNames(ctx context.Context, names []string) ([]models.Brand, error)
}

type CompanyStore interface {
	SearchCompanies(ctx context.Context, term string, limit int) ([]models.CompanyProfile, error)
	GetProfile(ctx context.Context, companyID string) (models.CompanyProfile, error)
	ListOwnedBrands(ctx context.Context, companyID string) ([]models.CompanyBrand, error)
	ListFinancials(ctx context.Context, companyID string, limit int) ([]models.CompanyFinancial, error)
	LatestMarket(ctx context.Context, companyID string) (*models.CompanyMarket, error)
}

type SocialStore interface {
	ListHypotheses(ctx context.Context, limit int) ([]models.SocialHypothesis, error)
}

type Stores struct {
	Rankings  RankingStore
	Metrics   MetricStore
	Brands    BrandStore
	Companies CompanyStore
	Social    SocialStore
}

// StoresFromDB wires the Postgres repos.
func StoresFromDB(db *storage.DB) Stores {
	return Stores{
		Rankings:  storage.NewRankingRepo(db),
		Metrics:   storage.NewMetricRepo(db),
		Brands:    storage.NewBrandRepo(db),
		Companies: storage.NewCompanyRepo(db),
		Social:    storage.NewSocialRepo(db),
	}
}

type Service struct {
	rankings  RankingStore
	metrics   MetricStore
	brands    BrandStore
	companies CompanyStore
	social    SocialStore
	log       *logger.Logger
}

func NewService(st Stores, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		rankings:  st.Rankings,
		metrics:   st.Metrics,
		brands:    st.Brands,
		companies: st.Companies,
		social:    st.Social,
		log:       log,
	}
}

func (s *Service) degrade(view string, err error, keysAndValues ...interface{}) {
	metrics.AggregationFailures.WithLabelValues(view).Inc()
	kv := append([]interface{}{"view", view, "error", err}, keysAndValues...)
	s.log.Error("aggregation failed, returning empty result", kv...)
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
