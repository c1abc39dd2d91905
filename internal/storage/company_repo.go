package storage

import (
	"context"
	"errors"
	"fmt"

	"kbradar/internal/models"
	"kbradar/internal/util"
)

type CompanyRepo struct {
	db *DB
}

func NewCompanyRepo(db *DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

func (r *CompanyRepo) SearchCompanies(ctx context.Context, term string, limit int) ([]models.CompanyProfile, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT company_id::text, legal_name
FROM company_profiles
WHERE legal_name ILIKE $1
ORDER BY length(legal_name), legal_name
LIMIT $2`, containsPattern(term), limit)
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	defer rows.Close()

	out := make([]models.CompanyProfile, 0)
	for rows.Next() {
		var c models.CompanyProfile
		if err := rows.Scan(&c.CompanyID, &c.LegalName); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return out, nil
}

func (r *CompanyRepo) GetProfile(ctx context.Context, companyID string) (models.CompanyProfile, error) {
	var p models.CompanyProfile
	var executives *string
	err := r.db.Pool.QueryRow(ctx, `
SELECT company_id::text, legal_name, COALESCE(website_url,''), COALESCE(hq_location,''), founded_year,
       COALESCE(ticker,''), COALESCE(public_company,false), COALESCE(employee_count_range,''), executives::text
FROM company_profiles
WHERE company_id::text = $1`, companyID).
		Scan(&p.CompanyID, &p.LegalName, &p.WebsiteURL, &p.HQLocation, &p.FoundedYear,
			&p.Ticker, &p.PublicCompany, &p.EmployeeCountRange, &executives)
	if err != nil {
		return models.CompanyProfile{}, wrapNotFound("get company profile", err)
	}
	if executives != nil {
		if m, err := parseStringMap([]byte(*executives)); err == nil {
			p.Executives = m
		}
	}
	return p, nil
}

// ListOwnedBrands returns brands linked to the company through brand_profiles.
func (r *CompanyRepo) ListOwnedBrands(ctx context.Context, companyID string) ([]models.CompanyBrand, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT bp.brand_id::text, b.name, COALESCE(b.name_kr,''), COALESCE(b.category,'')
FROM brand_profiles bp
JOIN brands b ON b.id = bp.brand_id
WHERE bp.owner_company_id::text = $1
ORDER BY b.name`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list owned brands: %w", err)
	}
	defer rows.Close()

	out := make([]models.CompanyBrand, 0)
	for rows.Next() {
		var b models.CompanyBrand
		if err := rows.Scan(&b.BrandID, &b.BrandName, &b.BrandNameKR, &b.Category); err != nil {
			return nil, fmt.Errorf("scan owned brand: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owned brands: %w", err)
	}
	return out, nil
}

func (r *CompanyRepo) ListFinancials(ctx context.Context, companyID string, limit int) ([]models.CompanyFinancial, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT snapshot_date::text, COALESCE(source,''), revenue::float8, operating_profit::float8, net_income::float8,
       operating_margin::float8, yoy_revenue_growth::float8
FROM company_financial_snapshots
WHERE company_id::text = $1
ORDER BY snapshot_date DESC
LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("list financials: %w", err)
	}
	defer rows.Close()

	out := make([]models.CompanyFinancial, 0)
	for rows.Next() {
		var f models.CompanyFinancial
		if err := rows.Scan(&f.SnapshotDate, &f.Source, &f.Revenue, &f.OperatingProfit, &f.NetIncome,
			&f.OperatingMargin, &f.YoYRevenueGrowth); err != nil {
			return nil, fmt.Errorf("scan financial: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate financials: %w", err)
	}
	return out, nil
}

// LatestMarket returns nil without error when no snapshot exists.
func (r *CompanyRepo) LatestMarket(ctx context.Context, companyID string) (*models.CompanyMarket, error) {
	var m models.CompanyMarket
	err := r.db.Pool.QueryRow(ctx, `
SELECT snapshot_datetime, COALESCE(ticker,''), current_price::float8, market_cap::float8, day_change_pct::float8,
       volume, high_52w::float8, low_52w::float8, COALESCE(currency,'')
FROM company_market_snapshots
WHERE company_id::text = $1
ORDER BY snapshot_datetime DESC
LIMIT 1`, companyID).
		Scan(&m.SnapshotDatetime, &m.Ticker, &m.CurrentPrice, &m.MarketCap, &m.DayChangePct,
			&m.Volume, &m.High52W, &m.Low52W, &m.Currency)
	if err != nil {
		err = wrapNotFound("latest market snapshot", err)
		if errors.Is(err, util.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
