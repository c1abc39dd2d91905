package signals

import (
	"context"
	"errors"
	"strings"

	"kbradar/internal/adspend"
	"kbradar/internal/models"
	"kbradar/internal/util"

	"golang.org/x/sync/errgroup"
)

const (
	financialHistory = 4
	SearchLimit      = 10
)

// Search matches brands first, then fills the remaining slots with
// companies.
func (s *Service) Search(ctx context.Context, q string, limit int) []models.SearchResult {
	term := strings.TrimSpace(q)
	if term == "" {
		return []models.SearchResult{}
	}
	if limit <= 0 {
		limit = SearchLimit
	}

	found, err := s.brands.SearchBrands(ctx, term, limit)
	if err != nil {
		s.degrade("search", err, "q", term)
		return []models.SearchResult{}
	}
	out := make([]models.SearchResult, 0, limit)
	for _, b := range found {
		out = append(out, models.SearchResult{ID: b.ID, Name: b.Name, NameKR: b.NameKR, Type: "brand"})
	}

	if remaining := limit - len(out); remaining > 0 {
		companies, err := s.companies.SearchCompanies(ctx, term, remaining)
		if err != nil {
			// Brand hits are still worth returning.
			s.degrade("search", err, "q", term)
			return out
		}
		for _, c := range companies {
			out = append(out, models.SearchResult{ID: c.CompanyID, Name: c.LegalName, Type: "company"})
		}
	}
	return out
}

// CompanyDetail returns nil when the company profile does not exist. A
// failing section is logged and left empty; the profile is still returned.
func (s *Service) CompanyDetail(ctx context.Context, companyID string) *models.CompanyDetail {
	profile, err := s.companies.GetProfile(ctx, companyID)
	if err != nil {
		if !errors.Is(err, util.ErrNotFound) {
			s.degrade("company_detail", err, "company_id", companyID)
		}
		return nil
	}

	detail := &models.CompanyDetail{Profile: profile, AdExpense: adExpense(profile.LegalName)}
	var ownedErr, finErr, marketErr error
	var g errgroup.Group
	g.Go(func() error {
		detail.Brands, ownedErr = s.companies.ListOwnedBrands(ctx, companyID)
		return nil
	})
	g.Go(func() error {
		detail.Financials, finErr = s.companies.ListFinancials(ctx, companyID, financialHistory)
		return nil
	})
	if profile.Ticker != "" {
		g.Go(func() error {
			detail.Market, marketErr = s.companies.LatestMarket(ctx, companyID)
			return nil
		})
	}
	_ = g.Wait()

	if ownedErr != nil {
		s.degrade("company_detail", ownedErr, "company_id", companyID, "section", "brands")
		detail.Brands = nil
	}
	if finErr != nil {
		s.degrade("company_detail", finErr, "company_id", companyID, "section", "financials")
		detail.Financials = nil
	}
	if marketErr != nil {
		s.degrade("company_detail", marketErr, "company_id", companyID, "section", "market")
		detail.Market = nil
	}
	if detail.Brands == nil {
		detail.Brands = []models.CompanyBrand{}
	}
	if detail.Financials == nil {
		detail.Financials = []models.CompanyFinancial{}
	}
	return detail
}

// adExpense is nil for companies without filed ad figures.
func adExpense(legalName string) *models.CompanyAdExpense {
	d, ok := adspend.Lookup(legalName)
	if !ok {
		return nil
	}
	level := adspend.LevelOf(legalName)
	spend, _ := adspend.FormatSpend(legalName)
	return &models.CompanyAdExpense{
		AdRatio:           d.AdRatio,
		AdSpend:           d.AdSpend,
		Revenue:           d.Revenue,
		Level:             string(level),
		Badge:             adspend.Badge(level),
		OrganicMultiplier: adspend.OrganicMultiplier(legalName),
		FormattedSpend:    spend,
		DataAsOf:          adspend.DataAsOf,
	}
}

// BrandProducts lists the brand's products from the latest snapshot that
// mentions it, best rank first.
func (s *Service) BrandProducts(ctx context.Context, brandName string, limit int) []models.BrandProduct {
	name := strings.TrimSpace(brandName)
	if name == "" {
		return []models.BrandProduct{}
	}
	date, err := s.rankings.LatestBrandSnapshotDate(ctx, name)
	if err != nil {
		if !errors.Is(err, util.ErrNotFound) {
			s.degrade("brand_products", err, "brand", name)
		}
		return []models.BrandProduct{}
	}
	rows, err := s.rankings.BrandRows(ctx, name, date, limit)
	if err != nil {
		s.degrade("brand_products", err, "brand", name)
		return []models.BrandProduct{}
	}
	out := make([]models.BrandProduct, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.BrandProduct{
			Platform:    r.Platform,
			Region:      r.Region,
			Title:       r.Title,
			Rank:        r.RankPosition,
			Price:       r.Price,
			Currency:    r.Currency,
			Category:    r.Category,
			Rating:      r.Rating,
			ReviewCount: r.ReviewCount,
		})
	}
	return out
}
