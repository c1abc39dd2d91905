package signals

import (
	"context"
	"errors"
	"testing"

	"kbradar/internal/models"

	"github.com/stretchr/testify/require"
)

func TestSearchBrandsThenCompanies(t *testing.T) {
	svc := newTestService(Stores{
		Brands: &fakeBrands{brands: []models.Brand{
			{ID: "b1", Name: "Cosrx", NameKR: "코스알엑스"},
			{ID: "b2", Name: "Anua"},
		}},
		Companies: &fakeCompanies{profiles: []models.CompanyProfile{
			{CompanyID: "c1", LegalName: "코스알엑스 주식회사"},
		}},
	})
	ctx := context.Background()

	out := svc.Search(ctx, " 코스알엑스 ", 10)
	require.Equal(t, []models.SearchResult{
		{ID: "b1", Name: "Cosrx", NameKR: "코스알엑스", Type: "brand"},
		{ID: "c1", Name: "코스알엑스 주식회사", Type: "company"},
	}, out)

	require.Len(t, svc.Search(ctx, "코스알엑스", 1), 1)
	require.Empty(t, svc.Search(ctx, "   ", 10))
}

func TestSearchKeepsBrandsWhenCompaniesFail(t *testing.T) {
	svc := newTestService(Stores{
		Brands:    &fakeBrands{brands: []models.Brand{{ID: "b1", Name: "Cosrx"}}},
		Companies: &fakeCompanies{err: errors.New("boom")},
	})
	out := svc.Search(context.Background(), "cos", 10)
	require.Len(t, out, 1)
	require.Equal(t, "brand", out[0].Type)
}

func TestCompanyDetail(t *testing.T) {
	companies := &fakeCompanies{
		profiles: []models.CompanyProfile{
			{CompanyID: "c1", LegalName: "한국콜마", Ticker: "161890"},
			{CompanyID: "c2", LegalName: "Private Co"},
		},
		owned: map[string][]models.CompanyBrand{"c1": {{BrandID: "b1", BrandName: "Cosrx"}}},
		financials: map[string][]models.CompanyFinancial{"c1": {
			{SnapshotDate: "2024-12-31"}, {SnapshotDate: "2024-09-30"},
			{SnapshotDate: "2024-06-30"}, {SnapshotDate: "2024-03-31"},
			{SnapshotDate: "2023-12-31"},
		}},
		markets: map[string]*models.CompanyMarket{
			"c1": {Ticker: "161890"},
			"c2": {Ticker: "stale"},
		},
	}
	svc := newTestService(Stores{Companies: companies})
	ctx := context.Background()

	d := svc.CompanyDetail(ctx, "c1")
	require.NotNil(t, d)
	require.Len(t, d.Brands, 1)
	require.Len(t, d.Financials, 4)
	require.NotNil(t, d.Market)

	private := svc.CompanyDetail(ctx, "c2")
	require.NotNil(t, private)
	require.Nil(t, private.Market, "market data only for listed companies")
	require.NotNil(t, private.Brands)
	require.NotNil(t, private.Financials)

	require.Nil(t, svc.CompanyDetail(ctx, "missing"))
}

func TestCompanyDetailKeepsProfileWhenFinancialsFail(t *testing.T) {
	companies := &fakeCompanies{
		profiles: []models.CompanyProfile{{CompanyID: "c1", LegalName: "한국콜마", Ticker: "161890"}},
		owned:    map[string][]models.CompanyBrand{"c1": {{BrandID: "b1", BrandName: "Cosrx"}}},
		markets:  map[string]*models.CompanyMarket{"c1": {Ticker: "161890"}},
		finErr:   errors.New("financials table timeout"),
	}
	svc := newTestService(Stores{Companies: companies})

	d := svc.CompanyDetail(context.Background(), "c1")
	require.NotNil(t, d)
	require.Equal(t, "한국콜마", d.Profile.LegalName)
	require.NotNil(t, d.Financials)
	require.Empty(t, d.Financials)
	require.Len(t, d.Brands, 1)
	require.NotNil(t, d.Market)
}

func TestCompanyDetailAdExpense(t *testing.T) {
	companies := &fakeCompanies{profiles: []models.CompanyProfile{
		{CompanyID: "c1", LegalName: "한국콜마", Ticker: "161890"},
		{CompanyID: "c2", LegalName: "코스맥스", Ticker: "192820"},
		{CompanyID: "c3", LegalName: "Private Co"},
	}}
	svc := newTestService(Stores{Companies: companies})
	ctx := context.Background()

	kolmar := svc.CompanyDetail(ctx, "c1").AdExpense
	require.NotNil(t, kolmar)
	require.Equal(t, "mid", kolmar.Level)
	require.Empty(t, kolmar.Badge)
	require.Equal(t, "495억", kolmar.FormattedSpend)
	require.InDelta(t, 2.0, kolmar.AdRatio, 1e-9)
	require.InDelta(t, 24521, kolmar.Revenue, 1e-9)
	require.InDelta(t, 0.8, kolmar.OrganicMultiplier, 1e-9)

	cosmax := svc.CompanyDetail(ctx, "c2").AdExpense
	require.NotNil(t, cosmax)
	require.Equal(t, "low", cosmax.Level)
	require.Equal(t, "Organic", cosmax.Badge)
	require.Equal(t, "42억", cosmax.FormattedSpend)
	require.InDelta(t, 0.99, cosmax.OrganicMultiplier, 1e-9)

	require.Nil(t, svc.CompanyDetail(ctx, "c3").AdExpense)
}

func TestBrandProducts(t *testing.T) {
	rows := []models.CommerceRankingRow{
		row("2025-01-06", 1, "COSRX", "Old Product"),
		row("2025-01-13", 7, "cosrx", "Low pH Cleanser"),
		row("2025-01-13", 2, "Cosrx", "Snail Mucin"),
		row("2025-01-13", 1, "Anua", "Toner"),
	}
	svc := newTestService(Stores{Rankings: &fakeRankings{rows: rows}})
	ctx := context.Background()

	out := svc.BrandProducts(ctx, "Cosrx", 10)
	require.Len(t, out, 2)
	require.Equal(t, "Snail Mucin", out[0].Title)
	require.Equal(t, 2, out[0].Rank)

	require.Empty(t, svc.BrandProducts(ctx, "Nobody", 10))
}

func TestSocialSignalsAnnotation(t *testing.T) {
	views := 1200.0
	hyps := []models.SocialHypothesis{
		{ID: "h1", EntityName: "Cosrx", Confidence: 0.8, Signals: []models.SocialSignalDetail{
			{Platform: "tiktok", SignalType: "save_spike"},
			{Platform: "tiktok", SignalType: "share_spike", Metadata: &models.SignalMetadata{
				RawMetrics: &models.RawMetrics{TotalViews: &views},
			}},
			{Platform: "instagram", SignalType: "save_spike"},
		}},
		{ID: "h2", EntityName: "Romand", Confidence: 0.5},
	}
	svc := newTestService(Stores{Social: &fakeSocial{rows: hyps}})

	out := svc.SocialSignals(context.Background(), "", 20)
	require.Len(t, out, 2)

	cosrx := out[0]
	require.Equal(t, "코스알엑스", cosrx.CompanyName)
	require.Equal(t, "unknown", cosrx.AdLevel)
	require.InDelta(t, 0.4, cosrx.AdjustedConfidence, 1e-9)
	require.Nil(t, cosrx.AdRatio)
	require.Len(t, cosrx.PlatformBreakdown, 2)
	require.Equal(t, []string{"save_spike", "share_spike"}, cosrx.PlatformBreakdown[0].SignalTypes)
	require.Equal(t, &views, cosrx.PlatformBreakdown[0].TotalViews)

	romand := out[1]
	require.Equal(t, "아이패밀리에스씨", romand.CompanyName)
	require.Equal(t, "low", romand.AdLevel)
	require.Equal(t, "Organic", romand.AdBadge)
	require.NotNil(t, romand.AdSpend)
	require.InDelta(t, 0.5*0.785, romand.AdjustedConfidence, 1e-9)
}

func TestSocialSignalsCategoryFilter(t *testing.T) {
	hyps := []models.SocialHypothesis{
		{ID: "h1", EntityName: "Cosrx", Confidence: 0.9},
		{ID: "h2", EntityName: "Ryo", Confidence: 0.8},
	}
	ctx := context.Background()

	svc := newTestService(Stores{
		Social: &fakeSocial{rows: hyps},
		Brands: &fakeBrands{brands: []models.Brand{
			{Name: "Cosrx", Category: "skincare"},
			{Name: "Ryo", Category: "hair"},
		}},
	})
	out := svc.SocialSignals(ctx, "haircare", 20)
	require.Len(t, out, 1)
	require.Equal(t, "Ryo", out[0].EntityName)

	// No entity resolves to a known brand: nothing is filtered.
	unfiltered := newTestService(Stores{Social: &fakeSocial{rows: hyps}})
	require.Len(t, unfiltered.SocialSignals(ctx, "haircare", 20), 2)
}

func TestSocialSignalsDegradeToEmpty(t *testing.T) {
	svc := newTestService(Stores{Social: &fakeSocial{err: errors.New("down")}})
	out := svc.SocialSignals(context.Background(), "", 20)
	require.NotNil(t, out)
	require.Empty(t, out)
}
