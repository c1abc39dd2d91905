package signals

import (
	"context"
	"sort"
	"strings"

	"kbradar/internal/category"
	"kbradar/internal/models"
	"kbradar/internal/storage"
	"kbradar/internal/util"
)

// fakeRankings filters an in-memory row set the way RankingRepo filters the
// commerce_rankings table.
type fakeRankings struct {
	rows []models.CommerceRankingRow
	err  error
}

func (f *fakeRankings) matches(flt storage.SnapshotFilter, r models.CommerceRankingRow) bool {
	return r.Platform == flt.Platform && r.Region == flt.Region && category.Matches(r.Category, flt.Aliases)
}

func (f *fakeRankings) SnapshotDates(_ context.Context, flt storage.SnapshotFilter, limit int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	seen := map[string]struct{}{}
	out := []string{}
	for _, r := range f.rows {
		if !f.matches(flt, r) {
			continue
		}
		if _, ok := seen[r.SnapshotDate]; !ok {
			seen[r.SnapshotDate] = struct{}{}
			out = append(out, r.SnapshotDate)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return truncate(out, limit), nil
}

func (f *fakeRankings) SnapshotRows(_ context.Context, flt storage.SnapshotFilter, dates []string, maxRank int) ([]models.CommerceRankingRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.CommerceRankingRow{}
	for _, r := range f.rows {
		if !f.matches(flt, r) || !containsString(dates, r.SnapshotDate) {
			continue
		}
		if maxRank > 0 && r.RankPosition > maxRank {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SnapshotDate != out[j].SnapshotDate {
			return out[i].SnapshotDate < out[j].SnapshotDate
		}
		return out[i].RankPosition < out[j].RankPosition
	})
	return out, nil
}

func (f *fakeRankings) LatestBrandSnapshotDate(_ context.Context, brand string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	latest := ""
	for _, r := range f.rows {
		if r.BrandText != nil && strings.EqualFold(*r.BrandText, brand) && r.SnapshotDate > latest {
			latest = r.SnapshotDate
		}
	}
	if latest == "" {
		return "", util.ErrNotFound
	}
	return latest, nil
}

func (f *fakeRankings) BrandRows(_ context.Context, brand, date string, limit int) ([]models.CommerceRankingRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.CommerceRankingRow{}
	for _, r := range f.rows {
		if r.SnapshotDate == date && r.BrandText != nil && strings.EqualFold(*r.BrandText, brand) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RankPosition < out[j].RankPosition })
	return truncate(out, limit), nil
}

type fakeMetrics struct {
	rows []models.WeeklyBrandMetric
	err  error
}

func (f *fakeMetrics) Weeks(_ context.Context, limit int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	seen := map[string]struct{}{}
	out := []string{}
	for _, r := range f.rows {
		if _, ok := seen[r.WeekStart]; !ok {
			seen[r.WeekStart] = struct{}{}
			out = append(out, r.WeekStart)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return truncate(out, limit), nil
}

func (f *fakeMetrics) TopRankedInWeeks(_ context.Context, weeks []string, maxRank int) ([]models.WeeklyBrandMetric, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.WeeklyBrandMetric{}
	for _, r := range f.rows {
		if containsString(weeks, r.WeekStart) && r.GlobalBestRank != nil && *r.GlobalBestRank <= maxRank {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WeekStart < out[j].WeekStart })
	return out, nil
}

func (f *fakeMetrics) WeekMetrics(_ context.Context, week string) ([]models.WeeklyBrandMetric, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.WeeklyBrandMetric{}
	for _, r := range f.rows {
		if r.WeekStart == week {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeMetrics) BrandHistory(_ context.Context, brandID string, limit int) ([]models.WeeklyBrandMetric, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.WeeklyBrandMetric{}
	for _, r := range f.rows {
		if r.BrandID == brandID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WeekStart > out[j].WeekStart })
	return truncate(out, limit), nil
}

type fakeBrands struct {
	brands []models.Brand
	err    error
}

func (f *fakeBrands) GetBrand(_ context.Context, id string) (models.Brand, error) {
	if f.err != nil {
		return models.Brand{}, f.err
	}
	for _, b := range f.brands {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Brand{}, util.ErrNotFound
}

func (f *fakeBrands) SearchBrands(_ context.Context, term string, limit int) ([]models.Brand, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Brand{}
	t := strings.ToLower(term)
	for _, b := range f.brands {
		if strings.Contains(strings.ToLower(b.Name), t) || strings.Contains(strings.ToLower(b.NameKR), t) {
			out = append(out, b)
		}
	}
	return truncate(out, limit), nil
}

func (f *fakeBrands) ListBrandsByNames(_ context.Context, names []string) ([]models.Brand, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Brand{}
	for _, b := range f.brands {
		if containsString(names, b.Name) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeCompanies struct {
	profiles   []models.CompanyProfile
	owned      map[string][]models.CompanyBrand
	financials map[string][]models.CompanyFinancial
	markets    map[string]*models.CompanyMarket
	err        error
	finErr     error
}

func (f *fakeCompanies) SearchCompanies(_ context.Context, term string, limit int) ([]models.CompanyProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.CompanyProfile{}
	for _, p := range f.profiles {
		if strings.Contains(strings.ToLower(p.LegalName), strings.ToLower(term)) {
			out = append(out, p)
		}
	}
	return truncate(out, limit), nil
}

func (f *fakeCompanies) GetProfile(_ context.Context, id string) (models.CompanyProfile, error) {
	if f.err != nil {
		return models.CompanyProfile{}, f.err
	}
	for _, p := range f.profiles {
		if p.CompanyID == id {
			return p, nil
		}
	}
	return models.CompanyProfile{}, util.ErrNotFound
}

func (f *fakeCompanies) ListOwnedBrands(_ context.Context, id string) ([]models.CompanyBrand, error) {
	return f.owned[id], nil
}

func (f *fakeCompanies) ListFinancials(_ context.Context, id string, limit int) ([]models.CompanyFinancial, error) {
	if f.finErr != nil {
		return nil, f.finErr
	}
	return truncate(f.financials[id], limit), nil
}

func (f *fakeCompanies) LatestMarket(_ context.Context, id string) (*models.CompanyMarket, error) {
	return f.markets[id], nil
}

type fakeSocial struct {
	rows []models.SocialHypothesis
	err  error
}

func (f *fakeSocial) ListHypotheses(_ context.Context, limit int) ([]models.SocialHypothesis, error) {
	if f.err != nil {
		return nil, f.err
	}
	return truncate(f.rows, limit), nil
}

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func row(date string, rank int, brand, title string) models.CommerceRankingRow {
	r := models.CommerceRankingRow{
		Platform: "oliveyoung", Region: "KR", Category: "skincare",
		SnapshotDate: date, RankPosition: rank, Title: title, Currency: "KRW",
	}
	if brand != "" {
		r.BrandText = strp(brand)
	}
	return r
}

func newTestService(st Stores) *Service {
	if st.Rankings == nil {
		st.Rankings = &fakeRankings{}
	}
	if st.Metrics == nil {
		st.Metrics = &fakeMetrics{}
	}
	if st.Brands == nil {
		st.Brands = &fakeBrands{}
	}
	if st.Companies == nil {
		st.Companies = &fakeCompanies{}
	}
	if st.Social == nil {
		st.Social = &fakeSocial{}
	}
	return NewService(st, nil)
}
