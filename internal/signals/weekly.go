package signals

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"kbradar/internal/brands"
	"kbradar/internal/category"
	"kbradar/internal/models"
	"kbradar/internal/util"
)

const topRankCutoff = 10

// regionOrder fixes display order of markets; unlisted regions sort after
// these alphabetically.
var regionOrder = map[string]int{"KR": 0, "US": 1, "AE": 2, "SA": 3}

func orderedRegions(m models.Markets) []string {
	out := make([]string, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		oi, iok := regionOrder[out[i]]
		oj, jok := regionOrder[out[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// categoryMatch reports whether a joined brand category passes the filter.
// An empty filter matches everything. lenient also keeps brands that have
// no category recorded.
func categoryMatch(brandCategory, filter string, lenient bool) bool {
	if filter == "" {
		return true
	}
	if lenient && brandCategory == "" {
		return true
	}
	return brandCategory == category.Resolve(filter)
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func (s *Service) latestWeek(ctx context.Context) (string, bool, error) {
	weeks, err := s.metrics.Weeks(ctx, 1)
	if err != nil || len(weeks) == 0 {
		return "", false, err
	}
	return weeks[0], true, nil
}

// AvailableWeeks lists week starts with metrics, newest first.
func (s *Service) AvailableWeeks(ctx context.Context) []string {
	weeks, err := s.metrics.Weeks(ctx, 0)
	if err != nil {
		s.degrade("available_weeks", err)
		return []string{}
	}
	return weeks
}

type topAgg struct {
	row   models.WeeklyBrandMetric
	weeks map[string]struct{}
	best  int
	mkts  models.Markets
}

// TopRankers returns brands inside the global top 10 in every one of the
// latest weeks.
func (s *Service) TopRankers(ctx context.Context, cat string, weeks, limit int) []models.TopRankerItem {
	fail := func(err error) []models.TopRankerItem {
		s.degrade("top_rankers", err, "category", cat)
		return []models.TopRankerItem{}
	}
	window, err := s.metrics.Weeks(ctx, weeks)
	if err != nil {
		return fail(err)
	}
	if len(window) == 0 {
		return []models.TopRankerItem{}
	}
	rows, err := s.metrics.TopRankedInWeeks(ctx, window, topRankCutoff)
	if err != nil {
		return fail(err)
	}

	index := map[string]*topAgg{}
	order := []*topAgg{}
	for _, r := range rows {
		if r.GlobalBestRank == nil {
			continue
		}
		a, ok := index[r.BrandID]
		if !ok {
			a = &topAgg{row: r, weeks: map[string]struct{}{}, best: *r.GlobalBestRank}
			index[r.BrandID] = a
			order = append(order, a)
		}
		a.weeks[r.WeekStart] = struct{}{}
		if *r.GlobalBestRank < a.best {
			a.best = *r.GlobalBestRank
		}
		// Rows arrive oldest week first, so the last non-null markets win.
		if r.MarketsPresent != nil {
			a.mkts = r.MarketsPresent
		}
	}

	out := make([]models.TopRankerItem, 0)
	for _, a := range order {
		if len(a.weeks) < len(window) || a.row.BrandName == "" {
			continue
		}
		if !categoryMatch(a.row.BrandCategory, cat, true) {
			continue
		}
		platforms := []string{}
		for _, region := range orderedRegions(a.mkts) {
			platforms = append(platforms, a.mkts[region]...)
		}
		out = append(out, models.TopRankerItem{
			BrandID:     a.row.BrandID,
			BrandName:   a.row.BrandName,
			BrandNameKR: a.row.BrandNameKR,
			WeeksInTop:  len(a.weeks),
			BestRank:    a.best,
			Platforms:   platforms,
			Explanation: fmt.Sprintf("%d주 연속 Top10 유지", len(a.weeks)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].BestRank < out[j].BestRank })
	return truncate(out, limit)
}

// weekRows loads the latest week's rows that pass the strict category filter
// and have a joined brand.
func (s *Service) weekRows(ctx context.Context, cat string) ([]models.WeeklyBrandMetric, error) {
	week, ok, err := s.latestWeek(ctx)
	if err != nil || !ok {
		return nil, err
	}
	rows, err := s.metrics.WeekMetrics(ctx, week)
	if err != nil {
		return nil, err
	}
	out := make([]models.WeeklyBrandMetric, 0, len(rows))
	for _, r := range rows {
		if r.BrandName == "" || !categoryMatch(r.BrandCategory, cat, false) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Service) Climbers(ctx context.Context, cat string, limit int) []models.ClimberItem {
	rows, err := s.weekRows(ctx, cat)
	if err != nil {
		s.degrade("climbers", err, "category", cat)
		return []models.ClimberItem{}
	}
	out := make([]models.ClimberItem, 0)
	for _, r := range rows {
		wow := intOr(r.WowRankChange, 0)
		if wow <= 0 && r.ConsecutiveWeeksRising <= 1 {
			continue
		}
		explanation := fmt.Sprintf("WoW +%d", wow)
		if r.ConsecutiveWeeksRising > 1 {
			explanation = fmt.Sprintf("%d주 연속 상승", r.ConsecutiveWeeksRising)
		}
		out = append(out, models.ClimberItem{
			BrandID:             r.BrandID,
			BrandName:           r.BrandName,
			BrandNameKR:         r.BrandNameKR,
			WowChange:           wow,
			Streak:              r.ConsecutiveWeeksRising,
			FourWeekImprovement: r.FourWeekImprovement,
			Explanation:         explanation,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WowChange > out[j].WowChange })
	return truncate(out, limit)
}

func (s *Service) NewEntrants(ctx context.Context, cat string, limit int) []models.NewEntrantItem {
	rows, err := s.weekRows(ctx, cat)
	if err != nil {
		s.degrade("new_entrants", err, "category", cat)
		return []models.NewEntrantItem{}
	}
	entrants := make([]models.WeeklyBrandMetric, 0)
	for _, r := range rows {
		if r.IsNewEntrant {
			entrants = append(entrants, r)
		}
	}
	sort.SliceStable(entrants, func(i, j int) bool {
		a, b := entrants[i].GlobalBestRank, entrants[j].GlobalBestRank
		if a == nil || b == nil {
			return a != nil
		}
		return *a < *b
	})
	entrants = truncate(entrants, limit)

	out := make([]models.NewEntrantItem, 0, len(entrants))
	for _, r := range entrants {
		platforms := []string{}
		labels := []string{}
		for _, region := range orderedRegions(r.MarketsPresent) {
			for _, p := range r.MarketsPresent[region] {
				platforms = append(platforms, p)
				labels = append(labels, region+" "+p)
			}
		}
		explanation := "이번 주 첫 진입"
		if len(labels) > 0 {
			explanation = fmt.Sprintf("이번 주 첫 진입 (%s)", strings.Join(truncate(labels, 3), ", "))
		}
		out = append(out, models.NewEntrantItem{
			BrandID:     r.BrandID,
			BrandName:   r.BrandName,
			BrandNameKR: r.BrandNameKR,
			EntryRank:   r.GlobalBestRank,
			Platforms:   platforms,
			Explanation: explanation,
		})
	}
	return out
}

// Crossborder returns brands ranking in at least two regions this week.
func (s *Service) Crossborder(ctx context.Context, cat string, limit int) []models.CrossBorderItem {
	rows, err := s.weekRows(ctx, cat)
	if err != nil {
		s.degrade("crossborder", err, "category", cat)
		return []models.CrossBorderItem{}
	}
	out := make([]models.CrossBorderItem, 0)
	for _, r := range rows {
		if r.MarketsPresent == nil {
			continue
		}
		regions := []string{}
		for _, region := range orderedRegions(r.MarketsPresent) {
			if len(r.MarketsPresent[region]) > 0 {
				regions = append(regions, region)
			}
		}
		if len(regions) < 2 {
			continue
		}
		explanation := strings.Join(regions, "+") + " 동시 강세"
		if len(regions) == 2 {
			explanation = fmt.Sprintf("%s → %s 진입", regions[0], regions[1])
		}
		out = append(out, models.CrossBorderItem{
			BrandID:            r.BrandID,
			BrandName:          r.BrandName,
			BrandNameKR:        r.BrandNameKR,
			Regions:            regions,
			PlatformsPerRegion: r.MarketsPresent,
			CrossBorderScore:   r.CrossBorderScore,
			Explanation:        explanation,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CrossBorderScore > out[j].CrossBorderScore })
	return truncate(out, limit)
}

type platformRank struct {
	label string
	rank  func(m models.WeeklyBrandMetric) *int
}

var gemPlatforms = []platformRank{
	{"OliveYoung", func(m models.WeeklyBrandMetric) *int { return m.OliveYoungBestRank }},
	{"Amazon US", func(m models.WeeklyBrandMetric) *int { return m.AmazonUSBestRank }},
	{"Amazon AE", func(m models.WeeklyBrandMetric) *int { return m.AmazonAEBestRank }},
	{"Sephora", func(m models.WeeklyBrandMetric) *int { return m.SephoraUSBestRank }},
	{"Ulta", func(m models.WeeklyBrandMetric) *int { return m.UltaBestRank }},
	{"TikTok Shop", func(m models.WeeklyBrandMetric) *int { return m.TikTokShopBestRank }},
	{"Noon", func(m models.WeeklyBrandMetric) *int { return m.NoonAEBestRank }},
}

func compositeScore(m models.WeeklyBrandMetric) float64 {
	return m.NewLeaderScore*2 + m.GrowthScore*1.5 + m.CrossBorderScore
}

// HiddenGems ranks growth signals of brands outside the Tier-1
// conglomerates.
func (s *Service) HiddenGems(ctx context.Context, cat string, limit int) []models.HiddenGemItem {
	rows, err := s.weekRows(ctx, cat)
	if err != nil {
		s.degrade("hidden_gems", err, "category", cat)
		return []models.HiddenGemItem{}
	}
	out := make([]models.HiddenGemItem, 0)
	for _, r := range rows {
		if r.NewLeaderScore <= 0 && r.GrowthScore <= 0 && r.CrossBorderScore <= 0 {
			continue
		}
		if brands.IsTier1Brand(r.BrandName) {
			continue
		}
		company, _ := brands.CompanyName(r.BrandName)

		platforms := []string{}
		var best *int
		for _, p := range gemPlatforms {
			rank := p.rank(r)
			if rank == nil || *rank <= 0 {
				continue
			}
			platforms = append(platforms, p.label)
			if best == nil || *rank < *best {
				v := *rank
				best = &v
			}
		}

		parts := []string{}
		if r.NewLeaderScore > 0 {
			parts = append(parts, "New entrant with breakthrough momentum")
		}
		if r.GrowthScore > 0 {
			parts = append(parts, "Growth score "+strconv.FormatFloat(r.GrowthScore, 'f', -1, 64))
		}
		if r.CrossBorderScore > 0 {
			parts = append(parts, fmt.Sprintf("Present in %d platforms", len(platforms)))
		}
		explanation := strings.Join(parts, " · ")
		if explanation == "" {
			explanation = "Emerging brand signal detected"
		}

		out = append(out, models.HiddenGemItem{
			BrandID:          r.BrandID,
			BrandName:        r.BrandName,
			BrandNameKR:      r.BrandNameKR,
			CompanyName:      company,
			Category:         r.BrandCategory,
			NewLeaderScore:   r.NewLeaderScore,
			GrowthScore:      r.GrowthScore,
			CrossBorderScore: r.CrossBorderScore,
			LeaderScore:      r.LeaderScore,
			CompositeScore:   compositeScore(r),
			Platforms:        platforms,
			BestRank:         best,
			Explanation:      explanation,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompositeScore > out[j].CompositeScore })
	return truncate(out, limit)
}

// BrandDrilldown returns the brand's recent weekly history in chronological
// order, or nil when the brand or its metrics are missing.
func (s *Service) BrandDrilldown(ctx context.Context, brandID string, weeks int) *models.BrandDrilldown {
	brand, err := s.brands.GetBrand(ctx, brandID)
	if err != nil {
		if !errors.Is(err, util.ErrNotFound) {
			s.degrade("brand_drilldown", err, "brand_id", brandID)
		}
		return nil
	}
	rows, err := s.metrics.BrandHistory(ctx, brandID, weeks)
	if err != nil {
		s.degrade("brand_drilldown", err, "brand_id", brandID)
		return nil
	}
	if len(rows) == 0 {
		return nil
	}

	history := make([]models.DrilldownWeek, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		m := rows[i]
		history = append(history, models.DrilldownWeek{
			WeekStart:      m.WeekStart,
			GlobalBestRank: m.GlobalBestRank,
			LeaderScore:    m.LeaderScore,
			GrowthScore:    m.GrowthScore,
			OliveYoung:     m.OliveYoungBestRank,
			AmazonUS:       m.AmazonUSBestRank,
			AmazonAE:       m.AmazonAEBestRank,
			SephoraUS:      m.SephoraUSBestRank,
			Ulta:           m.UltaBestRank,
			TikTokShop:     m.TikTokShopBestRank,
			NoonAE:         m.NoonAEBestRank,
		})
	}

	latest := rows[0]
	markets := latest.MarketsPresent
	if markets == nil {
		markets = models.Markets{}
	}
	company, _ := brands.CompanyName(brand.Name)
	return &models.BrandDrilldown{
		BrandID:                brand.ID,
		BrandName:              brand.Name,
		BrandNameKR:            brand.NameKR,
		CompanyName:            company,
		IsKBeauty:              brands.IsKBeauty(brand.Name),
		History:                history,
		LatestExplanation:      latest.Explanation,
		LatestLeaderScore:      latest.LeaderScore,
		LatestGrowthScore:      latest.GrowthScore,
		LatestNewLeaderScore:   latest.NewLeaderScore,
		LatestCrossBorderScore: latest.CrossBorderScore,
		MarketsPresent:         markets,
	}
}
