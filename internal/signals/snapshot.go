package signals

import (
	"context"
	"sort"
	"strings"

	"kbradar/internal/brands"
	"kbradar/internal/category"
	"kbradar/internal/models"
	"kbradar/internal/storage"

	"golang.org/x/sync/errgroup"
)

// brandRow is the best-ranked row of one brand within one snapshot.
type brandRow struct {
	brand string
	row   models.CommerceRankingRow
}

// snapshotPair is the deduplicated latest snapshot and, when one exists, the
// one immediately before it.
type snapshotPair struct {
	current  []brandRow
	previous map[string]int
	hasPrev  bool
}

func filterFor(platform, region, cat string) storage.SnapshotFilter {
	return storage.SnapshotFilter{
		Platform: platform,
		Region:   region,
		Aliases:  category.Aliases(category.Normalize(cat)),
	}
}

// dedupeByBrand keeps the lowest raw rank per resolved brand, first-seen on
// ties, and returns the survivors ordered by that rank.
func dedupeByBrand(rows []models.CommerceRankingRow) []brandRow {
	index := make(map[string]int, len(rows))
	out := make([]brandRow, 0, len(rows))
	for _, r := range rows {
		b := brands.Resolve(r.BrandText, r.Title)
		if i, ok := index[b]; ok {
			if r.RankPosition < out[i].row.RankPosition {
				out[i].row = r
			}
			continue
		}
		index[b] = len(out)
		out = append(out, brandRow{brand: b, row: r})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].row.RankPosition < out[j].row.RankPosition
	})
	return out
}

func rankMap(rows []brandRow) map[string]int {
	m := make(map[string]int, len(rows))
	for _, r := range rows {
		m[r.brand] = r.row.RankPosition
	}
	return m
}

func (s *Service) loadSnapshotPair(ctx context.Context, f storage.SnapshotFilter) (snapshotPair, error) {
	dates, err := s.rankings.SnapshotDates(ctx, f, 2)
	if err != nil {
		return snapshotPair{}, err
	}
	if len(dates) == 0 {
		return snapshotPair{}, nil
	}

	var cur, prev []models.CommerceRankingRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.rankings.SnapshotRows(gctx, f, dates[:1], 0)
		cur = rows
		return err
	})
	if len(dates) > 1 {
		g.Go(func() error {
			rows, err := s.rankings.SnapshotRows(gctx, f, dates[1:2], 0)
			prev = rows
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return snapshotPair{}, err
	}

	pair := snapshotPair{current: dedupeByBrand(cur), hasPrev: len(dates) > 1}
	if pair.hasPrev {
		pair.previous = rankMap(dedupeByBrand(prev))
	}
	return pair, nil
}

func toRankingItem(position int, r brandRow) models.RankingItem {
	item := models.RankingItem{
		Rank:        position,
		Brand:       r.brand,
		Title:       r.row.Title,
		Price:       r.row.Price,
		Currency:    r.row.Currency,
		Rating:      r.row.Rating,
		ReviewCount: r.row.ReviewCount,
		IsKBeauty:   brands.IsKBeauty(r.brand),
	}
	if _, sub, ok := strings.Cut(r.row.Category, ":"); ok {
		item.Subcategory = sub
	}
	return item
}

// rank builds the full deduplicated ranking with week-over-week deltas.
// wow_change compares raw ranks of the kept rows in both snapshots.
func (p snapshotPair) rank() []models.RankingItem {
	out := make([]models.RankingItem, 0, len(p.current))
	for i, r := range p.current {
		item := toRankingItem(i+1, r)
		if p.hasPrev {
			if prevRank, ok := p.previous[r.brand]; ok {
				item.WowChange = prevRank - r.row.RankPosition
			} else {
				item.IsNew = true
			}
		}
		out = append(out, item)
	}
	return out
}

func (s *Service) PlatformRanking(ctx context.Context, platform, region, cat string, limit int) []models.RankingItem {
	pair, err := s.loadSnapshotPair(ctx, filterFor(platform, region, cat))
	if err != nil {
		s.degrade("platform_ranking", err, "platform", platform, "region", region, "category", cat)
		return []models.RankingItem{}
	}
	return truncate(pair.rank(), limit)
}

// PlatformClimbers returns brands whose rank improved since the previous
// snapshot, biggest gain first.
func (s *Service) PlatformClimbers(ctx context.Context, platform, region, cat string, limit int) []models.RankingItem {
	pair, err := s.loadSnapshotPair(ctx, filterFor(platform, region, cat))
	if err != nil {
		s.degrade("platform_climbers", err, "platform", platform, "region", region, "category", cat)
		return []models.RankingItem{}
	}
	out := []models.RankingItem{}
	if !pair.hasPrev {
		return out
	}
	for _, item := range pair.rank() {
		if item.WowChange > 0 {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WowChange > out[j].WowChange })
	return truncate(out, limit)
}

// PlatformNewEntrants returns brands absent from the previous snapshot, in
// current rank order.
func (s *Service) PlatformNewEntrants(ctx context.Context, platform, region, cat string, limit int) []models.RankingItem {
	pair, err := s.loadSnapshotPair(ctx, filterFor(platform, region, cat))
	if err != nil {
		s.degrade("platform_new_entrants", err, "platform", platform, "region", region, "category", cat)
		return []models.RankingItem{}
	}
	out := []models.RankingItem{}
	if !pair.hasPrev {
		return out
	}
	for _, item := range pair.rank() {
		if item.IsNew {
			out = append(out, item)
		}
	}
	return truncate(out, limit)
}
