package signals

import (
	"context"
	"sort"

	"kbradar/internal/brands"
	"kbradar/internal/models"
)

type appearance struct {
	brand  string
	dates  map[string]struct{}
	best   int
	latest models.CommerceRankingRow
}

// ConsistentRankers returns brands that stayed within topN across the
// platform's snapshots. minAppearances is clamped to the number of snapshots
// available so short histories still produce a view.
func (s *Service) ConsistentRankers(ctx context.Context, platform, region, cat string, topN, minAppearances, limit int) []models.ConsistentRanker {
	f := filterFor(platform, region, cat)
	fail := func(err error) []models.ConsistentRanker {
		s.degrade("consistent_rankers", err, "platform", platform, "region", region, "category", cat)
		return []models.ConsistentRanker{}
	}

	dates, err := s.rankings.SnapshotDates(ctx, f, 0)
	if err != nil {
		return fail(err)
	}
	if len(dates) == 0 {
		return []models.ConsistentRanker{}
	}
	rows, err := s.rankings.SnapshotRows(ctx, f, dates, topN)
	if err != nil {
		return fail(err)
	}

	effectiveMin := minAppearances
	if effectiveMin > len(dates) {
		effectiveMin = len(dates)
	}

	index := make(map[string]*appearance)
	order := make([]*appearance, 0)
	for _, r := range rows {
		b := brands.Resolve(r.BrandText, r.Title)
		a, ok := index[b]
		if !ok {
			a = &appearance{brand: b, dates: map[string]struct{}{}, best: r.RankPosition, latest: r}
			index[b] = a
			order = append(order, a)
		}
		a.dates[r.SnapshotDate] = struct{}{}
		if r.RankPosition < a.best {
			a.best = r.RankPosition
		}
		// Display fields follow the most recent date; within a date the
		// first row seen (lowest rank) wins.
		if r.SnapshotDate > a.latest.SnapshotDate {
			a.latest = r
		}
	}

	kept := make([]*appearance, 0, len(order))
	for _, a := range order {
		if len(a.dates) >= effectiveMin {
			kept = append(kept, a)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].best != kept[j].best {
			return kept[i].best < kept[j].best
		}
		return len(kept[i].dates) > len(kept[j].dates)
	})
	kept = truncate(kept, limit)

	out := make([]models.ConsistentRanker, 0, len(kept))
	for i, a := range kept {
		out = append(out, models.ConsistentRanker{
			RankingItem:    toRankingItem(i+1, brandRow{brand: a.brand, row: a.latest}),
			Appearances:    len(a.dates),
			TotalSnapshots: len(dates),
			BestRank:       a.best,
		})
	}
	return out
}
