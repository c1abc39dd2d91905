package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"kbradar/internal/cache"
	"kbradar/internal/models"
	"kbradar/internal/util"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type memRedis struct {
	data map[string]string
	sets int
}

func newMemRedis() *memRedis { return &memRedis{data: map[string]string{}} }

func (m *memRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	m.sets++
	m.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Ping(context.Context) *redis.StatusCmd { return redis.NewStatusResult("PONG", nil) }
func (m *memRedis) Close() error                           { return nil }

// stubViews returns one item for ranking, climbers, weeks, top rankers and
// social, and nothing for everything else.
type stubViews struct {
	calls map[string]int
}

func newStubViews() *stubViews { return &stubViews{calls: map[string]int{}} }

func (s *stubViews) hit(name string) { s.calls[name]++ }

func (s *stubViews) PlatformRanking(_ context.Context, platform, _, _ string, _ int) []models.RankingItem {
	s.hit("ranking")
	return []models.RankingItem{{Rank: 1, Brand: "Cosrx", Title: platform}}
}
func (s *stubViews) PlatformClimbers(context.Context, string, string, string, int) []models.RankingItem {
	s.hit("climbers")
	return []models.RankingItem{{Rank: 2, Brand: "Anua", WowChange: 3}}
}
func (s *stubViews) PlatformNewEntrants(context.Context, string, string, string, int) []models.RankingItem {
	s.hit("new-entrants")
	return nil
}
func (s *stubViews) ConsistentRankers(context.Context, string, string, string, int, int, int) []models.ConsistentRanker {
	s.hit("consistent")
	return nil
}
func (s *stubViews) AvailableWeeks(context.Context) []string {
	s.hit("weeks")
	return []string{"2026-10-12"}
}
func (s *stubViews) TopRankers(context.Context, string, int, int) []models.TopRankerItem {
	s.hit("top-rankers")
	return []models.TopRankerItem{{BrandID: "b1", BrandName: "Cosrx"}}
}
func (s *stubViews) Climbers(context.Context, string, int) []models.ClimberItem {
	s.hit("signal-climbers")
	return nil
}
func (s *stubViews) NewEntrants(context.Context, string, int) []models.NewEntrantItem {
	s.hit("signal-new-entrants")
	return nil
}
func (s *stubViews) Crossborder(context.Context, string, int) []models.CrossBorderItem {
	s.hit("crossborder")
	return nil
}
func (s *stubViews) HiddenGems(context.Context, string, int) []models.HiddenGemItem {
	s.hit("hidden-gems")
	return nil
}
func (s *stubViews) BrandDrilldown(_ context.Context, brandID string, _ int) *models.BrandDrilldown {
	s.hit("drilldown")
	if brandID == "missing" {
		return nil
	}
	return &models.BrandDrilldown{BrandID: brandID}
}
func (s *stubViews) Search(context.Context, string, int) []models.SearchResult {
	s.hit("search")
	return []models.SearchResult{{ID: "b1", Name: "Cosrx", Type: "brand"}}
}
func (s *stubViews) CompanyDetail(context.Context, string) *models.CompanyDetail {
	s.hit("company")
	return nil
}
func (s *stubViews) BrandProducts(context.Context, string, int) []models.BrandProduct {
	s.hit("products")
	return nil
}
func (s *stubViews) SocialSignals(context.Context, string, int) []models.SocialSignalItem {
	s.hit("social")
	return []models.SocialSignalItem{{}}
}

func newCachedReader() (*Reader, *stubViews, *memRedis) {
	v := newStubViews()
	rdb := newMemRedis()
	return NewReader(v, cache.NewWithClient(rdb, time.Minute, nil)), v, rdb
}

func TestPlatformReadsThroughCache(t *testing.T) {
	r, v, rdb := newCachedReader()
	ctx := context.Background()

	first, err := r.Platform(ctx, ModeRanking, "oliveyoung", "KR", "skincare", 20)
	require.NoError(t, err)
	require.Equal(t, "OliveYoung", first.Name)
	second, err := r.Platform(ctx, ModeRanking, "oliveyoung", "KR", "skincare", 20)
	require.NoError(t, err)

	require.Equal(t, 1, v.calls["ranking"])
	require.Equal(t, 1, rdb.sets)
	require.Equal(t, first.Items, second.Items)
}

func TestEmptyViewsAreNotStored(t *testing.T) {
	r, v, rdb := newCachedReader()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := r.Platform(ctx, ModeNewEntrants, "amazon_us", "US", "", 15)
		require.NoError(t, err)
	}
	require.Equal(t, 2, v.calls["new-entrants"])
	require.Zero(t, rdb.sets)

	require.Nil(t, r.Drilldown(ctx, "missing"))
	require.Nil(t, r.Drilldown(ctx, "missing"))
	require.Equal(t, 2, v.calls["drilldown"])
}

func TestPlatformRejectsUnknownInputs(t *testing.T) {
	r := NewReader(newStubViews(), nil)
	ctx := context.Background()

	_, err := r.Platform(ctx, ModeRanking, "nope", "KR", "", 10)
	require.True(t, errors.Is(err, util.ErrInvalidParam))
	_, err = r.Platform(ctx, "sideways", "oliveyoung", "KR", "", 10)
	require.True(t, errors.Is(err, util.ErrInvalidParam))
	_, err = r.Region(ctx, "JP", ModeRanking, "", 10)
	require.True(t, errors.Is(err, util.ErrNotFound))
	_, err = r.Signal(ctx, "trending", "", 10)
	require.True(t, errors.Is(err, util.ErrNotFound))
}

func TestRegionColumnOrder(t *testing.T) {
	r := NewReader(newStubViews(), nil)
	col, err := r.Region(context.Background(), "US", ModeRanking, "", 10)
	require.NoError(t, err)
	require.Equal(t, "US", col.Region)
	keys := []string{}
	for _, p := range col.Platforms {
		keys = append(keys, p.Platform)
	}
	require.Equal(t, []string{"amazon_us", "ulta", "tiktokshop_us"}, keys)
}

func TestIDKeysAreCaseSensitive(t *testing.T) {
	r, v, rdb := newCachedReader()
	ctx := context.Background()

	require.Equal(t, "B1", r.Drilldown(ctx, "B1").BrandID)
	require.Equal(t, "b1", r.Drilldown(ctx, "b1").BrandID)
	require.Equal(t, "B1", r.Drilldown(ctx, "B1").BrandID)
	require.Equal(t, 2, v.calls["drilldown"])
	require.Equal(t, 2, rdb.sets)
}

func TestSearchIsNotCached(t *testing.T) {
	r, v, rdb := newCachedReader()
	r.Search(context.Background(), "cosrx", 10)
	r.Search(context.Background(), "cosrx", 10)
	require.Equal(t, 2, v.calls["search"])
	require.Zero(t, rdb.sets)
}

func TestWarmCountsStoredViews(t *testing.T) {
	r, v, rdb := newCachedReader()
	ctx := context.Background()

	// 8 platforms across KR, US and AE; ranking and climbers are non-empty.
	n, err := r.WarmRegions(ctx, "skincare", 15)
	require.NoError(t, err)
	require.Equal(t, 16, n)
	require.Equal(t, 8, v.calls["ranking"])

	// Warming overwrites even when a value is already cached.
	n, err = r.WarmRegions(ctx, "skincare", 15)
	require.NoError(t, err)
	require.Equal(t, 16, n)
	require.Equal(t, 16, v.calls["ranking"])

	n, err = r.WarmSignals(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, 16+16+3, rdb.sets)

	// A later read is served from the warmed entry.
	r.Signal(ctx, SignalTopRankers, "", DefaultSignalLimit(SignalTopRankers))
	require.Equal(t, 1, v.calls["top-rankers"])
}

func TestWarmStopsOnCancelledContext(t *testing.T) {
	r, _, _ := newCachedReader()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.WarmRegions(ctx, "", 15)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCacheStatus(t *testing.T) {
	require.Equal(t, "disabled", NewReader(newStubViews(), nil).CacheStatus(context.Background()))
	r, _, _ := newCachedReader()
	require.Equal(t, "ok", r.CacheStatus(context.Background()))
}
