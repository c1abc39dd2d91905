// Package dashboard assembles the dashboard's views on top of the signal
// service, reading through the view cache.
package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"kbradar/internal/cache"
	"kbradar/internal/category"
	"kbradar/internal/models"
	"kbradar/internal/util"
)

// Views is the computation side. *signals.Service implements it.
type Views interface {
	PlatformRanking(ctx context.Context, platform, region, cat string, limit int) []models.RankingItem
	PlatformClimbers(ctx context.Context, platform, region, cat string, limit int) []models.RankingItem
	PlatformNewEntrants(ctx context.Context, platform, region, cat string, limit int) []models.RankingItem
	ConsistentRankers(ctx context.Context, platform, region, cat string, topN, minAppearances, limit int) []models.ConsistentRanker

	AvailableWeeks(ctx context.Context) []string
	TopRankers(ctx context.Context, cat string, weeks, limit int) []models.TopRankerItem
	Climbers(ctx context.Context, cat string, limit int) []models.ClimberItem
	NewEntrants(ctx context.Context, cat string, limit int) []models.NewEntrantItem
	Crossborder(ctx context.Context, cat string, limit int) []models.CrossBorderItem
	HiddenGems(ctx context.Context, cat string, limit int) []models.HiddenGemItem
	BrandDrilldown(ctx context.Context, brandID string, weeks int) *models.BrandDrilldown

	Search(ctx context.Context, q string, limit int) []models.SearchResult
	CompanyDetail(ctx context.Context, companyID string) *models.CompanyDetail
	BrandProducts(ctx context.Context, brandName string, limit int) []models.BrandProduct
	SocialSignals(ctx context.Context, cat string, limit int) []models.SocialSignalItem
}

const (
	ModeRanking     = "ranking"
	ModeTopRankers  = "top-rankers"
	ModeClimbers    = "climbers"
	ModeNewEntrants = "new-entrants"
)

// Modes lists the per-platform view modes.
var Modes = []string{ModeRanking, ModeTopRankers, ModeClimbers, ModeNewEntrants}

const (
	SignalTopRankers  = "top-rankers"
	SignalClimbers    = "climbers"
	SignalNewEntrants = "new-entrants"
	SignalCrossborder = "crossborder"
	SignalHiddenGems  = "hidden-gems"
	SignalSocial      = "social"
)

var SignalViews = []string{SignalTopRankers, SignalClimbers, SignalNewEntrants, SignalCrossborder, SignalHiddenGems, SignalSocial}

const (
	consistencyTopN           = 20
	consistencyMinAppearances = 2
	topRankerWeeks            = 4
	drilldownWeeks            = 8
)

// DefaultSignalLimit is the list length a signal view shows by default.
func DefaultSignalLimit(view string) int {
	switch view {
	case SignalHiddenGems:
		return 30
	case SignalSocial:
		return 20
	default:
		return 15
	}
}

type Reader struct {
	views   Views
	cache   *cache.Cache
	refresh bool
}

// NewReader reads through c, which may be nil.
func NewReader(v Views, c *cache.Cache) *Reader {
	return &Reader{views: v, cache: c}
}

// refreshing returns a reader that always recomputes and overwrites.
func (r *Reader) refreshing() *Reader {
	return &Reader{views: r.views, cache: r.cache, refresh: true}
}

func (r *Reader) CacheStatus(ctx context.Context) string {
	if r.cache == nil {
		return "disabled"
	}
	if err := r.cache.Ping(ctx); err != nil {
		return "unavailable"
	}
	return "ok"
}

// remember returns the cached view or computes it, reporting whether a value
// was written. Empty views are not stored so a failed aggregation is not
// pinned for a whole TTL.
func remember[T any](ctx context.Context, r *Reader, key string, empty func(T) bool, compute func() T) (T, bool) {
	var v T
	if !r.refresh && r.cache.Get(ctx, key, &v) {
		return v, false
	}
	v = compute()
	if empty(v) {
		return v, false
	}
	return v, r.cache.Set(ctx, key, v)
}

func emptySlice[E any](s []E) bool { return len(s) == 0 }
func nilPtr[E any](p *E) bool      { return p == nil }

func catPart(cat string) string {
	if cat == "" {
		return "all"
	}
	return cat
}

func (r *Reader) Weeks(ctx context.Context) []string {
	v, _ := remember(ctx, r, cache.Key("weeks"), emptySlice[string], func() []string {
		return r.views.AvailableWeeks(ctx)
	})
	return v
}

// Platform returns one platform's view in the given mode.
func (r *Reader) Platform(ctx context.Context, mode, platform, region, cat string, limit int) (models.PlatformView, error) {
	v, _, err := r.platform(ctx, mode, platform, region, cat, limit)
	return v, err
}

func (r *Reader) platform(ctx context.Context, mode, platform, region, cat string, limit int) (models.PlatformView, bool, error) {
	p, ok := category.LookupPlatform(platform)
	if !ok {
		return models.PlatformView{}, false, fmt.Errorf("%w: unknown platform %q", util.ErrInvalidParam, platform)
	}
	view := models.PlatformView{Platform: p.Key, Name: p.Name, Mode: mode}
	key := cache.Key("platform", mode, platform, region, catPart(cat), strconv.Itoa(limit))

	var stored bool
	switch mode {
	case ModeTopRankers:
		view.Items, stored = remember(ctx, r, key, emptySlice[models.ConsistentRanker], func() []models.ConsistentRanker {
			return r.views.ConsistentRankers(ctx, platform, region, cat, consistencyTopN, consistencyMinAppearances, limit)
		})
	case ModeClimbers:
		view.Items, stored = remember(ctx, r, key, emptySlice[models.RankingItem], func() []models.RankingItem {
			return r.views.PlatformClimbers(ctx, platform, region, cat, limit)
		})
	case ModeNewEntrants:
		view.Items, stored = remember(ctx, r, key, emptySlice[models.RankingItem], func() []models.RankingItem {
			return r.views.PlatformNewEntrants(ctx, platform, region, cat, limit)
		})
	case ModeRanking:
		view.Items, stored = remember(ctx, r, key, emptySlice[models.RankingItem], func() []models.RankingItem {
			return r.views.PlatformRanking(ctx, platform, region, cat, limit)
		})
	default:
		return models.PlatformView{}, false, fmt.Errorf("%w: unknown mode %q", util.ErrInvalidParam, mode)
	}
	return view, stored, nil
}

// Region returns the column for one region: its default platform followed
// by the extras, each in the given mode.
func (r *Reader) Region(ctx context.Context, code, mode, cat string, limit int) (*models.RegionColumn, error) {
	col, _, err := r.region(ctx, code, mode, cat, limit)
	return col, err
}

func (r *Reader) region(ctx context.Context, code, mode, cat string, limit int) (*models.RegionColumn, int, error) {
	reg, ok := category.LookupRegion(code)
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown region %q", util.ErrNotFound, code)
	}
	col := &models.RegionColumn{Region: reg.Code, Name: reg.Name, NameKR: reg.NameKR, Platforms: []models.PlatformView{}}
	written := 0
	for _, key := range category.RegionPlatforms(code) {
		p, _ := category.LookupPlatform(key)
		v, stored, err := r.platform(ctx, mode, key, p.Region, cat, limit)
		if err != nil {
			return nil, written, err
		}
		if stored {
			written++
		}
		col.Platforms = append(col.Platforms, v)
	}
	return col, written, nil
}

// Signal returns one cross-platform signal view.
func (r *Reader) Signal(ctx context.Context, view, cat string, limit int) (any, error) {
	v, _, err := r.signal(ctx, view, cat, limit)
	return v, err
}

func (r *Reader) signal(ctx context.Context, view, cat string, limit int) (any, bool, error) {
	key := cache.Key("signals", view, catPart(cat), strconv.Itoa(limit))
	switch view {
	case SignalTopRankers:
		v, stored := remember(ctx, r, key, emptySlice[models.TopRankerItem], func() []models.TopRankerItem {
			return r.views.TopRankers(ctx, cat, topRankerWeeks, limit)
		})
		return v, stored, nil
	case SignalClimbers:
		v, stored := remember(ctx, r, key, emptySlice[models.ClimberItem], func() []models.ClimberItem {
			return r.views.Climbers(ctx, cat, limit)
		})
		return v, stored, nil
	case SignalNewEntrants:
		v, stored := remember(ctx, r, key, emptySlice[models.NewEntrantItem], func() []models.NewEntrantItem {
			return r.views.NewEntrants(ctx, cat, limit)
		})
		return v, stored, nil
	case SignalCrossborder:
		v, stored := remember(ctx, r, key, emptySlice[models.CrossBorderItem], func() []models.CrossBorderItem {
			return r.views.Crossborder(ctx, cat, limit)
		})
		return v, stored, nil
	case SignalHiddenGems:
		v, stored := remember(ctx, r, key, emptySlice[models.HiddenGemItem], func() []models.HiddenGemItem {
			return r.views.HiddenGems(ctx, cat, limit)
		})
		return v, stored, nil
	case SignalSocial:
		v, stored := remember(ctx, r, key, emptySlice[models.SocialSignalItem], func() []models.SocialSignalItem {
			return r.views.SocialSignals(ctx, cat, limit)
		})
		return v, stored, nil
	default:
		return nil, false, fmt.Errorf("%w: unknown signal view %q", util.ErrNotFound, view)
	}
}

func (r *Reader) Drilldown(ctx context.Context, brandID string) *models.BrandDrilldown {
	v, _ := remember(ctx, r, cache.Key("brand", brandID), nilPtr[models.BrandDrilldown], func() *models.BrandDrilldown {
		return r.views.BrandDrilldown(ctx, brandID, drilldownWeeks)
	})
	return v
}

func (r *Reader) Company(ctx context.Context, companyID string) *models.CompanyDetail {
	v, _ := remember(ctx, r, cache.Key("company", companyID), nilPtr[models.CompanyDetail], func() *models.CompanyDetail {
		return r.views.CompanyDetail(ctx, companyID)
	})
	return v
}

func (r *Reader) Products(ctx context.Context, brandName string, limit int) []models.BrandProduct {
	v, _ := remember(ctx, r, cache.Key("products", strings.ToLower(brandName), strconv.Itoa(limit)), emptySlice[models.BrandProduct], func() []models.BrandProduct {
		return r.views.BrandProducts(ctx, brandName, limit)
	})
	return v
}

// Search is never cached; queries are free text.
func (r *Reader) Search(ctx context.Context, q string, limit int) []models.SearchResult {
	return r.views.Search(ctx, q, limit)
}

// WarmRegions recomputes every region column in every mode for cat and
// returns the number of views written.
func (r *Reader) WarmRegions(ctx context.Context, cat string, limit int) (int, error) {
	rr := r.refreshing()
	written := 0
	for _, code := range category.RegionCodes {
		for _, mode := range Modes {
			if err := ctx.Err(); err != nil {
				return written, err
			}
			_, n, err := rr.region(ctx, code, mode, cat, limit)
			written += n
			if err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// WarmSignals recomputes every signal view for cat at its default length,
// plus the week list, and returns the number of views written.
func (r *Reader) WarmSignals(ctx context.Context, cat string) (int, error) {
	rr := r.refreshing()
	written := 0
	if _, stored := remember(ctx, rr, cache.Key("weeks"), emptySlice[string], func() []string {
		return rr.views.AvailableWeeks(ctx)
	}); stored {
		written++
	}
	for _, view := range SignalViews {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		_, stored, err := rr.signal(ctx, view, cat, DefaultSignalLimit(view))
		if err != nil {
			return written, err
		}
		if stored {
			written++
		}
	}
	return written, nil
}
