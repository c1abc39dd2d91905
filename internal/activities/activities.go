package activities

import (
	"context"
	"fmt"

	"kbradar/internal/dashboard"
	"kbradar/internal/logger"
	"kbradar/internal/metrics"
)

const defaultWarmLimit = 15

// Warmer recomputes cached views. *dashboard.Reader implements it.
type Warmer interface {
	WarmRegions(ctx context.Context, cat string, limit int) (int, error)
	WarmSignals(ctx context.Context, cat string) (int, error)
}

var _ Warmer = (*dashboard.Reader)(nil)

type Activities struct {
	warmer Warmer
	log    *logger.Logger
}

func New(w Warmer, log *logger.Logger) *Activities {
	if log == nil {
		log = logger.Nop()
	}
	return &Activities{warmer: w, log: log}
}

// WarmRegionViewsActivity refreshes every region column in every mode for
// one category.
func (a *Activities) WarmRegionViewsActivity(ctx context.Context, in WarmViewsInput) (WarmViewsOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultWarmLimit
	}
	n, err := a.warmer.WarmRegions(ctx, in.Category, limit)
	metrics.WarmedViews.Add(float64(n))
	if err != nil {
		return WarmViewsOutput{Written: n}, fmt.Errorf("warm region views for %q: %w", in.Category, err)
	}
	a.log.Info("warmed region views", "category", in.Category, "written", n)
	return WarmViewsOutput{Written: n}, nil
}

// WarmSignalViewsActivity refreshes the cross-platform signal views for one
// category. An empty category warms the unfiltered views.
func (a *Activities) WarmSignalViewsActivity(ctx context.Context, in WarmViewsInput) (WarmViewsOutput, error) {
	n, err := a.warmer.WarmSignals(ctx, in.Category)
	metrics.WarmedViews.Add(float64(n))
	if err != nil {
		return WarmViewsOutput{Written: n}, fmt.Errorf("warm signal views for %q: %w", in.Category, err)
	}
	a.log.Info("warmed signal views", "category", in.Category, "written", n)
	return WarmViewsOutput{Written: n}, nil
}
