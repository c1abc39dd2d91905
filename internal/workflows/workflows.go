package workflows

import (
	"time"

	"kbradar/internal/activities"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const QueryGetWarmProgress = "GetWarmProgress"

// unfilteredCategory is the progress label for the views warmed without a
// category filter.
const unfilteredCategory = "all"

// WarmDashboardWorkflow refreshes the cached dashboard views for each
// category and returns the number of views written. A failing category is
// recorded and skipped.
func WarmDashboardWorkflow(ctx workflow.Context, input WarmInput) (int, error) {
	categories := input.Categories
	if len(categories) == 0 {
		categories = []string{"skincare"}
	}
	progress := WarmProgress{
		Total:       len(categories) + 1,
		PerCategory: map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetWarmProgress, func() (WarmProgress, error) {
		return progress, nil
	}); err != nil {
		return 0, err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	type pending struct {
		label   string
		futures []workflow.Future
	}
	batches := make([]pending, 0, len(categories)+1)
	for _, cat := range categories {
		progress.PerCategory[cat] = "warming"
		in := activities.WarmViewsInput{Category: cat, Limit: input.Limit}
		batches = append(batches, pending{label: cat, futures: []workflow.Future{
			workflow.ExecuteActivity(ctx, "WarmRegionViewsActivity", in),
			workflow.ExecuteActivity(ctx, "WarmSignalViewsActivity", in),
		}})
	}
	progress.PerCategory[unfilteredCategory] = "warming"
	batches = append(batches, pending{label: unfilteredCategory, futures: []workflow.Future{
		workflow.ExecuteActivity(ctx, "WarmSignalViewsActivity", activities.WarmViewsInput{Limit: input.Limit}),
	}})

	for _, b := range batches {
		status := "done"
		for _, f := range b.futures {
			var out activities.WarmViewsOutput
			if err := f.Get(ctx, &out); err != nil {
				workflow.GetLogger(ctx).Warn("warm views failed", "category", b.label, "error", err)
				status = "failed"
				continue
			}
			progress.Written += out.Written
		}
		if status == "failed" {
			progress.Failed++
		}
		progress.Done++
		progress.PerCategory[b.label] = status
	}
	return progress.Written, nil
}
