package workflows

import (
	"context"
	"errors"
	"testing"

	"kbradar/internal/activities"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func newWarmEnv() *testsuite.TestWorkflowEnvironment {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(WarmDashboardWorkflow)
	registerActivityName(env, "WarmRegionViewsActivity", func(context.Context, activities.WarmViewsInput) (activities.WarmViewsOutput, error) {
		return activities.WarmViewsOutput{}, nil
	})
	registerActivityName(env, "WarmSignalViewsActivity", func(context.Context, activities.WarmViewsInput) (activities.WarmViewsOutput, error) {
		return activities.WarmViewsOutput{}, nil
	})
	return env
}

func TestWarmDashboardWorkflowSumsWrites(t *testing.T) {
	env := newWarmEnv()
	env.OnActivity("WarmRegionViewsActivity", mock.Anything, activities.WarmViewsInput{Category: "skincare", Limit: 15}).Return(activities.WarmViewsOutput{Written: 24}, nil)
	env.OnActivity("WarmRegionViewsActivity", mock.Anything, activities.WarmViewsInput{Category: "haircare", Limit: 15}).Return(activities.WarmViewsOutput{Written: 20}, nil)
	env.OnActivity("WarmSignalViewsActivity", mock.Anything, mock.Anything).Return(activities.WarmViewsOutput{Written: 6}, nil)

	env.ExecuteWorkflow(WarmDashboardWorkflow, WarmInput{Categories: []string{"skincare", "haircare"}, Limit: 15})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var written int
	require.NoError(t, env.GetWorkflowResult(&written))
	require.Equal(t, 24+20+6*3, written)
}

func TestWarmDashboardWorkflowContinuesPastFailedCategory(t *testing.T) {
	env := newWarmEnv()
	env.OnActivity("WarmRegionViewsActivity", mock.Anything, activities.WarmViewsInput{Category: "makeup"}).Return(activities.WarmViewsOutput{}, errors.New("db down"))
	env.OnActivity("WarmRegionViewsActivity", mock.Anything, activities.WarmViewsInput{Category: "skincare"}).Return(activities.WarmViewsOutput{Written: 10}, nil)
	env.OnActivity("WarmSignalViewsActivity", mock.Anything, mock.Anything).Return(activities.WarmViewsOutput{Written: 1}, nil)

	env.ExecuteWorkflow(WarmDashboardWorkflow, WarmInput{Categories: []string{"makeup", "skincare"}})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var written int
	require.NoError(t, env.GetWorkflowResult(&written))
	require.Equal(t, 10+1*3, written)

	res, err := env.QueryWorkflow(QueryGetWarmProgress)
	require.NoError(t, err)
	var progress WarmProgress
	require.NoError(t, res.Get(&progress))
	require.Equal(t, 3, progress.Done)
	require.Equal(t, 1, progress.Failed)
	require.Equal(t, "failed", progress.PerCategory["makeup"])
	require.Equal(t, "done", progress.PerCategory["all"])
}

func TestWarmDashboardWorkflowDefaultsCategory(t *testing.T) {
	env := newWarmEnv()
	env.OnActivity("WarmRegionViewsActivity", mock.Anything, activities.WarmViewsInput{Category: "skincare"}).Return(activities.WarmViewsOutput{Written: 2}, nil)
	env.OnActivity("WarmSignalViewsActivity", mock.Anything, mock.Anything).Return(activities.WarmViewsOutput{}, nil)

	env.ExecuteWorkflow(WarmDashboardWorkflow, WarmInput{})
	require.True(t, env.IsWorkflowCompleted())

	var written int
	require.NoError(t, env.GetWorkflowResult(&written))
	require.Equal(t, 2, written)
}
