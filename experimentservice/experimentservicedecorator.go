package experimentservice

import (
	"context"

	"github.com/trialgate/trialgate/libtracker"
	"github.com/trialgate/trialgate/trialtypes"
)

type activityTrackerDecorator struct {
	service Service
	tracker libtracker.ActivityTracker
}

func (d *activityTrackerDecorator) GetExperimentData(ctx context.Context, experimentID string) (*trialtypes.ExperimentData, error) {
	reportErr, _, endFn := d.tracker.Start(
		ctx,
		"aggregate",
		"experiment",
		"experiment_id", experimentID,
	)
	defer endFn()

	data, err := d.service.GetExperimentData(ctx, experimentID)
	if err != nil {
		reportErr(err)
	}
	return data, err
}

func (d *activityTrackerDecorator) GetVariablesByExperiment(ctx context.Context, experimentID string) map[string]any {
	_, _, endFn := d.tracker.Start(
		ctx,
		"cross_reference",
		"variables",
		"experiment_id", experimentID,
	)
	defer endFn()

	return d.service.GetVariablesByExperiment(ctx, experimentID)
}

func (d *activityTrackerDecorator) CountExperiments(ctx context.Context, filter *trialtypes.FilterNode) (*CountResult, error) {
	reportErr, _, endFn := d.tracker.Start(
		ctx,
		"count",
		"experiments",
	)
	defer endFn()

	result, err := d.service.CountExperiments(ctx, filter)
	if err != nil {
		reportErr(err)
	}
	return result, err
}

func (d *activityTrackerDecorator) ListExperimentsPaginated(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, maxPages int, includeFullData bool) (*PagedExperiments, error) {
	reportErr, _, endFn := d.tracker.Start(
		ctx,
		"list_pages",
		"experiments",
		"max_pages", maxPages,
		"full_data", includeFullData,
	)
	defer endFn()

	result, err := d.service.ListExperimentsPaginated(ctx, filter, sort, maxPages, includeFullData)
	if err != nil {
		reportErr(err)
	}
	return result, err
}

func (d *activityTrackerDecorator) ProbeExperimentEndpoints(ctx context.Context, experimentID string) map[string]any {
	_, _, endFn := d.tracker.Start(
		ctx,
		"probe",
		"experiment",
		"experiment_id", experimentID,
	)
	defer endFn()

	return d.service.ProbeExperimentEndpoints(ctx, experimentID)
}

// WithActivityTracker wraps an experiment Service with activity tracking
func WithActivityTracker(service Service, tracker libtracker.ActivityTracker) Service {
	return &activityTrackerDecorator{
		service: service,
		tracker: tracker,
	}
}

var _ Service = (*activityTrackerDecorator)(nil)
