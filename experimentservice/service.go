// Package experimentservice assembles composite views over the trial
// platform: the full experiment aggregate, the variable cross-reference, and
// bounded experiment counting and multi-page listing.
package experimentservice

import (
	"context"

	"github.com/trialgate/trialgate/trialapi"
	"github.com/trialgate/trialgate/trialtypes"
)

// Service is the aggregation surface of the gateway.
type Service interface {
	// GetExperimentData aggregates task, genotype, notation, variable-group,
	// notebook, and treatment data for one experiment into a single record.
	GetExperimentData(ctx context.Context, experimentID string) (*trialtypes.ExperimentData, error)

	// GetVariablesByExperiment cross-references the experiment's variable
	// groups against the full variable catalog. Failures of any kind surface
	// as an {"error": ...} result, never as an error return.
	GetVariablesByExperiment(ctx context.Context, experimentID string) map[string]any

	// CountExperiments discovers the total number of experiments matching the
	// filter, probing known total-count fields before falling back to
	// pagination counting with a fixed page ceiling.
	CountExperiments(ctx context.Context, filter *trialtypes.FilterNode) (*CountResult, error)

	// ListExperimentsPaginated collects experiments across several pages,
	// optionally reduced to summaries to bound the response size.
	ListExperimentsPaginated(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, maxPages int, includeFullData bool) (*PagedExperiments, error)

	// ProbeExperimentEndpoints calls four endpoints for one id and returns
	// every result unfiltered, for debugging a misbehaving experiment.
	ProbeExperimentEndpoints(ctx context.Context, experimentID string) map[string]any
}

type service struct {
	api trialapi.API
}

// New creates a Service over the given platform API.
func New(api trialapi.API) Service {
	return &service{api: api}
}
