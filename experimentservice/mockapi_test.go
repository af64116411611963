package experimentservice

import (
	"context"
	"errors"

	"github.com/trialgate/trialgate/trialapi"
	"github.com/trialgate/trialgate/trialtypes"
)

var errUnavailable = errors.New("endpoint unavailable")

// mockAPI implements trialapi.API with per-method overrides. Methods without
// an override fail, which keeps tests honest about which endpoints they hit.
type mockAPI struct {
	getExperimentTask       func(ctx context.Context, experimentID, taskType string) (any, error)
	getGenotypes            func(ctx context.Context, genotypeIDs []string) (any, error)
	getTrialNotation        func(ctx context.Context, trialID string) (any, error)
	getVariableGroups       func(ctx context.Context, trialID string) (any, error)
	getNotebook             func(ctx context.Context, trialID string) (any, error)
	getTreatment            func(ctx context.Context, trialID string) (any, error)
	getExperiments          func(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, page, pageSize int) (any, error)
	getVariableDetails      func(ctx context.Context, variableID string) (any, error)
	getVariableCatalog      func(ctx context.Context, page, pageSize int) (any, error)
	getVariableGroupDetails func(ctx context.Context, variableGroupID string) (any, error)
	getGenotypeDetails      func(ctx context.Context, genotypeID string) (any, error)
	getExperimentStructure  func(ctx context.Context, experimentID string) (any, error)
	searchByName            func(ctx context.Context, term string, exact bool) (any, error)
	searchAdvanced          func(ctx context.Context, criteria trialtypes.SearchCriteria) (any, error)
}

var _ trialapi.API = (*mockAPI)(nil)

func (m *mockAPI) GetExperimentTask(ctx context.Context, experimentID, taskType string) (any, error) {
	if m.getExperimentTask == nil {
		return nil, errUnavailable
	}
	return m.getExperimentTask(ctx, experimentID, taskType)
}

func (m *mockAPI) GetGenotypes(ctx context.Context, genotypeIDs []string) (any, error) {
	if m.getGenotypes == nil {
		return nil, errUnavailable
	}
	return m.getGenotypes(ctx, genotypeIDs)
}

func (m *mockAPI) GetTrialNotation(ctx context.Context, trialID string) (any, error) {
	if m.getTrialNotation == nil {
		return nil, errUnavailable
	}
	return m.getTrialNotation(ctx, trialID)
}

func (m *mockAPI) GetVariableGroups(ctx context.Context, trialID string) (any, error) {
	if m.getVariableGroups == nil {
		return nil, errUnavailable
	}
	return m.getVariableGroups(ctx, trialID)
}

func (m *mockAPI) GetNotebook(ctx context.Context, trialID string) (any, error) {
	if m.getNotebook == nil {
		return nil, errUnavailable
	}
	return m.getNotebook(ctx, trialID)
}

func (m *mockAPI) GetTreatment(ctx context.Context, trialID string) (any, error) {
	if m.getTreatment == nil {
		return nil, errUnavailable
	}
	return m.getTreatment(ctx, trialID)
}

func (m *mockAPI) GetExperiments(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, page, pageSize int) (any, error) {
	if m.getExperiments == nil {
		return nil, errUnavailable
	}
	return m.getExperiments(ctx, filter, sort, page, pageSize)
}

func (m *mockAPI) GetVariableDetails(ctx context.Context, variableID string) (any, error) {
	if m.getVariableDetails == nil {
		return nil, errUnavailable
	}
	return m.getVariableDetails(ctx, variableID)
}

func (m *mockAPI) GetVariableCatalog(ctx context.Context, page, pageSize int) (any, error) {
	if m.getVariableCatalog == nil {
		return nil, errUnavailable
	}
	return m.getVariableCatalog(ctx, page, pageSize)
}

func (m *mockAPI) GetVariableGroupDetails(ctx context.Context, variableGroupID string) (any, error) {
	if m.getVariableGroupDetails == nil {
		return nil, errUnavailable
	}
	return m.getVariableGroupDetails(ctx, variableGroupID)
}

func (m *mockAPI) GetGenotypeDetails(ctx context.Context, genotypeID string) (any, error) {
	if m.getGenotypeDetails == nil {
		return nil, errUnavailable
	}
	return m.getGenotypeDetails(ctx, genotypeID)
}

func (m *mockAPI) GetExperimentStructure(ctx context.Context, experimentID string) (any, error) {
	if m.getExperimentStructure == nil {
		return nil, errUnavailable
	}
	return m.getExperimentStructure(ctx, experimentID)
}

func (m *mockAPI) SearchExperimentsByName(ctx context.Context, term string, exact bool) (any, error) {
	if m.searchByName == nil {
		return nil, errUnavailable
	}
	return m.searchByName(ctx, term, exact)
}

func (m *mockAPI) SearchExperimentsAdvanced(ctx context.Context, criteria trialtypes.SearchCriteria) (any, error) {
	if m.searchAdvanced == nil {
		return nil, errUnavailable
	}
	return m.searchAdvanced(ctx, criteria)
}
