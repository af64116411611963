// Package trialtypes holds the shared data model for the trial platform
// gateway: the composite experiment aggregate, its typed sub-records, and the
// filter tree accepted by the platform's list endpoints.
package trialtypes

// ExperimentTask wraps the task payload returned by the platform for one
// experiment. Data carries whatever the remote service returned, a single
// object or an ordered list of task records; the shape is owned by the
// platform, not by this gateway.
type ExperimentTask struct {
	ID           string `json:"id"`
	Type         string `json:"type,omitempty"`
	ExperimentID string `json:"experiment_id,omitempty"`
	Data         any    `json:"data,omitempty"`
}

// Genotype is one element of a batched genotype response. ID is the position
// in the batch response, not a stable platform identifier; repeated calls may
// order differently.
type Genotype struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Data any    `json:"data,omitempty"`
}

// TrialNotation groups the notation records fetched for one trial.
type TrialNotation struct {
	TrialID   string `json:"trial_id"`
	Notations []any  `json:"notations,omitempty"`
}

// VariableGroup groups the observation-round variable-group records fetched
// for one trial. Each record maps a level to its {variableId, scope} pairs.
type VariableGroup struct {
	TrialID        string `json:"trial_id"`
	VariableGroups []any  `json:"variable_groups,omitempty"`
}

// ExperimentData is the unified aggregate built by a single aggregation pass.
// ExperimentID is set at construction and never changes. Every other field is
// optional and populated independently: a failed sub-call leaves its field nil
// without blocking the others. Fields are only ever added, never cleared.
// RawData retains the unprocessed payload of every sub-call (nil for failed
// ones) keyed by experiment_task, genotypes, trial_notation, variable_groups,
// notebook, and treatment.
type ExperimentData struct {
	ExperimentID   string         `json:"experiment_id"`
	ExperimentTask *ExperimentTask `json:"experiment_task,omitempty"`
	Genotypes      []Genotype     `json:"genotypes,omitempty"`
	TrialNotation  *TrialNotation `json:"trial_notation,omitempty"`
	VariableGroups *VariableGroup `json:"variable_groups,omitempty"`
	RawData        map[string]any `json:"raw_data,omitempty"`
}

// ExperimentSummary is the reduced record emitted by multi-page listing when
// full payloads are not requested.
type ExperimentSummary struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      any    `json:"status,omitempty"`
	CreatedAt   any    `json:"createdAt,omitempty"`
	UpdatedAt   any    `json:"updatedAt,omitempty"`
}
