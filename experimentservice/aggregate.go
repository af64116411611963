package experimentservice

import (
	"context"
	"strconv"
	"sync"

	"github.com/trialgate/trialgate/trialapi"
	"github.com/trialgate/trialgate/trialtypes"
)

// GetExperimentData builds the unified aggregate in one pass. The task fetch
// comes first because the trial id and genotype ids are discovered from it;
// when it fails or returns no records the requested experiment id doubles as
// the trial id and the genotype fetch is skipped. The four fetches that
// depend only on the resolved trial id run concurrently; none of them blocks
// the others, and a failed sub-call simply leaves its slot nil.
func (s *service) GetExperimentData(ctx context.Context, experimentID string) (*trialtypes.ExperimentData, error) {
	data := &trialtypes.ExperimentData{ExperimentID: experimentID}

	taskData, err := s.api.GetExperimentTask(ctx, experimentID, trialapi.DefaultTaskType)
	if err != nil {
		taskData = nil
	}
	tasks, tasksOK := taskData.([]any)

	trialID := experimentID
	var genotypeIDs []string

	if tasksOK && len(tasks) > 0 {
		data.ExperimentTask = &trialtypes.ExperimentTask{
			ID:           experimentID,
			Type:         trialapi.DefaultTaskType,
			ExperimentID: experimentID,
			Data:         taskData,
		}

		seen := map[string]struct{}{}
		extracted := ""
		for _, task := range tasks {
			record, ok := task.(map[string]any)
			if !ok {
				continue
			}
			if extracted == "" {
				extracted = ExtractTrialID(record)
			}
			for _, id := range ExtractGenotypeIDs(record) {
				seen[id] = struct{}{}
			}
		}
		if extracted != "" {
			trialID = extracted
		}
		for id := range seen {
			genotypeIDs = append(genotypeIDs, id)
		}
	} else {
		// Whole task phase failed; no genotype ids are discoverable, but the
		// trial-scoped data may still exist under the experiment id.
		taskData = nil
	}

	var genotypesData any
	if len(genotypeIDs) > 0 {
		genotypesData, err = s.api.GetGenotypes(ctx, genotypeIDs)
		if err != nil {
			genotypesData = nil
		}
		if records, ok := genotypesData.([]any); ok {
			genotypes := make([]trialtypes.Genotype, 0, len(records))
			for i, record := range records {
				genotypes = append(genotypes, trialtypes.Genotype{
					ID:   positionalID(i),
					Data: record,
				})
			}
			data.Genotypes = genotypes
		}
	}

	notationData, groupsData, notebookData, treatmentData := s.fetchTrialScoped(ctx, trialID)

	if notationData != nil {
		data.TrialNotation = &trialtypes.TrialNotation{
			TrialID:   trialID,
			Notations: asList(notationData),
		}
	}
	if groupsData != nil {
		data.VariableGroups = &trialtypes.VariableGroup{
			TrialID:        trialID,
			VariableGroups: asList(groupsData),
		}
	}

	data.RawData = map[string]any{
		"experiment_task": taskData,
		"genotypes":       genotypesData,
		"trial_notation":  notationData,
		"variable_groups": groupsData,
		"notebook":        notebookData,
		"treatment":       treatmentData,
	}
	return data, nil
}

// fetchTrialScoped issues the four fetches that depend only on the trial id.
// They are data-independent, so they run concurrently and join here; each
// result is nil on failure.
func (s *service) fetchTrialScoped(ctx context.Context, trialID string) (notation, groups, notebook, treatment any) {
	fetch := func(dst *any, call func(context.Context, string) (any, error)) func() {
		return func() {
			if v, err := call(ctx, trialID); err == nil {
				*dst = v
			}
		}
	}

	var wg sync.WaitGroup
	for _, f := range []func(){
		fetch(&notation, s.api.GetTrialNotation),
		fetch(&groups, s.api.GetVariableGroups),
		fetch(&notebook, s.api.GetNotebook),
		fetch(&treatment, s.api.GetTreatment),
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}
	wg.Wait()
	return notation, groups, notebook, treatment
}

func asList(v any) []any {
	if list, ok := v.([]any); ok {
		return list
	}
	return []any{v}
}

func positionalID(i int) string {
	// Positional, not a platform id; repeated calls may reorder.
	return strconv.Itoa(i)
}
