package experimentservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetExperimentData(t *testing.T) {
	ctx := context.Background()

	t.Run("full aggregate", func(t *testing.T) {
		taskRecords := []any{
			map[string]any{
				"trialId":     "T1",
				"genotypeIds": []any{"G1", "G2"},
			},
		}
		notation := []any{map[string]any{"note": "n1"}}
		groups := []any{map[string]any{"_id": "VG1"}}
		notebook := map[string]any{"pages": float64(3)}
		treatment := []any{map[string]any{"name": "control"}}

		var genotypeRequest []string
		api := &mockAPI{
			getExperimentTask: func(ctx context.Context, experimentID, taskType string) (any, error) {
				require.Equal(t, "EXP-1", experimentID)
				require.Equal(t, "observation round", taskType)
				return taskRecords, nil
			},
			getGenotypes: func(ctx context.Context, genotypeIDs []string) (any, error) {
				genotypeRequest = genotypeIDs
				return []any{map[string]any{"name": "a"}, map[string]any{"name": "b"}}, nil
			},
			getTrialNotation: func(ctx context.Context, trialID string) (any, error) {
				require.Equal(t, "T1", trialID)
				return notation, nil
			},
			getVariableGroups: func(ctx context.Context, trialID string) (any, error) {
				return groups, nil
			},
			getNotebook: func(ctx context.Context, trialID string) (any, error) {
				return notebook, nil
			},
			getTreatment: func(ctx context.Context, trialID string) (any, error) {
				return treatment, nil
			},
		}

		data, err := New(api).GetExperimentData(ctx, "EXP-1")
		require.NoError(t, err)

		require.Equal(t, "EXP-1", data.ExperimentID)
		require.NotNil(t, data.ExperimentTask)
		require.Equal(t, "EXP-1", data.ExperimentTask.ExperimentID)
		require.ElementsMatch(t, []string{"G1", "G2"}, genotypeRequest)
		require.Len(t, data.Genotypes, 2)
		require.Equal(t, "0", data.Genotypes[0].ID)

		require.NotNil(t, data.TrialNotation)
		require.Equal(t, "T1", data.TrialNotation.TrialID)
		require.Equal(t, notation, data.TrialNotation.Notations)

		require.NotNil(t, data.VariableGroups)
		require.Equal(t, groups, data.VariableGroups.VariableGroups)

		require.Equal(t, notebook, data.RawData["notebook"])
		require.Equal(t, treatment, data.RawData["treatment"])
		for _, key := range []string{"experiment_task", "genotypes", "trial_notation", "variable_groups", "notebook", "treatment"} {
			require.Contains(t, data.RawData, key)
		}
	})

	t.Run("task fetch failure falls back to experiment id", func(t *testing.T) {
		var trialRequests []string
		api := &mockAPI{
			getTrialNotation: func(ctx context.Context, trialID string) (any, error) {
				trialRequests = append(trialRequests, trialID)
				return []any{map[string]any{"note": "fallback"}}, nil
			},
		}

		data, err := New(api).GetExperimentData(ctx, "EXP-2")
		require.NoError(t, err)

		require.Nil(t, data.ExperimentTask)
		require.Empty(t, data.Genotypes)
		require.Equal(t, []string{"EXP-2"}, trialRequests)
		require.NotNil(t, data.TrialNotation)
		require.Equal(t, "EXP-2", data.TrialNotation.TrialID)

		require.Nil(t, data.RawData["experiment_task"])
		require.Nil(t, data.RawData["genotypes"])
		require.Nil(t, data.RawData["variable_groups"])
	})

	t.Run("empty task list skips genotype fetch", func(t *testing.T) {
		genotypesCalled := false
		api := &mockAPI{
			getExperimentTask: func(ctx context.Context, experimentID, taskType string) (any, error) {
				return []any{}, nil
			},
			getGenotypes: func(ctx context.Context, genotypeIDs []string) (any, error) {
				genotypesCalled = true
				return nil, nil
			},
		}

		data, err := New(api).GetExperimentData(ctx, "EXP-3")
		require.NoError(t, err)
		require.False(t, genotypesCalled)
		require.Nil(t, data.ExperimentTask)
		require.Nil(t, data.RawData["experiment_task"])
	})

	t.Run("failed sub-calls leave nil slots", func(t *testing.T) {
		api := &mockAPI{
			getExperimentTask: func(ctx context.Context, experimentID, taskType string) (any, error) {
				return []any{map[string]any{"trialId": "T9"}}, nil
			},
		}

		data, err := New(api).GetExperimentData(ctx, "EXP-4")
		require.NoError(t, err)
		require.Nil(t, data.TrialNotation)
		require.Nil(t, data.VariableGroups)
		require.Nil(t, data.RawData["trial_notation"])
		require.Nil(t, data.RawData["notebook"])
		require.NotNil(t, data.RawData["experiment_task"])
	})
}
