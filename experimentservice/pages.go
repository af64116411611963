package experimentservice

import (
	"context"
	"fmt"

	"github.com/trialgate/trialgate/trialapi"
	"github.com/trialgate/trialgate/trialtypes"
)

const (
	listPageSize = 50
	// Response-size ceilings: summaries stay light, full records are heavy.
	maxSummaryRecords = 500
	maxFullRecords    = 100
)

// PagedExperiments is the multi-page listing result.
type PagedExperiments struct {
	Experiments       []any  `json:"experiments"`
	TotalFetched      int    `json:"total_fetched"`
	PagesFetched      int    `json:"pages_fetched"`
	PaginationSummary string `json:"pagination_summary"`
	DataType          string `json:"data_type"`
	Note              string `json:"note,omitempty"`
}

// ListExperimentsPaginated fetches up to maxPages pages (maxPages <= 0 means
// no page cap; the record ceilings still apply). With includeFullData false
// each record is reduced to its summary fields.
func (s *service) ListExperimentsPaginated(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, maxPages int, includeFullData bool) (*PagedExperiments, error) {
	var all []any
	page := 0
	totalFetched := 0

	for {
		if maxPages > 0 && page >= maxPages {
			break
		}

		resp, err := s.api.GetExperiments(ctx, filter, sort, page, listPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch experiments page %d: %w", page, err)
		}

		records := experimentRecords(resp)
		if len(records) == 0 {
			break
		}

		if includeFullData {
			all = append(all, records...)
		} else {
			for _, r := range records {
				all = append(all, summarize(r))
			}
		}
		totalFetched += len(records)

		if len(records) < listPageSize {
			break
		}
		page++

		if !includeFullData && totalFetched >= maxSummaryRecords {
			break
		}
		if includeFullData && totalFetched >= maxFullRecords {
			break
		}
	}

	result := &PagedExperiments{
		Experiments:       all,
		TotalFetched:      totalFetched,
		PagesFetched:      page + 1,
		PaginationSummary: fmt.Sprintf("Fetched %d experiments from %d pages", totalFetched, page+1),
		DataType:          "summary",
	}
	if includeFullData {
		result.DataType = "full"
	} else {
		result.Note = "This returns summary data only. Use include_full_data=true to get complete experiment data, or get_all_experiments for individual pages."
	}
	return result, nil
}

// summarize reduces one experiment record to its identifying fields.
func summarize(record any) any {
	full, ok := record.(map[string]any)
	if !ok {
		return record
	}
	summary := trialtypes.ExperimentSummary{
		Status:    full["status"],
		CreatedAt: full["createdAt"],
		UpdatedAt: full["updatedAt"],
	}
	summary.ID, _ = full["_id"].(string)
	summary.Name, _ = full["name"].(string)
	summary.Description, _ = full["description"].(string)
	return summary
}

// ProbeExperimentEndpoints issues the four trial-scoped fetches for one id
// and returns every result raw, nil where the call failed. Intended for
// debugging an experiment that aggregates strangely.
func (s *service) ProbeExperimentEndpoints(ctx context.Context, experimentID string) map[string]any {
	results := map[string]any{}

	if v, err := s.api.GetExperimentTask(ctx, experimentID, trialapi.DefaultTaskType); err == nil {
		results["experiment_task"] = v
	} else {
		results["experiment_task"] = nil
	}
	if v, err := s.api.GetTrialNotation(ctx, experimentID); err == nil {
		results["trial_notation"] = v
	} else {
		results["trial_notation"] = nil
	}
	if v, err := s.api.GetVariableGroups(ctx, experimentID); err == nil {
		results["variable_groups"] = v
	} else {
		results["variable_groups"] = nil
	}
	if v, err := s.api.GetNotebook(ctx, experimentID); err == nil {
		results["notebook"] = v
	} else {
		results["notebook"] = nil
	}
	return results
}
