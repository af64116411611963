package experimentservice

import (
	"context"
	"fmt"

	"github.com/trialgate/trialgate/trialapi"
)

// defaultVariableScope applies when a variable entry omits its scope.
const defaultVariableScope = float64(2)

// GetVariablesByExperiment resolves the variable definitions actually used by
// an experiment. It fetches the experiment's variable-group associations,
// collects every (variableId, scope) pair per level, fetches the full catalog
// in one large page, and enriches each used definition with its usage
// contexts. Every failure mode, transport included, comes back as an
// {"error": ...} result.
func (s *service) GetVariablesByExperiment(ctx context.Context, experimentID string) (result map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			result = map[string]any{"error": fmt.Sprintf("unexpected error: %v", r)}
		}
	}()

	groupsData, err := s.api.GetVariableGroups(ctx, experimentID)
	if err != nil {
		return map[string]any{"error": fmt.Sprintf("failed to fetch variables for experiment %s: %v", experimentID, err)}
	}

	groups, ok := groupsData.([]any)
	if !ok || len(groups) == 0 {
		return map[string]any{"error": fmt.Sprintf("no variable groups found for experiment %s", experimentID)}
	}

	usedIDs := map[string]struct{}{}
	var experimentContext []map[string]any

	for _, g := range groups {
		group, ok := g.(map[string]any)
		if !ok {
			continue
		}
		groupInfo := map[string]any{
			"observation_round_id": group["_id"],
		}
		variablesByLevel := map[string][]map[string]any{}

		levels, _ := group["variableByLevel"].(map[string]any)
		for level, raw := range levels {
			variables, ok := raw.([]any)
			if !ok || len(variables) == 0 {
				continue
			}
			for _, v := range variables {
				entry, ok := v.(map[string]any)
				if !ok {
					continue
				}
				varID, _ := entry["variableId"].(string)
				if varID == "" {
					continue
				}
				usedIDs[varID] = struct{}{}
				scope := entry["scope"]
				if scope == nil {
					scope = defaultVariableScope
				}
				variablesByLevel[level] = append(variablesByLevel[level], map[string]any{
					"variableId": varID,
					"scope":      scope,
				})
			}
		}

		if len(variablesByLevel) > 0 {
			groupInfo["variables_by_level"] = variablesByLevel
			experimentContext = append(experimentContext, groupInfo)
		}
	}

	if len(usedIDs) == 0 {
		return map[string]any{"error": fmt.Sprintf("no variables found in experiment %s", experimentID)}
	}

	catalogResp, err := s.api.GetVariableCatalog(ctx, 0, trialapi.CatalogPageSize)
	if err != nil {
		return map[string]any{"error": fmt.Sprintf("failed to fetch variables for experiment %s: %v", experimentID, err)}
	}

	catalog := catalogRecords(catalogResp)
	if len(catalog) == 0 {
		return map[string]any{"error": "no variables found in system"}
	}

	definitions := map[string]map[string]any{}
	for _, record := range catalog {
		if id, ok := record["_id"].(string); ok {
			definitions[id] = record
		}
	}

	var experimentVariables []map[string]any
	uniqueIDs := make([]string, 0, len(usedIDs))
	for varID := range usedIDs {
		uniqueIDs = append(uniqueIDs, varID)
		definition, ok := definitions[varID]
		if !ok {
			continue
		}

		var usage []map[string]any
		for _, groupInfo := range experimentContext {
			levels, _ := groupInfo["variables_by_level"].(map[string][]map[string]any)
			for level, levelVars := range levels {
				for _, levelVar := range levelVars {
					if levelVar["variableId"] == varID {
						usage = append(usage, map[string]any{
							"observation_round_id": groupInfo["observation_round_id"],
							"level":                level,
							"scope":                levelVar["scope"],
						})
					}
				}
			}
		}

		enriched := make(map[string]any, len(definition)+1)
		for k, v := range definition {
			enriched[k] = v
		}
		enriched["experiment_usage"] = usage
		experimentVariables = append(experimentVariables, enriched)
	}

	return map[string]any{
		"experiment_id":      experimentID,
		"total_variables":    len(experimentVariables),
		"variables":          experimentVariables,
		"experiment_context": experimentContext,
		"metadata": map[string]any{
			"total_observation_rounds": len(experimentContext),
			"unique_variable_ids":      uniqueIDs,
		},
	}
}

// catalogRecords pulls the record list out of the paginated catalog response.
func catalogRecords(resp any) []map[string]any {
	body, ok := resp.(map[string]any)
	if !ok {
		return nil
	}
	list, ok := body["data"].([]any)
	if !ok {
		return nil
	}
	records := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records
}
