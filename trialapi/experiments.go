package trialapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/trialgate/trialgate/trialtypes"
)

// DefaultTaskType selects the observation-round tasks of an experiment.
const DefaultTaskType = "observation round"

// GetExperimentTask fetches the task records of an experiment, filtered by
// task type. The platform returns an array of task objects.
func (c *Client) GetExperimentTask(ctx context.Context, experimentID, taskType string) (any, error) {
	if taskType == "" {
		taskType = DefaultTaskType
	}
	query := url.Values{}
	query.Set("type", taskType)
	return c.getJSON(ctx, "/experiment/op-task/experiment/"+url.PathEscape(experimentID), query)
}

// GetExperimentStructure fetches the complete structure and hierarchy of an
// experiment.
func (c *Client) GetExperimentStructure(ctx context.Context, experimentID string) (any, error) {
	return c.getJSON(ctx, "/experiment/structure/"+url.PathEscape(experimentID), nil)
}

// GetExperiments fetches one page of the experiment list. The `_id` field of
// each record is the experiment id. A nil filter means the platform's empty
// filter tree; a nil sort means name ascending. pageSize is clamped to
// MaxPageSize.
func (c *Client) GetExperiments(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, page, pageSize int) (any, error) {
	f := trialtypes.DefaultFilter()
	if filter != nil {
		f = *filter
	}
	if sort == nil {
		sort = map[string]string{"name": "asc"}
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	filterParam, err := encodeFilterParam(f)
	if err != nil {
		return nil, err
	}
	sortParam, err := encodeFilterParam(sort)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))
	query.Set("filter", filterParam)
	query.Set("sort", sortParam)
	return c.getJSON(ctx, "/experiment/v2/trial", query)
}

// searchPageSize is deliberately large so a search returns every match in one
// page.
const searchPageSize = 1000

// SearchExperimentsByName searches experiments by name, exact or substring.
func (c *Client) SearchExperimentsByName(ctx context.Context, term string, exact bool) (any, error) {
	return c.search(ctx, trialtypes.NameFilter(term, exact))
}

// SearchExperimentsAdvanced searches experiments by multiple criteria.
func (c *Client) SearchExperimentsAdvanced(ctx context.Context, criteria trialtypes.SearchCriteria) (any, error) {
	return c.search(ctx, criteria.BuildFilter())
}

func (c *Client) search(ctx context.Context, filter trialtypes.FilterNode) (any, error) {
	filterParam, err := encodeFilterParam(filter)
	if err != nil {
		return nil, err
	}
	sortParam, err := encodeFilterParam(map[string]string{"name": "asc"})
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("page", "0")
	query.Set("pageSize", strconv.Itoa(searchPageSize))
	query.Set("filter", filterParam)
	query.Set("sort", sortParam)
	return c.getJSON(ctx, "/experiment/v2/trial", query)
}
