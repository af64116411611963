package trialapi

import (
	"context"
	"net/url"
)

// GetTrialNotation fetches the notation records of a trial.
func (c *Client) GetTrialNotation(ctx context.Context, trialID string) (any, error) {
	return c.getJSON(ctx, "/experiment/notation/trial/"+url.PathEscape(trialID), nil)
}

// GetVariableGroups fetches the observation-round variable groups of a trial.
func (c *Client) GetVariableGroups(ctx context.Context, trialID string) (any, error) {
	return c.getJSON(ctx, "/experiment/op-task/observation-round/variable-group/trial/"+url.PathEscape(trialID), nil)
}

// GetNotebook fetches the experiment notebook entries of a trial. The trial
// id goes into a filter object rather than the path.
func (c *Client) GetNotebook(ctx context.Context, trialID string) (any, error) {
	filterParam, err := encodeFilterParam(map[string]string{"trialId": trialID})
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("filter", filterParam)
	return c.getJSON(ctx, "/experiment/notebook", query)
}

// GetTreatment fetches the treatment records of a trial.
func (c *Client) GetTreatment(ctx context.Context, trialID string) (any, error) {
	return c.getJSON(ctx, "/experiment/treatment/trial/"+url.PathEscape(trialID), nil)
}
