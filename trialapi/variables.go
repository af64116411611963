package trialapi

import (
	"context"
	"net/url"
	"strconv"
)

// GetVariableDetails fetches one variable definition.
func (c *Client) GetVariableDetails(ctx context.Context, variableID string) (any, error) {
	return c.getJSON(ctx, "/core/variable/"+url.PathEscape(variableID), nil)
}

// GetVariableCatalog fetches one page of the paginated variable catalog.
func (c *Client) GetVariableCatalog(ctx context.Context, page, pageSize int) (any, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))
	return c.getJSON(ctx, "/core/variables/custom/paginated", query)
}

// GetVariableGroupDetails fetches one variable-group record.
func (c *Client) GetVariableGroupDetails(ctx context.Context, variableGroupID string) (any, error) {
	return c.getJSON(ctx, "/core/variable-group/"+url.PathEscape(variableGroupID), nil)
}
