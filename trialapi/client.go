// Package trialapi is the HTTP client for the remote trial-management
// platform. It exposes one method per platform endpoint and decodes every
// response into plain JSON values so callers can pass payloads through
// losslessly.
package trialapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/trialgate/trialgate/apiframework"
	"github.com/trialgate/trialgate/trialtypes"
)

// MaxPageSize is the largest page the platform accepts on list endpoints.
const MaxPageSize = 100

// CatalogPageSize is large enough to fetch the whole variable catalog in one
// call.
const CatalogPageSize = 3000

// API is the platform surface consumed by the gateway services. Implemented
// by *Client; tests substitute a mock.
type API interface {
	GetExperimentTask(ctx context.Context, experimentID, taskType string) (any, error)
	GetGenotypes(ctx context.Context, genotypeIDs []string) (any, error)
	GetTrialNotation(ctx context.Context, trialID string) (any, error)
	GetVariableGroups(ctx context.Context, trialID string) (any, error)
	GetNotebook(ctx context.Context, trialID string) (any, error)
	GetTreatment(ctx context.Context, trialID string) (any, error)
	GetExperiments(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, page, pageSize int) (any, error)
	GetVariableDetails(ctx context.Context, variableID string) (any, error)
	GetVariableCatalog(ctx context.Context, page, pageSize int) (any, error)
	GetVariableGroupDetails(ctx context.Context, variableGroupID string) (any, error)
	GetGenotypeDetails(ctx context.Context, genotypeID string) (any, error)
	GetExperimentStructure(ctx context.Context, experimentID string) (any, error)
	SearchExperimentsByName(ctx context.Context, term string, exact bool) (any, error)
	SearchExperimentsAdvanced(ctx context.Context, criteria trialtypes.SearchCriteria) (any, error)
}

// Config holds everything needed to reach the platform. The token is held as
// an opaque bearer string and attached to every request; no refresh or
// validation happens here.
type Config struct {
	BaseURL string
	Token   string
}

// Client talks to the platform API. It is read-only after construction; a new
// credential means a new Client.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewClient creates a platform client. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(config Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		client:  httpClient,
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		token:   config.Token,
	}
}

var _ API = (*Client)(nil)

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	rURL := c.baseURL + path
	if len(query) > 0 {
		rURL += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, rURL, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, rURL, nil)
	}
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json, text/plain, */*")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do executes the request and decodes the JSON response body. Non-2xx
// responses become errors via apiframework.HandleAPIError.
func (c *Client) do(req *http.Request) (any, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiframework.HandleAPIError(resp)
	}

	var out any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (any, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (any, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// encodeFilterParam marshals a filter or sort object into the JSON string the
// platform expects inside a query parameter.
func encodeFilterParam(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode filter parameter: %w", err)
	}
	return string(raw), nil
}
