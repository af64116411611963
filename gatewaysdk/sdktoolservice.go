package gatewaysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/trialgate/trialgate/apiframework"
	"github.com/trialgate/trialgate/toolregistry"
)

// ToolService is the remote view of the gateway's tool surface.
type ToolService interface {
	GetTools(ctx context.Context) ([]toolregistry.Tool, error)
	GetSchemas(ctx context.Context) (*openapi3.T, error)
	Exec(ctx context.Context, name string, args map[string]any) (any, error)
}

// HTTPToolService implements ToolService using HTTP calls to the gateway API.
type HTTPToolService struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewHTTPToolService creates a new HTTP client that implements ToolService.
func NewHTTPToolService(baseURL, token string, client *http.Client) ToolService {
	if client == nil {
		client = http.DefaultClient
	}

	// Ensure baseURL doesn't end with a slash
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &HTTPToolService{
		client:  client,
		baseURL: baseURL,
		token:   token,
	}
}

// GetTools implements ToolService.GetTools.
func (s *HTTPToolService) GetTools(ctx context.Context) ([]toolregistry.Tool, error) {
	reqUrl := s.baseURL + "/tools"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqUrl, nil)
	if err != nil {
		return nil, err
	}

	if s.token != "" {
		req.Header.Set("X-API-Key", s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiframework.HandleAPIError(resp)
	}

	var tools []toolregistry.Tool
	if err := json.NewDecoder(resp.Body).Decode(&tools); err != nil {
		return nil, err
	}

	return tools, nil
}

// GetSchemas implements ToolService.GetSchemas.
func (s *HTTPToolService) GetSchemas(ctx context.Context) (*openapi3.T, error) {
	reqUrl := s.baseURL + "/tools/schemas"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqUrl, nil)
	if err != nil {
		return nil, err
	}

	if s.token != "" {
		req.Header.Set("X-API-Key", s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiframework.HandleAPIError(resp)
	}

	var schemas openapi3.T
	if err := json.NewDecoder(resp.Body).Decode(&schemas); err != nil {
		return nil, err
	}

	return &schemas, nil
}

// Exec implements ToolService.Exec.
func (s *HTTPToolService) Exec(ctx context.Context, name string, args map[string]any) (any, error) {
	reqUrl := fmt.Sprintf("%s/tools/%s", s.baseURL, url.PathEscape(name))

	if args == nil {
		args = map[string]any{}
	}
	body, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqUrl, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("X-API-Key", s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiframework.HandleAPIError(resp)
	}

	var result any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return result, nil
}
