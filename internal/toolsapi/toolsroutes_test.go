package toolsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trialgate/trialgate/libtracker"
	"github.com/trialgate/trialgate/toolregistry"
	"github.com/trialgate/trialgate/trialapi"
	"github.com/trialgate/trialgate/trialtypes"
)

// failingAPI errors on every endpoint except the experiment-task fetch.
type failingAPI struct {
	taskResponse any
}

var errStub = errors.New("unreachable")

var _ trialapi.API = (*failingAPI)(nil)

func (f *failingAPI) GetExperimentTask(ctx context.Context, experimentID, taskType string) (any, error) {
	if f.taskResponse != nil {
		return f.taskResponse, nil
	}
	return nil, errStub
}

func (f *failingAPI) GetGenotypes(ctx context.Context, genotypeIDs []string) (any, error) {
	return nil, errStub
}
func (f *failingAPI) GetTrialNotation(ctx context.Context, trialID string) (any, error) {
	return nil, errStub
}
func (f *failingAPI) GetVariableGroups(ctx context.Context, trialID string) (any, error) {
	return nil, errStub
}
func (f *failingAPI) GetNotebook(ctx context.Context, trialID string) (any, error) {
	return nil, errStub
}
func (f *failingAPI) GetTreatment(ctx context.Context, trialID string) (any, error) {
	return nil, errStub
}
func (f *failingAPI) GetExperiments(ctx context.Context, filter *trialtypes.FilterNode, sort map[string]string, page, pageSize int) (any, error) {
	return nil, errStub
}
func (f *failingAPI) GetVariableDetails(ctx context.Context, variableID string) (any, error) {
	return nil, errStub
}
func (f *failingAPI) GetVariableCatalog(ctx context.Context, page, pageSize int) (any, error) {
	return nil, errStub
}
func (f *failingAPI) GetVariableGroupDetails(ctx context.Context, variableGroupID string) (any, error) {
	return nil, errStub
}
func (f *failingAPI) GetGenotypeDetails(ctx context.Context, genotypeID string) (any, error) {
	return nil, errStub
}
func (f *failingAPI) GetExperimentStructure(ctx context.Context, experimentID string) (any, error) {
	return nil, errStub
}
func (f *failingAPI) SearchExperimentsByName(ctx context.Context, term string, exact bool) (any, error) {
	return nil, errStub
}
func (f *failingAPI) SearchExperimentsAdvanced(ctx context.Context, criteria trialtypes.SearchCriteria) (any, error) {
	return nil, errStub
}

func newTestServer(t *testing.T, api trialapi.API) *httptest.Server {
	t.Helper()
	registry := toolregistry.NewWithAPI(api, libtracker.NoopTracker{})
	mux := http.NewServeMux()
	AddToolRoutes(mux, registry)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestToolRoutes(t *testing.T) {
	t.Run("list tools", func(t *testing.T) {
		srv := newTestServer(t, &failingAPI{})

		resp, err := http.Get(srv.URL + "/tools")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var tools []toolregistry.Tool
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&tools))
		require.Len(t, tools, 18)
	})

	t.Run("schemas document", func(t *testing.T) {
		srv := newTestServer(t, &failingAPI{})

		resp, err := http.Get(srv.URL + "/tools/schemas")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var doc map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
		require.Equal(t, "3.0.3", doc["openapi"])
		require.Contains(t, doc["paths"], "/tools/get_experiment_data")
	})

	t.Run("invoke tool", func(t *testing.T) {
		srv := newTestServer(t, &failingAPI{taskResponse: []any{map[string]any{"_id": "task-1"}}})

		body := bytes.NewBufferString(`{"experiment_id": "EXP-1"}`)
		resp, err := http.Post(srv.URL+"/tools/get_experiment_task", "application/json", body)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result []any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		require.Len(t, result, 1)
	})

	t.Run("fetch failure stays a 200 with in-band error", func(t *testing.T) {
		srv := newTestServer(t, &failingAPI{})

		body := bytes.NewBufferString(`{"trial_id": "T1"}`)
		resp, err := http.Post(srv.URL+"/tools/get_trial_notation", "application/json", body)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		require.Contains(t, result["error"], "no trial notation data found")
	})

	t.Run("unknown tool is a 404", func(t *testing.T) {
		srv := newTestServer(t, &failingAPI{})

		resp, err := http.Post(srv.URL+"/tools/does_not_exist", "application/json", bytes.NewBufferString(`{}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing argument is a 400", func(t *testing.T) {
		srv := newTestServer(t, &failingAPI{})

		resp, err := http.Post(srv.URL+"/tools/get_experiment_task", "application/json", bytes.NewBufferString(`{}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty body is allowed", func(t *testing.T) {
		srv := newTestServer(t, &failingAPI{})

		resp, err := http.Post(srv.URL+"/tools/get_experiments_count", "application/json", http.NoBody)
		require.NoError(t, err)
		defer resp.Body.Close()
		// The platform stub fails the count, but the tool call itself is valid.
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		require.Contains(t, result, "error")
	})
}
