package experimentapi

import (
	"net/http"
	"strconv"

	serverops "github.com/trialgate/trialgate/apiframework"
	"github.com/trialgate/trialgate/experimentservice"
	"github.com/trialgate/trialgate/trialapi"
)

func AddExperimentRoutes(mux *http.ServeMux, service experimentservice.Service, api trialapi.API) {
	s := &experimentAPI{service: service, api: api}

	mux.HandleFunc("GET /experiments", s.list)
	mux.HandleFunc("GET /experiments/count", s.count)
	mux.HandleFunc("GET /experiments/search", s.search)
	mux.HandleFunc("GET /experiments/{id}/data", s.getData)
	mux.HandleFunc("GET /experiments/{id}/variables", s.getVariables)
	mux.HandleFunc("GET /experiments/{id}/probe", s.probe)
}

type experimentAPI struct {
	service experimentservice.Service
	api     trialapi.API
}

// Lists one page of experiments.
func (s *experimentAPI) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pageStr := serverops.GetQueryParam(r, "page", "0", "The page number to fetch, starting at 0.")
	pageSizeStr := serverops.GetQueryParam(r, "page_size", "50", "The number of experiments per page.")

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		_ = serverops.Error(w, r, serverops.BadQueryValue("page", err.Error()), serverops.ListOperation)
		return
	}
	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil {
		_ = serverops.Error(w, r, serverops.BadQueryValue("page_size", err.Error()), serverops.ListOperation)
		return
	}

	experiments, err := s.api.GetExperiments(ctx, nil, nil, page, pageSize)
	if err != nil {
		_ = serverops.Error(w, r, err, serverops.ListOperation)
		return
	}

	_ = serverops.Encode(w, r, http.StatusOK, experiments) // @response any
}

// Counts experiments on the platform, with pagination guidance.
//
// The count may be a lower bound when the platform reports no usable total.
func (s *experimentAPI) count(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := s.service.CountExperiments(ctx, nil)
	if err != nil {
		_ = serverops.Error(w, r, err, serverops.ListOperation)
		return
	}

	_ = serverops.Encode(w, r, http.StatusOK, result) // @response experimentservice.CountResult
}

// Searches experiments by name.
func (s *experimentAPI) search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	term := serverops.GetQueryParam(r, "q", "", "The name or partial name to search for.")
	if term == "" {
		_ = serverops.Error(w, r, serverops.MissingParameter("q"), serverops.ListOperation)
		return
	}
	exactStr := serverops.GetQueryParam(r, "exact", "false", "Whether to match the name exactly.")
	exact, err := strconv.ParseBool(exactStr)
	if err != nil {
		_ = serverops.Error(w, r, serverops.BadQueryValue("exact", err.Error()), serverops.ListOperation)
		return
	}

	results, err := s.api.SearchExperimentsByName(ctx, term, exact)
	if err != nil {
		_ = serverops.Error(w, r, err, serverops.ListOperation)
		return
	}

	_ = serverops.Encode(w, r, http.StatusOK, results) // @response any
}

// Retrieves the complete aggregated data for one experiment.
//
// Aggregation is best-effort: sections the platform could not provide come
// back null inside the result rather than failing the request.
func (s *experimentAPI) getData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := serverops.GetPathParam(r, "id", "The unique identifier for the experiment.")

	data, err := s.service.GetExperimentData(ctx, id)
	if err != nil {
		_ = serverops.Error(w, r, err, serverops.GetOperation)
		return
	}

	_ = serverops.Encode(w, r, http.StatusOK, data) // @response trialtypes.ExperimentData
}

// Retrieves every variable used by one experiment, enriched with catalog
// definitions and usage context.
func (s *experimentAPI) getVariables(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := serverops.GetPathParam(r, "id", "The unique identifier for the experiment.")

	result := s.service.GetVariablesByExperiment(ctx, id)

	_ = serverops.Encode(w, r, http.StatusOK, result) // @response map[string]any
}

// Probes the per-experiment platform endpoints and returns the raw results.
func (s *experimentAPI) probe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := serverops.GetPathParam(r, "id", "The unique identifier for the experiment.")

	results := s.service.ProbeExperimentEndpoints(ctx, id)

	_ = serverops.Encode(w, r, http.StatusOK, results) // @response map[string]any
}
