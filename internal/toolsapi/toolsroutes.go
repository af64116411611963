package toolsapi

import (
	"errors"
	"net/http"

	serverops "github.com/trialgate/trialgate/apiframework"
	"github.com/trialgate/trialgate/toolregistry"
)

func AddToolRoutes(mux *http.ServeMux, registry *toolregistry.Registry) {
	s := &toolService{registry: registry}

	mux.HandleFunc("GET /tools", s.list)
	mux.HandleFunc("GET /tools/schemas", s.getSchemas)
	mux.HandleFunc("POST /tools/{name}", s.exec)
}

type toolService struct {
	registry *toolregistry.Registry
}

// Lists every callable tool with its parameter schema.
//
// Returns the tool catalog in function-calling form.
func (s *toolService) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tools, err := s.registry.GetTools(ctx)
	if err != nil {
		_ = serverops.Error(w, r, err, serverops.ListOperation)
		return
	}

	_ = serverops.Encode(w, r, http.StatusOK, tools) // @response []toolregistry.Tool
}

// Retrieves the tool catalog as an OpenAPI document.
func (s *toolService) getSchemas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	schemas, err := s.registry.GetSchemas(ctx)
	if err != nil {
		_ = serverops.Error(w, r, err, serverops.ListOperation)
		return
	}

	_ = serverops.Encode(w, r, http.StatusOK, schemas) // @response any
}

// Invokes one tool by name.
//
// The request body is the tool's JSON argument object. Platform fetch
// failures come back inside the result as an object with an error field;
// an HTTP error status means the call itself was invalid (unknown tool,
// bad arguments, missing credential).
func (s *toolService) exec(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := serverops.GetPathParam(r, "name", "The name of the tool to invoke.")

	args, err := serverops.Decode[map[string]any](r) // @request map[string]any
	if err != nil && !errors.Is(err, serverops.ErrEmptyRequestBody) {
		_ = serverops.Error(w, r, err, serverops.ExecuteOperation)
		return
	}

	result, err := s.registry.Exec(ctx, &toolregistry.ToolCall{Name: name, Args: args})
	if err != nil {
		if errors.Is(err, toolregistry.ErrUnknownTool) {
			err = serverops.NotFound(err.Error())
		}
		_ = serverops.Error(w, r, err, serverops.ExecuteOperation)
		return
	}

	_ = serverops.Encode(w, r, http.StatusOK, result) // @response any
}
