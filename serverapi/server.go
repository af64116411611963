package serverapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/trialgate/trialgate/apiframework"
	"github.com/trialgate/trialgate/experimentservice"
	"github.com/trialgate/trialgate/internal/experimentapi"
	"github.com/trialgate/trialgate/internal/toolsapi"
	"github.com/trialgate/trialgate/libtracker"
	"github.com/trialgate/trialgate/toolregistry"
	"github.com/trialgate/trialgate/trialapi"
)

func New(
	ctx context.Context,
	mux *http.ServeMux,
	nodeInstanceID string,
	config *Config,
) (func() error, error) {
	cleanup := func() error { return nil }
	stdOuttracker := libtracker.NewLogActivityTracker(slog.Default())
	serveropsChainedTracker := libtracker.ChainedTracker{
		stdOuttracker,
	}
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		apiframework.Error(w, r, apiframework.ErrNotFound, apiframework.ListOperation)
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		// OK
	})
	version := apiframework.GetVersion()
	mux.HandleFunc("GET /version", func(w http.ResponseWriter, r *http.Request) {
		apiframework.Encode(w, r, http.StatusOK, apiframework.AboutServer{Version: version, NodeInstanceID: nodeInstanceID})
	})

	registry := toolregistry.New(toolregistry.Config{
		BaseURL:      config.TrialPlatformBaseURL,
		DefaultToken: config.TrialPlatformToken,
	}, serveropsChainedTracker)
	toolsapi.AddToolRoutes(mux, registry)

	// The REST convenience routes always run under the process credential.
	// Per-call credentials go through the tool surface instead.
	if config.TrialPlatformToken != "" {
		client := trialapi.NewClient(trialapi.Config{
			BaseURL: config.TrialPlatformBaseURL,
			Token:   config.TrialPlatformToken,
		}, nil)
		experimentService := experimentservice.New(client)
		experimentService = experimentservice.WithActivityTracker(experimentService, serveropsChainedTracker)
		experimentapi.AddExperimentRoutes(mux, experimentService, client)
	}

	return cleanup, nil
}

type Config struct {
	Addr                 string `json:"trialgate_addr"`
	TrialPlatformBaseURL string `json:"trial_platform_base_url"`
	TrialPlatformToken   string `json:"trial_platform_token"`
}

func LoadConfig[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("config pointer is nil")
	}
	config := map[string]string{}
	for _, kvPair := range os.Environ() {
		ar := strings.SplitN(kvPair, "=", 2)
		if len(ar) < 2 {
			continue
		}
		key := strings.ToLower(ar[0])
		value := ar[1]
		config[key] = value
	}

	b, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal env vars: %w", err)
	}
	err = json.Unmarshal(b, cfg)
	if err != nil {
		return fmt.Errorf("failed to unmarshal into config struct: %w", err)
	}

	return nil
}
