package toolregistry

import (
	"net/http"
	"sync/atomic"

	"github.com/trialgate/trialgate/apiframework"
	"github.com/trialgate/trialgate/trialapi"
)

// Config holds the registry's connection to the platform. DefaultToken is the
// process-wide credential (typically sourced from the environment); calls may
// override it per invocation.
type Config struct {
	BaseURL      string
	DefaultToken string
	HTTPClient   *http.Client
}

// clientSource hands out platform clients. An explicit per-call token gets a
// fresh request-scoped client and touches no shared state; the default client
// is built lazily exactly once via compare-and-swap and is immutable after
// that.
type clientSource struct {
	config        Config
	defaultClient atomic.Pointer[trialapi.Client]
}

func newClientSource(config Config) *clientSource {
	return &clientSource{config: config}
}

// resolve returns the client for one invocation. bearerToken == "" selects
// the default client; a missing default credential is a configuration error
// for that call.
func (s *clientSource) resolve(bearerToken string) (trialapi.API, error) {
	if bearerToken != "" {
		return trialapi.NewClient(trialapi.Config{
			BaseURL: s.config.BaseURL,
			Token:   bearerToken,
		}, s.config.HTTPClient), nil
	}

	if client := s.defaultClient.Load(); client != nil {
		return client, nil
	}

	if s.config.DefaultToken == "" {
		return nil, apiframework.MissingCredential("no bearer token provided and no default platform credential is configured")
	}

	client := trialapi.NewClient(trialapi.Config{
		BaseURL: s.config.BaseURL,
		Token:   s.config.DefaultToken,
	}, s.config.HTTPClient)
	// A concurrent loser just uses the winner's client.
	s.defaultClient.CompareAndSwap(nil, client)
	return s.defaultClient.Load(), nil
}
