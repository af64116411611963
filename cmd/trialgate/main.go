package main

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/trialgate/trialgate/apiframework"
	"github.com/trialgate/trialgate/serverapi"
)

var nodeInstanceID = "NODE-Instance-UNSET-dev"

func main() {
	nodeInstanceID = uuid.NewString()[0:8]
	config := &serverapi.Config{}
	if err := serverapi.LoadConfig(config); err != nil {
		log.Fatalf("%s: failed to load configuration: %v", nodeInstanceID, err)
	}
	if config.TrialPlatformBaseURL == "" {
		log.Fatalf("%s: TRIAL_PLATFORM_BASE_URL is required", nodeInstanceID)
	}
	addr := config.Addr
	if addr == "" {
		addr = ":8080"
	}
	ctx := context.TODO()

	internalMux := http.NewServeMux()
	var apiHandler http.Handler = internalMux
	cleanup, err := serverapi.New(ctx, internalMux, nodeInstanceID, config)
	if err != nil {
		log.Fatalf("%s initializing API handler failed: %v", nodeInstanceID, err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("%s cleanup failed: %v", nodeInstanceID, err)
		}
	}()
	apiHandler = apiframework.RequestIDMiddleware(apiHandler)
	apiHandler = apiframework.TracingMiddleware(apiHandler)

	mux := http.NewServeMux()
	mux.Handle("/", apiHandler)
	log.Printf("%s starting server on %s", nodeInstanceID, addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("%s server failed: %v", nodeInstanceID, err)
	}
}
