// cli.go holds the tgate CLI entrypoint (Main), flags, and subcommands.
package gatecli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/trialgate/trialgate/apiframework"
	"github.com/trialgate/trialgate/gatewaysdk"
	"github.com/trialgate/trialgate/serverapi"
)

const (
	defaultGateway = "http://127.0.0.1:8080"
	defaultTimeout = 2 * time.Minute
)

// Main runs the tgate CLI.
func Main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tgate",
	Short: "Call trial platform tools through a running gateway.",
	Long: `tgate talks to a running trialgate instance: list the available tools,
inspect their schemas, and invoke them from the command line.

  Quickstart:
    tgate serve                                   # start a gateway (reads TRIAL_PLATFORM_* env)
    tgate tools                                   # list callable tools
    tgate call get_experiment_data --arg experiment_id=abc123`,
	SilenceUsage: true,
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools the gateway exposes.",
	RunE:  runTools,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the tool catalog as an OpenAPI document.",
	RunE:  runSchema,
}

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke one tool by name.",
	Long: `Invoke one tool by name. Arguments are passed as repeated --arg key=value
pairs, or as a single JSON object via --json.`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gateway server in the foreground.",
	RunE:  runServe,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("gateway", defaultGateway, "Gateway base URL")
	f.String("token", "", "Gateway API token")
	f.Duration("timeout", defaultTimeout, "Maximum execution time (e.g., 30s, 5m)")

	callCmd.Flags().StringArray("arg", nil, "Tool argument as key=value (repeatable)")
	callCmd.Flags().String("json", "", "Tool arguments as a JSON object (overrides --arg)")

	rootCmd.AddCommand(toolsCmd, schemaCmd, callCmd, serveCmd)
}

// sdkClient builds a gateway SDK client from flags and config file defaults.
func sdkClient(cmd *cobra.Command) (*gatewaysdk.Client, context.Context, context.CancelFunc, error) {
	flags := cmd.Root().PersistentFlags()

	cfg, _, err := loadLocalConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	gateway, _ := flags.GetString("gateway")
	if gateway == defaultGateway && !flags.Changed("gateway") && cfg.Gateway != "" {
		gateway = cfg.Gateway
	}
	token, _ := flags.GetString("token")
	if token == "" && cfg.Token != "" {
		token = cfg.Token
	}
	timeout, _ := flags.GetDuration("timeout")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	client, err := gatewaysdk.NewClient(ctx, gatewaysdk.Config{
		BaseURL: gateway,
		Token:   token,
	}, nil)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return client, ctx, cancel, nil
}

func runTools(cmd *cobra.Command, _ []string) error {
	client, ctx, cancel, err := sdkClient(cmd)
	if err != nil {
		slog.Error("Failed to reach gateway", "error", err)
		return err
	}
	defer cancel()

	tools, err := client.ToolService.GetTools(ctx)
	if err != nil {
		slog.Error("Failed to list tools", "error", err)
		return err
	}
	for _, tool := range tools {
		fmt.Printf("%-36s %s\n", tool.Function.Name, tool.Function.Description)
	}
	return nil
}

func runSchema(cmd *cobra.Command, _ []string) error {
	client, ctx, cancel, err := sdkClient(cmd)
	if err != nil {
		slog.Error("Failed to reach gateway", "error", err)
		return err
	}
	defer cancel()

	schemas, err := client.ToolService.GetSchemas(ctx)
	if err != nil {
		slog.Error("Failed to fetch schemas", "error", err)
		return err
	}
	printOutput(schemas)
	return nil
}

func runCall(cmd *cobra.Command, args []string) error {
	toolName := args[0]

	toolArgs := map[string]any{}
	if rawJSON, _ := cmd.Flags().GetString("json"); rawJSON != "" {
		if err := json.Unmarshal([]byte(rawJSON), &toolArgs); err != nil {
			slog.Error("Invalid --json argument", "error", err)
			return err
		}
	} else {
		pairs, _ := cmd.Flags().GetStringArray("arg")
		for _, pair := range pairs {
			key, value, found := strings.Cut(pair, "=")
			if !found || key == "" {
				return fmt.Errorf("invalid --arg %q, expected key=value", pair)
			}
			toolArgs[key] = value
		}
	}

	client, ctx, cancel, err := sdkClient(cmd)
	if err != nil {
		slog.Error("Failed to reach gateway", "error", err)
		return err
	}
	defer cancel()

	result, err := client.ToolService.Exec(ctx, toolName, toolArgs)
	if err != nil {
		slog.Error("Tool call failed", "tool", toolName, "error", err)
		return err
	}
	printOutput(result)
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	nodeInstanceID := uuid.NewString()[0:8]
	config := &serverapi.Config{}
	if err := serverapi.LoadConfig(config); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if config.TrialPlatformBaseURL == "" {
		return fmt.Errorf("TRIAL_PLATFORM_BASE_URL is required")
	}
	addr := config.Addr
	if addr == "" {
		addr = ":8080"
	}

	internalMux := http.NewServeMux()
	var apiHandler http.Handler = internalMux
	cleanup, err := serverapi.New(cmd.Context(), internalMux, nodeInstanceID, config)
	if err != nil {
		return fmt.Errorf("initializing API handler failed: %w", err)
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
	return http.ListenAndServe(addr, mux)
}
