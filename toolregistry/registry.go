package toolregistry

import (
	"context"
	"fmt"
	"sort"

	"github.com/trialgate/trialgate/experimentservice"
	"github.com/trialgate/trialgate/libtracker"
	"github.com/trialgate/trialgate/trialapi"
	"github.com/trialgate/trialgate/trialtypes"
)

// ErrUnknownTool is returned when a call names a tool that is not registered.
var ErrUnknownTool = fmt.Errorf("unknown tool")

// Registry resolves tool calls by name and executes them against the
// platform. Fetch failures never escape a tool: they come back as
// {"error": ...} results. The only call-level errors are an unknown tool
// name, malformed arguments, and a missing credential.
type Registry struct {
	source  *clientSource
	tracker libtracker.ActivityTracker
	tools   map[string]toolDefinition

	// apiOverride pins every invocation to one API instance; tests use it to
	// substitute a mock platform.
	apiOverride trialapi.API
}

type toolDefinition struct {
	tool    Tool
	handler func(ctx context.Context, d deps, args Args) (any, error)
}

type deps struct {
	api trialapi.API
	svc experimentservice.Service
}

// New creates a registry connected to the platform described by config.
func New(config Config, tracker libtracker.ActivityTracker) *Registry {
	if tracker == nil {
		tracker = libtracker.NoopTracker{}
	}
	r := &Registry{
		source:  newClientSource(config),
		tracker: tracker,
	}
	r.tools = buildTools()
	return r
}

// NewWithAPI creates a registry that always uses the given API, bypassing
// credential resolution. Intended for tests.
func NewWithAPI(api trialapi.API, tracker libtracker.ActivityTracker) *Registry {
	r := New(Config{}, tracker)
	r.apiOverride = api
	return r
}

// Supports lists the registered tool names in stable order.
func (r *Registry) Supports(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// GetTools returns every tool definition, sorted by name.
func (r *Registry) GetTools(ctx context.Context) ([]Tool, error) {
	names, _ := r.Supports(ctx)
	tools := make([]Tool, 0, len(names))
	for _, name := range names {
		tools = append(tools, r.tools[name].tool)
	}
	return tools, nil
}

// Exec invokes one tool. The optional bearer_token argument overrides the
// default credential for this call only.
func (r *Registry) Exec(ctx context.Context, call *ToolCall) (any, error) {
	def, ok := r.tools[call.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, call.Name)
	}

	args := Args(call.Args)
	if args == nil {
		args = Args{}
	}

	api := r.apiOverride
	if api == nil {
		var err error
		api, err = r.source.resolve(args.String("bearer_token", ""))
		if err != nil {
			return nil, err
		}
	}

	svc := experimentservice.WithActivityTracker(experimentservice.New(api), r.tracker)

	reportErr, _, endFn := r.tracker.Start(ctx, "exec", "tool", "tool_name", call.Name)
	defer endFn()

	result, err := def.handler(ctx, deps{api: api, svc: svc}, args)
	if err != nil {
		reportErr(err)
		return nil, err
	}
	return result, nil
}

// fetchResult converts a client fetch into the tool result contract: the
// decoded payload on success, {"error": ...} on failure.
func fetchResult(v any, err error, notFoundMsg string) any {
	if err != nil {
		return map[string]any{"error": notFoundMsg}
	}
	return v
}

func buildTools() map[string]toolDefinition {
	defs := []toolDefinition{
		{
			tool: makeTool("get_experiment_data",
				"Get complete experiment data including task info, genotypes, trial notations, and variable groups.",
				params(
					strParam("experiment_id", "The experiment ID to fetch data for", true),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				experimentID := args.String("experiment_id", "")
				if experimentID == "" {
					return nil, missingArg("experiment_id")
				}
				return d.svc.GetExperimentData(ctx, experimentID)
			},
		},
		{
			tool: makeTool("get_experiment_task",
				"Get experiment task data only.",
				params(
					strParam("experiment_id", "The experiment ID to fetch task data for", true),
					strParamDefault("task_type", "Type of task", trialapi.DefaultTaskType),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				experimentID := args.String("experiment_id", "")
				if experimentID == "" {
					return nil, missingArg("experiment_id")
				}
				taskType := args.String("task_type", trialapi.DefaultTaskType)
				v, err := d.api.GetExperimentTask(ctx, experimentID, taskType)
				return fetchResult(v, err, fmt.Sprintf("no experiment task data found for experiment %s", experimentID)), nil
			},
		},
		{
			tool: makeTool("get_genotypes",
				"Get genotype data for specific IDs.",
				params(
					arrParam("genotype_ids", "List of genotype IDs to fetch", true),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				ids := args.StringSlice("genotype_ids")
				if len(ids) == 0 {
					return nil, missingArg("genotype_ids")
				}
				v, err := d.api.GetGenotypes(ctx, ids)
				if err != nil {
					return map[string]any{"error": fmt.Sprintf("no genotype data found for IDs: %v", ids)}, nil
				}
				return map[string]any{"genotypes": v}, nil
			},
		},
		{
			tool: makeTool("get_trial_notation",
				"Get trial notation data.",
				params(
					strParam("trial_id", "The trial ID to fetch notation data for", true),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				trialID := args.String("trial_id", "")
				if trialID == "" {
					return nil, missingArg("trial_id")
				}
				v, err := d.api.GetTrialNotation(ctx, trialID)
				return fetchResult(v, err, fmt.Sprintf("no trial notation data found for trial %s", trialID)), nil
			},
		},
		{
			tool: makeTool("get_variable_groups",
				"Get observation round variable groups for a trial.",
				params(
					strParam("trial_id", "The trial ID to fetch variable groups for", true),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				trialID := args.String("trial_id", "")
				if trialID == "" {
					return nil, missingArg("trial_id")
				}
				v, err := d.api.GetVariableGroups(ctx, trialID)
				return fetchResult(v, err, fmt.Sprintf("no variable groups data found for trial %s", trialID)), nil
			},
		},
		{
			tool: makeTool("get_experiment_notebook",
				"Get experiment notebook data for a trial.",
				params(
					strParam("trial_id", "The trial ID to fetch notebook data for", true),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				trialID := args.String("trial_id", "")
				if trialID == "" {
					return nil, missingArg("trial_id")
				}
				v, err := d.api.GetNotebook(ctx, trialID)
				return fetchResult(v, err, fmt.Sprintf("no notebook data found for trial %s", trialID)), nil
			},
		},
		{
			tool: makeTool("get_experiment_treatment",
				"Get experiment treatment data for a trial.",
				params(
					strParam("trial_id", "The trial ID to fetch treatment data for", true),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				trialID := args.String("trial_id", "")
				if trialID == "" {
					return nil, missingArg("trial_id")
				}
				v, err := d.api.GetTreatment(ctx, trialID)
				return fetchResult(v, err, fmt.Sprintf("no treatment data found for trial %s", trialID)), nil
			},
		},
		{
			tool: makeTool("get_all_experiments",
				"Get one page of experiments. The '_id' field in each experiment is the experiment ID; call repeatedly with increasing page numbers to get everything.",
				params(
					objParam("filters", "Filter tree for experiments; defaults to the empty filter"),
					objParam("sort", "Sort configuration; defaults to name ascending"),
					intParamDefault("page", "Page number, starting at 0", 0),
					intParamDefault("page_size", "Results per page (max 100)", 50),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				filter, err := decodeFilterArg(args)
				if err != nil {
					return nil, err
				}
				v, err := d.api.GetExperiments(ctx, filter, args.StringMap("sort"), args.Int("page", 0), args.Int("page_size", 50))
				return fetchResult(v, err, "failed to fetch experiments data"), nil
			},
		},
		{
			tool: makeTool("get_variable_details",
				"Get detailed information about a specific variable.",
				params(
					strParam("variable_id", "The variable ID to fetch details for", true),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				variableID := args.String("variable_id", "")
				if variableID == "" {
					return nil, missingArg("variable_id")
				}
				v, err := d.api.GetVariableDetails(ctx, variableID)
				return fetchResult(v, err, fmt.Sprintf("no variable details found for variable %s", variableID)), nil
			},
		},
		{
			tool: makeTool("get_variables_by_experiment",
				"Get all variables used by a specific experiment, cross-referenced against the variable catalog with usage context.",
				params(
					strParam("experiment_id", "The experiment ID to fetch variables for", true),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				experimentID := args.String("experiment_id", "")
				if experimentID == "" {
					return nil, missingArg("experiment_id")
				}
				return d.svc.GetVariablesByExperiment(ctx, experimentID), nil
			},
		},
		{
			tool: makeTool("get_variable_group_details",
				"Get detailed information about a variable group.",
				params(
					strParam("variable_group_id", "The variable group ID to fetch details for", true),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				groupID := args.String("variable_group_id", "")
				if groupID == "" {
					return nil, missingArg("variable_group_id")
				}
				v, err := d.api.GetVariableGroupDetails(ctx, groupID)
				return fetchResult(v, err, fmt.Sprintf("no variable group details found for group %s", groupID)), nil
			},
		},
		{
			tool: makeTool("get_genotype_details",
				"Get detailed information about a specific genotype.",
				params(
					strParam("genotype_id", "The genotype ID to fetch details for", true),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				genotypeID := args.String("genotype_id", "")
				if genotypeID == "" {
					return nil, missingArg("genotype_id")
				}
				v, err := d.api.GetGenotypeDetails(ctx, genotypeID)
				return fetchResult(v, err, fmt.Sprintf("no genotype details found for genotype %s", genotypeID)), nil
			},
		},
		{
			tool: makeTool("get_experiment_structure",
				"Get the complete structure and hierarchy of an experiment.",
				params(
					strParam("experiment_id", "The experiment ID to fetch structure for", true),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				experimentID := args.String("experiment_id", "")
				if experimentID == "" {
					return nil, missingArg("experiment_id")
				}
				v, err := d.api.GetExperimentStructure(ctx, experimentID)
				return fetchResult(v, err, fmt.Sprintf("no experiment structure found for experiment %s", experimentID)), nil
			},
		},
		{
			tool: makeTool("search_experiments_by_name",
				"Search experiments by name, with exact or partial matching.",
				params(
					strParam("search_term", "The name or partial name to search for", true),
					boolParamDefault("exact_match", "Whether to match the name exactly", false),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				term := args.String("search_term", "")
				if term == "" {
					return nil, missingArg("search_term")
				}
				v, err := d.api.SearchExperimentsByName(ctx, term, args.Bool("exact_match", false))
				return fetchResult(v, err, fmt.Sprintf("failed to search experiments with term %q", term)), nil
			},
		},
		{
			tool: makeTool("search_experiments_advanced",
				"Search experiments by multiple criteria: name, description, status, created_after, created_before, tags.",
				params(
					objParamRequired("search_criteria", "Search criteria object"),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				if args.Object("search_criteria") == nil {
					return nil, missingArg("search_criteria")
				}
				var criteria trialtypes.SearchCriteria
				if err := args.Decode("search_criteria", &criteria); err != nil {
					return nil, err
				}
				v, err := d.api.SearchExperimentsAdvanced(ctx, criteria)
				return fetchResult(v, err, "failed to search experiments with the given criteria"), nil
			},
		},
		{
			tool: makeTool("get_experiments_count",
				"Get the total count of experiments matching the filters, with pagination guidance.",
				params(
					objParam("filters", "Filter tree for experiments; defaults to the empty filter"),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				filter, err := decodeFilterArg(args)
				if err != nil {
					return nil, err
				}
				result, err := d.svc.CountExperiments(ctx, filter)
				return fetchResult(result, err, "failed to fetch experiments count"), nil
			},
		},
		{
			tool: makeTool("get_all_experiments_paginated",
				"Get experiments across multiple pages automatically. Returns summaries by default to bound response size; set include_full_data for complete records.",
				params(
					objParam("filters", "Filter tree for experiments; defaults to the empty filter"),
					objParam("sort", "Sort configuration; defaults to name ascending"),
					intParamDefault("max_pages", "Maximum pages to fetch; -1 for all pages", 5),
					boolParamDefault("include_full_data", "Whether to include complete experiment records", false),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				filter, err := decodeFilterArg(args)
				if err != nil {
					return nil, err
				}
				result, err := d.svc.ListExperimentsPaginated(ctx, filter, args.StringMap("sort"), args.Int("max_pages", 5), args.Bool("include_full_data", false))
				if err != nil {
					return map[string]any{"error": err.Error()}, nil
				}
				return result, nil
			},
		},
		{
			tool: makeTool("probe_experiment_endpoints",
				"Call the task, notation, variable-group, and notebook endpoints for one experiment ID and return every result unfiltered. Diagnostic.",
				params(
					strParam("experiment_id", "The experiment ID to probe", true),
					bearerParam(),
				)),
			handler: func(ctx context.Context, d deps, args Args) (any, error) {
				experimentID := args.String("experiment_id", "")
				if experimentID == "" {
					return nil, missingArg("experiment_id")
				}
				return d.svc.ProbeExperimentEndpoints(ctx, experimentID), nil
			},
		},
	}

	tools := make(map[string]toolDefinition, len(defs))
	for _, def := range defs {
		tools[def.tool.Function.Name] = def
	}
	return tools
}

func decodeFilterArg(args Args) (*trialtypes.FilterNode, error) {
	if args.Object("filters") == nil {
		return nil, nil
	}
	var filter trialtypes.FilterNode
	if err := args.Decode("filters", &filter); err != nil {
		return nil, err
	}
	return &filter, nil
}
