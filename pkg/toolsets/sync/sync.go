package sync

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

func syncTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "sync_application",
				Description: "Trigger a sync of an ArgoCD application to its target state. Blocked when the server runs in read-only mode. Supports dry-run, prune and an optional retry strategy.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"application": {
							Type:        "string",
							Description: "Application name",
						},
						"revision": {
							Type:        "string",
							Description: "Revision to sync to (defaults to the configured target revision)",
						},
						"dry_run": {
							Type:        "boolean",
							Description: "Preview the sync without applying changes",
						},
						"prune": {
							Type:        "boolean",
							Description: "Delete resources that are no longer defined in the source",
						},
						"retry_limit": {
							Type:        "integer",
							Description: "Number of sync retry attempts (0 disables retry)",
						},
						"retry_backoff_duration": {
							Type:        "string",
							Description: "Initial retry backoff, e.g. '5s'",
						},
						"retry_backoff_max_duration": {
							Type:        "string",
							Description: "Retry backoff ceiling, e.g. '3m'",
						},
						"retry_backoff_factor": {
							Type:        "integer",
							Description: "Retry backoff multiplier",
						},
						"sync_options": {
							Type:        "array",
							Items:       &jsonschema.Schema{Type: "string"},
							Description: "Sync options passed through to ArgoCD, e.g. 'CreateNamespace=true'",
						},
						"app_namespace": {
							Type:        "string",
							Description: "Application namespace",
						},
						"project": {
							Type:        "string",
							Description: "ArgoCD project",
						},
					},
					Required: []string{"application"},
				},
			},
			Handler: syncApplication,
		},
	}
}

func syncApplication(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	if result := gateClosed(params); result != nil {
		return result, nil
	}

	application := params.GetString("application", "")
	if application == "" {
		return api.NewToolCallResult("", errors.New("application is required")), nil
	}

	req := argocd.SyncRequest{
		Name:         application,
		Revision:     params.GetString("revision", ""),
		SyncOptions:  params.GetStringSlice("sync_options", nil),
		AppNamespace: params.GetString("app_namespace", ""),
		Project:      params.GetString("project", ""),
	}
	dryRun := params.GetBool("dry_run", false)
	if dryRun {
		req.DryRun = boolPtr(true)
	}
	if params.GetBool("prune", false) {
		req.Prune = boolPtr(true)
	}
	if limit := params.GetInt("retry_limit", 0); limit > 0 {
		l := int64(limit)
		req.Retry = &argocd.RetryStrategy{Limit: &l}
		duration := params.GetString("retry_backoff_duration", "")
		maxDuration := params.GetString("retry_backoff_max_duration", "")
		factor := params.GetInt("retry_backoff_factor", 0)
		if duration != "" || maxDuration != "" || factor > 0 {
			backoff := &argocd.Backoff{
				Duration:    duration,
				MaxDuration: maxDuration,
			}
			if factor > 0 {
				f := int64(factor)
				backoff.Factor = &f
			}
			req.Retry.Backoff = backoff
		}
	}

	app, err := params.ArgoCDProvider.Sync(params.Context, application, req)
	if err != nil {
		return api.NewToolCallResult("", errors.Wrapf(err, "failed to sync application %s", application)), nil
	}

	output := fmt.Sprintf("Sync Triggered: %s\n", application)
	output += strings.Repeat("=", 80) + "\n\n"
	if dryRun {
		output += "Mode: dry-run (no changes applied)\n"
	}
	if req.Revision != "" {
		output += fmt.Sprintf("Requested Revision: %s\n", req.Revision)
	}
	output += appStatusLine(app) + "\n"
	output += "\nThe sync operation runs asynchronously; use get_application to follow its progress.\n"

	summary := newMutationSummary("sync", application, app)
	summary.DryRun = dryRun
	summary.Revision = req.Revision

	return api.NewToolCallResult(withJSON(output, summary), nil), nil
}
