package sync

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

func rollbackTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "rollback_application",
				Description: "Roll an ArgoCD application back to a previous deployment identified by its history ID (see get_application_history). Blocked when the server runs in read-only mode.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"application": {
							Type:        "string",
							Description: "Application name",
						},
						"history_id": {
							Type:        "integer",
							Description: "History ID of the deployment to roll back to",
						},
						"dry_run": {
							Type:        "boolean",
							Description: "Preview the rollback without applying changes",
						},
						"prune": {
							Type:        "boolean",
							Description: "Delete resources that are no longer defined at the target revision",
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
					Required: []string{"application", "history_id"},
				},
			},
			Handler: rollbackApplication,
		},
	}
}

func rollbackApplication(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	if result := gateClosed(params); result != nil {
		return result, nil
	}

	application := params.GetString("application", "")
	if application == "" {
		return api.NewToolCallResult("", errors.New("application is required")), nil
	}
	historyID := params.GetInt("history_id", -1)
	if historyID < 0 {
		return api.NewToolCallResult("", errors.New("history_id is required")), nil
	}

	req := argocd.RollbackRequest{
		Name:         application,
		ID:           int64(historyID),
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

	app, err := params.ArgoCDProvider.Rollback(params.Context, application, req)
	if err != nil {
		return api.NewToolCallResult("", errors.Wrapf(err, "failed to rollback application %s to id %d", application, historyID)), nil
	}

	output := fmt.Sprintf("Rollback Triggered: %s -> history id %d\n", application, historyID)
	output += strings.Repeat("=", 80) + "\n\n"
	if dryRun {
		output += "Mode: dry-run (no changes applied)\n"
	}
	output += appStatusLine(app) + "\n"
	output += "\nNote: rollback disables automated sync for the application until re-enabled.\n"

	summary := newMutationSummary("rollback", application, app)
	summary.DryRun = dryRun
	id := int64(historyID)
	summary.HistoryID = &id

	return api.NewToolCallResult(withJSON(output, summary), nil), nil
}
