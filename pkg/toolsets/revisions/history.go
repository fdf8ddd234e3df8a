package revisions

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/analysis"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

func historyTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "get_application_history",
				Description: "List the deployment history of an ArgoCD application, most recent first, with current and automated markers. History IDs are the rollback targets.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"application": {
							Type:        "string",
							Description: "Application name",
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
			Handler: applicationHistory,
		},
	}
}

func applicationHistory(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	application := params.GetString("application", "")
	if application == "" {
		return api.NewToolCallResult("", errors.New("application is required")), nil
	}

	app, err := params.ArgoCDProvider.GetApplication(params.Context, application, argocd.GetApplicationOptions{
		AppNamespace: params.GetString("app_namespace", ""),
		Project:      params.GetString("project", ""),
	})
	if err != nil {
		return api.NewToolCallResult("", errors.Wrapf(err, "failed to get application %s", application)), nil
	}

	var history []argocd.RevisionHistory
	if app.Status != nil {
		history = app.Status.History
	}
	summary := analysis.SummarizeHistory(application, history)

	output := fmt.Sprintf("Deployment History: %s\n", application)
	output += strings.Repeat("=", 80) + "\n\n"
	output += fmt.Sprintf("Total Entries: %d\n\n", summary.TotalEntries)

	if summary.TotalEntries == 0 {
		output += "No deployment history recorded for this application.\n"
		return api.NewToolCallResult(withJSON(output, summary), nil), nil
	}

	if summary.Truncated {
		output += fmt.Sprintf("Most recent %d deployments:\n\n", analysis.MaxHistoryEntries)
	}
	for _, e := range summary.Entries {
		output += fmt.Sprintf("ID %d: %s", e.ID, e.ShortRevision)
		if e.Current {
			output += " (current)"
		}
		if e.Automated {
			output += " [automated]"
		} else if e.InitiatedBy != "" {
			output += fmt.Sprintf(" [by %s]", e.InitiatedBy)
		}
		output += "\n"
		if e.DeployedAt != "" {
			output += fmt.Sprintf("  Deployed: %s\n", e.DeployedAt)
		}
		if e.RepoURL != "" {
			output += fmt.Sprintf("  Source: %s", e.RepoURL)
			if e.Path != "" {
				output += fmt.Sprintf(" path=%s", e.Path)
			}
			if e.Chart != "" {
				output += fmt.Sprintf(" chart=%s", e.Chart)
			}
			if e.TargetRevision != "" {
				output += fmt.Sprintf(" @ %s", e.TargetRevision)
			}
			output += "\n"
		}
	}

	return api.NewToolCallResult(withJSON(output, summary), nil), nil
}
