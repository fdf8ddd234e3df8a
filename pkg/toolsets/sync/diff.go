package sync

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/analysis"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

func diffTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "server_side_diff",
				Description: "Run a server-side dry-run diff for an ArgoCD application and report which resources differ between live and target state. Read-only.",
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
			Handler: serverSideDiff,
		},
	}
}

func serverSideDiff(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	application := params.GetString("application", "")
	if application == "" {
		return api.NewToolCallResult("", errors.New("application is required")), nil
	}

	resp, err := params.ArgoCDProvider.ServerSideDiff(params.Context, application, argocd.ServerSideDiffOptions{
		AppNamespace: params.GetString("app_namespace", ""),
		Project:      params.GetString("project", ""),
	})
	if err != nil {
		return api.NewToolCallResult("", errors.Wrapf(err, "failed to diff application %s", application)), nil
	}

	summary := analysis.SummarizeDiffs(resp.Items)

	output := fmt.Sprintf("Server-Side Diff: %s\n", application)
	output += strings.Repeat("=", 80) + "\n\n"
	output += fmt.Sprintf("Total Resources: %d (modified: %d, in sync: %d)\n\n", summary.TotalCount, summary.ModifiedCount, summary.InSyncCount)

	if summary.TotalCount == 0 {
		output += "No diff records returned.\n"
		return api.NewToolCallResult(withJSON(output, summary), nil), nil
	}

	if summary.ModifiedCount > 0 {
		output += "Modified:\n"
		for _, s := range summary.Modified {
			output += fmt.Sprintf("  %s/%s", s.Kind, s.Name)
			if s.Namespace != "" {
				output += fmt.Sprintf(" (namespace %s)", s.Namespace)
			}
			output += fmt.Sprintf(": %s\n", s.DiffSummary)
		}
		output += "\n"
	}
	if summary.InSyncCount > 0 {
		output += "In Sync:\n"
		for _, s := range summary.InSync {
			output += fmt.Sprintf("  %s/%s", s.Kind, s.Name)
			if s.Namespace != "" {
				output += fmt.Sprintf(" (namespace %s)", s.Namespace)
			}
			output += "\n"
		}
	}

	return api.NewToolCallResult(withJSON(output, summary), nil), nil
}
