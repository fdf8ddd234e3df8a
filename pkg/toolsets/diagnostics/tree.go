package diagnostics

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/analysis"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

func treeTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "resource_tree",
				Description: "Summarize the resource hierarchy of an ArgoCD application: orphan count, kind and health aggregates, and a deterministic node sample.",
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
			Handler: resourceTree,
		},
	}
}

func resourceTree(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	application := params.GetString("application", "")
	if application == "" {
		return api.NewToolCallResult("", errors.New("application is required")), nil
	}

	tree, err := params.ArgoCDProvider.ResourceTree(params.Context, application, argocd.ResourceTreeOptions{
		AppNamespace: params.GetString("app_namespace", ""),
		Project:      params.GetString("project", ""),
	})
	if err != nil {
		return api.NewToolCallResult("", errors.Wrapf(err, "failed to get resource tree for %s", application)), nil
	}

	summary := analysis.SummarizeTree(tree.Nodes, tree.OrphanedNodes)

	output := fmt.Sprintf("Resource Tree: %s\n", application)
	output += strings.Repeat("=", 80) + "\n\n"
	output += fmt.Sprintf("Total Resources: %d (orphaned: %d)\n", summary.TotalCount, summary.OrphanCount)
	if len(summary.CountsByKind) > 0 {
		output += "By Kind:"
		for _, kind := range sortedKeys(summary.CountsByKind) {
			output += fmt.Sprintf(" %s=%d", kind, summary.CountsByKind[kind])
		}
		output += "\n"
	}
	if len(summary.CountsByHealth) > 0 {
		output += "By Health:"
		for _, health := range sortedKeys(summary.CountsByHealth) {
			output += fmt.Sprintf(" %s=%d", health, summary.CountsByHealth[health])
		}
		output += "\n"
	}
	output += "\n"

	if summary.TotalCount == 0 {
		output += "No resources in the tree.\n"
		return api.NewToolCallResult(withJSON(output, summary), nil), nil
	}

	if summary.Truncated {
		output += fmt.Sprintf("Sample (%d of %d, sorted by kind and name):\n\n", len(summary.Samples), summary.TotalCount)
	} else {
		output += "Resources (sorted by kind and name):\n\n"
	}
	for _, s := range summary.Samples {
		output += fmt.Sprintf("%s/%s", s.Kind, s.Name)
		if s.Namespace != "" {
			output += fmt.Sprintf(" (namespace %s)", s.Namespace)
		}
		output += fmt.Sprintf(" health=%s parents=%d", s.Health, s.ParentCount)
		if s.Orphaned {
			output += " ORPHANED"
		}
		output += "\n"
		if len(s.Images) > 0 {
			output += fmt.Sprintf("  Images: %s\n", strings.Join(s.Images, ", "))
		}
	}

	return api.NewToolCallResult(withJSON(output, summary), nil), nil
}
