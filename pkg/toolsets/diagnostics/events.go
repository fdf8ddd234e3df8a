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

func eventTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "list_resource_events",
				Description: "List Kubernetes events for an ArgoCD application or one of its resources, grouped by type and reason and ordered by recency.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"application": {
							Type:        "string",
							Description: "Application name",
						},
						"resource_namespace": {
							Type:        "string",
							Description: "Namespace of a specific resource to scope events to",
						},
						"resource_name": {
							Type:        "string",
							Description: "Name of a specific resource to scope events to",
						},
						"resource_uid": {
							Type:        "string",
							Description: "UID of a specific resource to scope events to",
						},
						"app_namespace": {
							Type:        "string",
							Description: "Application namespace",
						},
					},
					Required: []string{"application"},
				},
			},
			Handler: listResourceEvents,
		},
	}
}

func listResourceEvents(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	application := params.GetString("application", "")
	if application == "" {
		return api.NewToolCallResult("", errors.New("application is required")), nil
	}

	list, err := params.ArgoCDProvider.ListResourceEvents(params.Context, application, argocd.EventListOptions{
		ResourceNamespace: params.GetString("resource_namespace", ""),
		ResourceName:      params.GetString("resource_name", ""),
		ResourceUID:       params.GetString("resource_uid", ""),
		AppNamespace:      params.GetString("app_namespace", ""),
	})
	if err != nil {
		return api.NewToolCallResult("", errors.Wrapf(err, "failed to list events for %s", application)), nil
	}

	summary := analysis.SummarizeEvents(list.Items)

	output := fmt.Sprintf("Events: %s\n", application)
	output += strings.Repeat("=", 80) + "\n\n"
	output += fmt.Sprintf("Total: %d (warnings: %d)\n", summary.TotalCount, summary.WarningCount)
	if len(summary.CountsByReason) > 0 {
		output += "By Reason:"
		for _, reason := range sortedKeys(summary.CountsByReason) {
			output += fmt.Sprintf(" %s=%d", reason, summary.CountsByReason[reason])
		}
		output += "\n"
	}
	output += "\n"

	if summary.TotalCount == 0 {
		output += "No events recorded.\n"
		return api.NewToolCallResult(withJSON(output, summary), nil), nil
	}

	if summary.Truncated {
		output += fmt.Sprintf("Most recent %d events:\n\n", analysis.MaxEventDetails)
	}
	for _, d := range summary.Details {
		output += fmt.Sprintf("[%s] %s", d.Type, d.Reason)
		if d.Count > 1 {
			output += fmt.Sprintf(" (x%d)", d.Count)
		}
		if d.LastTimestamp != "" {
			output += fmt.Sprintf(" at %s", d.LastTimestamp)
		}
		output += "\n"
		if d.InvolvedObject != nil {
			output += fmt.Sprintf("  Object: %s/%s", d.InvolvedObject.Kind, d.InvolvedObject.Name)
			if d.InvolvedObject.Namespace != "" {
				output += fmt.Sprintf(" (namespace %s)", d.InvolvedObject.Namespace)
			}
			output += "\n"
		}
		if d.Message != "" {
			output += fmt.Sprintf("  Message: %s\n", d.Message)
		}
		if d.SourceComponent != "" {
			output += fmt.Sprintf("  Source: %s\n", d.SourceComponent)
		}
		output += "\n"
	}

	return api.NewToolCallResult(withJSON(output, summary), nil), nil
}
