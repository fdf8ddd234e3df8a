package revisions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/samber/lo"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/analysis"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

func manifestTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "get_manifests",
				Description: "Summarize the rendered manifests of an ArgoCD application revision: per-manifest identity and a kind histogram, without manifest bodies.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"application": {
							Type:        "string",
							Description: "Application name",
						},
						"revision": {
							Type:        "string",
							Description: "Revision to render (defaults to the configured target revision)",
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
			Handler: getManifests,
		},
	}
}

func getManifests(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	application := params.GetString("application", "")
	if application == "" {
		return api.NewToolCallResult("", errors.New("application is required")), nil
	}

	resp, err := params.ArgoCDProvider.GetManifests(params.Context, application, argocd.ManifestOptions{
		Revision:     params.GetString("revision", ""),
		AppNamespace: params.GetString("app_namespace", ""),
		Project:      params.GetString("project", ""),
	})
	if err != nil {
		return api.NewToolCallResult("", errors.Wrapf(err, "failed to get manifests for %s", application)), nil
	}

	summary := analysis.SummarizeManifests(resp.Manifests, resp.Revision, resp.SourceType)

	output := fmt.Sprintf("Manifests: %s\n", application)
	output += strings.Repeat("=", 80) + "\n\n"
	output += fmt.Sprintf("Total Manifests: %d\n", summary.TotalCount)
	if summary.Revision != "" {
		output += fmt.Sprintf("Revision: %s\n", analysis.ShortRevision(summary.Revision))
	}
	if summary.SourceType != "" {
		output += fmt.Sprintf("Source Type: %s\n", summary.SourceType)
	}
	if len(summary.CountsByKind) > 0 {
		kinds := lo.Keys(summary.CountsByKind)
		sort.Strings(kinds)
		output += "By Kind:"
		for _, kind := range kinds {
			output += fmt.Sprintf(" %s=%d", kind, summary.CountsByKind[kind])
		}
		output += "\n"
	}
	output += "\n"

	if summary.TotalCount == 0 {
		output += "No manifests rendered.\n"
		return api.NewToolCallResult(withJSON(output, summary), nil), nil
	}

	for _, m := range summary.Manifests {
		name := m.Name
		if name == "" {
			name = "(unnamed)"
		}
		kind := m.Kind
		if kind == "" {
			kind = "Unknown"
		}
		output += fmt.Sprintf("%s/%s", kind, name)
		if m.Namespace != "" {
			output += fmt.Sprintf(" (namespace %s)", m.Namespace)
		}
		if m.APIVersion != "" {
			output += fmt.Sprintf(" apiVersion=%s", m.APIVersion)
		}
		output += "\n"
	}

	return api.NewToolCallResult(withJSON(output, summary), nil), nil
}
