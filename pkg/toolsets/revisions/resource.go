package revisions

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

// maxManifestChars bounds the raw manifest returned by get_resource. This
// is the one diagnostic tool that exposes an upstream payload directly.
const maxManifestChars = 10000

func resourceTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "get_resource",
				Description: "Get the live manifest of a single resource managed by an ArgoCD application. Diagnostic full-payload variant; output is truncated past 10000 characters.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"application": {
							Type:        "string",
							Description: "Application name",
						},
						"kind": {
							Type:        "string",
							Description: "Resource kind",
						},
						"name": {
							Type:        "string",
							Description: "Resource name",
						},
						"namespace": {
							Type:        "string",
							Description: "Resource namespace",
						},
						"group": {
							Type:        "string",
							Description: "API group (empty for core resources)",
						},
						"version": {
							Type:        "string",
							Description: "API version",
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
					Required: []string{"application", "kind", "name"},
				},
			},
			Handler: getResource,
		},
	}
}

func getResource(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	application := params.GetString("application", "")
	kind := params.GetString("kind", "")
	name := params.GetString("name", "")
	if application == "" || kind == "" || name == "" {
		return api.NewToolCallResult("", errors.New("application, kind and name are required")), nil
	}

	resp, err := params.ArgoCDProvider.GetResource(params.Context, application, argocd.ResourceOptions{
		Kind:         kind,
		ResourceName: name,
		Namespace:    params.GetString("namespace", ""),
		Group:        params.GetString("group", ""),
		Version:      params.GetString("version", ""),
		AppNamespace: params.GetString("app_namespace", ""),
		Project:      params.GetString("project", ""),
	})
	if err != nil {
		return api.NewToolCallResult("", errors.Wrapf(err, "failed to get resource %s/%s for %s", kind, name, application)), nil
	}

	output := fmt.Sprintf("Resource: %s/%s (application %s)\n", kind, name, application)
	output += strings.Repeat("=", 80) + "\n\n"

	manifest := resp.Manifest
	if manifest == "" {
		output += "Upstream returned an empty manifest.\n"
		return api.NewToolCallResult(output, nil), nil
	}
	if len(manifest) > maxManifestChars {
		output += fmt.Sprintf("(manifest truncated to %d of %d characters)\n\n", maxManifestChars, len(manifest))
		manifest = manifest[:maxManifestChars]
	}
	output += manifest + "\n"

	return api.NewToolCallResult(output, nil), nil
}
