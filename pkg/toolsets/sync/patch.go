package sync

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

func patchTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "patch_resource",
				Description: "Patch a single resource managed by an ArgoCD application. Blocked when the server runs in read-only mode.",
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
						"patch": {
							Type:        "string",
							Description: "Patch document",
						},
						"patch_type": {
							Type:        "string",
							Description: "Patch type",
							Enum:        []interface{}{"application/merge-patch+json", "application/json-patch+json", "application/strategic-merge-patch+json"},
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
					Required: []string{"application", "kind", "name", "patch"},
				},
			},
			Handler: patchResource,
		},
	}
}

// patchSummary is the structured block appended to the patch report.
type patchSummary struct {
	Application      string `json:"application"`
	Kind             string `json:"kind"`
	Name             string `json:"name"`
	PatchType        string `json:"patch_type"`
	ManifestReturned bool   `json:"manifest_returned"`
}

func patchResource(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	if result := gateClosed(params); result != nil {
		return result, nil
	}

	application := params.GetString("application", "")
	kind := params.GetString("kind", "")
	name := params.GetString("name", "")
	patch := params.GetString("patch", "")
	if application == "" || kind == "" || name == "" || patch == "" {
		return api.NewToolCallResult("", errors.New("application, kind, name and patch are required")), nil
	}

	opts := argocd.PatchResourceOptions{
		ResourceOptions: argocd.ResourceOptions{
			Kind:         kind,
			ResourceName: name,
			Namespace:    params.GetString("namespace", ""),
			Group:        params.GetString("group", ""),
			Version:      params.GetString("version", ""),
			AppNamespace: params.GetString("app_namespace", ""),
			Project:      params.GetString("project", ""),
		},
		PatchType: params.GetString("patch_type", "application/merge-patch+json"),
	}

	resp, err := params.ArgoCDProvider.PatchResource(params.Context, application, opts, patch)
	if err != nil {
		return api.NewToolCallResult("", errors.Wrapf(err, "failed to patch resource %s/%s for %s", kind, name, application)), nil
	}

	output := fmt.Sprintf("Patched: %s/%s (application %s)\n", kind, name, application)
	output += strings.Repeat("=", 80) + "\n\n"
	if resp.Manifest != "" {
		output += "The resource was patched. Use get_resource to inspect the updated manifest.\n"
	} else {
		output += "The patch was accepted by upstream.\n"
	}

	summary := patchSummary{
		Application:      application,
		Kind:             kind,
		Name:             name,
		PatchType:        opts.PatchType,
		ManifestReturned: resp.Manifest != "",
	}

	return api.NewToolCallResult(withJSON(output, summary), nil), nil
}
