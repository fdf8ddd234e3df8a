package sync

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
)

func windowTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "get_sync_windows",
				Description: "List the sync windows currently affecting an ArgoCD application. Windows can allow or deny syncs on a schedule. Read-only.",
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
					},
					Required: []string{"application"},
				},
			},
			Handler: getSyncWindows,
		},
	}
}

func getSyncWindows(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	application := params.GetString("application", "")
	if application == "" {
		return api.NewToolCallResult("", errors.New("application is required")), nil
	}

	resp, err := params.ArgoCDProvider.GetSyncWindows(params.Context, application, params.GetString("app_namespace", ""))
	if err != nil {
		return api.NewToolCallResult("", errors.Wrapf(err, "failed to get sync windows for %s", application)), nil
	}

	output := fmt.Sprintf("Sync Windows: %s\n", application)
	output += strings.Repeat("=", 80) + "\n\n"

	if len(resp.Windows) == 0 {
		output += "No active sync windows; syncs are not schedule-restricted.\n"
		return api.NewToolCallResult(withJSON(output, resp), nil), nil
	}

	output += fmt.Sprintf("Active Windows: %d\n\n", len(resp.Windows))
	for i, w := range resp.Windows {
		output += fmt.Sprintf("%d. %s window", i+1, w.Kind)
		if w.Schedule != "" {
			output += fmt.Sprintf(" schedule='%s'", w.Schedule)
		}
		if w.Duration != "" {
			output += fmt.Sprintf(" duration=%s", w.Duration)
		}
		output += "\n"
		if w.ManualSyncEnabled != nil {
			output += fmt.Sprintf("   Manual sync enabled: %t\n", *w.ManualSyncEnabled)
		}
		if len(w.Applications) > 0 {
			output += fmt.Sprintf("   Applications: %s\n", strings.Join(w.Applications, ", "))
		}
		if len(w.Namespaces) > 0 {
			output += fmt.Sprintf("   Namespaces: %s\n", strings.Join(w.Namespaces, ", "))
		}
	}

	return api.NewToolCallResult(withJSON(output, resp), nil), nil
}
