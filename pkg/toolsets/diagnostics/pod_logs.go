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

// defaultTailLines bounds the retained log window when the caller does
// not specify one.
const defaultTailLines = 100

func podLogsTools() []api.ServerTool {
	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "pod_logs",
				Description: "Get classified logs for a pod managed by an ArgoCD application. Lines are classified by severity and flagged as potential issues; aggregate counts always cover the full retained window.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"application": {
							Type:        "string",
							Description: "Application name",
						},
						"pod": {
							Type:        "string",
							Description: "Pod name",
						},
						"container": {
							Type:        "string",
							Description: "Container name",
						},
						"namespace": {
							Type:        "string",
							Description: "Pod namespace",
						},
						"tail_lines": {
							Type:        "integer",
							Description: "Number of lines from the end of the log (default 100)",
						},
						"since_seconds": {
							Type:        "integer",
							Description: "Only return logs newer than this many seconds",
						},
						"previous": {
							Type:        "boolean",
							Description: "Read logs from the previous container instance",
						},
						"errors_only": {
							Type:        "boolean",
							Description: "Display only lines flagged as potential issues; aggregate counts are unaffected",
						},
						"filter": {
							Type:        "string",
							Description: "Server-side content filter",
						},
						"app_namespace": {
							Type:        "string",
							Description: "Application namespace",
						},
					},
					Required: []string{"application"},
				},
			},
			Handler: podLogs,
		},
	}
}

func podLogs(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	application := params.GetString("application", "")
	if application == "" {
		return api.NewToolCallResult("", errors.New("application is required")), nil
	}
	errorsOnly := params.GetBool("errors_only", false)

	entries, err := params.ArgoCDProvider.PodLogs(params.Context, application, argocd.PodLogOptions{
		PodName:      params.GetString("pod", ""),
		Container:    params.GetString("container", ""),
		Namespace:    params.GetString("namespace", ""),
		TailLines:    int64(params.GetInt("tail_lines", defaultTailLines)),
		SinceSeconds: int64(params.GetInt("since_seconds", 0)),
		Previous:     params.GetBool("previous", false),
		Filter:       params.GetString("filter", ""),
		AppNamespace: params.GetString("app_namespace", ""),
	})
	if err != nil {
		return api.NewToolCallResult("", errors.Wrapf(err, "failed to get pod logs for %s", application)), nil
	}

	summary := analysis.AnalyzeLogs(entries, errorsOnly)

	output := fmt.Sprintf("Pod Logs: %s\n", application)
	output += strings.Repeat("=", 80) + "\n\n"
	output += fmt.Sprintf("Total Lines: %d\n", summary.TotalLines)
	output += fmt.Sprintf("Errors: %d, Warnings: %d, Potential Issues: %d\n", summary.ErrorCount, summary.WarningCount, summary.IssueCount)
	output += "By Level:"
	for _, level := range []analysis.Level{analysis.LevelFatal, analysis.LevelError, analysis.LevelWarning, analysis.LevelInfo, analysis.LevelDebug, analysis.LevelUnknown} {
		if n := summary.CountsByLevel[level]; n > 0 {
			output += fmt.Sprintf(" %s=%d", level, n)
		}
	}
	output += "\n\n"

	if errorsOnly {
		output += fmt.Sprintf("Displaying potential issues only (%d entries", summary.DisplayedCount)
	} else {
		output += fmt.Sprintf("Displaying %d entries", summary.DisplayedCount)
	}
	if summary.Truncated {
		output += fmt.Sprintf(", truncated to %d", analysis.MaxLogEntries)
	}
	if errorsOnly {
		output += ")"
	}
	output += ":\n\n"

	if summary.DisplayedCount == 0 {
		output += "(no entries to display)\n"
	}
	for _, e := range summary.Entries {
		marker := " "
		if e.PotentialIssue {
			marker = "!"
		}
		if e.Timestamp != "" {
			output += fmt.Sprintf("%s [%s] %s %s\n", marker, e.Level, e.Timestamp, e.Content)
		} else {
			output += fmt.Sprintf("%s [%s] %s\n", marker, e.Level, e.Content)
		}
	}

	return api.NewToolCallResult(withJSON(output, summary), nil), nil
}
