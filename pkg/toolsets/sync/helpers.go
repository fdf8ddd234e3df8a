package sync

import (
	"encoding/json"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

// withJSON appends the structured summary as a JSON block after the
// rendered report.
func withJSON(output string, v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return output
	}
	return output + "\nStructured summary:\n```json\n" + string(data) + "\n```\n"
}

// gateClosed short-circuits a mutating handler before any upstream
// request is constructed. The flag is immutable for the process lifetime,
// so the check needs no locking.
func gateClosed(params api.ToolHandlerParams) *api.ToolCallResult {
	if params.ArgoCDProvider.ReadOnly() {
		return api.NewToolCallResult("", argocd.ErrReadOnly)
	}
	return nil
}

func appStatus(app *argocd.Application) (syncStatus, healthStatus string) {
	syncStatus, healthStatus = "Unknown", "Unknown"
	if app.Status != nil {
		if app.Status.Sync != nil && app.Status.Sync.Status != "" {
			syncStatus = app.Status.Sync.Status
		}
		if app.Status.Health != nil && app.Status.Health.Status != "" {
			healthStatus = app.Status.Health.Status
		}
	}
	return syncStatus, healthStatus
}

func appStatusLine(app *argocd.Application) string {
	syncStatus, healthStatus := appStatus(app)
	return "Sync: " + syncStatus + ", Health: " + healthStatus
}

// mutationSummary is the structured block appended to sync and rollback
// reports.
type mutationSummary struct {
	Operation    string `json:"operation"`
	Application  string `json:"application"`
	DryRun       bool   `json:"dry_run,omitempty"`
	Revision     string `json:"revision,omitempty"`
	HistoryID    *int64 `json:"history_id,omitempty"`
	SyncStatus   string `json:"sync_status"`
	HealthStatus string `json:"health_status"`
}

func newMutationSummary(operation, application string, app *argocd.Application) mutationSummary {
	syncStatus, healthStatus := appStatus(app)
	return mutationSummary{
		Operation:    operation,
		Application:  application,
		SyncStatus:   syncStatus,
		HealthStatus: healthStatus,
	}
}

func boolPtr(v bool) *bool {
	return &v
}
