package applications

import (
	"encoding/json"

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

func appName(app argocd.Application) string {
	if app.Metadata == nil {
		return ""
	}
	return app.Metadata.Name
}

func appProject(app argocd.Application) string {
	if app.Spec == nil {
		return ""
	}
	return app.Spec.Project
}

func appSyncStatus(app argocd.Application) string {
	if app.Status == nil || app.Status.Sync == nil || app.Status.Sync.Status == "" {
		return "Unknown"
	}
	return app.Status.Sync.Status
}

func appHealthStatus(app argocd.Application) string {
	if app.Status == nil || app.Status.Health == nil || app.Status.Health.Status == "" {
		return "Unknown"
	}
	return app.Status.Health.Status
}

func appSource(app argocd.Application) *argocd.ApplicationSource {
	if app.Spec == nil {
		return nil
	}
	return app.Spec.Source
}

func appDestination(app argocd.Application) *argocd.ApplicationDestination {
	if app.Spec == nil {
		return nil
	}
	return app.Spec.Destination
}
