package applications

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/samber/lo"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

// ApplicationOverview is the per-application record in list output.
type ApplicationOverview struct {
	Name           string `json:"name"`
	Namespace      string `json:"namespace,omitempty"`
	Project        string `json:"project,omitempty"`
	SyncStatus     string `json:"syncStatus"`
	HealthStatus   string `json:"healthStatus"`
	RepoURL        string `json:"repoURL,omitempty"`
	Path           string `json:"path,omitempty"`
	Chart          string `json:"chart,omitempty"`
	TargetRevision string `json:"targetRevision,omitempty"`
	DestServer     string `json:"destServer,omitempty"`
	DestNamespace  string `json:"destNamespace,omitempty"`
}

// ApplicationListSummary is the bounded report over the applications list.
type ApplicationListSummary struct {
	TotalCount     int                   `json:"totalCount"`
	CountsBySync   map[string]int        `json:"countsBySync"`
	CountsByHealth map[string]int        `json:"countsByHealth"`
	Applications   []ApplicationOverview `json:"applications"`
}

func applicationTools() []api.ServerTool {
	filterProps := map[string]*jsonschema.Schema{
		"name": {
			Type:        "string",
			Description: "Filter by exact application name",
		},
		"project": {
			Type:        "string",
			Description: "Filter by ArgoCD project",
		},
		"selector": {
			Type:        "string",
			Description: "Label selector filter",
		},
		"repo": {
			Type:        "string",
			Description: "Filter by source repository URL",
		},
		"app_namespace": {
			Type:        "string",
			Description: "Application namespace (apps-in-any-namespace setups)",
		},
	}

	return []api.ServerTool{
		{
			Tool: api.Tool{
				Name:        "list_applications",
				Description: "List ArgoCD applications with sync and health status. Returns a summary per application, not full manifests.",
				InputSchema: &jsonschema.Schema{
					Type:       "object",
					Properties: filterProps,
				},
			},
			Handler: listApplications,
		},
		{
			Tool: api.Tool{
				Name:        "list_application_names",
				Description: "List only the names of ArgoCD applications matching the filters. The cheapest way to discover applications.",
				InputSchema: &jsonschema.Schema{
					Type:       "object",
					Properties: filterProps,
				},
			},
			Handler: listApplicationNames,
		},
		{
			Tool: api.Tool{
				Name:        "get_application",
				Description: "Get detailed status for a single ArgoCD application, including sync, health, source and deployment history length. Use refresh to force a comparison against the repository.",
				InputSchema: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"application": {
							Type:        "string",
							Description: "Application name",
						},
						"refresh": {
							Type:        "string",
							Description: "Refresh mode: 'normal' or 'hard'",
							Enum:        []interface{}{"normal", "hard"},
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
			Handler: getApplication,
		},
	}
}

func listOptions(params api.ToolHandlerParams) argocd.ApplicationListOptions {
	opts := argocd.ApplicationListOptions{
		Name:         params.GetString("name", ""),
		Selector:     params.GetString("selector", ""),
		Repo:         params.GetString("repo", ""),
		AppNamespace: params.GetString("app_namespace", ""),
	}
	if project := params.GetString("project", ""); project != "" {
		opts.Projects = []string{project}
	}
	return opts
}

func listApplications(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	list, err := params.ArgoCDProvider.ListApplications(params.Context, listOptions(params))
	if err != nil {
		return api.NewToolCallResult("", errors.Wrap(err, "failed to list applications")), nil
	}

	overviews := lo.Map(list.Items, func(app argocd.Application, _ int) ApplicationOverview {
		o := ApplicationOverview{
			Name:         appName(app),
			Project:      appProject(app),
			SyncStatus:   appSyncStatus(app),
			HealthStatus: appHealthStatus(app),
		}
		if app.Metadata != nil {
			o.Namespace = app.Metadata.Namespace
		}
		if src := appSource(app); src != nil {
			o.RepoURL = src.RepoURL
			o.Path = src.Path
			o.Chart = src.Chart
			o.TargetRevision = src.TargetRevision
		}
		if dest := appDestination(app); dest != nil {
			o.DestServer = dest.Server
			o.DestNamespace = dest.Namespace
		}
		return o
	})
	sort.SliceStable(overviews, func(i, j int) bool {
		return overviews[i].Name < overviews[j].Name
	})

	summary := ApplicationListSummary{
		TotalCount: len(overviews),
		CountsBySync: lo.CountValuesBy(overviews, func(o ApplicationOverview) string {
			return o.SyncStatus
		}),
		CountsByHealth: lo.CountValuesBy(overviews, func(o ApplicationOverview) string {
			return o.HealthStatus
		}),
		Applications: overviews,
	}

	output := "ArgoCD Applications\n"
	output += strings.Repeat("=", 80) + "\n\n"
	output += fmt.Sprintf("Total: %d\n\n", summary.TotalCount)
	if summary.TotalCount == 0 {
		output += "No applications matched the filters.\n"
		return api.NewToolCallResult(withJSON(output, summary), nil), nil
	}
	for _, o := range overviews {
		output += fmt.Sprintf("%s (project: %s)\n", o.Name, o.Project)
		output += fmt.Sprintf("  Sync: %s, Health: %s\n", o.SyncStatus, o.HealthStatus)
		if o.RepoURL != "" {
			output += fmt.Sprintf("  Source: %s", o.RepoURL)
			if o.Path != "" {
				output += fmt.Sprintf(" path=%s", o.Path)
			}
			if o.Chart != "" {
				output += fmt.Sprintf(" chart=%s", o.Chart)
			}
			if o.TargetRevision != "" {
				output += fmt.Sprintf(" @ %s", o.TargetRevision)
			}
			output += "\n"
		}
		if o.DestNamespace != "" {
			output += fmt.Sprintf("  Destination: %s\n", o.DestNamespace)
		}
		output += "\n"
	}

	return api.NewToolCallResult(withJSON(output, summary), nil), nil
}

func listApplicationNames(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	list, err := params.ArgoCDProvider.ListApplications(params.Context, listOptions(params))
	if err != nil {
		return api.NewToolCallResult("", errors.Wrap(err, "failed to list applications")), nil
	}

	names := lo.FilterMap(list.Items, func(app argocd.Application, _ int) (string, bool) {
		name := appName(app)
		return name, name != ""
	})
	sort.Strings(names)

	output := fmt.Sprintf("Application names (%d):\n\n", len(names))
	for i, name := range names {
		output += fmt.Sprintf("%d. %s\n", i+1, name)
	}
	if len(names) == 0 {
		output = "No applications matched the filters.\n"
	}

	return api.NewToolCallResult(withJSON(output, map[string]any{
		"totalCount": len(names),
		"names":      names,
	}), nil), nil
}

// ApplicationDetail is the structured output of get_application.
type ApplicationDetail struct {
	ApplicationOverview
	CreatedAt      string   `json:"createdAt,omitempty"`
	SyncRevision   string   `json:"syncRevision,omitempty"`
	AutomatedSync  bool     `json:"automatedSync"`
	SelfHeal       bool     `json:"selfHeal"`
	Prune          bool     `json:"prune"`
	HealthMessage  string   `json:"healthMessage,omitempty"`
	Images         []string `json:"images,omitempty"`
	ExternalURLs   []string `json:"externalURLs,omitempty"`
	HistoryEntries int      `json:"historyEntries"`
}

func getApplication(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	name := params.GetString("application", "")
	if name == "" {
		return api.NewToolCallResult("", errors.New("application is required")), nil
	}

	app, err := params.ArgoCDProvider.GetApplication(params.Context, name, argocd.GetApplicationOptions{
		AppNamespace: params.GetString("app_namespace", ""),
		Project:      params.GetString("project", ""),
		Refresh:      params.GetString("refresh", ""),
	})
	if err != nil {
		return api.NewToolCallResult("", errors.Wrapf(err, "failed to get application %s", name)), nil
	}

	detail := ApplicationDetail{
		ApplicationOverview: ApplicationOverview{
			Name:         appName(*app),
			Project:      appProject(*app),
			SyncStatus:   appSyncStatus(*app),
			HealthStatus: appHealthStatus(*app),
		},
	}
	if app.Metadata != nil {
		detail.Namespace = app.Metadata.Namespace
		detail.CreatedAt = app.Metadata.CreationTimestamp
	}
	if src := appSource(*app); src != nil {
		detail.RepoURL = src.RepoURL
		detail.Path = src.Path
		detail.Chart = src.Chart
		detail.TargetRevision = src.TargetRevision
	}
	if dest := appDestination(*app); dest != nil {
		detail.DestServer = dest.Server
		detail.DestNamespace = dest.Namespace
	}
	if app.Spec != nil && app.Spec.SyncPolicy != nil && app.Spec.SyncPolicy.Automated != nil {
		auto := app.Spec.SyncPolicy.Automated
		detail.AutomatedSync = true
		detail.SelfHeal = auto.SelfHeal != nil && *auto.SelfHeal
		detail.Prune = auto.Prune != nil && *auto.Prune
	}
	if app.Status != nil {
		if app.Status.Sync != nil {
			detail.SyncRevision = app.Status.Sync.Revision
		}
		if app.Status.Health != nil {
			detail.HealthMessage = app.Status.Health.Message
		}
		if app.Status.Summary != nil {
			detail.Images = app.Status.Summary.Images
			detail.ExternalURLs = app.Status.Summary.ExternalURLs
		}
		detail.HistoryEntries = len(app.Status.History)
	}

	output := fmt.Sprintf("Application: %s\n", detail.Name)
	output += strings.Repeat("=", 80) + "\n\n"
	output += fmt.Sprintf("Project: %s\n", detail.Project)
	output += fmt.Sprintf("Sync Status: %s", detail.SyncStatus)
	if detail.SyncRevision != "" {
		output += fmt.Sprintf(" (revision %s)", detail.SyncRevision)
	}
	output += "\n"
	output += fmt.Sprintf("Health Status: %s\n", detail.HealthStatus)
	if detail.HealthMessage != "" {
		output += fmt.Sprintf("Health Message: %s\n", detail.HealthMessage)
	}
	if detail.RepoURL != "" {
		output += fmt.Sprintf("Source: %s", detail.RepoURL)
		if detail.Path != "" {
			output += fmt.Sprintf(" path=%s", detail.Path)
		}
		if detail.Chart != "" {
			output += fmt.Sprintf(" chart=%s", detail.Chart)
		}
		if detail.TargetRevision != "" {
			output += fmt.Sprintf(" @ %s", detail.TargetRevision)
		}
		output += "\n"
	}
	if detail.DestNamespace != "" || detail.DestServer != "" {
		output += fmt.Sprintf("Destination: %s (namespace %s)\n", detail.DestServer, detail.DestNamespace)
	}
	if detail.AutomatedSync {
		output += fmt.Sprintf("Automated Sync: enabled (selfHeal=%t, prune=%t)\n", detail.SelfHeal, detail.Prune)
	} else {
		output += "Automated Sync: disabled\n"
	}
	if len(detail.Images) > 0 {
		output += fmt.Sprintf("Images: %s\n", strings.Join(detail.Images, ", "))
	}
	output += fmt.Sprintf("History Entries: %d\n", detail.HistoryEntries)

	return api.NewToolCallResult(withJSON(output, detail), nil), nil
}
