package api

import (
	"context"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

// ArgoCDProvider abstracts access to the ArgoCD API
type ArgoCDProvider interface {
	// ReadOnly reports whether the mutation gate is closed
	ReadOnly() bool

	// Application access
	ListApplications(ctx context.Context, opts argocd.ApplicationListOptions) (*argocd.ApplicationList, error)
	GetApplication(ctx context.Context, name string, opts argocd.GetApplicationOptions) (*argocd.Application, error)

	// Diagnostics
	ResourceTree(ctx context.Context, appName string, opts argocd.ResourceTreeOptions) (*argocd.ApplicationTree, error)
	ListResourceEvents(ctx context.Context, appName string, opts argocd.EventListOptions) (*argocd.EventList, error)
	PodLogs(ctx context.Context, appName string, opts argocd.PodLogOptions) ([]argocd.LogEntry, error)

	// Revisions and manifests
	GetManifests(ctx context.Context, appName string, opts argocd.ManifestOptions) (*argocd.ManifestResponse, error)
	GetRevisionMetadata(ctx context.Context, appName, revision string, opts argocd.RevisionMetadataOptions) (*argocd.RevisionMetadata, error)
	GetResource(ctx context.Context, appName string, opts argocd.ResourceOptions) (*argocd.ResourceResponse, error)

	// Sync state
	ServerSideDiff(ctx context.Context, appName string, opts argocd.ServerSideDiffOptions) (*argocd.ServerSideDiffResponse, error)
	GetSyncWindows(ctx context.Context, appName, appNamespace string) (*argocd.SyncWindowsResponse, error)

	// Mutations, blocked when the gate is closed
	Sync(ctx context.Context, appName string, req argocd.SyncRequest) (*argocd.Application, error)
	Rollback(ctx context.Context, appName string, req argocd.RollbackRequest) (*argocd.Application, error)
	PatchResource(ctx context.Context, appName string, opts argocd.PatchResourceOptions, patch string) (*argocd.ResourceResponse, error)
}
