// Package apitest provides a counting fake ArgoCDProvider for handler
// tests. Every call that reaches the provider increments Calls, which is
// how gate tests prove that read-only mode blocks before any access.
package apitest

import (
	"context"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

// FakeProvider implements api.ArgoCDProvider against canned responses.
type FakeProvider struct {
	ReadOnlyMode bool
	Calls        int

	Applications *argocd.ApplicationList
	Application  *argocd.Application
	Tree         *argocd.ApplicationTree
	Events       *argocd.EventList
	LogEntries   []argocd.LogEntry
	Manifests    *argocd.ManifestResponse
	Metadata     *argocd.RevisionMetadata
	Resource     *argocd.ResourceResponse
	Diff         *argocd.ServerSideDiffResponse
	Windows      *argocd.SyncWindowsResponse

	Err error

	SyncedRequest   *argocd.SyncRequest
	RollbackRequest *argocd.RollbackRequest
	PatchedOptions  *argocd.PatchResourceOptions
	PatchedBody     string
}

var _ api.ArgoCDProvider = (*FakeProvider)(nil)

// ReadOnly reports the configured gate state.
func (f *FakeProvider) ReadOnly() bool { return f.ReadOnlyMode }

func (f *FakeProvider) ListApplications(context.Context, argocd.ApplicationListOptions) (*argocd.ApplicationList, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Applications != nil {
		return f.Applications, nil
	}
	return &argocd.ApplicationList{}, nil
}

func (f *FakeProvider) GetApplication(context.Context, string, argocd.GetApplicationOptions) (*argocd.Application, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Application != nil {
		return f.Application, nil
	}
	return &argocd.Application{}, nil
}

func (f *FakeProvider) ResourceTree(context.Context, string, argocd.ResourceTreeOptions) (*argocd.ApplicationTree, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Tree != nil {
		return f.Tree, nil
	}
	return &argocd.ApplicationTree{}, nil
}

func (f *FakeProvider) ListResourceEvents(context.Context, string, argocd.EventListOptions) (*argocd.EventList, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Events != nil {
		return f.Events, nil
	}
	return &argocd.EventList{}, nil
}

func (f *FakeProvider) PodLogs(context.Context, string, argocd.PodLogOptions) ([]argocd.LogEntry, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.LogEntries, nil
}

func (f *FakeProvider) GetManifests(context.Context, string, argocd.ManifestOptions) (*argocd.ManifestResponse, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Manifests != nil {
		return f.Manifests, nil
	}
	return &argocd.ManifestResponse{}, nil
}

func (f *FakeProvider) GetRevisionMetadata(context.Context, string, string, argocd.RevisionMetadataOptions) (*argocd.RevisionMetadata, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Metadata != nil {
		return f.Metadata, nil
	}
	return &argocd.RevisionMetadata{}, nil
}

func (f *FakeProvider) GetResource(context.Context, string, argocd.ResourceOptions) (*argocd.ResourceResponse, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Resource != nil {
		return f.Resource, nil
	}
	return &argocd.ResourceResponse{}, nil
}

func (f *FakeProvider) ServerSideDiff(context.Context, string, argocd.ServerSideDiffOptions) (*argocd.ServerSideDiffResponse, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Diff != nil {
		return f.Diff, nil
	}
	return &argocd.ServerSideDiffResponse{}, nil
}

func (f *FakeProvider) GetSyncWindows(context.Context, string, string) (*argocd.SyncWindowsResponse, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Windows != nil {
		return f.Windows, nil
	}
	return &argocd.SyncWindowsResponse{}, nil
}

func (f *FakeProvider) Sync(_ context.Context, _ string, req argocd.SyncRequest) (*argocd.Application, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	f.SyncedRequest = &req
	return &argocd.Application{}, nil
}

func (f *FakeProvider) Rollback(_ context.Context, _ string, req argocd.RollbackRequest) (*argocd.Application, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	f.RollbackRequest = &req
	return &argocd.Application{}, nil
}

func (f *FakeProvider) PatchResource(_ context.Context, _ string, opts argocd.PatchResourceOptions, patch string) (*argocd.ResourceResponse, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	f.PatchedOptions = &opts
	f.PatchedBody = patch
	return &argocd.ResourceResponse{}, nil
}

// Request is a canned api.ToolCallRequest.
type Request struct {
	Args map[string]any
}

// GetArguments returns the canned arguments.
func (r *Request) GetArguments() map[string]any { return r.Args }

// Params builds handler params around the fake provider.
func Params(provider api.ArgoCDProvider, args map[string]any) api.ToolHandlerParams {
	return api.ToolHandlerParams{
		Context:         context.Background(),
		ArgoCDProvider:  provider,
		ToolCallRequest: &Request{Args: args},
	}
}
