package sync

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/api/apitest"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

func TestWriteHandlersBlockedInReadOnlyMode(t *testing.T) {
	tests := []struct {
		name    string
		handler api.ToolHandlerFunc
		args    map[string]any
	}{
		{"sync", syncApplication, map[string]any{"application": "guestbook"}},
		{"rollback", rollbackApplication, map[string]any{"application": "guestbook", "history_id": float64(3)}},
		{"patch", patchResource, map[string]any{
			"application": "guestbook", "kind": "Deployment", "name": "web", "patch": `{"spec":{}}`,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &apitest.FakeProvider{ReadOnlyMode: true}

			result, err := tt.handler(apitest.Params(provider, tt.args))
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, errors.Is(result.Error, argocd.ErrReadOnly))
			assert.Equal(t, 0, provider.Calls, "closed gate must make zero provider calls")
		})
	}
}

func TestReadHandlersBypassGate(t *testing.T) {
	provider := &apitest.FakeProvider{ReadOnlyMode: true}

	result, err := serverSideDiff(apitest.Params(provider, map[string]any{"application": "guestbook"}))
	require.NoError(t, err)
	require.NoError(t, result.Error)
	assert.Equal(t, 1, provider.Calls)

	result, err = getSyncWindows(apitest.Params(provider, map[string]any{"application": "guestbook"}))
	require.NoError(t, err)
	require.NoError(t, result.Error)
	assert.Equal(t, 2, provider.Calls)
}

func TestSyncHandlerBuildsRequest(t *testing.T) {
	provider := &apitest.FakeProvider{}

	result, err := syncApplication(apitest.Params(provider, map[string]any{
		"application":                "guestbook",
		"revision":                   "main",
		"prune":                      true,
		"dry_run":                    true,
		"retry_limit":                float64(3),
		"retry_backoff_duration":     "5s",
		"retry_backoff_max_duration": "3m",
		"retry_backoff_factor":       float64(2),
		"sync_options":               []any{"CreateNamespace=true", "Prune=false"},
	}))
	require.NoError(t, err)
	require.NoError(t, result.Error)

	req := provider.SyncedRequest
	require.NotNil(t, req)
	assert.Equal(t, "guestbook", req.Name)
	assert.Equal(t, "main", req.Revision)
	assert.Equal(t, []string{"CreateNamespace=true", "Prune=false"}, req.SyncOptions)

	assert.Contains(t, result.Content, "```json")
	assert.Contains(t, result.Content, `"operation": "sync"`)
	assert.Contains(t, result.Content, `"revision": "main"`)
	require.NotNil(t, req.Prune)
	assert.True(t, *req.Prune)
	require.NotNil(t, req.DryRun)
	assert.True(t, *req.DryRun)
	require.NotNil(t, req.Retry)
	require.NotNil(t, req.Retry.Limit)
	assert.Equal(t, int64(3), *req.Retry.Limit)
	require.NotNil(t, req.Retry.Backoff)
	assert.Equal(t, "5s", req.Retry.Backoff.Duration)
	assert.Equal(t, "3m", req.Retry.Backoff.MaxDuration)
	require.NotNil(t, req.Retry.Backoff.Factor)
	assert.Equal(t, int64(2), *req.Retry.Backoff.Factor)
}

func TestRollbackHandlerBuildsRequest(t *testing.T) {
	provider := &apitest.FakeProvider{}

	result, err := rollbackApplication(apitest.Params(provider, map[string]any{
		"application": "guestbook",
		"history_id":  float64(5),
	}))
	require.NoError(t, err)
	require.NoError(t, result.Error)

	require.NotNil(t, provider.RollbackRequest)
	assert.Equal(t, int64(5), provider.RollbackRequest.ID)
	assert.Equal(t, "guestbook", provider.RollbackRequest.Name)

	assert.Contains(t, result.Content, "```json")
	assert.Contains(t, result.Content, `"operation": "rollback"`)
	assert.Contains(t, result.Content, `"history_id": 5`)
}

func TestRollbackHandlerRequiresHistoryID(t *testing.T) {
	provider := &apitest.FakeProvider{}

	result, err := rollbackApplication(apitest.Params(provider, map[string]any{
		"application": "guestbook",
	}))
	require.NoError(t, err)
	assert.Error(t, result.Error)
	assert.Equal(t, 0, provider.Calls)
}

func TestPatchHandlerDefaultsPatchType(t *testing.T) {
	provider := &apitest.FakeProvider{}

	result, err := patchResource(apitest.Params(provider, map[string]any{
		"application": "guestbook",
		"kind":        "Deployment",
		"name":        "web",
		"patch":       `{"spec":{"replicas":3}}`,
	}))
	require.NoError(t, err)
	require.NoError(t, result.Error)

	require.NotNil(t, provider.PatchedOptions)
	assert.Equal(t, "application/merge-patch+json", provider.PatchedOptions.PatchType)
	assert.Equal(t, `{"spec":{"replicas":3}}`, provider.PatchedBody)

	assert.Contains(t, result.Content, "```json")
	assert.Contains(t, result.Content, `"patch_type": "application/merge-patch+json"`)
}

func TestServerSideDiffHandlerRendersPartition(t *testing.T) {
	trueVal := true
	provider := &apitest.FakeProvider{
		Diff: &argocd.ServerSideDiffResponse{
			Items: []argocd.ResourceDiff{
				{Kind: "Deployment", Name: "web", Modified: &trueVal},
				{Kind: "Service", Name: "web"},
			},
		},
	}

	result, err := serverSideDiff(apitest.Params(provider, map[string]any{"application": "guestbook"}))
	require.NoError(t, err)
	require.NoError(t, result.Error)
	assert.Contains(t, result.Content, "modified: 1")
	assert.Contains(t, result.Content, "in sync: 1")
	assert.Contains(t, result.Content, "Resource has differences between live and target state")
}

func TestHandlerErrorsReturnedInline(t *testing.T) {
	provider := &apitest.FakeProvider{Err: argocd.ErrNotFound}

	result, err := serverSideDiff(apitest.Params(provider, map[string]any{"application": "missing"}))
	require.NoError(t, err)
	assert.True(t, errors.Is(result.Error, argocd.ErrNotFound))
}
