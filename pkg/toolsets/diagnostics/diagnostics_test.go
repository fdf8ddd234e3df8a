package diagnostics

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/api/apitest"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

func TestPodLogsHandlerErrorsOnly(t *testing.T) {
	provider := &apitest.FakeProvider{
		LogEntries: []argocd.LogEntry{
			{Content: "INFO started"},
			{Content: "ERROR db timeout"},
			{Content: "WARNING retrying"},
		},
	}

	result, err := podLogs(apitest.Params(provider, map[string]any{
		"application": "guestbook",
		"errors_only": true,
	}))
	require.NoError(t, err)
	require.NoError(t, result.Error)

	assert.Contains(t, result.Content, "Total Lines: 3")
	assert.Contains(t, result.Content, "Errors: 1, Warnings: 1")
	assert.Contains(t, result.Content, "ERROR db timeout")
	assert.Contains(t, result.Content, "WARNING retrying")
	assert.NotContains(t, result.Content, "! [Info] INFO started")
}

func TestPodLogsHandlerRequiresApplication(t *testing.T) {
	provider := &apitest.FakeProvider{}

	result, err := podLogs(apitest.Params(provider, map[string]any{}))
	require.NoError(t, err)
	assert.Error(t, result.Error)
	assert.Equal(t, 0, provider.Calls)
}

func TestResourceTreeHandlerCountsOrphans(t *testing.T) {
	provider := &apitest.FakeProvider{
		Tree: &argocd.ApplicationTree{
			Nodes: []argocd.ResourceNode{
				{ResourceRef: argocd.ResourceRef{Kind: "Deployment", Name: "web"}},
			},
			OrphanedNodes: []argocd.ResourceNode{
				{ResourceRef: argocd.ResourceRef{Kind: "ConfigMap", Name: "stray"}},
			},
		},
	}

	result, err := resourceTree(apitest.Params(provider, map[string]any{"application": "guestbook"}))
	require.NoError(t, err)
	require.NoError(t, result.Error)

	assert.Contains(t, result.Content, "Total Resources: 2 (orphaned: 1)")
	assert.Contains(t, result.Content, "ConfigMap/stray")
	assert.Contains(t, result.Content, "ORPHANED")
}

func TestEventsHandlerEmptyList(t *testing.T) {
	provider := &apitest.FakeProvider{}

	result, err := listResourceEvents(apitest.Params(provider, map[string]any{"application": "guestbook"}))
	require.NoError(t, err)
	require.NoError(t, result.Error)
	assert.Contains(t, result.Content, "No events recorded.")
}

func TestEventsHandlerPropagatesUpstreamError(t *testing.T) {
	provider := &apitest.FakeProvider{Err: argocd.ErrAuthorization}

	result, err := listResourceEvents(apitest.Params(provider, map[string]any{"application": "guestbook"}))
	require.NoError(t, err)
	assert.True(t, errors.Is(result.Error, argocd.ErrAuthorization))
}
