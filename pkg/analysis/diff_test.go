package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

func modified(v bool) *bool {
	return &v
}

func TestSummarizeDiffsPartition(t *testing.T) {
	records := []argocd.ResourceDiff{
		{Kind: "Deployment", Name: "web", Modified: modified(true)},
		{Kind: "Service", Name: "web", Modified: modified(false)},
		{Kind: "ConfigMap", Name: "web-config"},
	}

	summary := SummarizeDiffs(records)

	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 1, summary.ModifiedCount)
	assert.Equal(t, 2, summary.InSyncCount)
	assert.Equal(t, summary.TotalCount, summary.ModifiedCount+summary.InSyncCount)
}

func TestSummarizeDiffsFixedTextOnlyWhenModified(t *testing.T) {
	records := []argocd.ResourceDiff{
		{Kind: "Deployment", Name: "web", Modified: modified(true)},
		{Kind: "Service", Name: "web", Modified: modified(false)},
	}

	summary := SummarizeDiffs(records)

	require.Len(t, summary.Modified, 1)
	require.Len(t, summary.InSync, 1)
	assert.Equal(t, "Resource has differences between live and target state", summary.Modified[0].DiffSummary)
	assert.Empty(t, summary.InSync[0].DiffSummary)
}

func TestSummarizeDiffsDropsStateBlobs(t *testing.T) {
	records := []argocd.ResourceDiff{
		{
			Kind:        "Deployment",
			Name:        "web",
			Modified:    modified(true),
			LiveState:   `{"spec":{"replicas":2}}`,
			TargetState: `{"spec":{"replicas":3}}`,
		},
	}

	summary := SummarizeDiffs(records)

	require.Len(t, summary.Modified, 1)
	// The summary type has no state fields at all; assert identity only.
	assert.Equal(t, "Deployment", summary.Modified[0].Kind)
	assert.Equal(t, "web", summary.Modified[0].Name)
}

func TestSummarizeDiffsPreservesUpstreamOrderPerPartition(t *testing.T) {
	records := []argocd.ResourceDiff{
		{Kind: "A", Name: "first", Modified: modified(true)},
		{Kind: "B", Name: "second", Modified: modified(false)},
		{Kind: "C", Name: "third", Modified: modified(true)},
		{Kind: "D", Name: "fourth", Modified: modified(false)},
	}

	summary := SummarizeDiffs(records)

	require.Len(t, summary.Modified, 2)
	assert.Equal(t, "first", summary.Modified[0].Name)
	assert.Equal(t, "third", summary.Modified[1].Name)
	require.Len(t, summary.InSync, 2)
	assert.Equal(t, "second", summary.InSync[0].Name)
	assert.Equal(t, "fourth", summary.InSync[1].Name)
}

func TestSummarizeDiffsEmptyInput(t *testing.T) {
	summary := SummarizeDiffs(nil)

	assert.Equal(t, 0, summary.TotalCount)
	assert.Equal(t, 0, summary.ModifiedCount)
	assert.Equal(t, 0, summary.InSyncCount)
	assert.Empty(t, summary.Modified)
	assert.Empty(t, summary.InSync)
}
