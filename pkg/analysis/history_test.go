package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

func TestSummarizeHistoryOrderAndCurrentMarker(t *testing.T) {
	var entries []argocd.RevisionHistory
	for _, id := range []int64{1, 2, 3, 4, 5} {
		entries = append(entries, argocd.RevisionHistory{ID: id, Revision: fmt.Sprintf("rev-%d-abcdefabcdef", id)})
	}

	summary := SummarizeHistory("guestbook", entries)

	assert.Equal(t, 5, summary.TotalEntries)
	require.Len(t, summary.Entries, 5)
	for i, wantID := range []int64{5, 4, 3, 2, 1} {
		assert.Equal(t, wantID, summary.Entries[i].ID)
	}
	assert.True(t, summary.Entries[0].Current)
	for _, e := range summary.Entries[1:] {
		assert.False(t, e.Current)
	}
}

func TestSummarizeHistoryAutomatedMarker(t *testing.T) {
	entries := []argocd.RevisionHistory{
		{ID: 1}, // no initiator at all
		{ID: 2, InitiatedBy: &argocd.OperationInitiator{}},                                  // empty initiator
		{ID: 3, InitiatedBy: &argocd.OperationInitiator{Username: "alice"}},                 // manual
		{ID: 4, InitiatedBy: &argocd.OperationInitiator{Username: "alice", Automated: true}}, // username present wins
	}

	summary := SummarizeHistory("guestbook", entries)

	byID := map[int64]HistoryEntry{}
	for _, e := range summary.Entries {
		byID[e.ID] = e
	}
	assert.True(t, byID[1].Automated)
	assert.True(t, byID[2].Automated)
	assert.False(t, byID[3].Automated)
	assert.False(t, byID[4].Automated)
	assert.Equal(t, "alice", byID[3].InitiatedBy)
}

func TestSummarizeHistoryRevisionShortening(t *testing.T) {
	entries := []argocd.RevisionHistory{
		{ID: 1, Revision: "0123456789abcdef0123456789abcdef01234567"},
	}

	summary := SummarizeHistory("guestbook", entries)

	require.Len(t, summary.Entries, 1)
	assert.Equal(t, "01234567", summary.Entries[0].ShortRevision)
	// Full value retained in the structured output.
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", summary.Entries[0].Revision)
}

func TestShortRevisionIdempotent(t *testing.T) {
	assert.Equal(t, "abc", ShortRevision("abc"))
	assert.Equal(t, "01234567", ShortRevision("01234567"))
	assert.Equal(t, "01234567", ShortRevision("0123456789"))
	assert.Equal(t, "01234567", ShortRevision(ShortRevision("0123456789")))
	assert.Equal(t, "", ShortRevision(""))
}

func TestSummarizeHistoryCap(t *testing.T) {
	var entries []argocd.RevisionHistory
	for i := int64(1); i <= 30; i++ {
		entries = append(entries, argocd.RevisionHistory{ID: i})
	}

	summary := SummarizeHistory("guestbook", entries)

	assert.Equal(t, 30, summary.TotalEntries)
	assert.True(t, summary.Truncated)
	require.Len(t, summary.Entries, MaxHistoryEntries)
	assert.Equal(t, int64(30), summary.Entries[0].ID)
	assert.True(t, summary.Entries[0].Current)
	assert.Equal(t, int64(11), summary.Entries[MaxHistoryEntries-1].ID)
}

func TestSummarizeHistorySource(t *testing.T) {
	entries := []argocd.RevisionHistory{
		{
			ID: 1,
			Source: &argocd.ApplicationSource{
				RepoURL:        "https://github.com/example/repo",
				Path:           "deploy",
				TargetRevision: "main",
			},
		},
		{
			ID: 2,
			Sources: []argocd.ApplicationSource{
				{RepoURL: "https://github.com/example/multi", Chart: "web"},
				{RepoURL: "https://github.com/example/other"},
			},
		},
	}

	summary := SummarizeHistory("guestbook", entries)

	byID := map[int64]HistoryEntry{}
	for _, e := range summary.Entries {
		byID[e.ID] = e
	}
	assert.Equal(t, "https://github.com/example/repo", byID[1].RepoURL)
	assert.Equal(t, "deploy", byID[1].Path)
	// Multi-source deployments surface their first source.
	assert.Equal(t, "https://github.com/example/multi", byID[2].RepoURL)
	assert.Equal(t, "web", byID[2].Chart)
}

func TestSummarizeHistoryEmptyInput(t *testing.T) {
	summary := SummarizeHistory("guestbook", nil)

	assert.Equal(t, 0, summary.TotalEntries)
	assert.Empty(t, summary.Entries)
	assert.False(t, summary.Truncated)
}
