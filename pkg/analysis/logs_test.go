package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

func logLines(contents ...string) []argocd.LogEntry {
	entries := make([]argocd.LogEntry, 0, len(contents))
	for _, c := range contents {
		entries = append(entries, argocd.LogEntry{Content: c})
	}
	return entries
}

func TestAnalyzeLogsErrorsOnly(t *testing.T) {
	entries := logLines("INFO started", "ERROR db timeout", "WARNING retrying")

	summary := AnalyzeLogs(entries, true)

	assert.Equal(t, 3, summary.TotalLines)
	assert.Equal(t, 1, summary.ErrorCount)
	assert.Equal(t, 1, summary.WarningCount)
	require.Len(t, summary.Entries, 2)
	assert.Equal(t, "ERROR db timeout", summary.Entries[0].Content)
	assert.Equal(t, "WARNING retrying", summary.Entries[1].Content)
}

func TestAnalyzeLogsAggregatesInvariantToFilter(t *testing.T) {
	entries := logLines(
		"INFO started",
		"ERROR db timeout",
		"WARNING retrying",
		"debug: cache hit",
		"connection refused by peer",
	)

	full := AnalyzeLogs(entries, false)
	filtered := AnalyzeLogs(entries, true)

	assert.Equal(t, full.TotalLines, filtered.TotalLines)
	assert.Equal(t, full.ErrorCount, filtered.ErrorCount)
	assert.Equal(t, full.WarningCount, filtered.WarningCount)
	assert.Equal(t, full.IssueCount, filtered.IssueCount)
	assert.Equal(t, full.CountsByLevel, filtered.CountsByLevel)

	// "connection refused by peer" carries no severity keyword but is an
	// issue, so it survives the filter.
	assert.Equal(t, 3, filtered.DisplayedCount)
	assert.Equal(t, 5, full.DisplayedCount)
}

func TestAnalyzeLogsPreservesChronologicalOrder(t *testing.T) {
	entries := logLines("ERROR one", "INFO two", "ERROR three")

	summary := AnalyzeLogs(entries, false)

	require.Len(t, summary.Entries, 3)
	assert.Equal(t, "ERROR one", summary.Entries[0].Content)
	assert.Equal(t, "INFO two", summary.Entries[1].Content)
	assert.Equal(t, "ERROR three", summary.Entries[2].Content)
}

func TestAnalyzeLogsDisplayCap(t *testing.T) {
	var entries []argocd.LogEntry
	for i := 0; i < 50; i++ {
		entries = append(entries, argocd.LogEntry{Content: fmt.Sprintf("ERROR line %d", i)})
	}

	summary := AnalyzeLogs(entries, false)

	assert.Equal(t, 50, summary.TotalLines)
	assert.Equal(t, 50, summary.ErrorCount)
	assert.Len(t, summary.Entries, MaxLogEntries)
	assert.True(t, summary.Truncated)
	// The cap keeps the earliest entries of the window.
	assert.Equal(t, "ERROR line 0", summary.Entries[0].Content)
}

func TestAnalyzeLogsEmptyInput(t *testing.T) {
	summary := AnalyzeLogs(nil, false)

	assert.Equal(t, 0, summary.TotalLines)
	assert.Equal(t, 0, summary.ErrorCount)
	assert.Equal(t, 0, summary.WarningCount)
	assert.Equal(t, 0, summary.IssueCount)
	assert.Empty(t, summary.Entries)
	assert.False(t, summary.Truncated)
}

func TestAnalyzeLogsLevelHistogramSumsToTotal(t *testing.T) {
	entries := logLines(
		"FATAL boom", "ERROR x", "WARN y", "INFO z", "debug d", "plain line",
	)

	summary := AnalyzeLogs(entries, false)

	total := 0
	for _, n := range summary.CountsByLevel {
		total += n
	}
	assert.Equal(t, summary.TotalLines, total)
	assert.Equal(t, 2, summary.ErrorCount) // Fatal + Error
}

func TestAnalyzeLogsCarriesTimestampAndPod(t *testing.T) {
	entries := []argocd.LogEntry{
		{Content: "INFO hello", TimeStampStr: "2026-08-28T10:00:00Z", PodName: "web-0"},
	}

	summary := AnalyzeLogs(entries, false)

	require.Len(t, summary.Entries, 1)
	assert.Equal(t, "2026-08-28T10:00:00Z", summary.Entries[0].Timestamp)
	assert.Equal(t, "web-0", summary.Entries[0].PodName)
}
