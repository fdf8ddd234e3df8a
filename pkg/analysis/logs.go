package analysis

import (
	"github.com/samber/lo"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

// MaxLogEntries caps the displayed log sample.
const MaxLogEntries = 20

// AnalyzedLogEntry is a raw log line plus its classification.
type AnalyzedLogEntry struct {
	Content        string `json:"content"`
	Timestamp      string `json:"timestamp,omitempty"`
	PodName        string `json:"podName,omitempty"`
	Level          Level  `json:"level"`
	PotentialIssue bool   `json:"potentialIssue"`
}

// PodLogsSummary is the bounded report for one log query. TotalLines and
// the count fields cover the full retained window; Entries is the capped
// display sample, reduced to potential issues when ErrorsOnly is set.
type PodLogsSummary struct {
	TotalLines     int                `json:"totalLines"`
	CountsByLevel  map[Level]int      `json:"countsByLevel"`
	ErrorCount     int                `json:"errorCount"`
	WarningCount   int                `json:"warningCount"`
	IssueCount     int                `json:"issueCount"`
	ErrorsOnly     bool               `json:"errorsOnly"`
	DisplayedCount int                `json:"displayedCount"`
	Truncated      bool               `json:"truncated"`
	Entries        []AnalyzedLogEntry `json:"entries"`
}

// AnalyzeLogs classifies a retained log window and builds its summary.
// Aggregates are computed before the errors-only display filter, so they
// are invariant to it. Chronological order of the input is preserved.
// Empty input yields an all-zero summary, not an error.
func AnalyzeLogs(entries []argocd.LogEntry, errorsOnly bool) PodLogsSummary {
	analyzed := lo.Map(entries, func(e argocd.LogEntry, _ int) AnalyzedLogEntry {
		return AnalyzedLogEntry{
			Content:        e.Content,
			Timestamp:      e.Timestamp(),
			PodName:        e.PodName,
			Level:          Classify(e.Content),
			PotentialIssue: PotentialIssue(e.Content),
		}
	})

	byLevel := lo.CountValuesBy(analyzed, func(e AnalyzedLogEntry) Level {
		return e.Level
	})

	summary := PodLogsSummary{
		TotalLines:    len(analyzed),
		CountsByLevel: byLevel,
		ErrorCount:    byLevel[LevelFatal] + byLevel[LevelError],
		WarningCount:  byLevel[LevelWarning],
		IssueCount: lo.CountBy(analyzed, func(e AnalyzedLogEntry) bool {
			return e.PotentialIssue
		}),
		ErrorsOnly: errorsOnly,
	}

	displayed := analyzed
	if errorsOnly {
		displayed = lo.Filter(analyzed, func(e AnalyzedLogEntry, _ int) bool {
			return e.PotentialIssue
		})
	}
	if len(displayed) > MaxLogEntries {
		summary.Truncated = true
		displayed = displayed[:MaxLogEntries]
	}

	summary.DisplayedCount = len(displayed)
	summary.Entries = displayed
	return summary
}
