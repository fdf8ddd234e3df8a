package analysis

import (
	"sort"

	"github.com/samber/lo"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

// MaxHistoryEntries caps the displayed history list.
const MaxHistoryEntries = 20

// HistoryEntry is one past deployment. Revision keeps the full value;
// ShortRevision is the 8-character display form.
type HistoryEntry struct {
	ID             int64  `json:"id"`
	Revision       string `json:"revision,omitempty"`
	ShortRevision  string `json:"shortRevision,omitempty"`
	DeployedAt     string `json:"deployedAt,omitempty"`
	DeployStarted  string `json:"deployStartedAt,omitempty"`
	RepoURL        string `json:"repoURL,omitempty"`
	Path           string `json:"path,omitempty"`
	Chart          string `json:"chart,omitempty"`
	TargetRevision string `json:"targetRevision,omitempty"`
	InitiatedBy    string `json:"initiatedBy,omitempty"`
	Automated      bool   `json:"automated"`
	Current        bool   `json:"current"`
}

// HistorySummary is the bounded report over deployment history. Entries
// are sorted by history ID descending and capped; TotalEntries always
// reflects the full input.
type HistorySummary struct {
	Application  string         `json:"application"`
	TotalEntries int            `json:"totalEntries"`
	Truncated    bool           `json:"truncated"`
	Entries      []HistoryEntry `json:"entries"`
}

// SummarizeHistory orders deployment history and marks the current and
// automated entries. The entry with the maximum ID is current. An entry is
// automated iff it carries no initiator. Empty input yields TotalEntries
// zero, not an error.
func SummarizeHistory(appName string, entries []argocd.RevisionHistory) HistorySummary {
	summary := HistorySummary{
		Application:  appName,
		TotalEntries: len(entries),
	}
	if len(entries) == 0 {
		summary.Entries = []HistoryEntry{}
		return summary
	}

	ordered := make([]argocd.RevisionHistory, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID > ordered[j].ID
	})
	currentID := ordered[0].ID

	if len(ordered) > MaxHistoryEntries {
		summary.Truncated = true
		ordered = ordered[:MaxHistoryEntries]
	}

	summary.Entries = lo.Map(ordered, func(h argocd.RevisionHistory, _ int) HistoryEntry {
		entry := HistoryEntry{
			ID:            h.ID,
			Revision:      h.Revision,
			ShortRevision: ShortRevision(h.Revision),
			DeployedAt:    h.DeployedAt,
			DeployStarted: h.DeployStartedAt,
			Automated:     h.InitiatedBy == nil || h.InitiatedBy.Username == "",
			Current:       h.ID == currentID,
		}
		if h.InitiatedBy != nil {
			entry.InitiatedBy = h.InitiatedBy.Username
		}
		if src := historySource(h); src != nil {
			entry.RepoURL = src.RepoURL
			entry.Path = src.Path
			entry.Chart = src.Chart
			entry.TargetRevision = src.TargetRevision
		}
		return entry
	})

	return summary
}

// ShortRevision shortens a revision to its first 8 characters. Input
// already at or below 8 characters is returned unchanged, so the
// operation is idempotent.
func ShortRevision(revision string) string {
	if len(revision) <= 8 {
		return revision
	}
	return revision[:8]
}

// historySource picks the single source, or the first of a multi-source
// deployment.
func historySource(h argocd.RevisionHistory) *argocd.ApplicationSource {
	if h.Source != nil {
		return h.Source
	}
	if len(h.Sources) > 0 {
		return &h.Sources[0]
	}
	return nil
}
