package analysis

import (
	"github.com/samber/lo"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

// diffSummaryText is the fixed description attached to modified resources.
// Raw live/target state blobs are never carried into the summary.
const diffSummaryText = "Resource has differences between live and target state"

// ServerSideDiffSummary is the per-resource diff record with state blobs
// dropped. DiffSummary is present only when the resource is modified.
type ServerSideDiffSummary struct {
	Group       string `json:"group,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Namespace   string `json:"namespace,omitempty"`
	Name        string `json:"name,omitempty"`
	Modified    bool   `json:"modified"`
	DiffSummary string `json:"diffSummary,omitempty"`
}

// DiffSummary is the bounded diff report. ModifiedCount plus InSyncCount
// always equals TotalCount. Each partition preserves upstream order.
type DiffSummary struct {
	TotalCount    int                     `json:"totalCount"`
	ModifiedCount int                     `json:"modifiedCount"`
	InSyncCount   int                     `json:"inSyncCount"`
	Modified      []ServerSideDiffSummary `json:"modified"`
	InSync        []ServerSideDiffSummary `json:"inSync"`
}

// SummarizeDiffs partitions per-resource diff records into modified and
// in-sync groups. Empty input yields an all-zero summary without error.
func SummarizeDiffs(records []argocd.ResourceDiff) DiffSummary {
	summaries := lo.Map(records, func(r argocd.ResourceDiff, _ int) ServerSideDiffSummary {
		s := ServerSideDiffSummary{
			Group:     r.Group,
			Kind:      r.Kind,
			Namespace: r.Namespace,
			Name:      r.Name,
			Modified:  r.Modified != nil && *r.Modified,
		}
		if s.Modified {
			s.DiffSummary = diffSummaryText
		}
		return s
	})

	modified := lo.Filter(summaries, func(s ServerSideDiffSummary, _ int) bool {
		return s.Modified
	})
	inSync := lo.Filter(summaries, func(s ServerSideDiffSummary, _ int) bool {
		return !s.Modified
	})

	return DiffSummary{
		TotalCount:    len(summaries),
		ModifiedCount: len(modified),
		InSyncCount:   len(inSync),
		Modified:      modified,
		InSync:        inSync,
	}
}
