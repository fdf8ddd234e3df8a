package analysis

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

// MaxEventDetails caps the displayed event sample.
const MaxEventDetails = 20

// EventDetail is one retained event record.
type EventDetail struct {
	Type            string                  `json:"type,omitempty"`
	Reason          string                  `json:"reason,omitempty"`
	Message         string                  `json:"message,omitempty"`
	Count           int32                   `json:"count,omitempty"`
	FirstTimestamp  string                  `json:"firstTimestamp,omitempty"`
	LastTimestamp   string                  `json:"lastTimestamp,omitempty"`
	InvolvedObject  *argocd.ObjectReference `json:"involvedObject,omitempty"`
	SourceComponent string                  `json:"sourceComponent,omitempty"`
}

// EventSummary is the bounded report over an event list. The count maps
// cover the full input; Details holds at most MaxEventDetails entries in
// recency order.
type EventSummary struct {
	TotalCount     int            `json:"totalCount"`
	WarningCount   int            `json:"warningCount"`
	CountsByType   map[string]int `json:"countsByType"`
	CountsByReason map[string]int `json:"countsByReason"`
	Truncated      bool           `json:"truncated"`
	Details        []EventDetail  `json:"details"`
}

// SummarizeEvents aggregates events and selects a deterministic sample.
// Ordering never trusts the upstream listing: last timestamp descending
// with absent timestamps last, then count descending, then reason
// ascending.
func SummarizeEvents(events []argocd.Event) EventSummary {
	summary := EventSummary{
		TotalCount: len(events),
		WarningCount: lo.CountBy(events, func(e argocd.Event) bool {
			return e.Type == "Warning"
		}),
		CountsByType: lo.CountValuesBy(events, func(e argocd.Event) string {
			return e.Type
		}),
		CountsByReason: lo.CountValuesBy(events, func(e argocd.Event) string {
			return e.Reason
		}),
	}

	ordered := make([]argocd.Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		ti, iok := eventTime(ordered[i])
		tj, jok := eventTime(ordered[j])
		switch {
		case iok && !jok:
			return true
		case !iok && jok:
			return false
		case iok && jok && !ti.Equal(tj):
			return ti.After(tj)
		}
		ci, cj := eventCount(ordered[i]), eventCount(ordered[j])
		if ci != cj {
			return ci > cj
		}
		return ordered[i].Reason < ordered[j].Reason
	})

	if len(ordered) > MaxEventDetails {
		summary.Truncated = true
		ordered = ordered[:MaxEventDetails]
	}

	summary.Details = lo.Map(ordered, func(e argocd.Event, _ int) EventDetail {
		detail := EventDetail{
			Type:           e.Type,
			Reason:         e.Reason,
			Message:        e.Message,
			Count:          eventCount(e),
			FirstTimestamp: e.FirstTimestamp,
			LastTimestamp:  e.LastTimestamp,
			InvolvedObject: e.InvolvedObject,
		}
		if e.Source != nil {
			detail.SourceComponent = e.Source.Component
		}
		if detail.SourceComponent == "" {
			detail.SourceComponent = e.ReportingComponent
		}
		return detail
	})

	return summary
}

func eventTime(e argocd.Event) (time.Time, bool) {
	if e.LastTimestamp == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, e.LastTimestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func eventCount(e argocd.Event) int32 {
	if e.Count == nil {
		return 0
	}
	return *e.Count
}
