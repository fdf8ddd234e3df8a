package analysis

import (
	"sort"

	"github.com/samber/lo"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/argocd"
)

// MaxTreeSamples caps the displayed node sample.
const MaxTreeSamples = 10

// TreeNodeSample is one displayed node from the resource hierarchy.
type TreeNodeSample struct {
	Group       string   `json:"group,omitempty"`
	Kind        string   `json:"kind,omitempty"`
	Namespace   string   `json:"namespace,omitempty"`
	Name        string   `json:"name,omitempty"`
	Health      string   `json:"health"`
	ParentCount int      `json:"parentCount"`
	Orphaned    bool     `json:"orphaned"`
	Images      []string `json:"images,omitempty"`
}

// ResourceTreeSummary is the bounded report over a resource hierarchy.
// The kind and health maps cover the full input and each sums to
// TotalCount.
type ResourceTreeSummary struct {
	TotalCount     int              `json:"totalCount"`
	OrphanCount    int              `json:"orphanCount"`
	CountsByKind   map[string]int   `json:"countsByKind"`
	CountsByHealth map[string]int   `json:"countsByHealth"`
	Truncated      bool             `json:"truncated"`
	Samples        []TreeNodeSample `json:"samples"`
}

type treeNode struct {
	argocd.ResourceNode
	managed bool
}

// SummarizeTree aggregates a resource hierarchy. Managed nodes carry the
// application's ownership marker and are never orphans; an unmanaged node
// is orphaned iff it has zero parent references (a child of an orphan has
// an incoming edge and is not counted again). The sample is sorted by
// (kind, name) ascending so output does not depend on upstream ordering.
func SummarizeTree(managed, unmanaged []argocd.ResourceNode) ResourceTreeSummary {
	nodes := make([]treeNode, 0, len(managed)+len(unmanaged))
	for _, n := range managed {
		nodes = append(nodes, treeNode{ResourceNode: n, managed: true})
	}
	for _, n := range unmanaged {
		nodes = append(nodes, treeNode{ResourceNode: n})
	}

	summary := ResourceTreeSummary{
		TotalCount: len(nodes),
		OrphanCount: lo.CountBy(nodes, func(n treeNode) bool {
			return n.orphaned()
		}),
		CountsByKind: lo.CountValuesBy(nodes, func(n treeNode) string {
			return n.Kind
		}),
		CountsByHealth: lo.CountValuesBy(nodes, func(n treeNode) string {
			return nodeHealth(n.ResourceNode)
		}),
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Kind != nodes[j].Kind {
			return nodes[i].Kind < nodes[j].Kind
		}
		return nodes[i].Name < nodes[j].Name
	})

	if len(nodes) > MaxTreeSamples {
		summary.Truncated = true
		nodes = nodes[:MaxTreeSamples]
	}

	summary.Samples = lo.Map(nodes, func(n treeNode, _ int) TreeNodeSample {
		return TreeNodeSample{
			Group:       n.Group,
			Kind:        n.Kind,
			Namespace:   n.Namespace,
			Name:        n.Name,
			Health:      nodeHealth(n.ResourceNode),
			ParentCount: len(n.ParentRefs),
			Orphaned:    n.orphaned(),
			Images:      n.Images,
		}
	})

	return summary
}

func (n treeNode) orphaned() bool {
	return !n.managed && len(n.ParentRefs) == 0
}

func nodeHealth(n argocd.ResourceNode) string {
	if n.Health == nil || n.Health.Status == "" {
		return "Unknown"
	}
	return n.Health.Status
}
