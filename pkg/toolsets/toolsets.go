// Package toolsets keeps the process-wide toolset registry. Toolset
// packages register themselves from init, so importing a toolset package
// is what enables it.
package toolsets

import "github.com/hypen-code/hypen-argocd-mcp/pkg/api"

var registry []api.Toolset

// Register adds a toolset to the registry. Not safe for concurrent use;
// callers are init functions.
func Register(toolset api.Toolset) {
	registry = append(registry, toolset)
}

// All returns every registered toolset in registration order.
func All() []api.Toolset {
	return registry
}
