package sync

import (
	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/toolsets"
)

// Toolset represents the sync toolset: the mutating operations plus the
// read-only tools that inform them.
type Toolset struct{}

// Name returns the toolset name
func (t *Toolset) Name() string {
	return "sync"
}

// GetTools returns all tools in this toolset
func (t *Toolset) GetTools() []api.ServerTool {
	tools := make([]api.ServerTool, 0)
	tools = append(tools, syncTools()...)
	tools = append(tools, rollbackTools()...)
	tools = append(tools, patchTools()...)
	tools = append(tools, diffTools()...)
	tools = append(tools, windowTools()...)
	return tools
}

func init() {
	toolsets.Register(&Toolset{})
}
