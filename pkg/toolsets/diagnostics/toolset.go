package diagnostics

import (
	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/toolsets"
)

// Toolset represents the diagnostics toolset
type Toolset struct{}

// Name returns the toolset name
func (t *Toolset) Name() string {
	return "diagnostics"
}

// GetTools returns all tools in this toolset
func (t *Toolset) GetTools() []api.ServerTool {
	tools := make([]api.ServerTool, 0)
	tools = append(tools, podLogsTools()...)
	tools = append(tools, eventTools()...)
	tools = append(tools, treeTools()...)
	return tools
}

func init() {
	toolsets.Register(&Toolset{})
}
