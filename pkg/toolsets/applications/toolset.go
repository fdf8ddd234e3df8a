package applications

import (
	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/toolsets"
)

// Toolset represents the applications toolset
type Toolset struct{}

// Name returns the toolset name
func (t *Toolset) Name() string {
	return "applications"
}

// GetTools returns all tools in this toolset
func (t *Toolset) GetTools() []api.ServerTool {
	tools := make([]api.ServerTool, 0)
	tools = append(tools, applicationTools()...)
	return tools
}

func init() {
	toolsets.Register(&Toolset{})
}
