package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/hypen-code/hypen-argocd-mcp/pkg/api"
	"github.com/hypen-code/hypen-argocd-mcp/pkg/version"
)

// Server represents the MCP server
type Server struct {
	server   *mcp.Server
	provider api.ArgoCDProvider
	toolsets []api.Toolset
	log      *zap.Logger
}

// NewServer creates a new MCP server
func NewServer(provider api.ArgoCDProvider, toolsets []api.Toolset, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		provider: provider,
		toolsets: toolsets,
		log:      log,
	}

	// The SDK advertises the tools capability once AddTool is called.
	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    version.BinaryName,
			Version: version.Version,
		},
		nil,
	)

	if err := s.registerTools(); err != nil {
		return nil, errors.Wrap(err, "failed to register tools")
	}

	return s, nil
}

// ServeStdio starts the MCP server with STDIO transport. Stdout carries only
// JSON-RPC frames; protocol logging goes to stderr.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.LoggingTransport{
		Transport: &mcp.StdioTransport{},
		Writer:    os.Stderr,
	})
}

// ServeHTTP starts the MCP server with HTTP/SSE transport
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewSSEHandler(func(r *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	s.log.Info("starting MCP server",
		zap.String("addr", addr),
		zap.String("sse_endpoint", fmt.Sprintf("http://%s/sse", addr)),
		zap.String("message_endpoint", fmt.Sprintf("http://%s/messages/<session-id>", addr)))

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutting down HTTP server")
		return httpServer.Shutdown(context.Background())
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "HTTP server error")
		}
		return nil
	}
}

// registerTools registers all tools from toolsets
func (s *Server) registerTools() error {
	for _, toolset := range s.toolsets {
		tools := toolset.GetTools()
		s.log.Info("registering toolset",
			zap.String("toolset", toolset.Name()),
			zap.Int("tools", len(tools)))

		for _, tool := range tools {
			if err := s.registerTool(tool); err != nil {
				return errors.Wrapf(err, "failed to register tool %s", tool.Tool.Name)
			}
		}
	}

	return nil
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(serverTool api.ServerTool) error {
	mcpTool, handler, err := ServerToolToMCPTool(s, serverTool)
	if err != nil {
		return err
	}

	s.server.AddTool(mcpTool, handler)
	return nil
}

// ServerToolToMCPTool converts our ServerTool to MCP SDK format
func ServerToolToMCPTool(s *Server, tool api.ServerTool) (*mcp.Tool, mcp.ToolHandler, error) {
	mcpTool := &mcp.Tool{
		Name:        tool.Tool.Name,
		Description: tool.Tool.Description,
		InputSchema: tool.Tool.InputSchema,
	}

	mcpHandler := func(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		toolCallRequest, err := MCPRequestToToolCallRequest(request)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to convert request for tool %s", tool.Tool.Name)
		}

		result, err := tool.Handler(api.ToolHandlerParams{
			Context:         ctx,
			ArgoCDProvider:  s.provider,
			ToolCallRequest: toolCallRequest,
		})
		if err != nil {
			return nil, err
		}

		return NewTextResult(result.Content, result.Error), nil
	}

	return mcpTool, mcpHandler, nil
}

// ToolCallRequest implements api.ToolCallRequest
type ToolCallRequest struct {
	Name      string
	arguments map[string]any
}

var _ api.ToolCallRequest = (*ToolCallRequest)(nil)

// GetArguments returns the tool call arguments
func (t *ToolCallRequest) GetArguments() map[string]any {
	return t.arguments
}

// MCPRequestToToolCallRequest converts MCP request to our internal format
func MCPRequestToToolCallRequest(request *mcp.CallToolRequest) (*ToolCallRequest, error) {
	params, ok := request.GetParams().(*mcp.CallToolParamsRaw)
	if !ok {
		return nil, errors.New("invalid tool call parameters")
	}

	arguments := map[string]any{}
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments, &arguments); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal arguments")
		}
	}

	return &ToolCallRequest{
		Name:      params.Name,
		arguments: arguments,
	}, nil
}

// NewTextResult creates a text result
func NewTextResult(content string, err error) *mcp.CallToolResult {
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Text: fmt.Sprintf("Error: %v", err),
				},
			},
			IsError: true,
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: content,
			},
		},
	}
}
