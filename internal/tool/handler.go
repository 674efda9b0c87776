package tool

import (
	"context"

	"fluxmcp/internal/log"
	"fluxmcp/internal/replicate"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

// Handler routes tool calls to the Replicate client. Each call performs at
// most one network request; argument failures never reach the client.
type Handler struct {
	client replicate.Client
}

func NewHandler(i *do.Injector) (*Handler, error) {
	client, err := do.Invoke[replicate.Client](i)
	if err != nil {
		return nil, err
	}
	return &Handler{client: client}, nil
}

// Register adds both tools to the server. Calls for any other tool name are
// rejected by the server itself as method-not-found.
func (h *Handler) Register(s *server.MCPServer) {
	s.AddTool(GenerateImageTool(), h.GenerateImage)
	s.AddTool(GetImageTool(), h.GetImage)
}

func (h *Handler) GenerateImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("tool").With("name", req.Params.Name)
	logger.Info("handling tool call")

	prompt := req.GetString("prompt", "")
	if prompt == "" {
		return mcp.NewToolResultError("prompt is required"), nil
	}

	payload, err := h.client.Submit(ctx, prompt)
	if err != nil {
		logger.Error("submit failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (h *Handler) GetImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("tool").With("name", req.Params.Name)
	logger.Info("handling tool call")

	predictionID := req.GetString("prediction_id", "")
	if predictionID == "" {
		return mcp.NewToolResultError("prediction_id is required"), nil
	}

	payload, err := h.client.FetchStatus(ctx, predictionID)
	if err != nil {
		logger.Error("fetch failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
