package pggateway

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers every tool of the catalog on the given MCP
// server, routing calls through Gateway.Dispatch. Failure envelopes go
// out as ordinary text results with success=false; only unknown tools and
// argument errors become protocol-level call errors.
func RegisterMCPTools(mcpServer *server.MCPServer, gw *Gateway) {
	for _, def := range Catalog() {
		tool := buildTool(def)
		name := def.Name
		mcpServer.AddTool(tool, gw.loggedToolHandler(name, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			env, err := gw.Dispatch(ctx, name, req.GetArguments())
			if err != nil {
				return nil, err
			}
			jsonBytes, err := json.Marshal(env)
			if err != nil {
				return mcp.NewToolResultError("failed to marshal tool result"), nil
			}
			return mcp.NewToolResultText(string(jsonBytes)), nil
		}))
	}
}

// buildTool converts a catalog definition into an mcp-go tool declaration.
func buildTool(def ToolDefinition) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(def.Description)}
	if def.ReadOnly {
		opts = append(opts, mcp.WithReadOnlyHintAnnotation(true))
	}
	for _, f := range def.Fields {
		var propOpts []mcp.PropertyOption
		if f.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		propOpts = append(propOpts, mcp.Description(f.Description))
		switch f.Type {
		case "number":
			opts = append(opts, mcp.WithNumber(f.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(f.Name, propOpts...))
		}
	}
	return mcp.NewTool(def.Name, opts...)
}

// loggedToolHandler wraps a tool handler to log request and response lengths.
func (g *Gateway) loggedToolHandler(tool string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reqLen := requestLength(req)
		result, err := handler(ctx, req)
		respLen := resultLength(result)
		g.logger.Info().
			Str("tool", tool).
			Int("request_bytes", reqLen).
			Int("response_bytes", respLen).
			Msg("tool call")
		return result, err
	}
}

// requestLength returns the JSON-encoded byte length of the request arguments.
func requestLength(req mcp.CallToolRequest) int {
	args := req.GetArguments()
	if len(args) == 0 {
		return 0
	}
	b, err := json.Marshal(args)
	if err != nil {
		return 0
	}
	return len(b)
}

// resultLength returns the total byte length of text content in a CallToolResult.
func resultLength(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}
	total := 0
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			total += len(tc.Text)
		}
	}
	return total
}
