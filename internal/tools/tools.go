// Package tools defines the MCP tools the server exposes and their dispatch
// logic. Each tool takes an enumerated operation tag plus loosely-typed
// fields, maps it to one or two Spotify calls, and renders the result as
// Markdown-style text.
//
// Error policy is uniform: user-input problems and upstream API failures are
// both returned as error text payloads, never as transport faults.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xeipuuv/gojsonschema"

	"github.com/oO/spotify-mcp-server/internal/session"
	"github.com/oO/spotify-mcp-server/internal/tempo"
)

// Registry wires tool handlers to the Spotify session and the optional
// tempo lookup client.
type Registry struct {
	session *session.Session
	tempo   *tempo.Client
	logger  hclog.Logger
}

// New returns a Registry. tempoClient may be nil when no lookup key is
// configured.
func New(sess *session.Session, tempoClient *tempo.Client, logger hclog.Logger) *Registry {
	return &Registry{
		session: sess,
		tempo:   tempoClient,
		logger:  logger.Named("tools"),
	}
}

// Register adds every tool to the MCP server, each behind schema validation.
func (r *Registry) Register(s *server.MCPServer) {
	registrations := []struct {
		tool    mcp.Tool
		handler server.ToolHandlerFunc
	}{
		{searchTool(), r.handleSearch},
		{albumsTool(), r.handleAlbums},
		{infoTool(), r.handleInfo},
		{playbackTool(), r.handlePlayback},
	}

	for _, reg := range registrations {
		s.AddTool(reg.tool, r.validated(reg.tool, reg.handler))
	}
}

// validated wraps a handler so arguments are checked against the tool's
// declared input schema before dispatch. Violations come back as error text,
// keeping the protocol call itself successful.
func (r *Registry) validated(tool mcp.Tool, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	var schema *gojsonschema.Schema

	schemaJSON, err := json.Marshal(tool.InputSchema)
	if err == nil {
		schema, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	}
	if err != nil {
		// Fall back to per-operation checks only.
		r.logger.Error("failed to compile input schema", "tool", tool.Name, "error", err)
		schema = nil
	}

	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if schema != nil {
			result, err := schema.Validate(gojsonschema.NewGoLoader(req.GetArguments()))
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
			}
			if !result.Valid() {
				msgs := make([]string, 0, len(result.Errors()))
				for _, desc := range result.Errors() {
					msgs = append(msgs, desc.String())
				}
				return mcp.NewToolResultError("Invalid arguments: " + strings.Join(msgs, "; ")), nil
			}
		}

		return next(ctx, req)
	}
}

// apiError renders an upstream failure as the uniform error payload.
func apiError(action string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Error %s: %v", action, err))
}

func unknownOperation(op string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Unknown operation: %s", op))
}

// Argument coercion. MCP hosts are loose with JSON number and array types,
// so these accept the shapes that show up in practice.

func intArg(req mcp.CallToolRequest, key string, def int) int {
	v, ok := req.GetArguments()[key]
	if !ok {
		return def
	}

	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}

	return def
}

func boolArg(req mcp.CallToolRequest, key string, def bool) bool {
	v, ok := req.GetArguments()[key]
	if !ok {
		return def
	}

	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	}

	return def
}

func stringSliceArg(req mcp.CallToolRequest, key string) []string {
	v, ok := req.GetArguments()[key]
	if !ok {
		return nil
	}

	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	return nil
}
