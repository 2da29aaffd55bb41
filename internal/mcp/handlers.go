package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/nlp"
)

// handleProcessQuery runs a query through the pipeline on behalf of a user.
func (s *Server) handleProcessQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: user_id"), nil
	}

	var resp *nlp.NLPResponse
	if request.GetBool("admin", false) {
		resp = s.svc.ProcessAdminQuery(ctx, userID, query)
	} else {
		resp = s.svc.ProcessQuery(ctx, userID, query)
	}

	if !resp.Success {
		return mcp.NewToolResultError(resp.Message), nil
	}
	return mcp.NewToolResultText(formatResponse(resp)), nil
}

// handleGetCapabilities resolves what the user may do with the pipeline.
func (s *Server) handleGetCapabilities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: user_id"), nil
	}

	caps := s.svc.Capabilities(ctx, userID)
	data, err := json.MarshalIndent(caps, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding capabilities: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleGetSuggestions returns example queries, widened for admin users.
func (s *Server) handleGetSuggestions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	isAdmin := false
	if userID := request.GetString("user_id", ""); userID != "" {
		caps := s.svc.Capabilities(ctx, userID)
		isAdmin, _ = caps["adminAccess"].(bool)
	}

	data, err := json.MarshalIndent(s.svc.Suggestions(isAdmin), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding suggestions: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleGetTicket fetches a single ticket by id.
func (s *Server) handleGetTicket(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("ticket_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: ticket_id"), nil
	}
	id = strings.TrimPrefix(strings.TrimSpace(id), "#")

	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
	}
	if t == nil {
		return mcp.NewToolResultError(fmt.Sprintf("ticket %s not found", id)), nil
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding ticket: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// formatResponse renders an NLPResponse into a text block for agent
// consumption: the human message first, structured data after.
func formatResponse(resp *nlp.NLPResponse) string {
	var sb strings.Builder
	sb.WriteString(resp.Message)

	if resp.Data != nil {
		if data, err := json.MarshalIndent(resp.Data, "", "  "); err == nil {
			sb.WriteString("\n\n")
			sb.Write(data)
		}
	}
	return sb.String()
}
