package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/audit"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/db"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/nlp"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/tickets"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/users"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ticketStore := tickets.NewStore(database)
	userStore := users.NewStore(database)
	ctx := context.Background()

	seed := []users.User{
		{ID: "alice", Name: "Alice", Role: users.RoleUser, Authorized: true},
		{ID: "admin1", Name: "Root", Role: users.RoleAdmin, Authorized: true},
	}
	for _, u := range seed {
		if err := userStore.Create(ctx, u); err != nil {
			t.Fatalf("seed user %s: %v", u.ID, err)
		}
	}

	svc := nlp.NewService(ticketStore, userStore, audit.NewStore(database), nlp.ServiceConfig{})
	return NewServer(svc, ticketStore)
}

func TestToolDefinitions(t *testing.T) {
	// Verify tool names and required properties.
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"process_query", processQueryTool, "process_query"},
		{"get_capabilities", getCapabilitiesTool, "get_capabilities"},
		{"get_suggestions", getSuggestionsTool, "get_suggestions"},
		{"get_ticket", getTicketTool, "get_ticket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestServer(t)
	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.svc == nil {
		t.Fatal("query service not set")
	}
}

func TestHandleProcessQuery(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	t.Run("basic query", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"query":   "show active tickets",
			"user_id": "alice",
		}

		result, err := srv.handleProcessQuery(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"user_id": "alice"}

		result, err := srv.handleProcessQuery(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing query")
		}
	})

	t.Run("missing user", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "help"}

		result, err := srv.handleProcessQuery(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing user_id")
		}
	})

	t.Run("admin entry point rejects non-admin", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"query":   "show all tickets",
			"user_id": "alice",
			"admin":   true,
		}

		result, err := srv.handleProcessQuery(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for non-admin on admin entry point")
		}
	})

	t.Run("admin query", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"query":   "show all tickets",
			"user_id": "admin1",
			"admin":   true,
		}

		result, err := srv.handleProcessQuery(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
	})
}

func TestHandleGetCapabilities(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"user_id": "admin1"}

	result, err := srv.handleGetCapabilities(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
}

func TestHandleGetTicket(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	created, err := srv.tickets.Create(ctx, tickets.Ticket{UserID: "alice", Description: "payroll access"})
	if err != nil {
		t.Fatalf("seed ticket: %v", err)
	}

	t.Run("existing ticket with hash prefix", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"ticket_id": "#" + created.ID}

		result, err := srv.handleGetTicket(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
	})

	t.Run("missing ticket", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"ticket_id": "45821"}

		result, err := srv.handleGetTicket(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing ticket")
		}
	})
}

func TestFormatResponse(t *testing.T) {
	resp := &nlp.NLPResponse{Message: "Found 1 ticket(s).", Success: true, Data: map[string]string{"id": "1"}}
	got := formatResponse(resp)
	if !strings.HasPrefix(got, "Found 1 ticket(s).") {
		t.Errorf("formatted response missing message: %q", got)
	}
	if !strings.Contains(got, `"id": "1"`) {
		t.Errorf("formatted response missing data: %q", got)
	}
}
