package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/audit"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/db"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/nlp"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/tickets"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/users"
)

func setupTest(t *testing.T) chi.Router {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	userStore := users.NewStore(database)
	if err := userStore.Create(context.Background(), users.User{
		ID: "alice", Name: "Alice", Role: users.RoleUser, Authorized: true,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := nlp.NewService(tickets.NewStore(database), userStore, audit.NewStore(database), nlp.ServiceConfig{})
	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r
}

func dial(t *testing.T, r chi.Router) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/chat/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	return conn
}

func TestWebSocketQuery(t *testing.T) {
	conn := dial(t, setupTest(t))

	msg := chatRequest{Type: "query", UserID: "alice", Query: "show active tickets"}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp chatResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}

	if resp.Type != "response" {
		t.Errorf("expected response type, got %q", resp.Type)
	}
	if !resp.Success {
		t.Errorf("query failed: %s", resp.Message)
	}
	if resp.SessionID == "" {
		t.Error("expected a generated session id")
	}
}

func TestWebSocketMissingUser(t *testing.T) {
	conn := dial(t, setupTest(t))

	if err := conn.WriteJSON(chatRequest{Type: "query", Query: "help"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp chatResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" {
		t.Errorf("expected error type, got %q", resp.Type)
	}
	if !strings.Contains(resp.Message, "user_id is required") {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestWebSocketUnknownType(t *testing.T) {
	conn := dial(t, setupTest(t))

	if err := conn.WriteJSON(chatRequest{Type: "broadcast", UserID: "alice", Query: "help"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp chatResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" {
		t.Errorf("expected error type, got %q", resp.Type)
	}
}

func TestWebSocketSessionIDKept(t *testing.T) {
	conn := dial(t, setupTest(t))

	msg := chatRequest{Type: "query", SessionID: "sess-1", UserID: "alice", Query: "help"}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp chatResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", resp.SessionID)
	}
}
