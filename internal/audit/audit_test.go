package audit

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestLogAndQuery(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	err := store.Log(ctx, Entry{
		ActorID:  "alice",
		Action:   ActionTicketCreated,
		TicketID: "12",
		Query:    "create hr-emergency ticket for payroll lockout",
		Summary:  "created ticket 12",
		Success:  true,
	})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	err = store.Log(ctx, Entry{
		ActorID: "bob",
		Action:  ActionQueryDenied,
		Query:   "assign ticket 12 to me",
		Summary: "assignment denied for non-admin",
	})
	if err != nil {
		t.Fatalf("Log: %v", err)
	}

	entries, err := store.Query(ctx, QueryFilter{ActorID: "alice"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry for alice, got %d", len(entries))
	}
	if entries[0].TicketID != "12" || !entries[0].Success {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
	if entries[0].ID == "" {
		t.Error("expected generated id")
	}

	denied, err := store.Query(ctx, QueryFilter{Action: ActionQueryDenied})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(denied) != 1 || denied[0].Success {
		t.Errorf("expected one failed denial entry, got %+v", denied)
	}
}

func TestQueryTimeWindow(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	old := time.Now().UTC().Add(-48 * time.Hour)
	store.Log(ctx, Entry{ActorID: "alice", Action: ActionTicketClosed, Timestamp: old, Success: true})
	store.Log(ctx, Entry{ActorID: "alice", Action: ActionTicketClosed, Success: true})

	since := time.Now().UTC().Add(-time.Hour)
	entries, err := store.Query(ctx, QueryFilter{Since: &since})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 recent entry, got %d", len(entries))
	}

	n, err := store.DeleteBefore(ctx, since)
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted row, got %d", n)
	}
}

func TestRoutes(t *testing.T) {
	store := setupStore(t)
	store.Log(context.Background(), Entry{ActorID: "alice", Action: ActionTicketCreated, TicketID: "3", Success: true})

	r := chi.NewRouter()
	RegisterRoutes(r, store)
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/api/audit/?actor=alice")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(entries) != 1 || entries[0].TicketID != "3" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}
