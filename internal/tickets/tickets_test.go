package tickets

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	d, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return NewStore(d)
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, Ticket{UserID: "u1", Description: "server room fire"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := s.Create(ctx, Ticket{UserID: "u2", Description: "payroll access"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID == "" || second.ID == "" {
		t.Fatal("expected generated ids")
	}
	if first.ID == second.ID {
		t.Errorf("expected distinct ids, both %s", first.ID)
	}
	if first.Status != StatusOpen || first.Priority != PriorityMedium {
		t.Errorf("expected defaults applied, got %s/%s", first.Status, first.Priority)
	}
}

func TestGetByIDMissing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetByID(context.Background(), "99999")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing ticket, got %+v", got)
	}

	// Non-numeric ids are treated as absent, not as errors.
	got, err = s.GetByID(context.Background(), "abc")
	if err != nil || got != nil {
		t.Errorf("expected nil,nil for non-numeric id, got %+v, %v", got, err)
	}
}

func TestListActiveScopedToUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mine, _ := s.Create(ctx, Ticket{UserID: "u1", Description: "mine"})
	s.Create(ctx, Ticket{UserID: "u2", Description: "theirs"})
	closed, _ := s.Create(ctx, Ticket{UserID: "u1", Description: "done"})
	if err := s.Close(ctx, closed.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}

	active, err := s.ListActive(ctx, "u1")
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 1 || active[0].ID != mine.ID {
		t.Errorf("expected only u1's open ticket, got %+v", active)
	}

	all, err := s.ListActive(ctx, "")
	if err != nil {
		t.Fatalf("ListActive global: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 active tickets globally, got %d", len(all))
	}

	completed, err := s.ListCompleted(ctx, "u1")
	if err != nil {
		t.Fatalf("ListCompleted: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != closed.ID {
		t.Errorf("expected u1's closed ticket, got %+v", completed)
	}
	if completed[0].CompletedAt == nil {
		t.Error("expected completed_at stamped on close")
	}
}

func TestSearchFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Create(ctx, Ticket{UserID: "u1", Description: "a", EmergencyType: "hr-emergency", Priority: PriorityHigh})
	s.Create(ctx, Ticket{UserID: "u1", Description: "b", EmergencyType: "financial-emergency"})
	s.Create(ctx, Ticket{UserID: "u2", Description: "c", EmergencyType: "hr-emergency"})

	got, err := s.Search(ctx, map[string]string{"emergencyType": "hr-emergency", "userId": "u1"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].Description != "a" {
		t.Errorf("expected one hr-emergency ticket for u1, got %+v", got)
	}

	got, err = s.Search(ctx, map[string]string{"priority": "high"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected one high-priority ticket, got %d", len(got))
	}
}

func TestMutations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tk, _ := s.Create(ctx, Ticket{UserID: "u1", Description: "x"})

	if err := s.UpdateStatus(ctx, tk.ID, StatusInProgress); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := s.Assign(ctx, tk.ID, "admin1"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := s.UpdatePriority(ctx, tk.ID, PriorityCritical); err != nil {
		t.Fatalf("UpdatePriority: %v", err)
	}
	if err := s.AddComment(ctx, tk.ID, "u1", "still waiting"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	got, _ := s.GetByID(ctx, tk.ID)
	if got.Status != StatusInProgress || got.Assignee != "admin1" || got.Priority != PriorityCritical {
		t.Errorf("mutations not applied: %+v", got)
	}

	cs, err := s.Comments(ctx, tk.ID)
	if err != nil {
		t.Fatalf("Comments: %v", err)
	}
	if len(cs) != 1 || cs[0].Body != "still waiting" {
		t.Errorf("expected one comment, got %+v", cs)
	}

	if err := s.UpdateStatus(ctx, "424242", StatusClosed); err == nil {
		t.Error("expected error updating missing ticket")
	}
	if err := s.AddComment(ctx, "424242", "u1", "hi"); err == nil {
		t.Error("expected error commenting on missing ticket")
	}
}

func TestExportCSV(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Create(ctx, Ticket{UserID: "u1", Description: "needs, escaping"})

	csv, err := s.ExportCSV(ctx, map[string]string{})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,user_id,status") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"needs, escaping"`) {
		t.Errorf("expected quoted description, got: %s", lines[1])
	}
}

func TestStatistics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Create(ctx, Ticket{UserID: "u1", EmergencyType: "hr-emergency", DurationMinutes: 30})
	tk, _ := s.Create(ctx, Ticket{UserID: "u2", EmergencyType: "hr-emergency", DurationMinutes: 90})
	s.Close(ctx, tk.ID)

	stats, err := s.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.Total != 2 || stats.Active != 1 || stats.Completed != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.ByEmergencyType["hr-emergency"] != 2 {
		t.Errorf("expected 2 hr-emergency tickets, got %d", stats.ByEmergencyType["hr-emergency"])
	}
	if stats.AvgDuration != 60 {
		t.Errorf("expected avg duration 60, got %v", stats.AvgDuration)
	}
}

func TestRoutes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	tk, _ := s.Create(ctx, Ticket{UserID: "u1", Description: "routed"})

	r := chi.NewRouter()
	RegisterRoutes(r, s)

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/api/tickets/" + tk.ID)
	if err != nil {
		t.Fatalf("GET ticket: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	resp, err = srv.Client().Get(srv.URL + "/api/tickets/999999")
	if err != nil {
		t.Fatalf("GET missing ticket: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != 404 {
		t.Errorf("expected 404 for missing ticket, got %d", resp.StatusCode)
	}
}
