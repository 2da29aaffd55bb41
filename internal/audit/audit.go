package audit

import "time"

// Action describes what was done to a ticket through the query pipeline.
type Action string

const (
	ActionTicketCreated   Action = "ticket_created"
	ActionTicketClosed    Action = "ticket_closed"
	ActionStatusUpdated   Action = "status_updated"
	ActionTicketAssigned  Action = "ticket_assigned"
	ActionCommentAdded    Action = "comment_added"
	ActionPriorityUpdated Action = "priority_updated"
	ActionQueryDenied     Action = "query_denied"
)

// Entry is a single audit trail record. Every mutation that goes through
// the natural-language pipeline leaves one, whether it succeeded or not.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actor_id"`
	Action    Action    `json:"action"`
	TicketID  string    `json:"ticket_id,omitempty"`
	Query     string    `json:"query,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Success   bool      `json:"success"`
}
