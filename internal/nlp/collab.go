package nlp

import (
	"context"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/audit"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/tickets"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/users"
)

// TicketService is the pipeline's view of the ticket store. All calls are
// synchronous; GetByID returns (nil, nil) for unknown ids.
type TicketService interface {
	GetByID(ctx context.Context, id string) (*tickets.Ticket, error)
	ListActive(ctx context.Context, userID string) ([]tickets.Ticket, error)
	ListCompleted(ctx context.Context, userID string) ([]tickets.Ticket, error)
	ListAll(ctx context.Context) ([]tickets.Ticket, error)
	Search(ctx context.Context, filters map[string]string) ([]tickets.Ticket, error)
	ExportCSV(ctx context.Context, filters map[string]string) (string, error)
	Create(ctx context.Context, t tickets.Ticket) (*tickets.Ticket, error)
	Close(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status tickets.Status) error
	Assign(ctx context.Context, id, assignee string) error
	AddComment(ctx context.Context, ticketID, authorID, body string) error
	UpdatePriority(ctx context.Context, id string, priority tickets.Priority) error
	Statistics(ctx context.Context) (*tickets.Statistics, error)
}

// UserService resolves caller identity to roles and access flags, and
// lists registered users for the admin management intent.
type UserService interface {
	RoleForUser(ctx context.Context, id string) (users.Role, error)
	IsAuthorized(ctx context.Context, id string) (bool, error)
	IsAdmin(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]users.User, error)
}

// AuditLogger records pipeline mutations. A nil logger disables auditing.
type AuditLogger interface {
	Log(ctx context.Context, entry audit.Entry) error
}
