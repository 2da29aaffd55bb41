package tickets

import "time"

// Status is the lifecycle state of a ticket.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in progress"
	StatusClosed     Status = "closed"
)

// Priority ranks how urgently a ticket needs attention.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// EmergencyTypes is the closed set of emergency categories a break-glass
// ticket may be created under.
var EmergencyTypes = []string{
	"hr-emergency",
	"financial-emergency",
	"management-emergency",
	"logistics-emergency",
}

// Ticket is a time-boxed emergency access request. IDs are generated by the
// database as sequential integers and exposed as digit strings (matching the
// "#45821" syntax users type in queries).
type Ticket struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Description     string     `json:"description"`
	Status          Status     `json:"status"`
	EmergencyType   string     `json:"emergency_type,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	ContactNumber   string     `json:"contact_number,omitempty"`
	Priority        Priority   `json:"priority"`
	Assignee        string     `json:"assignee,omitempty"`
	Location        string     `json:"location,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// Comment is a note attached to a ticket.
type Comment struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Statistics summarises the ticket population for admin reporting.
type Statistics struct {
	Total           int            `json:"total"`
	Active          int            `json:"active"`
	Completed       int            `json:"completed"`
	ByEmergencyType map[string]int `json:"by_emergency_type"`
	ByPriority      map[string]int `json:"by_priority"`
	AvgDuration     float64        `json:"avg_duration_minutes"`
}
