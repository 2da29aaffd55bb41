package tickets

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/db"
)

// Store manages persistence of break-glass tickets.
type Store struct {
	db *db.DB
}

// NewStore creates a new ticket store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

const ticketColumns = `id, user_id, description, status, emergency_type, duration_minutes,
	 contact_number, priority, assignee, location, created_at, updated_at, completed_at`

func scanTicket(row interface{ Scan(...any) error }) (*Ticket, error) {
	var t Ticket
	var id int64
	var completedAt sql.NullTime
	err := row.Scan(&id, &t.UserID, &t.Description, &t.Status, &t.EmergencyType,
		&t.DurationMinutes, &t.ContactNumber, &t.Priority, &t.Assignee, &t.Location,
		&t.CreatedAt, &t.UpdatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	t.ID = strconv.FormatInt(id, 10)
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	return &t, nil
}

// Create inserts a new ticket. The ID is generated by the database and
// returned on the stored copy; any caller-supplied ID is ignored.
func (s *Store) Create(ctx context.Context, t Ticket) (*Ticket, error) {
	if t.Status == "" {
		t.Status = StatusOpen
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.DurationMinutes == 0 {
		t.DurationMinutes = 60
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tickets (user_id, description, status, emergency_type, duration_minutes,
		 contact_number, priority, assignee, location, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Description, t.Status, t.EmergencyType, t.DurationMinutes,
		t.ContactNumber, t.Priority, t.Assignee, t.Location, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting ticket: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading ticket id: %w", err)
	}
	t.ID = strconv.FormatInt(id, 10)
	return &t, nil
}

// GetByID retrieves a ticket by its digit-string ID. Returns nil (no error)
// when the ticket does not exist.
func (s *Store) GetByID(ctx context.Context, id string) (*Ticket, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	t, err := scanTicket(s.db.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, n))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting ticket: %w", err)
	}
	return t, nil
}

// ListActive returns open and in-progress tickets. An empty userID lists
// across all users (admin scope).
func (s *Store) ListActive(ctx context.Context, userID string) ([]Ticket, error) {
	q := `SELECT ` + ticketColumns + ` FROM tickets WHERE status != 'closed'`
	args := []any{}
	if userID != "" {
		q += " AND user_id = ?"
		args = append(args, userID)
	}
	q += " ORDER BY created_at DESC"
	return s.list(ctx, q, args...)
}

// ListCompleted returns closed tickets. An empty userID lists across all
// users (admin scope).
func (s *Store) ListCompleted(ctx context.Context, userID string) ([]Ticket, error) {
	q := `SELECT ` + ticketColumns + ` FROM tickets WHERE status = 'closed'`
	args := []any{}
	if userID != "" {
		q += " AND user_id = ?"
		args = append(args, userID)
	}
	q += " ORDER BY completed_at DESC"
	return s.list(ctx, q, args...)
}

// ListAll returns every ticket regardless of status or owner.
func (s *Store) ListAll(ctx context.Context) ([]Ticket, error) {
	return s.list(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY created_at DESC`)
}

// Search returns tickets matching the given filter map. Recognized keys:
// ticketId, status, assignee, priority, emergencyType, location, userId,
// date (created on that ISO day), duration. Unrecognized keys are ignored.
func (s *Store) Search(ctx context.Context, filters map[string]string) ([]Ticket, error) {
	q := `SELECT ` + ticketColumns + ` FROM tickets WHERE 1=1`
	args := []any{}

	if v := filters["ticketId"]; v != "" {
		q += " AND id = ?"
		args = append(args, v)
	}
	if v := filters["status"]; v != "" {
		q += " AND status = ?"
		args = append(args, v)
	}
	if v := filters["assignee"]; v != "" {
		q += " AND assignee = ?"
		args = append(args, v)
	}
	if v := filters["priority"]; v != "" {
		q += " AND priority = ?"
		args = append(args, v)
	}
	if v := filters["emergencyType"]; v != "" {
		q += " AND emergency_type = ?"
		args = append(args, v)
	}
	if v := filters["location"]; v != "" {
		q += " AND location LIKE ?"
		args = append(args, "%"+v+"%")
	}
	if v := filters["userId"]; v != "" {
		q += " AND user_id = ?"
		args = append(args, v)
	}
	if v := filters["date"]; v != "" {
		q += " AND date(created_at) = ?"
		args = append(args, v)
	}
	if v := filters["duration"]; v != "" {
		q += " AND duration_minutes = ?"
		args = append(args, v)
	}

	q += " ORDER BY created_at DESC"
	return s.list(ctx, q, args...)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Ticket, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	defer rows.Close()

	var out []Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ticket: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// UpdateStatus changes the status of a ticket. Closing via this path also
// stamps completed_at.
func (s *Store) UpdateStatus(ctx context.Context, id string, status Status) error {
	now := time.Now().UTC()
	var res sql.Result
	var err error
	if status == StatusClosed {
		res, err = s.db.ExecContext(ctx,
			`UPDATE tickets SET status = ?, updated_at = ?, completed_at = ? WHERE id = ?`,
			status, now, now, id)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE tickets SET status = ?, updated_at = ? WHERE id = ?`,
			status, now, id)
	}
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("ticket not found: %s", id)
	}
	return nil
}

// Close marks a ticket as closed.
func (s *Store) Close(ctx context.Context, id string) error {
	return s.UpdateStatus(ctx, id, StatusClosed)
}

// Assign sets the assignee of a ticket.
func (s *Store) Assign(ctx context.Context, id, assignee string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tickets SET assignee = ?, updated_at = ? WHERE id = ?`,
		assignee, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("assigning ticket: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("ticket not found: %s", id)
	}
	return nil
}

// UpdatePriority changes the priority of a ticket.
func (s *Store) UpdatePriority(ctx context.Context, id string, priority Priority) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tickets SET priority = ?, updated_at = ? WHERE id = ?`,
		priority, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating priority: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("ticket not found: %s", id)
	}
	return nil
}

// AddComment attaches a comment to a ticket.
func (s *Store) AddComment(ctx context.Context, ticketID, authorID, body string) error {
	t, err := s.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("ticket not found: %s", ticketID)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO ticket_comments (id, ticket_id, author_id, body) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), t.ID, authorID, body)
	if err != nil {
		return fmt.Errorf("adding comment: %w", err)
	}
	return nil
}

// Comments returns the comments on a ticket in chronological order.
func (s *Store) Comments(ctx context.Context, ticketID string) ([]Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ticket_id, author_id, body, created_at
		 FROM ticket_comments WHERE ticket_id = ? ORDER BY created_at ASC`, ticketID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var out []Comment
	for rows.Next() {
		var c Comment
		var tid int64
		if err := rows.Scan(&c.ID, &tid, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		c.TicketID = strconv.FormatInt(tid, 10)
		out = append(out, c)
	}
	return out, rows.Err()
}

// ExportCSV renders the tickets matching the filter map as CSV text.
func (s *Store) ExportCSV(ctx context.Context, filters map[string]string) (string, error) {
	ts, err := s.Search(ctx, filters)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("id,user_id,status,emergency_type,priority,duration_minutes,assignee,description,created_at\n")
	for _, t := range ts {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%d,%s,%s,%s\n",
			t.ID, t.UserID, t.Status, t.EmergencyType, t.Priority, t.DurationMinutes,
			t.Assignee, csvEscape(t.Description), t.CreatedAt.Format(time.RFC3339))
	}
	return b.String(), nil
}

func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// Statistics computes aggregate counts over the whole ticket table.
func (s *Store) Statistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{
		ByEmergencyType: map[string]int{},
		ByPriority:      map[string]int{},
	}

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN status != 'closed' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'closed' THEN 1 ELSE 0 END), 0),
		COALESCE(AVG(duration_minutes), 0)
		FROM tickets`).Scan(&stats.Total, &stats.Active, &stats.Completed, &stats.AvgDuration)
	if err != nil {
		return nil, fmt.Errorf("counting tickets: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT emergency_type, COUNT(*) FROM tickets WHERE emergency_type != '' GROUP BY emergency_type`)
	if err != nil {
		return nil, fmt.Errorf("grouping by emergency type: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			return nil, fmt.Errorf("scanning emergency type count: %w", err)
		}
		stats.ByEmergencyType[k] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := s.db.QueryContext(ctx,
		`SELECT priority, COUNT(*) FROM tickets GROUP BY priority`)
	if err != nil {
		return nil, fmt.Errorf("grouping by priority: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var k string
		var n int
		if err := prows.Scan(&k, &n); err != nil {
			return nil, fmt.Errorf("scanning priority count: %w", err)
		}
		stats.ByPriority[k] = n
	}
	return stats, prows.Err()
}
