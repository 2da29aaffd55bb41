package nlp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/tickets"
)

// DispatchRequest carries everything a handler needs: the classified
// intent, the validated entities, the caller, and the original query text.
type DispatchRequest struct {
	Intent   Intent
	Entities *ExtractedEntities
	UserID   string
	IsAdmin  bool
	Query    string
}

type handlerFunc func(ctx context.Context, req DispatchRequest) *QueryResult

// Dispatcher routes recognized intents to ticket operations. Its handler
// table covers every recognizable intent; completeness is asserted by the
// package tests.
type Dispatcher struct {
	tickets  TicketService
	users    UserService
	handlers map[IntentType]handlerFunc
}

// NewDispatcher creates a dispatcher over the given ticket and user
// services.
func NewDispatcher(ticketSvc TicketService, userSvc UserService) *Dispatcher {
	d := &Dispatcher{tickets: ticketSvc, users: userSvc}
	d.handlers = map[IntentType]handlerFunc{
		IntentShowActiveTickets:    d.showActive,
		IntentShowCompletedTickets: d.showCompleted,
		IntentShowAllTickets:       d.showAll,
		IntentShowTicketDetails:    d.showDetails,
		IntentSearchTickets:        d.search,
		IntentCreateTicket:         d.create,
		IntentCloseTicket:          d.closeTicket,
		IntentUpdateStatus:         d.updateStatus,
		IntentAssignTicket:         d.assign,
		IntentAddComment:           d.addComment,
		IntentUpdatePriority:       d.updatePriority,
		IntentSystemStats:          d.stats,
		IntentExportTickets:        d.export,
		IntentUserManagement:       d.userManagement,
		IntentHelp:                 d.help,
		IntentGreeting:             d.greeting,
	}
	return d
}

// mutatingIntents require an ownership check before dispatch, except for
// creation (the ticket id is server-generated and cannot pre-exist).
var mutatingIntents = map[IntentType]bool{
	IntentCloseTicket:    true,
	IntentUpdateStatus:   true,
	IntentAssignTicket:   true,
	IntentAddComment:     true,
	IntentUpdatePriority: true,
}

// Dispatch authorizes and executes the request. Every failure, including
// collaborator errors, is returned as an error-typed QueryResult; nothing
// propagates as a fault.
func (d *Dispatcher) Dispatch(ctx context.Context, req DispatchRequest) *QueryResult {
	h, ok := d.handlers[req.Intent.Type]
	if !ok {
		return errorResult(ErrQueryNotUnderstood, "")
	}

	if mutatingIntents[req.Intent.Type] {
		if denied := d.authorizeMutation(ctx, req); denied != nil {
			return denied
		}
	}

	return h(ctx, req)
}

// authorizeMutation enforces the ownership rules: admins bypass all checks,
// assignment is admin-only, and every other mutation requires the caller to
// own the referenced ticket.
func (d *Dispatcher) authorizeMutation(ctx context.Context, req DispatchRequest) *QueryResult {
	if req.IsAdmin {
		return nil
	}
	if req.Intent.Type == IntentAssignTicket {
		return errorResult(ErrInsufficientPermissions, "only administrators may assign tickets")
	}

	ent, ok := req.Entities.Best(EntityTicketID)
	if !ok {
		return errorResult(ErrInvalidParameters, "no ticket number found in the request")
	}
	t, err := d.tickets.GetByID(ctx, ent.Normalized)
	if err != nil {
		return errorResult(ErrSystemError, err.Error())
	}
	if t == nil {
		return errorResult(ErrDataNotFound, fmt.Sprintf("ticket %s does not exist", ent.Normalized))
	}
	if t.UserID != req.UserID {
		return errorResult(ErrInsufficientPermissions, fmt.Sprintf("ticket %s belongs to another user", t.ID))
	}
	return nil
}

// buildFilters flattens the extracted entities into a filter map, one key
// per recognized type. When a type matched more than once, the
// highest-confidence entity wins. Enumerable categories (status, priority)
// are lowercased.
func buildFilters(entities *ExtractedEntities) map[string]string {
	filters := map[string]string{}

	if e, ok := entities.Best(EntityTicketID); ok {
		filters["ticketId"] = e.Normalized
	}
	if e, ok := entities.Best(EntityStatus); ok {
		filters["status"] = strings.ToLower(e.Normalized)
	}
	if e, ok := entities.Best(EntityAssignee); ok {
		filters["assignee"] = assigneeName(e.Normalized)
	}
	if e, ok := entities.Best(EntityPriority); ok {
		filters["priority"] = strings.ToLower(priorityValue(e.Normalized))
	}
	if e, ok := entities.Best(EntityDate); ok {
		filters["date"] = e.Normalized
	}
	if e, ok := entities.Best(EntityTime); ok {
		filters["time"] = e.Normalized
	}
	if e, ok := entities.Best(EntityDuration); ok {
		filters["duration"] = e.Normalized
	}
	if e, ok := entities.Best(EntityEmergencyType); ok {
		if canonical, ok := CanonicalEmergencyType(e.Normalized); ok {
			filters["emergencyType"] = canonical
		} else {
			filters["emergencyType"] = e.Normalized
		}
	}
	if e, ok := entities.Best(EntityNumber); ok {
		filters["number"] = e.Normalized
	}
	if e, ok := entities.Best(EntityLocation); ok {
		filters["location"] = e.Normalized
	}
	return filters
}

// assigneeName strips the "assign(ed) to" trigger from a matched span.
func assigneeName(v string) string {
	if i := strings.LastIndex(v, " to "); i >= 0 {
		return v[i+len(" to "):]
	}
	return strings.TrimPrefix(v, "to ")
}

// priorityValue maps matched priority spans onto the store's enum.
func priorityValue(v string) string {
	switch {
	case v == "urgent" || v == "critical":
		return "critical"
	case strings.HasSuffix(v, " priority"):
		return strings.TrimSuffix(v, " priority")
	default:
		return v
	}
}

func (d *Dispatcher) showActive(ctx context.Context, req DispatchRequest) *QueryResult {
	scope := req.UserID
	if req.IsAdmin {
		scope = ""
	}
	ts, err := d.tickets.ListActive(ctx, scope)
	if err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	return ticketList(ts, req)
}

func (d *Dispatcher) showCompleted(ctx context.Context, req DispatchRequest) *QueryResult {
	scope := req.UserID
	if req.IsAdmin {
		scope = ""
	}
	ts, err := d.tickets.ListCompleted(ctx, scope)
	if err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	return ticketList(ts, req)
}

func (d *Dispatcher) showAll(ctx context.Context, req DispatchRequest) *QueryResult {
	ts, err := d.tickets.ListAll(ctx)
	if err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	return ticketList(ts, req)
}

func ticketList(ts []tickets.Ticket, req DispatchRequest) *QueryResult {
	return &QueryResult{
		Type:    ResultTicketList,
		Success: true,
		Data:    ts,
		Count:   len(ts),
		Metadata: map[string]any{
			"filters": buildFilters(req.Entities),
		},
	}
}

func (d *Dispatcher) showDetails(ctx context.Context, req DispatchRequest) *QueryResult {
	ent, ok := req.Entities.Best(EntityTicketID)
	if !ok {
		return errorResult(ErrInvalidParameters, "no ticket number found in the request")
	}
	t, err := d.tickets.GetByID(ctx, ent.Normalized)
	if err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	if t == nil {
		return errorResult(ErrDataNotFound, fmt.Sprintf("ticket %s does not exist", ent.Normalized))
	}
	return &QueryResult{Type: ResultTicketDetails, Success: true, Data: t, Count: 1}
}

func (d *Dispatcher) search(ctx context.Context, req DispatchRequest) *QueryResult {
	filters := buildFilters(req.Entities)
	if !req.IsAdmin {
		filters["userId"] = req.UserID
	}
	ts, err := d.tickets.Search(ctx, filters)
	if err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	return &QueryResult{
		Type:     ResultTicketList,
		Success:  true,
		Data:     ts,
		Count:    len(ts),
		Metadata: map[string]any{"filters": filters},
	}
}

func (d *Dispatcher) create(ctx context.Context, req DispatchRequest) *QueryResult {
	t := tickets.Ticket{UserID: req.UserID}

	if e, ok := req.Entities.Best(EntityDescription); ok {
		t.Description = e.Normalized
	}
	if e, ok := req.Entities.Best(EntityEmergencyType); ok {
		if canonical, ok := CanonicalEmergencyType(e.Normalized); ok {
			t.EmergencyType = canonical
		}
	}
	if e, ok := req.Entities.Best(EntityDuration); ok {
		if n, err := strconv.Atoi(e.Normalized); err == nil {
			t.DurationMinutes = n
		}
	}
	if e, ok := req.Entities.Best(EntityPhone); ok {
		t.ContactNumber = e.Normalized
	}
	if e, ok := req.Entities.Best(EntityLocation); ok {
		t.Location = e.Normalized
	}
	if e, ok := req.Entities.Best(EntityPriority); ok {
		t.Priority = tickets.Priority(priorityValue(e.Normalized))
	}

	created, err := d.tickets.Create(ctx, t)
	if err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	return &QueryResult{
		Type:     ResultOperationResult,
		Success:  true,
		Message:  fmt.Sprintf("Created ticket #%s.", created.ID),
		Data:     created,
		Count:    1,
		Metadata: map[string]any{"ticketId": created.ID, "success": true},
	}
}

// requireTicketID resolves the ticket id entity every targeted mutation needs.
func requireTicketID(req DispatchRequest) (string, *QueryResult) {
	ent, ok := req.Entities.Best(EntityTicketID)
	if !ok {
		return "", errorResult(ErrInvalidParameters, "no ticket number found in the request")
	}
	return ent.Normalized, nil
}

func (d *Dispatcher) closeTicket(ctx context.Context, req DispatchRequest) *QueryResult {
	id, denied := requireTicketID(req)
	if denied != nil {
		return denied
	}
	if err := d.tickets.Close(ctx, id); err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	return operationOK(fmt.Sprintf("Closed ticket #%s.", id), id)
}

func (d *Dispatcher) updateStatus(ctx context.Context, req DispatchRequest) *QueryResult {
	id, denied := requireTicketID(req)
	if denied != nil {
		return denied
	}
	ent, ok := req.Entities.Best(EntityStatus)
	if !ok {
		return errorResult(ErrInvalidParameters, "no status value found in the request")
	}
	status := tickets.Status(strings.ToLower(ent.Normalized))
	if err := d.tickets.UpdateStatus(ctx, id, status); err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	return operationOK(fmt.Sprintf("Ticket #%s is now %s.", id, status), id)
}

func (d *Dispatcher) assign(ctx context.Context, req DispatchRequest) *QueryResult {
	id, denied := requireTicketID(req)
	if denied != nil {
		return denied
	}
	assignee := ""
	if e, ok := req.Entities.Best(EntityAssignee); ok {
		assignee = assigneeName(e.Normalized)
	} else if e, ok := req.Entities.Best(EntityUserName); ok {
		assignee = strings.TrimPrefix(e.Normalized, "user ")
	}
	if assignee == "" {
		return errorResult(ErrInvalidParameters, "no assignee found in the request")
	}
	if err := d.tickets.Assign(ctx, id, assignee); err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	return operationOK(fmt.Sprintf("Assigned ticket #%s to %s.", id, assignee), id)
}

func (d *Dispatcher) addComment(ctx context.Context, req DispatchRequest) *QueryResult {
	id, denied := requireTicketID(req)
	if denied != nil {
		return denied
	}
	body := commentBody(NormalizeQuery(req.Query))
	if body == "" {
		return errorResult(ErrInvalidParameters, "no comment text found in the request")
	}
	if err := d.tickets.AddComment(ctx, id, req.UserID, body); err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	return operationOK(fmt.Sprintf("Added a comment to ticket #%s.", id), id)
}

// commentBody strips the comment trigger and ticket reference from the
// normalized query, leaving the comment text itself.
func commentBody(norm string) string {
	for _, trigger := range []string{"add a comment", "add comment", "comment on", "add a note", "add note"} {
		if i := strings.Index(norm, trigger); i >= 0 {
			norm = norm[i+len(trigger):]
			break
		}
	}
	norm = reTicketHash.ReplaceAllString(norm, "")
	norm = reTicketWord.ReplaceAllString(norm, "")
	norm = strings.TrimSpace(norm)
	for _, lead := range []string{"to ", "on ", "that ", "saying "} {
		if strings.HasPrefix(norm, lead) {
			norm = strings.TrimSpace(strings.TrimPrefix(norm, lead))
		}
	}
	return norm
}

func (d *Dispatcher) updatePriority(ctx context.Context, req DispatchRequest) *QueryResult {
	id, denied := requireTicketID(req)
	if denied != nil {
		return denied
	}
	ent, ok := req.Entities.Best(EntityPriority)
	if !ok {
		return errorResult(ErrInvalidParameters, "no priority value found in the request")
	}
	p := tickets.Priority(strings.ToLower(priorityValue(ent.Normalized)))
	if err := d.tickets.UpdatePriority(ctx, id, p); err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	return operationOK(fmt.Sprintf("Ticket #%s priority set to %s.", id, p), id)
}

func (d *Dispatcher) stats(ctx context.Context, req DispatchRequest) *QueryResult {
	s, err := d.tickets.Statistics(ctx)
	if err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	data := map[string]any{
		"total tickets":        s.Total,
		"active tickets":       s.Active,
		"completed tickets":    s.Completed,
		"avg duration minutes": s.AvgDuration,
	}
	for k, v := range s.ByEmergencyType {
		data[k] = v
	}
	return &QueryResult{Type: ResultStatistics, Success: true, Data: data, Count: s.Total}
}

func (d *Dispatcher) export(ctx context.Context, req DispatchRequest) *QueryResult {
	filters := buildFilters(req.Entities)
	csv, err := d.tickets.ExportCSV(ctx, filters)
	if err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	rows := strings.Count(csv, "\n") - 1
	if rows < 0 {
		rows = 0
	}
	return &QueryResult{
		Type:     ResultOperationResult,
		Success:  true,
		Message:  fmt.Sprintf("Exported %d tickets as CSV.", rows),
		Data:     csv,
		Count:    rows,
		Metadata: map[string]any{"success": true, "format": "csv"},
	}
}

func (d *Dispatcher) userManagement(ctx context.Context, req DispatchRequest) *QueryResult {
	us, err := d.users.List(ctx)
	if err != nil {
		return errorResult(ErrOperationFailed, err.Error())
	}
	if len(us) == 0 {
		return &QueryResult{Type: ResultInformation, Success: true, Message: "No users registered."}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d user(s):\n", len(us))
	for _, u := range us {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", u.ID, u.Name, u.Role)
	}
	return &QueryResult{
		Type:    ResultInformation,
		Success: true,
		Message: strings.TrimRight(b.String(), "\n"),
		Data:    us,
		Count:   len(us),
	}
}

func (d *Dispatcher) help(ctx context.Context, req DispatchRequest) *QueryResult {
	return &QueryResult{Type: ResultHelp, Success: true, Message: helpText(req.IsAdmin)}
}

func (d *Dispatcher) greeting(ctx context.Context, req DispatchRequest) *QueryResult {
	return &QueryResult{
		Type:    ResultInformation,
		Success: true,
		Message: "Hello! I can help you manage emergency access tickets. Ask for help to see what I can do.",
	}
}

func helpText(isAdmin bool) string {
	var b strings.Builder
	b.WriteString("Here's what you can ask me:\n")
	b.WriteString("- show active tickets\n")
	b.WriteString("- show completed tickets\n")
	b.WriteString("- create ticket for <reason>, duration <minutes> minutes, contact <number>\n")
	b.WriteString("- #<id> or show ticket <id> for details\n")
	b.WriteString("- close ticket <id>\n")
	b.WriteString("- add comment to #<id> <text>\n")
	if isAdmin {
		b.WriteString("- all tickets / system stats / export tickets\n")
		b.WriteString("- assign ticket <id> to <user>\n")
	}
	return b.String()
}

func operationOK(message, ticketID string) *QueryResult {
	return &QueryResult{
		Type:     ResultOperationResult,
		Success:  true,
		Message:  message,
		Count:    1,
		Metadata: map[string]any{"ticketId": ticketID, "success": true},
	}
}
