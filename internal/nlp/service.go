package nlp

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/audit"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/users"
)

// ServiceConfig carries the tunables of the query pipeline. Zero values fall
// back to the defaults.
type ServiceConfig struct {
	ConfidenceThreshold float64
	Preferences         Preferences
}

// Service runs the full query pipeline: classification, extraction,
// validation, dispatch, and rendering.
type Service struct {
	registry   *Registry
	extractor  *Extractor
	classifier *Classifier
	validator  *Validator
	dispatcher *Dispatcher
	responder  *Responder
	users      UserService
	auditor    AuditLogger
	prefs      Preferences
}

// NewService wires the pipeline stages over the given collaborators. The
// auditor may be nil, which disables audit logging.
func NewService(ticketSvc TicketService, userSvc UserService, auditor AuditLogger, cfg ServiceConfig) *Service {
	registry := NewRegistry()
	prefs := cfg.Preferences
	if prefs.maxLength == 0 {
		prefs = NewPreferencesBuilder().Build()
	}
	return &Service{
		registry:   registry,
		extractor:  NewExtractor(registry, cfg.ConfidenceThreshold),
		classifier: NewClassifier(registry, cfg.ConfidenceThreshold),
		validator:  NewValidator(ticketSvc),
		dispatcher: NewDispatcher(ticketSvc, userSvc),
		responder:  NewResponder(),
		users:      userSvc,
		auditor:    auditor,
		prefs:      prefs,
	}
}

// auditActions maps mutating intents onto the audit trail vocabulary.
var auditActions = map[IntentType]audit.Action{
	IntentCreateTicket:   audit.ActionTicketCreated,
	IntentCloseTicket:    audit.ActionTicketClosed,
	IntentUpdateStatus:   audit.ActionStatusUpdated,
	IntentAssignTicket:   audit.ActionTicketAssigned,
	IntentAddComment:     audit.ActionCommentAdded,
	IntentUpdatePriority: audit.ActionPriorityUpdated,
}

// ProcessQuery resolves the caller's role and access, then runs the query
// through the pipeline. Unauthorized users are refused before any stage
// runs.
func (s *Service) ProcessQuery(ctx context.Context, userID, query string) *NLPResponse {
	ok, err := s.users.IsAuthorized(ctx, userID)
	if err != nil {
		log.Printf("nlp: authorization lookup for %s: %v", userID, err)
		return failedResponse(errorMessages[ErrSystemError])
	}
	if !ok {
		return failedResponse("You are not authorized to use the query interface.")
	}

	role, err := s.users.RoleForUser(ctx, userID)
	if err != nil {
		log.Printf("nlp: role lookup for %s: %v", userID, err)
		return failedResponse(errorMessages[ErrSystemError])
	}
	return s.ProcessQueryAs(ctx, userID, query, role == users.RoleAdmin)
}

// ProcessAdminQuery runs the pipeline with admin privileges after verifying
// the caller actually holds the admin role.
func (s *Service) ProcessAdminQuery(ctx context.Context, userID, query string) *NLPResponse {
	isAdmin, err := s.users.IsAdmin(ctx, userID)
	if err != nil {
		log.Printf("nlp: admin lookup for %s: %v", userID, err)
		return failedResponse(errorMessages[ErrSystemError])
	}
	if !isAdmin {
		return failedResponse("Admin access is required for this endpoint.")
	}
	return s.ProcessQueryAs(ctx, userID, query, true)
}

// ProcessQueryAs runs the pipeline with an explicit privilege level. It
// never panics; pipeline faults degrade into a system-error response.
func (s *Service) ProcessQueryAs(ctx context.Context, userID, query string, isAdmin bool) (resp *NLPResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("nlp: pipeline panic for query %q: %v", query, r)
			resp = failedResponse(errorMessages[ErrSystemError])
		}
	}()

	if strings.TrimSpace(query) == "" {
		return failedResponse("Please enter a query.")
	}

	intent := s.classifier.Recognize(query)
	result := s.run(ctx, userID, query, isAdmin, intent)

	s.record(ctx, userID, query, intent, result)

	message := s.responder.Render(result, intent.Type, query, s.prefs)
	return &NLPResponse{
		Message:   message,
		Success:   result.Success,
		Data:      result.Data,
		Timestamp: time.Now().UTC(),
	}
}

// run executes the staged pipeline for a classified intent and returns the
// structured result.
func (s *Service) run(ctx context.Context, userID, query string, isAdmin bool, intent Intent) *QueryResult {
	role := users.RoleUser
	if isAdmin {
		role = users.RoleAdmin
	}

	if !intent.Recognized() {
		return errorResult(ErrQueryNotUnderstood, "")
	}
	if !AllowedForRole(intent.Type, role) {
		return errorResult(ErrInsufficientPermissions, fmt.Sprintf("%s requires admin access", intent.Type))
	}

	entities := s.extractor.Extract(query)

	// Ticket creation carries its own defaults; validating the fragments
	// of a ticket that does not exist yet only produces noise.
	var warnings []string
	if intent.Type != IntentCreateTicket {
		validation := s.validator.Validate(ctx, entities)
		if !validation.Valid {
			res := errorResult(ErrInvalidParameters, strings.Join(validation.Errors, "; "))
			res.Warnings = validation.Warnings
			return res
		}
		warnings = validation.Warnings
	}

	result := s.dispatcher.Dispatch(ctx, DispatchRequest{
		Intent:   intent,
		Entities: entities,
		UserID:   userID,
		IsAdmin:  isAdmin,
		Query:    query,
	})
	result.Warnings = append(result.Warnings, warnings...)
	return result
}

// record writes an audit entry for mutations and refused queries. Auditing
// is best-effort and never blocks the response.
func (s *Service) record(ctx context.Context, userID, query string, intent Intent, result *QueryResult) {
	if s.auditor == nil {
		return
	}

	var action audit.Action
	switch {
	case result.Type == ResultError && result.Metadata["errorType"] == string(ErrInsufficientPermissions):
		action = audit.ActionQueryDenied
	case mutatingIntents[intent.Type] || intent.Type == IntentCreateTicket:
		action = auditActions[intent.Type]
	default:
		return
	}
	if action == "" {
		return
	}

	ticketID, _ := result.Metadata["ticketId"].(string)
	entry := audit.Entry{
		ActorID:  userID,
		Action:   action,
		TicketID: ticketID,
		Query:    query,
		Summary:  result.Message,
		Success:  result.Success,
	}
	if err := s.auditor.Log(ctx, entry); err != nil {
		log.Printf("nlp: audit log: %v", err)
	}
}

// Capabilities describes what the caller can do with the query interface.
func (s *Service) Capabilities(ctx context.Context, userID string) map[string]any {
	isAdmin, err := s.users.IsAdmin(ctx, userID)
	if err != nil {
		log.Printf("nlp: admin lookup for %s: %v", userID, err)
		isAdmin = false
	}

	level := "user"
	if isAdmin {
		level = "admin"
	}

	intents := make([]IntentType, 0, len(IntentTypes))
	for _, t := range IntentTypes {
		if isAdmin || !adminOnlyIntents[t] {
			intents = append(intents, t)
		}
	}

	return map[string]any{
		"available":         true,
		"adminAccess":       isAdmin,
		"accessLevel":       level,
		"supportedIntents":  intents,
		"supportedEntities": EntityTypes,
	}
}

// Suggestions returns example queries for discoverability, widened for
// admins.
func (s *Service) Suggestions(isAdmin bool) map[string]any {
	queries := []string{
		"show my active tickets",
		"show my completed tickets",
		"show details of ticket #42",
		"create ticket for hr emergency duration 60 minutes",
		"close ticket #42",
		"help",
	}
	if isAdmin {
		queries = append(queries,
			"show all tickets",
			"system statistics",
			"export tickets",
			"assign ticket #42 to carol",
		)
	}

	return map[string]any{
		"suggestedQueries": queries,
		"examples": map[string]string{
			"list":   "show my active tickets",
			"detail": "show details of ticket #42",
			"create": "create ticket for hr emergency duration 60 minutes",
		},
		"quickActions": []string{"active tickets", "completed tickets", "help"},
	}
}

// Healthy reports whether every pipeline stage is wired and responsive.
func (s *Service) Healthy() bool {
	if s.registry == nil || s.extractor == nil || s.classifier == nil ||
		s.validator == nil || s.dispatcher == nil || s.responder == nil {
		return false
	}
	if s.extractor.Extract("health probe") == nil {
		return false
	}
	return s.classifier.Recognize("help").Type == IntentHelp
}
