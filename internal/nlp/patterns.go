package nlp

import "regexp"

// Pattern is one scored matching rule: exact phrases (substring containment,
// full weight), compiled regexes (weight x 0.9), and keyword fallbacks
// (weight x 0.6, used only when no phrase or regex of the pattern matched).
// Patterns are immutable once the registry is built.
type Pattern struct {
	Weight   float64
	Phrases  []string
	Keywords []string
	Regexes  []*regexp.Regexp
}

// Registry maps entity types and intent types to their ordered pattern
// lists. It is built exactly once at process start by NewRegistry and is
// read-only afterwards, so it is safe to share across concurrent queries.
type Registry struct {
	entities  map[EntityType][]Pattern
	intents   map[IntentType][]Pattern
	stopWords map[string]bool
}

// NewRegistry builds the default pattern registry.
func NewRegistry() *Registry {
	return &Registry{
		entities:  defaultEntityPatterns(),
		intents:   defaultIntentPatterns(),
		stopWords: defaultStopWords(),
	}
}

// EntityPatterns returns the patterns for the given entity type.
func (r *Registry) EntityPatterns(t EntityType) []Pattern {
	return r.entities[t]
}

// IntentPatterns returns the patterns for the given intent type.
func (r *Registry) IntentPatterns(t IntentType) []Pattern {
	return r.intents[t]
}

// IsStopWord reports whether the word is excluded from keyword matching.
func (r *Registry) IsStopWord(w string) bool {
	return r.stopWords[w]
}

var (
	reTicketHash   = regexp.MustCompile(`#\d+`)
	reTicketWord   = regexp.MustCompile(`\bticket ?#?\d+`)
	reISODate      = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	reSlashDate    = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	reClockTime    = regexp.MustCompile(`\b\d{1,2} ?(?:am|pm)\b`)
	reDurationMins = regexp.MustCompile(`\b\d+ ?(?:minutes|mins|min)\b`)
	reDurationWord = regexp.MustCompile(`\bduration \d+\b`)
	reForDuration  = regexp.MustCompile(`\bfor \d+ (?:minutes|mins|min)\b`)
	rePhone        = regexp.MustCompile(`\b\d{10,15}\b`)
	reNumber       = regexp.MustCompile(`\b\d{1,6}\b`)
	rePriorityWord = regexp.MustCompile(`\b(?:high|medium|low) priority\b`)
	reAssignTo     = regexp.MustCompile(`\bassign(?:ed)?(?: ticket)?(?: ?#?\d+)? to [a-z][a-z0-9._-]*\b`)
	reUserName     = regexp.MustCompile(`\buser [a-z][a-z0-9._-]*\b`)

	// Description patterns carry a capture group: the entity value is the
	// captured text, not the full trigger match.
	reCreateDesc = regexp.MustCompile(`\bticket (?:for|about) (.+?)(?: duration| contact| phone| priority|$)`)
	reAccessDesc = regexp.MustCompile(`\bneed access (?:to|for) (.+?)(?: duration| contact| phone| priority|$)`)
)

func defaultEntityPatterns() map[EntityType][]Pattern {
	return map[EntityType][]Pattern{
		EntityTicketID: {
			{Weight: 1.0, Regexes: []*regexp.Regexp{reTicketHash, reTicketWord}},
		},
		EntityStatus: {
			{Weight: 1.0, Phrases: []string{"in progress", "open", "closed"},
				Keywords: []string{"active", "completed", "pending"}},
		},
		EntityDate: {
			{Weight: 1.0, Phrases: []string{"today", "yesterday", "tomorrow"},
				Regexes: []*regexp.Regexp{reISODate, reSlashDate}},
		},
		EntityTime: {
			{Weight: 0.9, Phrases: []string{"this morning", "this afternoon", "this evening", "tonight"},
				Regexes: []*regexp.Regexp{reClockTime}},
		},
		EntityDuration: {
			{Weight: 1.0, Regexes: []*regexp.Regexp{reDurationMins, reDurationWord, reForDuration}},
		},
		EntityEmergencyType: {
			{Weight: 1.0, Phrases: []string{
				"hr-emergency", "hr emergency",
				"financial-emergency", "financial emergency",
				"management-emergency", "management emergency",
				"logistics-emergency", "logistics emergency",
			}, Keywords: []string{"hr", "financial", "management", "logistics"}},
		},
		EntityNumber: {
			{Weight: 0.85, Regexes: []*regexp.Regexp{reNumber}},
		},
		EntityLocation: {
			{Weight: 0.9, Phrases: []string{"data center", "head office", "main building", "warehouse"},
				Keywords: []string{"office", "building"}},
		},
		EntityDescription: {
			{Weight: 1.0, Regexes: []*regexp.Regexp{reCreateDesc, reAccessDesc}},
		},
		EntityPhone: {
			{Weight: 1.0, Regexes: []*regexp.Regexp{rePhone}},
		},
		EntityPriority: {
			{Weight: 1.0, Phrases: []string{"critical", "urgent"},
				Regexes: []*regexp.Regexp{rePriorityWord}},
		},
		EntityAssignee: {
			{Weight: 0.9, Regexes: []*regexp.Regexp{reAssignTo}},
		},
		EntityUserName: {
			{Weight: 0.9, Regexes: []*regexp.Regexp{reUserName}},
		},
	}
}

var (
	reDetailsLead  = regexp.MustCompile(`^#\d+`)
	reDetailsOf    = regexp.MustCompile(`\b(?:details|status) (?:of|for) (?:ticket )?#?\d+\b`)
	reShowTicketN  = regexp.MustCompile(`\bshow ticket \d+\b`)
	reCreateIntent = regexp.MustCompile(`\bcreate\b.*\bticket\b`)
	reCloseN       = regexp.MustCompile(`\bclose (?:ticket )?#?\d+\b`)
)

func defaultIntentPatterns() map[IntentType][]Pattern {
	return map[IntentType][]Pattern{
		IntentShowActiveTickets: {
			{Weight: 1.0, Phrases: []string{
				"show active tickets", "active tickets", "my active tickets",
				"show my tickets", "my open tickets", "current tickets",
			}},
		},
		IntentShowCompletedTickets: {
			{Weight: 1.0, Phrases: []string{
				"completed tickets", "closed tickets", "ticket history",
				"past tickets", "show completed",
			}},
		},
		IntentShowAllTickets: {
			{Weight: 1.0, Phrases: []string{"all tickets", "every ticket"}},
		},
		IntentShowTicketDetails: {
			{Weight: 1.0, Phrases: []string{"ticket details", "details for ticket", "details of ticket"},
				Regexes: []*regexp.Regexp{reDetailsLead, reDetailsOf, reShowTicketN}},
		},
		IntentSearchTickets: {
			{Weight: 1.0, Phrases: []string{
				"search tickets", "find tickets", "search for",
				"filter tickets", "look for tickets",
			}},
		},
		IntentCreateTicket: {
			{Weight: 1.0, Phrases: []string{
				"create ticket", "create a ticket", "new ticket", "open a ticket",
				"raise a ticket", "need emergency access", "request emergency access",
				"break glass",
			}, Regexes: []*regexp.Regexp{reCreateIntent}},
		},
		IntentCloseTicket: {
			{Weight: 1.0, Phrases: []string{
				"close ticket", "close my ticket", "resolve ticket", "complete ticket",
			}, Regexes: []*regexp.Regexp{reCloseN}},
		},
		IntentUpdateStatus: {
			{Weight: 1.0, Phrases: []string{
				"update status", "change status", "set status",
				"mark as in progress", "mark as open",
			}},
		},
		IntentAssignTicket: {
			{Weight: 1.0, Phrases: []string{"assign ticket", "assign to", "reassign"}},
		},
		IntentAddComment: {
			{Weight: 1.0, Phrases: []string{
				"add comment", "add a comment", "comment on", "add note", "add a note",
			}},
		},
		IntentUpdatePriority: {
			{Weight: 1.0, Phrases: []string{
				"update priority", "change priority", "set priority", "make it urgent",
			}},
		},
		IntentSystemStats: {
			{Weight: 1.0, Phrases: []string{
				"system stats", "system statistics", "show statistics",
				"usage stats", "how many tickets",
			}},
		},
		IntentExportTickets: {
			{Weight: 1.0, Phrases: []string{
				"export tickets", "export to csv", "download tickets", "csv export",
			}},
		},
		IntentUserManagement: {
			{Weight: 1.0, Phrases: []string{
				"manage users", "user management", "list users", "show users", "add user",
			}},
		},
		IntentHelp: {
			{Weight: 1.0, Phrases: []string{
				"help", "what can you do", "how do i", "commands", "usage",
			}},
		},
		IntentGreeting: {
			{Weight: 0.9, Phrases: []string{
				"hello", "hi there", "good morning", "good afternoon", "hey",
			}},
		},
	}
}

func defaultStopWords() map[string]bool {
	words := []string{
		"the", "a", "an", "is", "are", "was", "were", "be",
		"to", "for", "of", "in", "on", "at", "and", "or",
		"my", "me", "i", "it", "this", "that", "with", "please",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
