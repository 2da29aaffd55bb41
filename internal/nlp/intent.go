package nlp

import (
	"strings"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/users"
)

// IntentType is the closed set of goals a query can map to.
type IntentType string

const (
	IntentShowActiveTickets    IntentType = "show_active_tickets"
	IntentShowCompletedTickets IntentType = "show_completed_tickets"
	IntentShowAllTickets       IntentType = "show_all_tickets"
	IntentShowTicketDetails    IntentType = "show_ticket_details"
	IntentSearchTickets        IntentType = "search_tickets"
	IntentCreateTicket         IntentType = "create_ticket"
	IntentCloseTicket          IntentType = "close_ticket"
	IntentUpdateStatus         IntentType = "update_status"
	IntentAssignTicket         IntentType = "assign_ticket"
	IntentAddComment           IntentType = "add_comment"
	IntentUpdatePriority       IntentType = "update_priority"
	IntentSystemStats          IntentType = "system_stats"
	IntentExportTickets        IntentType = "export_tickets"
	IntentUserManagement       IntentType = "user_management"
	IntentHelp                 IntentType = "help"
	IntentGreeting             IntentType = "greeting"
	IntentUnknown              IntentType = "unknown"
)

// IntentTypes lists every recognizable intent, excluding IntentUnknown.
var IntentTypes = []IntentType{
	IntentShowActiveTickets,
	IntentShowCompletedTickets,
	IntentShowAllTickets,
	IntentShowTicketDetails,
	IntentSearchTickets,
	IntentCreateTicket,
	IntentCloseTicket,
	IntentUpdateStatus,
	IntentAssignTicket,
	IntentAddComment,
	IntentUpdatePriority,
	IntentSystemStats,
	IntentExportTickets,
	IntentUserManagement,
	IntentHelp,
	IntentGreeting,
}

// Intent is an immutable classification result.
type Intent struct {
	Type       IntentType        `json:"type"`
	Confidence float64           `json:"confidence"`
	Params     map[string]string `json:"params,omitempty"`
}

// Recognized reports whether the query was understood: an actionable type
// was classified above the threshold.
func (i Intent) Recognized() bool {
	return i.Type != IntentUnknown
}

// adminOnlyIntents are refused for the user role. Everything else that can
// be classified is available to both roles.
var adminOnlyIntents = map[IntentType]bool{
	IntentShowAllTickets: true,
	IntentSystemStats:    true,
	IntentExportTickets:  true,
	IntentUserManagement: true,
	IntentAssignTicket:   true,
}

// AllowedForRole reports whether the role may execute the intent. Ticket
// creation is always allowed for any authenticated role; admins may execute
// every recognized intent.
func AllowedForRole(t IntentType, role users.Role) bool {
	if t == IntentUnknown {
		return false
	}
	if t == IntentCreateTicket {
		return true
	}
	if role == users.RoleAdmin {
		return true
	}
	return !adminOnlyIntents[t]
}

// Classifier maps raw queries onto intents using the same pattern-scoring
// machinery as entity extraction, keyed by intent instead of entity type.
type Classifier struct {
	registry  *Registry
	threshold float64
}

// NewClassifier creates a classifier over the given registry. A threshold
// of zero or below falls back to DefaultConfidenceThreshold.
func NewClassifier(registry *Registry, threshold float64) *Classifier {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Classifier{registry: registry, threshold: threshold}
}

// Recognize returns the highest-confidence intent at or above the
// threshold, or an Intent of type IntentUnknown when nothing qualifies.
func (c *Classifier) Recognize(query string) Intent {
	norm := NormalizeQuery(query)
	if norm == "" {
		return Intent{Type: IntentUnknown}
	}

	best := Intent{Type: IntentUnknown}
	for _, t := range IntentTypes {
		score := c.score(t, norm)
		if score > best.Confidence {
			best = Intent{Type: t, Confidence: score}
		}
	}

	if best.Confidence < c.threshold {
		return Intent{Type: IntentUnknown, Confidence: best.Confidence}
	}
	return best
}

// score returns the strongest pattern signal for one intent, using the
// phrase/regex/keyword precedence shared with entity extraction.
func (c *Classifier) score(t IntentType, norm string) float64 {
	best := 0.0
	for _, p := range c.registry.IntentPatterns(t) {
		matched := false

		for _, re := range p.Regexes {
			if re.MatchString(norm) {
				matched = true
				if s := p.Weight * regexFactor; s > best {
					best = s
				}
			}
		}
		for _, phrase := range p.Phrases {
			if strings.Contains(norm, phrase) {
				matched = true
				if p.Weight > best {
					best = p.Weight
				}
			}
		}
		if matched {
			continue
		}
		for _, word := range strings.Fields(norm) {
			if c.registry.IsStopWord(word) {
				continue
			}
			for _, kw := range p.Keywords {
				if word == kw {
					if s := p.Weight * keywordFactor; s > best {
						best = s
					}
				}
			}
		}
	}
	return best
}
