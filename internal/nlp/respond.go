package nlp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/tickets"
)

// Style selects the tone and trimming applied to rendered responses.
type Style string

const (
	StyleConcise      Style = "concise"
	StyleCasual       Style = "casual"
	StyleTechnical    Style = "technical"
	StyleProfessional Style = "professional"
)

// DefaultMaxResponseLength caps rendered responses when the caller does not
// configure a limit.
const DefaultMaxResponseLength = 500

// minResponseLength is the floor below which the cap never drops.
const minResponseLength = 80

// Preferences control response rendering. Build them with
// NewPreferencesBuilder; the zero value renders professional, terse,
// emoji-free output at the default length cap.
type Preferences struct {
	style     Style
	verbose   bool
	emoji     bool
	maxLength int
}

// PreferencesBuilder assembles Preferences from optional flags.
type PreferencesBuilder struct {
	p Preferences
}

// NewPreferencesBuilder starts a builder with the defaults.
func NewPreferencesBuilder() *PreferencesBuilder {
	return &PreferencesBuilder{p: Preferences{
		style:     StyleProfessional,
		maxLength: DefaultMaxResponseLength,
	}}
}

// Style sets the response style.
func (b *PreferencesBuilder) Style(s Style) *PreferencesBuilder {
	b.p.style = s
	return b
}

// Verbose appends the original query and filters to responses.
func (b *PreferencesBuilder) Verbose(v bool) *PreferencesBuilder {
	b.p.verbose = v
	return b
}

// Emoji prefixes responses with an intent-specific emoji.
func (b *PreferencesBuilder) Emoji(e bool) *PreferencesBuilder {
	b.p.emoji = e
	return b
}

// MaxResponseLength caps the rendered response. Values below the floor of
// 80 characters are raised to it.
func (b *PreferencesBuilder) MaxResponseLength(n int) *PreferencesBuilder {
	b.p.maxLength = n
	return b
}

// Build returns the assembled preferences.
func (b *PreferencesBuilder) Build() Preferences {
	p := b.p
	if p.style == "" {
		p.style = StyleProfessional
	}
	if p.maxLength <= 0 {
		p.maxLength = DefaultMaxResponseLength
	}
	return p
}

// intentEmojis decorate responses when the emoji preference is on.
var intentEmojis = map[IntentType]string{
	IntentShowActiveTickets:    "📋",
	IntentShowCompletedTickets: "📋",
	IntentShowAllTickets:       "📋",
	IntentShowTicketDetails:    "🔍",
	IntentSearchTickets:        "🔍",
	IntentCreateTicket:         "🎫",
	IntentCloseTicket:          "✅",
	IntentUpdateStatus:         "🔄",
	IntentAssignTicket:         "👤",
	IntentAddComment:           "💬",
	IntentUpdatePriority:       "⚠️",
	IntentSystemStats:          "📊",
	IntentExportTickets:        "📤",
	IntentUserManagement:       "👥",
	IntentHelp:                 "💡",
	IntentGreeting:             "👋",
}

// Responder renders structured query results into natural language.
type Responder struct{}

// NewResponder creates a responder.
func NewResponder() *Responder {
	return &Responder{}
}

// Render turns a QueryResult into user-facing text, then applies the
// customization pass (emoji, verbosity, style, length cap).
func (r *Responder) Render(result *QueryResult, intent IntentType, query string, prefs Preferences) string {
	text := r.renderResult(result)
	return r.customize(text, result, intent, query, prefs)
}

func (r *Responder) renderResult(result *QueryResult) string {
	switch result.Type {
	case ResultTicketList:
		return renderTicketList(result)
	case ResultTicketDetails:
		return renderTicketDetails(result)
	case ResultOperationResult:
		return renderOperation(result)
	case ResultStatistics:
		return renderStatistics(result)
	case ResultHelp:
		if result.Message != "" {
			return result.Message
		}
		return helpText(false)
	case ResultInformation:
		return result.Message
	case ResultError:
		return renderError(result)
	default:
		return errorMessages[ErrSystemError]
	}
}

func renderTicketList(result *QueryResult) string {
	ts, _ := result.Data.([]tickets.Ticket)
	if len(ts) == 0 {
		return "No tickets found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d ticket(s):\n", len(ts))
	for _, t := range ts {
		fmt.Fprintf(&b, "- [%s] %s - %s\n", t.ID, t.Status, t.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTicketDetails(result *QueryResult) string {
	t, ok := result.Data.(*tickets.Ticket)
	if !ok || t == nil {
		return errorMessages[ErrDataNotFound]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Ticket #%s\n", t.ID)
	fmt.Fprintf(&b, "Status: %s\n", t.Status)
	fmt.Fprintf(&b, "Owner: %s\n", t.UserID)
	fmt.Fprintf(&b, "Description: %s", t.Description)
	if t.EmergencyType != "" {
		fmt.Fprintf(&b, "\nEmergency type: %s", t.EmergencyType)
	}
	if t.DurationMinutes > 0 {
		fmt.Fprintf(&b, "\nDuration: %d minutes", t.DurationMinutes)
	}
	return b.String()
}

func renderOperation(result *QueryResult) string {
	if result.Success {
		if result.Message != "" {
			return result.Message
		}
		return fmt.Sprintf("Done. %d record(s) affected.", result.Count)
	}

	if reason, ok := result.Metadata["reason"].(string); ok && reason != "" {
		return "The operation failed: " + reason
	}
	return errorMessages[ErrOperationFailed]
}

func renderStatistics(result *QueryResult) string {
	data, _ := result.Data.(map[string]any)
	if len(data) == 0 {
		return "No statistics available."
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("System statistics:\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, data[k])
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderError(result *QueryResult) string {
	et := ErrSystemError
	if v, ok := result.Metadata["errorType"].(string); ok {
		et = ErrorType(v)
	}
	msg, ok := errorMessages[et]
	if !ok {
		msg = errorMessages[ErrSystemError]
	}
	if len(result.Errors) > 0 && result.Errors[0] != "" {
		return msg + " (" + result.Errors[0] + ")"
	}
	return msg
}

// customize applies emoji, verbose, style, and length preferences, in that
// order.
func (r *Responder) customize(text string, result *QueryResult, intent IntentType, query string, prefs Preferences) string {
	if prefs.emoji && !startsWithEmoji(text) {
		if emoji, ok := intentEmojis[intent]; ok {
			text = emoji + " " + text
		}
	}

	if prefs.verbose {
		var extra strings.Builder
		fmt.Fprintf(&extra, "\n\nQuery: %s", query)
		if filters, ok := result.Metadata["filters"].(map[string]string); ok && len(filters) > 0 {
			keys := make([]string, 0, len(filters))
			for k := range filters {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			pairs := make([]string, 0, len(keys))
			for _, k := range keys {
				pairs = append(pairs, k+"="+filters[k])
			}
			fmt.Fprintf(&extra, "\nFilters: %s", strings.Join(pairs, ", "))
		}
		if tf, ok := result.Metadata["timeframe"].(string); ok && tf != "" {
			fmt.Fprintf(&extra, "\nTimeframe: %s", tf)
		}
		text += extra.String()
	}

	switch prefs.style {
	case StyleConcise:
		text = conciseTrim(text)
	case StyleCasual:
		if !startsWithEmoji(text) {
			text = "😊 " + text
		}
	case StyleTechnical:
		// Pass-through.
	default:
		text = strings.TrimSpace(text)
	}

	return truncate(text, prefs.maxLength)
}

// conciseTrim keeps at most the first 8 lines and 300 characters.
func conciseTrim(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 8 {
		lines = lines[:8]
	}
	text = strings.Join(lines, "\n")
	if runes := []rune(text); len(runes) > 300 {
		text = string(runes[:300])
	}
	return strings.TrimSpace(text)
}

// truncate caps the text at max(80, limit) characters, marking truncation
// with an ellipsis.
func truncate(text string, limit int) string {
	if limit < minResponseLength {
		limit = minResponseLength
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}

func startsWithEmoji(s string) bool {
	for _, r := range s {
		return r >= '←'
	}
	return false
}
