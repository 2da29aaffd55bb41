package nlp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validation bounds for break-glass tickets.
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 120
	minPhoneDigits     = 10
	maxPhoneDigits     = 15
)

// emergencySynonyms maps accepted spellings onto the canonical hyphenated
// emergency types.
var emergencySynonyms = map[string]string{
	"hr":                   "hr-emergency",
	"hr emergency":         "hr-emergency",
	"hr-emergency":         "hr-emergency",
	"financial":            "financial-emergency",
	"financial emergency":  "financial-emergency",
	"financial-emergency":  "financial-emergency",
	"management":           "management-emergency",
	"management emergency": "management-emergency",
	"management-emergency": "management-emergency",
	"logistics":            "logistics-emergency",
	"logistics emergency":  "logistics-emergency",
	"logistics-emergency":  "logistics-emergency",
}

// canonicalEmergencyTypes is the closed set tickets may be created under.
var canonicalEmergencyTypes = map[string]bool{
	"hr-emergency":         true,
	"financial-emergency":  true,
	"management-emergency": true,
	"logistics-emergency":  true,
}

// CanonicalEmergencyType maps a raw emergency-type value (canonical form or
// documented synonym, any case) onto its canonical value. ok is false when
// the value is not recognized.
func CanonicalEmergencyType(raw string) (string, bool) {
	v, ok := emergencySynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return v, ok
}

// validStatuses are the status values accepted from queries.
var validStatuses = map[string]bool{
	"open":        true,
	"closed":      true,
	"in progress": true,
}

// Validator cross-checks extracted entities against external data. It only
// examines types that have at least one extracted entity; absent types
// never block.
type Validator struct {
	tickets TicketService
}

// NewValidator creates a validator backed by the given ticket service.
func NewValidator(ticketSvc TicketService) *Validator {
	return &Validator{tickets: ticketSvc}
}

// Validate checks every populated entity type. Errors are blocking;
// warnings are advisory and never flip Valid.
func (v *Validator) Validate(ctx context.Context, entities *ExtractedEntities) ValidationResult {
	res := ValidationResult{Valid: true, ByType: map[EntityType]bool{}}

	for _, ent := range entities.OfType(EntityTicketID) {
		t, err := v.tickets.GetByID(ctx, ent.Normalized)
		if err != nil || t == nil {
			res.addError(EntityTicketID, fmt.Sprintf("Ticket %s does not exist.", ent.Normalized))
			continue
		}
		res.markValid(EntityTicketID)
	}

	for _, ent := range entities.OfType(EntityStatus) {
		if !validStatuses[strings.ToLower(ent.Raw)] {
			res.addError(EntityStatus, fmt.Sprintf("Status %q is not recognized; use open, closed, or in progress.", ent.Raw))
			continue
		}
		res.markValid(EntityStatus)
	}

	for _, ent := range entities.OfType(EntityDate) {
		if _, err := time.Parse(time.DateOnly, ent.Normalized); err != nil {
			res.addError(EntityDate, fmt.Sprintf("Date %q could not be understood.", ent.Raw))
			continue
		}
		res.markValid(EntityDate)
	}

	for _, ent := range entities.OfType(EntityEmergencyType) {
		if _, ok := CanonicalEmergencyType(ent.Normalized); !ok {
			res.addError(EntityEmergencyType, fmt.Sprintf(
				"Emergency type %q is not recognized; allowed types are hr-emergency, financial-emergency, management-emergency, logistics-emergency.", ent.Raw))
			continue
		}
		res.markValid(EntityEmergencyType)
	}

	for _, ent := range entities.OfType(EntityDuration) {
		n, err := strconv.Atoi(digitsOf(ent.Normalized))
		if err != nil || n < MinDurationMinutes || n > MaxDurationMinutes {
			res.addError(EntityDuration, fmt.Sprintf("Duration must be between %d and %d minutes.", MinDurationMinutes, MaxDurationMinutes))
			continue
		}
		res.markValid(EntityDuration)
	}

	for _, ent := range entities.OfType(EntityPhone) {
		digits := digitsOf(ent.Normalized)
		if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
			res.addError(EntityPhone, fmt.Sprintf("Contact number %q must have between %d and %d digits.", ent.Raw, minPhoneDigits, maxPhoneDigits))
			continue
		}
		res.markValid(EntityPhone)
	}

	// User names are advisory only. The lookup goes through the ticket
	// store rather than a user store (kept from the original behavior,
	// pending product clarification), so failures are warnings.
	for _, ent := range entities.OfType(EntityUserName) {
		name := ent.Normalized
		if i := strings.LastIndex(name, " "); i >= 0 {
			name = name[i+1:]
		}
		t, err := v.tickets.GetByID(ctx, name)
		if err != nil || t == nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Could not confirm user %q.", name))
			res.ByType[EntityUserName] = false
			continue
		}
		res.markValid(EntityUserName)
	}

	return res
}

func (r *ValidationResult) addError(t EntityType, msg string) {
	r.Valid = false
	r.ByType[t] = false
	r.Errors = append(r.Errors, msg)
}

// markValid flags the type valid unless an earlier entity of the same type
// already failed.
func (r *ValidationResult) markValid(t EntityType) {
	if _, seen := r.ByType[t]; !seen {
		r.ByType[t] = true
	}
}
