// Package nlp turns free-text break-glass queries into authorized ticket
// operations and renders the results back into natural language.
package nlp

// EntityType labels a typed span of text extracted from a query.
type EntityType string

const (
	EntityTicketID      EntityType = "ticket_id"
	EntityStatus        EntityType = "status"
	EntityAssignee      EntityType = "assignee"
	EntityPriority      EntityType = "priority"
	EntityDate          EntityType = "date"
	EntityTime          EntityType = "time"
	EntityDuration      EntityType = "duration"
	EntityEmergencyType EntityType = "emergency_type"
	EntityNumber        EntityType = "number"
	EntityLocation      EntityType = "location"
	EntityDescription   EntityType = "description"
	EntityPhone         EntityType = "phone"
	EntityUserName      EntityType = "user_name"
)

// EntityTypes lists every known entity type. ExtractedEntities always
// carries a slice (possibly empty) for each of these.
var EntityTypes = []EntityType{
	EntityTicketID,
	EntityStatus,
	EntityAssignee,
	EntityPriority,
	EntityDate,
	EntityTime,
	EntityDuration,
	EntityEmergencyType,
	EntityNumber,
	EntityLocation,
	EntityDescription,
	EntityPhone,
	EntityUserName,
}

// Entity is an immutable extracted value. Raw is the text as matched in the
// normalized query; Normalized is the type-specific canonical form.
type Entity struct {
	Type       EntityType `json:"type"`
	Raw        string     `json:"raw"`
	Normalized string     `json:"normalized"`
	Start      int        `json:"start"`
	End        int        `json:"end"`
	Confidence float64    `json:"confidence"`
}

// ExtractedEntities holds every entity found in one query, grouped by type.
// Overlapping matches of the same type are all retained; callers must not
// assume one entity per type.
type ExtractedEntities struct {
	byType map[EntityType][]Entity
}

func newExtractedEntities() *ExtractedEntities {
	m := make(map[EntityType][]Entity, len(EntityTypes))
	for _, t := range EntityTypes {
		m[t] = []Entity{}
	}
	return &ExtractedEntities{byType: m}
}

func (e *ExtractedEntities) add(ent Entity) {
	e.byType[ent.Type] = append(e.byType[ent.Type], ent)
}

// OfType returns all entities of the given type, in extraction order.
// The slice is never nil for a known type.
func (e *ExtractedEntities) OfType(t EntityType) []Entity {
	return e.byType[t]
}

// Has reports whether at least one entity of the given type was extracted.
func (e *ExtractedEntities) Has(t EntityType) bool {
	return len(e.byType[t]) > 0
}

// Best returns the highest-confidence entity of the given type, the
// first-extracted winning ties.
func (e *ExtractedEntities) Best(t EntityType) (Entity, bool) {
	var best Entity
	found := false
	for _, ent := range e.byType[t] {
		if !found || ent.Confidence > best.Confidence {
			best = ent
			found = true
		}
	}
	return best, found
}

// All returns the full type-to-entities map.
func (e *ExtractedEntities) All() map[EntityType][]Entity {
	return e.byType
}

// Count returns the total number of entities across all types.
func (e *ExtractedEntities) Count() int {
	n := 0
	for _, ents := range e.byType {
		n += len(ents)
	}
	return n
}

// Types returns the entity types that have at least one match.
func (e *ExtractedEntities) Types() []EntityType {
	var out []EntityType
	for _, t := range EntityTypes {
		if len(e.byType[t]) > 0 {
			out = append(out, t)
		}
	}
	return out
}
