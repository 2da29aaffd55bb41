package nlp

import "strings"

// DefaultConfidenceThreshold is the minimum score an extracted entity or
// classified intent must reach to be accepted.
const DefaultConfidenceThreshold = 0.7

// Score multipliers for the three match mechanisms. Exact phrases score at
// full pattern weight; regex matches are slightly discounted; keyword
// fallbacks carry the least signal.
const (
	regexFactor   = 0.9
	keywordFactor = 0.6
)

// Extractor applies the pattern registry to queries. The confidence
// threshold is fixed at construction; it is not re-read per call.
type Extractor struct {
	registry  *Registry
	threshold float64
}

// NewExtractor creates an extractor over the given registry. A threshold of
// zero or below falls back to DefaultConfidenceThreshold.
func NewExtractor(registry *Registry, threshold float64) *Extractor {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Extractor{registry: registry, threshold: threshold}
}

// Threshold returns the configured confidence threshold.
func (e *Extractor) Threshold() float64 { return e.threshold }

// Extract normalizes the query and extracts every qualifying entity of
// every known type. The result always carries a (possibly empty) list per
// type, and duplicate or overlapping matches are retained as-is.
func (e *Extractor) Extract(query string) *ExtractedEntities {
	out := newExtractedEntities()
	norm := NormalizeQuery(query)
	if norm == "" {
		return out
	}

	for _, t := range EntityTypes {
		for _, p := range e.registry.EntityPatterns(t) {
			e.applyPattern(out, t, p, norm)
		}
	}
	return out
}

// applyPattern runs one pattern against the normalized query. Precedence:
// regexes, then exact phrases; keywords only fire when neither matched.
func (e *Extractor) applyPattern(out *ExtractedEntities, t EntityType, p Pattern, norm string) {
	matched := false

	for _, re := range p.Regexes {
		for _, loc := range re.FindAllStringSubmatchIndex(norm, -1) {
			matched = true
			start, end := loc[0], loc[1]
			// Descriptions are extracted from surrounding trigger phrases:
			// the captured group is the value, not the full match.
			if t == EntityDescription && len(loc) >= 4 && loc[2] >= 0 {
				start, end = loc[2], loc[3]
			}
			e.emit(out, t, norm[start:end], start, end, p.Weight*regexFactor)
		}
	}

	for _, phrase := range p.Phrases {
		if i := strings.Index(norm, phrase); i >= 0 {
			matched = true
			e.emit(out, t, phrase, i, i+len(phrase), p.Weight)
		}
	}

	if matched {
		return
	}

	offset := 0
	for _, word := range strings.Fields(norm) {
		i := strings.Index(norm[offset:], word) + offset
		offset = i + len(word)
		if e.registry.IsStopWord(word) {
			continue
		}
		for _, kw := range p.Keywords {
			if word == kw {
				e.emit(out, t, word, i, i+len(word), p.Weight*keywordFactor)
			}
		}
	}
}

func (e *Extractor) emit(out *ExtractedEntities, t EntityType, raw string, start, end int, confidence float64) {
	if confidence < e.threshold {
		return
	}
	out.add(Entity{
		Type:       t,
		Raw:        raw,
		Normalized: normalizeValue(t, raw),
		Start:      start,
		End:        end,
		Confidence: confidence,
	})
}
