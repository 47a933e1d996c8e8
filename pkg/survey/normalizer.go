package survey

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// keywordMapping maps choice-label keywords to canonical select values.
// Ordered so decoding is deterministic.
type keywordMapping struct {
	keyword string
	value   string
}

var relationalMappings = []keywordMapping{
	{"reserved", "Reserved / Stealth"},
	{"stealth", "Reserved / Stealth"},
	{"relational", "Relational / Engaged"},
	{"engaged", "Relational / Engaged"},
	{"between", "Somewhere in Between"},
}

var autonomyMappings = []keywordMapping{
	{"directive", "Directive"},
	{"judgment", "Judgment-Oriented"},
	{"between", "Somewhere in Between"},
}

// Normalizer decodes raw submissions into canonical profiles using a static
// routing table. Safe for reuse across submissions.
type Normalizer struct {
	routing *Routing
}

// NewNormalizer creates a normalizer over the given routing table.
func NewNormalizer(routing *Routing) *Normalizer {
	return &Normalizer{routing: routing}
}

// Normalize decodes one raw submission into a profile. Every recognized
// question maps to exactly one canonical field; every unrecognized (or
// undecodable) answer is appended to the profile's Notes, prefixed with its
// question label. Missing and empty answers are tolerated.
func (n *Normalizer) Normalize(sub RawSubmission) Profile {
	profile := Profile{
		ResponseID:   sub.ResponseID,
		Capabilities: make(map[Area]Level),
		SubmittedAt:  sub.SubmittedAt,
	}

	answered := make(map[string]bool, len(sub.Answers))

	// The catch-all field is a fold over the answer sequence: each
	// unrecognized (label, value) pair appends one line.
	var notes []string
	for _, ans := range sub.Answers {
		value := strings.TrimSpace(ans.Value())
		if value == "" {
			continue
		}

		q, ok := n.routing.Lookup(ans.FieldID)
		if !ok {
			notes = append(notes, catchAllLine(ans.FieldLabel, value))
			continue
		}
		answered[q.ID] = true

		if !n.decode(&profile, q, value) {
			// Malformed answer for a recognized question: keep the raw
			// text rather than failing the submission.
			notes = append(notes, catchAllLine(q.Label, value))
		}
	}
	profile.Notes = strings.Join(notes, "\n")

	profile.Complete = true
	for _, id := range n.routing.Required() {
		if !answered[id] {
			profile.Complete = false
			break
		}
	}

	return profile
}

// decode routes one answer value into its canonical field. Returns false
// when the value could not be decoded into the expected shape.
func (n *Normalizer) decode(p *Profile, q Question, value string) bool {
	switch q.Decoder {
	case DecodeText, DecodeEmail, DecodePhone, DecodeURL:
		return setTextField(p, q.Field, value)

	case DecodeLevel:
		lvl := ParseLevel(value)
		if !lvl.Answered() {
			return false
		}
		p.Capabilities[q.Area] = lvl
		return true

	case DecodeSelect:
		return setSelectField(p, q.Select, value)

	case DecodePets:
		pets := ParsePets(value)
		if len(pets) == 0 {
			return false
		}
		p.Pets = pets
		return true

	case DecodeHousehold:
		members := ParseHousehold(value)
		if len(members) == 0 {
			return false
		}
		p.Household = members
		return true

	default:
		return false
	}
}

// nameCaser canonicalizes respondent-typed name casing ("amy" -> "Amy").
var nameCaser = cases.Title(language.English, cases.NoLower)

// setTextField assigns a plain text value to the named profile field.
func setTextField(p *Profile, field, value string) bool {
	switch field {
	case "first_name":
		p.FirstName = nameCaser.String(value)
	case "last_name":
		p.LastName = nameCaser.String(value)
	case "email":
		p.Email = value
	case "phone":
		p.Phone = value
	case "address":
		p.Address = value
	case "city":
		p.City = value
	case "state":
		p.State = value
	case "scheduling_link":
		p.SchedulingLink = value
	default:
		return false
	}
	return true
}

// setSelectField decodes a choice label into a canonical select value by
// keyword matching.
func setSelectField(p *Profile, sel, value string) bool {
	switch sel {
	case "relational":
		if v := mapSelect(value, relationalMappings); v != "" {
			p.Relational = v
			return true
		}
	case "autonomy":
		if v := mapSelect(value, autonomyMappings); v != "" {
			p.Autonomy = v
			return true
		}
	}
	return false
}

// mapSelect returns the canonical value for the first keyword contained in
// the label, or empty when none match.
func mapSelect(label string, mappings []keywordMapping) string {
	lower := strings.ToLower(label)
	for _, m := range mappings {
		if strings.Contains(lower, m.keyword) {
			return m.value
		}
	}
	return ""
}

// catchAllLine renders one accumulated catch-all entry.
func catchAllLine(label, value string) string {
	if label == "" {
		return value
	}
	return label + ": " + value
}
