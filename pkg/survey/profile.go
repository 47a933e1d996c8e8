package survey

import (
	"strings"

	"github.com/agentstation/utc"
)

// Profile is the canonical, field-keyed representation of one submission
// after decoding. Derived deterministically from a single RawSubmission.
type Profile struct {
	ResponseID string

	// Identity
	FirstName string
	LastName  string
	Email     string

	// Contact
	Phone          string
	Address        string
	City           string
	State          string
	SchedulingLink string

	// Capability levels, at most one per area
	Capabilities map[Area]Level

	// Working-style preferences
	Relational string
	Autonomy   string

	// Structured answer groups
	Pets      []Pet
	Household []Member

	// Notes accumulates every answer that has no dedicated field,
	// one "Label: value" line per answer, in source order.
	Notes string

	Complete    bool
	SubmittedAt utc.Time
}

// FullName returns the respondent's display name.
func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// HasCapabilities reports whether any capability area was answered with a
// concrete level (opt-outs do not count).
func (p *Profile) HasCapabilities() bool {
	for _, lvl := range p.Capabilities {
		if lvl.Answered() && lvl != LevelNA {
			return true
		}
	}
	return false
}
