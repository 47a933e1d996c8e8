// Package survey defines the canonical representation of client-onboarding
// survey submissions and the pipeline stages that operate on them before
// reconciliation: normalization, deduplication, and value formatting.
package survey

import (
	"strings"

	"github.com/agentstation/utc"
)

// Answer is a single (question, value) pair from a raw submission.
// Exactly one of the value fields is populated depending on Type.
type Answer struct {
	FieldID    string `json:"field_id"`
	FieldLabel string `json:"field_label"` // question label or ref, used for catch-all capture
	Type       string `json:"type"`        // "text", "choice", "email", "phone_number", "url", "number"
	Text       string `json:"text,omitempty"`
	Choice     string `json:"choice,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	URL        string `json:"url,omitempty"`
	Number     string `json:"number,omitempty"` // decimal rendering of a numeric answer
}

// Value returns the answer's raw value regardless of its type.
func (a Answer) Value() string {
	for _, v := range []string{a.Choice, a.Email, a.Phone, a.URL, a.Number, a.Text} {
		if v != "" {
			return v
		}
	}
	return ""
}

// RawSubmission is one survey response exactly as fetched from the source,
// answers in source order. Immutable once constructed.
type RawSubmission struct {
	ResponseID  string   `json:"response_id"`
	Email       string   `json:"email"` // respondent identifier, may be empty
	Answers     []Answer `json:"answers"`
	SubmittedAt utc.Time `json:"submitted_at"`
	Complete    bool     `json:"complete"`
}

// Respondent returns the deduplication key for the submission: the
// lowercased email, or empty when the respondent cannot be identified.
func (s RawSubmission) Respondent() string {
	return strings.ToLower(strings.TrimSpace(s.Email))
}
