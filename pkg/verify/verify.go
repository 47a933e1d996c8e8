// Package verify audits the current state of the client record store:
// which records carry a completed onboarding form, how thoroughly each
// profile field is filled, and which clients are missing critical
// information. It never writes anything.
package verify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hearthops/intake/pkg/reconcile"
)

// CriticalFields are the fields a client record cannot usefully operate
// without.
var CriticalFields = []reconcile.Field{
	reconcile.FieldEmail,
	reconcile.FieldPhone,
	reconcile.FieldCapabilities,
}

// ClientScore is the completeness of one record's profile fields.
type ClientScore struct {
	Name      string
	Populated int
	Total     int
}

// Score returns the populated fraction, 0 for an empty field set.
func (s ClientScore) Score() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Populated) / float64(s.Total)
}

// MissingCritical names a record and the critical fields it lacks.
type MissingCritical struct {
	Name   string
	Fields []reconcile.Field
}

// Stats is the result of auditing a set of client records.
type Stats struct {
	TotalRecords   int
	CompletedForms int

	// FillRates maps each writable field to the fraction of completed-form
	// records that have it populated.
	FillRates map[reconcile.Field]float64

	// Scores holds per-client completeness, completed-form records only,
	// sorted ascending so the weakest profiles lead.
	Scores []ClientScore

	// Missing lists completed-form records lacking critical fields.
	Missing []MissingCritical
}

// Compute audits the given records. A record counts as having a completed
// form when its capability requirements field is populated.
func Compute(records []reconcile.ClientRecord) Stats {
	stats := Stats{
		TotalRecords: len(records),
		FillRates:    make(map[reconcile.Field]float64, len(reconcile.Fields)),
	}

	filled := make(map[reconcile.Field]int, len(reconcile.Fields))
	for i := range records {
		rec := &records[i]
		if rec.Empty(reconcile.FieldCapabilities) {
			continue
		}
		stats.CompletedForms++

		score := ClientScore{Name: rec.Name, Total: len(reconcile.Fields)}
		for _, field := range reconcile.Fields {
			if !rec.Empty(field) {
				filled[field]++
				score.Populated++
			}
		}
		stats.Scores = append(stats.Scores, score)

		var missing []reconcile.Field
		for _, field := range CriticalFields {
			if rec.Empty(field) {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			stats.Missing = append(stats.Missing, MissingCritical{Name: rec.Name, Fields: missing})
		}
	}

	for _, field := range reconcile.Fields {
		if stats.CompletedForms > 0 {
			stats.FillRates[field] = float64(filled[field]) / float64(stats.CompletedForms)
		} else {
			stats.FillRates[field] = 0
		}
	}

	sort.SliceStable(stats.Scores, func(i, j int) bool {
		return stats.Scores[i].Score() < stats.Scores[j].Score()
	})
	return stats
}

// Render writes the stats as a human-readable report.
func (s Stats) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Records: %d, with completed onboarding form: %d\n", s.TotalRecords, s.CompletedForms)

	b.WriteString("Fill rates (completed forms):\n")
	for _, field := range reconcile.Fields {
		fmt.Fprintf(&b, "  %-24s %5.1f%%\n", field, s.FillRates[field]*100)
	}

	if len(s.Missing) > 0 {
		b.WriteString("Missing critical fields:\n")
		for _, m := range s.Missing {
			names := make([]string, len(m.Fields))
			for i, f := range m.Fields {
				names[i] = string(f)
			}
			fmt.Fprintf(&b, "  %s: %s\n", m.Name, strings.Join(names, ", "))
		}
	} else {
		b.WriteString("No completed form is missing critical fields.\n")
	}
	return b.String()
}
