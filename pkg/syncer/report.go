package syncer

import (
	"fmt"
	"strings"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/hearthops/intake/pkg/reconcile"
	"github.com/hearthops/intake/pkg/verify"
)

// Truncation records one field value shortened to the store's limit.
type Truncation struct {
	Record string
	Field  reconcile.Field
}

// PreservedNote records a field left untouched on a record because it
// already carried a value.
type PreservedNote struct {
	Record  string
	Field   reconcile.Field
	Current string
}

// Report is the outcome of one run. A run always produces a report, even
// when nothing was fetched or written.
type Report struct {
	RunID     uuid.UUID
	Mode      Mode
	DryRun    bool
	StartedAt utc.Time
	Ended     utc.Time

	Fetched   int // raw submissions from the source
	Unique    int // submissions surviving deduplication
	Matched   int
	NotFound  int
	Ambiguous int
	Updated   int // records actually (or in dry-run, would-be) written

	FieldWrites map[reconcile.Field]int
	Preserved   []PreservedNote
	Truncations []Truncation
	Errors      []error

	VerifyStats *verify.Stats
}

// newReport initializes a report for one run.
func newReport(mode Mode, dryRun bool) *Report {
	return &Report{
		RunID:       uuid.New(),
		Mode:        mode,
		DryRun:      dryRun,
		StartedAt:   utc.Now(),
		FieldWrites: make(map[reconcile.Field]int),
	}
}

// Summary renders the report for operators.
func (r *Report) Summary() string {
	var b strings.Builder

	verb := "Sync"
	if r.Mode == ModeVerify {
		verb = "Verify"
	}
	fmt.Fprintf(&b, "%s run %s", verb, r.RunID)
	if r.DryRun {
		b.WriteString(" (dry run)")
	}
	b.WriteString("\n")

	if r.Mode == ModeSync {
		fmt.Fprintf(&b, "Submissions: %d fetched, %d unique\n", r.Fetched, r.Unique)
		fmt.Fprintf(&b, "Matching: %d matched, %d not found, %d ambiguous\n",
			r.Matched, r.NotFound, r.Ambiguous)
		fmt.Fprintf(&b, "Records updated: %d\n", r.Updated)

		if len(r.FieldWrites) > 0 {
			b.WriteString("Writes by field:\n")
			for _, field := range reconcile.Fields {
				if n := r.FieldWrites[field]; n > 0 {
					fmt.Fprintf(&b, "  %-24s %d\n", field, n)
				}
			}
		}
		for _, p := range r.Preserved {
			fmt.Fprintf(&b, "Preserved %s on %s (already set)\n", p.Field, p.Record)
		}
		for _, tr := range r.Truncations {
			fmt.Fprintf(&b, "Truncated %s on %s\n", tr.Field, tr.Record)
		}
	}

	if r.VerifyStats != nil {
		b.WriteString(r.VerifyStats.Render())
	}

	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "Errors: %d\n", len(r.Errors))
		for _, err := range r.Errors {
			fmt.Fprintf(&b, "  %v\n", err)
		}
	}
	return b.String()
}
