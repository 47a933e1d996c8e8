// Package syncer orchestrates one reconciliation run: fetch survey
// submissions and client records, normalize and deduplicate, match each
// respondent to a record, plan field writes under the configured policies,
// and apply them. A run walks a fixed state sequence and always ends by
// emitting a report.
package syncer

import (
	"context"
	"time"

	"github.com/agentstation/utc"

	"github.com/hearthops/intake/pkg/constants"
	"github.com/hearthops/intake/pkg/errors"
	"github.com/hearthops/intake/pkg/logging"
	"github.com/hearthops/intake/pkg/reconcile"
	"github.com/hearthops/intake/pkg/survey"
	"github.com/hearthops/intake/pkg/verify"
)

// Mode selects what a run does with the store.
type Mode int

// Run modes.
const (
	// ModeSync fetches submissions and writes planned field updates.
	ModeSync Mode = iota
	// ModeVerify audits current store state without writing.
	ModeVerify
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeVerify {
		return "verify"
	}
	return "sync"
}

// State is one phase of a run.
type State int

// Run states, in order. Each state fully consumes its input before the
// run advances.
const (
	StateFetching State = iota
	StateNormalizing
	StateDeduping
	StateMatching
	StateWriting
	StateReporting
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateNormalizing:
		return "normalizing"
	case StateDeduping:
		return "deduping"
	case StateMatching:
		return "matching"
	case StateWriting:
		return "writing"
	case StateReporting:
		return "reporting"
	default:
		return "done"
	}
}

// Source lists survey submissions.
type Source interface {
	Responses(ctx context.Context) ([]survey.RawSubmission, error)
}

// Store reads and updates client records.
type Store interface {
	Records(ctx context.Context) ([]reconcile.ClientRecord, error)
	UpdateRecord(ctx context.Context, recordID string, writes []reconcile.Write) error
}

// Syncer runs reconciliation over one source and one store.
type Syncer struct {
	source     Source
	store      Store
	normalizer *survey.Normalizer
	policies   reconcile.Policies
	pace       time.Duration
	dryRun     bool
}

// Option customizes a syncer.
type Option func(*Syncer)

// WithPace sets the delay between consecutive store writes.
func WithPace(d time.Duration) Option {
	return func(s *Syncer) { s.pace = d }
}

// WithPolicies overrides the field write policies.
func WithPolicies(p reconcile.Policies) Option {
	return func(s *Syncer) { s.policies = p }
}

// WithDryRun plans and reports writes without issuing them.
func WithDryRun(dry bool) Option {
	return func(s *Syncer) { s.dryRun = dry }
}

// WithRouting overrides the question routing table.
func WithRouting(r *survey.Routing) Option {
	return func(s *Syncer) { s.normalizer = survey.NewNormalizer(r) }
}

// New creates a syncer with the default routing table, policies, and
// store pacing.
func New(source Source, store Store, opts ...Option) (*Syncer, error) {
	routing, err := survey.DefaultRouting()
	if err != nil {
		return nil, err
	}

	s := &Syncer{
		source:     source,
		store:      store,
		normalizer: survey.NewNormalizer(routing),
		policies:   reconcile.DefaultPolicies(),
		pace:       constants.StorePaceDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// matchedProfile pairs a normalized profile with the record it resolved to.
type matchedProfile struct {
	profile survey.Profile
	record  *reconcile.ClientRecord
}

// Run executes one run in the given mode. The returned report is always
// non-nil; fetch and per-record failures are recorded on it, and a non-nil
// error additionally means the run could not proceed past the failure.
func (s *Syncer) Run(ctx context.Context, mode Mode) (*Report, error) {
	report := newReport(mode, s.dryRun)

	// Stamp every log line of this run with its ID.
	ctx = logging.WithRunID(ctx, report.RunID.String())
	log := logging.Ctx(ctx)
	log.Info().
		Str("mode", mode.String()).
		Bool("dry_run", s.dryRun).
		Msg("Starting run")

	s.logState(ctx, StateFetching)
	records, err := s.store.Records(ctx)
	if err != nil {
		// Nothing to match against; report the failure and stop.
		report.Errors = append(report.Errors, err)
		log.Error().Err(err).Msg("Record fetch failed")
		s.finish(ctx, report)
		return report, err
	}

	if mode == ModeVerify {
		s.logState(ctx, StateReporting)
		stats := verify.Compute(records)
		report.VerifyStats = &stats
		s.finish(ctx, report)
		return report, nil
	}

	subs, err := s.source.Responses(ctx)
	if err != nil {
		// The source returns whatever pages it fetched before failing;
		// the run continues on the partial set.
		report.Errors = append(report.Errors, err)
		log.Error().Err(err).Msg("Submission fetch failed")
	}
	report.Fetched = len(subs)

	s.logState(ctx, StateNormalizing)
	profiles := make(map[string]survey.Profile, len(subs))
	for _, sub := range subs {
		p := s.normalizer.Normalize(sub)
		p.Email = firstNonEmpty(p.Email, sub.Email)
		profiles[sub.ResponseID] = p
	}

	s.logState(ctx, StateDeduping)
	unique := survey.Dedupe(subs)
	report.Unique = len(unique)

	s.logState(ctx, StateMatching)
	var matched []matchedProfile
	for _, sub := range unique {
		profile := profiles[sub.ResponseID]
		outcome := reconcile.Match(profile.FirstName, profile.LastName, records)
		switch outcome.Result {
		case reconcile.Matched:
			report.Matched++
			matched = append(matched, matchedProfile{profile: profile, record: outcome.Record})
		case reconcile.Ambiguous:
			report.Ambiguous++
			log.Warn().
				Str("respondent", profile.FullName()).
				Msg("Ambiguous record match, skipping")
		default:
			report.NotFound++
			log.Warn().
				Str("respondent", profile.FullName()).
				Msg("No record match, skipping")
		}
	}

	s.logState(ctx, StateWriting)
	for i, m := range matched {
		if err := ctx.Err(); err != nil {
			return report, errors.ErrCanceled
		}
		if i > 0 && !s.dryRun {
			if err := s.sleep(ctx); err != nil {
				return report, err
			}
		}
		s.writeOne(ctx, report, m)
	}

	s.logState(ctx, StateReporting)
	s.finish(ctx, report)
	return report, nil
}

// writeOne plans and applies the field updates for one matched respondent.
// Write failures are recorded on the report and never abort the run.
func (s *Syncer) writeOne(ctx context.Context, report *Report, m matchedProfile) {
	log := logging.Ctx(ctx)
	values := s.fieldValues(report, m)

	writes, preserved := reconcile.Plan(m.record, values, s.policies)
	for _, p := range preserved {
		report.Preserved = append(report.Preserved, PreservedNote{
			Record:  m.record.Name,
			Field:   p.Field,
			Current: p.Current,
		})
	}
	if len(writes) == 0 {
		return
	}

	if !s.dryRun {
		if err := s.store.UpdateRecord(ctx, m.record.ID, writes); err != nil {
			report.Errors = append(report.Errors,
				errors.NewSyncError(m.profile.FullName(), "", err))
			if errors.IsNotFound(err) {
				// The page was archived or deleted mid-run.
				log.Warn().
					Str("record", m.record.Name).
					Msg("Record disappeared before update")
			} else {
				log.Error().Err(err).
					Str("record", m.record.Name).
					Msg("Record update failed")
			}
			return
		}
	}

	report.Updated++
	for _, w := range writes {
		report.FieldWrites[w.Field]++
	}
	log.Info().
		Str("record", m.record.Name).
		Int("writes", len(writes)).
		Bool("dry_run", s.dryRun).
		Msg("Record updated")
}

// fieldValues renders the profile into per-field store values, capping each
// at the store's rich-text limit and recording truncations on the report.
func (s *Syncer) fieldValues(report *Report, m matchedProfile) map[reconcile.Field]string {
	p := m.profile
	values := map[reconcile.Field]string{
		reconcile.FieldEmail:          p.Email,
		reconcile.FieldPhone:          p.Phone,
		reconcile.FieldAddress:        p.Address,
		reconcile.FieldCity:           p.City,
		reconcile.FieldState:          p.State,
		reconcile.FieldSchedulingLink: p.SchedulingLink,
		reconcile.FieldCapabilities:   survey.FormatCapabilities(p.Capabilities),
		reconcile.FieldRelational:     p.Relational,
		reconcile.FieldAutonomy:       p.Autonomy,
		reconcile.FieldProfile:        survey.FormatProfile(p),
	}

	for _, field := range reconcile.Fields {
		capped, truncated := survey.Truncate(values[field])
		if truncated {
			values[field] = capped
			report.Truncations = append(report.Truncations, Truncation{
				Record: m.record.Name,
				Field:  field,
			})
		}
	}
	return values
}

// sleep paces consecutive store writes, honoring cancellation.
func (s *Syncer) sleep(ctx context.Context) error {
	if s.pace <= 0 {
		return nil
	}
	timer := time.NewTimer(s.pace)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return errors.ErrCanceled
	case <-timer.C:
		return nil
	}
}

func (s *Syncer) logState(ctx context.Context, state State) {
	logging.Ctx(ctx).Debug().Str("state", state.String()).Msg("State transition")
}

// finish stamps the end time and logs completion.
func (s *Syncer) finish(ctx context.Context, report *Report) {
	report.Ended = utc.Now()
	s.logState(ctx, StateDone)
	logging.Ctx(ctx).Info().
		Int("updated", report.Updated).
		Int("errors", len(report.Errors)).
		Msg("Run complete")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
