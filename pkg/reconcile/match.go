package reconcile

import "strings"

// MatchResult classifies the outcome of an entity-match attempt.
type MatchResult int

// Match outcomes. Ambiguous is reported distinctly so the caller can log
// it, but is treated as NotFound: the matcher never guesses.
const (
	NotFound MatchResult = iota
	Matched
	Ambiguous
)

// String returns the outcome name.
func (r MatchResult) String() string {
	switch r {
	case Matched:
		return "matched"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not_found"
	}
}

// Outcome is the result of matching one respondent against the record set.
type Outcome struct {
	Result MatchResult
	Record *ClientRecord // set only when Result == Matched
}

// Match resolves a respondent name to at most one client record using a
// two-stage deterministic comparison. Stage one keeps records whose display
// name contains the last name as a whole token (case-insensitive); a single
// survivor matches. Multiple survivors are narrowed by first-name token
// equality; a single survivor matches, anything else is Ambiguous. Zero
// stage-one survivors is NotFound.
//
// There is no scored or partial-name matching: identical inputs always
// produce identical outcomes.
func Match(first, last string, records []ClientRecord) Outcome {
	last = strings.ToLower(strings.TrimSpace(last))
	first = strings.ToLower(strings.TrimSpace(first))
	if last == "" && first == "" {
		return Outcome{Result: NotFound}
	}

	all := make([]*ClientRecord, len(records))
	for i := range records {
		all[i] = &records[i]
	}

	candidates := filterByToken(all, last)
	if len(candidates) == 0 {
		return Outcome{Result: NotFound}
	}
	if len(candidates) == 1 {
		return Outcome{Result: Matched, Record: candidates[0]}
	}

	narrowed := filterByToken(candidates, first)
	if len(narrowed) == 1 {
		return Outcome{Result: Matched, Record: narrowed[0]}
	}
	return Outcome{Result: Ambiguous}
}

// filterByToken returns the records whose display name contains the given
// lowercase token as a whole word.
func filterByToken(records []*ClientRecord, token string) []*ClientRecord {
	if token == "" {
		return nil
	}
	var out []*ClientRecord
	for _, r := range records {
		for _, t := range strings.Fields(strings.ToLower(r.Name)) {
			if t == token {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
