package survey

// Dedupe collapses multiple submissions from the same respondent down to the
// latest one. Respondents are identified by email; submissions without an
// email cannot be deduplicated and pass through unchanged.
//
// The winner per respondent is the submission with the greatest timestamp;
// on identical timestamps the later-encountered submission wins, which is
// deterministic given stable source ordering. Output preserves the source
// order of the surviving submissions.
func Dedupe(subs []RawSubmission) []RawSubmission {
	winners := make(map[string]int, len(subs)) // respondent -> index into subs

	for i, sub := range subs {
		key := sub.Respondent()
		if key == "" {
			continue
		}
		prev, seen := winners[key]
		if !seen {
			winners[key] = i
			continue
		}
		// Later position wins ties, so >= on the timestamp comparison.
		if !sub.SubmittedAt.Before(subs[prev].SubmittedAt) {
			winners[key] = i
		}
	}

	out := make([]RawSubmission, 0, len(subs))
	for i, sub := range subs {
		if sub.Respondent() == "" {
			out = append(out, sub)
			continue
		}
		if winners[sub.Respondent()] == i {
			out = append(out, sub)
		}
	}
	return out
}
