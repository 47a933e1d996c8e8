package survey

import (
	"fmt"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submissionAt(email string, ts time.Time) RawSubmission {
	return RawSubmission{
		ResponseID:  fmt.Sprintf("r-%s-%d", email, ts.Unix()),
		Email:       email,
		SubmittedAt: utc.Time{Time: ts},
	}
}

func TestDedupeKeepsLatestPerRespondent(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	subs := []RawSubmission{
		submissionAt("jane@x.com", base),
		submissionAt("sam@y.com", base.Add(time.Hour)),
		submissionAt("jane@x.com", base.Add(48*time.Hour)),
		submissionAt("jane@x.com", base.Add(24*time.Hour)),
	}

	out := Dedupe(subs)
	require.Len(t, out, 2)

	for _, sub := range out {
		if sub.Respondent() == "jane@x.com" {
			assert.Equal(t, base.Add(48*time.Hour), sub.SubmittedAt.Time)
		}
	}
}

func TestDedupeTieBreaksOnSourceOrder(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	first := submissionAt("jane@x.com", ts)
	first.ResponseID = "first"
	second := submissionAt("jane@x.com", ts)
	second.ResponseID = "second"

	out := Dedupe([]RawSubmission{first, second})
	require.Len(t, out, 1)
	assert.Equal(t, "second", out[0].ResponseID, "later source position wins identical timestamps")
}

func TestDedupeEmailCaseInsensitive(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	out := Dedupe([]RawSubmission{
		submissionAt("Jane@X.com", base),
		submissionAt("jane@x.com", base.Add(time.Minute)),
	})
	require.Len(t, out, 1)
}

func TestDedupePassesThroughAnonymousSubmissions(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	subs := []RawSubmission{
		submissionAt("", base),
		submissionAt("", base),
		submissionAt("jane@x.com", base),
	}

	out := Dedupe(subs)
	assert.Len(t, out, 3, "submissions without an identifier cannot be deduplicated")
}

// TestDedupeAlwaysKeepsMaxTimestamp exercises the dedupe law over a spread
// of orderings: for any set sharing one respondent, exactly one submission
// survives and it carries the maximum timestamp.
func TestDedupeAlwaysKeepsMaxTimestamp(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	offsets := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
		{1, 1, 1, 1},
		{0, 3, 3, 2},
	}

	for _, perm := range offsets {
		var subs []RawSubmission
		maxOffset := 0
		for _, off := range perm {
			subs = append(subs, submissionAt("jane@x.com", base.Add(time.Duration(off)*time.Hour)))
			if off > maxOffset {
				maxOffset = off
			}
		}

		out := Dedupe(subs)
		require.Len(t, out, 1, "permutation %v", perm)
		assert.Equal(t, base.Add(time.Duration(maxOffset)*time.Hour), out[0].SubmittedAt.Time, "permutation %v", perm)
	}
}
