package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoutingLoads(t *testing.T) {
	routing, err := DefaultRouting()
	require.NoError(t, err)

	// Every capability area has exactly one level question.
	areas := make(map[Area]int)
	for _, q := range routing.Questions() {
		if q.Decoder == DecodeLevel {
			areas[q.Area]++
		}
	}
	require.Len(t, areas, len(Areas))
	for _, area := range Areas {
		assert.Equal(t, 1, areas[area], "area %s", area)
	}
}

func TestDefaultRoutingRequired(t *testing.T) {
	routing, err := DefaultRouting()
	require.NoError(t, err)

	required := routing.Required()
	// first name, email, and the nine capability areas
	assert.Len(t, required, 11)
}

func TestLoadRoutingRejectsDuplicates(t *testing.T) {
	_, err := LoadRouting([]byte(`
questions:
  - id: abc
    label: One
    decoder: text
    field: city
  - id: abc
    label: Two
    decoder: text
    field: state
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadRoutingRejectsEmpty(t *testing.T) {
	_, err := LoadRouting([]byte("questions: []"))
	require.Error(t, err)
}

func TestLoadRoutingRejectsMissingID(t *testing.T) {
	_, err := LoadRouting([]byte(`
questions:
  - label: No ID
    decoder: text
    field: city
`))
	require.Error(t, err)
}

func TestRoutingLookup(t *testing.T) {
	routing, err := DefaultRouting()
	require.NoError(t, err)

	q, ok := routing.Lookup("O1WlKCDs4vwd")
	require.True(t, ok)
	assert.Equal(t, DecodeLevel, q.Decoder)
	assert.Equal(t, AreaCleaning, q.Area)

	_, ok = routing.Lookup("nope")
	assert.False(t, ok)
}
