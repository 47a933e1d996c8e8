package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		label string
		want  Level
	}{
		{"Level 1: Light Touch", Level1},
		{"Level 2: Full Household Support", Level2},
		{"Level 3: Total Home Management", Level3},
		{"I don't have pets.", LevelNA},
		{"We don't need cooking support", LevelNA},
		{"", LevelNone},
		{"Something else entirely", LevelNone},
		{"level 2 lowercase prefix", LevelNone}, // labels are case-sensitive
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseLevel(tc.label), "ParseLevel(%q)", tc.label)
	}
}

func TestLevelAnswered(t *testing.T) {
	assert.False(t, LevelNone.Answered())
	assert.True(t, LevelNA.Answered())
	assert.True(t, Level2.Answered())
}
