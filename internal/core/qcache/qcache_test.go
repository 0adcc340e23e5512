package qcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"lowercases", "Do You DELIVER", "do you deliver"},
		{"strips punctuation", "Do you deliver?!", "do you deliver"},
		{"collapses whitespace", "do   you\t deliver", "do you deliver"},
		{"trims edges", "  do you deliver  ", "do you deliver"},
		{"keeps digits and underscore", "open_at 9", "open_at 9"},
		{"empty", "", ""},
		{"punctuation only", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.in))
		})
	}
}

func TestHashStable(t *testing.T) {
	h1 := Hash("Do you deliver?")
	h2 := Hash("do  you DELIVER!!")
	h3 := Hash("do you deliver")

	assert.Equal(t, h1, h2, "normalized-equal questions must hash identically")
	assert.Equal(t, h1, h3)
	assert.NotEmpty(t, h1)
}

func TestHashOrderDependent(t *testing.T) {
	assert.NotEqual(t, Hash("open sunday"), Hash("sunday open"))
}

func TestIsSimilar(t *testing.T) {
	tests := []struct {
		name     string
		q1, q2   string
		expected bool
	}{
		{"exact after normalization", "Do you deliver?", "do you deliver", true},
		{"substring", "do you deliver", "do you deliver to downtown", true},
		{"high word overlap", "what are your opening hours today", "what are your opening hours", true},
		{"low overlap", "do you deliver pizza", "what time do you close", false},
		{"both empty", "", "?!", true},
		{"one empty", "", "do you deliver", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSimilar(tt.q1, tt.q2))
		})
	}
}

func TestJaccardBoundary(t *testing.T) {
	// 6 shared words, union 7 => 0.857 > 0.7: similar, no substring relation
	assert.True(t, IsSimilar("what time do you open on monday", "what time do you open monday"))

	// 2 shared words, union 6 => 0.33: not similar
	assert.False(t, IsSimilar("can i book parking", "can i order food"))
}
