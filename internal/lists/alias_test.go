package lists

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchListIDs_CaseInsensitive(t *testing.T) {
	aliases := map[string]string{
		"l1": "Mike",
		"l2": "Sarah",
	}

	lower := MatchListIDs(aliases, "mike")
	upper := MatchListIDs(aliases, "MIKE")
	mixed := MatchListIDs(aliases, "MiKe")

	assert.Equal(t, lower, upper)
	assert.Equal(t, lower, mixed)
	assert.Equal(t, MatchSingle, lower.Kind)
	assert.Equal(t, []string{"l1"}, lower.ListIDs)
}

func TestMatchListIDs_NoMatch(t *testing.T) {
	aliases := map[string]string{"l1": "Mike"}

	match := MatchListIDs(aliases, "Sarah")
	assert.Equal(t, MatchNone, match.Kind)
	assert.Empty(t, match.ListIDs)
}

func TestMatchListIDs_MultipleMatches(t *testing.T) {
	aliases := map[string]string{
		"l3": "mike",
		"l1": "Mike",
		"l2": "Sarah",
	}

	match := MatchListIDs(aliases, "MIKE")
	assert.Equal(t, MatchMultiple, match.Kind)
	assert.Equal(t, []string{"l1", "l3"}, match.ListIDs)
}

func TestMatchListIDs_EmptyInputs(t *testing.T) {
	assert.Equal(t, MatchNone, MatchListIDs(nil, "Mike").Kind)
	assert.Equal(t, MatchNone, MatchListIDs(map[string]string{}, "Mike").Kind)
	assert.Equal(t, MatchNone, MatchListIDs(map[string]string{"l1": "Mike"}, "").Kind)
	assert.Equal(t, MatchNone, MatchListIDs(map[string]string{"l1": "Mike"}, "   ").Kind)
}

func TestMatchListIDs_UnicodeFolding(t *testing.T) {
	aliases := map[string]string{"l1": "Müller"}

	match := MatchListIDs(aliases, "müller")
	assert.Equal(t, MatchSingle, match.Kind)
}
