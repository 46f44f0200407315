package lists

import (
	"sort"
	"strings"
)

// MatchKind classifies how many lists a typed person name resolved to.
// Ambiguity (several lists sharing one case-folded alias) is an ordinary
// state the caller must handle, not an error.
type MatchKind int

const (
	// MatchNone means no list alias equals the name.
	MatchNone MatchKind = iota
	// MatchSingle means exactly one list matched.
	MatchSingle
	// MatchMultiple means the name is ambiguous across several lists.
	MatchMultiple
)

// Match is the outcome of resolving a person name against a user's aliases.
type Match struct {
	Kind    MatchKind
	ListIDs []string
}

// MatchListIDs resolves a free-text person name against a map of list id to
// alias. Matching is case-insensitive equality under Unicode case folding;
// nothing fuzzier, so quote entry has exactly three response states. A blank
// name or empty map yields MatchNone. Matched ids are returned sorted so
// "first match" tie-breaking is deterministic.
func MatchListIDs(aliases map[string]string, name string) Match {
	name = strings.TrimSpace(name)
	if name == "" || len(aliases) == 0 {
		return Match{Kind: MatchNone}
	}

	var ids []string
	for listID, alias := range aliases {
		if strings.EqualFold(alias, name) {
			ids = append(ids, listID)
		}
	}
	sort.Strings(ids)

	switch len(ids) {
	case 0:
		return Match{Kind: MatchNone}
	case 1:
		return Match{Kind: MatchSingle, ListIDs: ids}
	default:
		return Match{Kind: MatchMultiple, ListIDs: ids}
	}
}
