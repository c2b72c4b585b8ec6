package reconcile

import (
	"slices"

	"github.com/kanoheda/verbroots/internal/affix"
	"github.com/kanoheda/verbroots/internal/parse"
	"github.com/kanoheda/verbroots/internal/syllabary"
)

// hAlternations maps an h-row glyph of a third-person root to the bare
// vowel the first-person root shows in its place.
var hAlternations = map[rune]rune{
	'Ꭽ': 'Ꭰ',
	'Ꭾ': 'Ꭰ',
	'Ꭿ': 'Ꭰ',
	'Ꮀ': 'Ꭰ',
	'Ꮁ': 'Ꭰ',
	'Ꮂ': 'Ꭰ',
}

// EqualUpToHAlternation reports whether a third-person root and a
// first-person root spell the same root. They must have the same length
// and differ in at most one glyph; that glyph pair has to be a known
// h-alternation or share its vowel.
func EqualUpToHAlternation(third, first string) bool {
	if third == first {
		return true
	}
	a, b := []rune(third), []rune(first)
	if len(a) != len(b) {
		return false
	}

	at := -1
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if at >= 0 {
			return false
		}
		at = i
	}
	if at < 0 {
		// distinct invalid byte sequences decode to the same runes
		return false
	}

	if hAlternations[a[at]] == b[at] {
		return true
	}
	return syllabary.SameVowel(a[at], b[at])
}

// InfixesMatch reports whether two parses carry the same prefixes after
// their pronoun. Rules are compared by identity, so two table entries
// sharing a tag still count as different infixes.
func InfixesMatch(a, b parse.State) bool {
	return slices.Equal(a.Infixes(), b.Infixes())
}

// score ranks present-root candidates: infixes first, then root length.
func score(s parse.State) int {
	return 10*len(s.Infixes()) + len([]rune(s.Root()))
}

// Agreement is the pronoun a form slot requires. A zero Set accepts
// either set.
type Agreement struct {
	Person int
	Set    affix.Set
}

// Accepts reports whether the pronoun of s satisfies the agreement.
func (a Agreement) Accepts(s parse.State) bool {
	p, ok := s.Pronoun()
	if !ok {
		return false
	}
	if p.Person.Grammatical() != a.Person {
		return false
	}
	return a.Set == "" || p.Set == a.Set
}
