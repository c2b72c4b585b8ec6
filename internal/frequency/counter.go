// Package frequency counts how often known roots occur in running text.
package frequency

import (
	"strings"
	"unicode/utf8"

	"github.com/kanoheda/verbroots/internal/parse"
)

// ShortToken is the length in glyphs at or below which a token is not
// parsed at all.
const ShortToken = 3

// Known is a set of roots worth counting.
type Known interface {
	Has(root string) bool
}

// Set is a Known backed by a map.
type Set map[string]bool

// NewSet returns a Set holding roots.
func NewSet(roots ...string) Set {
	s := make(Set, len(roots))
	for _, r := range roots {
		s[r] = true
	}
	return s
}

// Has reports whether root is in the set.
func (s Set) Has(root string) bool { return s[root] }

// Counter tallies root occurrences using every segmentation of each
// token, valid or not.
type Counter struct {
	expander *parse.Expander
	// OnSkip, when set, is called for every token whose expansion failed.
	OnSkip func(token string, err error)
}

// New returns a Counter using e.
func New(e *parse.Expander) *Counter {
	return &Counter{expander: e}
}

// CountSentence counts the known roots in one sentence. Every parse of a
// token whose root is longer than one glyph and known adds one.
func (c *Counter) CountSentence(known Known, sentence string) map[string]int {
	counts := make(map[string]int)
	c.add(counts, known, sentence)
	return counts
}

// Count sums CountSentence over sentences.
func (c *Counter) Count(known Known, sentences []string) map[string]int {
	counts := make(map[string]int)
	for _, s := range sentences {
		c.add(counts, known, s)
	}
	return counts
}

func (c *Counter) add(counts map[string]int, known Known, sentence string) {
	for _, token := range strings.Fields(sentence) {
		if utf8.RuneCountInString(token) <= ShortToken {
			continue
		}
		states, err := c.expander.Expand(token)
		if err != nil {
			if c.OnSkip != nil {
				c.OnSkip(token, err)
			}
			continue
		}
		for _, s := range states {
			root := s.Root()
			if utf8.RuneCountInString(root) > 1 && known.Has(root) {
				counts[root]++
			}
		}
	}
}
