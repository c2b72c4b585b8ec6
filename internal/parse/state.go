// Package parse expands a surface verb form into every segmentation the
// affix catalog allows and filters those segmentations by well-formedness.
package parse

import (
	"slices"
	"strings"

	"github.com/kanoheda/verbroots/internal/affix"
)

// State is one segmentation: prefixes outermost first, the remaining root,
// suffixes nearest the root first. A State is never modified after it is
// built; applying a rule produces a new State.
type State struct {
	prefixes []*affix.Rule
	root     string
	suffixes []*affix.Rule
}

// New returns the identity segmentation of word.
func New(word string) State {
	return State{root: word}
}

// Root returns the working root.
func (s State) Root() string { return s.root }

// Prefixes returns a copy of the applied prefix rules.
func (s State) Prefixes() []*affix.Rule { return slices.Clone(s.prefixes) }

// Suffixes returns a copy of the applied suffix rules.
func (s State) Suffixes() []*affix.Rule { return slices.Clone(s.suffixes) }

// withPrefix records r as the innermost prefix so far.
func (s State) withPrefix(r *affix.Rule, root string) State {
	return State{
		prefixes: append(slices.Clone(s.prefixes), r),
		root:     root,
		suffixes: s.suffixes,
	}
}

// withSuffix records r as the suffix nearest the root.
func (s State) withSuffix(r *affix.Rule, root string) State {
	return State{
		prefixes: s.prefixes,
		root:     root,
		suffixes: append([]*affix.Rule{r}, s.suffixes...),
	}
}

// Pronoun returns the first pronominal prefix, if any.
func (s State) Pronoun() (*affix.Rule, bool) {
	for _, p := range s.prefixes {
		if p.Kind == affix.Pronominal {
			return p, true
		}
	}
	return nil, false
}

// Infixes returns the prefixes that follow the pronominal prefix, or nil
// when there is none.
func (s State) Infixes() []*affix.Rule {
	for i, p := range s.prefixes {
		if p.Kind == affix.Pronominal {
			return slices.Clone(s.prefixes[i+1:])
		}
	}
	return nil
}

// HasSuffix reports whether a suffix tagged tag was applied.
func (s State) HasSuffix(tag string) bool {
	return slices.ContainsFunc(s.suffixes, func(r *affix.Rule) bool {
		return r.Tag == tag
	})
}

// String renders the segmentation as "P1-P2-root-S1", which is also its
// identity for de-duplication.
func (s State) String() string {
	var b strings.Builder
	for i, p := range s.prefixes {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(p.Tag)
	}
	b.WriteByte('-')
	b.WriteString(s.root)
	b.WriteByte('-')
	for i, r := range s.suffixes {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(r.Tag)
	}
	return b.String()
}

// Unique drops repeated segmentations, keeping the first of each.
func Unique(states []State) []State {
	seen := make(map[string]bool, len(states))
	var out []State
	for _, s := range states {
		k := s.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}
