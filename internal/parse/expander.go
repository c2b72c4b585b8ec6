package parse

import (
	"github.com/cockroachdb/errors"
	"github.com/kanoheda/verbroots/internal/affix"
)

// Expander applies a rule table to surface words. It holds no mutable
// state and may be shared between goroutines.
type Expander struct {
	table *affix.Table
}

// NewExpander returns an Expander over table.
func NewExpander(table *affix.Table) *Expander {
	return &Expander{table: table}
}

// Table returns the rule table the expander was built with.
func (e *Expander) Table() *affix.Table {
	return e.table
}

// Expand returns every segmentation of word reachable by trying each prefix
// rule in order and then each suffix rule in order. After every rule the
// working set keeps each existing member and adds the members the rule
// could be stripped from, so the identity segmentation is always present.
// Within one member, rule applications come before the unchanged member.
func (e *Expander) Expand(word string) ([]State, error) {
	work := []State{New(word)}

	for _, r := range e.table.Prefixes() {
		next := make([]State, 0, len(work))
		for _, s := range work {
			roots, err := affix.AttemptRemove(r, s.root)
			if err != nil {
				return nil, errors.Wrapf(err, "prefix %s", r.Tag)
			}
			for _, root := range roots {
				next = append(next, s.withPrefix(r, root))
			}
			next = append(next, s)
		}
		work = next
	}

	for _, r := range e.table.Suffixes() {
		next := make([]State, 0, len(work))
		for _, s := range work {
			roots, err := affix.AttemptRemove(r, s.root)
			if err != nil {
				return nil, errors.Wrapf(err, "suffix %s", r.Tag)
			}
			for _, root := range roots {
				next = append(next, s.withSuffix(r, root))
			}
			next = append(next, s)
		}
		work = next
	}

	return work, nil
}

// Parses returns the well-formed segmentations of word, in expansion order.
func (e *Expander) Parses(word string) ([]State, error) {
	all, err := e.Expand(word)
	if err != nil {
		return nil, err
	}
	return Filter(all, IsValid), nil
}

// Filter returns the states for which keep is true.
func Filter(states []State, keep func(State) bool) []State {
	var out []State
	for _, s := range states {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
