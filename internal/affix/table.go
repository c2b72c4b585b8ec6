package affix

import (
	"math"
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrInvalidTable is returned by NewTable when a rule is listed in the
// wrong stage.
var ErrInvalidTable = errors.New("invalid affix table")

// Table is an ordered rule catalog. Prefix rules are applied first in
// order, then suffix rules in order; the order decides which derivations
// are reachable.
//
// The accessors return the table's own *Rule values: parses record rules
// by pointer and infixes are compared by identity. Callers must treat
// those rules as read-only. A table shared between goroutines is safe as
// long as nobody modifies its rules.
type Table struct {
	prefixes []*Rule
	suffixes []*Rule
}

// NewTable checks that every prefix rule is a prefix kind and every
// suffix rule a suffix kind, and copies both lists.
func NewTable(prefixes, suffixes []*Rule) (*Table, error) {
	for _, r := range prefixes {
		if r == nil || !r.Kind.IsPrefix() {
			return nil, errors.Wrapf(ErrInvalidTable, "%v is not a prefix rule", r)
		}
	}
	for _, r := range suffixes {
		if r == nil || r.Kind.IsPrefix() {
			return nil, errors.Wrapf(ErrInvalidTable, "%v is not a suffix rule", r)
		}
	}
	return &Table{
		prefixes: slices.Clone(prefixes),
		suffixes: slices.Clone(suffixes),
	}, nil
}

// MustTable is NewTable for static catalogs.
func MustTable(prefixes, suffixes []*Rule) *Table {
	t, err := NewTable(prefixes, suffixes)
	if err != nil {
		panic(err)
	}
	return t
}

// Prefixes returns the prefix rules in application order. The slice is a
// copy; the rules are shared.
func (t *Table) Prefixes() []*Rule {
	return slices.Clone(t.prefixes)
}

// Suffixes returns the suffix rules in application order. The slice is a
// copy; the rules are shared.
func (t *Table) Suffixes() []*Rule {
	return slices.Clone(t.suffixes)
}

// Lookup returns the first rule carrying tag.
func (t *Table) Lookup(tag string) (*Rule, bool) {
	for _, r := range t.prefixes {
		if r.Tag == tag {
			return r, true
		}
	}
	for _, r := range t.suffixes {
		if r.Tag == tag {
			return r, true
		}
	}
	return nil, false
}

// OfKind returns every rule of kind k in application order.
func (t *Table) OfKind(k Kind) []*Rule {
	var out []*Rule
	for _, r := range slices.Concat(t.prefixes, t.suffixes) {
		if r.Kind == k {
			out = append(out, r)
		}
	}
	return out
}

// Bound is the product of (1 + branching) over every rule: an upper limit
// on the number of parses a single word can expand to. It saturates at
// math.MaxInt.
func (t *Table) Bound() int {
	n := 1
	for _, r := range slices.Concat(t.prefixes, t.suffixes) {
		f := 1 + r.Branching()
		if n > math.MaxInt/f {
			return math.MaxInt
		}
		n *= f
	}
	return n
}
