package lexicon

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"

	"github.com/cockroachdb/errors"
)

// RootIndex maps a root string to the ids of the verbs reconciled to it.
// Roots and ids keep the order they were first added in.
type RootIndex struct {
	roots []string
	ids   map[string][]string
}

// NewRootIndex returns an empty index.
func NewRootIndex() *RootIndex {
	return &RootIndex{ids: make(map[string][]string)}
}

// Add records id under root. Adding the same pair twice is a no-op.
func (x *RootIndex) Add(root, id string) {
	ids, ok := x.ids[root]
	if !ok {
		x.roots = append(x.roots, root)
	}
	if slices.Contains(ids, id) {
		return
	}
	x.ids[root] = append(ids, id)
}

// Has reports whether root is indexed.
func (x *RootIndex) Has(root string) bool {
	_, ok := x.ids[root]
	return ok
}

// IDs returns the verb ids recorded under root.
func (x *RootIndex) IDs(root string) []string {
	return slices.Clone(x.ids[root])
}

// Contains reports whether id is recorded under root.
func (x *RootIndex) Contains(root, id string) bool {
	return slices.Contains(x.ids[root], id)
}

// Roots returns every indexed root in insertion order.
func (x *RootIndex) Roots() []string {
	return slices.Clone(x.roots)
}

// Len returns the number of roots.
func (x *RootIndex) Len() int { return len(x.roots) }

// MarshalJSON writes the index as a JSON object in insertion order.
func (x *RootIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, root := range x.roots {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(root)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(x.ids[root])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an index written by MarshalJSON. Roots are ordered
// lexically because JSON objects carry no order.
func (x *RootIndex) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decode root index")
	}
	*x = *NewRootIndex()
	roots := make([]string, 0, len(raw))
	for root := range raw {
		roots = append(roots, root)
	}
	slices.Sort(roots)
	for _, root := range roots {
		for _, id := range raw[root] {
			x.Add(root, id)
		}
	}
	return nil
}

// CountsByID credits every verb listed under a root with that root's
// count. Roots missing from the index are ignored.
func CountsByID(counts map[string]int, index *RootIndex) map[string]int {
	out := make(map[string]int)
	for root, n := range counts {
		for _, id := range index.ids[root] {
			out[id] += n
		}
	}
	return out
}

// Ranked is one row of a ranking.
type Ranked struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// Rank orders counts by descending count, ties by id.
func Rank(counts map[string]int) []Ranked {
	out := make([]Ranked, 0, len(counts))
	for id, n := range counts {
		out = append(out, Ranked{ID: id, Count: n})
	}
	slices.SortFunc(out, func(a, b Ranked) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return compareIDs(a.ID, b.ID)
	})
	return out
}
