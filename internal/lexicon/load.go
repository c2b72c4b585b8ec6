package lexicon

import (
	"cmp"
	"encoding/json"
	"io"
	"maps"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/unicode/norm"
)

// Dictionary is a loaded verb dictionary keyed by entry index.
type Dictionary struct {
	verbs map[string]Verb
	ids   []string
}

// NewDictionary builds a dictionary from verbs, keyed by each entry's
// Index. An entry without one takes its map key as its index. When two
// entries share an index the one under the lower map key wins. Numeric
// indices sort numerically and before any others, which sort lexically.
func NewDictionary(verbs map[string]Verb) *Dictionary {
	keys := slices.SortedFunc(maps.Keys(verbs), compareIDs)

	d := &Dictionary{verbs: make(map[string]Verb, len(verbs))}
	for _, key := range keys {
		v := verbs[key]
		if v.Index == "" {
			v.Index = key
		}
		if _, dup := d.verbs[v.Index]; dup {
			continue
		}
		d.verbs[v.Index] = v
		d.ids = append(d.ids, v.Index)
	}
	slices.SortFunc(d.ids, compareIDs)
	return d
}

func compareIDs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.ids) }

// IDs returns the entry ids in order.
func (d *Dictionary) IDs() []string { return slices.Clone(d.ids) }

// Get returns the entry with the given index.
func (d *Dictionary) Get(id string) (Verb, bool) {
	v, ok := d.verbs[id]
	return v, ok
}

// Verbs returns every entry in id order.
func (d *Dictionary) Verbs() []Verb {
	out := make([]Verb, 0, len(d.ids))
	for _, id := range d.ids {
		out = append(out, d.verbs[id])
	}
	return out
}

// Sentences returns the cleaned example sentence of every entry in id
// order.
func (d *Dictionary) Sentences() []string {
	out := make([]string, 0, len(d.ids))
	for _, id := range d.ids {
		out = append(out, CleanSentence(d.verbs[id].Sentence.Syllabary))
	}
	return out
}

// Load decodes a JSON dictionary object of entries. Every text
// field is normalised to NFC.
func Load(r io.Reader) (*Dictionary, error) {
	var raw map[string]Verb
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode dictionary")
	}
	for id, v := range raw {
		raw[id] = normalize(v)
	}
	return NewDictionary(raw), nil
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "open dictionary"),
			"set --dict or VERBROOTS_DICT to the verb dictionary JSON file")
	}
	defer f.Close()

	d, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return d, nil
}

func normalize(v Verb) Verb {
	for _, p := range []*string{
		&v.Index, &v.Source, &v.Definition,
		&v.ThirdPresent, &v.ThirdPresentSyllabary,
		&v.FirstPresent, &v.FirstPresentSyllabary,
		&v.SecondCommand, &v.SecondCommandSyllabary,
		&v.ThirdCompletivePast, &v.ThirdCompletivePastSyllabary,
		&v.ThirdIncompletiveHabitual, &v.ThirdIncompletiveHabitualSyllabary,
		&v.ThirdInfinitive, &v.ThirdInfinitiveSyllabary,
		&v.Sentence.Syllabary, &v.Sentence.Phonetics, &v.Sentence.English,
	} {
		*p = strings.TrimSpace(norm.NFC.String(*p))
	}
	return v
}

var sentencePunctuation = strings.NewReplacer(
	"*", "", "?", "", ".", "", "!", "", ",", "", `"`, "",
)

// CleanSentence strips the example markers and punctuation from a
// sentence so it can be split into words.
func CleanSentence(s string) string {
	return sentencePunctuation.Replace(s)
}

var exampleForm = regexp.MustCompile(`\*([^*]*)\*`)

// ExampleForms returns the forms marked *like this* in a sentence.
func ExampleForms(s string) []string {
	var out []string
	for _, m := range exampleForm.FindAllStringSubmatch(s, -1) {
		if f := strings.TrimSpace(m[1]); f != "" {
			out = append(out, sentencePunctuation.Replace(f))
		}
	}
	return out
}
