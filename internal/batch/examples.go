package batch

import (
	"github.com/kanoheda/verbroots/internal/lexicon"
	"github.com/kanoheda/verbroots/internal/parse"
)

// ExampleCheck is the outcome of looking up one marked form of a verb's
// example sentence.
type ExampleCheck struct {
	VerbID string
	Form   string
	// Match is the first valid parse whose root is indexed under VerbID.
	Match *parse.State
	// Parses holds every valid parse of Form, for reporting misses.
	Parses []parse.State
	Err    error
}

// Matched reports whether the form was traced back to its verb.
func (c ExampleCheck) Matched() bool { return c.Match != nil }

// CheckExamples parses the *marked* forms in the example sentence of
// every reconciled verb and looks for a parse whose root the index maps
// back to that verb. Verbs with variants or problems are skipped.
func (r *Runner) CheckExamples(d *lexicon.Dictionary, rep *Report) []ExampleCheck {
	var out []ExampleCheck
	for _, v := range d.Verbs() {
		if v.HasVariants() || rep.Failed(v.Index) {
			continue
		}
		for _, form := range lexicon.ExampleForms(v.Sentence.Syllabary) {
			check := ExampleCheck{VerbID: v.Index, Form: form}
			parses, err := r.expander.Parses(form)
			if err != nil {
				check.Err = err
				out = append(out, check)
				continue
			}
			check.Parses = parses
			for _, p := range parses {
				if rep.Index.Contains(p.Root(), v.Index) {
					check.Match = &p
					break
				}
			}
			out = append(out, check)
		}
	}
	return out
}
