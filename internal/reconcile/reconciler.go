// Package reconcile picks the root a verb's six inflected forms agree on.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kanoheda/verbroots/internal/affix"
	"github.com/kanoheda/verbroots/internal/lexicon"
	"github.com/kanoheda/verbroots/internal/parse"
)

var (
	// ErrUnparseableForm means a form has no valid parse with the pronoun
	// its slot requires.
	ErrUnparseableForm = errors.New("unparseable form")
	// ErrNoConsistentRoot means no third-present parse matches a
	// first-present parse.
	ErrNoConsistentRoot = errors.New("no consistent present root")
	// ErrAmbiguousForm means the entry lists comma-separated variants for
	// its first-present or second-command form.
	ErrAmbiguousForm = errors.New("ambiguous form")
)

// Failure records why a verb could not be reconciled. It unwraps to one
// of the sentinel errors above.
type Failure struct {
	VerbID   string
	Cause    error
	Problems []string
}

func (f *Failure) Error() string {
	if len(f.Problems) == 0 {
		return fmt.Sprintf("verb %s: %v", f.VerbID, f.Cause)
	}
	return fmt.Sprintf("verb %s: %v: %s", f.VerbID, f.Cause, strings.Join(f.Problems, "; "))
}

func (f *Failure) Unwrap() error { return f.Cause }

// Agreements lists the pronoun each form slot must carry.
var Agreements = map[lexicon.Slot]Agreement{
	lexicon.FirstPresent:    {Person: 1},
	lexicon.SecondCommand:   {Person: 2},
	lexicon.ThirdHabitual:   {Person: 3},
	lexicon.ThirdPresent:    {Person: 3},
	lexicon.ThirdCompletive: {Person: 3, Set: affix.SetB},
	lexicon.ThirdInfinitive: {Person: 3, Set: affix.SetB},
}

// Result holds the candidate parses of a reconciled verb.
type Result struct {
	VerbID string
	// Present is the selected present parse the dependent forms are
	// checked against.
	Present parse.State
	// PresentRoots are every third-present parse consistent with a
	// first-present parse, Present included.
	PresentRoots []parse.State
	Incompletive []parse.State
	Completive   []parse.State
	Infinitive   []parse.State
}

// Candidate is one surviving parse and the slot it came from.
type Candidate struct {
	Slot  lexicon.Slot
	Parse parse.State
}

// Candidates returns the union of every candidate set in the order
// present, incompletive, completive, infinitive. A parse appearing in
// several sets is reported once, under the first.
func (r *Result) Candidates() []Candidate {
	seen := make(map[string]bool)
	var out []Candidate
	add := func(slot lexicon.Slot, states []parse.State) {
		for _, s := range states {
			k := s.String()
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, Candidate{Slot: slot, Parse: s})
		}
	}
	add(lexicon.ThirdPresent, r.PresentRoots)
	add(lexicon.ThirdHabitual, r.Incompletive)
	add(lexicon.ThirdCompletive, r.Completive)
	add(lexicon.ThirdInfinitive, r.Infinitive)
	return out
}

// Roots returns the distinct candidate roots in candidate order.
func (r *Result) Roots() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range r.Candidates() {
		root := c.Parse.Root()
		if seen[root] {
			continue
		}
		seen[root] = true
		out = append(out, root)
	}
	return out
}

// Reconciler runs the parse expander over the forms of a verb. It keeps
// no state between calls and may be shared between goroutines.
type Reconciler struct {
	expander *parse.Expander
}

// New returns a Reconciler using e.
func New(e *parse.Expander) *Reconciler {
	return &Reconciler{expander: e}
}

// FormParses returns the valid parses of form that carry the pronoun the
// slot requires.
func (r *Reconciler) FormParses(slot lexicon.Slot, form string) ([]parse.State, error) {
	all, err := r.expander.Parses(form)
	if err != nil {
		return nil, err
	}
	return parse.Unique(parse.Filter(all, Agreements[slot].Accepts)), nil
}

// Reconcile parses all six forms of v and returns every root candidate
// they agree on. The error is always a *Failure.
func (r *Reconciler) Reconcile(v lexicon.Verb) (*Result, error) {
	if v.HasVariants() {
		return nil, &Failure{
			VerbID: v.Index,
			Cause:  ErrAmbiguousForm,
			Problems: []string{
				fmt.Sprintf("[%s]: %s", lexicon.FirstPresent, v.FirstPresentSyllabary),
				fmt.Sprintf("[%s]: %s", lexicon.SecondCommand, v.SecondCommandSyllabary),
			},
		}
	}

	forms := make(map[lexicon.Slot][]parse.State, len(lexicon.Slots))
	var problems []string
	for _, slot := range lexicon.Slots {
		form := v.Form(slot)
		parses, err := r.FormParses(slot, form)
		switch {
		case err != nil:
			problems = append(problems, fmt.Sprintf("[%s]: could not parse %s: %v", slot, form, err))
		case len(parses) == 0:
			problems = append(problems, fmt.Sprintf("[%s]: could not parse %s", slot, form))
		}
		forms[slot] = parses
	}
	if len(problems) > 0 {
		return nil, &Failure{VerbID: v.Index, Cause: ErrUnparseableForm, Problems: problems}
	}

	var present []parse.State
	for _, third := range forms[lexicon.ThirdPresent] {
		for _, first := range forms[lexicon.FirstPresent] {
			if EqualUpToHAlternation(third.Root(), first.Root()) && InfixesMatch(third, first) {
				present = append(present, third)
				break
			}
		}
	}
	if len(present) == 0 {
		return nil, &Failure{
			VerbID: v.Index,
			Cause:  ErrNoConsistentRoot,
			Problems: []string{
				fmt.Sprintf("[%s]: %s", lexicon.FirstPresent, v.FirstPresentSyllabary),
				fmt.Sprintf("[%s]: %s", lexicon.ThirdPresent, v.ThirdPresentSyllabary),
			},
		}
	}

	best := present[0]
	for _, s := range present[1:] {
		if score(s) > score(best) {
			best = s
		}
	}

	return &Result{
		VerbID:       v.Index,
		Present:      best,
		PresentRoots: present,
		Incompletive: dependent(forms[lexicon.ThirdHabitual], affix.TagHabitual, best),
		Completive:   dependent(forms[lexicon.ThirdCompletive], affix.TagExperiencedPast, best),
		Infinitive:   dependent(forms[lexicon.ThirdInfinitive], affix.TagInfinitive, best),
	}, nil
}

// dependent keeps the parses of a non-present form that carry tag, start
// with the first glyph of the present root and share its infixes.
func dependent(states []parse.State, tag string, present parse.State) []parse.State {
	var initial string
	for _, r := range present.Root() {
		initial = string(r)
		break
	}
	return parse.Filter(states, func(s parse.State) bool {
		return s.HasSuffix(tag) &&
			strings.HasPrefix(s.Root(), initial) &&
			InfixesMatch(s, present)
	})
}
