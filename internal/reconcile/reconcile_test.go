package reconcile

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/kanoheda/verbroots/internal/affix"
	"github.com/kanoheda/verbroots/internal/lexicon"
	"github.com/kanoheda/verbroots/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallTable is a cut-down catalog with one alternation per pronoun.
func smallTable() *affix.Table {
	return affix.MustTable(
		[]*affix.Rule{
			affix.Pronoun(affix.FirstSingular, affix.SetA, affix.Alt("Ꮵ", "")),
			affix.Pronoun(affix.SecondSingular, affix.SetA, affix.Alt("Ꭿ", "")),
			affix.Pronoun(affix.ThirdSingular, affix.SetA, affix.Alt("Ꭶ", "")),
			affix.Pronoun(affix.ThirdSingular, affix.SetB, affix.Alt("Ꭴ", "")),
			affix.Prefix("RFLX", affix.Alt("ᎠᏓ", "")),
		},
		[]*affix.Rule{
			affix.Tense(affix.TagExperiencedPast, affix.VowelInitial, "ᎥᎢ"),
			affix.Tense(affix.TagHabitual, affix.VowelInitial, "ᎣᎢ"),
			affix.Tense(affix.TagInfinitive, affix.ConsonantInitial, "Ꮧ"),
		},
	)
}

func speakVerb() lexicon.Verb {
	return lexicon.Verb{
		Index:                              "12",
		Definition:                         "speaking",
		ThirdPresentSyllabary:              "ᎦᏬᏂᎭ",
		FirstPresentSyllabary:              "ᏥᏬᏂᎭ",
		SecondCommandSyllabary:             "ᎯᏬᏂᎭ",
		ThirdIncompletiveHabitualSyllabary: "ᎦᏬᏂᏍᎪᎢ",
		ThirdCompletivePastSyllabary:       "ᎤᏬᏂᏒᎢ",
		ThirdInfinitiveSyllabary:           "ᎤᏬᏂᏍᏗ",
	}
}

func names(states []parse.State) []string {
	var out []string
	for _, s := range states {
		out = append(out, s.String())
	}
	return out
}

func TestEqualUpToHAlternation(t *testing.T) {
	tests := []struct {
		name        string
		third, frst string
		want        bool
	}{
		{"identical", "ᏬᏂᎭ", "ᏬᏂᎭ", true},
		{"empty", "", "", true},
		{"ha to a", "ᎭᏬᏂ", "ᎠᏬᏂ", true},
		{"he to a", "ᎾᎮ", "ᎾᎠ", true},
		{"hi to a", "ᏬᏂᎯ", "ᏬᏂᎠ", true},
		{"ho to a", "ᎰᎦ", "ᎠᎦ", true},
		{"hu to a", "ᎦᎱ", "ᎦᎠ", true},
		{"hv to a", "ᎲᏍ", "ᎠᏍ", true},
		{"a to he is one way", "ᎾᎠ", "ᎾᎮ", false},
		{"same vowel", "ᎦᏬᏂ", "ᎧᏬᏂ", true},
		{"different vowel", "ᎦᏬᏂ", "ᎨᏬᏂ", false},
		{"unequal length", "ᏬᏂᎭ", "ᏬᏂ", false},
		{"two positions", "ᎦᎦ", "ᎧᎧ", false},
		{"s has no vowel", "Ꮝ", "Ꭰ", false},
		{"outside syllabary", "ab", "ac", false},
		{"invalid bytes decoding alike", "\xff", "\xfe", false},
		{"invalid bytes inside a root", "Ꭶ\xffᏬ", "Ꭶ\xfeᏬ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EqualUpToHAlternation(tt.third, tt.frst))
		})
	}
}

func TestReconcileInvalidBytes(t *testing.T) {
	v := speakVerb()
	v.ThirdPresentSyllabary = "Ꭶ\xffᏬᏬᏬᏬ"
	v.FirstPresentSyllabary = "Ꮵ\xfeᏬᏬᏬᏬ"

	r := New(parse.NewExpander(affix.Default()))
	var err error
	require.NotPanics(t, func() { _, err = r.Reconcile(v) })
	assert.Error(t, err)
}

func TestAgreementAccepts(t *testing.T) {
	e := parse.NewExpander(smallTable())

	states, err := e.Parses("ᎤᏬᏂᏒᎢ")
	require.NoError(t, err)
	require.NotEmpty(t, states)

	for _, s := range states {
		assert.True(t, Agreements[lexicon.ThirdCompletive].Accepts(s), s.String())
		assert.True(t, Agreements[lexicon.ThirdPresent].Accepts(s), s.String())
		assert.False(t, Agreements[lexicon.FirstPresent].Accepts(s), s.String())
	}

	states, err = e.Parses("ᎦᏬᏂᎭ")
	require.NoError(t, err)
	for _, s := range states {
		assert.False(t, Agreements[lexicon.ThirdInfinitive].Accepts(s), s.String())
	}

	assert.False(t, Agreement{Person: 3}.Accepts(parse.New("ᎦᏬᏂᎭ")))
}

func TestReconcile(t *testing.T) {
	r := New(parse.NewExpander(smallTable()))

	res, err := r.Reconcile(speakVerb())
	require.NoError(t, err)

	assert.Equal(t, "12", res.VerbID)
	assert.Equal(t, "3SG.A-ᏬᏂᎭ-", res.Present.String())
	assert.Equal(t, []string{"3SG.A-ᏬᏂᎭ-"}, names(res.PresentRoots))
	assert.Equal(t, []string{"3SG.A-ᏬᏂᏍᎦ-HBT"}, names(res.Incompletive))
	assert.Equal(t, []string{"3SG.B-ᏬᏂᏍ-EXP"}, names(res.Completive))
	assert.Equal(t, []string{"3SG.B-ᏬᏂᏍ-INF"}, names(res.Infinitive))

	var got []string
	var slots []lexicon.Slot
	for _, c := range res.Candidates() {
		got = append(got, c.Parse.String())
		slots = append(slots, c.Slot)
	}
	assert.Equal(t, []string{"3SG.A-ᏬᏂᎭ-", "3SG.A-ᏬᏂᏍᎦ-HBT", "3SG.B-ᏬᏂᏍ-EXP", "3SG.B-ᏬᏂᏍ-INF"}, got)
	assert.Equal(t, []lexicon.Slot{lexicon.ThirdPresent, lexicon.ThirdHabitual, lexicon.ThirdCompletive, lexicon.ThirdInfinitive}, slots)
	assert.Equal(t, []string{"ᏬᏂᎭ", "ᏬᏂᏍᎦ", "ᏬᏂᏍ"}, res.Roots())
}

func TestReconcilePrefersInfixes(t *testing.T) {
	r := New(parse.NewExpander(smallTable()))

	v := speakVerb()
	v.ThirdPresentSyllabary = "ᎦᎠᏓᏬᏂᎭ"
	v.FirstPresentSyllabary = "ᏥᎠᏓᏬᏂᎭ"

	res, err := r.Reconcile(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"3SG.A-RFLX-ᏬᏂᎭ-", "3SG.A-ᎠᏓᏬᏂᎭ-"}, names(res.PresentRoots))
	assert.Equal(t, "3SG.A-RFLX-ᏬᏂᎭ-", res.Present.String())

	// the dependent forms carry no reflexive, so none match the winner
	assert.Empty(t, res.Incompletive)
	assert.Empty(t, res.Completive)
	assert.Empty(t, res.Infinitive)
	assert.Equal(t, []string{"ᏬᏂᎭ", "ᎠᏓᏬᏂᎭ"}, res.Roots())
}

func TestReconcileFailures(t *testing.T) {
	r := New(parse.NewExpander(smallTable()))

	tests := []struct {
		name    string
		modify  func(v *lexicon.Verb)
		cause   error
		problem string
	}{
		{
			name:    "completive with set A pronoun",
			modify:  func(v *lexicon.Verb) { v.ThirdCompletivePastSyllabary = "ᎦᏬᏂᏒᎢ" },
			cause:   ErrUnparseableForm,
			problem: "[third completive past]: could not parse ᎦᏬᏂᏒᎢ",
		},
		{
			name:    "glyph outside the syllabary",
			modify:  func(v *lexicon.Verb) { v.ThirdIncompletiveHabitualSyllabary = "ᎦᏬᏂᏍᎪ.Ꭲ" },
			cause:   ErrUnparseableForm,
			problem: "unknown syllable",
		},
		{
			name:    "empty form",
			modify:  func(v *lexicon.Verb) { v.SecondCommandSyllabary = "" },
			cause:   ErrUnparseableForm,
			problem: "[second command]",
		},
		{
			name:    "present roots disagree",
			modify:  func(v *lexicon.Verb) { v.FirstPresentSyllabary = "ᏥᎦᏛᎦ" },
			cause:   ErrNoConsistentRoot,
			problem: "ᏥᎦᏛᎦ",
		},
		{
			name:    "comma variants",
			modify:  func(v *lexicon.Verb) { v.FirstPresent = "tsiwoniha, tsiwonia" },
			cause:   ErrAmbiguousForm,
			problem: "[first present]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := speakVerb()
			tt.modify(&v)

			res, err := r.Reconcile(v)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, tt.cause), err.Error())

			var f *Failure
			require.True(t, errors.As(err, &f))
			assert.Equal(t, "12", f.VerbID)
			assert.Contains(t, f.Error(), tt.problem)
		})
	}
}

func TestReconcileCollectsEveryProblem(t *testing.T) {
	r := New(parse.NewExpander(smallTable()))

	v := speakVerb()
	v.ThirdCompletivePastSyllabary = "ᎦᏬᏂᏒᎢ"
	v.ThirdInfinitiveSyllabary = "ᎦᏬᏂᏍᏗ"

	_, err := r.Reconcile(v)
	var f *Failure
	require.True(t, errors.As(err, &f))
	assert.Len(t, f.Problems, 2)
}

func TestReconcileDeterministic(t *testing.T) {
	r := New(parse.NewExpander(affix.Default()))

	verbs := []lexicon.Verb{speakVerb(), {
		Index:                              "40",
		ThirdPresentSyllabary:              "ᎦᏬᏂᎭ",
		FirstPresentSyllabary:              "ᎦᏬᏂᎭ",
		SecondCommandSyllabary:             "ᎭᏬᏂᎯ",
		ThirdIncompletiveHabitualSyllabary: "ᎦᏬᏂᏍᎪᎢ",
		ThirdCompletivePastSyllabary:       "ᎤᏬᏂᏒᎢ",
		ThirdInfinitiveSyllabary:           "ᎤᏬᏂᏍᏗ",
	}}

	for _, v := range verbs {
		first, firstErr := r.Reconcile(v)
		for range 3 {
			again, err := r.Reconcile(v)
			if firstErr != nil {
				require.Error(t, err)
				assert.Equal(t, firstErr.Error(), err.Error())
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, first.Present.String(), again.Present.String())
			assert.Equal(t, first.Roots(), again.Roots())
			assert.Equal(t, len(first.Candidates()), len(again.Candidates()))
		}
	}
}

func TestCandidatesDeduplicate(t *testing.T) {
	e := parse.NewExpander(smallTable())
	states, err := e.Parses("ᎤᏬᏂᏒᎢ")
	require.NoError(t, err)

	res := &Result{PresentRoots: states, Completive: states}
	cands := res.Candidates()
	assert.Len(t, cands, len(parse.Unique(states)))
	for _, c := range cands {
		assert.Equal(t, lexicon.ThirdPresent, c.Slot)
	}
}
