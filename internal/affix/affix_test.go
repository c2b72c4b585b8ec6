package affix

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptRemovePrefix(t *testing.T) {
	ga := Prefix("GA",
		Alt("Ꭶ", ""),
		Alt("Ꭸ", "", "Ꭱ", "Ꭲ"),
		Alt("Ꭼ", "Ꭰ"),
		Alt("ᎬᏩ", "Ꭰ", "Ꭴ", "ᎤᏩ"),
	)

	tests := []struct {
		word string
		want []string
	}{
		{"ᎦᏬᏂᎭ", []string{"ᏬᏂᎭ"}},
		{"ᎨᏯ", []string{"Ꮿ", "ᎡᏯ", "ᎢᏯ"}},
		// both Ꭼ and ᎬᏩ match; nothing is pruned
		{"ᎬᏩᎦ", []string{"ᎠᏩᎦ", "ᎠᎦ", "ᎤᎦ", "ᎤᏩᎦ"}},
		{"ᏬᏂᎭ", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got, err := AttemptRemove(ga, tt.word)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "AttemptRemove(GA, %q)", tt.word)
	}
}

func TestAttemptRemoveConsonantInitial(t *testing.T) {
	inf := Tense("INF", ConsonantInitial, "Ꮧ", "ᏗᏱ", "ᏗᎢ")

	got, err := AttemptRemove(inf, "ᎦᏬᏂᏍᏗᏱ")
	require.NoError(t, err)
	assert.Equal(t, []string{"ᎦᏬᏂᏍ"}, got)

	got, err = AttemptRemove(inf, "ᎦᏬᏂᏍᎦ")
	require.NoError(t, err)
	assert.Empty(t, got)

	// consonant-initial rules never inspect syllables
	got, err = AttemptRemove(inf, "abc")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAttemptRemoveVowelInitial(t *testing.T) {
	hbt := Tense("HBT", VowelInitial, "ᎣᎢ", "Ꭳ")
	exp := Tense("EXP", VowelInitial, "ᎥᎢ", "Ꭵ")

	tests := []struct {
		name string
		rule *Rule
		word string
		want []string
	}{
		{"fused go-i", hbt, "ᎦᏬᏂᏍᎪᎢ", []string{"ᎦᏬᏂᏍᎦ"}},
		{"bare vowel stem", hbt, "ᎣᎢ", []string{""}},
		{"short form", hbt, "ᎦᏬᏂᏍᎪ", []string{"ᎦᏬᏂᏍᎦ"}},
		{"s row keeps Ꮝ", exp, "ᎤᏬᏂᏒᎢ", []string{"ᎤᏬᏂᏍ"}},
		{"no match", hbt, "ᎦᏬᏂᎭ", nil},
		{"form longer than word", Tense("FUTURE_PROG", VowelInitial, "ᎡᏍᏗ"), "ᎦᏍ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AttemptRemove(tt.rule, tt.word)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttemptRemoveUnknownSyllable(t *testing.T) {
	hbt := Tense("HBT", VowelInitial, "ᎣᎢ", "Ꭳ")

	_, err := AttemptRemove(hbt, "ᎦᏬᏂᎭ.")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSyllable))
}

func TestNewTableRejectsMisplacedRules(t *testing.T) {
	_, err := NewTable([]*Rule{CliticSuffix("EM", "Ꮫ")}, nil)
	assert.True(t, errors.Is(err, ErrInvalidTable))

	_, err = NewTable(nil, []*Rule{Prefix("GA", Alt("Ꭶ", ""))})
	assert.True(t, errors.Is(err, ErrInvalidTable))

	_, err = NewTable([]*Rule{nil}, nil)
	assert.True(t, errors.Is(err, ErrInvalidTable))
}

func TestDefaultCatalog(t *testing.T) {
	table := Default()

	assert.Len(t, table.Prefixes(), 32)
	assert.Len(t, table.Suffixes(), 9)
	assert.Len(t, table.OfKind(Pronominal), 20)
	assert.Len(t, table.OfKind(TenseSuffix), 6)
	assert.Len(t, table.OfKind(Clitic), 3)

	for _, r := range table.OfKind(Pronominal) {
		g := r.Person.Grammatical()
		assert.Contains(t, []int{1, 2, 3}, g, "person of %s", r.Tag)
		assert.Contains(t, []Set{SetA, SetB}, r.Set, "set of %s", r.Tag)
	}

	for _, tag := range []string{TagExperiencedPast, TagHabitual, TagInfinitive} {
		r, ok := table.Lookup(tag)
		require.True(t, ok, tag)
		assert.Equal(t, TenseSuffix, r.Kind)
	}

	// suffix stage runs clitics before tense endings
	assert.Equal(t, "INT", table.Suffixes()[0].Tag)
	assert.Equal(t, "INF", table.Suffixes()[8].Tag)
}

func TestDefaultReturnsFreshRules(t *testing.T) {
	a := Default()
	b := Default()

	for i, r := range a.Prefixes() {
		assert.NotSame(t, r, b.Prefixes()[i], r.Tag)
	}
	for i, r := range a.Suffixes() {
		assert.NotSame(t, r, b.Suffixes()[i], r.Tag)
	}
}

func TestTableAccessorsShareRules(t *testing.T) {
	table := Default()

	first := table.Prefixes()
	first[0] = nil
	second := table.Prefixes()
	require.NotNil(t, second[0])
	assert.Same(t, second[0], table.Prefixes()[0])

	hbt, ok := table.Lookup(TagHabitual)
	require.True(t, ok)
	assert.Same(t, hbt, table.Suffixes()[7])
}

func TestTableBound(t *testing.T) {
	small := MustTable(
		[]*Rule{Prefix("GA", Alt("Ꭶ", ""), Alt("Ꭸ", "", "Ꭱ"))},
		[]*Rule{Tense("HBT", VowelInitial, "ᎣᎢ", "Ꭳ")},
	)
	assert.Equal(t, 4*3, small.Bound())
	assert.Equal(t, math.MaxInt, Default().Bound())
}

func TestPersonGrammatical(t *testing.T) {
	assert.Equal(t, 1, FirstDualExclusive.Grammatical())
	assert.Equal(t, 2, SecondPlural.Grammatical())
	assert.Equal(t, 3, ThirdSingular.Grammatical())
	assert.Equal(t, 0, Person("").Grammatical())
	assert.Equal(t, 0, Person("X").Grammatical())
}
