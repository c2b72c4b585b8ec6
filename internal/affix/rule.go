// Package affix holds the catalog of Cherokee verb affixes and the
// alternation logic used to strip one affix from a surface string.
package affix

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kanoheda/verbroots/internal/syllabary"
)

// ErrUnknownSyllable is returned when a vowel-initial suffix has to inspect
// a rune that is not part of the syllabary.
var ErrUnknownSyllable = errors.New("unknown syllable")

// Kind discriminates the rule variants.
type Kind int

const (
	// Positional prefixes (YI, TSI, DA_FUTURE, ...) and the infixes that
	// follow the pronoun (RFLX, MDL).
	Positional Kind = iota
	// Pronominal prefixes mark person and agreement set.
	Pronominal
	// TenseSuffix is one of the closed group of six tense endings.
	TenseSuffix
	// Clitic suffixes (INT, EM, JUST) sit outside the tense ending.
	Clitic
)

func (k Kind) String() string {
	switch k {
	case Positional:
		return "positional"
	case Pronominal:
		return "pronominal"
	case TenseSuffix:
		return "tense"
	case Clitic:
		return "clitic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsPrefix reports whether rules of this kind strip from the start of a word.
func (k Kind) IsPrefix() bool {
	return k == Positional || k == Pronominal
}

// Person is person/number/inclusivity, e.g. "1SG", "1DL_IN", "3PL".
type Person string

const (
	FirstSingular        Person = "1SG"
	FirstDualInclusive   Person = "1DL_IN"
	FirstDualExclusive   Person = "1DL_EX"
	FirstPluralInclusive Person = "1PL_IN"
	FirstPluralExclusive Person = "1PL_EX"
	SecondSingular       Person = "2SG"
	SecondDual           Person = "2DL"
	SecondPlural         Person = "2PL"
	ThirdSingular        Person = "3SG"
	ThirdPlural          Person = "3PL"
)

// Grammatical returns 1, 2 or 3, or 0 when the person is malformed.
func (p Person) Grammatical() int {
	if p == "" {
		return 0
	}
	switch p[0] {
	case '1':
		return 1
	case '2':
		return 2
	case '3':
		return 3
	}
	return 0
}

// Set is the pronoun agreement set.
type Set string

const (
	SetA Set = "A"
	SetB Set = "B"
)

// Onset says how a suffix meets the preceding syllable.
type Onset int

const (
	// ConsonantInitial suffixes are removed as an exact trailing substring.
	ConsonantInitial Onset = iota
	// VowelInitial suffixes fuse with the final consonant of the stem, so
	// removing them has to restore a placeholder syllable.
	VowelInitial
)

// Alternation maps one surface spelling of a prefix to the underlying
// strings it can stand for. "" is a valid underlying string.
type Alternation struct {
	Surface    string
	Underlying []string
}

// Alt builds an Alternation.
func Alt(surface string, underlying ...string) Alternation {
	return Alternation{Surface: surface, Underlying: underlying}
}

// Rule is a single prefix or suffix. Which fields are meaningful depends
// on Kind: Person and Set only for Pronominal, Alternations only for
// prefixes, Forms and Onset only for suffixes.
type Rule struct {
	Tag          string
	Kind         Kind
	Person       Person
	Set          Set
	Alternations []Alternation
	Forms        []string
	Onset        Onset
}

// Prefix builds a positional prefix rule.
func Prefix(tag string, alts ...Alternation) *Rule {
	return &Rule{Tag: tag, Kind: Positional, Alternations: alts}
}

// Pronoun builds a pronominal prefix rule tagged "<person>.<set>".
func Pronoun(person Person, set Set, alts ...Alternation) *Rule {
	return &Rule{
		Tag:          string(person) + "." + string(set),
		Kind:         Pronominal,
		Person:       person,
		Set:          set,
		Alternations: alts,
	}
}

// Tense builds a tense-ending suffix rule.
func Tense(tag string, onset Onset, forms ...string) *Rule {
	return &Rule{Tag: tag, Kind: TenseSuffix, Onset: onset, Forms: forms}
}

// CliticSuffix builds a consonant-initial clitic rule.
func CliticSuffix(tag string, forms ...string) *Rule {
	return &Rule{Tag: tag, Kind: Clitic, Onset: ConsonantInitial, Forms: forms}
}

func (r *Rule) String() string {
	return r.Tag
}

// Branching returns the maximum number of candidates AttemptRemove can
// yield for a single word.
func (r *Rule) Branching() int {
	if r.Kind.IsPrefix() {
		n := 0
		for _, a := range r.Alternations {
			n += len(a.Underlying)
		}
		return n
	}
	return len(r.Forms)
}

// AttemptRemove returns every string word can reduce to once r is stripped.
// Every matching alternation contributes; nothing is pruned. An empty result
// means the rule does not apply.
func AttemptRemove(r *Rule, word string) ([]string, error) {
	switch {
	case r.Kind.IsPrefix():
		return removePrefix(r.Alternations, word), nil
	case r.Onset == VowelInitial:
		return removeVowelInitial(r.Forms, word)
	default:
		return removeConsonantInitial(r.Forms, word), nil
	}
}

func removePrefix(alts []Alternation, word string) []string {
	var out []string
	for _, a := range alts {
		if !strings.HasPrefix(word, a.Surface) {
			continue
		}
		rest := word[len(a.Surface):]
		for _, u := range a.Underlying {
			out = append(out, u+rest)
		}
	}
	return out
}

func removeConsonantInitial(forms []string, word string) []string {
	var out []string
	for _, f := range forms {
		if strings.HasSuffix(word, f) {
			out = append(out, word[:len(word)-len(f)])
		}
	}
	return out
}

// removeVowelInitial strips forms whose first glyph is a bare vowel. The
// final syllable of the stem carries that vowel in the surface spelling
// (Ꭺ + Ꭲ for -ᎣᎢ), so the match compares the vowel of that syllable plus
// the remaining glyphs, and the removed span is replaced by the consonant's
// placeholder syllable.
func removeVowelInitial(forms []string, word string) ([]string, error) {
	runes := []rune(word)
	var out []string
	for _, f := range forms {
		n := len([]rune(f))
		if n == 0 || n > len(runes) {
			continue
		}
		at := len(runes) - n
		head := runes[at]
		vowel, ok := syllabary.VowelOf(head)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownSyllable, "%q in %q", head, word)
		}
		if vowel+string(runes[at+1:]) != f {
			continue
		}
		ph, _ := syllabary.Placeholder(head)
		out = append(out, string(runes[:at])+ph)
	}
	return out, nil
}
