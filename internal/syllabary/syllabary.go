// Package syllabary describes the Cherokee syllabary (U+13A0–U+13F5) as
// consonant/vowel pairs so affix rules can reason about the vowel of a
// final syllable without converting to a romanised spelling.
package syllabary

// Vowel glyphs, one per column of the syllabary.
const (
	A = 'Ꭰ'
	E = 'Ꭱ'
	I = 'Ꭲ'
	O = 'Ꭳ'
	U = 'Ꭴ'
	V = 'Ꭵ'
)

// S is the only consonant-only glyph in the syllabary.
const S = 'Ꮝ'

// Syllable is the decomposition of one syllabary glyph.
type Syllable struct {
	// Consonant is the romanised onset ("" for the vowel-only glyphs).
	Consonant string
	// Vowel is the vowel-column glyph, or 0 for Ꮝ.
	Vowel rune
}

// rows lists each consonant row in a-e-i-o-u-v order. A zero entry marks
// a cell the syllabary does not have.
var rows = []struct {
	consonant string
	glyphs    [6]rune
}{
	{"", [6]rune{'Ꭰ', 'Ꭱ', 'Ꭲ', 'Ꭳ', 'Ꭴ', 'Ꭵ'}},
	{"g", [6]rune{'Ꭶ', 'Ꭸ', 'Ꭹ', 'Ꭺ', 'Ꭻ', 'Ꭼ'}},
	{"k", [6]rune{'Ꭷ', 0, 0, 0, 0, 0}},
	{"h", [6]rune{'Ꭽ', 'Ꭾ', 'Ꭿ', 'Ꮀ', 'Ꮁ', 'Ꮂ'}},
	{"l", [6]rune{'Ꮃ', 'Ꮄ', 'Ꮅ', 'Ꮆ', 'Ꮇ', 'Ꮈ'}},
	{"m", [6]rune{'Ꮉ', 'Ꮊ', 'Ꮋ', 'Ꮌ', 'Ꮍ', 'Ᏽ'}},
	{"n", [6]rune{'Ꮎ', 'Ꮑ', 'Ꮒ', 'Ꮓ', 'Ꮔ', 'Ꮕ'}},
	{"hn", [6]rune{'Ꮏ', 0, 0, 0, 0, 0}},
	{"nh", [6]rune{'Ꮐ', 0, 0, 0, 0, 0}},
	{"qu", [6]rune{'Ꮖ', 'Ꮗ', 'Ꮘ', 'Ꮙ', 'Ꮚ', 'Ꮛ'}},
	{"s", [6]rune{'Ꮜ', 'Ꮞ', 'Ꮟ', 'Ꮠ', 'Ꮡ', 'Ꮢ'}},
	{"d", [6]rune{'Ꮣ', 'Ꮥ', 'Ꮧ', 'Ꮩ', 'Ꮪ', 'Ꮫ'}},
	{"t", [6]rune{'Ꮤ', 'Ꮦ', 'Ꮨ', 0, 0, 0}},
	{"dl", [6]rune{'Ꮬ', 0, 0, 0, 0, 0}},
	{"tl", [6]rune{'Ꮭ', 'Ꮮ', 'Ꮯ', 'Ꮰ', 'Ꮱ', 'Ꮲ'}},
	{"ts", [6]rune{'Ꮳ', 'Ꮴ', 'Ꮵ', 'Ꮶ', 'Ꮷ', 'Ꮸ'}},
	{"w", [6]rune{'Ꮹ', 'Ꮺ', 'Ꮻ', 'Ꮼ', 'Ꮽ', 'Ꮾ'}},
	{"y", [6]rune{'Ꮿ', 'Ᏸ', 'Ᏹ', 'Ᏺ', 'Ᏻ', 'Ᏼ'}},
}

var vowels = [6]rune{A, E, I, O, U, V}

var (
	table       = make(map[rune]Syllable)
	placeholder = make(map[string]string)
)

func init() {
	for _, row := range rows {
		for col, g := range row.glyphs {
			if g == 0 {
				continue
			}
			table[g] = Syllable{Consonant: row.consonant, Vowel: vowels[col]}
		}
		if row.consonant != "" {
			placeholder[row.consonant] = string(row.glyphs[0])
		}
	}
	table[S] = Syllable{Consonant: "s"}
	placeholder["s"] = string(S)
	placeholder[""] = ""
}

// Lookup returns the decomposition of r. ok is false for runes outside
// the syllabary.
func Lookup(r rune) (Syllable, bool) {
	s, ok := table[r]
	return s, ok
}

// VowelOf returns the vowel-column glyph of r as a string, "" for Ꮝ.
func VowelOf(r rune) (string, bool) {
	s, ok := table[r]
	if !ok {
		return "", false
	}
	if s.Vowel == 0 {
		return "", true
	}
	return string(s.Vowel), true
}

// Placeholder returns the tone-neutral syllable that keeps the consonant
// of r once its vowel has been absorbed by a vowel-initial suffix: the
// a-column glyph of the same consonant, Ꮝ for the s row, and "" for the
// vowel-only glyphs.
func Placeholder(r rune) (string, bool) {
	s, ok := table[r]
	if !ok {
		return "", false
	}
	return placeholder[s.Consonant], true
}

// SameVowel reports whether a and b are both syllabary glyphs with the
// same vowel.
func SameVowel(a, b rune) bool {
	va, okA := VowelOf(a)
	vb, okB := VowelOf(b)
	return okA && okB && va == vb
}

// IsSyllabary reports whether every rune of s is a syllabary glyph.
func IsSyllabary(s string) bool {
	for _, r := range s {
		if _, ok := table[r]; !ok {
			return false
		}
	}
	return true
}
