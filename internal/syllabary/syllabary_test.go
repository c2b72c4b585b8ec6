package syllabary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVowelOf(t *testing.T) {
	tests := []struct {
		in     rune
		want   string
		wantOk bool
	}{
		{'Ꭰ', "Ꭰ", true},
		{'Ꭺ', "Ꭳ", true},
		{'Ꮢ', "Ꭵ", true},
		{'Ꮏ', "Ꭰ", true},
		{'Ꮨ', "Ꭲ", true},
		{'Ᏽ', "Ꭵ", true},
		{'Ꮝ', "", true},
		{'a', "", false},
		{'.', "", false},
	}

	for _, tt := range tests {
		got, ok := VowelOf(tt.in)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("VowelOf(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestPlaceholder(t *testing.T) {
	tests := []struct {
		in   rune
		want string
	}{
		{'Ꭳ', ""},
		{'Ꭺ', "Ꭶ"},
		{'Ꮢ', "Ꮝ"},
		{'Ꮝ', "Ꮝ"},
		{'Ꮅ', "Ꮃ"},
		{'Ꮨ', "Ꮤ"},
		{'Ꮧ', "Ꮣ"},
		{'Ᏻ', "Ꮿ"},
	}

	for _, tt := range tests {
		got, ok := Placeholder(tt.in)
		assert.True(t, ok, "Placeholder(%q) ok", tt.in)
		assert.Equal(t, tt.want, got, "Placeholder(%q)", tt.in)
	}

	_, ok := Placeholder('x')
	assert.False(t, ok)
}

func TestSameVowel(t *testing.T) {
	assert.True(t, SameVowel('Ꭽ', 'Ꭰ'))
	assert.True(t, SameVowel('Ꮒ', 'Ꮵ'))
	assert.False(t, SameVowel('Ꭾ', 'Ꭰ'))
	assert.False(t, SameVowel('Ꭰ', 'a'))
}

func TestIsSyllabary(t *testing.T) {
	assert.True(t, IsSyllabary("ᎦᏬᏂᎭ"))
	assert.True(t, IsSyllabary(""))
	assert.False(t, IsSyllabary("ᎦᏬᏂᎭ."))
}

func TestTableCoversBlock(t *testing.T) {
	for r := rune(0x13A0); r <= 0x13F5; r++ {
		if _, ok := Lookup(r); !ok {
			t.Errorf("Lookup(%U) missing", r)
		}
	}
}
