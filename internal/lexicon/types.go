// Package lexicon holds the verb dictionary records the reconciler works
// on, the loader for the JSON dictionary and the root-keyed indexes built
// from reconciliation results.
package lexicon

import (
	"fmt"
	"strings"
)

// Sentence is the example sentence attached to a dictionary entry. The
// syllabary text keeps the *…* markers around the inflected example form.
type Sentence struct {
	Syllabary string `json:"syllabary"`
	Phonetics string `json:"phonetics"`
	English   string `json:"english"`
}

// Verb is one dictionary entry: six inflected forms in phonetic and
// syllabary spelling plus an example sentence.
type Verb struct {
	Index      string   `json:"index"`
	Source     string   `json:"source"`
	Definition string   `json:"definition"`
	Sentence   Sentence `json:"sentence"`

	ThirdPresent                       string `json:"third_present"`
	ThirdPresentSyllabary              string `json:"third_present_syllabary"`
	FirstPresent                       string `json:"first_present"`
	FirstPresentSyllabary              string `json:"first_present_syllabary"`
	SecondCommand                      string `json:"second_command"`
	SecondCommandSyllabary             string `json:"second_command_syllabary"`
	ThirdCompletivePast                string `json:"third_completive_past"`
	ThirdCompletivePastSyllabary       string `json:"third_completive_past_syllabary"`
	ThirdIncompletiveHabitual          string `json:"third_incompletive_habitual"`
	ThirdIncompletiveHabitualSyllabary string `json:"third_incompletive_habitual_syllabary"`
	ThirdInfinitive                    string `json:"third_infinitive"`
	ThirdInfinitiveSyllabary           string `json:"third_infinitive_syllabary"`
}

// Slot names one of the six inflected forms of a verb.
type Slot int

const (
	FirstPresent Slot = iota
	SecondCommand
	ThirdHabitual
	ThirdPresent
	ThirdCompletive
	ThirdInfinitive
)

// Slots lists every form slot in the order forms are parsed.
var Slots = []Slot{FirstPresent, SecondCommand, ThirdHabitual, ThirdPresent, ThirdCompletive, ThirdInfinitive}

func (s Slot) String() string {
	switch s {
	case FirstPresent:
		return "first present"
	case SecondCommand:
		return "second command"
	case ThirdHabitual:
		return "third habitual"
	case ThirdPresent:
		return "third present"
	case ThirdCompletive:
		return "third completive past"
	case ThirdInfinitive:
		return "third infinitive"
	default:
		return fmt.Sprintf("Slot(%d)", int(s))
	}
}

// Key is the snake_case column name used in storage.
func (s Slot) Key() string {
	return strings.ReplaceAll(s.String(), " ", "_")
}

// Form returns the syllabary spelling of the form in slot s.
func (v Verb) Form(s Slot) string {
	switch s {
	case FirstPresent:
		return v.FirstPresentSyllabary
	case SecondCommand:
		return v.SecondCommandSyllabary
	case ThirdHabitual:
		return v.ThirdIncompletiveHabitualSyllabary
	case ThirdPresent:
		return v.ThirdPresentSyllabary
	case ThirdCompletive:
		return v.ThirdCompletivePastSyllabary
	case ThirdInfinitive:
		return v.ThirdInfinitiveSyllabary
	}
	return ""
}

// HasVariants reports whether the first-present or second-command entry
// lists more than one spelling separated by commas.
func (v Verb) HasVariants() bool {
	for _, f := range []string{v.FirstPresent, v.FirstPresentSyllabary, v.SecondCommand, v.SecondCommandSyllabary} {
		if strings.Contains(f, ",") {
			return true
		}
	}
	return false
}

// Label is a short human-readable name for log lines and reports.
func (v Verb) Label() string {
	return v.ThirdPresentSyllabary + " / " + v.Definition
}
