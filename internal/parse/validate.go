package parse

import "github.com/kanoheda/verbroots/internal/affix"

// IsValid reports whether s carries exactly one pronominal prefix and at
// most one tense ending.
func IsValid(s State) bool {
	pronouns := 0
	for _, p := range s.prefixes {
		if p.Kind == affix.Pronominal {
			pronouns++
		}
	}
	if pronouns != 1 {
		return false
	}

	tenses := 0
	for _, r := range s.suffixes {
		if r.Kind == affix.TenseSuffix {
			tenses++
		}
	}
	return tenses <= 1
}
