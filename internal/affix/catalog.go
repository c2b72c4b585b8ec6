package affix

// Tags of the suffixes the reconciler looks for on dependent forms.
const (
	TagExperiencedPast = "EXP"
	TagHabitual        = "HBT"
	TagInfinitive      = "INF"
)

// Default returns the standard catalog in canonical order. Each call builds
// fresh rules, so callers never share mutable state.
func Default() *Table {
	// Positional prefixes that precede the pronoun. The alternation tables are
	// built so their surface keys do not overlap within a rule.
	yi := Prefix("YI",
		Alt("Ꮿ", "Ꭰ"),
		Alt("Ᏸ", "Ꭱ"),
		Alt("Ᏹ", "", "Ꭲ"),
		Alt("Ᏺ", "Ꭳ"),
		Alt("Ᏻ", "Ꭴ", ""), // Ᏻ before WI
		Alt("Ᏼ", "Ꭵ"),
	)

	tsi := Prefix("TSI",
		Alt("Ꮳ", "Ꭰ"),
		Alt("Ꮴ", "Ꭱ"),
		Alt("Ꮵ", "", "Ꭲ"),
		Alt("Ꮶ", "Ꭳ"),
		Alt("Ꮷ", "Ꭴ"),
		Alt("Ꮸ", "Ꭵ"),
	)

	wi := Prefix("WI",
		Alt("Ꮹ", "Ꭰ"),
		Alt("Ꮻ", "", "Ꭲ"),
		Alt("Ꮺ", "Ꭱ"),
		Alt("Ꮼ", "Ꭳ"),
		Alt("Ꮽ", "Ꭴ"),
		Alt("Ꮾ", "Ꭵ"),
	)

	ni := Prefix("NI",
		Alt("Ꮎ", "Ꭰ", "Ꭽ"),
		Alt("Ꮏ", "Ꭽ"),
		Alt("Ꮑ", "Ꭱ", "Ꭾ"),
		Alt("Ꮒ", "", "Ꭲ", "Ꭿ"),
		Alt("Ꮓ", "Ꭳ", "Ꮀ"),
		Alt("Ꮔ", "Ꭴ", "Ꮁ"),
		Alt("Ꮕ", "Ꭵ", "Ꮂ"),
	)

	ni2 := Prefix("NI2",
		Alt("ᎢᏯ", "Ꭰ"),
		Alt("ᎢᏰ", "Ꭱ"),
		Alt("Ꭲ", "", "Ꭲ"),
		Alt("ᎢᏲ", "Ꭳ"),
		Alt("ᎢᏳ", "Ꭴ"),
		Alt("ᎢᏴ", "Ꭵ"),
	)

	de := Prefix("DE_PLURAL",
		Alt("Ꮣ", "Ꭰ"),
		Alt("Ꮥ", "", "Ꭱ", "Ꭲ"),
		// do can hide Ꭲ/Ꭵ (again) or come from DA_FUTURE
		Alt("Ꮩ", "Ꭳ", "Ꭲ", "Ꭵ", ""),
		Alt("Ꮪ", "Ꭴ"),
		Alt("Ꮫ", "Ꭵ"),
	)

	// DE2 covers the di- spelling and the forms fused with a following h.
	de2 := Prefix("DE_PLURAL",
		Alt("Ꮧ", "Ꭰ", "Ꭲ", ""),
		Alt("Ꮴ", "Ꭱ"),
		Alt("Ꮶ", "Ꭳ"),
		Alt("Ꮷ", "Ꭴ"),
		Alt("Ꮤ", "Ꭽ"),
		Alt("Ꮦ", "Ꭾ"),
		Alt("Ꮨ", "Ꭿ"),
		Alt("Ꮩ", "Ꮀ"),
		Alt("Ꮪ", "Ꮁ"),
		Alt("Ꮫ", "Ꮂ"),
	)

	da := Prefix("DA_FUTURE",
		// da- before a consonant or Ꭲ, day- before other vowels
		Alt("Ꮣ", "", "Ꭲ"),
		Alt("ᏓᏲ", "Ꭳ"),
		Alt("ᏓᏰ", "Ꭱ"),
		Alt("ᏓᏳ", "Ꭴ"),
		// some speakers also use Ꮫ before a consonant
		Alt("Ꮫ", "Ꭵ", "Ꭰ", ""),
	)

	iAgain := Prefix("I_AGAIN",
		Alt("Ꭲ", ""),
		Alt("Ꭵ", ""),
	)

	ga := Prefix("GA",
		Alt("Ꭶ", ""),
		Alt("Ꭸ", "", "Ꭱ", "Ꭲ"),
		Alt("Ꭼ", "Ꭰ"),
		Alt("ᎬᏩ", "Ꭰ", "Ꭴ", "ᎤᏩ"),
	)

	// Set A pronouns.
	setA1SG := Pronoun(FirstSingular, SetA,
		Alt("Ꭶ", "Ꭰ"),
		Alt("Ꭸ", "Ꭱ"),
		Alt("Ꮵ", ""),
		Alt("Ꭺ", "Ꭳ"),
		Alt("Ꭻ", "Ꭴ"),
		Alt("Ꭼ", "Ꭵ"),
	)

	setA1DLIn := Pronoun(FirstDualInclusive, SetA,
		Alt("ᎢᎾ", "Ꭰ"),
		Alt("ᎢᏁ", "Ꭱ"),
		Alt("ᎢᏂ", ""),
		Alt("ᎢᏃ", "Ꭳ"),
		Alt("ᎢᏄ", "Ꭴ"),
		Alt("ᎢᏅ", "Ꭵ"),
	)

	setA1PLIn := Pronoun(FirstPluralInclusive, SetA,
		Alt("ᎢᏓ", "Ꭰ"),
		Alt("ᎢᏕ", "Ꭱ"),
		Alt("ᎢᏗ", ""),
		Alt("ᎢᏙ", "Ꭳ"),
		Alt("ᎢᏚ", "Ꭴ"),
		Alt("ᎢᏛ", "Ꭵ"),
	)

	setA1DLEx := Pronoun(FirstDualExclusive, SetA,
		Alt("ᎣᏍᏓ", "Ꭰ"),
		Alt("ᎣᏍᏕ", "Ꭱ"),
		Alt("ᎣᏍᏗ", ""),
		Alt("ᎣᏍᏙ", "Ꭳ"),
		Alt("ᎣᏍᏚ", "Ꭴ"),
		Alt("ᎣᏍᏛ", "Ꭵ"),
	)

	setA1PLEx := Pronoun(FirstPluralExclusive, SetA,
		Alt("ᎣᏣ", "Ꭰ"),
		Alt("ᎣᏤ", "Ꭱ"),
		Alt("ᎣᏥ", ""),
		Alt("ᎣᏦ", "Ꭳ"),
		Alt("ᎣᏧ", "Ꭴ"),
		Alt("ᎣᏨ", "Ꭵ"),
	)

	setA2SG := Pronoun(SecondSingular, SetA,
		Alt("Ꭽ", "Ꭰ"),
		Alt("Ꭾ", "Ꭱ"),
		Alt("Ꭿ", ""),
		Alt("Ꮀ", "Ꭳ"),
		Alt("Ꮁ", "Ꭴ"),
		Alt("Ꮂ", "Ꭵ"),
	)

	setA2DL := Pronoun(SecondDual, SetA,
		Alt("ᏍᏓ", "Ꭰ"),
		Alt("ᏍᏕ", "Ꭱ"),
		Alt("ᏍᏗ", ""),
		Alt("ᏍᏙ", "Ꭳ"),
		Alt("ᏍᏚ", "Ꭴ"),
		Alt("ᏍᏛ", "Ꭵ"),
	)

	setA2PL := Pronoun(SecondPlural, SetA,
		Alt("ᎢᏣ", "Ꭰ"),
		Alt("ᎢᏕ", "Ꭱ"),
		Alt("ᎢᏥ", ""),
		Alt("ᎢᏦ", "Ꭳ"),
		Alt("ᎢᏧ", "Ꭴ"),
		Alt("ᎢᏨ", "Ꭵ"),
	)

	setA3SG := Pronoun(ThirdSingular, SetA,
		Alt("Ꭰ", "", "Ꭰ"),
		Alt("Ꭶ", "", "Ꭰ"),
		Alt("Ꭸ", "Ꭱ"),
		Alt("Ꭺ", "Ꭳ"),
		Alt("Ꭻ", "Ꭴ"),
		Alt("Ꭼ", "Ꭵ"),
		Alt("Ꭵ", "Ꭵ"), // some eastern speakers
	)

	setA3PL := Pronoun(ThirdPlural, SetA,
		Alt("ᎠᏂ", ""),
		Alt("ᎠᎾ", "Ꭰ"),
		Alt("ᎠᏁ", "Ꭱ"),
		Alt("ᎠᏃ", "Ꭳ"),
		Alt("ᎠᏄ", "Ꭴ"),
		Alt("ᎠᏅ", "Ꭵ"),
	)

	// Set B pronouns.
	setB1SG := Pronoun(FirstSingular, SetB,
		Alt("ᎠᏆ", "Ꭰ"),
		Alt("ᎠᏩ", "Ꭰ"),
		Alt("ᎠᏇ", "Ꭱ"),
		Alt("ᎠᏪ", "Ꭱ"),
		Alt("ᎠᎩ", ""),
		Alt("ᎠᏉ", "Ꭳ"),
		Alt("ᎠᏬ", "Ꭳ"),
		Alt("ᎠᏋ", "Ꭵ"),
		Alt("ᎠᏮ", "Ꭵ"),
	)

	setB1DLEx := Pronoun(FirstDualExclusive, SetB,
		Alt("ᎣᎩᎾ", "Ꭰ"),
		Alt("ᎣᎩᏁ", "Ꭱ"),
		Alt("ᎣᎩᏂ", ""),
		Alt("ᎣᎩᏃ", "Ꭳ"),
		Alt("ᎣᎩᏄ", "Ꭴ"),
		Alt("ᎣᎩᏅ", "Ꭵ"),
	)

	setB1PLEx := Pronoun(FirstPluralExclusive, SetB,
		Alt("ᎣᎦ", "Ꭰ"),
		Alt("ᎣᎨ", "Ꭱ"),
		Alt("ᎣᎩ", ""),
		Alt("ᎣᎪ", "Ꭳ"),
		Alt("ᎣᎫ", "Ꭴ"),
		Alt("ᎣᎬ", "Ꭵ"),
	)

	setB1DLIn := Pronoun(FirstDualInclusive, SetB,
		Alt("ᎩᎾ", "Ꭰ"),
		Alt("ᎩᏁ", "Ꭱ"),
		Alt("ᎩᏂ", ""),
		Alt("ᎩᏃ", "Ꭳ"),
		Alt("ᎩᏄ", "Ꭴ"),
		Alt("ᎩᏅ", "Ꭵ"),
	)

	setB1PLIn := Pronoun(FirstPluralInclusive, SetB,
		Alt("ᎢᎦ", "Ꭰ"),
		Alt("ᎢᎨ", "Ꭱ"),
		Alt("ᎢᎩ", ""),
		Alt("ᎢᎪ", "Ꭳ"),
		Alt("ᎢᎫ", "Ꭴ"),
		Alt("ᎢᎬ", "Ꭵ"),
	)

	setB2SG := Pronoun(SecondSingular, SetB,
		Alt("Ꮳ", "Ꭰ", ""),
		Alt("Ꮴ", "Ꭱ"),
		Alt("Ꮶ", "Ꭳ"),
		Alt("Ꮷ", "Ꭴ"),
		Alt("Ꮸ", "Ꭵ"),
	)

	setB2DL := Pronoun(SecondDual, SetB,
		Alt("ᏍᏓ", "Ꭰ"),
		Alt("ᏍᏕ", "Ꭱ"),
		Alt("ᏍᏗ", ""),
		Alt("ᏍᏙ", "Ꭳ"),
		Alt("ᏍᏚ", "Ꭴ"),
		Alt("ᏍᏛ", "Ꭵ"),
	)

	setB2PL := Pronoun(SecondPlural, SetB,
		Alt("ᎢᏣ", "Ꭰ"),
		Alt("ᎢᏕ", "Ꭱ"),
		Alt("ᎢᏥ", ""),
		Alt("ᎢᏦ", "Ꭳ"),
		Alt("ᎢᏧ", "Ꭴ"),
		Alt("ᎢᏨ", "Ꭵ"),
	)

	setB3SG := Pronoun(ThirdSingular, SetB,
		Alt("Ꭴ", "", "Ꭰ"),
		Alt("ᎤᏪ", "Ꭱ"),
		Alt("ᎤᏬ", "Ꭳ"),
		Alt("ᎤᏭ", "Ꭴ"),
		Alt("ᎤᏩ", "Ꭵ"),
	)

	setB3PL := Pronoun(ThirdPlural, SetB,
		Alt("ᎤᏂ", ""),
		Alt("ᎤᎾ", "Ꭰ"),
		Alt("ᎤᏁ", "Ꭱ"),
		Alt("ᎤᏃ", "Ꭳ"),
		Alt("ᎤᏄ", "Ꭴ"),
		Alt("ᎤᏅ", "Ꭵ"),
	)

	// Infixes: prefixes that follow the pronoun.
	reflexive := Prefix("RFLX",
		Alt("ᎠᏓ", "", "Ꭰ"),
		Alt("ᎠᏕ", "Ꭱ"),
		Alt("ᎠᏓᏙ", "Ꭳ"),
		Alt("ᎠᏙ", "Ꭳ"),
		Alt("ᎠᏓᏗ", "Ꭲ"),
		Alt("ᎠᏓᏛ", "Ꭵ"),
	)

	middle := Prefix("MDL",
		Alt("ᎠᎵ", ""),
	)

	// Tense endings. Exactly one may appear in a valid parse.
	aWhen := Tense("A_WHEN", VowelInitial, "Ꭰ")
	futureProgress := Tense("FUTURE_PROG", VowelInitial, "ᎡᏍᏗ")
	reportedPast := Tense("NXP", VowelInitial, "ᎡᎢ", "Ꭱ")
	experiencedPast := Tense("EXP", VowelInitial, "ᎥᎢ", "Ꭵ")
	habitual := Tense("HBT", VowelInitial, "ᎣᎢ", "Ꭳ")
	infinitive := Tense("INF", ConsonantInitial, "Ꮧ", "ᏗᏱ", "ᏗᎢ")

	// Clitics.
	question := CliticSuffix("INT", "Ꮝ", "ᏍᎪ")
	emphatic := CliticSuffix("EM", "Ꮫ")
	just := CliticSuffix("JUST", "Ꮽ", "Ꮚ")

	prefixes := []*Rule{
		yi, tsi, wi, ni, ni2, de, de2, da, iAgain, ga,
		setA1SG, setA1DLEx, setA1PLEx, setA1DLIn, setA1PLIn,
		setA2SG, setA2DL, setA2PL,
		setA3SG, setA3PL,
		setB1SG, setB1DLEx, setB1PLEx, setB1DLIn, setB1PLIn,
		setB2SG, setB2DL, setB2PL,
		setB3SG, setB3PL,
		reflexive, middle,
	}
	suffixes := []*Rule{
		question, emphatic, just,
		aWhen, futureProgress, reportedPast, experiencedPast, habitual, infinitive,
	}
	return MustTable(prefixes, suffixes)
}
