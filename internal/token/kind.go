package token

// Kind represents the lexical category of a BL token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Keyword is a reserved word (IF, THEN, ELSE, END, WHILE, DO, ...).
	Keyword
	// Condition is a recognized condition word (next-is-empty, ...).
	Condition
	// Ident is any other word: a letter followed by letters, digits or '-'.
	Ident
	// Number is a maximal run of decimal digits.
	Number
	// Other is any single non-word, non-space character.
	Other
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Keyword:
		return "Keyword"
	case Condition:
		return "Condition"
	case Ident:
		return "Ident"
	case Number:
		return "Number"
	case Other:
		return "Other"
	default:
		return "Unknown"
	}
}
