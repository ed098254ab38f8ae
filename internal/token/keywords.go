package token

import (
	"fmt"
	"slices"
	"sort"
)

// Core keywords. They are always reserved, whatever the vocabulary.
const (
	KwIf    = "IF"
	KwThen  = "THEN"
	KwElse  = "ELSE"
	KwEnd   = "END"
	KwWhile = "WHILE"
	KwDo    = "DO"
)

var coreKeywords = []string{KwIf, KwThen, KwElse, KwEnd, KwWhile, KwDo}

// DefaultConditions are the classic BL robot conditions.
var DefaultConditions = []string{
	"next-is-empty",
	"next-is-not-empty",
	"next-is-wall",
	"next-is-not-wall",
	"next-is-friend",
	"next-is-not-friend",
	"next-is-enemy",
	"next-is-not-enemy",
	"random",
	"true",
}

// Vocabulary is the closed set of reserved keywords and recognized
// conditions for one parse. It is immutable after construction and safe
// to share between goroutines.
type Vocabulary struct {
	keywords   map[string]struct{}
	conditions map[string]struct{}
}

var defaultVocabulary = mustVocabulary(nil, DefaultConditions)

// DefaultVocabulary returns the vocabulary with the core keywords and DefaultConditions.
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary
}

// NewVocabulary builds a vocabulary from the core keywords plus extraKeywords
// and exactly the given conditions. An empty conditions list selects
// DefaultConditions. Every entry must be a valid word, and no word may be
// both a keyword and a condition.
func NewVocabulary(extraKeywords, conditions []string) (*Vocabulary, error) {
	if len(conditions) == 0 {
		conditions = DefaultConditions
	}
	v := &Vocabulary{
		keywords:   make(map[string]struct{}, len(coreKeywords)+len(extraKeywords)),
		conditions: make(map[string]struct{}, len(conditions)),
	}
	for _, kw := range slices.Concat(coreKeywords, extraKeywords) {
		if !IsIdentifier(kw) {
			return nil, fmt.Errorf("keyword %q is not a valid word", kw)
		}
		v.keywords[kw] = struct{}{}
	}
	for _, c := range conditions {
		if !IsIdentifier(c) {
			return nil, fmt.Errorf("condition %q is not a valid word", c)
		}
		if _, clash := v.keywords[c]; clash {
			return nil, fmt.Errorf("condition %q collides with a reserved keyword", c)
		}
		v.conditions[c] = struct{}{}
	}
	return v, nil
}

func mustVocabulary(extraKeywords, conditions []string) *Vocabulary {
	v, err := NewVocabulary(extraKeywords, conditions)
	if err != nil {
		panic(err)
	}
	return v
}

// IsKeyword reports whether word is a reserved keyword.
func (v *Vocabulary) IsKeyword(word string) bool {
	_, ok := v.keywords[word]
	return ok
}

// IsCondition reports whether word is a recognized condition.
func (v *Vocabulary) IsCondition(word string) bool {
	_, ok := v.conditions[word]
	return ok
}

// IsReserved reports whether word may not be used as an identifier.
func (v *Vocabulary) IsReserved(word string) bool {
	return v.IsKeyword(word) || v.IsCondition(word)
}

// Classify returns the token kind of a word under this vocabulary.
func (v *Vocabulary) Classify(word string) Kind {
	switch {
	case v.IsKeyword(word):
		return Keyword
	case v.IsCondition(word):
		return Condition
	default:
		return Ident
	}
}

// Keywords returns the reserved keywords in sorted order.
func (v *Vocabulary) Keywords() []string {
	return sortedKeys(v.keywords)
}

// Conditions returns the recognized conditions in sorted order.
func (v *Vocabulary) Conditions() []string {
	return sortedKeys(v.conditions)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
