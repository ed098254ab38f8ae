// Package token defines BL lexical tokens, the reserved vocabulary, and the
// single-owner token stream consumed by the parser.
// Invariants:
//   - Token.Text is the exact source text of the token (case preserved).
//   - Token.Span matches Text exactly (Start..End) for lexed tokens; tokens
//     synthesized by FromStrings carry empty spans.
//   - Keyword and condition matching is exact-string and case-sensitive.
//   - The vocabulary is closed: once built, its keyword and condition sets
//     never change, and both stay disjoint from valid identifiers.
package token
