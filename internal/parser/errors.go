package parser

import (
	"fmt"

	"blc/internal/diag"
	"blc/internal/source"
	"blc/internal/token"
)

// ErrorKind classifies a syntax error.
type ErrorKind uint8

const (
	UnexpectedEndOfInput ErrorKind = iota + 1
	ExpectedKeyword
	InvalidCondition
	ReservedWordAsIdentifier
	MismatchedTerminator
	InvalidIdentifier
	UnexpectedToken
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case ExpectedKeyword:
		return "ExpectedKeyword"
	case InvalidCondition:
		return "InvalidCondition"
	case ReservedWordAsIdentifier:
		return "ReservedWordAsIdentifier"
	case MismatchedTerminator:
		return "MismatchedTerminator"
	case InvalidIdentifier:
		return "InvalidIdentifier"
	case UnexpectedToken:
		return "UnexpectedToken"
	default:
		return "UnknownSyntaxError"
	}
}

// Code maps the kind onto its diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case UnexpectedEndOfInput:
		return diag.SynUnexpectedEOF
	case ExpectedKeyword:
		return diag.SynExpectKeyword
	case InvalidCondition:
		return diag.SynInvalidCondition
	case ReservedWordAsIdentifier:
		return diag.SynReservedAsIdentifier
	case MismatchedTerminator:
		return diag.SynMismatchedTerminator
	case InvalidIdentifier:
		return diag.SynInvalidIdentifier
	case UnexpectedToken:
		return diag.SynUnexpectedToken
	default:
		return diag.SynInfo
	}
}

// SyntaxError aborts a parse. Found is the offending token, or an EOF
// token positioned at the end of the stream. Pos is the stream index of
// Found.
type SyntaxError struct {
	Kind     ErrorKind
	Expected string
	Found    token.Token
	Pos      int
	Span     source.Span
}

// Sentinels for errors.Is; only Kind is compared.
var (
	ErrUnexpectedEndOfInput     = &SyntaxError{Kind: UnexpectedEndOfInput}
	ErrExpectedKeyword          = &SyntaxError{Kind: ExpectedKeyword}
	ErrInvalidCondition         = &SyntaxError{Kind: InvalidCondition}
	ErrReservedWordAsIdentifier = &SyntaxError{Kind: ReservedWordAsIdentifier}
	ErrMismatchedTerminator     = &SyntaxError{Kind: MismatchedTerminator}
	ErrInvalidIdentifier        = &SyntaxError{Kind: InvalidIdentifier}
	ErrUnexpectedToken          = &SyntaxError{Kind: UnexpectedToken}
)

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at token %d: %s", e.Pos, e.Message())
}

// Message is the human-readable part of Error without the position.
func (e *SyntaxError) Message() string {
	if e.Found.Kind == token.EOF {
		return "unexpected end of input, expected " + e.Expected
	}
	switch e.Kind {
	case ReservedWordAsIdentifier:
		return fmt.Sprintf("reserved word %q cannot be used as an instruction name", e.Found.Text)
	case InvalidIdentifier:
		return fmt.Sprintf("%q is not a valid instruction name", e.Found.Text)
	case InvalidCondition:
		return fmt.Sprintf("expected condition, found %q", e.Found.Text)
	default:
		return fmt.Sprintf("expected %s, found %q", e.Expected, e.Found.Text)
	}
}

// Code returns the diagnostic code for the error.
func (e *SyntaxError) Code() diag.Code {
	return e.Kind.Code()
}

func (e *SyntaxError) Is(target error) bool {
	t, ok := target.(*SyntaxError)
	return ok && t.Kind == e.Kind
}
