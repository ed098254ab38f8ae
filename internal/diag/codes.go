package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo         Code = 1000
	LexUnknownChar  Code = 1001
	LexTokenTooLong Code = 1005

	// Синтаксические
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001

	// BL statement grammar
	SynUnexpectedEOF        Code = 2300
	SynExpectKeyword        Code = 2301
	SynInvalidCondition     Code = 2302
	SynReservedAsIdentifier Code = 2303
	SynMismatchedTerminator Code = 2304
	SynInvalidIdentifier    Code = 2305

	// I/O
	IOLoadFileError Code = 4001

	// Проект
	ProjInvalidManifest Code = 5001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexUnknownChar:          "Unknown character",
	LexTokenTooLong:         "Token too long",
	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynUnexpectedEOF:        "Unexpected end of input",
	SynExpectKeyword:        "Expected keyword",
	SynInvalidCondition:     "Invalid condition",
	SynReservedAsIdentifier: "Reserved word used as identifier",
	SynMismatchedTerminator: "Mismatched terminator",
	SynInvalidIdentifier:    "Invalid identifier",
	IOLoadFileError:         "Failed to load file",
	ProjInvalidManifest:     "Invalid project manifest",
	ObsInfo:                 "Observability information",
	ObsTimings:              "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
