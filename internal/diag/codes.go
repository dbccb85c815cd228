package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические: лексема не подходит ни под одну форму
	LexInfo               Code = 1000
	LexBadLiteral         Code = 1001
	LexUnterminatedString Code = 1002
	LexNumberOutOfRange   Code = 1003
	LexBadEscape          Code = 1004
	LexEmptyLexeme        Code = 1005

	// Структурные
	SynInfo                Code = 2000
	SynUnexpectedClose     Code = 2001
	SynUnclosedList        Code = 2002
	SynMalformedDottedPair Code = 2003
	SynDotOutsideList      Code = 2004
	SynDanglingReaderMacro Code = 2005
	SynTrailingInput       Code = 2006
	SynNestingTooDeep      Code = 2007

	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		LexInfo:                "Lexical information",
		LexBadLiteral:          "Not a valid literal or symbol",
		LexUnterminatedString:  "Unterminated string literal",
		LexNumberOutOfRange:    "Numeric literal out of range",
		LexBadEscape:           "Invalid escape sequence",
		LexEmptyLexeme:         "Empty input where a form was expected",
		SynInfo:                "Syntax information",
		SynUnexpectedClose:     "Unexpected ')'",
		SynUnclosedList:        "Unclosed list",
		SynMalformedDottedPair: "Malformed dotted pair",
		SynDotOutsideList:      "'.' outside of a list",
		SynDanglingReaderMacro: "Reader macro without a form",
		SynTrailingInput:       "Unexpected trailing input",
		SynNestingTooDeep:      "Nesting too deep",
		IOLoadFileError:        "I/O load file error",
		IOCacheError:           "Cache read/write error",
		ObsInfo:                "Observability information",
		ObsTimings:             "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
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
