package reader

import (
	"errors"
	"fmt"

	"lread/internal/source"
)

var (
	// ErrTokenClassification is matched by errors for lexemes that fit no
	// literal, marker or symbol form.
	ErrTokenClassification = errors.New("token classification failed")
	// ErrStructural is matched by grammar-level failures: unbalanced
	// parentheses, malformed dotted pairs, dangling reader prefixes.
	ErrStructural = errors.New("structural parse error")
)

// ErrorKind tells the two reader failure families apart.
type ErrorKind uint8

const (
	KindClassification ErrorKind = iota + 1
	KindStructural
)

func (k ErrorKind) String() string {
	switch k {
	case KindClassification:
		return "classification"
	case KindStructural:
		return "structural"
	default:
		return "unknown"
	}
}

// Reason narrows an ErrorKind to the specific rule that failed.
type Reason uint8

const (
	ReasonUnknown Reason = iota
	ReasonEmptyLexeme
	ReasonBadLiteral
	ReasonUnterminatedString
	ReasonOutOfRange
	ReasonBadEscape
	ReasonUnexpectedClose
	ReasonDotOutsideList
	ReasonMalformedDottedPair
	ReasonDanglingPrefix
	ReasonUnterminatedList
	ReasonTrailingInput
	ReasonTooDeep
)

// Error describes why a read was aborted. There is never a partial result
// alongside it.
type Error struct {
	Kind   ErrorKind
	Reason Reason
	Span   source.Span
	Lexeme string
	Msg    string
	// Incomplete is set when more input could have completed the read, for
	// example an unclosed list or string at end of input.
	Incomplete bool
	// Err is the underlying cause, e.g. a strconv range error.
	Err error
}

func (e *Error) Error() string {
	if e.Lexeme != "" {
		return fmt.Sprintf("%s: %s: %q", e.sentinel(), e.Msg, e.Lexeme)
	}
	return fmt.Sprintf("%s: %s", e.sentinel(), e.Msg)
}

func (e *Error) sentinel() error {
	if e.Kind == KindStructural {
		return ErrStructural
	}
	return ErrTokenClassification
}

// Unwrap exposes both the sentinel for the error kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.sentinel(), e.Err}
	}
	return []error{e.sentinel()}
}

// IsIncomplete reports whether err is a reader error that more input could
// resolve. Interactive front ends use it to ask for continuation lines.
func IsIncomplete(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Incomplete
}

func classificationError(r Reason, sp source.Span, lexeme, msg string, cause error) *Error {
	return &Error{Kind: KindClassification, Reason: r, Span: sp, Lexeme: lexeme, Msg: msg, Err: cause}
}

func structuralError(r Reason, sp source.Span, lexeme, msg string) *Error {
	return &Error{Kind: KindStructural, Reason: r, Span: sp, Lexeme: lexeme, Msg: msg}
}
