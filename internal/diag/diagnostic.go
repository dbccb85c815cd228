package diag

import (
	"lread/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit replaces the text under Span with NewText. An empty span inserts.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a suggested correction, e.g. inserting a missing ')'.
type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
