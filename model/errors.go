package model

import "fmt"

// FormatError reports an input file that cannot be opened or parsed as a
// valid document container (corrupt archive, wrong format, legacy binary
// .doc). It is fatal to the conversion; no partial output is produced.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid document: %v", e.Err)
	}
	return fmt.Sprintf("invalid document %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ValidationError reports a write-path element that fails schema checks.
// Index is the element's position in the input sequence, or -1 when the
// failure is at the document level (e.g. a missing "elements" key).
// A single validation failure aborts the whole build.
type ValidationError struct {
	Index int
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Index < 0 && e.Field != "":
		return fmt.Sprintf("validation: %s %q", e.Msg, e.Field)
	case e.Index < 0:
		return fmt.Sprintf("validation: %s", e.Msg)
	case e.Field != "":
		return fmt.Sprintf("element %d: %s %q", e.Index, e.Msg, e.Field)
	default:
		return fmt.Sprintf("element %d: %s", e.Index, e.Msg)
	}
}
