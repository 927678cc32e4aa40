package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidInput     = errors.New("invalid input")
	ErrMalformedLine    = errors.New("malformed line")
	ErrDelimiterInField = errors.New("field contains reserved delimiter")
)

// ParseError reports a numeric field that could not be parsed.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q is not a number", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidAmount
}

// FormatError reports a stored line whose field count does not match its kind.
type FormatError struct {
	Kind Kind
	Line int
	Got  int
	Want int
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s line %d: got %d fields, want %d", e.Kind, e.Line, e.Got, e.Want)
	}
	return fmt.Sprintf("%s record: got %d fields, want %d", e.Kind, e.Got, e.Want)
}

func (e *FormatError) Unwrap() error {
	return ErrMalformedLine
}

// InvalidInputError reports a calculator input that is not a number.
type InvalidInputError struct {
	Input string
	Value string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: not a number", e.Input, e.Value)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// RecordError locates a failure inside a stored record. Record is the
// 1-based position among the kind's records, which differs from the physical
// line number once the log contains blank lines.
type RecordError struct {
	Kind   Kind
	Record int
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s record %d: %v", e.Kind, e.Record, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
