package dwalk

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by decoders and cursors. They cross cursor
// boundaries unchanged so callers can match them with errors.Is.
var (
	// ErrEndOfStream reports a request against content that is gone: the
	// pending value was already consumed, or a required field was absent.
	ErrEndOfStream = errors.New("dwalk: end of stream")

	// ErrExpectedEnum reports an enum-shape request against a value that is
	// not a document.
	ErrExpectedEnum = errors.New("dwalk: expected an enum document")

	// ErrExpectedSingleKeyMap reports an enum-shape request against a
	// document with more than one entry.
	ErrExpectedSingleKeyMap = errors.New("dwalk: expected map with a single key")

	// ErrExpectedVariantName reports an enum-shape request against an empty
	// document.
	ErrExpectedVariantName = errors.New("dwalk: expected a variant name")

	// ErrExpectedTuple reports a tuple payload request against a non-array
	// payload.
	ErrExpectedTuple = errors.New("dwalk: expected a tuple payload")

	// ErrExpectedStruct reports a struct payload request against a
	// non-document payload.
	ErrExpectedStruct = errors.New("dwalk: expected a struct payload")

	// ErrMaxDepth reports a value tree nested deeper than the configured
	// DecodeOptions.MaxDepth.
	ErrMaxDepth = errors.New("dwalk: maximum decode depth exceeded")
)

// LengthMismatchError reports a sequence decode that finished before
// consuming every element of the source array.
type LengthMismatchError struct {
	Remaining int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("dwalk: sequence length mismatch: %d elements remaining", e.Remaining)
}

// UnknownFieldError identifies a document key the target does not recognize.
// Returning it from a key decode ends the key scan; see MapCursor.NextKey.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("dwalk: unknown field %q", e.Name)
}

// SyntaxError reports a shape mismatch between a value and the reconstruction
// requested for it.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return "dwalk: " + e.Msg
}
