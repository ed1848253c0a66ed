// Package vcard parses, validates, and serializes vCard 4.0 contact cards.
//
// The package operates on one card at a time: a raw CRLF-terminated text
// stream is unfolded into logical lines, tokenized into properties, and
// assembled into a Card. A separate validation pass checks the finished Card
// against the structural rules of the format, and the serializer converts a
// Card (or any of its sub-entities) back into wire text.
package vcard

import (
	"errors"

	"github.com/tartampluch/go-vcf/internal/config"
)

// Error kinds returned by this package. Every failure wraps exactly one of
// these sentinels; callers dispatch with errors.Is.
var (
	// ErrInvalidSource reports an unusable input stream.
	ErrInvalidSource = errors.New("invalid input source")

	// ErrInvalidCard reports a structural failure: missing BEGIN/END/FN/VERSION,
	// a duplicate VERSION, BDAY or ANNIVERSARY, or a malformed line terminator.
	ErrInvalidCard = errors.New("invalid card structure")

	// ErrInvalidProperty reports a bad property name, parameter syntax, or
	// value cardinality.
	ErrInvalidProperty = errors.New("invalid property")

	// ErrInvalidDateTime reports a malformed date-time value, or a BDAY or
	// ANNIVERSARY property found where only a dedicated field may hold one.
	ErrInvalidDateTime = errors.New("invalid date-time")

	// ErrExhausted reports an input line longer than the supported maximum.
	ErrExhausted = errors.New("resource exhausted")

	// ErrWriteFailure reports that a serialization target rejected output.
	ErrWriteFailure = errors.New("write failure")
)

// Describe maps an error to a one-sentence human-readable description in the
// fallback language. A nil error describes a valid card.
func Describe(err error) string {
	switch {
	case err == nil:
		return config.DescOK
	case errors.Is(err, ErrInvalidSource):
		return config.DescInvalidSource
	case errors.Is(err, ErrInvalidCard):
		return config.DescInvalidCard
	case errors.Is(err, ErrInvalidProperty):
		return config.DescInvalidProperty
	case errors.Is(err, ErrInvalidDateTime):
		return config.DescInvalidDateTime
	case errors.Is(err, ErrExhausted):
		return config.DescExhausted
	case errors.Is(err, ErrWriteFailure):
		return config.DescWriteFailure
	default:
		return config.DescUnknown
	}
}
