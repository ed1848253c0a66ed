package vcard

import "strings"

// DateTime is the date/time-or-text value used by BDAY and ANNIVERSARY.
//
// It has exactly two variants: free-form text, or a structured date/time
// pair with an optional UTC marker. The fields are unexported so a text
// DateTime can never carry date or time components and a structured one can
// never carry text; the two modes are constructed through NewTextDateTime
// and NewDateTime and are mutually exclusive by construction.
type DateTime struct {
	isText bool
	text   string
	date   string
	clock  string
	utc    bool
}

// NewTextDateTime returns a free-form text DateTime.
func NewTextDateTime(text string) *DateTime {
	return &DateTime{isText: true, text: text}
}

// NewDateTime returns a structured DateTime. Format correctness (8-character
// date, 6-character time, at least one of the two non-empty) is enforced by
// ValidateCard, not here.
func NewDateTime(date, clock string, utc bool) *DateTime {
	return &DateTime{date: date, clock: clock, utc: utc}
}

// BuildDateTime parses a raw date-time value string. When isText is true
// (derived from a VALUE=text parameter on the owning property) the value is
// stored verbatim as text. Otherwise a leading 'T' marks a time-only value,
// and an embedded 'T' splits date from time. No timezone normalization is
// performed and no format checking happens here.
func BuildDateTime(raw string, isText bool) *DateTime {
	if isText {
		return NewTextDateTime(raw)
	}

	if strings.HasPrefix(raw, "T") {
		return NewDateTime("", raw[1:], false)
	}

	if idx := strings.IndexByte(raw, 'T'); idx >= 0 {
		return NewDateTime(raw[:idx], raw[idx+1:], false)
	}

	return NewDateTime(raw, "", false)
}

// IsText reports whether the value is the free-form text variant.
func (dt *DateTime) IsText() bool { return dt.isText }

// Text returns the free-form text; empty for structured values.
func (dt *DateTime) Text() string { return dt.text }

// Date returns the date component; empty for text values.
func (dt *DateTime) Date() string { return dt.date }

// Time returns the time component; empty for text values.
func (dt *DateTime) Time() string { return dt.clock }

// UTC reports whether the structured value carries the UTC marker. Always
// false for text values.
func (dt *DateTime) UTC() bool { return dt.utc }
