package vcard

import (
	"strings"

	"github.com/tartampluch/go-vcf/internal/config"
)

// Parameter is a key-value modifier attached to a Property, e.g. VALUE=text.
// Both fields must be non-empty for the parameter to validate.
type Parameter struct {
	Name  string
	Value string
}

// Property is a named, parameterized, possibly multi-valued field of a Card.
type Property struct {
	// Name is the base property name, without group prefix or parameters.
	Name string

	// Group is the optional group label before the first dot. It is the
	// empty string when the property has no group, never absent.
	Group string

	// Parameters holds the KEY=VALUE modifiers in encounter order.
	Parameters []Parameter

	// Values holds the property values in encounter order. Compound
	// properties (N, ADR) carry one entry per semicolon-separated field,
	// including empty fields; all others carry a single entry.
	Values []string
}

// HasParameter reports whether the property carries a parameter matching
// name and value case-insensitively.
func (p *Property) HasParameter(name, value string) bool {
	for _, param := range p.Parameters {
		if strings.EqualFold(param.Name, name) && strings.EqualFold(param.Value, value) {
			return true
		}
	}
	return false
}

// Card is one complete parsed contact record.
type Card struct {
	// FN is the required formatted-name property. Only the first FN line of
	// the input is retained here.
	FN *Property

	// OptionalProperties holds every other property in encounter order.
	// VERSION, FN, BDAY and ANNIVERSARY never appear in this sequence.
	OptionalProperties []*Property

	// Birthday and Anniversary are the promoted date fields; nil when the
	// input carried no such line.
	Birthday    *DateTime
	Anniversary *DateTime
}

// propertyNames is the fixed set of recognized vCard 4.0 property names
// (RFC 6350 sections 6.1-6.9.3). The validator rejects anything else.
var propertyNames = map[string]struct{}{
	"FN": {}, "N": {}, "NICKNAME": {}, "PHOTO": {}, "BDAY": {},
	"ANNIVERSARY": {}, "GENDER": {}, "ADR": {}, "TEL": {}, "EMAIL": {},
	"IMPP": {}, "LANG": {}, "TZ": {}, "GEO": {}, "TITLE": {}, "ROLE": {},
	"LOGO": {}, "ORG": {}, "MEMBER": {}, "RELATED": {}, "CATEGORIES": {},
	"NOTE": {}, "PRODID": {}, "REV": {}, "SOUND": {}, "UID": {},
	"CLIENTPIDMAP": {}, "URL": {},
}

// IsKnownPropertyName reports whether name is one of the recognized
// property names. The match is exact; case normalization is the caller's
// concern.
func IsKnownPropertyName(name string) bool {
	_, ok := propertyNames[name]
	return ok
}

// isCompound reports whether a property's value is semantically multiple
// semicolon-delimited sub-fields.
func isCompound(name string) bool {
	return strings.EqualFold(name, config.PropN) || strings.EqualFold(name, config.PropADR)
}

// String renders the card in a human-readable, non-wire form for display.
func (c *Card) String() string {
	var b strings.Builder
	b.WriteString("Card:\n FN: ")
	if c.FN != nil {
		b.WriteString(EncodeProperty(c.FN))
	}
	b.WriteString("\n Optional Properties:")
	for _, p := range c.OptionalProperties {
		b.WriteString("\n  ")
		b.WriteString(EncodeProperty(p))
	}
	b.WriteString("\n Birthday: ")
	if c.Birthday != nil {
		b.WriteString(EncodeDateTimeValue(c.Birthday))
	}
	b.WriteString("\n Anniversary: ")
	if c.Anniversary != nil {
		b.WriteString(EncodeDateTimeValue(c.Anniversary))
	}
	b.WriteString("\n")
	return b.String()
}
