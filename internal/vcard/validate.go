package vcard

import (
	"fmt"

	"github.com/tartampluch/go-vcf/internal/config"
)

// ValidateCard runs the independent second validation pass over a fully
// built card. It does not mutate its input; the first failing check wins.
//
// A correctly built card always passes: the checks exist to catch cards
// assembled or modified outside ParseCard.
func ValidateCard(c *Card) error {
	if c == nil {
		return fmt.Errorf("%w: nil card", ErrInvalidCard)
	}
	if c.FN == nil {
		return fmt.Errorf("%w: missing FN", ErrInvalidCard)
	}
	if err := validateProperty(c.FN, false); err != nil {
		return err
	}

	var hasN bool
	for _, p := range c.OptionalProperties {
		// BDAY and ANNIVERSARY live in dedicated fields; finding one here
		// means the card was assembled by hand.
		if p.Name == config.PropBDAY || p.Name == config.PropAnniversary {
			return fmt.Errorf("%w: %s must not be an optional property", ErrInvalidDateTime, p.Name)
		}

		if err := validateProperty(p, true); err != nil {
			return err
		}

		if p.Name == config.PropN {
			if hasN {
				return fmt.Errorf("%w: duplicate N", ErrInvalidProperty)
			}
			hasN = true
		}
	}

	if err := validateDateTime(c.Birthday); err != nil {
		return err
	}
	return validateDateTime(c.Anniversary)
}

// validateProperty checks one property. isOptional marks properties from the
// optional sequence, where VERSION is additionally disallowed.
func validateProperty(p *Property, isOptional bool) error {
	if p == nil {
		return fmt.Errorf("%w: nil property", ErrInvalidProperty)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProperty)
	}

	// VERSION among optionals is a card-level failure, checked before the
	// whitelist (VERSION is not a member).
	if isOptional && p.Name == config.PropVersion {
		return fmt.Errorf("%w: VERSION must not be an optional property", ErrInvalidCard)
	}

	if !IsKnownPropertyName(p.Name) {
		return fmt.Errorf("%w: unknown name %q", ErrInvalidProperty, p.Name)
	}

	for _, param := range p.Parameters {
		if param.Name == "" || param.Value == "" {
			return fmt.Errorf("%w: parameter with empty name or value", ErrInvalidProperty)
		}
	}

	if len(p.Values) == 0 {
		return fmt.Errorf("%w: %s has no values", ErrInvalidProperty, p.Name)
	}

	// N is the structured name: exactly 5 fields.
	if p.Name == config.PropN && len(p.Values) != 5 {
		return fmt.Errorf("%w: N has %d values, want 5", ErrInvalidProperty, len(p.Values))
	}

	return nil
}

// validateDateTime checks the structured-format rules. A nil DateTime is
// valid (the field is optional); the variant exclusivity itself is
// guaranteed by construction.
func validateDateTime(dt *DateTime) error {
	if dt == nil {
		return nil
	}

	if dt.isText {
		if dt.text == "" {
			return fmt.Errorf("%w: empty text value", ErrInvalidDateTime)
		}
		return nil
	}

	if dt.date == "" && dt.clock == "" {
		return fmt.Errorf("%w: neither date nor time set", ErrInvalidDateTime)
	}
	if dt.date != "" && len(dt.date) != config.DateLen {
		return fmt.Errorf("%w: date %q is not %d characters", ErrInvalidDateTime, dt.date, config.DateLen)
	}
	if dt.clock != "" && len(dt.clock) != config.TimeLen {
		return fmt.Errorf("%w: time %q is not %d characters", ErrInvalidDateTime, dt.clock, config.TimeLen)
	}

	return nil
}
