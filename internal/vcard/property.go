package vcard

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-vcf/internal/config"
)

// BuildProperty tokenizes one property line that has already been split at
// the first colon. rawName may carry a leading GROUP. prefix and any number
// of ;KEY=VALUE parameters; rawValue is split into sub-fields for compound
// properties and stored whole otherwise.
//
// Failures report the specific reason wrapped in ErrInvalidProperty.
func BuildProperty(rawName, rawValue string) (*Property, error) {
	prop := &Property{}

	nameStr := rawName
	if idx := strings.IndexByte(nameStr, config.GroupSeparator); idx >= 0 {
		prop.Group = nameStr[:idx]
		nameStr = nameStr[idx+1:]
	}

	tokens := strings.Split(nameStr, string(rune(config.ParamSeparator)))
	prop.Name = tokens[0]
	if prop.Name == "" {
		return nil, fmt.Errorf("%w: empty property name", ErrInvalidProperty)
	}

	for _, token := range tokens[1:] {
		eq := strings.IndexByte(token, config.ParamAssign)
		if eq < 0 {
			return nil, fmt.Errorf("%w: parameter %q lacks '='", ErrInvalidProperty, token)
		}
		key := strings.TrimSpace(token[:eq])
		value := strings.TrimSpace(token[eq+1:])
		if key == "" || value == "" {
			return nil, fmt.Errorf("%w: parameter %q has an empty key or value", ErrInvalidProperty, token)
		}
		prop.Parameters = append(prop.Parameters, Parameter{Name: key, Value: value})
	}

	if isCompound(prop.Name) {
		fields := strings.Split(rawValue, string(rune(config.ParamSeparator)))
		prop.Values = make([]string, len(fields))
		for i, f := range fields {
			prop.Values[i] = strings.TrimSpace(f)
		}
	} else {
		prop.Values = []string{rawValue}
	}

	return prop, nil
}
