package vcard

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tartampluch/go-vcf/internal/config"
)

// ParseCard reads exactly one card from r.
//
// Lines before BEGIN:VCARD are discarded. Inside the body, every line must
// be a well-formed property line until END:VCARD. The card is accepted only
// when END:VCARD, an FN property, and a VERSION property with the exact
// value 4.0 were all seen.
func ParseCard(r io.Reader) (*Card, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrInvalidSource)
	}

	lr := NewLineReader(r)

	// Discard until BEGIN:VCARD.
	for {
		line, err := lr.ReadLogicalLine()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing BEGIN:VCARD", ErrInvalidCard)
		}
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(strings.TrimSpace(line), config.TokenBegin) {
			break
		}
	}

	card := &Card{}
	var foundEnd, foundFN, foundVersion, validVersion bool

	for !foundEnd {
		line, err := lr.ReadLogicalLine()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing END:VCARD", ErrInvalidCard)
		}
		if err != nil {
			return nil, err
		}

		trimmed := strings.TrimSpace(line)
		if strings.EqualFold(trimmed, config.TokenEnd) {
			foundEnd = true
			break
		}

		rawName, rawValue, err := splitPropertyLine(trimmed)
		if err != nil {
			return nil, err
		}

		prop, err := BuildProperty(rawName, rawValue)
		if err != nil {
			return nil, err
		}

		switch {
		case strings.EqualFold(prop.Name, config.PropVersion):
			if foundVersion {
				return nil, fmt.Errorf("%w: duplicate VERSION", ErrInvalidCard)
			}
			foundVersion = true
			if rawValue == config.VersionValue {
				validVersion = true
			}

		case strings.EqualFold(prop.Name, config.PropFN):
			foundFN = true
			// Only the first FN is retained; later ones were still parsed
			// above for their validation side effects.
			if card.FN == nil {
				card.FN = prop
			}

		case strings.EqualFold(prop.Name, config.PropBDAY):
			if card.Birthday != nil {
				return nil, fmt.Errorf("%w: duplicate BDAY", ErrInvalidCard)
			}
			card.Birthday = BuildDateTime(rawValue, prop.HasParameter(config.ParamValue, config.ParamValueText))

		case strings.EqualFold(prop.Name, config.PropAnniversary):
			if card.Anniversary != nil {
				return nil, fmt.Errorf("%w: duplicate ANNIVERSARY", ErrInvalidCard)
			}
			card.Anniversary = BuildDateTime(rawValue, prop.HasParameter(config.ParamValue, config.ParamValueText))

		default:
			card.OptionalProperties = append(card.OptionalProperties, prop)
		}
	}

	if !foundEnd || !foundFN || !foundVersion || !validVersion {
		return nil, fmt.Errorf("%w: missing END, FN or VERSION:4.0", ErrInvalidCard)
	}

	slog.Debug(config.MsgCardParsed,
		config.LogKeyComponent, config.CompParser,
		config.LogKeyProps, len(card.OptionalProperties),
	)

	return card, nil
}

// ParseFile opens path and parses one card from it. The file handle is
// released on every exit path. Extension filtering is the caller's job.
func ParseFile(path string) (*Card, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty file name", ErrInvalidSource)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	defer func() { _ = f.Close() }()

	return ParseCard(f)
}

// splitPropertyLine splits a body line at its first colon into a trimmed
// name part and value part, both required non-empty.
func splitPropertyLine(line string) (string, string, error) {
	idx := strings.IndexByte(line, config.NameSeparator)
	if idx < 0 {
		return "", "", fmt.Errorf("%w: line %q lacks ':'", ErrInvalidProperty, line)
	}

	name := strings.TrimSpace(line[:idx])
	value := strings.TrimSpace(line[idx+1:])
	if name == "" || value == "" {
		return "", "", fmt.Errorf("%w: empty name or value", ErrInvalidProperty)
	}

	return name, value, nil
}
