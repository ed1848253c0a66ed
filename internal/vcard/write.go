package vcard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tartampluch/go-vcf/internal/config"
)

// EncodeParameter renders one parameter as KEY=VALUE. Values containing a
// comma or semicolon are wrapped in double quotes unless already quoted.
func EncodeParameter(p Parameter) string {
	value := p.Value
	if strings.ContainsAny(value, ",;") && !strings.Contains(value, `"`) {
		value = `"` + value + `"`
	}
	return p.Name + string(config.ParamAssign) + value
}

// EncodeValues renders a value list. Compound properties join with a
// semicolon, everything else with a comma — except that any value containing
// "ext=" (a phone-extension marker) switches the whole list to semicolons.
// The exception is preserved from the original serializer and deliberately
// not generalized.
func EncodeValues(values []string, compound bool) string {
	delim := string(config.DelimDefault)
	if compound {
		delim = string(config.DelimCompound)
	} else {
		for _, v := range values {
			if strings.Contains(v, config.PhoneExtMarker) {
				delim = string(config.DelimCompound)
				break
			}
		}
	}
	return strings.Join(values, delim)
}

// EncodeProperty renders one property line, without terminator:
// [GROUP.]NAME[;KEY=VALUE]*:value1<delim>value2...
func EncodeProperty(p *Property) string {
	var b strings.Builder
	if p.Group != "" {
		b.WriteString(p.Group)
		b.WriteByte(config.GroupSeparator)
	}
	b.WriteString(p.Name)
	for _, param := range p.Parameters {
		b.WriteByte(config.ParamSeparator)
		b.WriteString(EncodeParameter(param))
	}
	b.WriteByte(config.NameSeparator)
	b.WriteString(EncodeValues(p.Values, isCompound(p.Name)))
	return b.String()
}

// EncodeDateTimeValue renders the value portion of a DateTime: the verbatim
// text for text values, otherwise date and time concatenated directly with
// " UTC" appended when the UTC flag is set.
func EncodeDateTimeValue(dt *DateTime) string {
	if dt.isText {
		return dt.text
	}
	s := dt.date + dt.clock
	if dt.utc {
		s += config.UTCSuffix
	}
	return s
}

// encodeDateTimeLine renders a full BDAY or ANNIVERSARY line, without
// terminator.
func encodeDateTimeLine(name string, dt *DateTime) string {
	if dt.isText {
		return name + ";VALUE=text:" + dt.text
	}
	if dt.date == "" && dt.clock != "" {
		return name + ":" + string(config.TimePrefix) + dt.clock
	}
	return name + ":" + EncodeDateTimeValue(dt)
}

// EncodeCard renders the full wire form of a card: BEGIN and VERSION lines,
// the FN line, optional properties in stored order, the promoted date lines,
// and the END line, all CRLF-terminated.
func EncodeCard(c *Card) string {
	var b strings.Builder
	b.WriteString(config.TokenBegin)
	b.WriteString(config.CRLF)
	b.WriteString(config.TokenVersion)
	b.WriteString(config.CRLF)

	if c.FN != nil {
		b.WriteString(EncodeProperty(c.FN))
		b.WriteString(config.CRLF)
	}

	for _, p := range c.OptionalProperties {
		b.WriteString(EncodeProperty(p))
		b.WriteString(config.CRLF)
	}

	if c.Birthday != nil {
		b.WriteString(encodeDateTimeLine(config.PropBDAY, c.Birthday))
		b.WriteString(config.CRLF)
	}
	if c.Anniversary != nil {
		b.WriteString(encodeDateTimeLine(config.PropAnniversary, c.Anniversary))
		b.WriteString(config.CRLF)
	}

	b.WriteString(config.TokenEnd)
	b.WriteString(config.CRLF)
	return b.String()
}

// WriteCard serializes c to w.
func WriteCard(w io.Writer, c *Card) error {
	if w == nil || c == nil {
		return fmt.Errorf("%w: nil destination or card", ErrWriteFailure)
	}
	if _, err := io.WriteString(w, EncodeCard(c)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return nil
}

// WriteFile serializes c to a new file at path, replacing any existing one.
func WriteFile(path string, c *Card) error {
	if path == "" || c == nil {
		return fmt.Errorf("%w: missing file name or card", ErrWriteFailure)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}

	if err := WriteCard(f, c); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return nil
}
