package vcard_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-vcf/internal/vcard"
)

func TestEncodeCard_ByteIdenticalRoundTrip(t *testing.T) {
	card := mustParse(t, minimalCard)
	assert.Equal(t, minimalCard, vcard.EncodeCard(card))
}

func TestEncodeCard_StructuralRoundTrip(t *testing.T) {
	// Scenario: parse(serialize(C)) is structurally equivalent to C for a
	// card exercising groups, parameters, compound values and both dates.
	input := "BEGIN:VCARD\r\n" +
		"VERSION:4.0\r\n" +
		"FN:Jane Q. Public\r\n" +
		"N:Public;Jane;Quinlan;Ms.;Esq.\r\n" +
		"HOME.ADR;TYPE=home:;;123 Main St;Guelph;ON;N1G 2W1;Canada\r\n" +
		"EMAIL;PREF=1:jane@example.com\r\n" +
		"BDAY:19900115\r\n" +
		"ANNIVERSARY;VALUE=text:second spring equinox\r\n" +
		"END:VCARD\r\n"

	card := mustParse(t, input)
	require.NoError(t, vcard.ValidateCard(card))

	encoded := vcard.EncodeCard(card)
	reparsed, err := vcard.ParseCard(strings.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, card, reparsed)
}

func TestValidImpliesSerializable(t *testing.T) {
	card := mustParse(t, minimalCard)
	require.NoError(t, vcard.ValidateCard(card))

	var b strings.Builder
	assert.NoError(t, vcard.WriteCard(&b, card))
	assert.Equal(t, vcard.EncodeCard(card), b.String())
}

func TestEncodeProperty_GroupAndParams(t *testing.T) {
	prop, err := vcard.BuildProperty("HOME.TEL;TYPE=voice", "555-1234")
	require.NoError(t, err)
	assert.Equal(t, "HOME.TEL;TYPE=voice:555-1234", vcard.EncodeProperty(prop))
}

func TestEncodeParameter_Quoting(t *testing.T) {
	tests := []struct {
		name  string
		param vcard.Parameter
		want  string
	}{
		{"plain", vcard.Parameter{Name: "TYPE", Value: "voice"}, "TYPE=voice"},
		{"comma quoted", vcard.Parameter{Name: "TYPE", Value: "voice,text"}, `TYPE="voice,text"`},
		{"semicolon quoted", vcard.Parameter{Name: "LABEL", Value: "a;b"}, `LABEL="a;b"`},
		{"already quoted", vcard.Parameter{Name: "LABEL", Value: `"a,b"`}, `LABEL="a,b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, vcard.EncodeParameter(tt.param))
		})
	}
}

func TestEncodeValues_DelimiterSelection(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		compound bool
		want     string
	}{
		{"compound uses semicolon", []string{"Doe", "John", "", "", ""}, true, "Doe;John;;;"},
		{"plain uses comma", []string{"a", "b"}, false, "a,b"},
		{"single value", []string{"solo"}, false, "solo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, vcard.EncodeValues(tt.values, tt.compound))
		})
	}
}

func TestEncodeValues_PhoneExtensionHeuristic(t *testing.T) {
	// Any value containing "ext=" switches the whole list to semicolons,
	// even for non-compound properties. This is preserved legacy behavior
	// and deliberately NOT a true inverse of parsing: a TEL re-parsed from
	// this output keeps the semicolons inside its single value.
	values := []string{"555-1234", "ext=22"}
	assert.Equal(t, "555-1234;ext=22", vcard.EncodeValues(values, false))

	input := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:John\r\nTEL:555-1234;ext=22\r\nEND:VCARD\r\n"
	card := mustParse(t, input)
	require.Len(t, card.OptionalProperties, 1)
	// TEL is not compound: the value survives whole, heuristic or not.
	assert.Equal(t, []string{"555-1234;ext=22"}, card.OptionalProperties[0].Values)
	assert.Equal(t, input, vcard.EncodeCard(card))
}

func TestEncodeCard_DateTimeLines(t *testing.T) {
	tests := []struct {
		name string
		dt   *vcard.DateTime
		want string
	}{
		{"text mode", vcard.NewTextDateTime("circa 1990"), "BDAY;VALUE=text:circa 1990\r\n"},
		{"time only", vcard.NewDateTime("", "123045", false), "BDAY:T123045\r\n"},
		{"date only", vcard.NewDateTime("19900115", "", false), "BDAY:19900115\r\n"},
		{"date and time", vcard.NewDateTime("19900115", "123045", false), "BDAY:19900115123045\r\n"},
		{"utc flag", vcard.NewDateTime("19900115", "123045", true), "BDAY:19900115123045 UTC\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := mustParse(t, minimalCard)
			card.Birthday = tt.dt
			assert.Contains(t, vcard.EncodeCard(card), tt.want)
		})
	}
}

func TestWriteCard_NilInputs(t *testing.T) {
	var b strings.Builder
	assert.ErrorIs(t, vcard.WriteCard(nil, &vcard.Card{}), vcard.ErrWriteFailure)
	assert.ErrorIs(t, vcard.WriteCard(&b, nil), vcard.ErrWriteFailure)
}

func TestWriteCard_FailingWriter(t *testing.T) {
	card := mustParse(t, minimalCard)
	err := vcard.WriteCard(failingWriter{}, card)
	assert.ErrorIs(t, err, vcard.ErrWriteFailure)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestCardString_HumanReadableDump(t *testing.T) {
	card := mustParse(t, minimalCard)
	card.Birthday = vcard.NewDateTime("19900115", "", false)

	dump := card.String()
	assert.Contains(t, dump, "Card:")
	assert.Contains(t, dump, "FN: FN:John Doe")
	assert.Contains(t, dump, "N:Doe;John;;;")
	assert.Contains(t, dump, "Birthday: 19900115")
}
