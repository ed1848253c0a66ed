package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-vcf/internal/export"
	"github.com/tartampluch/go-vcf/internal/vcard"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func parseCard(t *testing.T, raw string) *vcard.Card {
	t.Helper()
	card, err := vcard.ParseCard(strings.NewReader(raw))
	require.NoError(t, err)
	return card
}

const cardJohn = "BEGIN:VCARD\r\n" +
	"VERSION:4.0\r\n" +
	"FN:John Doe\r\n" +
	"BDAY:20000101\r\n" +
	"END:VCARD\r\n"

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

func TestBuildCalendar_BirthdayToday(t *testing.T) {
	// Set "Now" to John Doe's birthday.
	fixedTime := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	gen := &export.Generator{Clock: MockClock{CurrentTime: fixedTime}}

	icsData, count, err := gen.BuildCalendar([]*vcard.Card{parseCard(t, cardJohn)})

	assert.NoError(t, err)
	assert.Equal(t, 1, count, "Should identify one birthday today")

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "BEGIN:VCALENDAR", "Should start with VCALENDAR")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: John Doe (25)", "Born 2000, Now 2025 -> 25 years old")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250101")
}

func TestBuildCalendar_ThreeYearWindow(t *testing.T) {
	fixedTime := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	gen := &export.Generator{Clock: MockClock{CurrentTime: fixedTime}}

	icsData, count, err := gen.BuildCalendar([]*vcard.Card{parseCard(t, cardJohn)})

	assert.NoError(t, err)
	assert.Equal(t, 0, count, "No birthday in June for this contact")

	icsStr := string(icsData)
	// Previous, current, and next year occurrences.
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20240101")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250101")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20260101")
	assert.Equal(t, 3, strings.Count(icsStr, "BEGIN:VEVENT"))
}

func TestBuildCalendar_NoEventBeforeBirth(t *testing.T) {
	// Born in the current year: the previous-year occurrence must be skipped
	// and the current-year summary carries no age suffix.
	raw := "BEGIN:VCARD\r\n" +
		"VERSION:4.0\r\n" +
		"FN:New Born\r\n" +
		"BDAY:20250301\r\n" +
		"END:VCARD\r\n"

	fixedTime := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	gen := &export.Generator{Clock: MockClock{CurrentTime: fixedTime}}

	icsData, _, err := gen.BuildCalendar([]*vcard.Card{parseCard(t, raw)})

	assert.NoError(t, err)
	icsStr := string(icsData)
	assert.Equal(t, 2, strings.Count(icsStr, "BEGIN:VEVENT"))
	assert.NotContains(t, icsStr, "DTSTART;VALUE=DATE:2024")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: New Born\r\n")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: New Born (1)")
}

func TestBuildCalendar_LeapYearEdgeCase(t *testing.T) {
	// A contact born on Feb 29th (Leapling) must show up on March 1st in a
	// non-leap year via time.Date normalization.
	raw := "BEGIN:VCARD\r\n" +
		"VERSION:4.0\r\n" +
		"FN:Leap Baby\r\n" +
		"BDAY:20000229\r\n" +
		"END:VCARD\r\n"

	// 2025 is NOT a leap year. Feb 29 -> March 1.
	fixedTime := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	gen := &export.Generator{Clock: MockClock{CurrentTime: fixedTime}}

	icsData, count, err := gen.BuildCalendar([]*vcard.Card{parseCard(t, raw)})

	assert.NoError(t, err)
	assert.Equal(t, 1, count, "Leapling birthday should count as today on March 1st")
	assert.Contains(t, string(icsData), "DTSTART;VALUE=DATE:20250301")
}

func TestBuildCalendar_AnniversaryAndBirthday(t *testing.T) {
	raw := "BEGIN:VCARD\r\n" +
		"VERSION:4.0\r\n" +
		"FN:Jane Q. Public\r\n" +
		"BDAY:19900115\r\n" +
		"ANNIVERSARY:20150620\r\n" +
		"END:VCARD\r\n"

	fixedTime := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)
	gen := &export.Generator{Clock: MockClock{CurrentTime: fixedTime}}

	icsData, count, err := gen.BuildCalendar([]*vcard.Card{parseCard(t, raw)})

	assert.NoError(t, err)
	assert.Equal(t, 1, count, "Only the anniversary falls today")

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Jane Q. Public (35)")
	assert.Contains(t, icsStr, "SUMMARY:Anniversary: Jane Q. Public (10)")
	assert.Equal(t, 6, strings.Count(icsStr, "BEGIN:VEVENT"))
}

func TestBuildCalendar_TextDateSkipped(t *testing.T) {
	raw := "BEGIN:VCARD\r\n" +
		"VERSION:4.0\r\n" +
		"FN:Circa Person\r\n" +
		"BDAY;VALUE=text:circa 1990\r\n" +
		"END:VCARD\r\n"

	fixedTime := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	gen := &export.Generator{Clock: MockClock{CurrentTime: fixedTime}}

	icsData, count, err := gen.BuildCalendar([]*vcard.Card{parseCard(t, raw)})

	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	// Text dates cannot become events; with no other cards we get the stub.
	assert.NotContains(t, string(icsData), "BEGIN:VEVENT")
}

func TestBuildCalendar_EmptyInput_ReturnsStub(t *testing.T) {
	gen := &export.Generator{Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}}

	icsData, count, err := gen.BuildCalendar(nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	icsStr := string(icsData)
	assert.Contains(t, icsStr, "BEGIN:VCALENDAR")
	assert.Contains(t, icsStr, "END:VCALENDAR")
	assert.NotContains(t, icsStr, "BEGIN:VEVENT")
}

func TestBuildCalendar_ReminderAlarm(t *testing.T) {
	fixedTime := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	gen := &export.Generator{
		Clock:           MockClock{CurrentTime: fixedTime},
		ReminderTrigger: "-P1D",
	}

	icsData, _, err := gen.BuildCalendar([]*vcard.Card{parseCard(t, cardJohn)})

	assert.NoError(t, err)
	icsStr := string(icsData)
	assert.Contains(t, icsStr, "BEGIN:VALARM")
	assert.Contains(t, icsStr, "ACTION:DISPLAY")
	assert.Contains(t, icsStr, "TRIGGER:-P1D")
}

func TestBuildCalendar_DeterministicUIDs(t *testing.T) {
	fixedTime := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	gen := &export.Generator{Clock: MockClock{CurrentTime: fixedTime}}

	first, _, err := gen.BuildCalendar([]*vcard.Card{parseCard(t, cardJohn)})
	require.NoError(t, err)
	second, _, err := gen.BuildCalendar([]*vcard.Card{parseCard(t, cardJohn)})
	require.NoError(t, err)

	// DTSTAMP aside, UIDs must be stable across exports so calendar clients
	// update events in place instead of duplicating them.
	assert.Equal(t, uidLines(string(first)), uidLines(string(second)))
	assert.Len(t, uidLines(string(first)), 3)
}

func uidLines(ics string) []string {
	var uids []string
	for _, line := range strings.Split(ics, "\r\n") {
		if strings.HasPrefix(line, "UID:") {
			uids = append(uids, line)
		}
	}
	return uids
}

func TestBuildCalendar_MissingFNUsesFallbackName(t *testing.T) {
	// A card assembled by hand, bypassing the parser's FN requirement.
	card := &vcard.Card{
		Birthday: vcard.NewDateTime("20000101", "", false),
	}

	fixedTime := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	gen := &export.Generator{Clock: MockClock{CurrentTime: fixedTime}}

	icsData, _, err := gen.BuildCalendar([]*vcard.Card{card})

	assert.NoError(t, err)
	assert.Contains(t, string(icsData), "SUMMARY:Birthday: Unknown")
}
