// Package export converts parsed cards into an iCalendar feed of birthday
// and anniversary events.
package export

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"

	"github.com/tartampluch/go-vcf/internal/config"
	"github.com/tartampluch/go-vcf/internal/vcard"
)

// Generator builds calendar data from cards.
type Generator struct {
	Clock Clock

	// ReminderTrigger is an optional ISO8601 duration (e.g. "-P1D") attached
	// as a DISPLAY alarm to every generated event.
	ReminderTrigger string
}

// BuildCalendar generates an iCalendar document covering the birthdays and
// anniversaries of the given cards. It returns the ICS bytes and the number
// of events falling on the current day.
//
// Cards whose dates are text-mode, date-less, or unparseable contribute no
// events; they are skipped with a debug log, never an error.
func (g *Generator) BuildCalendar(cards []*vcard.Card) ([]byte, int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropICalVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	today := 0

	for _, card := range cards {
		name := config.FallbackName
		if card.FN != nil && len(card.FN.Values) > 0 && card.FN.Values[0] != "" {
			name = card.FN.Values[0]
		}

		for _, src := range []struct {
			kind string
			dt   *vcard.DateTime
		}{
			{config.KindBirthday, card.Birthday},
			{config.KindAnniversary, card.Anniversary},
		} {
			date, ok := eventDate(src.dt)
			if !ok {
				continue
			}

			events, isToday := g.createEvents(name, src.kind, date, now)
			if isToday {
				today++
				slog.Info(config.MsgDateToday,
					config.LogKeyComponent, config.CompExport,
					config.LogKeyName, name,
					config.LogKeyValue, date.Format(config.DateFormatFullDash),
				)
			}
			for _, e := range events {
				e.Props.Set(dtStampProp)
				cal.Children = append(cal.Children, e.Component)
			}
		}
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyCount, len(cal.Children),
	)
	return buf.Bytes(), today, nil
}

// eventDate extracts a calendar date from a DateTime. Text-mode values and
// values without a date component have none.
func eventDate(dt *vcard.DateTime) (time.Time, bool) {
	if dt == nil || dt.IsText() || dt.Date() == "" {
		return time.Time{}, false
	}

	parsed, err := time.Parse(config.DateFormatWire, dt.Date())
	if err != nil {
		slog.Debug(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompExport,
			config.LogKeyValue, dt.Date(),
		)
		return time.Time{}, false
	}
	return parsed, true
}

// createEvents generates events for the previous, current, and next year, so
// calendar clients scrolling either way see the occurrence without a
// re-export. No event is generated before the original date's year.
func (g *Generator) createEvents(name, kind string, date time.Time, now time.Time) ([]*ical.Event, bool) {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()

	var events []*ical.Event
	isToday := false

	input := fmt.Sprintf(config.FormatHashInput, name, date.Format(time.RFC3339), config.UIDSalt+kind)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	todayYear, todayMonth, todayDay := now.Date()

	for _, y := range targetYears {
		if y < date.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		age := y - date.Year()
		summary := fmt.Sprintf(config.FormatSummaryAge, kind, name, age)
		if age == 0 {
			summary = fmt.Sprintf(config.FormatSummary, kind, name)
		}
		event.Props.SetText(config.PropSummary, summary)

		// time.Date normalizes Feb 29 to March 1 in non-leap years, which is
		// the desired occurrence for leaplings.
		occurrence := time.Date(y, date.Month(), date.Day(), 0, 0, 0, 0, loc)
		if y == todayYear && occurrence.Month() == todayMonth && occurrence.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(occurrence)
		event.Props.Set(dtStartProp)

		if g.ReminderTrigger != "" {
			addAlarm(event, g.ReminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events, isToday
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid a "VALUE=TEXT" param on the duration.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
