// Package ics reads event dates out of iCalendar data and writes
// interpreted records back out as all-day VEVENTs.
package ics

import (
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/pkg/errors"

	"eventdate/internal/interpret"
	"eventdate/internal/interval"
	appLog "eventdate/internal/log"
	"eventdate/internal/model"
)

// ErrMissingStart marks a VEVENT without a usable DTSTART.
var ErrMissingStart = errors.New("ics: vevent has no DTSTART")

// ReadEventDates parses a calendar and returns one verbatim record per
// VEVENT. Text holds DTSTART..DTEND joined into a single date value; for
// all-day events the exclusive DTEND is pulled back one day. VEVENTs that
// cannot be read are logged and skipped.
func ReadEventDates(r io.Reader) ([]model.Verbatim, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, errors.Wrap(err, "ics: parse calendar")
	}

	events := cal.Events()
	out := make([]model.Verbatim, 0, len(events))
	for i, ve := range events {
		v, err := eventVerbatim(ve)
		if err != nil {
			appLog.Warn("ics vevent skipped", "index", i+1, "error", err)
			continue
		}
		v.Line = i + 1
		out = append(out, v)
	}

	appLog.Info("ics parse completed", "event_count", len(out))
	return out, nil
}

func eventVerbatim(ve *ical.VEvent) (model.Verbatim, error) {
	v := model.Verbatim{Source: model.SourceICS}
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		v.UID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		v.Summary = p.Value
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil || strings.TrimSpace(startProp.Value) == "" {
		return v, ErrMissingStart
	}

	var startText, endText string
	if isAllDay(startProp) {
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			return v, errors.Wrap(err, "ics: DTSTART")
		}
		first := interval.DateOf(start)
		startText = first.String()
		if ve.GetProperty(ical.ComponentPropertyDtEnd) != nil {
			if end, err := ve.GetAllDayEndAt(); err == nil {
				if last := interval.DateOf(end).AddDays(-1); last.After(first) {
					endText = last.String()
				}
			}
		}
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return v, errors.Wrap(err, "ics: DTSTART")
		}
		startText = start.Format(time.RFC3339)
		if ve.GetProperty(ical.ComponentPropertyDtEnd) != nil {
			if end, err := ve.GetEndAt(); err == nil {
				endText = end.Format(time.RFC3339)
			}
		}
	}

	if value, ok := interpret.BuildFromStartEnd(startText, endText); ok {
		v.Text = value
	} else {
		v.Text = strings.TrimSuffix(startText+"/"+endText, "/")
	}
	return v, nil
}

// isAllDay treats VALUE=DATE or a value without a time part as all-day.
func isAllDay(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}
