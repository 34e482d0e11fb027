package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/pkg/errors"

	"eventdate/internal/interval"
	"eventdate/internal/model"
)

const productService = "eventdate"

// Export writes every record that carries a value as an all-day VEVENT
// spanning the value's interval. DTEND is exclusive, one day past the last
// covered day. stamp becomes each event's DTSTAMP.
func Export(w io.Writer, records []model.Record, stamp time.Time) error {
	cal := ical.NewCalendarFor(productService)

	for _, rec := range records {
		if !rec.Matched() {
			continue
		}
		iv, err := interval.Parse(rec.Result.Value)
		if err != nil {
			return errors.Wrapf(err, "ics: record %d", rec.Line)
		}

		uid := rec.UID
		if uid == "" {
			uid = fmt.Sprintf("%s-%d@%s", rec.Source, rec.Line, productService)
		}
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(iv.Start().Time())
		ev.SetAllDayEndAt(iv.End().AddDays(1).Time())

		summary := rec.Summary
		if summary == "" {
			summary = rec.Text
		}
		ev.SetSummary(summary)
		ev.SetDescription(describe(rec))
	}

	return errors.Wrap(cal.SerializeTo(w), "ics: serialize")
}

func describe(rec model.Record) string {
	parts := []string{
		"state: " + string(rec.Result.State),
		"value: " + rec.Result.Value,
		"verbatim: " + rec.Text,
	}
	parts = append(parts, rec.Result.Comments...)
	return strings.Join(parts, "\n")
}
