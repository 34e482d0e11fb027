package model

import "eventdate/internal/interpret"

// Source identifies where a verbatim date came from.
type Source string

const (
	SourceLine   Source = "line"   // one line of a text file or stdin
	SourceInline Source = "inline" // the -date flag
	SourceICS    Source = "ics"    // a VEVENT's DTSTART/DTEND
)

// Verbatim is one unnormalized input record.
type Verbatim struct {
	Source Source `json:"source"`
	// Line is the 1-based input line, or the VEVENT's position for ICS input.
	Line int    `json:"line"`
	Text string `json:"verbatim"`

	// UID and Summary are carried through from ICS input.
	UID     string `json:"uid,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// Record is a verbatim input paired with its interpretation.
type Record struct {
	Verbatim
	Result interpret.EventResult `json:"result"`
}

// Matched reports whether the record produced a usable value.
func (r Record) Matched() bool {
	return r.Result.HasValue()
}
