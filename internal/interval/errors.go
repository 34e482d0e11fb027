package interval

import "github.com/pkg/errors"

var (
	// ErrEmptyInput is returned when an interval is built from a blank string.
	ErrEmptyInput = errors.New("interval: empty input")
	// ErrDateOrder is returned when the end of an interval precedes its start.
	ErrDateOrder = errors.New("interval: end precedes start")
	// ErrParseFailure is returned when a string matches none of the accepted forms.
	ErrParseFailure = errors.New("interval: unrecognized date form")
)
