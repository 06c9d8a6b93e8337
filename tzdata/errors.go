package tzdata

import (
	"errors"
	"fmt"
)

// Errors returned by Parse. They are wrapped with details about the offending
// field and can be tested with errors.Is.
var (
	// ErrMissingToken means a mandatory field was absent at the end of a line.
	ErrMissingToken = errors.New("missing field")
	// ErrUnexpectedToken means a line carried more fields than its record type allows.
	ErrUnexpectedToken = errors.New("unexpected field")
	// ErrInvalidRange means the TO year of a rule line precedes its FROM year.
	ErrInvalidRange = errors.New("invalid year range")
	// ErrInvalidMonth means a month name was not recognized.
	ErrInvalidMonth = errors.New("invalid month")
	// ErrInvalidWeekday means a weekday name was not recognized.
	ErrInvalidWeekday = errors.New("invalid weekday")
	// ErrInvalidDaySelector means an ON field matched none of the recognized forms.
	ErrInvalidDaySelector = errors.New("invalid day")
	// ErrInvalidNumber means a year or other integer field was malformed.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrInvalidOffset means a UT offset or amount of saved time was malformed.
	ErrInvalidOffset = errors.New("invalid offset")
	// ErrInvalidTime means a time of day was malformed or out of range.
	ErrInvalidTime = errors.New("invalid time of day")
	// ErrUnexpectedKeyword means a line started with something other than
	// Rule, Zone, Link or white space.
	ErrUnexpectedKeyword = errors.New("unexpected keyword")
	// ErrNoOpenZone means a continuation line appeared before any zone line.
	ErrNoOpenZone = errors.New("continuation line without zone")
)

// ParseError is an error that occurred during parsing.
// It contains the line number and the line where the error occurred.
type ParseError struct {
	Line int    // 1-based line number within the parsed stream.
	Text string // Raw text of the line, including comments.
	Err  error
}

// Error returns a string representation of the parse error, implementing the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
