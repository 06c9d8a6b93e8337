package tzdata

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokens is the field sequence of a single input line, consumed left to right.
type tokens struct {
	fields []string
	pos    int
}

// tokenize splits a preprocessed line into fields separated by runs of white space.
// A line that starts with white space yields an empty first field where
// a keyword would otherwise be, which marks a zone continuation line.
func tokenize(line string) *tokens {
	fields := strings.Fields(line)
	if r, _ := utf8.DecodeRuneInString(line); unicode.IsSpace(r) {
		fields = append([]string{""}, fields...)
	}
	return &tokens{fields: fields}
}

func (t *tokens) hasNext() bool {
	return t.pos < len(t.fields)
}

// next consumes the next field. The field name is only used for the error
// returned when the line has no fields left.
func (t *tokens) next(field string) (string, error) {
	if !t.hasNext() {
		return "", fmt.Errorf("%w %s", ErrMissingToken, field)
	}
	s := t.fields[t.pos]
	t.pos++
	return s, nil
}

// tryNext consumes the next field if there is one.
func (t *tokens) tryNext() (string, bool) {
	if !t.hasNext() {
		return "", false
	}
	s := t.fields[t.pos]
	t.pos++
	return s, true
}

// done returns an error if any fields were left unconsumed.
func (t *tokens) done() error {
	if t.hasNext() {
		return fmt.Errorf("%w %q", ErrUnexpectedToken, t.fields[t.pos])
	}
	return nil
}
