package pattern

import "fmt"

// UnknownPatternError reports a lookup for a name that was never registered.
type UnknownPatternError struct {
	Name string
}

func (e *UnknownPatternError) Error() string {
	return fmt.Sprintf("unknown pattern %q", e.Name)
}

// InvalidInputError reports a structurally invalid argument, such as an empty
// pattern-name list or a malformed pattern-file entry. No-match is never an
// error; it is a nil result.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}
