package models

import "fmt"

// ValidationError reports a field that failed domain validation. The same
// checks run on user input and on documents decoded from the store, so a
// record cannot round-trip into a shape the application refuses to build.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
