package services

import (
	"errors"
	"fmt"
)

// ErrNotOwner is returned when a caller tries to modify a resource owned by
// somebody else. Handlers translate it to 403.
var ErrNotOwner = errors.New("only the owner may modify this resource")

// ValidationError reports an invalid field on a write. Handlers translate it
// to 400 with the field detail. No partial state is committed when one is
// returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
