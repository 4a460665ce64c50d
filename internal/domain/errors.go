package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateCurrentRevision is returned when an update would introduce a
// second open revision where at most one is allowed.
var ErrDuplicateCurrentRevision = errors.New("a current revision already exists")

// DuplicateCurrentRevisionError carries the conflicting revision for
// diagnostics. It unwraps to ErrDuplicateCurrentRevision.
type DuplicateCurrentRevisionError struct {
	Existing fmt.Stringer
}

func (e DuplicateCurrentRevisionError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDuplicateCurrentRevision, e.Existing)
}

func (e DuplicateCurrentRevisionError) Unwrap() error {
	return ErrDuplicateCurrentRevision
}
