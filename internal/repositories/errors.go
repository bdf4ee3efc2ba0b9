package repositories

import "errors"

// ErrNotFound is returned when no record matches a scoped query. Callers
// cannot tell an absent record from one owned by somebody else; both report
// this error.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("record already exists")
