package repository

import "errors"

// ErrNotFound is returned for point lookups that match no row. Callers turn
// it into user-facing "not found" messaging, never into a failed turn.
var ErrNotFound = errors.New("not found")
