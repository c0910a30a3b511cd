package repositories

import "errors"

// ErrNotFound is wrapped by every repository when a lookup misses, so callers
// can translate missing rows into a 404 without matching error strings.
var ErrNotFound = errors.New("record not found")
