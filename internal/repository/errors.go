package repository

import "errors"

// ErrNotFound is returned, wrapped with context, when a lookup matches no row.
var ErrNotFound = errors.New("not found")
