// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver error strings.
package repository

import "errors"

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrEmailExists is returned when registering with an email that is
// already taken (MySQL duplicate-key on users.email).
var ErrEmailExists = errors.New("email already exists")
