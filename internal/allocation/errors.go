// Package allocation sentinel errors.  These values let handlers map
// allocation failures onto HTTP responses with errors.Is instead of
// string matching.  Store failures are not sentinels; they are wrapped
// with %w and surface as whatever the driver returned.
package allocation

import "errors"

// ErrInvalidCount is returned when the requested seat count is not a
// positive integer or exceeds the configured per-request maximum.  The
// request is rejected before any store access.
var ErrInvalidCount = errors.New("invalid seat count")

// ErrInsufficientInventory is returned when fewer free seats exist than
// were requested, at the time of the final attempt.
var ErrInsufficientInventory = errors.New("insufficient inventory")

// ErrConflict is returned when every retry attempt lost the race for at
// least one planned seat to another concurrent allocator.  No seat state
// remains mutated when it is returned.
var ErrConflict = errors.New("allocation conflict")
