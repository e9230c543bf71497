// Package allocation implements the seat allocation core: a pure planner
// that picks which free seats should satisfy a request, a committer that
// turns a plan into reservations through the store's atomic conditional
// claim, and a service that drives both behind a bounded retry loop.
//
// The package never mutates seat state directly.  All writes go through
// the Store contract, whose ClaimIfFree is the single correctness
// primitive: concurrent allocators may race freely because only the store
// decides, atomically, who wins each seat.
package allocation

import (
	"context"

	"github.com/iliyamo/train-seat-booking/internal/model"
)

// Store is the seat inventory the allocator runs against.  It is the only
// shared mutable resource between concurrent allocation requests, and it
// must uphold the claim atomicity described on ClaimIfFree; the allocator
// holds no locks of its own.
type Store interface {
	// SnapshotFree returns every currently free seat ordered by row label
	// then seat number.  The snapshot is a point-in-time read and may be
	// stale by the time a claim is attempted; the committer tolerates that.
	SnapshotFree(ctx context.Context) ([]model.Seat, error)

	// ClaimIfFree atomically reserves each seat in seatIDs for ownerID,
	// skipping (not overwriting) any seat that is no longer free, and
	// returns exactly the IDs it won.  The conditional updates and the
	// matching reservation inserts must execute as one indivisible
	// operation so two callers can never both believe they claimed the
	// same seat.
	ClaimIfFree(ctx context.Context, seatIDs []uint64, ownerID uint64) ([]uint64, error)

	// Release frees seats previously claimed by ownerID and deletes their
	// reservation rows.  Seats held by other users are left untouched.  It
	// is the committer's compensation path after a partial claim.
	Release(ctx context.Context, seatIDs []uint64, ownerID uint64) error
}

// Result is a successful allocation: the seats assigned to the owner, in
// the order the planner chose them.  Partial results never exist; a
// request either yields exactly the requested count or an error.
type Result struct {
	OwnerID uint64
	Seats   []model.Seat
}
