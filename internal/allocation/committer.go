package allocation

import (
	"context"
	"fmt"

	"github.com/iliyamo/train-seat-booking/internal/model"
)

// Committer turns a planned seat list into reservations through the
// store's conditional claim.  It guarantees all-or-nothing at the request
// granularity: a claim that wins only some of the planned seats is rolled
// back by releasing the won subset before the conflict is reported, so no
// partial reservation ever remains standing.
type Committer struct {
	store Store
}

// NewCommitter returns a Committer bound to the given store.
func NewCommitter(store Store) *Committer {
	if store == nil {
		panic("nil store passed to NewCommitter")
	}
	return &Committer{store: store}
}

// Commit attempts to claim every planned seat for ownerID.  On success it
// returns the planned seats unchanged.  ErrConflict is returned when
// another allocator won any of the seats first; in the partial case the
// seats this call did win are released before returning, restoring the
// inventory to its pre-call state.  Store failures are wrapped and
// returned as-is.
func (c *Committer) Commit(ctx context.Context, planned []model.Seat, ownerID uint64) ([]model.Seat, error) {
	ids := SeatIDs(planned)
	claimed, err := c.store.ClaimIfFree(ctx, ids, ownerID)
	if err != nil {
		return nil, fmt.Errorf("claim seats: %w", err)
	}
	if len(claimed) == len(ids) {
		return planned, nil
	}
	if len(claimed) > 0 {
		// Lost the race for part of the plan: unwind our share so the
		// request leaves zero net change behind.
		if err := c.store.Release(ctx, claimed, ownerID); err != nil {
			return nil, fmt.Errorf("release partial claim: %w", err)
		}
	}
	return nil, ErrConflict
}
