package allocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/train-seat-booking/internal/model"
)

// DefaultRetryAttempts bounds how many snapshot/plan/commit rounds a
// single request may run before it fails with ErrConflict.  Contention is
// absorbed by replanning, not by waiting, so a small bound suffices.
const DefaultRetryAttempts = 3

// DefaultStoreTimeout caps each individual store call.  The snapshot and
// the claim are the only suspension points of an allocation request.
const DefaultStoreTimeout = 5 * time.Second

// Service orchestrates snapshot → plan → commit for one allocation
// request.  It owns request validation and the retry loop; correctness
// under concurrency comes entirely from the store's conditional claim.
type Service struct {
	store        Store
	committer    *Committer
	maxPerReq    int
	attempts     int
	storeTimeout time.Duration
}

// NewService constructs a Service.  maxPerRequest caps the seat count a
// single request may ask for (a policy knob, not a correctness rule) and
// attempts bounds the retry loop; non-positive values fall back to the
// package defaults.
func NewService(store Store, maxPerRequest, attempts int) *Service {
	if store == nil {
		panic("nil store passed to NewService")
	}
	if attempts <= 0 {
		attempts = DefaultRetryAttempts
	}
	return &Service{
		store:        store,
		committer:    NewCommitter(store),
		maxPerReq:    maxPerRequest,
		attempts:     attempts,
		storeTimeout: DefaultStoreTimeout,
	}
}

// Allocate assigns exactly count seats to ownerID or fails with zero net
// change to the inventory.  The request is validated before any store
// access; afterwards each attempt reads a fresh snapshot, plans against
// it and tries to commit.  A lost race triggers a replan against new
// state, up to the configured bound.  ErrInsufficientInventory reflects
// the free pool at the time of the failing attempt.
func (s *Service) Allocate(ctx context.Context, ownerID uint64, count int) (*Result, error) {
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if s.maxPerReq > 0 && count > s.maxPerReq {
		return nil, fmt.Errorf("%w: at most %d seats per request", ErrInvalidCount, s.maxPerReq)
	}

	for attempt := 0; attempt < s.attempts; attempt++ {
		free, err := s.snapshotFree(ctx)
		if err != nil {
			return nil, fmt.Errorf("snapshot free seats: %w", err)
		}
		planned, err := Plan(free, count)
		if err != nil {
			return nil, err
		}
		cctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
		seats, err := s.committer.Commit(cctx, planned, ownerID)
		cancel()
		if err == nil {
			return &Result{OwnerID: ownerID, Seats: seats}, nil
		}
		if errors.Is(err, ErrConflict) {
			continue // another allocator won a planned seat; replan on fresh state
		}
		return nil, err
	}
	return nil, ErrConflict
}

func (s *Service) snapshotFree(ctx context.Context) ([]model.Seat, error) {
	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.store.SnapshotFree(sctx)
}
