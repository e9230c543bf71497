package allocation

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/train-seat-booking/internal/model"
)

// MemoryStore is an in-process Store guarded by a mutex.  It mirrors the
// claim semantics of the MySQL-backed store exactly (conditional claim,
// subset result, owner-guarded release) and backs the package tests,
// where it doubles as the contended shared resource for the concurrency
// properties.
type MemoryStore struct {
	mu    sync.Mutex
	seats map[uint64]*model.Seat
}

// NewMemoryStore builds a MemoryStore holding copies of the given seats.
func NewMemoryStore(seats []model.Seat) *MemoryStore {
	m := &MemoryStore{seats: make(map[uint64]*model.Seat, len(seats))}
	for _, s := range seats {
		seat := s
		m.seats[seat.ID] = &seat
	}
	return m
}

// SnapshotFree returns all currently free seats ordered by row label then
// seat number, matching the ordering contract of the SQL snapshot.
func (m *MemoryStore) SnapshotFree(ctx context.Context) ([]model.Seat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	free := make([]model.Seat, 0, len(m.seats))
	for _, s := range m.seats {
		if !s.IsReserved {
			free = append(free, *s)
		}
	}
	sort.Slice(free, func(i, j int) bool {
		if free[i].RowLabel != free[j].RowLabel {
			return free[i].RowLabel < free[j].RowLabel
		}
		return free[i].SeatNumber < free[j].SeatNumber
	})
	return free, nil
}

// ClaimIfFree reserves each still-free seat in seatIDs for ownerID under
// a single lock acquisition and returns the IDs actually won.  Seats
// already reserved are skipped, never overwritten.
func (m *MemoryStore) ClaimIfFree(ctx context.Context, seatIDs []uint64, ownerID uint64) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	claimed := make([]uint64, 0, len(seatIDs))
	for _, id := range seatIDs {
		s, ok := m.seats[id]
		if !ok || s.IsReserved {
			continue
		}
		owner := ownerID
		s.IsReserved = true
		s.ReservedBy = &owner
		claimed = append(claimed, id)
	}
	return claimed, nil
}

// Release frees the seats in seatIDs that are currently reserved by
// ownerID.  Seats held by other users are untouched.
func (m *MemoryStore) Release(ctx context.Context, seatIDs []uint64, ownerID uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range seatIDs {
		s, ok := m.seats[id]
		if !ok || !s.IsReserved || s.ReservedBy == nil || *s.ReservedBy != ownerID {
			continue
		}
		s.IsReserved = false
		s.ReservedBy = nil
	}
	return nil
}

// Seats returns a copy of every seat in the store, ordered by seat
// number.  Tests use it to audit the final reservation state.
func (m *MemoryStore) Seats() []model.Seat {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]model.Seat, 0, len(m.seats))
	for _, s := range m.seats {
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SeatNumber < all[j].SeatNumber })
	return all
}
