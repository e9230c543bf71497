package allocation

import (
	"sort"

	"github.com/iliyamo/train-seat-booking/internal/model"
)

// Plan selects which free seats should satisfy a request for count seats.
// It is pure and deterministic: given the same snapshot and count it
// always returns the same ordered seat list, which makes replanning after
// a lost race safe and the selection testable without a database.
//
// Selection runs in priority order:
//
//  1. Row-exact fit: rows are walked in ascending row label order and the
//     first row holding at least count free seats supplies its lowest
//     numbered count seats.  This keeps a party together in one row.
//  2. Cross-row adjacency: when no single row suffices, all free seats are
//     sorted by global seat number and scanned for adjacent pairs (numbers
//     differing by exactly 1; row continuity is deliberately ignored, seat
//     numbers run through the whole coach).  Each seat joins at most one
//     pair.  The scan stops once the pool reaches count.
//  3. Fill: remaining free seats are appended by ascending seat number,
//     skipping seats already chosen, until the pool reaches count.
//
// The returned slice holds exactly count seats.  ErrInsufficientInventory
// is returned when the whole free pool is smaller than count; count must
// be validated positive by the caller.
func Plan(free []model.Seat, count int) ([]model.Seat, error) {
	if count > len(free) {
		return nil, ErrInsufficientInventory
	}

	// Group free seats by row and order rows by label.  Within a row seats
	// are ordered by seat number so the "first N of the row" is well defined.
	byRow := make(map[string][]model.Seat)
	labels := make([]string, 0)
	for _, s := range free {
		if _, ok := byRow[s.RowLabel]; !ok {
			labels = append(labels, s.RowLabel)
		}
		byRow[s.RowLabel] = append(byRow[s.RowLabel], s)
	}
	sort.Strings(labels)
	for _, l := range labels {
		row := byRow[l]
		sort.Slice(row, func(i, j int) bool { return row[i].SeatNumber < row[j].SeatNumber })
		if len(row) >= count {
			return append([]model.Seat(nil), row[:count]...), nil
		}
	}

	// No row-exact fit.  Work over the global seat-number order.
	pool := append([]model.Seat(nil), free...)
	sort.Slice(pool, func(i, j int) bool { return pool[i].SeatNumber < pool[j].SeatNumber })

	chosen := make([]model.Seat, 0, count)
	taken := make(map[uint64]struct{}, count)
	for i := 0; i+1 < len(pool) && len(chosen) < count; i++ {
		if pool[i+1].SeatNumber == pool[i].SeatNumber+1 {
			chosen = append(chosen, pool[i], pool[i+1])
			taken[pool[i].ID] = struct{}{}
			taken[pool[i+1].ID] = struct{}{}
			i++ // the right half of the pair joins no second pair
		}
	}
	for i := 0; i < len(pool) && len(chosen) < count; i++ {
		if _, ok := taken[pool[i].ID]; ok {
			continue
		}
		chosen = append(chosen, pool[i])
	}
	// Pairing can overshoot by one when count is odd; trim to the exact
	// request so the result is never larger than asked for.
	return chosen[:count], nil
}

// SeatIDs extracts the identifiers of a planned seat list in plan order.
func SeatIDs(seats []model.Seat) []uint64 {
	ids := make([]uint64, len(seats))
	for i, s := range seats {
		ids[i] = s.ID
	}
	return ids
}
