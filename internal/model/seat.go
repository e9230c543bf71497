package model

import "time"

// Seat describes a single bookable seat in the coach.  Seats are
// provisioned once when the venue layout is created and afterwards only
// their reservation state changes; the allocation core never creates or
// destroys seat rows.  SeatNumber is unique across the whole venue, not
// just within a row, which is what the cross-row adjacency scan relies on.
//
// Fields:
//  ID         – primary key identifier.
//  RowLabel   – letter or string designating the row (A, B, ... AA).
//  SeatNumber – global seat number, unique across all rows.
//  IsReserved – whether the seat is currently reserved.
//  ReservedBy – user holding the seat; nil exactly when IsReserved is false.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Seat struct {
	ID         uint64    // seats.id
	RowLabel   string    // seats.row_label
	SeatNumber uint32    // seats.seat_number
	IsReserved bool      // seats.is_reserved
	ReservedBy *uint64   // seats.reserved_by (nullable)
	CreatedAt  time.Time // seats.created_at
	UpdatedAt  time.Time // seats.updated_at
}
