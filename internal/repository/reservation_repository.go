package repository

import (
	"context"
	"database/sql"
	"time"
)

// ReservationRepo provides read access to reservations.  Reservation rows
// are written exclusively by SeatRepo.ClaimIfFree (and removed by
// Release) inside the claim transaction; this repository only serves the
// display paths.  The unique key on reservations.seat_id keeps each seat
// in at most one active reservation at the constraint level.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ReservationDetail pairs a reservation with the seat it covers.  It is
// returned by ListByUser for display to customers.
type ReservationDetail struct {
	ID         uint64    `json:"id"`
	SeatID     uint64    `json:"seat_id"`
	RowLabel   string    `json:"row_label"`
	SeatNumber uint32    `json:"seat_number"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListByUser returns all reservations of the given user joined with
// their seats.  Ordering by row label then seat number gives
// deterministic output.  When no reservations exist an empty slice is
// returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = `SELECT res.id, res.seat_id, se.row_label, se.seat_number, res.created_at
	           FROM reservations res
	           JOIN seats se ON se.id = res.seat_id
	           WHERE res.user_id = ?
	           ORDER BY se.row_label, se.seat_number`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(&d.ID, &d.SeatID, &d.RowLabel, &d.SeatNumber, &d.CreatedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
