package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons
	"strings"      // strings builds IN-clause placeholders

	"github.com/iliyamo/train-seat-booking/internal/model"
)

// SeatRepo is the durable Seat Inventory Store.  It is the only code path
// that mutates seat rows: handlers and the allocation service go through
// SnapshotFree / ClaimIfFree / Release and never touch the table
// directly.  ClaimIfFree is the correctness primitive the whole allocator
// rests on: the conditional update and the reservation insert run in one
// transaction, so two concurrent committers can never both win a seat.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// SnapshotFree returns every free seat ordered by row_label then
// seat_number.  The read takes no locks beyond the statement itself; the
// snapshot may be stale by the time a claim runs, which the committer's
// conflict handling accounts for.
func (r *SeatRepo) SnapshotFree(ctx context.Context) ([]model.Seat, error) {
	const q = `SELECT id, row_label, seat_number, is_reserved, reserved_by, created_at, updated_at
	           FROM seats
	           WHERE is_reserved = 0
	           ORDER BY row_label, seat_number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ClaimIfFree atomically reserves the still-free seats among seatIDs for
// ownerID and returns exactly the IDs it won.  Each seat is claimed with
// a conditional UPDATE guarded by is_reserved = 0; rows-affected decides
// whether this caller won the seat.  The matching reservations rows are
// inserted in the same transaction, so either a seat flips to reserved
// together with its ownership record or not at all.  Seats lost to a
// concurrent claimant are skipped, never overwritten, and may leave the
// returned set a strict subset of the request.
func (r *SeatRepo) ClaimIfFree(ctx context.Context, seatIDs []uint64, ownerID uint64) ([]uint64, error) {
	if len(seatIDs) == 0 {
		return []uint64{}, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const claimQ = `UPDATE seats
	                SET is_reserved = 1, reserved_by = ?, updated_at = CURRENT_TIMESTAMP
	                WHERE id = ? AND is_reserved = 0`
	claimed := make([]uint64, 0, len(seatIDs))
	for _, id := range seatIDs {
		res, err := tx.ExecContext(ctx, claimQ, ownerID, id)
		if err != nil {
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n == 1 {
			claimed = append(claimed, id)
		}
	}
	if len(claimed) > 0 {
		query := `INSERT INTO reservations (user_id, seat_id) VALUES `
		args := make([]interface{}, 0, len(claimed)*2)
		for i, id := range claimed {
			if i > 0 {
				query += ","
			}
			query += "(?, ?)"
			args = append(args, ownerID, id)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return claimed, nil
}

// Release frees seats currently reserved by ownerID and removes their
// reservations rows, both in one transaction.  The reserved_by guard
// makes the release safe to run with stale inputs: seats meanwhile won
// by someone else are untouched.
func (r *SeatRepo) Release(ctx context.Context, seatIDs []uint64, ownerID uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(seatIDs)), ",")
	args := make([]interface{}, 0, len(seatIDs)+1)
	args = append(args, ownerID)
	for _, id := range seatIDs {
		args = append(args, id)
	}
	delQ := `DELETE FROM reservations WHERE user_id = ? AND seat_id IN (` + placeholders + `)`
	if _, err := tx.ExecContext(ctx, delQ, args...); err != nil {
		return err
	}
	relQ := `UPDATE seats
	         SET is_reserved = 0, reserved_by = NULL, updated_at = CURRENT_TIMESTAMP
	         WHERE reserved_by = ? AND id IN (` + placeholders + `)`
	if _, err := tx.ExecContext(ctx, relQ, args...); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListAll returns the full seat table ordered by row_label then
// seat_number.  It serves the read-only display endpoint and is not part
// of the allocation write path.
func (r *SeatRepo) ListAll(ctx context.Context) ([]model.Seat, error) {
	const q = `SELECT id, row_label, seat_number, is_reserved, reserved_by, created_at, updated_at
	           FROM seats
	           ORDER BY row_label, seat_number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, row_label, seat_number, is_reserved, reserved_by, created_at, updated_at
	           FROM seats WHERE id = ?`
	var s model.Seat
	var reservedBy sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.RowLabel, &s.SeatNumber, &s.IsReserved, &reservedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	if reservedBy.Valid {
		uid := uint64(reservedBy.Int64)
		s.ReservedBy = &uid
	}
	return &s, nil
}

// SeedCoach provisions the fixed venue layout: rowCount rows of
// seatsPerRow seats, numbered continuously from 1 across the whole
// coach.  It is idempotent: when any seat row already exists the seed is
// skipped, because the layout is created once and never mutated by the
// allocation core.
func (r *SeatRepo) SeedCoach(ctx context.Context, rowCount, seatsPerRow int) error {
	var existing int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seats`).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}
	query := `INSERT INTO seats (row_label, seat_number) VALUES `
	args := make([]interface{}, 0, rowCount*seatsPerRow*2)
	num := uint32(0)
	for row := 0; row < rowCount; row++ {
		for s := 0; s < seatsPerRow; s++ {
			num++
			if len(args) > 0 {
				query += ","
			}
			query += "(?, ?)"
			args = append(args, rowLabel(row), num)
		}
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// rowLabel converts a zero-based row index to an alphabetical label like
// A, B, ... Z, AA, AB.
func rowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// scanSeat reads one seats row from a *sql.Rows cursor.
func scanSeat(rows *sql.Rows) (model.Seat, error) {
	var s model.Seat
	var reservedBy sql.NullInt64
	if err := rows.Scan(&s.ID, &s.RowLabel, &s.SeatNumber, &s.IsReserved, &reservedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return model.Seat{}, err
	}
	if reservedBy.Valid {
		uid := uint64(reservedBy.Int64)
		s.ReservedBy = &uid
	}
	return s, nil
}
