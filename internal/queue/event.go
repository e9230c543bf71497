// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"fmt"
	"time"

	"github.com/iliyamo/train-seat-booking/internal/allocation"
)

// SeatsReservedEvent is published after a booking commits.  It carries
// enough information for downstream consumers to log, notify or feed
// analytics without querying the primary database.
type SeatsReservedEvent struct {
	UserID     uint64   `json:"user_id"`
	SeatIDs    []uint64 `json:"seat_ids"`
	SeatLabels []string `json:"seats"`
	Count      int      `json:"count"`
	ReservedAt string   `json:"reserved_at"`
}

// NewSeatsReservedEvent builds the event for a successful allocation.
// Seat labels are rendered as "A3" style row+number strings in the order
// the seats were assigned.
func NewSeatsReservedEvent(res *allocation.Result) SeatsReservedEvent {
	ids := make([]uint64, 0, len(res.Seats))
	labels := make([]string, 0, len(res.Seats))
	for _, s := range res.Seats {
		ids = append(ids, s.ID)
		labels = append(labels, fmt.Sprintf("%s%d", s.RowLabel, s.SeatNumber))
	}
	return SeatsReservedEvent{
		UserID:     res.OwnerID,
		SeatIDs:    ids,
		SeatLabels: labels,
		Count:      len(res.Seats),
		ReservedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
