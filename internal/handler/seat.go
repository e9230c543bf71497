package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-booking/internal/allocation"
	"github.com/iliyamo/train-seat-booking/internal/model"
	"github.com/iliyamo/train-seat-booking/internal/queue"
	"github.com/iliyamo/train-seat-booking/internal/repository"
)

// SeatLister exposes the read-only seat table used for display.  It is
// deliberately separate from the allocation store contract: the display
// path never participates in the write path.
type SeatLister interface {
	ListAll(ctx context.Context) ([]model.Seat, error)
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
}

// ReservationLister lists a user's reservations for display.
type ReservationLister interface {
	ListByUser(ctx context.Context, userID uint64) ([]repository.ReservationDetail, error)
}

// EventPublisher sends a seats.reserved event to the broker.  Publish
// failures never fail a booking; they are logged and dropped.
type EventPublisher func(ctx context.Context, ev queue.SeatsReservedEvent) error

// SeatHandler serves the seat listing and the reservation endpoint.  The
// reservation endpoint is a thin shell: identity comes from the JWT
// middleware, everything else is delegated to the allocation service,
// and the handler only translates its errors into HTTP responses.
type SeatHandler struct {
	Alloc        *allocation.Service
	Seats        SeatLister
	Reservations ReservationLister
	Publish      EventPublisher // optional; nil disables eventing
}

// NewSeatHandler constructs a SeatHandler and panics if a required
// dependency is nil.  Publish may be nil.
func NewSeatHandler(alloc *allocation.Service, seats SeatLister, reservations ReservationLister, publish EventPublisher) *SeatHandler {
	if alloc == nil || seats == nil || reservations == nil {
		panic("nil dependency passed to NewSeatHandler")
	}
	return &SeatHandler{Alloc: alloc, Seats: seats, Reservations: reservations, Publish: publish}
}

// seatPart is the wire shape of one seat in responses.
type seatPart struct {
	ID         uint64 `json:"id"`
	RowLabel   string `json:"row"`
	SeatNumber uint32 `json:"seat_number"`
	IsReserved bool   `json:"is_reserved"`
}

type reserveReq struct {
	SeatCount int `json:"seat_count"`
}

// ListSeats handles GET /v1/seats.  It returns the full seat table for
// display, ordered by row label then seat number.
func (h *SeatHandler) ListSeats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	seats, err := h.Seats.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	out := make([]seatPart, 0, len(seats))
	for _, s := range seats {
		out = append(out, seatPart{ID: s.ID, RowLabel: s.RowLabel, SeatNumber: s.SeatNumber, IsReserved: s.IsReserved})
	}
	return c.JSON(http.StatusOK, echo.Map{"seats": out})
}

// GetSeat handles GET /v1/seats/:id.  It returns one seat's current
// state, including who holds it when reserved.
func (h *SeatHandler) GetSeat(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	s, err := h.Seats.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seat"})
	}
	return c.JSON(http.StatusOK, echo.Map{"seat": seatPart{
		ID: s.ID, RowLabel: s.RowLabel, SeatNumber: s.SeatNumber, IsReserved: s.IsReserved,
	}})
}

// Reserve handles POST /v1/seats/reserve.  The body carries the
// requested seat count; the owning user comes from the access token.
// The response is all-or-nothing: either the exact requested seats or
// an error with no inventory change behind it.
func (h *SeatHandler) Reserve(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	res, err := h.Alloc.Allocate(c.Request().Context(), userID, req.SeatCount)
	if err != nil {
		switch {
		case errors.Is(err, allocation.ErrInvalidCount):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, allocation.ErrInsufficientInventory):
			return c.JSON(http.StatusConflict, echo.Map{"error": "not enough free seats available"})
		case errors.Is(err, allocation.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "seats were taken by another booking, please retry"})
		default:
			log.Printf("reserve: allocation failed for user %d: %v", userID, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
		}
	}

	out := make([]seatPart, 0, len(res.Seats))
	for _, s := range res.Seats {
		out = append(out, seatPart{ID: s.ID, RowLabel: s.RowLabel, SeatNumber: s.SeatNumber, IsReserved: true})
	}
	if h.Publish != nil {
		ev := queue.NewSeatsReservedEvent(res)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.Publish(ctx, ev); err != nil {
				log.Printf("reserve: publish seats.reserved failed: %v", err)
			}
		}()
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "seats reserved successfully",
		"user_id": res.OwnerID,
		"seats":   out,
	})
}

// MyReservations handles GET /v1/reservations.  It lists the calling
// user's reservations with their seat positions.
func (h *SeatHandler) MyReservations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	details, err := h.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": details})
}
