package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework handles routing

	"github.com/iliyamo/train-seat-booking/internal/handler"    // handlers implement the endpoint logic
	"github.com/iliyamo/train-seat-booking/internal/middleware" // middleware for JWT auth and rate limiting
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems use this to verify the
	// service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the identity endpoints under /v1/auth.
// Register and login require no session; both return a signed access
// token whose subject is the numeric user id consumed by the booking
// path.  The profile endpoint sits behind the same JWT middleware as
// the booking routes.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterSeats registers the seat endpoints.  The listing and the
// single-seat detail are public so guests can preview availability
// before signing up.  The reservation
// endpoint and the user's reservation list require a valid access token,
// and the reservation endpoint additionally sits behind the rate
// limiter because it is the only write path.
func RegisterSeats(e *echo.Echo, s *handler.SeatHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	e.GET("/v1/seats", s.ListSeats)
	e.GET("/v1/seats/:id", s.GetSeat)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/reservations", s.MyReservations)
	if limiter != nil {
		auth.POST("/seats/reserve", s.Reserve, limiter)
	} else {
		auth.POST("/seats/reserve", s.Reserve)
	}
}
