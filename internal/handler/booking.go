package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yeep/bus-reservation/internal/middleware"
	"github.com/yeep/bus-reservation/internal/model"
	"github.com/yeep/bus-reservation/internal/repository"
	"github.com/yeep/bus-reservation/internal/service"
)

// BookingHandler serves the booking lifecycle: create, cancel, list and
// look up, plus the driver manifest.
type BookingHandler struct {
	Reservations *service.ReservationService
}

func NewBookingHandler(rs *service.ReservationService) *BookingHandler {
	return &BookingHandler{Reservations: rs}
}

type createBookingReq struct {
	// SeatNumber keeps the single-seat call simple; SeatNumbers books a
	// group in one atomic request.  Both may be set.
	SeatNumber  string   `json:"seat_number"`
	SeatNumbers []string `json:"seat_numbers"`
}

func (r createBookingReq) seats() []string {
	seats := r.SeatNumbers
	if s := strings.TrimSpace(r.SeatNumber); s != "" {
		seats = append([]string{s}, seats...)
	}
	return seats
}

// Create books one or more seats on a trip for the authenticated user.
// All-or-nothing: if any requested seat is taken, nothing is booked and
// the response names every conflicting seat.
func (h *BookingHandler) Create(c echo.Context) error {
	tripID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tripID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	bookings, err := h.Reservations.BookSeats(c.Request().Context(), tripID, middleware.UserID(c), req.seats())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"bookings": bookings})
}

// Cancel cancels one of the caller's bookings.  Cancelling an already
// cancelled booking is a conflict, not a success, so retries cannot
// mask an earlier cancellation.
func (h *BookingHandler) Cancel(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Reservations.Cancel(c.Request().Context(), bookingID, middleware.UserID(c))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// MyBookings lists the caller's bookings with optional status filter and
// sorting (sort=date|status|route|seat, order=asc|desc).
func (h *BookingHandler) MyBookings(c echo.Context) error {
	status := strings.ToLower(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && status != model.StatusConfirmed && status != model.StatusCancelled {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	bookings, err := h.Reservations.BookingsByHolder(c.Request().Context(), middleware.UserID(c),
		status, c.QueryParam("sort"), c.QueryParam("order"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// ByCode resolves a booking from its reference code.  Customers can only
// see their own bookings; drivers can look up any code at boarding.
func (h *BookingHandler) ByCode(c echo.Context) error {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid code"})
	}
	b, err := h.Reservations.BookingByCode(c.Request().Context(), code)
	if err != nil {
		return writeDomainErr(c, err)
	}
	role, _ := c.Get(middleware.CtxRole).(string)
	if role != model.RoleDriver && b.UserID != middleware.UserID(c) {
		// do not reveal that the code exists
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// Manifest returns the confirmed passenger list for a route on a date,
// grouped by trip departure.  Drivers only.
func (h *BookingHandler) Manifest(c echo.Context) error {
	routeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || routeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid route id"})
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	entries, err := h.Reservations.Manifest(c.Request().Context(), routeID, date)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"route_id": routeID, "date": date, "manifest": entries})
}

// writeDomainErr maps service and repository errors onto the HTTP
// surface.  Transient storage trouble is 503 so clients know a retry
// may succeed; conflicts and precondition failures are terminal.
func writeDomainErr(c echo.Context, err error) error {
	var conflict *repository.SeatConflictError
	switch {
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": conflict.Error(), "seats": conflict.Seats})
	case errors.Is(err, repository.ErrAlreadyCancelled):
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking already cancelled"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	case errors.Is(err, repository.ErrTripNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
	case errors.Is(err, repository.ErrRouteNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, repository.ErrHolderNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "holder not found"})
	case errors.Is(err, service.ErrNoSeats), errors.Is(err, service.ErrInvalidSeat):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "temporarily unavailable, please retry"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
