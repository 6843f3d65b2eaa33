package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yeep/bus-reservation/internal/service"
)

// TripHandler serves the public browse surface: routes, daily trips and
// live seat availability.
type TripHandler struct {
	Schedule     *service.ScheduleService
	Availability *service.AvailabilityService
}

func NewTripHandler(sch *service.ScheduleService, av *service.AvailabilityService) *TripHandler {
	return &TripHandler{Schedule: sch, Availability: av}
}

// Routes lists the shuttle lines.
func (h *TripHandler) Routes(c echo.Context) error {
	routes, err := h.Schedule.Routes(c.Request().Context())
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"routes": routes})
}

// TripsByRoute lists a route's trips on a date together with remaining
// seats, so clients can pick a departure without a second request.
func (h *TripHandler) TripsByRoute(c echo.Context) error {
	routeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || routeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid route id"})
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	trips, err := h.Availability.TripsForRouteDate(c.Request().Context(), routeID, date)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"route_id": routeID, "date": date, "trips": trips})
}

// TripByID returns one trip with its remaining seats.
func (h *TripHandler) TripByID(c echo.Context) error {
	tripID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tripID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	trip, err := h.Availability.TripByID(c.Request().Context(), tripID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, trip)
}

// SeatAvailability returns the live seat counts for one trip.
func (h *TripHandler) SeatAvailability(c echo.Context) error {
	tripID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tripID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	av, err := h.Availability.Availability(c.Request().Context(), tripID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, av)
}

// SeatMap returns every seat of a trip with its booked flag, in plan
// order, for seat-picker UIs.
func (h *TripHandler) SeatMap(c echo.Context) error {
	tripID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tripID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid trip id"})
	}
	seats, err := h.Availability.SeatMap(c.Request().Context(), tripID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"trip_id": tripID, "seats": seats})
}
