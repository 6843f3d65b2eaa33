package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/yeep/bus-reservation/internal/repository"
	"github.com/yeep/bus-reservation/internal/service"
)

func domainErrStatus(t *testing.T, err error) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, writeDomainErr(c, err))
	return rec.Code
}

func TestWriteDomainErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"seat conflict", &repository.SeatConflictError{Seats: []string{"1A"}}, http.StatusConflict},
		{"already cancelled", repository.ErrAlreadyCancelled, http.StatusConflict},
		{"forbidden", repository.ErrForbidden, http.StatusForbidden},
		{"trip not found", repository.ErrTripNotFound, http.StatusNotFound},
		{"route not found", repository.ErrRouteNotFound, http.StatusNotFound},
		{"booking not found", repository.ErrBookingNotFound, http.StatusNotFound},
		{"holder not found", repository.ErrHolderNotFound, http.StatusNotFound},
		{"no seats", service.ErrNoSeats, http.StatusBadRequest},
		{"invalid seat", service.ErrInvalidSeat, http.StatusBadRequest},
		{"storage down", repository.ErrUnavailable, http.StatusServiceUnavailable},
		{"wrapped storage down", errors.Join(repository.ErrUnavailable, errors.New("dial tcp")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, domainErrStatus(t, tc.err))
		})
	}
}

func TestCreateRejectsBadTripID(t *testing.T) {
	h := NewBookingHandler(nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("zero")

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelRejectsBadBookingID(t *testing.T) {
	h := NewBookingHandler(nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("0")

	require.NoError(t, h.Cancel(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
