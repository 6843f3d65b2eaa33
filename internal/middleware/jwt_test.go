package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/yeep/bus-reservation/internal/utils"
)

const testSecret = "test-secret"

func runProtected(t *testing.T, authHeader string, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, uint64, string) {
	t.Helper()
	e := echo.New()
	var gotID uint64
	var gotRole string
	h := func(c echo.Context) error {
		gotID = UserID(c)
		gotRole, _ = c.Get(CtxRole).(string)
		return c.NoContent(http.StatusOK)
	}
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec, gotID, gotRole
}

func TestJWTAuth(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "CUSTOMER", 5)
	require.NoError(t, err)

	rec, id, role := runProtected(t, "Bearer "+tok.Token, JWTAuth(testSecret))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uint64(42), id)
	require.Equal(t, "CUSTOMER", role)
}

func TestJWTAuthRejects(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "CUSTOMER", 5)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + tok.Token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			secret := testSecret
			if tc.name == "wrong secret" {
				secret = "other-secret"
			}
			rec, _, _ := runProtected(t, tc.header, JWTAuth(secret))
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	t.Run("expired token", func(t *testing.T) {
		old, err := utils.NewAccessToken(testSecret, 42, "CUSTOMER", -5)
		require.NoError(t, err)
		rec, _, _ := runProtected(t, "Bearer "+old.Token, JWTAuth(testSecret))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	driver, err := utils.NewAccessToken(testSecret, 7, "DRIVER", 5)
	require.NoError(t, err)
	customer, err := utils.NewAccessToken(testSecret, 8, "CUSTOMER", 5)
	require.NoError(t, err)

	rec, _, _ := runProtected(t, "Bearer "+driver.Token, JWTAuth(testSecret), RequireRole("DRIVER"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _, _ = runProtected(t, "Bearer "+customer.Token, JWTAuth(testSecret), RequireRole("DRIVER"))
	require.Equal(t, http.StatusForbidden, rec.Code)
}
