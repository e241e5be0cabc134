package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/yut0n/ticketstock/internal/utils"
)

const testSecret = "unit-test-secret"

func callAdminRoute(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/init", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AdminAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	t.Parallel()
	tok, err := utils.NewAdminToken(testSecret, 5)
	if err != nil {
		t.Fatalf("NewAdminToken: %v", err)
	}
	rec := callAdminRoute(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestAdminAuthMissingHeader(t *testing.T) {
	t.Parallel()
	rec := callAdminRoute(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestAdminAuthWrongSecret(t *testing.T) {
	t.Parallel()
	tok, err := utils.NewAdminToken("some-other-secret", 5)
	if err != nil {
		t.Fatalf("NewAdminToken: %v", err)
	}
	rec := callAdminRoute(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestAdminAuthExpiredToken(t *testing.T) {
	t.Parallel()
	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": "ADMIN",
		"exp":  time.Now().Add(-time.Hour).Unix(),
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	rec := callAdminRoute(t, "Bearer "+signed)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestAdminAuthRejectsNonAdminRole(t *testing.T) {
	t.Parallel()
	claims := jwt.MapClaims{
		"sub":  "someone",
		"role": "CUSTOMER",
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	rec := callAdminRoute(t, "Bearer "+signed)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}
}
