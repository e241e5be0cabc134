package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yut0n/ticketstock/internal/utils"
)

// AuthHandler issues admin tokens.  Buyers are never authenticated; the
// token only gates the destructive admin operations.
type AuthHandler struct {
	PassHash  string // bcrypt hash of the admin password
	JWTSecret string
	TTLMin    int
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(passHash, jwtSecret string, ttlMin int) *AuthHandler {
	return &AuthHandler{PassHash: passHash, JWTSecret: jwtSecret, TTLMin: ttlMin}
}

// Login handles POST /v1/admin/login.  On a correct password it returns a
// signed admin token and its expiry.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password is required"})
	}
	if !utils.VerifyPassword(h.PassHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid password"})
	}
	tok, err := utils.NewAdminToken(h.JWTSecret, h.TTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to sign token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":      tok.Token,
		"expires_at": tok.Exp.Format(time.RFC3339),
	})
}
