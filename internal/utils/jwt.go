// Package utils provides helpers for admin token creation and password
// hashing.
package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminToken is a signed JWT granting access to the administrative
// endpoints (reseed, rebuild, ledger export), together with its expiry.
type AdminToken struct {
	Token string
	Exp   time.Time
}

// NewAdminToken builds and signs an HS256 JWT carrying the ADMIN role.
// ttlMin controls the token lifetime in minutes.  Buyer-facing endpoints
// never require a token; only the admin surface checks one.
func NewAdminToken(secret string, ttlMin int) (AdminToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": "ADMIN",
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AdminToken{}, err
	}
	return AdminToken{Token: signed, Exp: exp}, nil
}
