package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims represents the typed JWT carried in the session cookie. Only
// the user id is embedded; permissions are loaded fresh per request so
// revocations take effect immediately.
type SessionClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}
