package authn

import (
	"errors"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidJWT = errors.New("invalid jwt token")
var ErrInvalidClaims = errors.New("invalid claims")

// Claims are the token fields the engine relies on. Signature validation is
// the ingress gateway's job; the service only decodes.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"preferred_username"`
	Email    string `json:"email"`
}

// UserID returns the stable identity used for membership and verification
// records.
func (c Claims) UserID() string {
	return c.Subject
}

func ParseClaims(token string) (Claims, error) {
	claims := Claims{}
	// Check if token is JWT by attempting to parse it
	if t, err := jwt.ParseWithClaims(token, &claims, nil); err != nil {
		// Ignore validation errors (no need to check signing of key)
		if _, ok := err.(*jwt.ValidationError); !ok {
			return claims, ErrInvalidJWT
		}

		// Check if token was decoded successfully
		if t == nil {
			return claims, ErrInvalidClaims
		}
	}
	return claims, nil
}
