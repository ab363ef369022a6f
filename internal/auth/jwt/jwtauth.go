package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
)

// RoleAdmin is the role claim value required by the financial endpoints.
const RoleAdmin = "ADMIN"

// Config holds the token signing settings.
type Config struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTTTL    time.Duration `mapstructure:"jwt_ttl"`
}

// VerifyToken checks a token's signature and expiry and returns its
// subject.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (string, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return "", err
	}
	return t.Subject(), nil
}

// NewTokenWithSubject creates a JWT with optional subject (username) and
// role claims. Subject is used for admin audit trails.
func NewTokenWithSubject(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, subject, role string) (string, error) {
	claims := map[string]interface{}{
		"exp": time.Now().Add(ttl).Unix(),
	}
	if subject != "" {
		claims["sub"] = subject
	}
	if role != "" {
		claims["role"] = role
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return ts, err
	}
	return ts, nil
}

// IsAdmin reports whether the decoded claims carry the admin role.
func IsAdmin(claims map[string]interface{}) bool {
	role, ok := claims["role"].(string)
	return ok && role == RoleAdmin
}
