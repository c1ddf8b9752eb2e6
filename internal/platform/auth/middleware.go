// Package auth implements the staff credential gate: a single configured
// username/password pair exchanged for a signed session token. It is an
// access gate for the staff surface, not an identity system.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type contextKey string

const userKey contextKey = "staff_user"

// Claims is the staff session token payload.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

const sessionTTL = 12 * time.Hour

// Config holds the static staff credentials and the token signing key.
type Config struct {
	SigningKey []byte
	Username   string
	Password   string
	// DevBypass lets requests without a token through, the development
	// convenience mode. Never enabled in production.
	DevBypass bool
}

// IssueToken checks the submitted credentials against the configured pair
// and returns a signed session token.
func (cfg Config) IssueToken(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Password)) == 1
	if !userOK || !passOK {
		return "", fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
		Role: "staff",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(cfg.SigningKey)
}

// StaffRequired guards the staff route group. It expects a bearer token
// signed with the configured key; in dev-bypass mode unauthenticated
// requests pass through as a default staff user.
func StaffRequired(cfg Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if cfg.DevBypass {
					c.SetRequest(c.Request().WithContext(
						context.WithValue(c.Request().Context(), userKey, "dev-staff")))
					return next(c)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				return cfg.SigningKey, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.SetRequest(c.Request().WithContext(
				context.WithValue(c.Request().Context(), userKey, claims.Subject)))
			return next(c)
		}
	}
}

// UserFromContext returns the authenticated staff username, if any.
func UserFromContext(ctx context.Context) string {
	u, _ := ctx.Value(userKey).(string)
	return u
}
