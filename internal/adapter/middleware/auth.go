package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDContextKey = "auth.user_id"

// UserIDFrom returns the authenticated user's public id, or "" when the
// request was not authenticated.
func UserIDFrom(c echo.Context) string {
	if v, ok := c.Get(userIDContextKey).(string); ok {
		return v
	}
	return ""
}

type authClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Auth validates a Bearer token signed with HS256 and stashes the user id in
// the request context. Handlers stay unaware of the token format.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims := &authClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid || claims.UserID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			c.Set(userIDContextKey, claims.UserID)
			return next(c)
		}
	}
}

// SignToken issues a token for the given user id. Used by tests and by
// whatever registration/login service sits in front of this API.
func SignToken(secret, userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{UserID: userID})
	return token.SignedString([]byte(secret))
}

// SetUserID is a test hook for exercising handlers without a real token.
func SetUserID(c echo.Context, userID string) { c.Set(userIDContextKey, userID) }
