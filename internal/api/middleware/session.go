package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
)

// LoginRoute is the client-side route unauthenticated requests are pointed
// at. The attempted path travels along so the client can return after login.
const LoginRoute = "/login"

// SessionLoader restores a session from persisted state.
type SessionLoader interface {
	Restore(ctx context.Context, sid string) (domain.Session, error)
}

// unauthorizedResponse is the 401 envelope. Login carries the redirect target
// with the attempted path, except when the request is already on the login
// route (no redirect loop).
type unauthorizedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors"`
	Status  int    `json:"status"`
	Login   string `json:"login"`
}

// Session validates the gateway bearer token and loads the session into the
// echo context under "session" / "session_id".
func Session(jwtSecret string, loader SessionLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized(c, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return unauthorized(c, "invalid token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return unauthorized(c, "invalid token")
			}

			sess, err := loader.Restore(c.Request().Context(), sid)
			if err != nil || !sess.Authenticated {
				return unauthorized(c, "session expired")
			}

			c.Set("session", sess)
			c.Set("session_id", sid)

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, message string) error {
	login := LoginRoute
	if path := c.Request().URL.Path; path != LoginRoute {
		login = LoginRoute + "?next=" + url.QueryEscape(path)
	}
	return c.JSON(http.StatusUnauthorized, unauthorizedResponse{
		Success: false,
		Message: message,
		Status:  http.StatusUnauthorized,
		Login:   login,
	})
}
