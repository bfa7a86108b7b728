package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
)

// ctxSession extracts the session injected by the Session middleware and
// performs a fast-fail check before any service call: an authenticated
// session with a session id proves the middleware ran.
func ctxSession(c echo.Context) (domain.Session, string, error) {
	sess, ok := c.Get("session").(domain.Session)
	if !ok || !sess.Authenticated {
		return domain.Session{}, "", echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	sid, _ := c.Get("session_id").(string)
	if sid == "" {
		return domain.Session{}, "", echo.NewHTTPError(http.StatusUnauthorized, "missing session id")
	}

	return sess, sid, nil
}
