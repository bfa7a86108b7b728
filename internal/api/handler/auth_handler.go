package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
	"github.com/premiumerp/dashboard-gateway/internal/core/ports"
)

// ConfigurationDiscarder drops a session's wizard state on teardown.
type ConfigurationDiscarder interface {
	Discard(sid string)
}

// AuthHandler handles the session lifecycle endpoints.
type AuthHandler struct {
	sessions       ports.SessionService
	configurations ConfigurationDiscarder
}

func NewAuthHandler(sessions ports.SessionService, configurations ConfigurationDiscarder) *AuthHandler {
	return &AuthHandler{sessions: sessions, configurations: configurations}
}

// Login authenticates a user and returns the user record plus a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.sessions.Login(c.Request().Context(), ports.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Data:    authData{User: result.Session.User, Token: result.Token},
	})
}

// Register creates an account and establishes a session, same contract as Login.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  successResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.sessions.Register(c.Request().Context(), ports.Registration{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, successResponse{
		Success: true,
		Data:    authData{User: result.Session.User, Token: result.Token},
	})
}

// Logout tears the session down. Local teardown always completes, even when
// the identity backend is unreachable.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	_, sid, err := ctxSession(c)
	if err != nil {
		return err
	}

	h.configurations.Discard(sid)
	if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "logged out"})
}

// Profile refreshes the user record, roles and permissions from the backend.
//
// @Summary      Fetch the current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	_, sid, err := ctxSession(c)
	if err != nil {
		return err
	}

	sess, err := h.sessions.FetchProfile(c.Request().Context(), sid)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Data: toProfileData(sess)})
}

// UpdateProfile replaces the session's user record wholesale and recomputes
// the derived role and permission sets.
//
// @Summary      Update the current user record
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Updated user record"
// @Success      200   {object}  successResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	_, sid, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sess, err := h.sessions.UpdateUser(c.Request().Context(), sid, &domain.UserRecord{
		ID:          req.ID,
		Name:        req.Name,
		Email:       req.Email,
		Roles:       req.Roles,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Data: toProfileData(sess)})
}

func toProfileData(sess domain.Session) profileData {
	data := profileData{
		User:        sess.User,
		Roles:       sess.Roles,
		Permissions: sess.Permissions,
	}
	if role, ok := sess.PrimaryRole(); ok {
		data.PrimaryRole = role
	}
	return data
}
