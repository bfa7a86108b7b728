package handler

import "github.com/premiumerp/dashboard-gateway/internal/core/domain"

// successResponse is the standard success envelope: {success:true, data}.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses: {success:false, message, errors, status}.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors"`
	Status  int    `json:"status"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name                 string `json:"name"                  validate:"required"`
	Email                string `json:"email"                 validate:"required,email"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type updateUserRequest struct {
	ID          string   `json:"id"    validate:"required"`
	Name        string   `json:"name"  validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// authData is the payload of successful login/register responses. Token is
// the gateway session token; the upstream token never leaves the gateway.
type authData struct {
	User  *domain.UserRecord `json:"user"`
	Token string             `json:"token"`
}

type profileData struct {
	User        *domain.UserRecord `json:"user"`
	Roles       []string           `json:"roles"`
	Permissions []string           `json:"permissions"`
	PrimaryRole string             `json:"primary_role,omitempty"`
}
