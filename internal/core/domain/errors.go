package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrSessionNotFound    = errors.New("session not found")

	ErrProductNotFound      = errors.New("product not found")
	ErrVariantNotFound      = errors.New("variant not found")
	ErrColorNotFound        = errors.New("color not found")
	ErrVariantUnavailable   = errors.New("variant out of stock")
	ErrNoProductSelected    = errors.New("no product selected")
	ErrStepIncomplete       = errors.New("current step selection missing")
	ErrConfigurationPartial = errors.New("configuration incomplete")
)
