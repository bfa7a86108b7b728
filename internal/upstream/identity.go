// Package upstream holds the HTTP client for the identity/ERP backend. It is
// a thin transport wrapper: it attaches the bearer token, enforces a fixed
// request timeout and normalizes every failure into the envelope shape
// {success:false, message, errors, status}.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/premiumerp/dashboard-gateway/internal/api/metrics"
	"github.com/premiumerp/dashboard-gateway/internal/core/domain"
	"github.com/premiumerp/dashboard-gateway/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Client talks to the upstream identity API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient builds a Client for the given base URL (e.g.
// "http://127.0.0.1:8000/api/v1"). A default timeout is applied when none is
// provided.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// envelope is the backend's uniform response shape.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

// authData is the payload of a successful login/register response.
type authData struct {
	User  *domain.UserRecord `json:"user"`
	Token string             `json:"token"`
}

// profileData is the payload of a successful profile response.
type profileData struct {
	User *domain.UserRecord `json:"user"`
}

func (c *Client) Login(ctx context.Context, creds ports.Credentials) (*ports.AuthPayload, error) {
	env, err := c.do(ctx, http.MethodPost, "/login", "", map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	})
	if err != nil {
		return nil, err
	}
	return decodeAuthPayload(env, "Login failed")
}

func (c *Client) Register(ctx context.Context, reg ports.Registration) (*ports.AuthPayload, error) {
	env, err := c.do(ctx, http.MethodPost, "/register", "", map[string]string{
		"name":                  reg.Name,
		"email":                 reg.Email,
		"password":              reg.Password,
		"password_confirmation": reg.PasswordConfirmation,
	})
	if err != nil {
		return nil, err
	}
	return decodeAuthPayload(env, "Registration failed")
}

// Logout notifies the backend. The caller tears local state down regardless
// of the outcome.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/logout", token, nil)
	return err
}

func (c *Client) Profile(ctx context.Context, token string) (*domain.UserRecord, error) {
	env, err := c.do(ctx, http.MethodGet, "/profile", token, nil)
	if err != nil {
		return nil, err
	}
	var data profileData
	if env.Data == nil || json.Unmarshal(env.Data, &data) != nil || data.User == nil {
		return nil, &ports.EnvelopeError{Message: "malformed profile response", Status: http.StatusOK}
	}
	return data.User, nil
}

// do issues one request and normalizes the outcome. A transport failure (no
// response at all) maps to status 0 with a fixed message; any non-2xx status
// or success=false body maps to an EnvelopeError carrying the backend's
// message and validation errors.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("upstream request failed")
		metrics.UpstreamRequestsTotal.WithLabelValues(path, "0").Inc()
		return nil, ports.NetworkError()
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()

	var env envelope
	// A body that fails to decode leaves env zero-valued; the status code
	// still drives classification.
	_ = json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode >= 400 {
		msg := env.Message
		if msg == "" {
			msg = "An error occurred"
		}
		return nil, &ports.EnvelopeError{Message: msg, Errors: env.Errors, Status: resp.StatusCode}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "An error occurred"
		}
		return nil, &ports.EnvelopeError{Message: msg, Errors: env.Errors, Status: resp.StatusCode}
	}
	return &env, nil
}

func decodeAuthPayload(env *envelope, fallback string) (*ports.AuthPayload, error) {
	var data authData
	if env.Data == nil || json.Unmarshal(env.Data, &data) != nil || data.User == nil || data.Token == "" {
		msg := env.Message
		if msg == "" {
			msg = fallback
		}
		return nil, &ports.EnvelopeError{Message: msg, Status: http.StatusOK}
	}
	return &ports.AuthPayload{User: data.User, Token: data.Token}, nil
}
