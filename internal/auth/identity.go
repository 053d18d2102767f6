// Package auth talks to the external identity subsystem: logging in,
// exchanging refresh tokens for short-lived bearer tokens, and inspecting
// token claims. The identity service owns credentials; this package only
// holds the resulting session material.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/smartbills/billctl/internal/models"
)

var (
	// ErrInvalidCredentials is returned when the identity service rejects
	// a login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrRefreshRejected is returned when a stored refresh token is no
	// longer accepted.
	ErrRefreshRejected = errors.New("refresh token rejected")
)

// Identity is a client for the identity service's REST endpoints.
type Identity struct {
	baseURL string
	http    *http.Client
}

// NewIdentity creates an identity client rooted at baseURL.
func NewIdentity(baseURL string) *Identity {
	return &Identity{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	PhotoURL     string `json:"photoURL"`
	RefreshToken string `json:"refreshToken"`
}

type tokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	IDToken string `json:"idToken"`
}

// Login authenticates with email and password and returns the session to
// persist. The password is sent to the identity service and never stored.
func (i *Identity) Login(ctx context.Context, email, password string) (*models.Session, error) {
	var resp loginResponse
	if err := i.post(ctx, "/v1/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		var httpErr *identityError
		if errors.As(err, &httpErr) && (httpErr.status == http.StatusBadRequest || httpErr.status == http.StatusUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &models.Session{
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		PhotoURL:     resp.PhotoURL,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// ExchangeToken trades a refresh token for a fresh short-lived bearer token.
// Called once per outgoing API request.
func (i *Identity) ExchangeToken(ctx context.Context, refreshToken string) (string, error) {
	var resp tokenResponse
	if err := i.post(ctx, "/v1/token", tokenRequest{RefreshToken: refreshToken}, &resp); err != nil {
		var httpErr *identityError
		if errors.As(err, &httpErr) && (httpErr.status == http.StatusBadRequest || httpErr.status == http.StatusUnauthorized) {
			return "", ErrRefreshRejected
		}
		return "", err
	}
	if resp.IDToken == "" {
		return "", fmt.Errorf("identity service returned an empty token")
	}
	return resp.IDToken, nil
}

type identityError struct {
	status int
}

func (e *identityError) Error() string {
	return fmt.Sprintf("identity service returned %d", e.status)
}

func (i *Identity) post(ctx context.Context, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &identityError{status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode identity response: %w", err)
	}
	return nil
}
