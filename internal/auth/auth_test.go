package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbills/billctl/internal/models"
	"github.com/smartbills/billctl/internal/session"
)

func signedToken(t *testing.T, email string, exp time.Time) string {
	t.Helper()
	claims := &Claims{
		Email: email,
		Name:  "Rahim",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestInspect(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	claims, err := Inspect(signedToken(t, "rahim@example.com", exp))
	require.NoError(t, err)
	assert.Equal(t, "rahim@example.com", claims.Email)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestInspectRejectsGarbage(t *testing.T) {
	_, err := Inspect("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiresIn(t *testing.T) {
	now := time.Now()
	claims, err := Inspect(signedToken(t, "a@b.c", now.Add(30*time.Minute)))
	require.NoError(t, err)
	assert.InDelta(t, 30*time.Minute, claims.ExpiresIn(now), float64(2*time.Second))

	claims, err = Inspect(signedToken(t, "a@b.c", now.Add(-time.Minute)))
	require.NoError(t, err)
	assert.Zero(t, claims.ExpiresIn(now), "expired token reports zero")

	assert.Zero(t, (&Claims{}).ExpiresIn(now), "no expiry reports zero")
}

// memStore is an in-memory session.Store for provider tests.
type memStore struct {
	sess *models.Session
}

func (m *memStore) Current(ctx context.Context) (*models.Session, error) {
	if m.sess == nil {
		return nil, session.ErrNoSession
	}
	return m.sess, nil
}
func (m *memStore) Save(ctx context.Context, s *models.Session) error { m.sess = s; return nil }
func (m *memStore) Clear(ctx context.Context) error                   { m.sess = nil; return nil }
func (m *memStore) Close() error                                      { return nil }

// countingExchanger mints a distinct token per call.
type countingExchanger struct {
	calls int
}

func (c *countingExchanger) ExchangeToken(ctx context.Context, refreshToken string) (string, error) {
	c.calls++
	return fmt.Sprintf("%s-token-%d", refreshToken, c.calls), nil
}

func TestTokenProvider(t *testing.T) {
	store := &memStore{}
	exchanger := &countingExchanger{}
	provider := NewTokenProvider(store, exchanger)

	assert.False(t, provider.Active(), "no session, no auth")
	_, err := provider.Token(context.Background())
	assert.ErrorIs(t, err, session.ErrNoSession)

	require.NoError(t, store.Save(context.Background(), &models.Session{Email: "a@b.c", RefreshToken: "refresh"}))
	assert.True(t, provider.Active())

	// Tokens are minted fresh per call, never cached.
	tok1, err := provider.Token(context.Background())
	require.NoError(t, err)
	tok2, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh-token-1", tok1)
	assert.Equal(t, "refresh-token-2", tok2)
	assert.Equal(t, 2, exchanger.calls)
}

func TestIdentityLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/login":
			fmt.Fprint(w, `{"email":"rahim@example.com","displayName":"Rahim","photoURL":"https://e/p.png","refreshToken":"refresh-1"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	sess, err := NewIdentity(srv.URL).Login(context.Background(), "rahim@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "rahim@example.com", sess.Email)
	assert.Equal(t, "Rahim", sess.DisplayName)
	assert.Equal(t, "refresh-1", sess.RefreshToken)
}

func TestIdentityLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"INVALID_PASSWORD"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewIdentity(srv.URL).Login(context.Background(), "rahim@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIdentityExchangeToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/token" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"idToken":"id-abc"}`)
	}))
	defer srv.Close()

	tok, err := NewIdentity(srv.URL).ExchangeToken(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "id-abc", tok)
}

func TestIdentityExchangeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"TOKEN_EXPIRED"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewIdentity(srv.URL).ExchangeToken(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrRefreshRejected)

	var wrapped *identityError
	assert.False(t, errors.As(err, &wrapped), "sentinel should replace the raw status error")
}
