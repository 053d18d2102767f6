package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartbills/billctl/internal/session"
)

// Exchanger trades a refresh token for a fresh bearer token. Implemented by
// Identity; abstracted so tests can substitute a fake.
type Exchanger interface {
	ExchangeToken(ctx context.Context, refreshToken string) (string, error)
}

// TokenProvider implements client.TokenSource over the local session store
// and the identity service. Every Token call performs a fresh exchange;
// bearer tokens are short-lived and deliberately never cached.
type TokenProvider struct {
	store    session.Store
	identity Exchanger
}

// NewTokenProvider creates a provider reading sessions from store and
// minting tokens through identity.
func NewTokenProvider(store session.Store, identity Exchanger) *TokenProvider {
	return &TokenProvider{store: store, identity: identity}
}

// Active reports whether a session is persisted locally.
func (p *TokenProvider) Active() bool {
	_, err := p.store.Current(context.Background())
	return err == nil
}

// Token mints a fresh bearer token for the current session.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	sess, err := p.store.Current(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return p.identity.ExchangeToken(ctx, sess.RefreshToken)
}
