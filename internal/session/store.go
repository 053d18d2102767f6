// Package session persists the authenticated principal's local state: who is
// logged in and the refresh token used to mint bearer tokens. The store is
// the thing "clear all locally persisted session state" acts on when the
// server invalidates a session.
package session

import (
	"context"
	"errors"

	"github.com/smartbills/billctl/internal/models"
)

// ErrNoSession is returned by Current when nobody is logged in.
var ErrNoSession = errors.New("no active session")

// Store defines the interface for local session persistence. The SQLite
// implementation is the default; the abstraction exists so tests can use an
// in-memory fake.
type Store interface {
	// Current returns the active session, or ErrNoSession.
	Current(ctx context.Context) (*models.Session, error)

	// Save replaces any existing session with the given one.
	Save(ctx context.Context, s *models.Session) error

	// Clear removes all persisted session state. Clearing an already empty
	// store is not an error; the invalidation path may fire it from several
	// in-flight requests.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
