package models

import "time"

// Session is the locally persisted authentication state: the principal's
// profile plus the long-lived refresh token used to mint short-lived bearer
// tokens. It is owned by the identity subsystem; the API client and services
// only read it, except for the clear-on-invalidation path.
type Session struct {
	// ID is a local row identifier (UUID), not a server concept.
	ID string

	// Email is the owning principal. Paid-bill listings are scoped by it.
	Email string

	// DisplayName is the profile name used as PaidBill.Username.
	DisplayName string

	// PhotoURL is the profile picture, if any.
	PhotoURL string

	// RefreshToken is exchanged at the identity endpoint for a fresh bearer
	// token before every request.
	RefreshToken string

	// CreatedAt is when the session was established.
	CreatedAt time.Time
}
