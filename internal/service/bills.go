// Package service implements the client-side workflows over the API client:
// bill queries and the paid-bill lifecycle (pay, list, update, delete,
// aggregate, export snapshot).
package service

import (
	"context"

	"github.com/smartbills/billctl/internal/client"
	"github.com/smartbills/billctl/internal/models"
)

// BillAPI is the read-only slice of the API client the bill queries use.
type BillAPI interface {
	LatestBills(ctx context.Context, n int) ([]models.Bill, error)
	Bill(ctx context.Context, id string) (*models.Bill, error)
}

// Compile-time check that the real client satisfies the service interfaces.
var (
	_ BillAPI     = (*client.Client)(nil)
	_ PaidBillAPI = (*client.Client)(nil)
)

// BillService is a thin request/response mapper for the server-owned Bill
// collection. Bills are read-only from the client.
type BillService struct {
	api BillAPI
}

// NewBillService creates a BillService over the given API client.
func NewBillService(api BillAPI) *BillService {
	return &BillService{api: api}
}

// Latest returns the n most recent bills (n is 3 or 6, the only listings
// the server exposes).
func (s *BillService) Latest(ctx context.Context, n int) ([]models.Bill, error) {
	return s.api.LatestBills(ctx, n)
}

// Get returns a single bill. The error matches client.ErrNotFound when the
// bill does not exist, distinct from transport failures.
func (s *BillService) Get(ctx context.Context, id string) (*models.Bill, error) {
	return s.api.Bill(ctx, id)
}
