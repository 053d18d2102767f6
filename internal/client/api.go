package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/smartbills/billctl/internal/models"
)

// PayRequest is the body of POST /paid-bills.
type PayRequest struct {
	Email          string        `json:"email"`
	BillID         string        `json:"billId"`
	Username       string        `json:"username"`
	Amount         models.Amount `json:"amount"`
	Address        string        `json:"address"`
	Phone          string        `json:"phone"`
	Date           string        `json:"date"`
	AdditionalInfo string        `json:"additionalInfo"`
}

// UpdateRequest is the body of PATCH /paid-bills/{id}. Exactly these four
// fields are editable after creation.
type UpdateRequest struct {
	Amount  models.Amount `json:"amount"`
	Address string        `json:"address"`
	Phone   string        `json:"phone"`
	Date    string        `json:"date"`
}

// LatestBills fetches the n most recent bills. The server only exposes
// n = 3 and n = 6.
func (c *Client) LatestBills(ctx context.Context, n int) ([]models.Bill, error) {
	if n != 3 && n != 6 {
		return nil, fmt.Errorf("latest bills: count must be 3 or 6, got %d", n)
	}
	var bills []models.Bill
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bills/latest%d", n), nil, nil, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// Bill fetches a single bill by ID. Returns an error matching ErrNotFound
// when the bill does not exist.
func (c *Client) Bill(ctx context.Context, id string) (*models.Bill, error) {
	var bill models.Bill
	if err := c.do(ctx, http.MethodGet, "/bills/"+url.PathEscape(id), nil, nil, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// PaidBills fetches all paid-bill records owned by email, in server order.
// An empty slice is a valid result.
func (c *Client) PaidBills(ctx context.Context, email string) ([]models.PaidBill, error) {
	query := url.Values{"email": {email}}
	var bills []models.PaidBill
	if err := c.do(ctx, http.MethodGet, "/paid-bills/user", query, nil, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// CreatePaidBill records a payment and returns the created record.
func (c *Client) CreatePaidBill(ctx context.Context, form PayRequest) (*models.PaidBill, error) {
	var created models.PaidBill
	if err := c.do(ctx, http.MethodPost, "/paid-bills", nil, form, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePaidBill patches an existing paid-bill record.
func (c *Client) UpdatePaidBill(ctx context.Context, id string, patch UpdateRequest) error {
	return c.do(ctx, http.MethodPatch, "/paid-bills/"+url.PathEscape(id), nil, patch, nil)
}

// DeletePaidBill removes a paid-bill record.
func (c *Client) DeletePaidBill(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/paid-bills/"+url.PathEscape(id), nil, nil, nil)
}
