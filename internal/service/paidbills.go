package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/smartbills/billctl/internal/client"
	"github.com/smartbills/billctl/internal/models"
)

var (
	// ErrBusy is returned when a mutation is requested while another one is
	// still in flight. Rapid repeated triggers are rejected rather than
	// queued.
	ErrBusy = errors.New("another action is already in progress")

	// ErrNotPayable is returned when pay is attempted on a bill not dated
	// in the current calendar month. The action is refused before any
	// network call.
	ErrNotPayable = errors.New("only bills of the current month can be paid")
)

// Generic fallback notifications, used when the server supplies no message.
const (
	msgPayFailed    = "Something went wrong. Try again later."
	msgUpdateFailed = "Failed to update bill."
	msgDeleteFailed = "Failed to delete bill."
)

// PaidBillAPI is the slice of the API client the lifecycle manager uses.
type PaidBillAPI interface {
	PaidBills(ctx context.Context, email string) ([]models.PaidBill, error)
	CreatePaidBill(ctx context.Context, form client.PayRequest) (*models.PaidBill, error)
	UpdatePaidBill(ctx context.Context, id string, patch client.UpdateRequest) error
	DeletePaidBill(ctx context.Context, id string) error
}

// Confirmer asks the user a yes/no question before destructive actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Notifier surfaces action outcomes to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// PayForm carries the user-entered part of a payment. Email, username,
// amount, and date are filled from the session and the bill itself.
type PayForm struct {
	Address        string `validate:"required"`
	Phone          string `validate:"required,min=6,max=20"`
	AdditionalInfo string `validate:"max=500"`
}

// UpdateForm carries the four editable fields of an existing record.
type UpdateForm struct {
	Amount  float64 `validate:"required,gt=0"`
	Address string  `validate:"required"`
	Phone   string  `validate:"required,min=6,max=20"`
	Date    string  `validate:"required,datetime=2006-01-02"`
}

// Summary is the fold over the current list: record count and the sum of
// coerced amounts (missing or non-numeric amounts count as zero).
type Summary struct {
	Count int
	Total float64
}

// Aggregate computes the Summary for a list of paid bills. Pure; recomputed
// on every call, never persisted.
func Aggregate(bills []models.PaidBill) Summary {
	s := Summary{Count: len(bills)}
	for _, b := range bills {
		s.Total += b.Amount.Float()
	}
	return s
}

// Manager orchestrates the paid-bill lifecycle for one owner. Every
// successful mutation is followed by exactly one refetch of the full list,
// so the held list always matches server state (read-after-write by
// refetch, never by local patching). One mutation may be in flight at a
// time; concurrent triggers get ErrBusy.
type Manager struct {
	api      PaidBillAPI
	owner    string
	username string
	confirm  Confirmer
	notify   Notifier
	validate *validator.Validate
	now      func() time.Time

	mu     sync.Mutex
	busy   bool
	bills  []models.PaidBill
	loaded bool
}

// NewManager creates a Manager scoped to the owning email. The username is
// stamped onto new payment records.
func NewManager(api PaidBillAPI, owner, username string, confirm Confirmer, notify Notifier) *Manager {
	return &Manager{
		api:      api,
		owner:    owner,
		username: username,
		confirm:  confirm,
		notify:   notify,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Refresh refetches the owner's paid bills from the server. An empty result
// is valid and distinct from not-yet-loaded.
func (m *Manager) Refresh(ctx context.Context) error {
	bills, err := m.api.PaidBills(ctx, m.owner)
	if err != nil {
		slog.Error("failed to fetch paid bills", "owner", m.owner, "error", err)
		return err
	}
	if bills == nil {
		bills = []models.PaidBill{}
	}

	m.mu.Lock()
	m.bills = bills
	m.loaded = true
	m.mu.Unlock()
	return nil
}

// Bills returns the current list and whether it has been loaded at all.
func (m *Manager) Bills() ([]models.PaidBill, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.PaidBill, len(m.bills))
	copy(out, m.bills)
	return out, m.loaded
}

// Summary aggregates the current list.
func (m *Manager) Summary() Summary {
	bills, _ := m.Bills()
	return Aggregate(bills)
}

// Payable reports whether the bill may be paid right now: its date must
// fall in the current calendar month.
func (m *Manager) Payable(bill *models.Bill) bool {
	return bill.Date.SameMonth(m.now())
}

// Pay records a payment for the bill. The current-month precondition is
// checked before anything is sent; amount and date are copied from the bill
// and the clock, the rest comes from the form.
func (m *Manager) Pay(ctx context.Context, bill *models.Bill, form PayForm) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if !m.Payable(bill) {
		return ErrNotPayable
	}
	if err := m.validate.Struct(form); err != nil {
		return fmt.Errorf("invalid payment form: %w", err)
	}

	req := client.PayRequest{
		Email:          m.owner,
		BillID:         bill.ID,
		Username:       m.username,
		Amount:         bill.Amount,
		Address:        form.Address,
		Phone:          form.Phone,
		Date:           m.now().Format("2006-01-02"),
		AdditionalInfo: form.AdditionalInfo,
	}

	if _, err := m.api.CreatePaidBill(ctx, req); err != nil {
		m.report(err, msgPayFailed)
		return err
	}

	m.notify.Success("Payment successful. Your bill has been paid.")
	return m.Refresh(ctx)
}

// Update patches the four editable fields of an existing record. On failure
// the held list is left untouched; no optimistic mutation is ever applied.
func (m *Manager) Update(ctx context.Context, id string, form UpdateForm) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if err := m.validate.Struct(form); err != nil {
		return fmt.Errorf("invalid update form: %w", err)
	}

	patch := client.UpdateRequest{
		Amount:  models.NewAmount(form.Amount),
		Address: form.Address,
		Phone:   form.Phone,
		Date:    form.Date,
	}

	if err := m.api.UpdatePaidBill(ctx, id, patch); err != nil {
		m.report(err, msgUpdateFailed)
		return err
	}

	m.notify.Success("Bill updated successfully.")
	return m.Refresh(ctx)
}

// Delete removes a record after an explicit confirmation. A declined prompt
// performs no network call and shows no notification.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if !m.confirm.Confirm("This bill will be permanently deleted. Continue?") {
		return nil
	}

	if err := m.api.DeletePaidBill(ctx, id); err != nil {
		m.report(err, msgDeleteFailed)
		return err
	}

	m.notify.Success("Bill deleted successfully.")
	return m.Refresh(ctx)
}

// report surfaces a failure notification, except for session invalidation:
// that path is handled globally by the API client and must not double up as
// an action-level error message.
func (m *Manager) report(err error, fallback string) {
	if errors.Is(err, client.ErrSessionExpired) {
		return
	}
	m.notify.Error(client.Message(err, fallback))
}

func (m *Manager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return ErrBusy
	}
	m.busy = true
	return nil
}

func (m *Manager) end() {
	m.mu.Lock()
	m.busy = false
	m.mu.Unlock()
}
