package models

// PaidBill is a payment record created against a Bill. The server assigns
// the ID on creation; every record belongs to exactly one owning email and
// listings are always scoped by that email.
//
// Amount is copied from the bill at pay time and independently editable
// afterwards, so it can drift from the bill's amount.
type PaidBill struct {
	ID             string `json:"_id"`
	BillID         string `json:"billId"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Amount         Amount `json:"amount"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Date           Date   `json:"date"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}
