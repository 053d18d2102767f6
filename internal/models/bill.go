package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bill represents a utility charge published by the Smart Bills server.
// Bills are created and mutated server-side only.
type Bill struct {
	// ID is the server-assigned identifier (Mongo-style hex string).
	ID string `json:"_id"`

	// Title is the human-readable name of the charge.
	Title string `json:"title"`

	// Description is free text shown on the bill detail view.
	Description string `json:"description"`

	// Category is an enum-like string: electricity, gas, water, internet, ...
	Category string `json:"category"`

	// Amount is the charge in BDT.
	Amount Amount `json:"amount"`

	// Location is the service area the charge applies to.
	Location string `json:"location"`

	// Date is the billing date. Only bills dated in the current calendar
	// month are payable.
	Date Date `json:"date"`

	// Image is a URL to the bill's illustration.
	Image string `json:"image"`
}

// dateLayouts are the formats the server has been observed to use.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02",
}

// Date wraps time.Time with lenient decoding for the server's mixed date
// formats (plain ISO dates and RFC3339 timestamps).
type Date struct {
	time.Time
}

// NewDate returns a Date for the given time.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// SameMonth reports whether the date falls in the same calendar month and
// year as t. A zero date is never in any month.
func (d Date) SameMonth(t time.Time) bool {
	if d.IsZero() {
		return false
	}
	return d.Year() == t.Year() && d.Month() == t.Month()
}

// LocaleString renders the date the way the paid-bills table and the PDF
// report display it.
func (d Date) LocaleString() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("1/2/2006")
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to decode date: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Date{Time: t}
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format("2006-01-02"))
}
