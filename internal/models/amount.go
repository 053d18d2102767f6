package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary value as served by the Smart Bills API. The server is
// loosely typed and returns amounts as either a JSON number or a numeric
// string ("500"); some older records omit the field entirely. Coercion
// happens here, once: anything missing or non-numeric becomes zero with
// Valid=false, and aggregation treats it as zero.
type Amount struct {
	Value float64
	Valid bool
}

// NewAmount returns a valid Amount holding v.
func NewAmount(v float64) Amount {
	return Amount{Value: v, Valid: true}
}

// ParseAmount coerces a string into an Amount. Empty or non-numeric input
// yields an invalid (zero) Amount and an error describing the input.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("amount is empty")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Amount{}, fmt.Errorf("amount %q is not numeric", s)
	}
	return Amount{Value: v, Valid: true}, nil
}

// Float returns the coerced numeric value, zero when invalid.
func (a Amount) Float() float64 {
	if !a.Valid {
		return 0
	}
	return a.Value
}

// String formats the value with the shortest exact representation, so
// whole amounts read without trailing zeros.
func (a Amount) String() string {
	if !a.Valid {
		return "0"
	}
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

// UnmarshalJSON accepts a number, a numeric string, or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode amount: %w", err)
		}
		parsed, err := ParseAmount(s)
		if err != nil {
			// Loose server data: coerce to zero rather than failing the
			// whole document.
			*a = Amount{}
			return nil
		}
		*a = parsed
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("failed to decode amount: %w", err)
	}
	*a = Amount{Value: v, Valid: true}
	return nil
}

// MarshalJSON always emits a number; invalid amounts serialize as 0.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Float())
}
