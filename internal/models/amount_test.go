package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValue float64
		wantValid bool
	}{
		{name: "number", input: `250.5`, wantValue: 250.5, wantValid: true},
		{name: "integer number", input: `500`, wantValue: 500, wantValid: true},
		{name: "numeric string", input: `"500"`, wantValue: 500, wantValid: true},
		{name: "decimal string", input: `"120.75"`, wantValue: 120.75, wantValid: true},
		{name: "string with spaces", input: `" 42 "`, wantValue: 42, wantValid: true},
		{name: "null", input: `null`, wantValue: 0, wantValid: false},
		{name: "empty string", input: `""`, wantValue: 0, wantValid: false},
		{name: "garbage string", input: `"abc"`, wantValue: 0, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tt.input), &a); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tt.input, err)
			}
			if a.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", a.Valid, tt.wantValid)
			}
			if math.Abs(a.Float()-tt.wantValue) > 1e-9 {
				t.Errorf("Float() = %v, want %v", a.Float(), tt.wantValue)
			}
		})
	}
}

func TestAmountUnmarshalRejectsNonScalar(t *testing.T) {
	var a Amount
	if err := json.Unmarshal([]byte(`{"x":1}`), &a); err == nil {
		t.Error("expected error for object input")
	}
}

func TestAmountMarshal(t *testing.T) {
	got, err := json.Marshal(NewAmount(750.5))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(got) != "750.5" {
		t.Errorf("Marshal = %s, want 750.5", got)
	}

	got, err = json.Marshal(Amount{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(got) != "0" {
		t.Errorf("Marshal of invalid amount = %s, want 0", got)
	}
}

func TestParseAmount(t *testing.T) {
	if _, err := ParseAmount(""); err == nil {
		t.Error("expected error for empty input")
	}
	if _, err := ParseAmount("12x"); err == nil {
		t.Error("expected error for non-numeric input")
	}
	a, err := ParseAmount("300")
	if err != nil {
		t.Fatalf("ParseAmount failed: %v", err)
	}
	if !a.Valid || a.Value != 300 {
		t.Errorf("ParseAmount = %+v, want {300 true}", a)
	}
}

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // yyyy-mm-dd, empty means zero
	}{
		{name: "plain date", input: `"2024-05-01"`, want: "2024-05-01"},
		{name: "rfc3339", input: `"2024-05-01T10:30:00Z"`, want: "2024-05-01"},
		{name: "mongo timestamp", input: `"2024-05-01T00:00:00.000Z"`, want: "2024-05-01"},
		{name: "empty", input: `""`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tt.input), &d); err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tt.input, err)
			}
			if tt.want == "" {
				if !d.IsZero() {
					t.Errorf("expected zero date, got %v", d)
				}
				return
			}
			if got := d.Format("2006-01-02"); got != tt.want {
				t.Errorf("date = %s, want %s", got, tt.want)
			}
		})
	}

	var d Date
	if err := json.Unmarshal([]byte(`"not-a-date"`), &d); err == nil {
		t.Error("expected error for unrecognized date")
	}
}

func TestDateSameMonth(t *testing.T) {
	now := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)

	if !NewDate(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)).SameMonth(now) {
		t.Error("same month and year should match")
	}
	if NewDate(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)).SameMonth(now) {
		t.Error("a bill two months old must not match")
	}
	// Same month in a different year is not the current month.
	if NewDate(time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)).SameMonth(now) {
		t.Error("same month in a previous year must not match")
	}
	if (Date{}).SameMonth(now) {
		t.Error("zero date must not match any month")
	}
}
