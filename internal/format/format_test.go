package format

import (
	"math"
	"strings"
	"testing"

	"golang.org/x/text/currency"
)

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{in: "a@b.c", want: true},
		{in: "alumni.cell@college.edu.in", want: true},
		{in: "a@b", want: false},
		{in: "noat.com", want: false},
		{in: "a b@c.d", want: false},
		{in: "a@@b.c", want: false},
		{in: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := IsValidEmail(tt.in); got != tt.want {
				t.Fatalf("IsValidEmail(%q): expected %v, got %v", tt.in, tt.want, got)
			}
		})
	}
}

func TestCurrency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want string
	}{
		{name: "whole", in: 1500, want: "₹1,500"},
		{name: "fraction", in: 1234.5, want: "₹1,234.5"},
		{name: "small", in: 100, want: "₹100"},
		{name: "two_digits", in: 0.25, want: "₹0.25"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Currency(tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCurrencyNaN(t *testing.T) {
	t.Parallel()

	if got := Currency(math.NaN()); got != "₹NaN" {
		t.Fatalf("expected ₹NaN, got %q", got)
	}
	if got := CurrencyString("abc"); got != "₹NaN" {
		t.Fatalf("expected ₹NaN for non-numeric input, got %q", got)
	}
	if got := CurrencyString(" 250 "); got != "₹250" {
		t.Fatalf("expected ₹250, got %q", got)
	}
}

func TestMoneyUnknownUnitUsesCode(t *testing.T) {
	t.Parallel()

	got := Money(currency.JPY, 10)
	if !strings.HasPrefix(got, "JPY ") {
		t.Fatalf("expected JPY prefix, got %q", got)
	}
}

func TestDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "local_datetime", in: "2024-03-05T14:07:00", want: "5 March 2024, 02:07 pm"},
		{name: "space_separated", in: "2023-12-31 09:30:00", want: "31 December 2023, 09:30 am"},
		{name: "date_only", in: "2022-01-15", want: "15 January 2022, 12:00 am"},
		{name: "with_zone", in: "2024-03-05T14:07:00Z", want: "5 March 2024, 02:07 pm"},
		{name: "invalid", in: "yesterday", want: "Invalid Date"},
		{name: "empty", in: "", want: "Invalid Date"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Date(tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
