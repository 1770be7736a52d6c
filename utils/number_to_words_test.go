package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNumberToWords(t *testing.T) {
	tests := map[int64]string{
		0:         "",
		7:         "Seven",
		19:        "Nineteen",
		40:        "Forty",
		99:        "Ninety Nine",
		100:       "One Hundred",
		118:       "One Hundred Eighteen",
		1000:      "One Thousand",
		18000:     "Eighteen Thousand",
		109000:    "One Lakh Nine Thousand",
		2500000:   "Twenty Five Lakh",
		10000000:  "One Crore",
		123456789: "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine",
	}
	for in, want := range tests {
		if got := NumberToWords(in); got != want {
			t.Errorf("NumberToWords(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestAmountInWords(t *testing.T) {
	tests := map[string]string{
		"109000":    "One Lakh Nine Thousand Rupees Only",
		"0":         "Zero Rupees Only",
		"0.004":     "Zero Rupees Only",
		"12.5":      "Twelve Rupees and Fifty Paise Only",
		"0.75":      "Seventy Five Paise Only",
		"-4000":     "Minus Four Thousand Rupees Only",
		"1180.999":  "One Thousand One Hundred Eighty One Rupees Only",
		"100000.01": "One Lakh Rupees and One Paise Only",
	}
	for in, want := range tests {
		if got := AmountInWords(decimal.RequireFromString(in)); got != want {
			t.Errorf("AmountInWords(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestAmountInWordsBeyondInt64(t *testing.T) {
	tests := map[string]string{
		"20000000000000000000":        "Two Lakh Crore Crore Rupees Only",
		"123456789012345678901234.56": "One Hundred Twenty Three Crore Forty Five Lakh Sixty Seven Thousand Eight Hundred Ninety Crore Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven Crore Eighty Nine Lakh One Thousand Two Hundred Thirty Four Rupees and Fifty Six Paise Only",
	}
	for in, want := range tests {
		if got := AmountInWords(decimal.RequireFromString(in)); got != want {
			t.Errorf("AmountInWords(%s) = %q, want %q", in, got, want)
		}
	}

	// within int64 both paths agree
	n := int64(1000000000000000000)
	if got, want := AmountInWords(decimal.NewFromInt(n)), NumberToWords(n)+" Rupees Only"; got != want {
		t.Errorf("AmountInWords(%d) = %q, want %q", n, got, want)
	}
}
