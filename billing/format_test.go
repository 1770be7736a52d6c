package billing

import "testing"

func TestMoneyFormatterEnglish(t *testing.T) {
	f := NewMoneyFormatter("en", "₹")
	tests := []struct {
		in        string
		number    string
		money     string
		deduction string
	}{
		{"118000", "118,000.00", "₹118,000.00", "(₹118,000.00)"},
		{"0", "0.00", "₹0.00", "(₹0.00)"},
		{"-4000", "-4,000.00", "-₹4,000.00", "(-₹4,000.00)"},
		{"1234.5", "1,234.50", "₹1,234.50", "(₹1,234.50)"},
		{"12.34567", "12.35", "₹12.35", "(₹12.35)"},
		{"-0.001", "0.00", "₹0.00", "(₹0.00)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a := amt(tt.in)
			if got := f.Number(a); got != tt.number {
				t.Errorf("Number = %q, want %q", got, tt.number)
			}
			if got := f.Money(a); got != tt.money {
				t.Errorf("Money = %q, want %q", got, tt.money)
			}
			if got := f.Deduction(a); got != tt.deduction {
				t.Errorf("Deduction = %q, want %q", got, tt.deduction)
			}
		})
	}
}

func TestMoneyFormatterFallsBack(t *testing.T) {
	f := NewMoneyFormatter("!!", "$")
	if f.Locale() != DefaultLocale {
		t.Errorf("locale = %q, want %q", f.Locale(), DefaultLocale)
	}
	var zero MoneyFormatter
	if got := zero.Number(amt("5")); got != "5.00" {
		t.Errorf("zero formatter = %q", got)
	}
}

func TestFormatterDoesNotTouchComputation(t *testing.T) {
	in := NewBillInput("RA-1")
	in.GrossAmount = amt("0.333")
	in.TaxRatePercent = amt("10")
	s := Compute(in)
	assertAmount(t, "tax", s.TaxAmount, "0.0333")
	_ = DefaultMoneyFormatter().Money(s.TaxAmount)
	assertAmount(t, "tax after format", s.TaxAmount, "0.0333")
}

func TestPercentLabel(t *testing.T) {
	f := DefaultMoneyFormatter()
	if got := f.Percent(amt("0.1")); got != "0.1%" {
		t.Errorf("Percent = %q", got)
	}
}

func TestMoneyFormatterLargeAmounts(t *testing.T) {
	tests := []struct {
		locale string
		in     string
		want   string
	}{
		{"en", "12345678901234567.89", "₹12,345,678,901,234,567.89"},
		{"en", "9007199254740993.01", "₹9,007,199,254,740,993.01"},
		{"en-IN", "12345678901234567.89", "₹12,34,56,78,90,12,34,567.89"},
		{"en-IN", "118000", "₹1,18,000.00"},
		{"en-IN", "-9007199254740993.015", "-₹9,00,71,99,25,47,40,993.02"},
	}
	for _, tt := range tests {
		f := NewMoneyFormatter(tt.locale, "₹")
		if got := f.Money(amt(tt.in)); got != tt.want {
			t.Errorf("%s Money(%s) = %q, want %q", tt.locale, tt.in, got, tt.want)
		}
	}
}

func TestMoneyFormatterLocaleSeparators(t *testing.T) {
	f := NewMoneyFormatter("de", "€")
	if got := f.Number(amt("1234567.5")); got != "1.234.567,50" {
		t.Errorf("de Number = %q", got)
	}
}
