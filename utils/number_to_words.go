package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Indian place values, largest first.
var scales = []struct {
	value int64
	name  string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// NumberToWords spells a non-negative integer using lakh and crore. Zero is
// the empty string.
func NumberToWords(num int64) string {
	if num <= 0 {
		return ""
	}
	if num < 20 {
		return ones[num]
	}
	if num < 100 {
		return strings.TrimSpace(tens[num/10] + " " + ones[num%10])
	}
	for _, s := range scales {
		if num < s.value {
			continue
		}
		head := NumberToWords(num/s.value) + " " + s.name
		if rest := num % s.value; rest != 0 {
			return head + " " + NumberToWords(rest)
		}
		return head
	}
	return ""
}

// AmountInWords spells a money amount as rupees and paise, e.g.
// "One Lakh Nine Thousand Rupees Only". Negative amounts start with "Minus".
func AmountInWords(amount decimal.Decimal) string {
	amount = amount.Round(2)
	prefix := ""
	if amount.IsNegative() {
		prefix = "Minus "
		amount = amount.Neg()
	}

	rupees := amount.Truncate(0)
	paise := amount.Sub(rupees).Shift(2).IntPart()

	var parts []string
	if rupees.IsPositive() {
		parts = append(parts, wholeInWords(rupees)+" Rupees")
	}
	if paise > 0 {
		parts = append(parts, NumberToWords(paise)+" Paise")
	}
	if len(parts) == 0 {
		return "Zero Rupees Only"
	}
	return prefix + strings.Join(parts, " and ") + " Only"
}

// wholeInWords spells a non-negative integer of any size, splitting off
// crores until the rest fits NumberToWords.
func wholeInWords(d decimal.Decimal) string {
	if d.LessThan(crore) {
		return NumberToWords(d.IntPart())
	}
	crores := d.Shift(-7).Truncate(0)
	out := wholeInWords(crores) + " Crore"
	if rest := d.Sub(crores.Shift(7)); rest.IsPositive() {
		out += " " + NumberToWords(rest.IntPart())
	}
	return out
}

var crore = decimal.New(1, 7)
