package billing

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale = "en-IN"
	DefaultSymbol = "₹"
)

// MoneyFormatter renders amounts with a fixed locale, two decimals and a
// currency symbol. Rounding happens here and nowhere else.
type MoneyFormatter struct {
	Symbol string
	tag    language.Tag
	style  *numberStyle
}

// NewMoneyFormatter falls back to DefaultLocale when locale does not parse.
func NewMoneyFormatter(locale, symbol string) MoneyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return MoneyFormatter{
		Symbol: symbol,
		tag:    tag,
		style:  newNumberStyle(message.NewPrinter(tag)),
	}
}

func DefaultMoneyFormatter() MoneyFormatter {
	return NewMoneyFormatter(DefaultLocale, DefaultSymbol)
}

// Locale returns the BCP 47 tag in use.
func (f MoneyFormatter) Locale() string {
	return f.tag.String()
}

func (f MoneyFormatter) numbers() *numberStyle {
	if f.style == nil {
		return newNumberStyle(message.NewPrinter(language.MustParse(DefaultLocale)))
	}
	return f.style
}

// Number formats a with grouping and exactly two decimals, without a symbol.
// The digits come from the exact decimal; only separators and grouping are
// taken from the locale.
func (f MoneyFormatter) Number(a Amount) string {
	r := a.Round(2)
	s := f.numbers().format(r.Abs().StringFixed(2))
	if r.IsNegative() {
		return "-" + s
	}
	return s
}

// Money formats a with the currency symbol, e.g. ₹1,18,000.00 or -₹4,000.00.
func (f MoneyFormatter) Money(a Amount) string {
	r := AmountFrom(a.Round(2))
	s := f.Symbol + f.Number(AmountFrom(r.Abs()))
	if r.IsNegative() {
		return "-" + s
	}
	return s
}

// Deduction formats an amount that is subtracted, in parentheses.
func (f MoneyFormatter) Deduction(a Amount) string {
	return "(" + f.Money(a) + ")"
}

// Percent formats a rate as written, e.g. 18% or 0.1%.
func (f MoneyFormatter) Percent(rate Amount) string {
	return rate.String() + "%"
}

// numberStyle is how a locale writes a grouped decimal number.
type numberStyle struct {
	digits    [10]string
	group     string
	decimal   string
	primary   int
	secondary int
}

var plainStyle = numberStyle{
	digits:    [10]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"},
	group:     ",",
	decimal:   ".",
	primary:   3,
	secondary: 3,
}

// newNumberStyle reads the locale's digits, separators and group sizes off
// a sample the printer formats exactly.
func newNumberStyle(p *message.Printer) *numberStyle {
	st := plainStyle
	for i := range st.digits {
		st.digits[i] = p.Sprint(number.Decimal(i))
	}

	var runs, seps []string
	var cur strings.Builder
	sep := ""
	for _, r := range p.Sprint(number.Decimal(1234567.5, number.Scale(2))) {
		if unicode.IsDigit(r) {
			if sep != "" && len(runs) > 0 {
				seps = append(seps, sep)
			}
			sep = ""
			cur.WriteRune(r)
			continue
		}
		if cur.Len() > 0 {
			runs = append(runs, cur.String())
			cur.Reset()
		}
		sep += string(r)
	}
	if cur.Len() > 0 {
		runs = append(runs, cur.String())
	}
	if len(runs) < 2 || len(seps) != len(runs)-1 {
		return &plainStyle
	}

	st.decimal = seps[len(seps)-1]
	ints := runs[:len(runs)-1]
	switch len(ints) {
	case 1:
		st.primary, st.secondary = 0, 0
	case 2:
		st.group = seps[0]
		st.primary = len([]rune(ints[1]))
		st.secondary = st.primary
	default:
		st.group = seps[0]
		st.primary = len([]rune(ints[len(ints)-1]))
		st.secondary = len([]rune(ints[len(ints)-2]))
	}
	return &st
}

// format lays out plain, an unsigned ASCII number with a "." fraction.
func (st *numberStyle) format(plain string) string {
	whole, frac, _ := strings.Cut(plain, ".")

	var groups []string
	if st.primary > 0 && len(whole) > st.primary {
		groups = append(groups, whole[len(whole)-st.primary:])
		whole = whole[:len(whole)-st.primary]
		for len(whole) > st.secondary {
			groups = append(groups, whole[len(whole)-st.secondary:])
			whole = whole[:len(whole)-st.secondary]
		}
	}
	groups = append(groups, whole)

	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		b.WriteString(st.localize(groups[i]))
		if i > 0 {
			b.WriteString(st.group)
		}
	}
	if frac != "" {
		b.WriteString(st.decimal)
		b.WriteString(st.localize(frac))
	}
	return b.String()
}

func (st *numberStyle) localize(ascii string) string {
	var b strings.Builder
	for i := 0; i < len(ascii); i++ {
		b.WriteString(st.digits[ascii[i]-'0'])
	}
	return b.String()
}
