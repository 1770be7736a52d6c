package billing

import "strings"

// WithholdingCategory selects the statutory withholding (TDS) section that
// applies to a bill. The set is closed; the rate follows from the category.
type WithholdingCategory string

const (
	WithholdingNone             WithholdingCategory = "NONE"
	Withholding194CIndividual   WithholdingCategory = "194C_INDIVIDUAL"
	Withholding194COthers       WithholdingCategory = "194C_OTHERS"
	Withholding194JProfessional WithholdingCategory = "194J_PROFESSIONAL"
	Withholding194JTechnical    WithholdingCategory = "194J_TECHNICAL"
	Withholding194IPlant        WithholdingCategory = "194I_PLANT"
	Withholding194ILand         WithholdingCategory = "194I_LAND"
	Withholding194Q             WithholdingCategory = "194Q"
)

// RateEntry is one row of the withholding rate table.
type RateEntry struct {
	Category    WithholdingCategory `json:"category"`
	Label       string              `json:"label"`
	RatePercent Amount              `json:"rate_percent"`
}

var rateTable = []RateEntry{
	{WithholdingNone, "Not applicable", ParseAmount("0")},
	{Withholding194CIndividual, "194C - Contractor (Individual/HUF)", ParseAmount("1")},
	{Withholding194COthers, "194C - Contractor (Others)", ParseAmount("2")},
	{Withholding194JProfessional, "194J - Professional services", ParseAmount("10")},
	{Withholding194JTechnical, "194J - Technical services", ParseAmount("2")},
	{Withholding194IPlant, "194I - Rent of plant & machinery", ParseAmount("2")},
	{Withholding194ILand, "194I - Rent of land & building", ParseAmount("10")},
	{Withholding194Q, "194Q - Purchase of goods", ParseAmount("0.1")},
}

var rateIndex = func() map[WithholdingCategory]RateEntry {
	m := make(map[WithholdingCategory]RateEntry, len(rateTable))
	for _, e := range rateTable {
		m[e.Category] = e
	}
	return m
}()

// ParseWithholdingCategory normalises free text ("194c individual") to a
// category. Unknown text maps to WithholdingNone.
func ParseWithholdingCategory(text string) WithholdingCategory {
	s := strings.ToUpper(strings.TrimSpace(text))
	s = strings.NewReplacer(" ", "_", "-", "_", "/", "_").Replace(s)
	c := WithholdingCategory(s)
	if _, ok := rateIndex[c]; ok {
		return c
	}
	return WithholdingNone
}

// WithholdingRate returns the fixed rate for a category. An unknown category
// has rate 0.
func WithholdingRate(c WithholdingCategory) Amount {
	if e, ok := rateIndex[c]; ok {
		return e.RatePercent
	}
	return Amount{}
}

// Label returns the display label for the category.
func (c WithholdingCategory) Label() string {
	if e, ok := rateIndex[c]; ok {
		return e.Label
	}
	return rateIndex[WithholdingNone].Label
}

// Valid reports whether the category is one of the table rows.
func (c WithholdingCategory) Valid() bool {
	_, ok := rateIndex[c]
	return ok
}

// RateTable returns a copy of the table in display order.
func RateTable() []RateEntry {
	out := make([]RateEntry, len(rateTable))
	copy(out, rateTable)
	return out
}
