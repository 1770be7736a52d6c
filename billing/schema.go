package billing

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

// InputSchema describes BillInput for form generation. Amounts are decimal
// strings and the withholding category is limited to the rate table.
func InputSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case reflect.TypeOf(Amount{}):
				return &jsonschema.Schema{
					Type:    "string",
					Pattern: `^-?[0-9]*(\.[0-9]+)?$`,
				}
			case reflect.TypeOf(WithholdingCategory("")):
				s := &jsonschema.Schema{Type: "string", Default: string(WithholdingNone)}
				for _, e := range rateTable {
					s.Enum = append(s.Enum, string(e.Category))
				}
				return s
			}
			return nil
		},
	}
	s := r.Reflect(&BillInput{})
	s.Title = "RA bill"
	return s
}
