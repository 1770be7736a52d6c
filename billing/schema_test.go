package billing

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestInputSchema(t *testing.T) {
	s := InputSchema()

	gross, ok := s.Properties.Get("gross_amount")
	if !ok {
		t.Fatal("gross_amount missing")
	}
	if gross.Type != "string" || gross.Pattern == "" {
		t.Errorf("gross_amount = %+v", gross)
	}

	cat, ok := s.Properties.Get("withholding_category")
	if !ok {
		t.Fatal("withholding_category missing")
	}
	if len(cat.Enum) != len(RateTable()) {
		t.Errorf("enum = %v", cat.Enum)
	}

	rate, _ := s.Properties.Get("withholding_rate_percent")
	if rate == nil || !rate.ReadOnly {
		t.Errorf("withholding_rate_percent should be read-only: %+v", rate)
	}

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"194Q"`, `"project_ref"`, `"format":"date"`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("schema missing %s", want)
		}
	}
}
