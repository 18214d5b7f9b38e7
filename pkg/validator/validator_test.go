package validator

import "testing"

func TestCurrencyCode(t *testing.T) {
	type payload struct {
		Currency string `json:"currency" validate:"currency_code"`
	}

	valid := []string{"EUR", "usd", "Gbp"}
	for _, code := range valid {
		if err := ValidateStruct(payload{Currency: code}); err != nil {
			t.Errorf("%q rejected: %v", code, err)
		}
	}

	invalid := []string{"", "EU", "EURO", "E1R", "€UR"}
	for _, code := range invalid {
		if err := ValidateStruct(payload{Currency: code}); err == nil {
			t.Errorf("%q accepted, want error", code)
		}
	}
}
