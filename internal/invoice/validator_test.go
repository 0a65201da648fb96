package invoice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidCurrencyCode_Valid(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "JPY", "AAA", "ZZZ"} {
		require.True(t, IsValidCurrencyCode(code), code)
	}
}

func TestIsValidCurrencyCode_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"too short":      "EU",
		"too long":       "EURO",
		"lowercase":      "eur",
		"mixed case":     "Eur",
		"digit":          "EU1",
		"symbol":         "US$",
		"space":          "US ",
		"non-latin":      "ÉUR",
		"leading space":  " USD",
		"unicode letter": "ДОЛ",
	}
	for name, code := range cases {
		t.Run(name, func(t *testing.T) {
			require.False(t, IsValidCurrencyCode(code))
		})
	}
}
