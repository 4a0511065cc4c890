package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriceCents(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    int64
	}{
		{"plain integer with symbol", "R$10", 1000},
		{"symbol with space", "R$ 10", 1000},
		{"comma decimal", "R$ 50,00", 5000},
		{"comma decimal with cents", "R$ 12,34", 1234},
		{"thousands dot with comma decimal", "R$ 1.234,56", 123456},
		{"dot decimal", "10.50", 1050},
		{"thousands comma with dot decimal", "1,234.56", 123456},
		{"unavailability marker", "Indisponível", 0},
		{"empty", "", 0},
		{"only symbol", "R$", 0},
		{"trailing garbage breaks the parse", "R$ 1.234,56-ish", 0},
		{"negative", "-10,00", -1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePriceCents(tt.display))
		})
	}
}

func TestFormatCents2(t *testing.T) {
	assert.Equal(t, "50.00", FormatCents2(5000))
	assert.Equal(t, "0.00", FormatCents2(0))
	assert.Equal(t, "12.34", FormatCents2(1234))
	assert.Equal(t, "1234.56", FormatCents2(123456))
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{5000, "R$ 50,00"},
		{123456, "R$ 1.234,56"},
		{123456789, "R$ 1.234.567,89"},
		{5, "R$ 0,05"},
		{-1050, "-R$ 10,50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBRL(tt.cents))
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	// Display strings produced by FormatBRL must parse back to the same
	// amount.
	for _, cents := range []int64{0, 5, 1000, 5000, 123456, 123456789} {
		assert.Equal(t, cents, ParsePriceCents(FormatBRL(cents)))
	}
}
