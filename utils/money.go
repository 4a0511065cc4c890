package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParsePriceCents parses a free-form display price into cents.
// The catalog stores prices as display strings ("R$ 50,00", "R$10",
// "R$ 1.234,56"); normalization happens once here so the rest of the
// pipeline works with a structured amount.
//
// Rules: keep only digits, '.', ',' and '-'; when a comma appears after the
// last dot it is the decimal separator and dots are thousands separators
// (Brazilian format). Anything that still fails to parse (including
// unavailability markers like "Indisponível") yields 0.
func ParsePriceCents(display string) int64 {
	var b strings.Builder
	for _, r := range display {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0
	}

	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')
	if lastComma > lastDot {
		// Comma-decimal format: "1.234,56" -> "1234.56"
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else {
		// Dot-decimal (or integer) format: commas are thousands separators
		s = strings.ReplaceAll(s, ",", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f * 100))
}

// FormatCents2 formats cents with two decimal places and no currency
// symbol, e.g. 5000 -> "50.00". Used for cart subtotals and totals.
func FormatCents2(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

// FormatBRL formats an amount in cents as a Brazilian Real display string
// like "R$ 1.234,56". Uses dot as thousands separator and comma for cents.
func FormatBRL(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	s := strconv.FormatInt(whole, 10)
	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 8)
	if neg {
		b.WriteString("-R$ ")
	} else {
		b.WriteString("R$ ")
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}

	b.WriteByte(',')
	b.WriteString(fmt.Sprintf("%02d", frac))
	return b.String()
}
