package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney renders an amount of cents with exactly two fractional digits.
func FormatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatRupee renders the amount the way tickets and reports print it.
func FormatRupee(cents int64) string {
	return "₹" + FormatMoney(cents)
}

// ParseMoney parses "1200", "1200.5" or "1200.50" into cents. One leading
// minus is allowed; every other character must be a digit or the single dot.
// More than two fractional digits is an error rather than a silent rounding.
func ParseMoney(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	raw := s
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	if !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if len(frac) == 1 {
		frac += "0"
	}
	var cents int64
	if frac != "" {
		cents, _ = strconv.ParseInt(frac, 10, 64)
	}
	total := units*100 + cents
	if neg {
		total = -total
	}
	return total, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
