package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseUintString parses a strict unsigned decimal integer string, the only
// amount form accepted on the request surface.
func ParseUintString(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("invalid unsigned integer: %q", s)
		}
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid unsigned integer: %q", s)
	}
	return n, nil
}

// NormalizeUint coerces an upstream-reported amount into an unsigned
// integer. Fractional parts are truncated at the decimal point, negative
// values clamp to zero, and empty input becomes zero. Non-numeric input
// (NaN, Infinity, exponent notation) is an error.
func NormalizeUint(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return big.NewInt(0), nil
	}
	if strings.HasPrefix(s, "-") {
		rest := s[1:]
		if idx := strings.IndexByte(rest, '.'); idx >= 0 {
			rest = rest[:idx]
		}
		if rest == "" || !isDigits(rest) {
			return nil, fmt.Errorf("non-numeric amount: %q", s)
		}
		return big.NewInt(0), nil
	}
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}
	if s == "" {
		return big.NewInt(0), nil
	}
	if !isDigits(s) {
		return nil, fmt.Errorf("non-numeric amount: %q", s)
	}
	n, _ := new(big.Int).SetString(s, 10)
	return n, nil
}

// CeilDiv returns ceil(num/den) for positive den.
func CeilDiv(num, den *big.Int) *big.Int {
	sum := new(big.Int).Add(num, den)
	sum.Sub(sum, big.NewInt(1))
	return sum.Div(sum, den)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
