package argv

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var errNotNumeric = errors.New("expected a decimal or 0x-prefixed hexadecimal number")

// ParseInt parses a decimal or 0x-prefixed hexadecimal integer with an
// optional leading minus sign. Octal, binary and underscores are rejected.
func ParseInt(s string) (int64, error) {
	neg := false
	digits := s

	if len(digits) > 0 && digits[0] == '-' {
		neg = true
		digits = digits[1:]
	}

	base := 10
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		base = 16
		digits = digits[2:]
	}

	if digits == "" || !validDigits(digits, base) {
		return 0, fmt.Errorf("%q: %w", s, errNotNumeric)
	}

	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, err)
	}

	if neg {
		if u > 1<<63 {
			return 0, fmt.Errorf("%q: value out of range", s)
		}

		return -int64(u), nil
	}

	if u > math.MaxInt64 {
		return 0, fmt.Errorf("%q: value out of range", s)
	}

	return int64(u), nil
}

// ParseInt32 is ParseInt restricted to the signed 32-bit range used for
// window coordinates and sizes.
func ParseInt32(s string) (int32, error) {
	v, err := ParseInt(s)
	if err != nil {
		return 0, err
	}

	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%q: value out of 32-bit range", s)
	}

	return int32(v), nil
}

// IsNumeric reports whether s parses with ParseInt.
func IsNumeric(s string) bool {
	_, err := ParseInt(s)
	return err == nil
}

func validDigits(s string, base int) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c >= '0' && c <= '9':
		case base == 16 && c >= 'a' && c <= 'f':
		case base == 16 && c >= 'A' && c <= 'F':
		default:
			return false
		}
	}

	return true
}
