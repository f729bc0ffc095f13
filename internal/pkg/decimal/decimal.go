package decimal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Decimal is a fixed-point value with two decimal places, stored as
// hundredths in an int64. It covers both currency amounts and the
// percentage columns of admin statistics, which the schema defines as
// decimal(10,2) / decimal(5,2).
type Decimal int64

var ErrParse = errors.New("invalid decimal value")

func FromInt(v int64) Decimal { return Decimal(v * 100) }

// FromFloat rounds half away from zero to two decimal places.
func FromFloat(v float64) Decimal {
	if v < 0 {
		return Decimal(int64(v*100 - 0.5))
	}
	return Decimal(int64(v*100 + 0.5))
}

// Parse accepts "45", "45.5", "45.50", "-3.25". Fractions beyond two
// digits are rejected rather than silently rounded.
func Parse(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrParse
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrParse
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 2 {
		return 0, ErrParse
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrParse
	}
	frac, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, ErrParse
	}

	v := whole*100 + frac
	if neg {
		v = -v
	}
	return Decimal(v), nil
}

func (d Decimal) Add(o Decimal) Decimal { return d + o }

func (d Decimal) MulInt(n int64) Decimal { return Decimal(int64(d) * n) }

// DivInt divides with half-away-from-zero rounding.
func (d Decimal) DivInt(n int64) Decimal {
	if n == 0 {
		return 0
	}
	return Decimal(roundDiv(int64(d), n))
}

// Percent returns part/whole*100 rounded to two decimal places, or 0
// when whole is zero. Both operands share the same scale, so the scale
// cancels out and only the *100 shift remains.
func Percent(part, whole Decimal) Decimal {
	if whole == 0 {
		return 0
	}
	return Decimal(roundDiv(int64(part)*10000, int64(whole)))
}

// PercentOfCount is Percent for plain integer counts (e.g. nights).
func PercentOfCount(part, whole int64) Decimal {
	if whole == 0 {
		return 0
	}
	return Decimal(roundDiv(part*10000, whole))
}

func roundDiv(a, b int64) int64 {
	if b < 0 {
		a, b = -a, -b
	}
	if a < 0 {
		return -((-a + b/2) / b)
	}
	return (a + b/2) / b
}

// String renders with exactly two decimal places, e.g. "45.00".
func (d Decimal) String() string {
	v := int64(d)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON emits a bare JSON number with two decimals.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON accepts both numbers and quoted strings.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		*d = 0
		return nil
	}
	// JSON numbers may carry long float fractions (e.g. 45.500000001
	// from sloppy clients); fall back to float parsing for those.
	v, err := Parse(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return ErrParse
		}
		*d = FromFloat(f)
		return nil
	}
	*d = v
	return nil
}
