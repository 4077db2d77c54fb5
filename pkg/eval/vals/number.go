package vals

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// NumberToString formats a number the way Number::toString does: the shortest
// decimal that round-trips, in plain notation for exponents from -7 to 20 and
// in exponential notation otherwise.
func NumberToString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f == 0:
		return "0"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f < 0:
		return "-" + NumberToString(-f)
	}
	// Shortest digits in the form d.ddde±x.
	e := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(e, "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	k := len(digits)
	x, _ := strconv.Atoi(exp)
	n := x + 1

	switch {
	case k <= n && n <= 21:
		return digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return "0." + strings.Repeat("0", -n) + digits
	}
	sign := "+"
	if n-1 < 0 {
		sign = "-"
	}
	absExp := strconv.Itoa(abs(n - 1))
	if k == 1 {
		return digits + "e" + sign + absExp
	}
	return digits[:1] + "." + digits[1:] + "e" + sign + absExp
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

var decimalLiteral = regexp.MustCompile(
	`^[+-]?(?:Infinity|(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)$`)

var nonDecimalLiteral = regexp.MustCompile(`^0(?:[xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)

// StringToNumber converts a string to a number following the StringNumericLiteral
// grammar. Strings that do not match the grammar convert to NaN; an empty or
// all-whitespace string converts to 0.
func StringToNumber(s string) float64 {
	s = TrimWhitespace(s)
	if s == "" {
		return 0
	}
	if nonDecimalLiteral.MatchString(s) {
		base := 16
		switch s[1] {
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		i, _ := new(big.Int).SetString(s[2:], base)
		f, _ := new(big.Float).SetInt(i).Float64()
		return f
	}
	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	switch strings.TrimLeft(s, "+-") {
	case "Infinity":
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	// Out-of-range values come back as ±Inf or ±0 together with an error,
	// which is exactly the desired result.
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// IsWhitespace reports whether r is a WhiteSpace or LineTerminator code point.
func IsWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\u1680',
		'\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return '\u2000' <= r && r <= '\u200a'
}

// TrimWhitespace trims leading and trailing WhiteSpace and LineTerminator code
// points.
func TrimWhitespace(s string) string {
	return strings.TrimFunc(s, IsWhitespace)
}

const two32 = 1 << 32

// ToUint32 converts a number to an unsigned 32-bit integer with modular
// wraparound. NaN and infinities convert to 0.
func ToUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(f), two32)
	if m < 0 {
		m += two32
	}
	return uint32(m)
}

// ToInt32 converts a number to a signed 32-bit integer with modular
// wraparound.
func ToInt32(f float64) int32 {
	return int32(ToUint32(f))
}

// ToIntegerOrInfinity truncates a number towards zero, mapping NaN to 0.
func ToIntegerOrInfinity(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Trunc(f) + 0
}

// Exponentiate implements Number::exponentiate. It differs from math.Pow in
// that a NaN exponent always gives NaN, and a base of ±1 with an infinite
// exponent gives NaN.
func Exponentiate(base, exponent float64) float64 {
	switch {
	case math.IsNaN(exponent):
		return math.NaN()
	case math.IsInf(exponent, 0) && math.Abs(base) == 1:
		return math.NaN()
	}
	return math.Pow(base, exponent)
}

// Remainder implements Number::remainder, which truncates like math.Mod.
func Remainder(n, d float64) float64 {
	return math.Mod(n, d)
}
