package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// roundDigits is the number of fractional digits kept in a result.
const roundDigits = 10

// ParseOperand parses the longest numeric prefix of s.
//
// Accepted forms: optional sign, then "Infinity" or decimal digits with an optional
// fraction and exponent. Leading whitespace is skipped. "0." parses as 0; "", "-", "." and
// "NaN" do not parse.
func ParseOperand(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	n := numericPrefix(s)
	if n == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil {
		// Out of range literals saturate to ±Inf or 0.
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}

	digits := 0
	for i < len(s) && isDecimal(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDecimal(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDecimal(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDecimal(b byte) bool { return b >= '0' && b <= '9' }

// Round10 rounds x to 10 fractional decimal digits, halves away from zero.
// Non-finite values and magnitudes of 1e21 or more pass through.
func Round10(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) >= 1e21 {
		return x
	}
	// Every float64 has a terminating decimal expansion within 1074 fractional digits,
	// so this text is exact and ties are visible as a trailing 5.
	exact := strconv.FormatFloat(math.Abs(x), 'f', 1074, 64)
	cut := strings.IndexByte(exact, '.') + 1 + roundDigits
	digits := []byte(exact[:cut])
	if exact[cut] >= '5' {
		digits = incrementDecimal(digits)
	}
	r, err := strconv.ParseFloat(string(digits), 64)
	if err != nil {
		return x
	}
	if r == 0 {
		// Drop the sign of negative zero.
		return 0
	}
	if x < 0 {
		r = -r
	}
	return r
}

// incrementDecimal adds one unit in the last place of a plain decimal number.
func incrementDecimal(b []byte) []byte {
	for i := len(b) - 1; i >= 0; i-- {
		switch b[i] {
		case '.':
		case '9':
			b[i] = '0'
		default:
			b[i]++
			return b
		}
	}
	return append([]byte{'1'}, b...)
}

// FormatNumber renders x with the shortest digits that round-trip.
//
// Magnitudes in [1e-7, 1e21) use plain decimal notation; everything else uses an exponent
// ("1e+21", "1.5e-7"). Non-finite values render as "Infinity", "-Infinity" and "NaN".
func FormatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}

	neg := x < 0
	if neg {
		x = -x
	}

	mant, expText, _ := strings.Cut(strconv.FormatFloat(x, 'e', -1, 64), "e")
	digits := strings.Replace(mant, ".", "", 1)
	exp, _ := strconv.Atoi(expText)

	// x = 0.<digits> * 10^n
	n := exp + 1
	k := len(digits)

	var out string
	switch {
	case k <= n && n <= 21:
		out = digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		out = digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		out = "0." + strings.Repeat("0", -n) + digits
	default:
		e := n - 1
		sign := "+"
		if e < 0 {
			sign = "-"
			e = -e
		}
		out = digits[:1]
		if k > 1 {
			out += "." + digits[1:]
		}
		out += "e" + sign + strconv.Itoa(e)
	}

	if neg {
		return "-" + out
	}
	return out
}
