package calc

import (
	"math"
	"strconv"
	"strings"

	"Hidro/internal/catalog"
)

// Format renders a result value for display. Non-finite values render as ""
// so the caller can hide the result entirely.
func Format(v float64, id catalog.ID) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	if id == catalog.Reynolds {
		r := math.Round(v)
		if r == 0 {
			r = 0
		}
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	return formatNumber(v)
}

// FormatResult is Format for a possibly missing value.
func FormatResult(r Result) string {
	if r.Value == nil {
		return ""
	}
	return Format(*r.Value, r.Category)
}

func formatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	a := math.Abs(v)
	if a > 10000 || (a > 0 && a < 0.001) {
		return significant(v, 6)
	}
	return trimZeros(strconv.FormatFloat(v, 'f', 6, 64))
}

// significant rounds to n significant digits, switching to exponent form
// when the decimal exponent is below -6 or at least n.
func significant(v float64, n int) string {
	s := strconv.FormatFloat(v, 'e', n-1, 64)
	i := strings.IndexByte(s, 'e')
	mant, expPart := s[:i], s[i+1:]
	exp, err := strconv.Atoi(expPart)
	if err != nil {
		return s
	}
	if exp < -6 || exp >= n {
		sign := "+"
		if exp < 0 {
			sign = "-"
			exp = -exp
		}
		return mant + "e" + sign + strconv.Itoa(exp)
	}
	return strconv.FormatFloat(v, 'f', n-1-exp, 64)
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
