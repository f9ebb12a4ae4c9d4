package panels

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	guaraniSign  = "₲"
	notAvailable = "N/D"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount reads the leading decimal number of s, ignoring anything after
// it. Blank or non-numeric input yields 0.
func ParseAmount(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// roundHalfUp rounds halves towards positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// FormatPYG renders a guaraní amount without decimals and with '.' as the
// thousands separator, e.g. "₲ 7.087".
func FormatPYG(v float64) string {
	return guaraniSign + " " + groupThousands(int64(roundHalfUp(v)))
}

// FormatPercent renders v with two decimals and a percent sign.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func groupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
