package panels

import "testing"

func TestFormatPYG(t *testing.T) {
	cases := map[float64]string{
		0:          "₲ 0",
		7087:       "₲ 7.087",
		7086.5:     "₲ 7.087",
		75000:      "₲ 75.000",
		999.4:      "₲ 999",
		1234567.89: "₲ 1.234.568",
		-1500:      "₲ -1.500",
	}
	for in, want := range cases {
		if got := FormatPYG(in); got != want {
			t.Errorf("FormatPYG(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"1":      1,
		" 2.5 ":  2.5,
		"10abc":  10,
		".5":     0.5,
		"1e3":    1000,
		"-4":     -4,
		"":       0,
		"abc":    0,
		"1,5":    1,
		"0.0001": 0.0001,
	}
	for in, want := range cases {
		if got := ParseAmount(in); got != want {
			t.Errorf("ParseAmount(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(-2.345); got != "-2.35%" && got != "-2.34%" {
		t.Fatalf("unexpected percent %q", got)
	}
	if got := FormatPercent(1.5); got != "1.50%" {
		t.Fatalf("unexpected percent %q", got)
	}
}
