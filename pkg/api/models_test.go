package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func TestWeatherEndpoint(t *testing.T) {
	cases := map[string]string{
		"ASUNCION":     "/weather/ASUNCION",
		" alto_parana": "/weather/ALTO_PARANA",
		"":             "/weather/ASUNCION",
	}
	for key, want := range cases {
		ep := WeatherEndpoint(key)
		if ep.Method != http.MethodGet || ep.Path != want {
			t.Fatalf("WeatherEndpoint(%q) = %+v, want GET %s", key, ep, want)
		}
	}
}

func TestConversionDecodesNaiveTimestamp(t *testing.T) {
	body := `{"source_currency":"USD","target_currency":"PYG","amount":10,"converted_amount":75000,"rate":7500,"timestamp":"2025-03-01T12:30:45.123456"}`

	var conv CurrencyConversion
	if err := json.Unmarshal([]byte(body), &conv); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := time.Date(2025, 3, 1, 12, 30, 45, 123456000, time.UTC)
	if !conv.Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", conv.Timestamp.Time, want)
	}
	if conv.ConvertedAmount != 75000 || conv.Rate != 7500 {
		t.Fatalf("unexpected conversion %+v", conv)
	}
}

func TestTimestampAcceptsZonedAndNull(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2025-03-01T12:30:45-03:00"`), &ts); err != nil {
		t.Fatalf("zoned: %v", err)
	}
	if ts.Hour() != 15 {
		t.Fatalf("expected UTC normalisation, got %v", ts.Time)
	}
	if err := json.Unmarshal([]byte(`null`), &ts); err != nil || !ts.IsZero() {
		t.Fatalf("null: err=%v ts=%v", err, ts.Time)
	}
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
