package api

import (
	"net/http"
	"net/url"
	"strings"
)

// Package api describes the backend endpoints and the JSON bodies they exchange.

const (
	// TargetCurrency is the currency every conversion resolves to.
	TargetCurrency = "PYG"
	// BitcoinCode is the source currency sent to the bitcoin endpoint.
	BitcoinCode = "BTC"

	CurrencyConvertPath = "/currency/convert"
	BitcoinConvertPath  = "/bitcoin/convert"
	weatherPathPrefix   = "/weather/"
)

// Department keys routed by the weather endpoint.
const (
	DepartmentAsuncion   = "ASUNCION"
	DepartmentCentral    = "CENTRAL"
	DepartmentAltoParana = "ALTO_PARANA"
	DepartmentItapua     = "ITAPUA"
)

// Endpoint pairs an HTTP verb with a path relative to the API base URL.
type Endpoint struct {
	Method string
	Path   string
}

// WeatherEndpoint returns the endpoint for the given department key. Empty
// keys fall back to Asunción.
func WeatherEndpoint(departmentKey string) Endpoint {
	key := strings.ToUpper(strings.TrimSpace(departmentKey))
	if key == "" {
		key = DepartmentAsuncion
	}
	return Endpoint{Method: http.MethodGet, Path: weatherPathPrefix + url.PathEscape(key)}
}

// CurrencyEndpoint returns the currency conversion endpoint.
func CurrencyEndpoint() Endpoint {
	return Endpoint{Method: http.MethodPost, Path: CurrencyConvertPath}
}

// BitcoinEndpoint returns the bitcoin conversion endpoint.
func BitcoinEndpoint() Endpoint {
	return Endpoint{Method: http.MethodPost, Path: BitcoinConvertPath}
}

// Weather is the body returned by GET /weather/{department}.
type Weather struct {
	Department   string  `json:"department" yaml:"department"`
	TempCelsius  float64 `json:"temp_celsius" yaml:"temp_celsius"`
	Description  string  `json:"description" yaml:"description"`
	Humidity     int     `json:"humidity" yaml:"humidity"`
	WindSpeedKmh float64 `json:"wind_speed_kmh" yaml:"wind_speed_kmh"`
}

// ConversionRequest is the body posted to both conversion endpoints.
type ConversionRequest struct {
	FromCurrency string  `json:"from_currency"`
	Amount       float64 `json:"amount"`
}

// CurrencyConversion is the body returned by POST /currency/convert.
type CurrencyConversion struct {
	SourceCurrency  string    `json:"source_currency" yaml:"source_currency"`
	TargetCurrency  string    `json:"target_currency" yaml:"target_currency"`
	Amount          float64   `json:"amount" yaml:"amount"`
	ConvertedAmount float64   `json:"converted_amount" yaml:"converted_amount"`
	Rate            float64   `json:"rate" yaml:"rate"`
	Timestamp       Timestamp `json:"timestamp" yaml:"timestamp"`
}

// BitcoinConversion is the body returned by POST /bitcoin/convert.
type BitcoinConversion struct {
	SourceCurrency  string    `json:"source_currency" yaml:"source_currency"`
	TargetCurrency  string    `json:"target_currency" yaml:"target_currency"`
	Amount          float64   `json:"amount" yaml:"amount"`
	ConvertedAmount float64   `json:"converted_amount" yaml:"converted_amount"`
	BTCRateUSD      float64   `json:"btc_rate_usd" yaml:"btc_rate_usd"`
	BTCRatePYG      float64   `json:"btc_rate_pyg" yaml:"btc_rate_pyg"`
	USDRatePYG      float64   `json:"usd_rate_pyg" yaml:"usd_rate_pyg"`
	BTCHigh24h      float64   `json:"btc_high_24h" yaml:"btc_high_24h"`
	BTCLow24h       float64   `json:"btc_low_24h" yaml:"btc_low_24h"`
	BTCChange24h    float64   `json:"btc_change_24h" yaml:"btc_change_24h"`
	Timestamp       Timestamp `json:"timestamp" yaml:"timestamp"`
}
