package panels

import "time"

// Snapshot is the combined rendering of the three panels at one instant.
type Snapshot struct {
	TakenAt  time.Time    `json:"taken_at" yaml:"taken_at"`
	Weather  WeatherView  `json:"weather" yaml:"weather"`
	Currency CurrencyView `json:"currency" yaml:"currency"`
	Bitcoin  BitcoinView  `json:"bitcoin" yaml:"bitcoin"`
}

// Failed reports whether any panel ended in an error.
func (s Snapshot) Failed() bool {
	return s.Weather.Error != "" || s.Currency.Error != "" || s.Bitcoin.Error != ""
}

// TakeSnapshot renders the current views of the three panels.
func TakeSnapshot(w *WeatherPanel, c *CurrencyPanel, b *BitcoinPanel) Snapshot {
	return Snapshot{
		TakenAt:  time.Now().UTC(),
		Weather:  w.View(),
		Currency: c.View(),
		Bitcoin:  b.View(),
	}
}
