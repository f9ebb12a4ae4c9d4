package panels

import (
	"context"
	"sync"

	"github.com/climapyg/climapyg-dashboard/pkg/api"
	"github.com/climapyg/climapyg-dashboard/pkg/httpclient"
	"github.com/climapyg/climapyg-dashboard/pkg/request"
)

// Trend is the direction of the 24h price change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// BitcoinView is what the bitcoin panel renders. Initializing is true while
// the first conversion is still pending.
type BitcoinView struct {
	Amount       string  `json:"amount" yaml:"amount"`
	Converted    string  `json:"converted" yaml:"converted"`
	Price        string  `json:"price" yaml:"price"`
	High24h      string  `json:"high_24h" yaml:"high_24h"`
	Low24h       string  `json:"low_24h" yaml:"low_24h"`
	Change24h    string  `json:"change_24h" yaml:"change_24h"`
	PriceUSD     float64 `json:"price_usd" yaml:"price_usd"`
	USDRate      string  `json:"usd_rate" yaml:"usd_rate"`
	Trend        Trend   `json:"trend" yaml:"trend"`
	Initializing bool    `json:"initializing" yaml:"initializing"`
	Loading      bool    `json:"loading" yaml:"loading"`
	Error        string  `json:"error,omitempty" yaml:"error,omitempty"`
}

type bitcoinStats struct {
	converted float64
	pricePYG  float64
	priceUSD  float64
	usdRate   float64
	high      float64
	low       float64
	change    float64
}

// BitcoinPanel converts an amount of BTC to guaraníes and shows 24h stats.
type BitcoinPanel struct {
	ctrl *request.Controller[api.BitcoinConversion]

	mu      sync.Mutex
	amount  string
	stats   bitcoinStats
	applied *api.BitcoinConversion
}

// NewBitcoinPanel builds the panel and its request controller.
func NewBitcoinPanel(client httpclient.Client, opts ...request.Option) *BitcoinPanel {
	return &BitcoinPanel{
		ctrl:   request.New[api.BitcoinConversion](client, opts...),
		amount: defaultAmount,
	}
}

// Amount returns the raw BTC amount input.
func (p *BitcoinPanel) Amount() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.amount
}

// SetAmount stores the raw BTC amount input without converting.
func (p *BitcoinPanel) SetAmount(amount string) {
	p.mu.Lock()
	p.amount = amount
	p.mu.Unlock()
}

// Convert posts the current BTC amount. Non-positive or unparsable amounts
// reset the converted value without calling the backend.
func (p *BitcoinPanel) Convert(ctx context.Context) bool {
	p.mu.Lock()
	amount := ParseAmount(p.amount)
	if amount <= 0 {
		p.stats.converted = 0
		p.mu.Unlock()
		return false
	}
	p.mu.Unlock()

	ep := api.BitcoinEndpoint()
	p.ctrl.Execute(ctx, ep.Method, ep.Path, api.ConversionRequest{FromCurrency: api.BitcoinCode, Amount: amount})
	p.sync()
	return true
}

// State exposes the underlying request state.
func (p *BitcoinPanel) State() request.State[api.BitcoinConversion] {
	return p.ctrl.State()
}

func (p *BitcoinPanel) sync() request.State[api.BitcoinConversion] {
	st := p.ctrl.State()
	p.mu.Lock()
	defer p.mu.Unlock()
	if d := st.Data; st.HasData() && !st.Loading && d != p.applied {
		p.applied = d
		p.stats = bitcoinStats{
			converted: d.ConvertedAmount,
			pricePYG:  d.BTCRatePYG,
			priceUSD:  d.BTCRateUSD,
			usdRate:   d.USDRatePYG,
			high:      d.BTCHigh24h,
			low:       d.BTCLow24h,
			change:    d.BTCChange24h,
		}
	}
	return st
}

// View maps the request state into display values.
func (p *BitcoinPanel) View() BitcoinView {
	st := p.sync()

	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.stats
	trend := TrendDown
	if s.change > 0 {
		trend = TrendUp
	}
	return BitcoinView{
		Amount:       p.amount,
		Converted:    FormatPYG(s.converted),
		Price:        FormatPYG(s.pricePYG),
		High24h:      FormatPYG(s.high),
		Low24h:       FormatPYG(s.low),
		Change24h:    FormatPercent(s.change),
		PriceUSD:     s.priceUSD,
		USDRate:      FormatPYG(s.usdRate),
		Trend:        trend,
		Initializing: st.Loading && s.converted == 0,
		Loading:      st.Loading,
		Error:        st.Error,
	}
}
