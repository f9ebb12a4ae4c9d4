package panels

import (
	"context"
	"fmt"
	"sync"

	"github.com/climapyg/climapyg-dashboard/pkg/api"
	"github.com/climapyg/climapyg-dashboard/pkg/httpclient"
	"github.com/climapyg/climapyg-dashboard/pkg/request"
)

const defaultAmount = "1"

// CurrencyView is what the currency panel renders.
type CurrencyView struct {
	Code      string  `json:"code" yaml:"code"`
	Name      string  `json:"name" yaml:"name"`
	Flag      string  `json:"flag" yaml:"flag"`
	Amount    string  `json:"amount" yaml:"amount"`
	Result    string  `json:"result" yaml:"result"`
	Rate      string  `json:"rate" yaml:"rate"`
	RawResult float64 `json:"raw_result" yaml:"raw_result"`
	RawRate   float64 `json:"raw_rate" yaml:"raw_rate"`
	Loading   bool    `json:"loading" yaml:"loading"`
	Error     string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// CurrencyPanel converts an amount of the selected currency to guaraníes.
type CurrencyPanel struct {
	ctrl    *request.Controller[api.CurrencyConversion]
	catalog *Catalog

	mu       sync.Mutex
	selected Currency
	amount   string
	result   float64
	rate     float64
	applied  *api.CurrencyConversion
}

// NewCurrencyPanel builds the panel and its request controller.
func NewCurrencyPanel(client httpclient.Client, catalog *Catalog, opts ...request.Option) *CurrencyPanel {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	p := &CurrencyPanel{
		ctrl:    request.New[api.CurrencyConversion](client, opts...),
		catalog: catalog,
		amount:  defaultAmount,
	}
	if len(catalog.Currencies) > 0 {
		p.selected = catalog.Currencies[0]
	}
	return p
}

// Selected returns the current source currency.
func (p *CurrencyPanel) Selected() Currency {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// Amount returns the raw amount input.
func (p *CurrencyPanel) Amount() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.amount
}

// SetAmount stores the raw amount input without converting.
func (p *CurrencyPanel) SetAmount(amount string) {
	p.mu.Lock()
	p.amount = amount
	p.mu.Unlock()
}

// Select switches the source currency and resets the displayed rate.
func (p *CurrencyPanel) Select(code string) error {
	cur, ok := p.catalog.CurrencyByCode(code)
	if !ok {
		return fmt.Errorf("unknown currency %q", code)
	}
	p.mu.Lock()
	p.selected = cur
	p.rate = 0
	p.mu.Unlock()
	return nil
}

// Convert posts the current amount and currency. Non-positive or
// unparsable amounts reset the result to zero without calling the backend;
// the boolean reports whether a request was issued.
func (p *CurrencyPanel) Convert(ctx context.Context) bool {
	p.mu.Lock()
	amount := ParseAmount(p.amount)
	code := p.selected.Code
	if amount <= 0 || code == "" {
		p.result = 0
		p.mu.Unlock()
		return false
	}
	p.mu.Unlock()

	ep := api.CurrencyEndpoint()
	p.ctrl.Execute(ctx, ep.Method, ep.Path, api.ConversionRequest{FromCurrency: code, Amount: amount})
	p.sync()
	return true
}

// State exposes the underlying request state.
func (p *CurrencyPanel) State() request.State[api.CurrencyConversion] {
	return p.ctrl.State()
}

// sync copies a newly settled conversion into the displayed values once.
func (p *CurrencyPanel) sync() request.State[api.CurrencyConversion] {
	st := p.ctrl.State()
	p.mu.Lock()
	defer p.mu.Unlock()
	if st.HasData() && !st.Loading && st.Data != p.applied {
		p.applied = st.Data
		p.result = st.Data.ConvertedAmount
		p.rate = st.Data.Rate
	}
	return st
}

// View maps the request state into display values.
func (p *CurrencyPanel) View() CurrencyView {
	st := p.sync()

	p.mu.Lock()
	defer p.mu.Unlock()
	return CurrencyView{
		Code:      p.selected.Code,
		Name:      p.selected.Name,
		Flag:      p.selected.Flag,
		Amount:    p.amount,
		Result:    FormatPYG(p.result),
		Rate:      fmt.Sprintf("1 %s = %s", p.selected.Code, FormatPYG(p.rate)),
		RawResult: p.result,
		RawRate:   p.rate,
		Loading:   st.Loading,
		Error:     st.Error,
	}
}
