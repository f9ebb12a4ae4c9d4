package app

import (
	"fmt"

	"github.com/climapyg/climapyg-dashboard/internal/config"
	"github.com/climapyg/climapyg-dashboard/internal/logger"
	"github.com/climapyg/climapyg-dashboard/pkg/httpclient"
	"github.com/climapyg/climapyg-dashboard/pkg/panels"
	"github.com/climapyg/climapyg-dashboard/pkg/request"
)

// Panels bundles the three dashboard panels sharing one transport.
type Panels struct {
	Catalog  *panels.Catalog
	Weather  *panels.WeatherPanel
	Currency *panels.CurrencyPanel
	Bitcoin  *panels.BitcoinPanel
}

// NewPanels wires the panels against cfg.APIBaseURL. extra options are
// applied to every controller after the config-derived ones.
func NewPanels(cfg *config.Config, log logger.Logger, extra ...request.Option) (*Panels, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	catalog, fromFile, err := panels.LoadCatalogOrDefault(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	log.InfoObj("catalog loaded", "catalog_meta", map[string]any{
		"path":       cfg.CatalogFile,
		"from_file":  fromFile,
		"cities":     len(catalog.Cities),
		"currencies": len(catalog.Currencies),
	})

	opts := []request.Option{request.WithLogger(log)}
	if cfg.RequestLatestOnly {
		opts = append(opts, request.WithLatestOnly())
	}
	opts = append(opts, extra...)

	client := httpclient.NewRestyClient(cfg.APIBaseURL, cfg.RequestTimeout)

	return &Panels{
		Catalog:  catalog,
		Weather:  panels.NewWeatherPanel(client, catalog, opts...),
		Currency: panels.NewCurrencyPanel(client, catalog, opts...),
		Bitcoin:  panels.NewBitcoinPanel(client, opts...),
	}, nil
}

// Snapshot renders the current state of all three panels.
func (p *Panels) Snapshot() panels.Snapshot {
	return panels.TakeSnapshot(p.Weather, p.Currency, p.Bitcoin)
}
