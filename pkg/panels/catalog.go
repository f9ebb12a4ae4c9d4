package panels

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/climapyg/climapyg-dashboard/pkg/api"
	"gopkg.in/yaml.v3"
)

// City is a selectable location and the department key the backend routes it to.
type City struct {
	Value         string `json:"value" yaml:"value"`
	Label         string `json:"label" yaml:"label"`
	DepartmentKey string `json:"department_key" yaml:"department_key"`
}

// Currency is a selectable conversion source.
type Currency struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
	Flag string `json:"flag" yaml:"flag"`
}

// Catalog lists the cities and currencies the panels offer.
type Catalog struct {
	Cities     []City     `json:"cities" yaml:"cities"`
	Currencies []Currency `json:"currencies" yaml:"currencies"`

	cityIdx     map[string]City
	currencyIdx map[string]Currency
}

// DefaultCatalog returns the built-in Paraguay catalog.
func DefaultCatalog() *Catalog {
	c := &Catalog{
		Cities: []City{
			{Value: "asuncion", Label: "Asunción", DepartmentKey: api.DepartmentAsuncion},
			{Value: "san-lorenzo", Label: "San Lorenzo", DepartmentKey: api.DepartmentCentral},
			{Value: "ciudad-del-este", Label: "Ciudad del Este", DepartmentKey: api.DepartmentAltoParana},
			{Value: "encarnacion", Label: "Encarnación", DepartmentKey: api.DepartmentItapua},
			{Value: "pedro-juan-caballero", Label: "Pedro Juan Caballero", DepartmentKey: api.DepartmentCentral},
			{Value: "concepcion", Label: "Concepción", DepartmentKey: api.DepartmentCentral},
			{Value: "villarrica", Label: "Villarrica", DepartmentKey: api.DepartmentCentral},
			{Value: "coronel-oviedo", Label: "Coronel Oviedo", DepartmentKey: api.DepartmentCentral},
			{Value: "caaguazu", Label: "Caaguazú", DepartmentKey: api.DepartmentCentral},
		},
		Currencies: []Currency{
			{Code: "USD", Name: "Dólar Americano", Flag: "🇺🇸"},
			{Code: "CAD", Name: "Dólar Canadense", Flag: "🇨🇦"},
			{Code: "EUR", Name: "Euro", Flag: "🇪🇺"},
			{Code: "BRL", Name: "Real Brasileiro", Flag: "🇧🇷"},
			{Code: "ARS", Name: "Peso Argentino", Flag: "🇦🇷"},
			{Code: "UYU", Name: "Peso Uruguayo", Flag: "🇺🇾"},
			{Code: "COP", Name: "Peso Colombiano", Flag: "🇨🇴"},
			{Code: "CLP", Name: "Peso Chileno", Flag: "🇨🇱"},
			{Code: "PEN", Name: "Peso Peruano", Flag: "🇵🇪"},
			{Code: "VEF", Name: "Peso Venezolano", Flag: "🇻🇪"},
			{Code: "VND", Name: "Dong Vietnamita", Flag: "🇻🇳"},
			{Code: "KRW", Name: "Won Coreano", Flag: "🇰🇷"},
			{Code: "BOB", Name: "Boliviano", Flag: "🇧🇴"},
			{Code: "GBP", Name: "Libra Esterlina", Flag: "🇬🇧"},
			{Code: "JPY", Name: "Yen Japones", Flag: "🇯🇵"},
			{Code: "MXN", Name: "Peso Mexicano", Flag: "🇲🇽"},
		},
	}
	// the built-in entries are valid by construction
	_ = c.index()
	return c
}

// LoadCatalog loads a catalog from a YAML/JSON file.
func LoadCatalog(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("catalog file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	cat, err := parseCatalog(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(cat.Cities) == 0 {
		return nil, errors.New("catalog file contains no cities")
	}
	if len(cat.Currencies) == 0 {
		return nil, errors.New("catalog file contains no currencies")
	}

	for i := range cat.Cities {
		cat.Cities[i] = sanitizeCity(cat.Cities[i])
	}
	for i := range cat.Currencies {
		cat.Currencies[i] = sanitizeCurrency(cat.Currencies[i])
	}
	if err := cat.index(); err != nil {
		return nil, err
	}
	return cat, nil
}

// LoadCatalogOrDefault loads path, falling back to DefaultCatalog when the
// file does not exist. The boolean reports whether the file was used.
func LoadCatalogOrDefault(path string) (*Catalog, bool, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCatalog(), false, nil
	}
	cat, err := LoadCatalog(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultCatalog(), false, nil
		}
		return nil, false, err
	}
	return cat, true, nil
}

func parseCatalog(data []byte, ext string) (*Catalog, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var cat Catalog
		if err := d.fn(data, &cat); err == nil {
			return &cat, nil
		}
	}

	return nil, errors.New("catalog file format not recognized (expected YAML or JSON)")
}

func sanitizeCity(c City) City {
	c.Value = strings.ToLower(strings.TrimSpace(c.Value))
	c.Label = strings.TrimSpace(c.Label)
	c.DepartmentKey = strings.ToUpper(strings.TrimSpace(c.DepartmentKey))
	if c.DepartmentKey == "" {
		c.DepartmentKey = api.DepartmentAsuncion
	}
	return c
}

func sanitizeCurrency(c Currency) Currency {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.Name = strings.TrimSpace(c.Name)
	c.Flag = strings.TrimSpace(c.Flag)
	return c
}

// index validates entries and builds lookup maps.
func (c *Catalog) index() error {
	cities := make(map[string]City, len(c.Cities))
	for i, city := range c.Cities {
		if city.Value == "" {
			return fmt.Errorf("cities[%d]: value is required", i)
		}
		if city.Label == "" {
			return fmt.Errorf("label is required for city %q", city.Value)
		}
		if _, exists := cities[city.Value]; exists {
			return fmt.Errorf("duplicate city value %q", city.Value)
		}
		cities[city.Value] = city
	}

	currencies := make(map[string]Currency, len(c.Currencies))
	for i, cur := range c.Currencies {
		if len(cur.Code) != 3 {
			return fmt.Errorf("currencies[%d]: code %q must have 3 letters", i, cur.Code)
		}
		if cur.Name == "" {
			return fmt.Errorf("name is required for currency %q", cur.Code)
		}
		if _, exists := currencies[cur.Code]; exists {
			return fmt.Errorf("duplicate currency code %q", cur.Code)
		}
		currencies[cur.Code] = cur
	}

	c.cityIdx = cities
	c.currencyIdx = currencies
	return nil
}

// CityByValue returns the city with the given value.
func (c *Catalog) CityByValue(value string) (City, bool) {
	if c == nil {
		return City{}, false
	}
	city, ok := c.cityIdx[strings.ToLower(strings.TrimSpace(value))]
	return city, ok
}

// CurrencyByCode returns the currency with the given code.
func (c *Catalog) CurrencyByCode(code string) (Currency, bool) {
	if c == nil {
		return Currency{}, false
	}
	cur, ok := c.currencyIdx[strings.ToUpper(strings.TrimSpace(code))]
	return cur, ok
}
