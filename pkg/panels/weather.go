package panels

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/climapyg/climapyg-dashboard/pkg/api"
	"github.com/climapyg/climapyg-dashboard/pkg/httpclient"
	"github.com/climapyg/climapyg-dashboard/pkg/request"
)

const (
	defaultDescription = "cielo claro"
	loadingDepartment  = "Cargando"
	dayStartHour       = 6
	nightStartHour     = 20
)

// Condition groups weather descriptions into the categories the UI draws.
type Condition string

const (
	ConditionLoading Condition = "loading"
	ConditionNight   Condition = "night"
	ConditionClear   Condition = "clear"
	ConditionClouds  Condition = "clouds"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionWind    Condition = "wind"
)

var descriptionConditions = map[string]Condition{
	"cielo claro":     ConditionClear,
	"nublado":         ConditionClouds,
	"nubes":           ConditionClouds,
	"nubes dispersas": ConditionClouds,
	"nubes altas":     ConditionClouds,
	"muy nuboso":      ConditionClouds,
	"lluvia":          ConditionRain,
	"lluvias":         ConditionRain,
	"nieve":           ConditionSnow,
	"nieves":          ConditionSnow,
	"ventoso":         ConditionWind,
	"ventos":          ConditionWind,
}

// WeatherView is what the weather panel renders.
type WeatherView struct {
	City        string    `json:"city" yaml:"city"`
	Department  string    `json:"department" yaml:"department"`
	Temperature string    `json:"temperature" yaml:"temperature"`
	Description string    `json:"description" yaml:"description"`
	Humidity    string    `json:"humidity" yaml:"humidity"`
	WindSpeed   string    `json:"wind_speed" yaml:"wind_speed"`
	IsDay       bool      `json:"is_day" yaml:"is_day"`
	Condition   Condition `json:"condition" yaml:"condition"`
	Loading     bool      `json:"loading" yaml:"loading"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// WeatherPanel shows current conditions for one selected city.
type WeatherPanel struct {
	ctrl    *request.Controller[api.Weather]
	catalog *Catalog
	now     func() time.Time

	mu       sync.Mutex
	selected City
}

// NewWeatherPanel builds the panel and its request controller. Nothing is
// fetched until Select or Refresh is called.
func NewWeatherPanel(client httpclient.Client, catalog *Catalog, opts ...request.Option) *WeatherPanel {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	p := &WeatherPanel{
		ctrl:    request.New[api.Weather](client, opts...),
		catalog: catalog,
		now:     time.Now,
	}
	if len(catalog.Cities) > 0 {
		p.selected = catalog.Cities[0]
	}
	return p
}

// Selected returns the current city.
func (p *WeatherPanel) Selected() City {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// SetSelected switches to the city with the given value without fetching.
func (p *WeatherPanel) SetSelected(value string) error {
	city, ok := p.catalog.CityByValue(value)
	if !ok {
		return fmt.Errorf("unknown city %q", value)
	}
	p.mu.Lock()
	p.selected = city
	p.mu.Unlock()
	return nil
}

// Select switches to the city with the given value and fetches its weather.
func (p *WeatherPanel) Select(ctx context.Context, value string) error {
	if err := p.SetSelected(value); err != nil {
		return err
	}
	p.Refresh(ctx)
	return nil
}

// Refresh re-fetches the weather for the selected city.
func (p *WeatherPanel) Refresh(ctx context.Context) *api.Weather {
	ep := api.WeatherEndpoint(p.Selected().DepartmentKey)
	return p.ctrl.Execute(ctx, ep.Method, ep.Path, nil)
}

// State exposes the underlying request state.
func (p *WeatherPanel) State() request.State[api.Weather] {
	return p.ctrl.State()
}

// View maps the request state into display values.
func (p *WeatherPanel) View() WeatherView {
	st := p.ctrl.State()
	city := p.Selected()
	hour := p.now().Hour()

	v := WeatherView{
		City:        city.Label,
		Department:  city.Label,
		Temperature: notAvailable,
		Humidity:    notAvailable,
		WindSpeed:   notAvailable,
		Description: defaultDescription,
		IsDay:       hour >= dayStartHour && hour < nightStartHour,
		Loading:     st.Loading,
		Error:       st.Error,
	}
	if v.Department == "" {
		v.Department = loadingDepartment
	}

	if st.HasData() {
		d := st.Data
		if d.Department != "" {
			v.Department = d.Department
		}
		if desc := strings.ToLower(strings.TrimSpace(d.Description)); desc != "" {
			v.Description = desc
		}
		v.Temperature = fmt.Sprintf("%.0f°C", roundHalfUp(d.TempCelsius))
		v.Humidity = fmt.Sprintf("%d%%", d.Humidity)
		v.WindSpeed = fmt.Sprintf("%.0f km/h", roundHalfUp(d.WindSpeedKmh))
	}

	v.Condition = conditionFor(v)
	return v
}

func conditionFor(v WeatherView) Condition {
	if v.Loading {
		return ConditionLoading
	}
	if !v.IsDay {
		return ConditionNight
	}
	if c, ok := descriptionConditions[v.Description]; ok {
		return c
	}
	return ConditionClear
}
