package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/climapyg/climapyg-dashboard/pkg/panels"
)

const visibleCurrencies = 7

var conditionIcons = map[panels.Condition]string{
	panels.ConditionNight:  "☾",
	panels.ConditionClear:  "☀",
	panels.ConditionClouds: "☁",
	panels.ConditionRain:   "☂",
	panels.ConditionSnow:   "❄",
	panels.ConditionWind:   "≋",
}

// View renders the dashboard.
func (m *Model) View() string {
	if m.showAbout {
		return m.place(renderAbout())
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabs(),
		panelStyle.Render(m.renderActive()),
		m.help.View(m.keys),
	)
	return m.place(body)
}

func (m *Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderHeader() string {
	return titleStyle.Render("🇵🇾 Paraguay Hub") + "  " +
		subtitleStyle.Render("clima, monedas y bitcoin")
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		style := tabStyle
		if t == m.active {
			style = activeTabStyle
		}
		title := t.String()
		if m.tabFailed(t) {
			title += " !"
		}
		tabs = append(tabs, style.Render(title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderActive() string {
	switch m.active {
	case TabCurrency:
		return m.renderCurrency(m.currency.View())
	case TabBitcoin:
		return m.renderBitcoin(m.bitcoin.View())
	default:
		return m.renderWeather(m.weather.View())
	}
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func (m *Model) renderError(msg string) string {
	if msg == "" {
		return ""
	}
	return "\n" + errorStyle.Render("⚠ "+msg)
}

func (m *Model) renderWeather(v panels.WeatherView) string {
	icon := conditionIcons[v.Condition]
	if v.Condition == panels.ConditionLoading {
		icon = m.spinner.View()
	}

	accent := ColorOrange
	if !v.IsDay {
		accent = ColorNight
	}
	temp := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(v.Temperature)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", cursorStyle.Render("◂ "+v.City+" ▸"), dimStyle.Render(v.Department))
	fmt.Fprintf(&b, "\n%s  %s  %s\n\n", icon, temp, v.Description)
	b.WriteString(row("Humedad", v.Humidity) + "\n")
	b.WriteString(row("Viento", v.WindSpeed))
	b.WriteString(m.renderError(v.Error))
	return b.String()
}

func (m *Model) renderCurrency(v panels.CurrencyView) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Conversor de Monedas") + "  " + dimStyle.Render("a Guaraníes (PYG)") + "\n\n")
	b.WriteString(m.renderCurrencyList() + "\n\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("Monto (%s)", v.Code)) + m.amountInput.View() + "\n")
	result := bigValueStyle.Render(v.Result)
	if v.Loading {
		result = m.spinner.View() + " " + result
	}
	b.WriteString(row("Resultado", "") + result + "\n")
	b.WriteString(row("Tasa", v.Rate))
	b.WriteString(m.renderError(v.Error))
	return b.String()
}

// renderCurrencyList shows a window of the catalog around the selection.
func (m *Model) renderCurrencyList() string {
	list := m.catalog.Currencies
	start := m.currencyIdx - visibleCurrencies/2
	if start > len(list)-visibleCurrencies {
		start = len(list) - visibleCurrencies
	}
	if start < 0 {
		start = 0
	}
	end := min(start+visibleCurrencies, len(list))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		c := list[i]
		line := fmt.Sprintf("%s %s  %s", c.Flag, c.Code, c.Name)
		if i == m.currencyIdx {
			lines = append(lines, cursorStyle.Render("› "+line))
			continue
		}
		lines = append(lines, dimStyle.Render("  "+line))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBitcoin(v panels.BitcoinView) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Bitcoin en Guaraníes") + "\n\n")

	if v.Initializing {
		b.WriteString(m.spinner.View() + " " + dimStyle.Render("Cargando precio..."))
		b.WriteString(m.renderError(v.Error))
		return b.String()
	}

	trendStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
	arrow := "▼"
	if v.Trend == panels.TrendUp {
		trendStyle = trendStyle.Foreground(ColorGreen)
		arrow = "▲"
	}

	b.WriteString(row("Precio", v.Price) + "  " + trendStyle.Render(arrow+" "+v.Change24h) + "\n")
	b.WriteString(row("Máximo 24h", v.High24h) + "\n")
	b.WriteString(row("Mínimo 24h", v.Low24h) + "\n")
	b.WriteString(row("Precio USD", fmt.Sprintf("US$ %.2f", v.PriceUSD)) + "\n")
	b.WriteString(row("Dólar", v.USDRate) + "\n\n")

	b.WriteString(labelStyle.Render("Monto (BTC)") + m.btcInput.View() + "\n")
	converted := bigValueStyle.Render(v.Converted)
	if v.Loading {
		converted = m.spinner.View() + " " + converted
	}
	b.WriteString(row("Equivale a", "") + converted)
	b.WriteString(m.renderError(v.Error))
	return b.String()
}
