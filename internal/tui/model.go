package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/climapyg/climapyg-dashboard/pkg/panels"
)

// Tab identifies one of the dashboard sections.
type Tab int

const (
	TabWeather Tab = iota
	TabCurrency
	TabBitcoin
	tabCount
)

var tabTitles = [tabCount]string{"Clima", "Monedas", "Bitcoin"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return ""
	}
	return tabTitles[t]
}

// fetchDoneMsg is returned by request commands once the panel call settles.
type fetchDoneMsg struct {
	tab Tab
}

// Model is the dashboard Bubble Tea model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	weather  *panels.WeatherPanel
	currency *panels.CurrencyPanel
	bitcoin  *panels.BitcoinPanel
	catalog  *panels.Catalog

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	active      Tab
	cityIdx     int
	currencyIdx int
	showAbout   bool
	spinning    bool

	amountInput textinput.Model
	btcInput    textinput.Model
	editing     bool

	width  int
	height int
}

// New builds the dashboard model. Requests made by the model use ctx and are
// cancelled on quit.
func New(ctx context.Context, catalog *panels.Catalog, w *panels.WeatherPanel, c *panels.CurrencyPanel, b *panels.BitcoinPanel) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if catalog == nil {
		catalog = panels.DefaultCatalog()
	}
	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cursorStyle

	m := &Model{
		ctx:         ctx,
		cancel:      cancel,
		weather:     w,
		currency:    c,
		bitcoin:     b,
		catalog:     catalog,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		amountInput: newAmountInput(c.Amount()),
		btcInput:    newAmountInput(b.Amount()),
	}
	m.cityIdx = m.indexOfCity(w.Selected().Value)
	m.currencyIdx = m.indexOfCurrency(c.Selected().Code)
	return m
}

func newAmountInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 24
	ti.Width = 20
	ti.SetValue(value)
	return ti
}

func (m *Model) indexOfCity(value string) int {
	for i, c := range m.catalog.Cities {
		if c.Value == value {
			return i
		}
	}
	return 0
}

func (m *Model) indexOfCurrency(code string) int {
	for i, c := range m.catalog.Currencies {
		if c.Code == code {
			return i
		}
	}
	return 0
}

// Active returns the visible tab.
func (m *Model) Active() Tab { return m.active }

// Init issues the initial load of every panel.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshWeather(),
		m.convertCurrency(),
		m.convertBitcoin(),
		m.spin(),
	)
}

// Update handles Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case StateChangedMsg, fetchDoneMsg:
		return m, m.spin()

	case spinner.TickMsg:
		if !m.anyLoading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress dispatches keys: force quit first, then the about dialog,
// then amount editing, then global shortcuts.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	if key.Matches(msg, k.ForceQuit) {
		return m.quit()
	}

	if m.showAbout {
		if key.Matches(msg, k.About, k.Escape, k.Edit) {
			m.showAbout = false
		}
		return m, nil
	}

	if m.editing {
		return m.handleEditKey(msg)
	}

	switch {
	case key.Matches(msg, k.Quit):
		return m.quit()

	case key.Matches(msg, k.About):
		m.showAbout = true
		return m, nil

	case key.Matches(msg, k.NextTab):
		m.active = (m.active + 1) % tabCount
		return m, nil

	case key.Matches(msg, k.PrevTab):
		m.active = (m.active + tabCount - 1) % tabCount
		return m, nil

	case key.Matches(msg, k.Up):
		return m, m.moveSelection(-1)

	case key.Matches(msg, k.Down):
		return m, m.moveSelection(1)

	case key.Matches(msg, k.Reload):
		return m, m.reload()

	case key.Matches(msg, k.Edit):
		return m, m.startEditing()
	}
	return m, nil
}

// handleEditKey feeds keys to the focused amount input. Every change to the
// value issues a conversion.
func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
		m.stopEditing()
		return m, nil
	}

	input := m.focusedInput()
	if input == nil {
		m.stopEditing()
		return m, nil
	}

	before := input.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	if input.Value() == before {
		return m, cmd
	}

	switch m.active {
	case TabCurrency:
		m.currency.SetAmount(input.Value())
		return m, tea.Batch(cmd, m.convertCurrency(), m.spin())
	case TabBitcoin:
		m.bitcoin.SetAmount(input.Value())
		return m, tea.Batch(cmd, m.convertBitcoin(), m.spin())
	}
	return m, cmd
}

func (m *Model) focusedInput() *textinput.Model {
	switch m.active {
	case TabCurrency:
		return &m.amountInput
	case TabBitcoin:
		return &m.btcInput
	}
	return nil
}

func (m *Model) startEditing() tea.Cmd {
	input := m.focusedInput()
	if input == nil {
		return nil
	}
	m.editing = true
	return input.Focus()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.amountInput.Blur()
	m.btcInput.Blur()
}

// moveSelection changes the city or currency on the active tab.
func (m *Model) moveSelection(delta int) tea.Cmd {
	switch m.active {
	case TabWeather:
		n := len(m.catalog.Cities)
		if n == 0 {
			return nil
		}
		m.cityIdx = wrap(m.cityIdx+delta, n)
		if err := m.weather.SetSelected(m.catalog.Cities[m.cityIdx].Value); err != nil {
			return nil
		}
		return tea.Batch(m.refreshWeather(), m.spin())

	case TabCurrency:
		n := len(m.catalog.Currencies)
		if n == 0 {
			return nil
		}
		m.currencyIdx = wrap(m.currencyIdx+delta, n)
		if err := m.currency.Select(m.catalog.Currencies[m.currencyIdx].Code); err != nil {
			return nil
		}
		return tea.Batch(m.convertCurrency(), m.spin())
	}
	return nil
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// reload repeats the last request of the active tab.
func (m *Model) reload() tea.Cmd {
	switch m.active {
	case TabWeather:
		return tea.Batch(m.refreshWeather(), m.spin())
	case TabCurrency:
		return tea.Batch(m.convertCurrency(), m.spin())
	case TabBitcoin:
		return tea.Batch(m.convertBitcoin(), m.spin())
	}
	return nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

func (m *Model) refreshWeather() tea.Cmd {
	ctx, p := m.ctx, m.weather
	return func() tea.Msg {
		p.Refresh(ctx)
		return fetchDoneMsg{tab: TabWeather}
	}
}

func (m *Model) convertCurrency() tea.Cmd {
	ctx, p := m.ctx, m.currency
	return func() tea.Msg {
		p.Convert(ctx)
		return fetchDoneMsg{tab: TabCurrency}
	}
}

func (m *Model) convertBitcoin() tea.Cmd {
	ctx, p := m.ctx, m.bitcoin
	return func() tea.Msg {
		p.Convert(ctx)
		return fetchDoneMsg{tab: TabBitcoin}
	}
}

// spin starts the spinner tick loop unless it is already running.
func (m *Model) spin() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// tabFailed reports whether the last request behind tab ended in an error.
func (m *Model) tabFailed(t Tab) bool {
	switch t {
	case TabWeather:
		return m.weather.State().Failed()
	case TabCurrency:
		return m.currency.State().Failed()
	case TabBitcoin:
		return m.bitcoin.State().Failed()
	}
	return false
}

func (m *Model) anyLoading() bool {
	return m.weather.State().Loading || m.currency.State().Loading || m.bitcoin.State().Loading
}
