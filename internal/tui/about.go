package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderAbout() string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)

	var b strings.Builder
	b.WriteString(titleStyle.Render("🇵🇾 Paraguay Hub") + "\n")
	b.WriteString(subtitleStyle.Render("Información útil para Paraguay en una sola terminal") + "\n\n")

	b.WriteString(heading.Render("Sobre el Proyecto") + "\n")
	b.WriteString("Integra tres servicios: el clima de Paraguay con vista día/noche, " +
		"la conversión de monedas internacionales a Guaraníes (PYG) y el precio de Bitcoin en PYG.\n\n")

	b.WriteString(heading.Render("Enlaces") + "\n")
	b.WriteString(row("Creador", "github.com/maxwellweb") + "\n")
	b.WriteString(row("Repositorio", "github.com/maxwellweb/paraguay-hub") + "\n\n")

	b.WriteString(heading.Render("Apóyanos") + "\n")
	b.WriteString("Invítame un café: buymeacoffee.com/maxwellweb\n\n")

	b.WriteString(dimStyle.Render("?/esc: cerrar"))
	return modalStyle.Render(b.String())
}
