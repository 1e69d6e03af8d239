package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rmorpir/ampaconta/internal/cli"
	"github.com/rmorpir/ampaconta/internal/model"
	"github.com/rmorpir/ampaconta/internal/tui/components"
	"github.com/rmorpir/ampaconta/internal/tui/theme"
)

const minTerminalWidth = 70

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal demasiado estrecho (%d < %d columnas)\n", a.width, minTerminalWidth)
	}

	switch a.mode {
	case modeLogin:
		return a.viewLogin()
	case modeForm:
		return a.viewForm()
	default:
		return a.viewBrowse()
	}
}

func (a App) viewLogin() string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("  AMPA Sagrada Familia — Contabilidad"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("  Inicia sesión para continuar"))
	b.WriteString("\n\n")
	if a.form != nil {
		b.WriteString(a.form.View())
	}
	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("  " + a.status))
	}
	return b.String()
}

func (a App) viewForm() string {
	if a.form == nil {
		return ""
	}
	return "\n" + a.form.View()
}

func (a App) viewBrowse() string {
	var b strings.Builder
	b.WriteString(a.viewHeader())
	b.WriteString("\n")
	b.WriteString(a.viewTabBar())
	b.WriteString("\n\n")

	if a.activeTab == tabDashboard {
		b.WriteString(a.viewDashboard())
	} else {
		b.WriteString(a.viewMovements())
	}

	b.WriteString("\n")
	b.WriteString(a.viewStatusBar())
	return b.String()
}

func (a App) viewHeader() string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	user := ""
	if a.session != nil {
		user = mutedStyle.Render(fmt.Sprintf("  %s", a.session.User()))
	}
	return titleStyle.Render(" AMPA Contabilidad") + user +
		mutedStyle.Render("  ·  "+a.storageLabel())
}

func (a App) storageLabel() string {
	if !a.st.RemoteEnabled() {
		return "almacenamiento local"
	}
	if a.st.Degraded() {
		return "local (Drive no disponible)"
	}
	return "local + Drive"
}

func (a App) viewTabBar() string {
	t := theme.Active
	active := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Underline(true)
	inactive := lipgloss.NewStyle().Foreground(t.TextDim)

	parts := make([]string, 0, tabCount)
	for i, name := range tabNames {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if i == a.activeTab {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, inactive.Render(label))
		}
	}
	return " " + strings.Join(parts, " ")
}

func (a App) viewDashboard() string {
	t := theme.Active
	currency := a.cfg.General.Currency

	cardW := (a.width - 8) / 3
	if cardW > 28 {
		cardW = 28
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		components.Card("Saldo Actual", cli.FormatAmount(a.led.Balance(), currency), cardW),
		" ",
		components.Card("Movimientos", fmt.Sprintf("%d", a.led.Len()), cardW),
		" ",
		components.Card("Saldo Inicial", cli.FormatAmount(a.led.InitialBalance(), currency), cardW),
	)

	chartW := a.width - 6
	if chartW > 90 {
		chartW = 90
	}

	sectionStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n\n")

	income := a.categoryChart(model.Income, t.Green, chartW)
	if income != "" {
		b.WriteString(sectionStyle.Render(" Ingresos por categoría"))
		b.WriteString("\n")
		b.WriteString(income)
		b.WriteString("\n\n")
	}
	expense := a.categoryChart(model.Expense, t.Red, chartW)
	if expense != "" {
		b.WriteString(sectionStyle.Render(" Gastos por categoría"))
		b.WriteString("\n")
		b.WriteString(expense)
		b.WriteString("\n")
	}
	if income == "" && expense == "" {
		dim := lipgloss.NewStyle().Foreground(t.TextDim)
		b.WriteString(dim.Render("  Sin movimientos todavía. Pulsa 'a' para registrar el primero."))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) categoryChart(kind model.Kind, color lipgloss.Color, width int) string {
	totals := a.led.TotalsByCategory(kind)
	if len(totals) == 0 {
		return ""
	}
	labels := make([]string, len(totals))
	values := make([]float64, len(totals))
	for i, ct := range totals {
		labels[i] = ct.Category
		values[i], _ = ct.Total.Float64()
	}
	return components.HBars(labels, values, color, width)
}

func (a App) viewMovements() string {
	t := theme.Active
	var b strings.Builder

	if a.searching || a.query != "" {
		label := lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Buscar: ")
		b.WriteString(label)
		b.WriteString(a.search.View())
		b.WriteString("\n\n")
	}

	b.WriteString(a.movements.View())
	return b.String()
}

func (a App) viewStatusBar() string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	statusStyle := lipgloss.NewStyle().Foreground(t.Yellow)

	help := " a añadir · e editar · x eliminar · / buscar · r informe · i saldo · l salir · q cerrar"
	if a.status == "" {
		return keyStyle.Render(help)
	}
	return statusStyle.Render(" "+a.status) + "\n" + keyStyle.Render(help)
}
