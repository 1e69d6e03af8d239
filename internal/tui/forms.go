package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/rmorpir/ampaconta/internal/model"
	"github.com/rmorpir/ampaconta/internal/report"
)

func (a App) loginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Usuario").
				Value(&a.vals.username),
			huh.NewInput().
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				Value(&a.vals.password),
		),
	).WithWidth(44)
}

func (a App) openForm(kind formKind) (tea.Model, tea.Cmd) {
	*a.vals = formValues{kindStr: string(model.Income), format: "pdf"}
	a.formKind = kind

	switch kind {
	case formRegister:
		a.form = a.movementForm("Registrar Movimiento")
	case formReport:
		a.form = a.reportForm()
	case formBalance:
		a.vals.initial = a.led.InitialBalance().String()
		a.form = a.balanceForm()
	default:
		return a, nil
	}

	a.mode = modeForm
	return a, a.form.Init()
}

func (a App) openEditForm(id int64) (tea.Model, tea.Cmd) {
	tx, ok := a.led.Get(id)
	if !ok {
		a.status = fmt.Sprintf("Movimiento #%d no encontrado", id)
		return a, nil
	}

	*a.vals = formValues{
		kindStr:  string(tx.Kind),
		category: tx.Category,
		amount:   tx.Amount.String(),
		desc:     tx.Description,
		date:     tx.DateString(),
		editID:   id,
	}
	a.formKind = formEdit
	a.form = a.movementForm(fmt.Sprintf("Editar Movimiento #%d", id))
	a.mode = modeForm
	return a, a.form.Init()
}

// movementForm is shared by register and edit. Category choices follow
// the selected kind.
func (a *App) movementForm(title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Tipo de Movimiento").
				Options(
					huh.NewOption(model.Income.Label(), string(model.Income)),
					huh.NewOption(model.Expense.Label(), string(model.Expense)),
				).
				Value(&a.vals.kindStr),
		).Title(title),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Categoría").
				OptionsFunc(func() []huh.Option[string] {
					cats := model.CategoriesFor(model.Kind(a.vals.kindStr))
					return huh.NewOptions(cats...)
				}, &a.vals.kindStr).
				Value(&a.vals.category),
			huh.NewInput().
				Title("Cantidad").
				Placeholder("0.00").
				Validate(validateAmount).
				Value(&a.vals.amount),
			huh.NewInput().
				Title("Fecha").
				Placeholder(time.Now().Format(model.DateLayout)).
				Validate(validateOptionalDate).
				Value(&a.vals.date),
			huh.NewText().
				Title("Descripción").
				Lines(2).
				Value(&a.vals.desc),
		),
	).WithWidth(56)
}

func (a *App) reportForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Desde").
				Placeholder("YYYY-MM-DD (vacío = sin límite)").
				Validate(validateOptionalDate).
				Value(&a.vals.from),
			huh.NewInput().
				Title("Hasta").
				Placeholder("YYYY-MM-DD (vacío = sin límite)").
				Validate(validateOptionalDate).
				Value(&a.vals.to),
			huh.NewSelect[string]().
				Title("Formato").
				Options(
					huh.NewOption("PDF", "pdf"),
					huh.NewOption("Excel (xlsx)", "xlsx"),
				).
				Value(&a.vals.format),
		).Title("Generar Informe"),
	).WithWidth(56)
}

func (a *App) balanceForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Saldo inicial").
				Validate(validateAmountSigned).
				Value(&a.vals.initial),
		).Title("Ajustar Saldo Inicial"),
	).WithWidth(44)
}

// applyForm commits the completed form to the ledger and sets the
// status line.
func (a *App) applyForm() {
	ctx := context.Background()

	switch a.formKind {
	case formRegister, formEdit:
		amount, err := decimal.NewFromString(a.vals.amount)
		if err != nil {
			a.status = fmt.Sprintf("Cantidad no válida: %v", err)
			return
		}
		var date time.Time
		if a.vals.date != "" {
			date, err = time.Parse(model.DateLayout, a.vals.date)
			if err != nil {
				a.status = fmt.Sprintf("Fecha no válida: %v", err)
				return
			}
		}

		tx := model.Transaction{
			Date:        date,
			Kind:        model.Kind(a.vals.kindStr),
			Category:    a.vals.category,
			Amount:      amount,
			Description: a.vals.desc,
		}

		if a.formKind == formEdit {
			if err := a.led.Update(ctx, a.vals.editID, tx); err != nil {
				a.status = fmt.Sprintf("Error: %v", err)
				return
			}
			a.status = fmt.Sprintf("Movimiento #%d actualizado", a.vals.editID)
			return
		}

		added, err := a.led.Add(ctx, tx)
		if err != nil {
			a.status = fmt.Sprintf("Error: %v", err)
			return
		}
		a.status = fmt.Sprintf("Movimiento #%d registrado", added.ID)

	case formReport:
		a.status = a.writeReport()

	case formBalance:
		v, err := decimal.NewFromString(a.vals.initial)
		if err != nil {
			a.status = fmt.Sprintf("Saldo no válido: %v", err)
			return
		}
		if err := a.led.SetInitialBalance(ctx, v); err != nil {
			a.status = fmt.Sprintf("Error: %v", err)
			return
		}
		a.status = "Saldo inicial actualizado"
	}
}

func (a *App) writeReport() string {
	from, _ := time.Parse(model.DateLayout, a.vals.from)
	to, _ := time.Parse(model.DateLayout, a.vals.to)
	if a.vals.from == "" {
		from = time.Time{}
	}
	if a.vals.to == "" {
		to = time.Time{}
	}

	snap := report.Snapshot{
		Transactions:   a.led.Transactions(),
		InitialBalance: a.led.InitialBalance(),
		CurrentBalance: a.led.Balance(),
		Currency:       a.cfg.General.Currency,
	}
	rng := report.Range{Start: from, End: to}

	var data []byte
	var err error
	name := fmt.Sprintf("informe_%s.%s", time.Now().Format("20060102"), a.vals.format)
	switch a.vals.format {
	case "xlsx":
		data, err = report.XLSX(snap, rng)
	default:
		data, err = report.PDF(snap, rng)
	}
	if err != nil {
		return fmt.Sprintf("Error generando informe: %v", err)
	}

	if err := os.WriteFile(name, data, 0o600); err != nil {
		return fmt.Sprintf("Error guardando informe: %v", err)
	}
	return fmt.Sprintf("Informe guardado en %s", name)
}

func validateAmount(s string) error {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return errors.New("cantidad no válida")
	}
	if v.IsNegative() {
		return errors.New("la cantidad no puede ser negativa")
	}
	return nil
}

func validateAmountSigned(s string) error {
	if _, err := decimal.NewFromString(s); err != nil {
		return errors.New("cantidad no válida")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return errors.New("formato de fecha YYYY-MM-DD")
	}
	return nil
}
