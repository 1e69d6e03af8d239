// Package tui implements the interactive terminal UI: a login gate in
// front of the ledger, then dashboard, movements browser, and report
// export screens.
package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/rmorpir/ampaconta/internal/auth"
	"github.com/rmorpir/ampaconta/internal/cli"
	"github.com/rmorpir/ampaconta/internal/config"
	"github.com/rmorpir/ampaconta/internal/ledger"
	"github.com/rmorpir/ampaconta/internal/model"
	"github.com/rmorpir/ampaconta/internal/store"
	"github.com/rmorpir/ampaconta/internal/tui/theme"
)

type mode int

const (
	modeLogin mode = iota
	modeBrowse
	modeForm
)

type formKind int

const (
	formNone formKind = iota
	formRegister
	formEdit
	formReport
	formBalance
)

const (
	tabDashboard = iota
	tabMovements
	tabCount
)

var tabNames = [tabCount]string{"Inicio", "Movimientos"}

// formValues carries bindings for whichever huh form is active.
type formValues struct {
	username string
	password string

	kindStr  string
	category string
	amount   string
	desc     string
	date     string
	editID   int64

	from   string
	to     string
	format string

	initial string
}

// App is the bubbletea model for the whole UI.
type App struct {
	cfg     config.Config
	gate    *auth.Gate
	session *auth.Session
	led     *ledger.Ledger
	st      *store.Store

	width  int
	height int

	mode      mode
	activeTab int

	// vals is shared by pointer so huh's bindings stay valid across
	// bubbletea's value-copies of App.
	form     *huh.Form
	formKind formKind
	vals     *formValues

	movements table.Model
	search    textinput.Model
	searching bool
	query     string

	status string
}

// Run starts the TUI and blocks until the user quits.
func Run(cfg config.Config, gate *auth.Gate, led *ledger.Ledger, st *store.Store) error {
	theme.SetActive(cfg.Appearance.Theme)

	app := newApp(cfg, gate, led, st)
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func newApp(cfg config.Config, gate *auth.Gate, led *ledger.Ledger, st *store.Store) App {
	search := textinput.New()
	search.Placeholder = "buscar por descripción"
	search.CharLimit = 80
	search.Width = 40

	a := App{
		cfg:       cfg,
		gate:      gate,
		led:       led,
		st:        st,
		mode:      modeLogin,
		search:    search,
		movements: newMovementsTable(),
		vals:      &formValues{},
	}
	a.form = a.loginForm()
	a.refreshMovements()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.form != nil {
		return a.form.Init()
	}
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.movements.SetHeight(a.contentHeight() - 3)
		return a, nil

	case tea.KeyMsg:
		if a.mode == modeBrowse {
			return a.updateBrowse(msg)
		}
	}

	switch a.mode {
	case modeLogin:
		return a.updateLoginForm(msg)
	case modeForm:
		return a.updateActiveForm(msg)
	}
	return a, nil
}

func (a App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.searching {
		switch msg.String() {
		case "enter", "esc":
			a.searching = false
			a.search.Blur()
			return a, nil
		default:
			var cmd tea.Cmd
			a.search, cmd = a.search.Update(msg)
			a.query = a.search.Value()
			a.refreshMovements()
			return a, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "l":
		a.session.Logout()
		a.session = nil
		a.mode = modeLogin
		*a.vals = formValues{}
		a.form = a.loginForm()
		a.status = "Sesión cerrada"
		return a, a.form.Init()

	case "tab", "right":
		a.activeTab = (a.activeTab + 1) % tabCount
		return a, nil
	case "shift+tab", "left":
		a.activeTab = (a.activeTab + tabCount - 1) % tabCount
		return a, nil
	case "1", "2":
		a.activeTab = int(msg.String()[0] - '1')
		return a, nil

	case "/":
		if a.activeTab == tabMovements {
			a.searching = true
			a.search.Focus()
			return a, textinput.Blink
		}

	case "a":
		return a.openForm(formRegister)
	case "e":
		if id, ok := a.selectedID(); ok {
			return a.openEditForm(id)
		}
		return a, nil
	case "x":
		if id, ok := a.selectedID(); ok {
			if err := a.led.Delete(context.Background(), id); err != nil {
				a.status = fmt.Sprintf("Error: %v", err)
			} else {
				a.status = fmt.Sprintf("Movimiento #%d eliminado", id)
				a.refreshMovements()
			}
		}
		return a, nil
	case "r":
		return a.openForm(formReport)
	case "i":
		return a.openForm(formBalance)
	}

	if a.activeTab == tabMovements {
		var cmd tea.Cmd
		a.movements, cmd = a.movements.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateLoginForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		session, ok := a.gate.Login(a.vals.username, a.vals.password)
		if !ok {
			*a.vals = formValues{}
			a.form = a.loginForm()
			a.status = "Usuario o contraseña incorrectos"
			return a, a.form.Init()
		}
		a.session = session
		a.mode = modeBrowse
		a.form = nil
		a.status = fmt.Sprintf("Bienvenido, %s", session.User())
		return a, nil
	}

	if a.form.State == huh.StateAborted {
		return a, tea.Quit
	}
	return a, cmd
}

func (a App) updateActiveForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.applyForm()
		a.mode = modeBrowse
		a.form = nil
		a.formKind = formNone
		a.refreshMovements()
		return a, nil
	}

	if a.form.State == huh.StateAborted {
		a.mode = modeBrowse
		a.form = nil
		a.formKind = formNone
		return a, nil
	}
	return a, cmd
}

func (a *App) refreshMovements() {
	var txs []model.Transaction
	if a.query != "" {
		txs = a.led.Search(a.query)
	} else {
		txs = a.led.Transactions()
	}

	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		amount := cli.FormatSigned(tx.Amount, tx.Kind == model.Expense, a.cfg.General.Currency)
		rows = append(rows, table.Row{
			strconv.FormatInt(tx.ID, 10),
			tx.DateString(),
			tx.Kind.Label(),
			tx.Category,
			amount,
			tx.Description,
		})
	}
	a.movements.SetRows(rows)
}

func (a App) selectedID() (int64, bool) {
	row := a.movements.SelectedRow()
	if len(row) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (a App) contentHeight() int {
	h := a.height - 7 // header, tab bar, status bar
	if h < 5 {
		h = 5
	}
	return h
}

func newMovementsTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Fecha", Width: 11},
		{Title: "Tipo", Width: 8},
		{Title: "Categoría", Width: 20},
		{Title: "Cantidad", Width: 12},
		{Title: "Descripción", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	th := theme.Active
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(th.Accent)
	styles.Selected = styles.Selected.Foreground(th.TextPrimary).Background(th.Surface).Bold(true)
	t.SetStyles(styles)
	return t
}
