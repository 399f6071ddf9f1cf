package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"backoffice/internal/console"
	"backoffice/internal/filter"
	"backoffice/internal/loyalty"
	"backoffice/internal/models"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A1A1AA")).
			Padding(0, 1)

	activeTabStyle = tabStyle.Copy().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type tab int

const (
	tabOrders tab = iota
	tabReservations
	tabCustomers
	tabCount
)

func (t tab) String() string {
	switch t {
	case tabOrders:
		return "Orders"
	case tabReservations:
		return "Reservations"
	case tabCustomers:
		return "Customers"
	}
	return "?"
}

// Options tune how amounts are shown
type Options struct {
	Currency string
}

// Model is the terminal console state
type Model struct {
	svc      *console.Service
	currency string

	tables  [tabCount]table.Model
	active  tab
	spinner spinner.Model
	loading bool

	toast   string
	failed  bool
	lastErr error
}

// Custom message types for the tea.Model
type dataMsg struct {
	outlets      []models.Outlet
	orders       []models.Order
	reservations []models.Reservation
	customers    []models.Customer
}

type errorMsg struct {
	err error
}

type confirmMsg struct {
	message string
}

// New builds the console model over svc
func New(svc *console.Service, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		svc:      svc,
		currency: opts.Currency,
		spinner:  s,
		loading:  true,
	}
	m.tables[tabOrders] = newTable([]table.Column{
		{Title: "Order", Width: 10},
		{Title: "Outlet", Width: 16},
		{Title: "Table", Width: 6},
		{Title: "Customer", Width: 16},
		{Title: "Type", Width: 9},
		{Title: "Status", Width: 10},
		{Title: "Total", Width: 11},
		{Title: "Placed", Width: 16},
	})
	m.tables[tabReservations] = newTable([]table.Column{
		{Title: "Reservation", Width: 11},
		{Title: "Guest", Width: 16},
		{Title: "Party", Width: 5},
		{Title: "Date", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Slot", Width: 10},
		{Title: "Table", Width: 6},
		{Title: "Status", Width: 10},
	})
	m.tables[tabCustomers] = newTable([]table.Column{
		{Title: "Customer", Width: 18},
		{Title: "Phone", Width: 12},
		{Title: "Orders", Width: 6},
		{Title: "Spent", Width: 12},
		{Title: "Average", Width: 10},
		{Title: "Last order", Width: 16},
	})
	m.tables[tabOrders].Focus()
	return m
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(12),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true)
	st.Selected = st.Selected.Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4"))
	t.SetStyles(st)
	return t
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchAll(m.svc))
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.focus((m.active + 1) % tabCount)
			return m, nil
		case "shift+tab":
			m.focus((m.active + tabCount - 1) % tabCount)
			return m, nil
		case "r":
			m.loading = true
			return m, fetchAll(m.svc)
		case "c", "s", "x":
			if m.active == tabReservations {
				if id := m.selectedID(); id != "" {
					return m, reservationAction(m.svc, msg.String(), id)
				}
				return m, nil
			}
		case "a", "n":
			if m.active == tabOrders {
				if id := m.selectedID(); id != "" {
					return m, advanceOrder(m.svc, id)
				}
				return m, nil
			}
		}
	case dataMsg:
		m.loading = false
		m.setData(msg)
		return m, nil
	case errorMsg:
		m.loading = false
		m.toast = msg.err.Error()
		m.failed = true
		m.lastErr = msg.err
		return m, nil
	case confirmMsg:
		m.toast = msg.message
		m.failed = false
		m.lastErr = nil
		return m, fetchAll(m.svc)
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.tables[m.active], cmd = m.tables[m.active].Update(msg)
	return m, cmd
}

func (m *Model) focus(t tab) {
	m.tables[m.active].Blur()
	m.active = t
	m.tables[m.active].Focus()
}

func (m Model) selectedID() string {
	row := m.tables[m.active].SelectedRow()
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func (m *Model) setData(d dataMsg) {
	now := m.svc.Now()
	loc := m.svc.Location()
	rows := make([]table.Row, 0, len(d.orders))
	for _, o := range d.orders {
		rows = append(rows, table.Row{
			o.ID,
			models.OutletName(d.outlets, o.Outlet),
			o.Table,
			o.Customer,
			o.Type.Label(),
			o.Status.Label(),
			m.amount(o.Total()),
			humanize.RelTime(o.CreatedAt, now, "ago", "from now"),
		})
	}
	m.tables[tabOrders].SetRows(rows)

	rows = make([]table.Row, 0, len(d.reservations))
	for _, r := range d.reservations {
		rows = append(rows, table.Row{
			r.ID,
			r.CustomerName,
			strconv.Itoa(r.Guests),
			r.Date,
			r.Time,
			string(filter.SlotOf(r.Time)),
			models.OrPlaceholder(r.Table),
			r.Status.Label(),
		})
	}
	m.tables[tabReservations].SetRows(rows)

	rows = make([]table.Row, 0, len(d.customers))
	for _, c := range d.customers {
		rows = append(rows, table.Row{
			c.Name,
			c.Phone,
			strconv.Itoa(c.TotalOrders),
			m.amount(c.TotalSpent),
			m.amount(c.AvgOrderValue),
			c.LastOrderAt.In(loc).Format("02 Jan 15:04"),
		})
	}
	m.tables[tabCustomers].SetRows(rows)
}

func (m Model) amount(v float64) string {
	return m.currency + humanize.FormatFloat("#,###.##", v)
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Back-Office Console"))
	if m.loading {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n\n")

	tabs := make([]string, 0, tabCount)
	for t := tab(0); t < tabCount; t++ {
		style := tabStyle
		if t == m.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(fmt.Sprintf("%s (%d)", t, len(m.tables[t].Rows()))))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")
	b.WriteString(m.tables[m.active].View())
	b.WriteString("\n\n")

	if m.toast != "" {
		if m.failed {
			b.WriteString(errorStyle.Render(m.toast))
		} else {
			b.WriteString(successStyle.Render(m.toast))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))
	return docStyle.Render(b.String())
}

func (m Model) help() string {
	switch m.active {
	case tabOrders:
		return "tab switch • a advance order • r refresh • q quit"
	case tabReservations:
		return "tab switch • c confirm • s seat • x cancel • r refresh • q quit"
	}
	return "tab switch • r refresh • q quit"
}

// fetchAll reloads every tab from the service
func fetchAll(svc *console.Service) tea.Cmd {
	return func() tea.Msg {
		outlets, err := svc.Outlets()
		if err != nil {
			return errorMsg{err: fmt.Errorf("fetch outlets: %w", err)}
		}
		orders, err := svc.Orders(filter.OrderFilter{})
		if err != nil {
			return errorMsg{err: fmt.Errorf("fetch orders: %w", err)}
		}
		reservations, err := svc.Reservations(filter.ReservationFilter{})
		if err != nil {
			return errorMsg{err: fmt.Errorf("fetch reservations: %w", err)}
		}
		customers, err := svc.Customers("", loyalty.SortMostOrders)
		if err != nil {
			return errorMsg{err: fmt.Errorf("fetch customers: %w", err)}
		}
		return dataMsg{outlets: outlets, orders: orders, reservations: reservations, customers: customers}
	}
}

// reservationAction confirms, seats or cancels a reservation by key
func reservationAction(svc *console.Service, key, id string) tea.Cmd {
	return func() tea.Msg {
		var (
			r   models.Reservation
			err error
		)
		switch key {
		case "c":
			r, err = svc.ConfirmReservation(id)
		case "s":
			r, err = svc.SeatReservation(id)
		default:
			r, err = svc.CancelReservation(id)
		}
		if err != nil {
			return errorMsg{err: err}
		}
		return confirmMsg{message: fmt.Sprintf("%s for %s is now %s", r.ID, r.CustomerName, r.Status.Label())}
	}
}

// advanceOrder moves an order to its first allowed next status
func advanceOrder(svc *console.Service, id string) tea.Cmd {
	return func() tea.Msg {
		o, err := svc.AdvanceOrder(id)
		if err != nil {
			return errorMsg{err: err}
		}
		return confirmMsg{message: fmt.Sprintf("Order %s is now %s", o.ID, o.Status.Label())}
	}
}

// Run starts the console on the terminal's alternate screen
func Run(svc *console.Service, opts Options) error {
	p := tea.NewProgram(New(svc, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
