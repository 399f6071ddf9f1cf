package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice/internal/console"
	"backoffice/internal/database"
	"backoffice/internal/models"
	"backoffice/internal/seed"
	"backoffice/internal/status"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func newModel(t *testing.T) (Model, *database.MemoryStore) {
	t.Helper()
	store := database.NewMemoryStore()
	for _, o := range seed.Outlets() {
		require.NoError(t, store.InsertOutlet(o))
	}
	require.NoError(t, store.InsertOrder(models.Order{
		ID: "ORD-1001", Outlet: "outlet-1", Table: "T-1", Customer: "Rahul Sharma",
		Type: models.OrderTypeDineIn, Status: models.OrderStatusPending,
		Items:     []models.OrderItem{{Name: "Paneer Tikka", Quantity: 2, Price: 1240}},
		CreatedAt: time.Date(2026, 1, 14, 19, 0, 0, 0, ist),
	}))
	for _, r := range seed.Reservations() {
		require.NoError(t, store.InsertReservation(r))
	}
	svc, err := console.New(store, console.Options{
		Location: ist,
		Clock:    func() time.Time { return time.Date(2026, 1, 14, 20, 0, 0, 0, ist) },
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)

	m := New(svc, Options{Currency: "₹"})
	return drive(t, m, fetchAll(svc)), store
}

// drive runs cmd and feeds its message back into the model until no
// command remains.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		next, c := m.Update(msg)
		m = next.(Model)
		cmd = c
	}
	return m
}

func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(key)
	return drive(t, next.(Model), cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoadFillsTables(t *testing.T) {
	m, _ := newModel(t)

	assert.False(t, m.loading)
	require.Len(t, m.tables[tabOrders].Rows(), 1)
	row := m.tables[tabOrders].Rows()[0]
	assert.Equal(t, "ORD-1001", row[0])
	assert.Equal(t, "Downtown Branch", row[1])
	assert.Equal(t, "₹2,480.00", row[6])
	assert.Equal(t, "1 hour ago", row[7])

	msg, ok := fetchAll(m.svc)().(dataMsg)
	require.True(t, ok)
	assert.Len(t, msg.outlets, 3)

	assert.Len(t, m.tables[tabReservations].Rows(), 7)
	// lifecycle sort puts the first pending booking on top
	assert.Equal(t, "RSV-1002", m.tables[tabReservations].Rows()[0][0])
	assert.Equal(t, models.Placeholder, m.tables[tabReservations].Rows()[0][6])
}

// outletsDown fails outlet lookups and serves everything else
type outletsDown struct {
	*database.MemoryStore
}

func (outletsDown) ListOutlets() ([]models.Outlet, error) {
	return nil, errors.New("outlets unavailable")
}

func TestOutletFailureShowsToast(t *testing.T) {
	store := database.NewMemoryStore()
	for _, r := range seed.Reservations() {
		require.NoError(t, store.InsertReservation(r))
	}
	svc, err := console.New(outletsDown{store}, console.Options{Location: ist, Logger: zap.NewNop()})
	require.NoError(t, err)

	msg := fetchAll(svc)()
	require.IsType(t, errorMsg{}, msg)

	m := drive(t, New(svc, Options{Currency: "₹"}), func() tea.Msg { return msg })
	assert.True(t, m.failed)
	assert.False(t, m.loading)
	assert.ErrorContains(t, m.lastErr, "fetch outlets: outlets unavailable")
	assert.Empty(t, m.tables[tabOrders].Rows())
}

func TestTabSwitching(t *testing.T) {
	m, _ := newModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabReservations, m.active)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabCustomers, m.active)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabOrders, m.active)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, tabCustomers, m.active)
}

func TestConfirmReservation(t *testing.T) {
	m, store := newModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, runes("c"))

	assert.False(t, m.failed)
	assert.Equal(t, "RSV-1002 for Sara Ahmed is now Confirmed", m.toast)

	r, err := store.GetReservation("RSV-1002")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, r.Status)
	assert.Contains(t, m.View(), "RSV-1002 for Sara Ahmed is now Confirmed")
}

func TestRejectedReservationShowsToast(t *testing.T) {
	m, store := newModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	// RSV-1002 is pending and cannot be seated yet
	m = press(t, m, runes("s"))

	assert.True(t, m.failed)
	assert.ErrorIs(t, m.lastErr, status.ErrInvalidTransition)
	assert.Contains(t, m.toast, "cannot move from PENDING to SEATED")

	r, err := store.GetReservation("RSV-1002")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationPending, r.Status)
}

func TestAdvanceOrder(t *testing.T) {
	m, store := newModel(t)

	m = press(t, m, runes("a"))
	assert.Equal(t, "Order ORD-1001 is now Accepted", m.toast)
	m = press(t, m, runes("n"))
	assert.Equal(t, "Order ORD-1001 is now Preparing", m.toast)

	o, err := store.GetOrder("ORD-1001")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPreparing, o.Status)
}

func TestActionKeysIgnoredOnOtherTabs(t *testing.T) {
	m, store := newModel(t)

	// "c" on the orders tab must not touch any reservation
	m = press(t, m, runes("c"))
	assert.Empty(t, m.toast)
	r, err := store.GetReservation("RSV-1002")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationPending, r.Status)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
