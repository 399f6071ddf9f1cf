// Package seed generates the mock records the console starts with.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"backoffice/internal/database"
	"backoffice/internal/models"
)

// Options controls order generation. Equal options yield equal data.
type Options struct {
	RandomSeed      int64
	OrdersPerOutlet int
	Now             time.Time
}

// DefaultOrdersPerOutlet is used when Options.OrdersPerOutlet is not positive
const DefaultOrdersPerOutlet = 6

// orderWindow bounds how far back generated orders are placed
const orderWindow = 12 * time.Hour

var (
	customers = []string{
		"Rahul Sharma",
		"Ananya Singh",
		"Mohit Verma",
		"Neha Kapoor",
		"Aman Khan",
		"Priya Mehta",
		"Sana Sheikh",
		"Rohit Joshi",
		"Ishita Jain",
	}

	menu = []models.MenuItem{
		{Name: "Chicken Shawarma", Category: models.MenuCategoryFastFood, Price: 120},
		{Name: "Zinger Burger", Category: models.MenuCategoryFastFood, Price: 160},
		{Name: "French Fries", Category: models.MenuCategorySide, Price: 80},
		{Name: "Paneer Tikka", Category: models.MenuCategoryStarter, Price: 240},
		{Name: "Butter Chicken", Category: models.MenuCategoryMain, Price: 320},
		{Name: "Veg Biryani", Category: models.MenuCategoryMain, Price: 260},
	}

	tables = []string{"T-1", "T-2", "T-3", "T-4", "T-5", "T-6"}

	seedStatuses = []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	}
)

// Menu returns the dishes generated orders draw from
func Menu() []models.MenuItem {
	return append([]models.MenuItem(nil), menu...)
}

// Outlets returns the three branches
func Outlets() []models.Outlet {
	return []models.Outlet{
		{ID: "outlet-1", Name: "Downtown Branch"},
		{ID: "outlet-2", Name: "Uptown Branch"},
		{ID: "outlet-3", Name: "Suburban Branch"},
	}
}

// Orders generates OrdersPerOutlet orders for each outlet, numbered
// ORD-1001 upwards, each placed within the twelve hours before Now.
func Orders(opts Options, outlets []models.Outlet) []models.Order {
	per := opts.OrdersPerOutlet
	if per <= 0 {
		per = DefaultOrdersPerOutlet
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	r := rand.New(rand.NewSource(opts.RandomSeed))

	orders := make([]models.Order, 0, per*len(outlets))
	n := 0
	for _, outlet := range outlets {
		for i := 0; i < per; i++ {
			n++
			orders = append(orders, buildOrder(r, n, outlet.ID, now))
		}
	}
	return orders
}

func buildOrder(r *rand.Rand, n int, outletID string, now time.Time) models.Order {
	typ := models.OrderTypes[r.Intn(len(models.OrderTypes))]
	table := models.NoTable
	if typ != models.OrderTypeDelivery {
		table = tables[r.Intn(len(tables))]
	}

	items := make([]models.OrderItem, 1+r.Intn(4))
	for i := range items {
		items[i] = menu[r.Intn(len(menu))].Line(1 + r.Intn(3))
	}

	// between five minutes and the full window ago
	offset := time.Duration(5+r.Intn(int(orderWindow/time.Minute)-4)) * time.Minute

	return models.Order{
		ID:        fmt.Sprintf("ORD-%d", 1000+n),
		Outlet:    outletID,
		Table:     table,
		Customer:  customers[r.Intn(len(customers))],
		Type:      typ,
		Status:    seedStatuses[r.Intn(len(seedStatuses))],
		Items:     items,
		CreatedAt: now.Add(-offset),
	}
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func validateMenu(items []models.MenuItem) error {
	for _, item := range items {
		if err := models.ValidateMenuItem(item); err != nil {
			return fmt.Errorf("invalid seed menu: %w", err)
		}
	}
	return nil
}

// Reservations returns the fixed reservation book
func Reservations() []models.Reservation {
	return []models.Reservation{
		{ID: "RSV-1001", CustomerName: "Ayaan Khan", Phone: "98765 43210", Guests: 4, Date: "2026-01-14", Time: "07:30 PM", Table: "T-12", Notes: "Birthday celebration", Status: models.ReservationConfirmed, CreatedAt: mustTime("2026-01-14T10:20:00Z")},
		{ID: "RSV-1002", CustomerName: "Sara Ahmed", Phone: "99999 11111", Guests: 2, Date: "2026-01-14", Time: "08:00 PM", Status: models.ReservationPending, CreatedAt: mustTime("2026-01-14T11:05:00Z")},
		{ID: "RSV-1003", CustomerName: "Rohit Joshi", Phone: "88888 22222", Guests: 6, Date: "2026-01-14", Time: "09:15 PM", Table: "T-8", Notes: "Need baby chair", Status: models.ReservationConfirmed, CreatedAt: mustTime("2026-01-14T12:30:00Z")},
		{ID: "RSV-1004", CustomerName: "Neha Verma", Guests: 3, Date: "2026-01-15", Time: "07:00 PM", Status: models.ReservationCancelled, CreatedAt: mustTime("2026-01-14T09:10:00Z")},
		{ID: "RSV-1005", CustomerName: "Zaid Ali", Phone: "77777 33333", Guests: 5, Date: "2026-01-15", Time: "08:45 PM", Table: "T-9", Status: models.ReservationSeated, CreatedAt: mustTime("2026-01-14T13:15:00Z")},
		{ID: "RSV-1006", CustomerName: "Ishita Jain", Phone: "98989 45454", Guests: 2, Date: "2026-01-15", Time: "09:00 PM", Table: "T-4", Notes: "Window seat preferred", Status: models.ReservationConfirmed, CreatedAt: mustTime("2026-01-14T14:40:00Z")},
		{ID: "RSV-1007", CustomerName: "Aman Gupta", Guests: 4, Date: "2026-01-16", Time: "07:45 PM", Status: models.ReservationPending, CreatedAt: mustTime("2026-01-14T15:10:00Z")},
	}
}

// Load inserts outlets, generated orders and reservations into store.
// A store that already holds outlets is left untouched. An invalid menu
// fails before anything is written.
func Load(store database.Store, opts Options, logger *zap.Logger) error {
	existing, err := store.ListOutlets()
	if err != nil {
		return fmt.Errorf("failed to inspect store: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("store already seeded", zap.Int("outlets", len(existing)))
		return nil
	}
	if err := validateMenu(menu); err != nil {
		return err
	}
	outlets := Outlets()
	for _, o := range outlets {
		if err := store.InsertOutlet(o); err != nil {
			return fmt.Errorf("failed to seed outlet: %w", err)
		}
	}
	orders := Orders(opts, outlets)
	for _, o := range orders {
		if err := store.InsertOrder(o); err != nil {
			return fmt.Errorf("failed to seed order: %w", err)
		}
	}
	reservations := Reservations()
	for _, r := range reservations {
		if err := store.InsertReservation(r); err != nil {
			return fmt.Errorf("failed to seed reservation: %w", err)
		}
	}
	logger.Info("seeded mock data",
		zap.Int("outlets", len(outlets)),
		zap.Int("orders", len(orders)),
		zap.Int("reservations", len(reservations)),
		zap.Int64("random_seed", opts.RandomSeed))
	return nil
}
