package database

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backoffice/internal/models"
)

var at = time.Date(2026, 1, 14, 9, 30, 0, 0, time.UTC)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	gs, err := OpenGorm(DriverSQLite, "", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { gs.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": gs,
	}
}

func sampleOrder(id string) models.Order {
	return models.Order{
		ID:       id,
		Outlet:   "outlet-1",
		Table:    "T3",
		Customer: "Rahul Sharma",
		Type:     models.OrderTypeDineIn,
		Status:   models.OrderStatusPending,
		Items: []models.OrderItem{
			{Name: "Paneer Tikka", Quantity: 2, Price: 220},
			{Name: "Butter Naan", Quantity: 3, Price: 45},
		},
		CreatedAt: at,
	}
}

func TestOrders(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.InsertOrder(sampleOrder("ORD-1002")))
			require.NoError(t, s.InsertOrder(sampleOrder("ORD-1001")))

			err := s.InsertOrder(sampleOrder("ORD-1001"))
			assert.True(t, errors.Is(err, ErrDuplicate))

			list, err := s.ListOrders()
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "ORD-1002", list[0].ID)
			assert.Equal(t, "ORD-1001", list[1].ID)

			got, err := s.GetOrder("ORD-1001")
			require.NoError(t, err)
			assert.Equal(t, "T3", got.Table)
			assert.True(t, got.CreatedAt.Equal(at))
			require.Len(t, got.Items, 2)
			assert.Equal(t, "Paneer Tikka", got.Items[0].Name)
			assert.InDelta(t, 575.0, got.Total(), 1e-9)

			_, err = s.GetOrder("ORD-9999")
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.InsertOrder(sampleOrder("ORD-1001")))

			updated, err := s.UpdateOrderStatus("ORD-1001", func(cur models.Order) (models.Order, error) {
				assert.Equal(t, models.OrderStatusPending, cur.Status)
				assert.Len(t, cur.Items, 2)
				cur.Status = models.OrderStatusAccepted
				// only the status is persisted
				cur.Customer = "Someone Else"
				cur.Items = nil
				return cur, nil
			})
			require.NoError(t, err)
			assert.Equal(t, models.OrderStatusAccepted, updated.Status)
			assert.Equal(t, "Rahul Sharma", updated.Customer)
			assert.Len(t, updated.Items, 2)

			boom := errors.New("rejected")
			_, err = s.UpdateOrderStatus("ORD-1001", func(cur models.Order) (models.Order, error) {
				return cur, boom
			})
			assert.ErrorIs(t, err, boom)

			got, err := s.GetOrder("ORD-1001")
			require.NoError(t, err)
			assert.Equal(t, models.OrderStatusAccepted, got.Status)
			assert.Equal(t, "Rahul Sharma", got.Customer)

			_, err = s.UpdateOrderStatus("ORD-404", func(cur models.Order) (models.Order, error) {
				return cur, nil
			})
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestReservations(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			r := models.Reservation{
				ID:           "RSV-1001",
				CustomerName: "Ayaan Khan",
				Guests:       4,
				Date:         "2026-01-14",
				Time:         "07:30 PM",
				Status:       models.ReservationPending,
				CreatedAt:    at,
			}
			require.NoError(t, s.InsertReservation(r))
			assert.ErrorIs(t, s.InsertReservation(r), ErrDuplicate)

			updated, err := s.UpdateReservationStatus("RSV-1001", func(cur models.Reservation) (models.Reservation, error) {
				assert.Equal(t, "Ayaan Khan", cur.CustomerName)
				cur.Status = models.ReservationConfirmed
				return cur, nil
			})
			require.NoError(t, err)
			assert.Equal(t, models.ReservationConfirmed, updated.Status)

			list, err := s.ListReservations()
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, models.ReservationConfirmed, list[0].Status)
			assert.False(t, list[0].HasTable())

			_, err = s.GetReservation("RSV-0")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestOutlets(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.InsertOutlet(models.Outlet{ID: "outlet-2", Name: "Uptown Branch"}))
			require.NoError(t, s.InsertOutlet(models.Outlet{ID: "outlet-1", Name: "Downtown Branch"}))
			assert.ErrorIs(t, s.InsertOutlet(models.Outlet{ID: "outlet-1"}), ErrDuplicate)

			list, err := s.ListOutlets()
			require.NoError(t, err)
			assert.Equal(t, []models.Outlet{
				{ID: "outlet-2", Name: "Uptown Branch"},
				{ID: "outlet-1", Name: "Downtown Branch"},
			}, list)
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.InsertOrder(sampleOrder("ORD-1001")))

	list, err := s.ListOrders()
	require.NoError(t, err)
	list[0].Items[0].Price = 1
	list[0].Status = models.OrderStatusCancelled

	got, err := s.GetOrder("ORD-1001")
	require.NoError(t, err)
	assert.Equal(t, 220.0, got.Items[0].Price)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

func TestMemoryStoreConcurrentUpdates(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.InsertOrder(sampleOrder("ORD-1001")))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.UpdateOrderStatus("ORD-1001", func(cur models.Order) (models.Order, error) {
				if cur.Status != models.OrderStatusPending {
					return cur, errors.New("already moved")
				}
				cur.Status = models.OrderStatusAccepted
				return cur, nil
			})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, accepted)
}

func TestOpen(t *testing.T) {
	s, err := Open(DriverMemory, "", zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(DriverSQLite, ":memory:", zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &GormStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open("mongo", "", zap.NewNop())
	assert.Error(t, err)
}
