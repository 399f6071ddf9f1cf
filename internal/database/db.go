// Package database holds the console repositories. The in-memory
// store is the default; a gorm store over sqlite3 or postgres is
// available behind the same interfaces.
package database

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"backoffice/internal/models"
)

var (
	// ErrNotFound is returned when no record has the requested id
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when inserting an id that already exists
	ErrDuplicate = errors.New("duplicate id")
)

// Supported drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// OrderStep computes the updated order from the stored one. Only the
// returned status is persisted.
type OrderStep func(current models.Order) (models.Order, error)

// ReservationStep computes the updated reservation from the stored one.
// Only the returned status is persisted.
type ReservationStep func(current models.Reservation) (models.Reservation, error)

// OrderRepository owns the order list. List preserves insertion order.
type OrderRepository interface {
	ListOrders() ([]models.Order, error)
	GetOrder(id string) (models.Order, error)
	InsertOrder(o models.Order) error
	// UpdateOrderStatus runs step against the stored status and saves
	// its result atomically. A step error leaves the order untouched.
	UpdateOrderStatus(id string, step OrderStep) (models.Order, error)
}

// ReservationRepository owns the reservation list
type ReservationRepository interface {
	ListReservations() ([]models.Reservation, error)
	GetReservation(id string) (models.Reservation, error)
	InsertReservation(r models.Reservation) error
	UpdateReservationStatus(id string, step ReservationStep) (models.Reservation, error)
}

// OutletRepository owns the outlet reference list
type OutletRepository interface {
	ListOutlets() ([]models.Outlet, error)
	InsertOutlet(o models.Outlet) error
}

// Store combines every repository
type Store interface {
	OrderRepository
	ReservationRepository
	OutletRepository
	Close() error
}

// Open returns a store for driver. dsn is ignored by the memory driver.
func Open(driver, dsn string, logger *zap.Logger) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, DriverPostgres:
		s, err := OpenGorm(driver, dsn, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s store: %w", driver, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", driver)
}
