// Package console is the back-office application service. It runs every
// status change through the lifecycle machines and derives the customer,
// dashboard and export views from the repositories.
package console

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"backoffice/internal/database"
	"backoffice/internal/models"
	"backoffice/internal/monitoring"
	"backoffice/internal/status"
)

// ErrValidation is matched by every ValidationError
var ErrValidation = errors.New("validation failed")

// ValidationError reports a rejected input field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Options configures a Service. Zero values fall back to defaults.
// A nil TaxRate means DefaultTaxRate; an explicit zero bills no tax.
type Options struct {
	Location *time.Location
	TaxRate  *float64
	Workflow status.Workflow
	Clock    func() time.Time
	Logger   *zap.Logger
	Monitor  *monitoring.Monitor
}

// Service implements the console operations over a store
type Service struct {
	store        database.Store
	orders       *status.OrderMachine
	reservations *status.ReservationMachine
	loc          *time.Location
	taxRate      float64
	clock        func() time.Time
	log          *zap.Logger
	monitor      *monitoring.Monitor
}

// New creates a service over store
func New(store database.Store, opts Options) (*Service, error) {
	orders, err := status.NewOrderMachine(opts.Workflow)
	if err != nil {
		return nil, err
	}
	s := &Service{
		store:        store,
		orders:       orders,
		reservations: status.NewReservationMachine(),
		loc:          opts.Location,
		taxRate:      models.DefaultTaxRate,
		clock:        opts.Clock,
		log:          opts.Logger,
		monitor:      opts.Monitor,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if opts.TaxRate != nil {
		s.taxRate = *opts.TaxRate
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s, nil
}

// Now is the current time in the console location
func (s *Service) Now() time.Time {
	return s.clock().In(s.loc)
}

// Location returns the console timezone
func (s *Service) Location() *time.Location { return s.loc }

// TaxRate returns the flat bill tax rate
func (s *Service) TaxRate() float64 { return s.taxRate }

// Outlets lists the branches
func (s *Service) Outlets() ([]models.Outlet, error) {
	return s.store.ListOutlets()
}

// insertWithNextID tries prefix-(1000+n) from n = start upwards, skipping
// ids already taken and ids the store reports as duplicates.
func insertWithNextID(prefix string, start int, taken map[string]bool, insert func(id string) error) error {
	for n := start; ; n++ {
		id := fmt.Sprintf("%s-%d", prefix, 1000+n)
		if taken[id] {
			continue
		}
		err := insert(id)
		if errors.Is(err, database.ErrDuplicate) {
			continue
		}
		return err
	}
}
