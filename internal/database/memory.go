package database

import (
	"fmt"
	"sync"

	"backoffice/internal/models"
)

// MemoryStore keeps every record in process memory. Reads return copies.
type MemoryStore struct {
	mu           sync.RWMutex
	orders       []models.Order
	orderIdx     map[string]int
	reservations []models.Reservation
	resIdx       map[string]int
	outlets      []models.Outlet
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orderIdx: make(map[string]int),
		resIdx:   make(map[string]int),
	}
}

func (s *MemoryStore) ListOrders() ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out, nil
}

func (s *MemoryStore) GetOrder(id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.orderIdx[id]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return s.orders[i].Clone(), nil
}

func (s *MemoryStore) InsertOrder(o models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orderIdx[o.ID]; ok {
		return fmt.Errorf("order %s: %w", o.ID, ErrDuplicate)
	}
	s.orderIdx[o.ID] = len(s.orders)
	s.orders = append(s.orders, o.Clone())
	return nil
}

func (s *MemoryStore) UpdateOrderStatus(id string, step OrderStep) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.orderIdx[id]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	next, err := step(s.orders[i].Clone())
	if err != nil {
		return models.Order{}, err
	}
	s.orders[i].Status = next.Status
	return s.orders[i].Clone(), nil
}

func (s *MemoryStore) ListReservations() ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Reservation(nil), s.reservations...), nil
}

func (s *MemoryStore) GetReservation(id string) (models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.resIdx[id]
	if !ok {
		return models.Reservation{}, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
	}
	return s.reservations[i], nil
}

func (s *MemoryStore) InsertReservation(r models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resIdx[r.ID]; ok {
		return fmt.Errorf("reservation %s: %w", r.ID, ErrDuplicate)
	}
	s.resIdx[r.ID] = len(s.reservations)
	s.reservations = append(s.reservations, r)
	return nil
}

func (s *MemoryStore) UpdateReservationStatus(id string, step ReservationStep) (models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.resIdx[id]
	if !ok {
		return models.Reservation{}, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
	}
	next, err := step(s.reservations[i])
	if err != nil {
		return models.Reservation{}, err
	}
	s.reservations[i].Status = next.Status
	return s.reservations[i], nil
}

func (s *MemoryStore) ListOutlets() ([]models.Outlet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Outlet(nil), s.outlets...), nil
}

func (s *MemoryStore) InsertOutlet(o models.Outlet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.outlets {
		if existing.ID == o.ID {
			return fmt.Errorf("outlet %s: %w", o.ID, ErrDuplicate)
		}
	}
	s.outlets = append(s.outlets, o)
	return nil
}

// Close is a no-op
func (s *MemoryStore) Close() error { return nil }
