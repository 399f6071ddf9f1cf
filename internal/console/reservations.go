package console

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"backoffice/internal/filter"
	"backoffice/internal/models"
	"backoffice/internal/status"
)

// NewReservation is the input of CreateReservation. Phone, Table and
// Notes are optional.
type NewReservation struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Guests       int    `json:"guests"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Table        string `json:"table"`
	Notes        string `json:"notes"`
}

// Reservations lists reservations matching f by lifecycle priority
func (s *Service) Reservations(f filter.ReservationFilter) ([]models.Reservation, error) {
	rs, err := s.store.ListReservations()
	if err != nil {
		return nil, err
	}
	return filter.SortByLifecycle(filter.Reservations(rs, f, s.Now())), nil
}

// Reservation returns one reservation
func (s *Service) Reservation(id string) (models.Reservation, error) {
	return s.store.GetReservation(id)
}

// ReservationCounts counts every reservation per status
func (s *Service) ReservationCounts() (map[models.ReservationStatus]int, error) {
	rs, err := s.store.ListReservations()
	if err != nil {
		return nil, err
	}
	return filter.ReservationCounts(rs), nil
}

// ConfirmReservation moves a pending reservation to confirmed
func (s *Service) ConfirmReservation(id string) (models.Reservation, error) {
	return s.changeReservation(id, models.ReservationConfirmed, status.Confirm)
}

// SeatReservation moves a confirmed reservation to seated
func (s *Service) SeatReservation(id string) (models.Reservation, error) {
	return s.changeReservation(id, models.ReservationSeated, status.Seat)
}

// CancelReservation cancels a pending or confirmed reservation
func (s *Service) CancelReservation(id string) (models.Reservation, error) {
	return s.changeReservation(id, models.ReservationCancelled, status.Cancel)
}

// reservationAction is one of the booking verbs of the status package
type reservationAction func(*status.ReservationMachine, models.Reservation) (models.Reservation, error)

func (s *Service) changeReservation(id string, target models.ReservationStatus, action reservationAction) (models.Reservation, error) {
	var from models.ReservationStatus
	updated, err := s.store.UpdateReservationStatus(id, func(cur models.Reservation) (models.Reservation, error) {
		from = cur.Status
		return action(s.reservations, cur)
	})
	if err != nil {
		if errors.Is(err, status.ErrInvalidTransition) {
			s.monitor.RecordTransition(s.reservations.Name(), string(from), string(target), false)
			s.log.Info("reservation transition rejected",
				zap.String("reservation_id", id),
				zap.String("from", string(from)),
				zap.String("to", string(target)))
			return models.Reservation{}, err
		}
		return models.Reservation{}, err
	}
	s.monitor.RecordTransition(s.reservations.Name(), string(from), string(target), true)
	s.log.Info("reservation status changed",
		zap.String("reservation_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(target)))
	return updated, nil
}

func validateReservation(in NewReservation) (NewReservation, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if len([]rune(in.CustomerName)) < 2 {
		return in, invalid("customerName", "must be at least 2 characters")
	}
	if in.Guests < 1 {
		return in, invalid("guests", "must be at least 1")
	}
	in.Date = strings.TrimSpace(in.Date)
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		return in, invalid("date", "must be YYYY-MM-DD")
	}
	in.Time = strings.TrimSpace(in.Time)
	if filter.ParseClockMinutes(in.Time) < 0 {
		return in, invalid("time", "must be hh:mm AM/PM")
	}
	in.Phone = strings.TrimSpace(in.Phone)
	in.Table = strings.TrimSpace(in.Table)
	in.Notes = strings.TrimSpace(in.Notes)
	return in, nil
}

// CreateReservation validates in and stores a pending reservation.
// Blank optional fields are stored absent.
func (s *Service) CreateReservation(in NewReservation) (models.Reservation, error) {
	in, err := validateReservation(in)
	if err != nil {
		return models.Reservation{}, err
	}
	existing, err := s.store.ListReservations()
	if err != nil {
		return models.Reservation{}, err
	}

	r := models.Reservation{
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		Guests:       in.Guests,
		Date:         in.Date,
		Time:         in.Time,
		Table:        in.Table,
		Notes:        in.Notes,
		Status:       models.ReservationPending,
		CreatedAt:    s.clock().UTC(),
	}
	taken := make(map[string]bool, len(existing))
	for _, e := range existing {
		taken[e.ID] = true
	}
	err = insertWithNextID("RSV", len(existing)+1, taken, func(id string) error {
		r.ID = id
		return s.store.InsertReservation(r)
	})
	if err != nil {
		return models.Reservation{}, err
	}
	s.monitor.RecordReservationCreated()
	s.log.Info("reservation created",
		zap.String("reservation_id", r.ID),
		zap.String("date", r.Date),
		zap.String("time", r.Time),
		zap.Int("guests", r.Guests))
	return r, nil
}
