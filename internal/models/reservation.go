package models

import (
	"fmt"
	"strings"
	"time"
)

// Reservation represents a table booking
type Reservation struct {
	ID           string            `json:"id"`
	CustomerName string            `json:"customerName"`
	Phone        string            `json:"phone,omitempty"`
	Guests       int               `json:"guests"`
	Date         string            `json:"date"`
	Time         string            `json:"time"`
	Table        string            `json:"table,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	Status       ReservationStatus `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// ReservationStatus represents the possible states of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationSeated    ReservationStatus = "SEATED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// ReservationStatuses lists every reservation status in lifecycle order
var ReservationStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
	ReservationSeated,
	ReservationCancelled,
}

// DateLayout is the layout of Reservation.Date
const DateLayout = "2006-01-02"

// TimeLayout is the layout of Reservation.Time
const TimeLayout = "03:04 PM"

// HasPhone reports whether a phone number was captured
func (r Reservation) HasPhone() bool { return strings.TrimSpace(r.Phone) != "" }

// HasTable reports whether a table was assigned
func (r Reservation) HasTable() bool { return strings.TrimSpace(r.Table) != "" }

// HasNotes reports whether the reservation carries notes
func (r Reservation) HasNotes() bool { return strings.TrimSpace(r.Notes) != "" }

// IsWalkIn treats reservations without a phone as walk-ins
func (r Reservation) IsWalkIn() bool { return !r.HasPhone() }

// Day parses the reservation date in loc
func (r Reservation) Day(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, r.Date, loc)
}

// ParseReservationStatus validates a raw reservation status
func ParseReservationStatus(s string) (ReservationStatus, error) {
	st := ReservationStatus(strings.ToUpper(s))
	if !st.Valid() {
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
	return st, nil
}

// Valid reports whether s is a known reservation status
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationSeated, ReservationCancelled:
		return true
	}
	return false
}

// Label returns the human readable status
func (s ReservationStatus) Label() string {
	switch s {
	case ReservationPending:
		return "Pending"
	case ReservationConfirmed:
		return "Confirmed"
	case ReservationSeated:
		return "Seated"
	case ReservationCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Priority orders reservations by urgency, lower is more active
func (s ReservationStatus) Priority() int {
	switch s {
	case ReservationPending:
		return 1
	case ReservationConfirmed:
		return 2
	case ReservationSeated:
		return 3
	case ReservationCancelled:
		return 4
	}
	return 99
}

// Tint returns the display color of the status
func (s ReservationStatus) Tint() Tint {
	switch s {
	case ReservationPending:
		return TintOrange
	case ReservationConfirmed:
		return TintBlue
	case ReservationSeated:
		return TintEmerald
	case ReservationCancelled:
		return TintRose
	}
	return TintSlate
}
