package status

import (
	"fmt"

	"backoffice/internal/models"
)

// Workflow names an order transition table
type Workflow string

const (
	WorkflowFull   Workflow = "full"
	WorkflowSimple Workflow = "simple"
)

// FullOrderFlow is the canonical kitchen lifecycle
var FullOrderFlow = Table[models.OrderStatus]{
	models.OrderStatusPending:   {models.OrderStatusAccepted, models.OrderStatusCancelled},
	models.OrderStatusAccepted:  {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusDelivered},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

// SimpleOrderFlow collapses the lifecycle to pending and two outcomes
var SimpleOrderFlow = Table[models.OrderStatus]{
	models.OrderStatusPending:   {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

// ReservationFlow is the booking lifecycle
var ReservationFlow = Table[models.ReservationStatus]{
	models.ReservationPending:   {models.ReservationConfirmed, models.ReservationCancelled},
	models.ReservationConfirmed: {models.ReservationSeated, models.ReservationCancelled},
	models.ReservationSeated:    {},
	models.ReservationCancelled: {},
}

// OrderMachine is a machine over order statuses
type OrderMachine = Machine[models.OrderStatus]

// ReservationMachine is a machine over reservation statuses
type ReservationMachine = Machine[models.ReservationStatus]

// NewOrderMachine returns the machine for a workflow
func NewOrderMachine(w Workflow) (*OrderMachine, error) {
	switch w {
	case WorkflowFull, "":
		return NewMachine("order", FullOrderFlow), nil
	case WorkflowSimple:
		return NewMachine("order", SimpleOrderFlow), nil
	}
	return nil, fmt.Errorf("unknown order workflow %q", w)
}

// NewReservationMachine returns the reservation machine
func NewReservationMachine() *ReservationMachine {
	return NewMachine("reservation", ReservationFlow)
}

// ApplyOrder moves an order to target, returning the updated copy
func ApplyOrder(m *OrderMachine, o models.Order, target models.OrderStatus) (models.Order, error) {
	next, err := m.Apply(o.Status, target)
	if err != nil {
		return o, fmt.Errorf("order %s: %w", o.ID, err)
	}
	updated := o.Clone()
	updated.Status = next
	return updated, nil
}

// ApplyReservation moves a reservation to target, returning the updated copy
func ApplyReservation(m *ReservationMachine, r models.Reservation, target models.ReservationStatus) (models.Reservation, error) {
	next, err := m.Apply(r.Status, target)
	if err != nil {
		return r, fmt.Errorf("reservation %s: %w", r.ID, err)
	}
	r.Status = next
	return r, nil
}

// Confirm moves a pending reservation to confirmed
func Confirm(m *ReservationMachine, r models.Reservation) (models.Reservation, error) {
	return ApplyReservation(m, r, models.ReservationConfirmed)
}

// Seat moves a confirmed reservation to seated
func Seat(m *ReservationMachine, r models.Reservation) (models.Reservation, error) {
	return ApplyReservation(m, r, models.ReservationSeated)
}

// Cancel cancels a pending or confirmed reservation
func Cancel(m *ReservationMachine, r models.Reservation) (models.Reservation, error) {
	return ApplyReservation(m, r, models.ReservationCancelled)
}
