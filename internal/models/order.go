package models

import (
	"fmt"
	"strings"
	"time"
)

// Order represents a customer order placed at an outlet
type Order struct {
	ID        string      `json:"id"`
	Outlet    string      `json:"outlet"`
	Table     string      `json:"table"`
	Customer  string      `json:"customer"`
	Type      OrderType   `json:"type"`
	Status    OrderStatus `json:"status"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
}

// OrderItem represents a line on an order
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderType represents how the order is served
type OrderType string

const (
	OrderTypeDineIn   OrderType = "DINE_IN"
	OrderTypePack     OrderType = "PACK"
	OrderTypeDelivery OrderType = "ORDER"
)

// OrderTypes lists every order type in display order
var OrderTypes = []OrderType{OrderTypeDineIn, OrderTypePack, OrderTypeDelivery}

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every order status in lifecycle order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusAccepted,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// NoTable is the table marker used by delivery orders
const NoTable = "-"

// Total returns the sum of price times quantity over all items
func (o Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount returns the number of units on the order
func (o Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// Clone returns a deep copy so callers cannot mutate shared item slices
func (o Order) Clone() Order {
	c := o
	c.Items = append([]OrderItem(nil), o.Items...)
	return c
}

// ParseOrderType validates a raw order type, case-insensitively
func ParseOrderType(s string) (OrderType, error) {
	t := OrderType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown order type %q", s)
	}
	return t, nil
}

// Valid reports whether t is a known order type
func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypePack, OrderTypeDelivery:
		return true
	}
	return false
}

// Label returns the filter label of the order type
func (t OrderType) Label() string {
	switch t {
	case OrderTypeDineIn:
		return "Table"
	case OrderTypePack:
		return "Pack"
	case OrderTypeDelivery:
		return "Delivery"
	}
	return string(t)
}

// SplitLabel returns the name used in the dashboard order-type split
func (t OrderType) SplitLabel() string {
	switch t {
	case OrderTypeDineIn:
		return "Dine-in"
	case OrderTypePack:
		return "Pack"
	case OrderTypeDelivery:
		return "Online"
	}
	return string(t)
}

// Tint returns the display color of the order type
func (t OrderType) Tint() Tint {
	switch t {
	case OrderTypeDineIn:
		return TintRed
	case OrderTypePack:
		return TintOrange
	case OrderTypeDelivery:
		return TintEmerald
	}
	return TintSlate
}

// ParseOrderStatus validates a raw order status, case-insensitively
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToLower(s))
	if !st.Valid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return st, nil
}

// Valid reports whether s is a known order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Label returns the human readable status
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusAccepted:
		return "Accepted"
	case OrderStatusPreparing:
		return "Preparing"
	case OrderStatusReady:
		return "Ready"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Tint returns the display color of the status
func (s OrderStatus) Tint() Tint {
	switch s {
	case OrderStatusPending:
		return TintOrange
	case OrderStatusAccepted:
		return TintBlue
	case OrderStatusPreparing:
		return TintPurple
	case OrderStatusReady:
		return TintEmerald
	case OrderStatusDelivered:
		return TintSlate
	case OrderStatusCancelled:
		return TintRose
	}
	return TintSlate
}
