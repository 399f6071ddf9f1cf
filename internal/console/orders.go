package console

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"backoffice/internal/filter"
	"backoffice/internal/models"
	"backoffice/internal/status"
)

// NewOrder is the input of CreateOrder
type NewOrder struct {
	Outlet   string             `json:"outlet"`
	Table    string             `json:"table"`
	Customer string             `json:"customer"`
	Type     models.OrderType   `json:"type"`
	Items    []models.OrderItem `json:"items"`
}

// Orders lists orders matching f in insertion order
func (s *Service) Orders(f filter.OrderFilter) ([]models.Order, error) {
	orders, err := s.store.ListOrders()
	if err != nil {
		return nil, err
	}
	outlets, err := s.store.ListOutlets()
	if err != nil {
		return nil, err
	}
	return filter.Orders(orders, f, outlets, s.Now()), nil
}

// Order returns one order
func (s *Service) Order(id string) (models.Order, error) {
	return s.store.GetOrder(id)
}

// OrderTransitions lists the statuses the order may move to next
func (s *Service) OrderTransitions(id string) ([]models.OrderStatus, error) {
	o, err := s.store.GetOrder(id)
	if err != nil {
		return nil, err
	}
	return s.orders.NextAllowed(o.Status), nil
}

// OrderCounts counts orders per status within an outlet scope
func (s *Service) OrderCounts(outlet string) (map[models.OrderStatus]int, error) {
	orders, err := s.Orders(filter.OrderFilter{Outlet: outlet})
	if err != nil {
		return nil, err
	}
	return filter.OrderCounts(orders), nil
}

// ChangeOrderStatus moves an order to target through the order machine.
// Rejected moves return a *status.TransitionError and leave the order
// unchanged.
func (s *Service) ChangeOrderStatus(id string, target models.OrderStatus) (models.Order, error) {
	var from models.OrderStatus
	updated, err := s.store.UpdateOrderStatus(id, func(cur models.Order) (models.Order, error) {
		from = cur.Status
		return status.ApplyOrder(s.orders, cur, target)
	})
	if err != nil {
		if errors.Is(err, status.ErrInvalidTransition) {
			s.monitor.RecordTransition(s.orders.Name(), string(from), string(target), false)
			s.log.Info("order transition rejected",
				zap.String("order_id", id),
				zap.String("from", string(from)),
				zap.String("to", string(target)))
			return models.Order{}, err
		}
		return models.Order{}, err
	}
	s.monitor.RecordTransition(s.orders.Name(), string(from), string(target), true)
	s.log.Info("order status changed",
		zap.String("order_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(target)))
	return updated, nil
}

// AdvanceOrder moves an order to its first allowed next status
func (s *Service) AdvanceOrder(id string) (models.Order, error) {
	o, err := s.store.GetOrder(id)
	if err != nil {
		return models.Order{}, err
	}
	next := s.orders.NextAllowed(o.Status)
	if len(next) == 0 {
		return models.Order{}, fmt.Errorf("order %s is %s: %w", id, o.Status, status.ErrInvalidTransition)
	}
	return s.ChangeOrderStatus(id, next[0])
}

// Bill computes the bill of an order at the console tax rate
func (s *Service) Bill(id string) (models.Bill, error) {
	o, err := s.store.GetOrder(id)
	if err != nil {
		return models.Bill{}, err
	}
	return models.NewBill(o, s.taxRate), nil
}

func (s *Service) validateOrder(in NewOrder, outlets []models.Outlet) (NewOrder, error) {
	in.Outlet = strings.TrimSpace(in.Outlet)
	if models.OutletName(outlets, in.Outlet) == models.UnknownOutlet {
		return in, invalid("outlet", fmt.Sprintf("unknown outlet %q", in.Outlet))
	}
	typ, err := models.ParseOrderType(string(in.Type))
	if err != nil {
		return in, invalid("type", fmt.Sprintf("unknown order type %q", in.Type))
	}
	in.Type = typ
	in.Customer = strings.TrimSpace(in.Customer)
	if in.Customer == "" {
		return in, invalid("customer", "must not be blank")
	}
	if len(in.Items) == 0 {
		return in, invalid("items", "at least one item is required")
	}
	for i, item := range in.Items {
		if strings.TrimSpace(item.Name) == "" {
			return in, invalid("items", fmt.Sprintf("item %d has no name", i+1))
		}
		if item.Quantity < 1 {
			return in, invalid("items", fmt.Sprintf("item %d quantity must be at least 1", i+1))
		}
		if item.Price < 0 {
			return in, invalid("items", fmt.Sprintf("item %d price must not be negative", i+1))
		}
	}
	in.Table = strings.TrimSpace(in.Table)
	if in.Type == models.OrderTypeDelivery || in.Table == "" {
		in.Table = models.NoTable
	}
	return in, nil
}

// CreateOrder validates in and stores a pending order
func (s *Service) CreateOrder(in NewOrder) (models.Order, error) {
	outlets, err := s.store.ListOutlets()
	if err != nil {
		return models.Order{}, err
	}
	in, err = s.validateOrder(in, outlets)
	if err != nil {
		return models.Order{}, err
	}
	existing, err := s.store.ListOrders()
	if err != nil {
		return models.Order{}, err
	}

	o := models.Order{
		Outlet:    in.Outlet,
		Table:     in.Table,
		Customer:  in.Customer,
		Type:      in.Type,
		Status:    models.OrderStatusPending,
		Items:     append([]models.OrderItem(nil), in.Items...),
		CreatedAt: s.Now(),
	}
	taken := make(map[string]bool, len(existing))
	for _, e := range existing {
		taken[e.ID] = true
	}
	err = insertWithNextID("ORD", len(existing)+1, taken, func(id string) error {
		o.ID = id
		return s.store.InsertOrder(o)
	})
	if err != nil {
		return models.Order{}, err
	}
	s.monitor.RecordOrderCreated()
	s.log.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("outlet", o.Outlet),
		zap.Float64("total", o.Total()))
	return o, nil
}
