package console

import (
	"go.uber.org/zap"

	"backoffice/internal/export"
	"backoffice/internal/filter"
	"backoffice/internal/loyalty"
)

// Export is a rendered CSV download. Empty reports a no-op export.
type Export struct {
	Filename string
	Content  string
	Rows     int
}

// Empty reports whether nothing was exported
func (e Export) Empty() bool { return e.Rows == 0 }

func (s *Service) finishExport(entity string, rows int, content string) Export {
	if rows == 0 {
		s.log.Debug("nothing to export", zap.String("entity", entity))
		return Export{}
	}
	e := Export{
		Filename: export.TimestampedFilename(entity, s.clock(), s.loc),
		Content:  content,
		Rows:     rows,
	}
	s.monitor.RecordExport(entity, rows)
	s.log.Info("export built",
		zap.String("entity", entity),
		zap.String("filename", e.Filename),
		zap.Int("rows", rows))
	return e
}

// ExportOrders renders the orders matching f
func (s *Service) ExportOrders(f filter.OrderFilter) (Export, error) {
	orders, err := s.Orders(f)
	if err != nil {
		return Export{}, err
	}
	outlets, err := s.store.ListOutlets()
	if err != nil {
		return Export{}, err
	}
	content := export.BuildFrom(orders, export.OrderColumns, export.OrderRow(outlets, s.taxRate, s.loc))
	return s.finishExport("orders", len(orders), content), nil
}

// ExportReservations renders the reservations matching f in lifecycle order
func (s *Service) ExportReservations(f filter.ReservationFilter) (Export, error) {
	rs, err := s.Reservations(f)
	if err != nil {
		return Export{}, err
	}
	content := export.BuildFrom(rs, export.ReservationColumns, export.ReservationRow(s.loc))
	return s.finishExport("reservations", len(rs), content), nil
}

// ExportCustomers renders the loyal customers matching query
func (s *Service) ExportCustomers(query string, key loyalty.SortKey) (Export, error) {
	customers, err := s.Customers(query, key)
	if err != nil {
		return Export{}, err
	}
	outlets, err := s.store.ListOutlets()
	if err != nil {
		return Export{}, err
	}
	content := export.BuildFrom(customers, export.CustomerColumns, export.CustomerRow(outlets, s.loc))
	return s.finishExport("customers", len(customers), content), nil
}
