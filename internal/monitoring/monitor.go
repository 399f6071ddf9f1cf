package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for status transitions
const (
	ResultApplied  = "applied"
	ResultRejected = "rejected"
)

// Monitor collects console metrics in a private registry. A nil
// *Monitor records nothing.
type Monitor struct {
	registry  *prometheus.Registry
	startTime time.Time

	transitions         *prometheus.CounterVec
	exports             *prometheus.CounterVec
	exportRows          *prometheus.CounterVec
	reservationsCreated prometheus.Counter
	ordersCreated       prometheus.Counter
	loyalCustomers      prometheus.Gauge
}

// NewMonitor creates a monitor with every collector registered
func NewMonitor() *Monitor {
	m := &Monitor{
		registry:  prometheus.NewRegistry(),
		startTime: time.Now(),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_status_transitions_total",
				Help: "Status transitions attempted, by entity and outcome",
			},
			[]string{"entity", "from", "to", "result"},
		),
		exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_exports_total",
				Help: "CSV exports produced",
			},
			[]string{"entity"},
		),
		exportRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_export_rows_total",
				Help: "Rows written across CSV exports",
			},
			[]string{"entity"},
		),
		reservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_reservations_created_total",
			Help: "Reservations created through the console",
		}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_orders_created_total",
			Help: "Orders created through the console",
		}),
		loyalCustomers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "backoffice_loyal_customers",
			Help: "Customers with at least two orders at the last aggregation",
		}),
	}

	uptime := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "backoffice_uptime_seconds",
		Help: "Seconds since the console started",
	}, func() float64 { return m.Uptime().Seconds() })

	m.registry.MustRegister(
		m.transitions,
		m.exports,
		m.exportRows,
		m.reservationsCreated,
		m.ordersCreated,
		m.loyalCustomers,
		uptime,
	)
	return m
}

// Registry exposes the underlying registry
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Uptime is the time since NewMonitor
func (m *Monitor) Uptime() time.Duration {
	if m == nil {
		return 0
	}
	return time.Since(m.startTime)
}

// RecordTransition counts one status change attempt
func (m *Monitor) RecordTransition(entity, from, to string, applied bool) {
	if m == nil {
		return
	}
	result := ResultRejected
	if applied {
		result = ResultApplied
	}
	m.transitions.WithLabelValues(entity, from, to, result).Inc()
}

// RecordExport counts an export of rows records
func (m *Monitor) RecordExport(entity string, rows int) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(entity).Inc()
	m.exportRows.WithLabelValues(entity).Add(float64(rows))
}

// RecordReservationCreated counts a new reservation
func (m *Monitor) RecordReservationCreated() {
	if m == nil {
		return
	}
	m.reservationsCreated.Inc()
}

// RecordOrderCreated counts a new order
func (m *Monitor) RecordOrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

// SetLoyalCustomers sets the loyal-customer gauge
func (m *Monitor) SetLoyalCustomers(n int) {
	if m == nil {
		return
	}
	m.loyalCustomers.Set(float64(n))
}
