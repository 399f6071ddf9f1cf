package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/models"
)

var (
	ist     = time.FixedZone("IST", 5*3600+1800)
	now     = time.Date(2026, 1, 14, 15, 0, 0, 0, ist)
	outlets = []models.Outlet{
		{ID: "outlet-1", Name: "Downtown Branch"},
		{ID: "outlet-2", Name: "Uptown Branch"},
	}
)

func sampleOrders() []models.Order {
	return []models.Order{
		{ID: "ORD-1001", Outlet: "outlet-1", Customer: "Rahul Sharma", Type: models.OrderTypeDineIn, Status: models.OrderStatusPending, CreatedAt: now.Add(-time.Hour)},
		{ID: "ORD-1002", Outlet: "outlet-2", Customer: "Ananya Singh", Type: models.OrderTypePack, Status: models.OrderStatusDelivered, CreatedAt: now.Add(-26 * time.Hour)},
		{ID: "ORD-1003", Outlet: "outlet-2", Customer: "Mohit Verma", Type: models.OrderTypeDelivery, Status: models.OrderStatusPending, CreatedAt: now.Add(-10 * 24 * time.Hour)},
		{ID: "ORD-1004", Outlet: "outlet-9", Customer: "Neha Kapoor", Type: models.OrderTypeDineIn, Status: models.OrderStatusCancelled, CreatedAt: now},
	}
}

func orderIDs(os []models.Order) []string {
	ids := make([]string, len(os))
	for i, o := range os {
		ids[i] = o.ID
	}
	return ids
}

func TestOrders(t *testing.T) {
	orders := sampleOrders()
	tests := []struct {
		name   string
		filter OrderFilter
		want   []string
	}{
		{"zero filter", OrderFilter{}, []string{"ORD-1001", "ORD-1002", "ORD-1003", "ORD-1004"}},
		{"all outlets", OrderFilter{Outlet: models.AllOutlets}, []string{"ORD-1001", "ORD-1002", "ORD-1003", "ORD-1004"}},
		{"outlet", OrderFilter{Outlet: "outlet-2"}, []string{"ORD-1002", "ORD-1003"}},
		{"type", OrderFilter{Type: models.OrderTypeDineIn}, []string{"ORD-1001", "ORD-1004"}},
		{"status", OrderFilter{Status: models.OrderStatusPending}, []string{"ORD-1001", "ORD-1003"}},
		{"today", OrderFilter{Bucket: BucketToday}, []string{"ORD-1001", "ORD-1004"}},
		{"yesterday", OrderFilter{Bucket: BucketYesterday}, []string{"ORD-1002"}},
		{"last 7 days", OrderFilter{Bucket: BucketLast7Days}, []string{"ORD-1001", "ORD-1002", "ORD-1004"}},
		{"past", OrderFilter{Bucket: BucketPast}, []string{"ORD-1002", "ORD-1003"}},
		{"text on customer", OrderFilter{Query: "ananya"}, []string{"ORD-1002"}},
		{"text on outlet name", OrderFilter{Query: "uptown"}, []string{"ORD-1002", "ORD-1003"}},
		{"text on unknown outlet", OrderFilter{Query: "unknown"}, []string{"ORD-1004"}},
		{"text on id", OrderFilter{Query: "1003"}, []string{"ORD-1003"}},
		{"combined", OrderFilter{Outlet: "outlet-2", Status: models.OrderStatusPending}, []string{"ORD-1003"}},
		{"no match", OrderFilter{Type: models.OrderTypePack, Status: models.OrderStatusPending}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderIDs(Orders(orders, tt.filter, outlets, now)))
		})
	}
}

func TestOrderFilterActive(t *testing.T) {
	assert.Equal(t, 0, OrderFilter{Outlet: models.AllOutlets, Bucket: BucketAll}.Active())
	assert.Equal(t, 3, OrderFilter{Outlet: "outlet-1", Type: models.OrderTypePack, Query: "x"}.Active())
}

func sampleReservations() []models.Reservation {
	return []models.Reservation{
		{ID: "RSV-1001", CustomerName: "Ayaan Khan", Phone: "98765 43210", Date: "2026-01-14", Time: "07:30 PM", Table: "T-12", Status: models.ReservationConfirmed},
		{ID: "RSV-1002", CustomerName: "Sara Ahmed", Phone: "99999 11111", Date: "2026-01-14", Time: "08:00 PM", Status: models.ReservationPending},
		{ID: "RSV-1004", CustomerName: "Neha Verma", Date: "2026-01-15", Time: "07:00 PM", Status: models.ReservationCancelled},
		{ID: "RSV-1005", CustomerName: "Zaid Ali", Date: "2026-01-15", Time: "08:45 PM", Table: "T-9", Status: models.ReservationSeated},
		{ID: "RSV-1007", CustomerName: "Aman Gupta", Date: "2026-01-16", Time: "12:15 PM", Status: models.ReservationPending},
		{ID: "RSV-1008", CustomerName: "Broken", Date: "soon", Time: "late", Status: models.ReservationPending},
	}
}

func reservationIDs(rs []models.Reservation) []string {
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return ids
}

func TestReservations(t *testing.T) {
	rs := sampleReservations()
	tests := []struct {
		name   string
		filter ReservationFilter
		want   []string
	}{
		{"zero filter", ReservationFilter{}, []string{"RSV-1001", "RSV-1002", "RSV-1004", "RSV-1005", "RSV-1007", "RSV-1008"}},
		{"status", ReservationFilter{Status: models.ReservationPending}, []string{"RSV-1002", "RSV-1007", "RSV-1008"}},
		{"today", ReservationFilter{Bucket: BucketToday}, []string{"RSV-1001", "RSV-1002"}},
		{"tomorrow", ReservationFilter{Bucket: BucketTomorrow}, []string{"RSV-1004", "RSV-1005"}},
		{"upcoming", ReservationFilter{Bucket: BucketUpcoming}, []string{"RSV-1004", "RSV-1005", "RSV-1007"}},
		{"evening slot", ReservationFilter{Slot: SlotEvening}, []string{"RSV-1001", "RSV-1004"}},
		{"lunch slot", ReservationFilter{Slot: SlotLunch}, []string{"RSV-1007"}},
		{"text on phone", ReservationFilter{Query: "99999"}, []string{"RSV-1002"}},
		{"text on table", ReservationFilter{Query: "t-9"}, []string{"RSV-1005"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reservationIDs(Reservations(rs, tt.filter, now)))
		})
	}
}

func TestCounts(t *testing.T) {
	oc := OrderCounts(sampleOrders())
	assert.Len(t, oc, len(models.OrderStatuses))
	assert.Equal(t, 2, oc[models.OrderStatusPending])
	assert.Equal(t, 0, oc[models.OrderStatusReady])

	rc := ReservationCounts(sampleReservations())
	assert.Equal(t, 3, rc[models.ReservationPending])
	assert.Equal(t, 1, rc[models.ReservationSeated])

	assert.Len(t, ReservationCounts(nil), len(models.ReservationStatuses))
}

func TestSortByLifecycle(t *testing.T) {
	got := SortByLifecycle(sampleReservations())
	assert.Equal(t, []string{"RSV-1002", "RSV-1007", "RSV-1008", "RSV-1001", "RSV-1005", "RSV-1004"}, reservationIDs(got))
}

func TestParseClockMinutes(t *testing.T) {
	tests := map[string]int{
		"07:30 PM": 19*60 + 30,
		"12:00 PM": 12 * 60,
		"12:05 AM": 5,
		"9:15am":   9*60 + 15,
		"13:00 PM": -1,
		"19:30":    -1,
		"":         -1,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseClockMinutes(in), in)
	}
}

func TestSlotOf(t *testing.T) {
	tests := map[string]TimeSlot{
		"05:00 AM": SlotBreakfast,
		"11:59 AM": SlotBreakfast,
		"12:00 PM": SlotLunch,
		"04:59 PM": SlotLunch,
		"05:00 PM": SlotEvening,
		"07:59 PM": SlotEvening,
		"08:00 PM": SlotDinner,
		"10:59 PM": SlotDinner,
		"11:00 PM": SlotLateNight,
		"02:00 AM": SlotLateNight,
		"whenever": SlotUnknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, SlotOf(in), in)
	}
}

func TestParsers(t *testing.T) {
	b, err := ParseDateBucket("")
	require.NoError(t, err)
	assert.Equal(t, BucketAll, b)
	b, err = ParseDateBucket("TODAY")
	require.NoError(t, err)
	assert.Equal(t, BucketToday, b)
	_, err = ParseDateBucket("next_month")
	assert.Error(t, err)

	s, err := ParseTimeSlot("late_night")
	require.NoError(t, err)
	assert.Equal(t, SlotLateNight, s)
	s, err = ParseTimeSlot("dinner")
	require.NoError(t, err)
	assert.Equal(t, SlotDinner, s)
	_, err = ParseTimeSlot("brunch")
	assert.Error(t, err)
}
