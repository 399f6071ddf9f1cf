// Package filter derives the filtered, counted and sorted views of
// orders and reservations shown by the console.
package filter

import (
	"sort"
	"strings"
	"time"

	"backoffice/internal/models"
)

// OrderFilter selects orders. Zero values match everything.
type OrderFilter struct {
	Outlet string
	Type   models.OrderType
	Status models.OrderStatus
	Bucket DateBucket
	Query  string
}

// Active counts the narrowing predicates, as shown on the filter badge
func (f OrderFilter) Active() int {
	n := 0
	if f.Outlet != "" && f.Outlet != models.AllOutlets {
		n++
	}
	if f.Type != "" {
		n++
	}
	if f.Status != "" {
		n++
	}
	if f.Bucket != "" && f.Bucket != BucketAll {
		n++
	}
	if strings.TrimSpace(f.Query) != "" {
		n++
	}
	return n
}

// Match reports whether o passes every predicate
func (f OrderFilter) Match(o models.Order, outlets []models.Outlet, now time.Time) bool {
	if f.Outlet != "" && f.Outlet != models.AllOutlets && o.Outlet != f.Outlet {
		return false
	}
	if f.Type != "" && o.Type != f.Type {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if !f.Bucket.Contains(o.CreatedAt, now) {
		return false
	}
	return matchText(f.Query, o.ID, o.Customer, models.OutletName(outlets, o.Outlet))
}

// Orders returns the orders matching f, in input order
func Orders(orders []models.Order, f OrderFilter, outlets []models.Outlet, now time.Time) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if f.Match(o, outlets, now) {
			out = append(out, o)
		}
	}
	return out
}

// ReservationFilter selects reservations. Zero values match everything.
type ReservationFilter struct {
	Status models.ReservationStatus
	Bucket DateBucket
	Slot   TimeSlot
	Query  string
}

// Match reports whether r passes every predicate. Reservations whose
// date does not parse only match the all bucket.
func (f ReservationFilter) Match(r models.Reservation, now time.Time) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Bucket != "" && f.Bucket != BucketAll {
		day, err := r.Day(now.Location())
		if err != nil || !f.Bucket.Contains(day, now) {
			return false
		}
	}
	if f.Slot != "" && SlotOf(r.Time) != f.Slot {
		return false
	}
	return matchText(f.Query, r.ID, r.CustomerName, r.Phone, r.Table)
}

// Reservations returns the reservations matching f, in input order
func Reservations(rs []models.Reservation, f ReservationFilter, now time.Time) []models.Reservation {
	out := make([]models.Reservation, 0, len(rs))
	for _, r := range rs {
		if f.Match(r, now) {
			out = append(out, r)
		}
	}
	return out
}

func matchText(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// OrderCounts counts orders per status, with every status present
func OrderCounts(orders []models.Order) map[models.OrderStatus]int {
	counts := make(map[models.OrderStatus]int, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		counts[s] = 0
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}

// ReservationCounts counts reservations per status, with every status present
func ReservationCounts(rs []models.Reservation) map[models.ReservationStatus]int {
	counts := make(map[models.ReservationStatus]int, len(models.ReservationStatuses))
	for _, s := range models.ReservationStatuses {
		counts[s] = 0
	}
	for _, r := range rs {
		counts[r.Status]++
	}
	return counts
}

// SortByLifecycle returns reservations ordered by status priority, then
// date, then time of day, then id.
func SortByLifecycle(rs []models.Reservation) []models.Reservation {
	out := append([]models.Reservation(nil), rs...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if pa, pb := a.Status.Priority(), b.Status.Priority(); pa != pb {
			return pa < pb
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if ma, mb := ParseClockMinutes(a.Time), ParseClockMinutes(b.Time); ma != mb {
			return ma < mb
		}
		return a.ID < b.ID
	})
	return out
}
