package loyalty

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"backoffice/internal/models"
)

// SortKey selects the ordering of the customers view
type SortKey string

const (
	SortMostOrders SortKey = "most_orders"
	SortMostSpent  SortKey = "most_spent"
	SortRecent     SortKey = "recent"
)

// ParseSortKey validates a raw sort key, defaulting to most_orders
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortMostOrders, nil
	case SortMostOrders, SortMostSpent, SortRecent:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Sort returns a sorted copy of customers. Ties keep their input order.
func Sort(customers []models.Customer, key SortKey) []models.Customer {
	out := append([]models.Customer(nil), customers...)
	var less func(a, b models.Customer) bool
	switch key {
	case SortMostSpent:
		less = func(a, b models.Customer) bool { return a.TotalSpent > b.TotalSpent }
	case SortRecent:
		less = func(a, b models.Customer) bool { return a.LastOrderAt.After(b.LastOrderAt) }
	default:
		less = func(a, b models.Customer) bool { return a.TotalOrders > b.TotalOrders }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Search keeps customers whose name, outlet names or id contain query,
// case-insensitively. A blank query keeps everything.
func Search(customers []models.Customer, query string, outlets []models.Outlet) []models.Customer {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]models.Customer(nil), customers...)
	}
	out := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		names := strings.ToLower(strings.Join(models.OutletNames(outlets, c.OutletIDs), " "))
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(names, q) ||
			strings.Contains(strings.ToLower(c.ID), q) {
			out = append(out, c)
		}
	}
	return out
}

// Summary holds the KPI cards of the customers view
type Summary struct {
	LoyalCount      int     `json:"loyalCount"`
	AvgOrders       float64 `json:"avgOrders"`
	AvgSpend        float64 `json:"avgSpend"`
	RepeatRateProxy int     `json:"repeatRateProxy"`
}

// RepeatThreshold is the order count counted by the repeat-rate proxy
const RepeatThreshold = 3

// Summarize computes the loyalty KPIs over loyal customers
func Summarize(customers []models.Customer) Summary {
	n := len(customers)
	if n == 0 {
		return Summary{}
	}
	var orders int
	var spent float64
	var repeat int
	for _, c := range customers {
		orders += c.TotalOrders
		spent += c.TotalSpent
		if c.TotalOrders >= RepeatThreshold {
			repeat++
		}
	}
	return Summary{
		LoyalCount:      n,
		AvgOrders:       float64(orders) / float64(n),
		AvgSpend:        spent / float64(n),
		RepeatRateProxy: int(math.Round(float64(repeat) / float64(n) * 100)),
	}
}

// Find returns the customer with id
func Find(customers []models.Customer, id string) (models.Customer, bool) {
	for _, c := range customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}
