// Package loyalty folds raw orders into repeat-customer profiles.
package loyalty

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode/utf16"

	"backoffice/internal/models"
)

// MinOrders is the order count from which a customer counts as loyal
const MinOrders = 2

var whitespaceRun = regexp.MustCompile(`\s+`)

// BuildCustomerProfiles groups orders by trimmed customer name and returns
// the customers with at least MinOrders orders, busiest first.
// Profiles with equal order count and spend keep first-appearance order.
// Loyal names that differ only in case or spacing share a base id; later
// ones get a numeric suffix in order of first appearance.
// Outlet names are joined by callers; the reference list is not consulted here.
func BuildCustomerProfiles(orders []models.Order, _ []models.Outlet) []models.Customer {
	index := make(map[string]int)
	profiles := make([]models.Customer, 0)

	for _, order := range orders {
		name := strings.TrimSpace(order.Customer)
		total := order.Total()

		i, seen := index[name]
		if !seen {
			index[name] = len(profiles)
			profiles = append(profiles, models.Customer{
				ID:            CustomerID(name),
				Name:          name,
				Phone:         MockPhone(name),
				OutletIDs:     []string{order.Outlet},
				TotalOrders:   1,
				TotalSpent:    total,
				AvgOrderValue: total,
				LastOrderAt:   order.CreatedAt,
			})
			continue
		}

		c := &profiles[i]
		if !slices.Contains(c.OutletIDs, order.Outlet) {
			c.OutletIDs = append(c.OutletIDs, order.Outlet)
		}
		c.TotalOrders++
		c.TotalSpent += total
		c.AvgOrderValue = c.TotalSpent / float64(c.TotalOrders)
		if order.CreatedAt.After(c.LastOrderAt) {
			c.LastOrderAt = order.CreatedAt
		}
	}

	loyal := make([]models.Customer, 0, len(profiles))
	taken := make(map[string]bool)
	for _, c := range profiles {
		if c.TotalOrders < MinOrders {
			continue
		}
		id := c.ID
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("%s-%d", c.ID, n)
		}
		taken[id] = true
		c.ID = id
		loyal = append(loyal, c)
	}

	sort.SliceStable(loyal, func(a, b int) bool {
		if loyal[a].TotalOrders != loyal[b].TotalOrders {
			return loyal[a].TotalOrders > loyal[b].TotalOrders
		}
		return loyal[a].TotalSpent > loyal[b].TotalSpent
	})
	return loyal
}

// CustomerID derives the stable profile id from a customer name
func CustomerID(name string) string {
	return "CUST-" + whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}

// MockPhone derives a stable ten-digit mobile number from seed,
// formatted as "XXXXX XXXXX".
func MockPhone(seed string) string {
	var hash uint32
	for _, unit := range utf16.Encode([]rune(seed)) {
		hash = hash*31 + uint32(unit)
	}
	starters := [...]string{"9", "8", "7"}
	num := starters[hash%uint32(len(starters))] + fmt.Sprintf("%d", 100000000+hash%900000000)
	return num[:5] + " " + num[5:]
}
