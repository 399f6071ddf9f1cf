package models

import "time"

// Outlet represents a restaurant branch
type Outlet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AllOutlets is the outlet scope that matches every branch
const AllOutlets = "ALL"

// UnknownOutlet is displayed for orders referencing a missing outlet
const UnknownOutlet = "Unknown Outlet"

// OutletName resolves an outlet id against the reference list
func OutletName(outlets []Outlet, id string) string {
	for _, o := range outlets {
		if o.ID == id {
			return o.Name
		}
	}
	return UnknownOutlet
}

// OutletNames resolves a list of outlet ids
func OutletNames(outlets []Outlet, ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, OutletName(outlets, id))
	}
	return names
}

// Customer is a repeat-customer profile derived from orders
type Customer struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	OutletIDs     []string  `json:"outletIds"`
	TotalOrders   int       `json:"totalOrders"`
	TotalSpent    float64   `json:"totalSpent"`
	AvgOrderValue float64   `json:"avgOrderValue"`
	LastOrderAt   time.Time `json:"lastOrderAt"`
}
