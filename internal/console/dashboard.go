package console

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/filter"
	"backoffice/internal/loyalty"
	"backoffice/internal/models"
)

// TypeShare is one slice of the order-type split
type TypeShare struct {
	Name    string `json:"name"`
	Orders  int    `json:"orders"`
	Percent int    `json:"percent"`
}

// HourCount is the number of orders placed in one clock hour
type HourCount struct {
	Hour   int    `json:"hour"`
	Label  string `json:"label"`
	Orders int    `json:"orders"`
}

// Dashboard summarizes one outlet scope
type Dashboard struct {
	Outlet         string                     `json:"outlet"`
	Revenue        float64                    `json:"revenue"`
	Orders         int                        `json:"orders"`
	Customers      int                        `json:"customers"`
	AvgOrderValue  float64                    `json:"avgOrderValue"`
	TypeSplit      []TypeShare                `json:"typeSplit"`
	Hourly         []HourCount                `json:"hourly"`
	StatusCounts   map[models.OrderStatus]int `json:"statusCounts"`
	LoyalCustomers int                        `json:"loyalCustomers"`
}

// Dashboard computes the KPIs of an outlet scope; blank or ALL covers
// every outlet. Revenue and average order value skip cancelled orders.
func (s *Service) Dashboard(outlet string) (Dashboard, error) {
	if outlet == "" {
		outlet = models.AllOutlets
	}
	orders, err := s.Orders(filter.OrderFilter{Outlet: outlet})
	if err != nil {
		return Dashboard{}, err
	}
	return summarize(outlet, orders, s.loc), nil
}

func summarize(outlet string, orders []models.Order, loc *time.Location) Dashboard {
	d := Dashboard{
		Outlet:       outlet,
		Orders:       len(orders),
		StatusCounts: filter.OrderCounts(orders),
		TypeSplit:    make([]TypeShare, 0, len(models.OrderTypes)),
		Hourly:       []HourCount{},
	}

	names := make(map[string]bool)
	byType := make(map[models.OrderType]int)
	byHour := make(map[int]int)
	billed := 0
	for _, o := range orders {
		names[strings.TrimSpace(o.Customer)] = true
		byType[o.Type]++
		byHour[o.CreatedAt.In(loc).Hour()]++
		if o.Status != models.OrderStatusCancelled {
			d.Revenue += o.Total()
			billed++
		}
	}
	d.Customers = len(names)
	if billed > 0 {
		d.AvgOrderValue = d.Revenue / float64(billed)
	}

	for _, t := range models.OrderTypes {
		share := TypeShare{Name: t.SplitLabel(), Orders: byType[t]}
		if len(orders) > 0 {
			share.Percent = int(math.Round(float64(byType[t]) / float64(len(orders)) * 100))
		}
		d.TypeSplit = append(d.TypeSplit, share)
	}

	hours := make([]int, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	for _, h := range hours {
		d.Hourly = append(d.Hourly, HourCount{Hour: h, Label: hourLabel(h), Orders: byHour[h]})
	}

	d.LoyalCustomers = len(loyalty.BuildCustomerProfiles(orders, nil))
	return d
}

// hourLabel renders 0..23 as "12 AM".."11 PM"
func hourLabel(h int) string {
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return strconv.Itoa(h12) + " " + suffix
}
