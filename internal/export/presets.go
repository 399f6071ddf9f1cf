package export

import (
	"regexp"
	"strings"
	"time"

	"backoffice/internal/filter"
	"backoffice/internal/models"
)

// ReservationColumns is the advanced reservation export layout
var ReservationColumns = []Column{
	{Key: "id", Label: "Reservation ID"},
	{Key: "customerName", Label: "Customer"},
	{Key: "phonePretty", Label: "Phone"},
	{Key: "phoneDigits", Label: "Phone Digits"},
	{Key: "guests", Label: "Guests"},
	{Key: "dateISO", Label: "Date ISO"},
	{Key: "datePretty", Label: "Date"},
	{Key: "dayOfWeek", Label: "Day"},
	{Key: "time", Label: "Time"},
	{Key: "timeSlot", Label: "Time Slot"},
	{Key: "table", Label: "Table"},
	{Key: "status", Label: "Status"},
	{Key: "statusPriority", Label: "Status Priority"},
	{Key: "createdAtISO", Label: "Created At (ISO)"},
	{Key: "notes", Label: "Notes"},
	{Key: "hasNotes", Label: "Has Notes"},
	{Key: "hasTable", Label: "Has Table"},
	{Key: "isWalkIn", Label: "Walk-in"},
}

var nonDigits = regexp.MustCompile(`\D`)

// PhoneDigits strips everything but digits
func PhoneDigits(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// PrettyPhone formats ten digit numbers as "XXXXX XXXXX" and leaves
// anything else untouched.
func PrettyPhone(phone string) string {
	d := PhoneDigits(phone)
	if len(d) != 10 {
		return phone
	}
	return d[:5] + " " + d[5:]
}

// ReservationRow maps a reservation for ReservationColumns, rendering
// dates in loc.
func ReservationRow(loc *time.Location) func(models.Reservation) Row {
	return func(r models.Reservation) Row {
		var pretty, weekday string
		if day, err := r.Day(loc); err == nil {
			pretty = day.Format("Mon, 02 Jan 2006")
			weekday = day.Weekday().String()
		}
		table := models.Placeholder
		if r.HasTable() {
			table = r.Table
		}
		return Row{
			"id":             r.ID,
			"customerName":   r.CustomerName,
			"phonePretty":    PrettyPhone(r.Phone),
			"phoneDigits":    PhoneDigits(r.Phone),
			"guests":         r.Guests,
			"dateISO":        r.Date,
			"datePretty":     pretty,
			"dayOfWeek":      weekday,
			"time":           r.Time,
			"timeSlot":       string(filter.SlotOf(r.Time)),
			"table":          table,
			"status":         string(r.Status),
			"statusPriority": r.Status.Priority(),
			"createdAtISO":   r.CreatedAt,
			"notes":          r.Notes,
			"hasNotes":       r.HasNotes(),
			"hasTable":       r.HasTable(),
			"isWalkIn":       r.IsWalkIn(),
		}
	}
}

// OrderColumns is the order export layout
var OrderColumns = []Column{
	{Key: "id", Label: "Order ID"},
	{Key: "outlet", Label: "Outlet"},
	{Key: "table", Label: "Table"},
	{Key: "customer", Label: "Customer"},
	{Key: "type", Label: "Type"},
	{Key: "status", Label: "Status"},
	{Key: "items", Label: "Items"},
	{Key: "subtotal", Label: "Subtotal"},
	{Key: "tax", Label: "Tax"},
	{Key: "total", Label: "Total"},
	{Key: "createdAt", Label: "Created At"},
}

// OrderRow maps an order for OrderColumns with a bill at taxRate
func OrderRow(outlets []models.Outlet, taxRate float64, loc *time.Location) func(models.Order) Row {
	return func(o models.Order) Row {
		bill := models.NewBill(o, taxRate)
		created := o.CreatedAt
		if loc != nil {
			created = created.In(loc)
		}
		return Row{
			"id":        o.ID,
			"outlet":    models.OutletName(outlets, o.Outlet),
			"table":     o.Table,
			"customer":  o.Customer,
			"type":      o.Type.Label(),
			"status":    o.Status.Label(),
			"items":     bill.ItemCount,
			"subtotal":  bill.Subtotal,
			"tax":       bill.Tax,
			"total":     bill.Total,
			"createdAt": created.Format("2006-01-02 15:04"),
		}
	}
}

// CustomerColumns is the loyalty export layout
var CustomerColumns = []Column{
	{Key: "id", Label: "Customer ID"},
	{Key: "name", Label: "Name"},
	{Key: "phone", Label: "Phone"},
	{Key: "outlets", Label: "Outlets"},
	{Key: "orders", Label: "Orders"},
	{Key: "spent", Label: "Total Spent"},
	{Key: "avg", Label: "Avg Order Value"},
	{Key: "lastOrder", Label: "Last Order"},
}

// CustomerRow maps a customer profile for CustomerColumns
func CustomerRow(outlets []models.Outlet, loc *time.Location) func(models.Customer) Row {
	return func(c models.Customer) Row {
		last := c.LastOrderAt
		if loc != nil {
			last = last.In(loc)
		}
		return Row{
			"id":        c.ID,
			"name":      c.Name,
			"phone":     c.Phone,
			"outlets":   strings.Join(models.OutletNames(outlets, c.OutletIDs), "; "),
			"orders":    c.TotalOrders,
			"spent":     c.TotalSpent,
			"avg":       c.AvgOrderValue,
			"lastOrder": last.Format("2006-01-02 15:04"),
		}
	}
}
