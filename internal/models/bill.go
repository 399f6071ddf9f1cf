package models

import (
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the flat GST rate applied to bills
const DefaultTaxRate = 0.05

// Bill is the printable breakdown of an order
type Bill struct {
	OrderID   string  `json:"orderId"`
	Subtotal  float64 `json:"subtotal"`
	TaxRate   float64 `json:"taxRate"`
	Tax       float64 `json:"tax"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

// NewBill computes the bill of an order at a flat tax rate.
// Tax is rounded to whole currency units.
func NewBill(o Order, taxRate float64) Bill {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Round(0)
	discount := decimal.Zero
	total := subtotal.Add(tax).Sub(discount)

	return Bill{
		OrderID:   o.ID,
		Subtotal:  subtotal.InexactFloat64(),
		TaxRate:   taxRate,
		Tax:       tax.InexactFloat64(),
		Discount:  discount.InexactFloat64(),
		Total:     total.InexactFloat64(),
		ItemCount: o.ItemCount(),
	}
}
