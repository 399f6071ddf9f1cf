package models

import "fmt"

// MenuItem represents a dish on the menu
type MenuItem struct {
	Name     string       `json:"name"`
	Category MenuCategory `json:"category"`
	Price    float64      `json:"price"`
}

// MenuCategory represents the category of a menu item
type MenuCategory string

const (
	// Menu categories
	MenuCategoryStarter  MenuCategory = "starter"
	MenuCategoryMain     MenuCategory = "main"
	MenuCategorySide     MenuCategory = "side"
	MenuCategoryFastFood MenuCategory = "fast_food"
)

// ValidateMenuItem validates a menu item
func ValidateMenuItem(item MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("menu item name is required")
	}
	if item.Price <= 0 {
		return fmt.Errorf("menu item %s: price must be greater than 0", item.Name)
	}
	return nil
}

// Line returns an order line for quantity portions at the menu price
func (mi MenuItem) Line(quantity int) OrderItem {
	return OrderItem{Name: mi.Name, Quantity: quantity, Price: mi.Price}
}
