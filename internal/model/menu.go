package model

// Menu item categories as shown to customers.
const (
	CategoryStarter = "entrada"
	CategoryMain    = "plato_fuerte"
	CategoryDrink   = "bebida"
	CategoryDessert = "postre"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryStarter, CategoryMain, CategoryDrink, CategoryDessert:
		return true
	}
	return false
}

// MenuItem is never hard-deleted; IsActive controls customer visibility so
// historical order lines keep a valid reference.
type MenuItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image,omitempty"`
	IsActive    bool    `json:"is_active"`
}
