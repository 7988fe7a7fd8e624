package model

import "time"

type Order struct {
	ID              int64       `json:"id"`
	CreatedAt       time.Time   `json:"created_at"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	IsDelivery      bool        `json:"is_delivery"`
	DeliveryAddress string      `json:"delivery_address,omitempty"`
	DeliveryFee     float64     `json:"delivery_fee"`
	Items           []OrderItem `json:"items,omitempty"`
}

// OrderItem snapshots price at checkout time; later menu edits never touch
// it.
type OrderItem struct {
	ID         int64   `json:"id"`
	OrderID    int64   `json:"order_id"`
	MenuItemID int64   `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
}
