package model

import (
	"errors"
	"fmt"
)

// OrderStatus is the closed set of order lifecycle states. The canonical
// labels are the customer-facing Spanish strings and are exactly what gets
// persisted, so a typo can never reach the database.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pendiente"
	StatusPreparing OrderStatus = "En preparación"
	StatusReady     OrderStatus = "Listo"
	StatusDelivered OrderStatus = "Entregado"
	StatusCancelled OrderStatus = "Cancelado"
)

var ErrInvalidStatus = errors.New("invalid order status")

// ParseStatus maps a boundary string onto the enumeration.
func ParseStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s OrderStatus) String() string { return string(s) }

// Active reports whether the status represents active fulfillment, i.e. a
// state in which the order's stock has been committed. Entering an active
// state from Pendiente spends stock; leaving one for Cancelado refunds it.
func (s OrderStatus) Active() bool {
	switch s {
	case StatusPreparing, StatusReady, StatusDelivered:
		return true
	}
	return false
}
