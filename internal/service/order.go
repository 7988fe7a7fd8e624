package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sazon/internal/model"
	"sazon/internal/session"
)

// DeliveryFee is the flat surcharge for delivery orders.
const DeliveryFee = 5.0

type OrderService struct {
	db *sql.DB
}

func NewOrderService(db *sql.DB) *OrderService {
	return &OrderService{db: db}
}

// Checkout converts a cart into a persisted order plus line items in one
// transaction. Prices come from the cart snapshots, never from the current
// catalog. Stock is not touched here; it is committed only when the order
// enters fulfillment (see UpdateStatus).
func (s *OrderService) Checkout(ctx context.Context, cart *session.Cart, delivery bool, address string) (*model.Order, error) {
	if cart == nil || cart.Empty() {
		return nil, ErrEmptyCart
	}
	address = strings.TrimSpace(address)
	if delivery && address == "" {
		return nil, &ValidationError{Msg: "delivery address is required"}
	}

	fee := 0.0
	if delivery {
		fee = DeliveryFee
	}
	total := cart.Subtotal() + fee

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var addr any
	if delivery {
		addr = address
	}

	order := &model.Order{
		Total:       total,
		Status:      model.StatusPending,
		IsDelivery:  delivery,
		DeliveryFee: fee,
	}
	if delivery {
		order.DeliveryAddress = address
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (total, status, is_delivery, delivery_address, delivery_fee)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		total, order.Status.String(), delivery, addr, fee,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, line := range cart.Lines {
		item := model.OrderItem{
			OrderID:    order.ID,
			MenuItemID: line.ItemID,
			Quantity:   line.Quantity,
			Subtotal:   line.Price * float64(line.Quantity),
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, menu_item_id, quantity, subtotal) VALUES ($1, $2, $3, $4)`,
			item.OrderID, item.MenuItemID, item.Quantity, item.Subtotal,
		)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return order, nil
}

// lockedLine is a line item joined with its menu item, locked for the
// duration of a status transition.
type lockedLine struct {
	ItemID   int64
	Quantity int
	Name     string
	Stock    int
}

func lockLines(ctx context.Context, tx *sql.Tx, orderID int64) ([]lockedLine, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT oi.menu_item_id, oi.quantity, m.name, m.stock
		 FROM order_items oi
		 JOIN menu_items m ON m.id = oi.menu_item_id
		 WHERE oi.order_id = $1
		 ORDER BY oi.id
		 FOR UPDATE OF m`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("lock order lines: %w", err)
	}
	defer rows.Close()

	var lines []lockedLine
	for rows.Next() {
		var l lockedLine
		if err := rows.Scan(&l.ItemID, &l.Quantity, &l.Name, &l.Stock); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return lines, nil
}

// UpdateStatus transitions an order and applies the stock effects of the
// transition in one transaction, locking the order row and the affected menu
// rows so concurrent updates cannot both pass the stock check.
//
// Pendiente → {En preparación, Listo, Entregado} spends stock, all lines or
// none. {En preparación, Listo, Entregado} → Cancelado refunds it. Every
// other pair changes only the status field.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, next model.OrderStatus) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var stored string
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get order: %w", err)
	}

	current, err := model.ParseStatus(stored)
	if err != nil {
		return fmt.Errorf("stored status: %w", err)
	}

	switch {
	case current == model.StatusPending && next.Active():
		lines, err := lockLines(ctx, tx, orderID)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if l.Stock < l.Quantity {
				return &InsufficientStockError{Item: l.Name}
			}
		}
		for _, l := range lines {
			_, err = tx.ExecContext(ctx, `UPDATE menu_items SET stock = stock - $1 WHERE id = $2`, l.Quantity, l.ItemID)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
		}

	case current.Active() && next == model.StatusCancelled:
		lines, err := lockLines(ctx, tx, orderID)
		if err != nil {
			return err
		}
		for _, l := range lines {
			_, err = tx.ExecContext(ctx, `UPDATE menu_items SET stock = stock + $1 WHERE id = $2`, l.Quantity, l.ItemID)
			if err != nil {
				return fmt.Errorf("restore stock: %w", err)
			}
		}
	}

	if _, err = tx.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, next.String(), orderID); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	return tx.Commit()
}

const orderColumns = `id, created_at, total, status, is_delivery, delivery_address, delivery_fee`

// List returns all orders, newest first, with their line items.
func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	for i := range orders {
		items, err := s.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*model.Order, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items, err := s.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	var status string
	var address sql.NullString
	if err := row.Scan(&o.ID, &o.CreatedAt, &o.Total, &status, &o.IsDelivery, &address, &o.DeliveryFee); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	o.Status = model.OrderStatus(status)
	if address.Valid {
		o.DeliveryAddress = address.String
	}
	return &o, nil
}

func (s *OrderService) listItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, order_id, menu_item_id, quantity, subtotal FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Quantity, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return items, nil
}
