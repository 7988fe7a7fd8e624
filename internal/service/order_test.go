package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sazon/internal/model"
	"sazon/internal/session"
)

func newOrderService(t *testing.T) (*OrderService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOrderService(db), mock
}

func testCart() *session.Cart {
	var c session.Cart
	c.Lines = []session.CartLine{
		{ItemID: 1, Name: "Tacos al pastor", Price: 10, Quantity: 2},
		{ItemID: 2, Name: "Agua de horchata", Price: 5, Quantity: 1},
	}
	return &c
}

func TestCheckoutTotals(t *testing.T) {
	svc, mock := newOrderService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(25.0, "Pendiente", false, nil, 0.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), time.Now()))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(42), int64(1), 2, 20.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(42), int64(2), 1, 5.0).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	order, err := svc.Checkout(context.Background(), testCart(), false, "")
	require.NoError(t, err)

	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, 25.0, order.Total)
	assert.Equal(t, 0.0, order.DeliveryFee)
	assert.Equal(t, model.StatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 20.0, order.Items[0].Subtotal)
	assert.Equal(t, 5.0, order.Items[1].Subtotal)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutDeliveryFee(t *testing.T) {
	svc, mock := newOrderService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(30.0, "Pendiente", true, "Calle 1 #23", 5.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(43), time.Now()))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(43), int64(1), 2, 20.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(43), int64(2), 1, 5.0).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	order, err := svc.Checkout(context.Background(), testCart(), true, "Calle 1 #23")
	require.NoError(t, err)

	assert.Equal(t, 30.0, order.Total)
	assert.Equal(t, 5.0, order.DeliveryFee)
	assert.Equal(t, "Calle 1 #23", order.DeliveryAddress)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, mock := newOrderService(t)

	_, err := svc.Checkout(context.Background(), &session.Cart{}, false, "")
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.Checkout(context.Background(), nil, false, "")
	assert.ErrorIs(t, err, ErrEmptyCart)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutDeliveryRequiresAddress(t *testing.T) {
	svc, mock := newOrderService(t)

	_, err := svc.Checkout(context.Background(), testCart(), true, "   ")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func expectStatusSelect(mock sqlmock.Sqlmock, orderID int64, status string) {
	mock.ExpectQuery("SELECT status FROM orders").
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(status))
}

func expectLockLines(mock sqlmock.Sqlmock, orderID int64, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT oi\.menu_item_id`).
		WithArgs(orderID).
		WillReturnRows(rows)
}

func lineRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"menu_item_id", "quantity", "name", "stock"})
}

func TestUpdateStatusDecrementsStock(t *testing.T) {
	svc, mock := newOrderService(t)

	mock.ExpectBegin()
	expectStatusSelect(mock, 7, "Pendiente")
	expectLockLines(mock, 7, lineRows().
		AddRow(int64(1), 2, "Tacos al pastor", 10).
		AddRow(int64(2), 1, "Agua de horchata", 5))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE menu_items SET stock = stock - $1 WHERE id = $2`)).
		WithArgs(2, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE menu_items SET stock = stock - $1 WHERE id = $2`)).
		WithArgs(1, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = $1 WHERE id = $2`)).
		WithArgs("En preparación", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.UpdateStatus(context.Background(), 7, model.StatusPreparing)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusInsufficientStockAborts(t *testing.T) {
	svc, mock := newOrderService(t)

	mock.ExpectBegin()
	expectStatusSelect(mock, 7, "Pendiente")
	expectLockLines(mock, 7, lineRows().
		AddRow(int64(1), 2, "Tacos al pastor", 10).
		AddRow(int64(2), 3, "Agua de horchata", 1))
	mock.ExpectRollback()

	err := svc.UpdateStatus(context.Background(), 7, model.StatusReady)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Agua de horchata", stockErr.Item)

	// No stock update and no status update reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusCancelRestoresStock(t *testing.T) {
	svc, mock := newOrderService(t)

	mock.ExpectBegin()
	expectStatusSelect(mock, 9, "En preparación")
	expectLockLines(mock, 9, lineRows().
		AddRow(int64(1), 2, "Tacos al pastor", 8).
		AddRow(int64(2), 1, "Agua de horchata", 4))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE menu_items SET stock = stock + $1 WHERE id = $2`)).
		WithArgs(2, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE menu_items SET stock = stock + $1 WHERE id = $2`)).
		WithArgs(1, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = $1 WHERE id = $2`)).
		WithArgs("Cancelado", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.UpdateStatus(context.Background(), 9, model.StatusCancelled)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNeutralTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    model.OrderStatus
	}{
		{"preparing to ready", "En preparación", model.StatusReady},
		{"ready to delivered", "Listo", model.StatusDelivered},
		{"pending to cancelled", "Pendiente", model.StatusCancelled},
		{"same status", "Entregado", model.StatusDelivered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := newOrderService(t)

			mock.ExpectBegin()
			expectStatusSelect(mock, 3, tt.current)
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = $1 WHERE id = $2`)).
				WithArgs(tt.next.String(), int64(3)).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			err := svc.UpdateStatus(context.Background(), 3, tt.next)
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateStatusOrderNotFound(t *testing.T) {
	svc, mock := newOrderService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM orders").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := svc.UpdateStatus(context.Background(), 99, model.StatusReady)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
