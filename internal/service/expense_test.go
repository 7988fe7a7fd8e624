package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO expenses").
		WithArgs("Compra de verduras", 35.5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	e, err := NewExpenseService(db).Create(context.Background(), "Compra de verduras", 35.5)
	require.NoError(t, err)

	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, 35.5, e.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseCreateValidation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var vErr *ValidationError

	_, err = NewExpenseService(db).Create(context.Background(), "  ", 10)
	assert.ErrorAs(t, err, &vErr)

	_, err = NewExpenseService(db).Create(context.Background(), "Gas", 0)
	assert.ErrorAs(t, err, &vErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}
