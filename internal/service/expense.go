package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sazon/internal/model"
)

type ExpenseService struct {
	db *sql.DB
}

func NewExpenseService(db *sql.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

// Create appends an expense; the ledger is append-only, there is no update
// or delete path.
func (s *ExpenseService) Create(ctx context.Context, description string, amount float64) (*model.Expense, error) {
	if strings.TrimSpace(description) == "" {
		return nil, &ValidationError{Msg: "description is required"}
	}
	if amount <= 0 {
		return nil, &ValidationError{Msg: "amount must be positive"}
	}

	e := &model.Expense{Description: description, Amount: amount}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO expenses (description, amount) VALUES ($1, $2) RETURNING id, created_at`,
		description, amount,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	return e, nil
}

func (s *ExpenseService) List(ctx context.Context) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, created_at FROM expenses ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return expenses, nil
}
