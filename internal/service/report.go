package service

import (
	"context"
	"database/sql"
	"fmt"
)

// Report is a read-only projection over orders and expenses; it is
// recomputed on every dashboard view, nothing is cached.
type Report struct {
	Sales    float64 `json:"sales"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

type ReportService struct {
	db *sql.DB
}

func NewReportService(db *sql.DB) *ReportService {
	return &ReportService{db: db}
}

func (s *ReportService) Daily(ctx context.Context) (*Report, error) {
	return s.report(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM orders WHERE created_at::date = CURRENT_DATE`,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE created_at::date = CURRENT_DATE`,
	)
}

func (s *ReportService) Monthly(ctx context.Context) (*Report, error) {
	return s.report(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM orders WHERE created_at >= date_trunc('month', now())`,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE created_at >= date_trunc('month', now())`,
	)
}

func (s *ReportService) report(ctx context.Context, salesQuery, expensesQuery string) (*Report, error) {
	var r Report
	if err := s.db.QueryRowContext(ctx, salesQuery).Scan(&r.Sales); err != nil {
		return nil, fmt.Errorf("sum sales: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, expensesQuery).Scan(&r.Expenses); err != nil {
		return nil, fmt.Errorf("sum expenses: %w", err)
	}
	r.Profit = r.Sales - r.Expenses
	return &r, nil
}
