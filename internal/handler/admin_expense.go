package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"sazon/internal/service"
)

type expenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

func CreateExpenseHandler(expenseSvc *service.ExpenseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req expenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		expense, err := expenseSvc.Create(r.Context(), req.Description, req.Amount)
		if err != nil {
			var vErr *service.ValidationError
			if errors.As(err, &vErr) {
				http.Error(w, vErr.Msg, http.StatusBadRequest)
			} else {
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, expense)
	}
}

func ListExpensesHandler(expenseSvc *service.ExpenseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expenses, err := expenseSvc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(expenses) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, expenses)
	}
}
