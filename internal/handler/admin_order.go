package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"sazon/internal/model"
	"sazon/internal/service"
)

func ListOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := orderSvc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(orders) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, orders)
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func UpdateOrderStatusHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := urlID(r)
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		next, err := model.ParseStatus(req.Status)
		if err != nil {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		if err := orderSvc.UpdateStatus(r.Context(), orderID, next); err != nil {
			var stockErr *service.InsufficientStockError
			switch {
			case errors.Is(err, service.ErrNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.As(err, &stockErr):
				http.Error(w, stockErr.Error(), http.StatusConflict)
			default:
				slog.Error("status update failed", "order_id", orderID, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": next.String()})
	}
}
