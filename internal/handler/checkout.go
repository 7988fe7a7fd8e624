package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"sazon/internal/service"
	"sazon/internal/session"
)

type checkoutRequest struct {
	Delivery      bool   `json:"delivery"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

type checkoutResponse struct {
	Order   any    `json:"order"`
	Message string `json:"message"`
}

// Confirmation texts depend on the payment method tag; the tag itself is
// informational and never persisted.
const (
	msgCash     = "¡Pedido confirmado! Pago en efectivo al recibir."
	msgTransfer = "¡Pedido confirmado! Realiza transferencia / Nequi / Daviplata al 3166683848 y envía comprobante."
)

func CheckoutHandler(orderSvc *service.OrderService, carts *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		token, err := cartToken(w, r)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		cart := carts.Get(token)

		order, err := orderSvc.Checkout(r.Context(), cart, req.Delivery, req.Address)
		if err != nil {
			var vErr *service.ValidationError
			switch {
			case errors.Is(err, service.ErrEmptyCart):
				http.Error(w, "cart is empty", http.StatusBadRequest)
			case errors.As(err, &vErr):
				http.Error(w, vErr.Msg, http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		carts.Delete(token)

		msg := msgTransfer
		if req.PaymentMethod == "efectivo" {
			msg = msgCash
		}
		writeJSON(w, http.StatusCreated, checkoutResponse{Order: order, Message: msg})
	}
}
