package handler

import (
	"errors"
	"net/http"

	"sazon/internal/service"
	"sazon/internal/session"
)

const cartCookie = "cart_token"

// cartToken returns the caller's session token, minting one and setting the
// cookie on first contact.
func cartToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if c, err := r.Cookie(cartCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}

	token, err := session.NewToken()
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	return token, nil
}

type cartResponse struct {
	Lines    []session.CartLine `json:"lines"`
	Subtotal float64            `json:"subtotal"`
}

func AddToCartHandler(menuSvc *service.MenuService, carts *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := urlID(r)
		if err != nil {
			http.Error(w, "invalid item id", http.StatusBadRequest)
			return
		}

		item, err := menuSvc.Get(r.Context(), itemID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				http.Error(w, "menu item not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		if !item.IsActive {
			http.Error(w, service.ErrItemUnavailable.Error(), http.StatusConflict)
			return
		}

		token, err := cartToken(w, r)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		cart := carts.Get(token)
		cart.Add(item.ID, item.Name, item.Price)
		carts.Put(token, cart)

		writeJSON(w, http.StatusOK, cartResponse{Lines: cart.Lines, Subtotal: cart.Subtotal()})
	}
}

func ViewCartHandler(carts *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(w, r)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		cart := carts.Get(token)
		if cart.Lines == nil {
			cart.Lines = []session.CartLine{}
		}
		writeJSON(w, http.StatusOK, cartResponse{Lines: cart.Lines, Subtotal: cart.Subtotal()})
	}
}
