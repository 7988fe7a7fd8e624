package handler

import (
	"errors"
	"net/http"
	"strconv"

	"sazon/internal/model"
	"sazon/internal/service"
)

func ListMenuAdminHandler(menuSvc *service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := menuSvc.ListAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// SaveMenuItemHandler creates or updates a menu item from a multipart form.
// A non-zero "id" field selects update; the "image" file part is optional.
func SaveMenuItemHandler(menuSvc *service.MenuService, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "invalid form or file too large", http.StatusBadRequest)
			return
		}

		item := model.MenuItem{
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
			Category:    r.FormValue("category"),
		}
		if v := r.FormValue("id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				http.Error(w, "invalid id", http.StatusBadRequest)
				return
			}
			item.ID = id
		}

		price, err := strconv.ParseFloat(r.FormValue("price"), 64)
		if err != nil {
			http.Error(w, "invalid price", http.StatusBadRequest)
			return
		}
		item.Price = price

		stock, err := strconv.Atoi(r.FormValue("stock"))
		if err != nil {
			http.Error(w, "invalid stock", http.StatusBadRequest)
			return
		}
		item.Stock = stock

		if file, hdr, err := r.FormFile("image"); err == nil {
			defer file.Close()
			path, err := saveUpload(uploadDir, file, hdr)
			if err != nil {
				var vErr *service.ValidationError
				if errors.As(err, &vErr) {
					http.Error(w, vErr.Msg, http.StatusBadRequest)
				} else {
					http.Error(w, "internal error", http.StatusInternalServerError)
				}
				return
			}
			item.Image = path
		}

		if err := menuSvc.Save(r.Context(), &item); err != nil {
			var vErr *service.ValidationError
			switch {
			case errors.As(err, &vErr):
				http.Error(w, vErr.Msg, http.StatusBadRequest)
			case errors.Is(err, service.ErrNotFound):
				http.Error(w, "menu item not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, item)
	}
}

func DeactivateMenuItemHandler(menuSvc *service.MenuService) http.HandlerFunc {
	return setActiveHandler(menuSvc, false)
}

func ReactivateMenuItemHandler(menuSvc *service.MenuService) http.HandlerFunc {
	return setActiveHandler(menuSvc, true)
}

func setActiveHandler(menuSvc *service.MenuService, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r)
		if err != nil {
			http.Error(w, "invalid item id", http.StatusBadRequest)
			return
		}

		if err := menuSvc.SetActive(r.Context(), id, active); err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				http.Error(w, "menu item not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
