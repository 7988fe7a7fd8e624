package handler

import (
	"net/http"

	"sazon/internal/service"
)

func IndexHandler(siteSvc *service.SiteConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := siteSvc.Get(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

func MenuHandler(menuSvc *service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := menuSvc.ListActive(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}
