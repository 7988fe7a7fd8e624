package handler

import (
	"errors"
	"net/http"

	"sazon/internal/service"
)

func GetSiteConfigHandler(siteSvc *service.SiteConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := siteSvc.Get(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

// UpdateSiteConfigHandler updates the landing-page branding from a multipart
// form; the "hero_image" file part is optional, empty text fields keep their
// stored values.
func UpdateSiteConfigHandler(siteSvc *service.SiteConfigService, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "invalid form or file too large", http.StatusBadRequest)
			return
		}

		var heroImage string
		if file, hdr, err := r.FormFile("hero_image"); err == nil {
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
			heroImage = path
		}

		cfg, err := siteSvc.Update(r.Context(), r.FormValue("hero_title"), r.FormValue("hero_subtitle"), heroImage)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, cfg)
	}
}
