package handler

import (
	"net/http"

	"sazon/internal/service"
)

type dashboardResponse struct {
	Daily   *service.Report `json:"daily"`
	Monthly *service.Report `json:"monthly"`
}

func DashboardHandler(reportSvc *service.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		daily, err := reportSvc.Daily(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		monthly, err := reportSvc.Monthly(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, dashboardResponse{Daily: daily, Monthly: monthly})
	}
}
