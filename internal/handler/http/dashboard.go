package http

import (
	"net/http"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns the day's attendance counts and month-to-date payment totals
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /hr/dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date") // format: YYYY-MM-DD, default: today

	result, err := h.dashboardService.GetDashboard(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
