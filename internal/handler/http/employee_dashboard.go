package http

import (
	"net/http"

	empDashboard "github.com/cmlabs-hris/hr-backoffice-go/internal/domain/employee_dashboard"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/handler/http/response"
)

type EmployeeDashboardHandler interface {
	// GetProfile returns the PIN holder's profile and monthly summary
	GetProfile(w http.ResponseWriter, r *http.Request)
}

type employeeDashboardHandlerImpl struct {
	service empDashboard.EmployeeDashboardService
}

func NewEmployeeDashboardHandler(service empDashboard.EmployeeDashboardService) EmployeeDashboardHandler {
	return &employeeDashboardHandlerImpl{service: service}
}

// GetProfile handles GET /employee/profile?company=&pin=&month=
func (h *employeeDashboardHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	req := empDashboard.ProfileRequest{
		CompanyUsername: r.URL.Query().Get("company"),
		Pin:             r.URL.Query().Get("pin"),
		Month:           r.URL.Query().Get("month"),
	}
	if req.CompanyUsername == "" || req.Pin == "" {
		response.BadRequest(w, "company and pin are required", nil)
		return
	}

	result, err := h.service.GetProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
