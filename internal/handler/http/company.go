package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/company"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/handler/http/response"
)

// CompanyHandler serves the tenant settings pages.
type CompanyHandler interface {
	GetMyCompany(w http.ResponseWriter, r *http.Request)
	UpdateMyCompany(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
	GetKioskPin(w http.ResponseWriter, r *http.Request)
	UpdateKioskPin(w http.ResponseWriter, r *http.Request)
	IssueKioskToken(w http.ResponseWriter, r *http.Request)
	RevokeKioskTokens(w http.ResponseWriter, r *http.Request)
}

type companyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &companyHandlerImpl{companyService: companyService}
}

func (h *companyHandlerImpl) GetMyCompany(w http.ResponseWriter, r *http.Request) {
	result, err := h.companyService.GetMyCompany(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *companyHandlerImpl) UpdateMyCompany(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.companyService.UpdateMyCompany(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Company updated successfully", result)
}

func (h *companyHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req company.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.companyService.ChangePassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Password changed successfully", nil)
}

func (h *companyHandlerImpl) GetKioskPin(w http.ResponseWriter, r *http.Request) {
	result, err := h.companyService.GetKioskPin(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *companyHandlerImpl) UpdateKioskPin(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateKioskPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.companyService.UpdateKioskPin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Kiosk PIN updated successfully", result)
}

func (h *companyHandlerImpl) IssueKioskToken(w http.ResponseWriter, r *http.Request) {
	result, err := h.companyService.IssueKioskToken(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Kiosk token issued", result)
}

func (h *companyHandlerImpl) RevokeKioskTokens(w http.ResponseWriter, r *http.Request) {
	if err := h.companyService.RevokeKioskTokens(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Kiosk tokens revoked", nil)
}
