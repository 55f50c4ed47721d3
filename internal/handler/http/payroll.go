package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-backoffice-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hr-backoffice-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Payments
	ListPayments(w http.ResponseWriter, r *http.Request)
	CreatePayment(w http.ResponseWriter, r *http.Request)
	DeletePayment(w http.ResponseWriter, r *http.Request)

	// Purchases
	ListPurchases(w http.ResponseWriter, r *http.Request)
	CreatePurchase(w http.ResponseWriter, r *http.Request)
	DeletePurchase(w http.ResponseWriter, r *http.Request)

	// Summary and report
	GetMonthlySummary(w http.ResponseWriter, r *http.Request)
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)
	ExportMonthlyReport(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ListPayments handles GET /hr/payments
func (h *payrollHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PaymentFilter{
		EmployeeID: queryString(r, "employee_id"),
		Month:      queryString(r, "month"),
	}

	result, err := h.payrollService.ListPayments(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreatePayment handles POST /hr/payments
func (h *payrollHandlerImpl) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create payment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.CreatePayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payment recorded successfully", result)
}

// DeletePayment handles DELETE /hr/payments/{id}
func (h *payrollHandlerImpl) DeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeletePayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment deleted successfully", nil)
}

// ListPurchases handles GET /hr/purchases
func (h *payrollHandlerImpl) ListPurchases(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PurchaseFilter{
		EmployeeID: queryString(r, "employee_id"),
		Month:      queryString(r, "month"),
	}

	result, err := h.payrollService.ListPurchases(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreatePurchase handles POST /hr/purchases
func (h *payrollHandlerImpl) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create purchase decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.CreatePurchase(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Purchase recorded successfully", result)
}

// DeletePurchase handles DELETE /hr/purchases/{id}
func (h *payrollHandlerImpl) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeletePurchase(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Purchase deleted successfully", nil)
}

// GetMonthlySummary handles GET /hr/employees/{id}/summary
func (h *payrollHandlerImpl) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetMonthlySummary(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthlyReport handles GET /hr/payroll/report
func (h *payrollHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetMonthlyReport(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthlyReport handles GET /hr/payroll/report/export
func (h *payrollHandlerImpl) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	file, err := h.payrollService.ExportMonthlyReport(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Data)
}
