package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/SandeDesign/alloon-sub000/internal/domain/payroll"
	"github.com/SandeDesign/alloon-sub000/internal/handler/http/response"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Settings
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	GetTaxTable(w http.ResponseWriter, r *http.Request)

	// Periods
	CreatePeriod(w http.ResponseWriter, r *http.Request)
	ListPeriods(w http.ResponseWriter, r *http.Request)
	GetPeriod(w http.ResponseWriter, r *http.Request)
	DeletePeriod(w http.ResponseWriter, r *http.Request)
	RunCalculation(w http.ResponseWriter, r *http.Request)
	ApprovePeriod(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	SupersedePeriod(w http.ResponseWriter, r *http.Request)
	ExportRegister(w http.ResponseWriter, r *http.Request)

	// Calculations
	ListPeriodCalculations(w http.ResponseWriter, r *http.Request)
	GetCalculation(w http.ResponseWriter, r *http.Request)
	ListEmployeeCalculations(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// uuidParam reads a path parameter and writes a 400 when it is not a UUID.
func uuidParam(w http.ResponseWriter, r *http.Request, name string, label string) (string, bool) {
	id := chi.URLParam(r, name)
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, fmt.Sprintf("%s must be a valid UUID", label), nil)
		return "", false
	}
	return id, true
}

// yearQuery reads the optional ?year= filter.
func yearQuery(w http.ResponseWriter, r *http.Request) (*int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return nil, true
	}
	year, ok := validator.IsValidYear(raw)
	if !ok {
		response.BadRequest(w, "Invalid year parameter", map[string]string{"year": "must be a four digit year"})
		return nil, false
	}
	return &year, true
}

// ========== SETTINGS ==========

func (h *payrollHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetRateSchedule(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateRateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpdateRateSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rate schedule updated", result)
}

func (h *payrollHandlerImpl) GetTaxTable(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.payrollService.GetTaxTable(r.Context()))
}

// ========== PERIODS ==========

func (h *payrollHandlerImpl) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreatePeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll period created", result)
}

func (h *payrollHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter payroll.PeriodFilter
	if status := query.Get("status"); status != "" {
		statuses := []string{
			string(payroll.PeriodStatusDraft), string(payroll.PeriodStatusCalculated),
			string(payroll.PeriodStatusApproved), string(payroll.PeriodStatusPaid),
			string(payroll.PeriodStatusSuperseded),
		}
		if !validator.IsInSlice(status, statuses) {
			response.BadRequest(w, "Invalid status parameter", nil)
			return
		}
		filter.Status = &status
	}

	year, ok := yearQuery(w, r)
	if !ok {
		return
	}
	filter.Year = year

	if page := query.Get("page"); page != "" {
		p, err := strconv.Atoi(page)
		if err != nil {
			response.BadRequest(w, "Invalid page parameter", nil)
			return
		}
		filter.Page = p
	}
	if limit := query.Get("limit"); limit != "" {
		l, err := strconv.Atoi(limit)
		if err != nil {
			response.BadRequest(w, "Invalid limit parameter", nil)
			return
		}
		filter.Limit = l
	}

	result, err := h.payrollService.ListPeriods(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Periods, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) GetPeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Period ID")
	if !ok {
		return
	}

	result, err := h.payrollService.GetPeriod(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Period ID")
	if !ok {
		return
	}

	if err := h.payrollService.DeletePeriod(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll period deleted", nil)
}

func (h *payrollHandlerImpl) RunCalculation(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Period ID")
	if !ok {
		return
	}

	result, err := h.payrollService.RunCalculation(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("Calculated %d employees", result.Calculated), result)
}

func (h *payrollHandlerImpl) ApprovePeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Period ID")
	if !ok {
		return
	}

	result, err := h.payrollService.ApprovePeriod(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll period approved", result)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Period ID")
	if !ok {
		return
	}

	result, err := h.payrollService.MarkPaid(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll period marked as paid", result)
}

func (h *payrollHandlerImpl) SupersedePeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Period ID")
	if !ok {
		return
	}

	result, err := h.payrollService.SupersedePeriod(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll period superseded", result)
}

func (h *payrollHandlerImpl) ExportRegister(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Period ID")
	if !ok {
		return
	}

	content, filename, err := h.payrollService.ExportRegister(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, r, response.ContentTypeXLSX, filename, int64(len(content)), bytes.NewReader(content))
}

// ========== CALCULATIONS ==========

func (h *payrollHandlerImpl) ListPeriodCalculations(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Period ID")
	if !ok {
		return
	}

	result, err := h.payrollService.ListCalculationsByPeriod(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetCalculation(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Calculation ID")
	if !ok {
		return
	}

	result, err := h.payrollService.GetCalculation(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListEmployeeCalculations(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := uuidParam(w, r, "employeeId", "Employee ID")
	if !ok {
		return
	}
	year, ok := yearQuery(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.ListCalculationsByEmployee(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
