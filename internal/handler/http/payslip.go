package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SandeDesign/alloon-sub000/internal/domain/payslip"
	"github.com/SandeDesign/alloon-sub000/internal/handler/http/response"
)

type PayslipHandler interface {
	GeneratePeriodPayslips(w http.ResponseWriter, r *http.Request)
	RegeneratePayslip(w http.ResponseWriter, r *http.Request)
	ListEmployeePayslips(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payslipService payslip.PayslipService
}

func NewPayslipHandler(payslipService payslip.PayslipService) PayslipHandler {
	return &payslipHandlerImpl{payslipService: payslipService}
}

func (h *payslipHandlerImpl) GeneratePeriodPayslips(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Period ID")
	if !ok {
		return
	}

	result, err := h.payslipService.GenerateForPeriod(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("Generated %d payslips, %d failed", result.Generated, result.Failed), result)
}

// RegeneratePayslip answers 503 with the saved record when only the rendering step failed.
func (h *payslipHandlerImpl) RegeneratePayslip(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Calculation ID")
	if !ok {
		return
	}

	result, err := h.payslipService.RegeneratePayslip(r.Context(), id)
	if err != nil {
		if errors.Is(err, payslip.ErrRenderFailed) && result.ID != "" {
			response.ServiceUnavailableWithData(w, "Payslip saved but rendering failed", result)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip generated", result)
}

func (h *payslipHandlerImpl) ListEmployeePayslips(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := uuidParam(w, r, "employeeId", "Employee ID")
	if !ok {
		return
	}
	year, ok := yearQuery(w, r)
	if !ok {
		return
	}

	result, err := h.payslipService.ListPayslips(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payslipHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Payslip ID")
	if !ok {
		return
	}

	result, err := h.payslipService.GetPayslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payslipHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Payslip ID")
	if !ok {
		return
	}

	rc, filename, err := h.payslipService.DownloadPayslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	response.Attachment(w, r, response.ContentTypePDF, filename, -1, rc)
}
