package payslip

import "errors"

var (
	ErrPayslipNotFound   = errors.New("payslip not found")
	ErrRenderFailed      = errors.New("payslip document could not be rendered or stored")
	ErrDocumentMissing   = errors.New("payslip has no stored document")
	ErrPayslipNotAllowed = errors.New("payslips can only be generated for calculated, approved or paid calculations")
)
