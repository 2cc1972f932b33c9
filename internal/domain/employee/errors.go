package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidTaxTable  = errors.New("tax table must be white or green")
)
