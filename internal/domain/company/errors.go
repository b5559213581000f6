package company

import "errors"

var (
	ErrNotFound      = errors.New("company not found")
	ErrInvalidCUIT   = errors.New("invalid CUIT")
	ErrDuplicateCUIT = errors.New("a company with this CUIT already exists")
	ErrHasEmployees  = errors.New("company still has employees")
)
