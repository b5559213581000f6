package employee

import "errors"

var (
	ErrNotFound        = errors.New("employee not found")
	ErrInvalidCUIL     = errors.New("invalid CUIL")
	ErrCompanyNotFound = errors.New("company not found")
	ErrHasSettlements  = errors.New("employee still has settlements")
)
