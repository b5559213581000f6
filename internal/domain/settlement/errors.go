package settlement

import "errors"

var (
	ErrNotFound        = errors.New("settlement not found")
	ErrItemNotFound    = errors.New("settlement item not found")
	ErrItemReadOnly    = errors.New("derived settlement rows are read-only")
	ErrBrokenReference = errors.New("seniority/attendance row references a missing principal item")
	ErrMissingRequired = errors.New("settlement is missing required fields")
	ErrAlreadySaved    = errors.New("settlement revision is already saved")
)
