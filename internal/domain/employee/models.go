package employee

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Employee struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	CUIL        string    `json:"cuil"`
	HireDate    time.Time `json:"fechaIngreso"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
