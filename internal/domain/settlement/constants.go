package settlement

const (
	StatusDraft = "draft"
	StatusSaved = "saved"

	// Statutory seniority accrual: 1% of the base per full year of service.
	SeniorityRowPercentage = "1"

	DefaultPresentismoPercentage = "8,33"

	SeniorityRowName   = "Antigüedad"
	PresentismoRowName = "Presentismo"
)
