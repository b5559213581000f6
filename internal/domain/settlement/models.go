package settlement

import "time"

// All monetary and percentage values travel as Argentine-format decimal
// strings ("." thousands, "," decimals). Arithmetic happens on
// decimal.Decimal inside calc.go; fields here hold the formatted result.

type Settlement struct {
	ID                    string                `json:"id"`
	EmployeeID            string                `json:"employeeId"`
	Period                string                `json:"periodo"`
	SettlementDate        time.Time             `json:"fecha"`
	BasicSalary           string                `json:"basicSalary"`
	PresentismoPercentage string                `json:"presentismoPercentage"`
	RemunerativeItems     []RemunerativeItem    `json:"remunerativeItems"`
	NonRemunerativeItems  []NonRemunerativeItem `json:"nonRemunerativeItems"`
	DeductionItems        []DeductionItem       `json:"deducciones"`

	// Derived on every Recompute. Stored redundantly so lists, reports and
	// the recibo PDF can render without re-running the engine.
	SeniorityYears       int    `json:"seniorityYears"`
	SeniorityAmount      string `json:"seniorityAmount"`
	PresentismoAmount    string `json:"presentismoAmount"`
	TotalRemunerative    string `json:"totalRemunerative"`
	TotalNonRemunerative string `json:"totalNonRemunerative"`
	TotalDeductions      string `json:"totalDeductions"`
	TotalNet             string `json:"totalNet"`
	GrossPay             string `json:"sueldoBruto"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RemunerativeItem struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Percentage        string `json:"percentage"`
	Amount            string `json:"amount"`
	AppliesPercentage bool   `json:"appliesPercentage"`
}

type NonRemunerativeItem struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Percentage        string `json:"percentage"`
	Amount            string `json:"amount"`
	AppliesPercentage bool   `json:"appliesPercentage"`
	IsSeniorityRow    bool   `json:"isSeniorityRow"`
	IsAttendanceRow   bool   `json:"isAttendanceRow"`
	ReferenceItemID   string `json:"referenceItemId,omitempty"`
}

type DeductionItem struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Percentage             string `json:"percentage"`
	CheckedRemunerative    bool   `json:"checkedRemunerative"`
	CheckedNonRemunerative bool   `json:"checkedNonRemunerative"`
	RemunerativeAmount     string `json:"remunerativeAmount"`
	NonRemunerativeAmount  string `json:"nonRemunerativeAmount"`
}

// ReciboData is everything the PDF renderer needs for one pay slip:
// the fully recomputed settlement plus employer and employee identity.
type ReciboData struct {
	Settlement     Settlement
	CompanyName    string
	CompanyCUIT    string
	CompanyAddress string
	EmployeeName   string
	EmployeeCUIL   string
	EmployeeHire   time.Time
	Category       string
	SubCategory    string
}
