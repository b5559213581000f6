package settlement

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sueldos/internal/moneyfmt"
)

var (
	hundred     = decimal.NewFromInt(100)
	daysPerYear = decimal.NewFromFloat(365.25)
)

// New returns an empty draft settlement with the statutory default
// attendance percentage.
func New(employeeID string) *Settlement {
	return &Settlement{
		ID:                    uuid.NewString(),
		EmployeeID:            employeeID,
		PresentismoPercentage: DefaultPresentismoPercentage,
		Status:                StatusDraft,
	}
}

// YearsOfService counts full years between the seniority start date and the
// reference date, truncating partial years. A start date in the future
// yields zero.
func YearsOfService(start, asOf time.Time) int {
	if start.IsZero() || !start.Before(asOf) {
		return 0
	}
	days := decimal.NewFromInt(int64(asOf.Sub(start).Hours() / 24))
	years := days.Div(daysPerYear).IntPart()
	if years < 0 {
		return 0
	}
	return int(years)
}

// SeniorityAmount is 1% of the basic salary per full year of service.
func SeniorityAmount(basicSalary string, years int) string {
	basic := moneyfmt.Parse(basicSalary)
	return moneyfmt.Format(seniorityOf(basic, years))
}

func seniorityOf(base decimal.Decimal, years int) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(int64(years))).Div(hundred).Round(2)
}

// PresentismoAmount applies the attendance percentage over basic salary
// plus the seniority bonus, not over basic salary alone.
func PresentismoAmount(basicSalary, seniorityAmount, percentage string) string {
	basic := moneyfmt.Parse(basicSalary)
	seniority := moneyfmt.Parse(seniorityAmount)
	pct := moneyfmt.Parse(percentage)
	return moneyfmt.Format(attendanceOf(basic, seniority, pct))
}

func attendanceOf(base, seniority, pct decimal.Decimal) decimal.Decimal {
	return base.Add(seniority).Mul(pct).Div(hundred).Round(2)
}

// AddRemunerativeItem appends a remunerative line. When appliesPercentage
// is set the amount is engine-owned and filled on the next Recompute.
func (s *Settlement) AddRemunerativeItem(name, percentage, amount string, appliesPercentage bool) RemunerativeItem {
	item := RemunerativeItem{
		ID:                uuid.NewString(),
		Name:              name,
		Percentage:        moneyfmt.FormatString(percentage),
		Amount:            moneyfmt.FormatString(amount),
		AppliesPercentage: appliesPercentage,
	}
	s.RemunerativeItems = append(s.RemunerativeItems, item)
	return item
}

// AddNonRemunerativeItem seeds the item triple: the principal plus a
// seniority row and an attendance row linked back to it. Row amounts are
// derived, so they are left for Recompute to fill.
func (s *Settlement) AddNonRemunerativeItem(name, percentage, amount string) []NonRemunerativeItem {
	principal := NonRemunerativeItem{
		ID:         uuid.NewString(),
		Name:       name,
		Percentage: moneyfmt.FormatString(percentage),
		Amount:     moneyfmt.FormatString(amount),
	}
	seniorityRow := NonRemunerativeItem{
		ID:              uuid.NewString(),
		Name:            fmt.Sprintf("%s %s 1%%", SeniorityRowName, name),
		Percentage:      SeniorityRowPercentage,
		IsSeniorityRow:  true,
		ReferenceItemID: principal.ID,
	}
	attendanceRow := NonRemunerativeItem{
		ID:              uuid.NewString(),
		Name:            fmt.Sprintf("%s %s", PresentismoRowName, name),
		Percentage:      s.PresentismoPercentage,
		IsAttendanceRow: true,
		ReferenceItemID: principal.ID,
	}
	triple := []NonRemunerativeItem{principal, seniorityRow, attendanceRow}
	s.NonRemunerativeItems = append(s.NonRemunerativeItems, triple...)
	return triple
}

// AddDeductionItem appends a deduction line. Manual amounts are fallbacks
// used only while the matching checked flag is off.
func (s *Settlement) AddDeductionItem(name, percentage string, checkedRem, checkedNonRem bool, remAmount, nonRemAmount string) DeductionItem {
	item := DeductionItem{
		ID:                     uuid.NewString(),
		Name:                   name,
		Percentage:             moneyfmt.FormatString(percentage),
		CheckedRemunerative:    checkedRem,
		CheckedNonRemunerative: checkedNonRem,
		RemunerativeAmount:     moneyfmt.FormatString(remAmount),
		NonRemunerativeAmount:  moneyfmt.FormatString(nonRemAmount),
	}
	s.DeductionItems = append(s.DeductionItems, item)
	return item
}

// RemoveRemunerativeItem removes a single line; remunerative items never
// have dependents.
func (s *Settlement) RemoveRemunerativeItem(id string) bool {
	for i, item := range s.RemunerativeItems {
		if item.ID == id {
			s.RemunerativeItems = append(s.RemunerativeItems[:i], s.RemunerativeItems[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveNonRemunerativeItem removes the item and cascades to every row
// whose ReferenceItemID points at it.
func (s *Settlement) RemoveNonRemunerativeItem(id string) bool {
	found := false
	kept := s.NonRemunerativeItems[:0]
	for _, item := range s.NonRemunerativeItems {
		if item.ID == id {
			found = true
			continue
		}
		if item.ReferenceItemID == id {
			continue
		}
		kept = append(kept, item)
	}
	s.NonRemunerativeItems = kept
	return found
}

// RemoveDeductionItem removes a single deduction line.
func (s *Settlement) RemoveDeductionItem(id string) bool {
	for i, item := range s.DeductionItems {
		if item.ID == id {
			s.DeductionItems = append(s.DeductionItems[:i], s.DeductionItems[i+1:]...)
			return true
		}
	}
	return false
}

// SetNonRemunerativeAmount updates a principal item's amount. Derived rows
// pick the change up on the next Recompute.
func (s *Settlement) SetNonRemunerativeAmount(id, amount string) bool {
	for i := range s.NonRemunerativeItems {
		item := &s.NonRemunerativeItems[i]
		if item.ID != id {
			continue
		}
		if item.IsSeniorityRow || item.IsAttendanceRow {
			return false
		}
		item.Amount = moneyfmt.FormatString(amount)
		return true
	}
	return false
}

// Recompute derives every engine-owned amount and the four totals from the
// current line items. The whole settlement is recalculated from scratch on
// every call; nothing incremental is carried over.
//
// seniorityStart is the employee's seniority start date. Years of service
// are measured against the settlement date when present, otherwise now.
func Recompute(s *Settlement, seniorityStart time.Time) error {
	asOf := s.SettlementDate
	if asOf.IsZero() {
		asOf = time.Now()
	}
	years := YearsOfService(seniorityStart, asOf)
	basic := moneyfmt.Parse(s.BasicSalary)
	pct := moneyfmt.Parse(s.PresentismoPercentage)

	seniority := seniorityOf(basic, years)
	attendance := attendanceOf(basic, seniority, pct)

	s.SeniorityYears = years
	s.SeniorityAmount = moneyfmt.Format(seniority)
	s.PresentismoAmount = moneyfmt.Format(attendance)

	totalRem := basic.Round(2).Add(seniority).Add(attendance)
	for i := range s.RemunerativeItems {
		item := &s.RemunerativeItems[i]
		if item.AppliesPercentage {
			item.Amount = moneyfmt.Format(basic.Mul(moneyfmt.Parse(item.Percentage)).Div(hundred).Round(2))
		}
		totalRem = totalRem.Add(moneyfmt.Parse(item.Amount))
	}

	// Non-remunerative rows derive from their principal's own amount, not
	// from the basic salary. Seniority rows must settle before attendance
	// rows: an attendance row reads the fresh seniority amount of its
	// principal.
	principals := make(map[string]decimal.Decimal, len(s.NonRemunerativeItems))
	for i := range s.NonRemunerativeItems {
		item := &s.NonRemunerativeItems[i]
		if item.IsSeniorityRow || item.IsAttendanceRow {
			continue
		}
		if item.AppliesPercentage {
			item.Amount = moneyfmt.Format(basic.Mul(moneyfmt.Parse(item.Percentage)).Div(hundred).Round(2))
		}
		principals[item.ID] = moneyfmt.Parse(item.Amount)
	}

	seniorityRows := make(map[string]decimal.Decimal, len(s.NonRemunerativeItems))
	for i := range s.NonRemunerativeItems {
		item := &s.NonRemunerativeItems[i]
		if !item.IsSeniorityRow {
			continue
		}
		base, ok := principals[item.ReferenceItemID]
		if !ok {
			return fmt.Errorf("item %q: %w", item.Name, ErrBrokenReference)
		}
		amount := seniorityOf(base, years)
		item.Amount = moneyfmt.Format(amount)
		seniorityRows[item.ReferenceItemID] = amount
	}

	for i := range s.NonRemunerativeItems {
		item := &s.NonRemunerativeItems[i]
		if !item.IsAttendanceRow {
			continue
		}
		base, ok := principals[item.ReferenceItemID]
		if !ok {
			return fmt.Errorf("item %q: %w", item.Name, ErrBrokenReference)
		}
		amount := attendanceOf(base, seniorityRows[item.ReferenceItemID], moneyfmt.Parse(item.Percentage))
		item.Amount = moneyfmt.Format(amount)
	}

	// Summation is flat: principals, derived rows and freestanding items
	// all count the same.
	totalNonRem := decimal.Zero
	for _, item := range s.NonRemunerativeItems {
		totalNonRem = totalNonRem.Add(moneyfmt.Parse(item.Amount))
	}

	totalDed := decimal.Zero
	for i := range s.DeductionItems {
		item := &s.DeductionItems[i]
		dpct := moneyfmt.Parse(item.Percentage)
		if item.CheckedRemunerative {
			item.RemunerativeAmount = moneyfmt.Format(totalRem.Mul(dpct).Div(hundred).Round(2))
		}
		if item.CheckedNonRemunerative {
			item.NonRemunerativeAmount = moneyfmt.Format(totalNonRem.Mul(dpct).Div(hundred).Round(2))
		}
		totalDed = totalDed.Add(moneyfmt.Parse(item.RemunerativeAmount))
		totalDed = totalDed.Add(moneyfmt.Parse(item.NonRemunerativeAmount))
	}

	gross := totalRem.Add(totalNonRem)
	s.TotalRemunerative = moneyfmt.Format(totalRem)
	s.TotalNonRemunerative = moneyfmt.Format(totalNonRem)
	s.TotalDeductions = moneyfmt.Format(totalDed)
	s.GrossPay = moneyfmt.Format(gross)
	s.TotalNet = moneyfmt.Format(gross.Sub(totalDed))
	return nil
}

// MissingFields lists the required fields a settlement still lacks before
// it may be saved. Empty slice means the settlement is complete.
func (s *Settlement) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(s.EmployeeID) == "" {
		missing = append(missing, "employeeId")
	}
	if strings.TrimSpace(s.Period) == "" {
		missing = append(missing, "periodo")
	}
	if s.SettlementDate.IsZero() {
		missing = append(missing, "fecha")
	}
	if strings.TrimSpace(s.BasicSalary) == "" {
		missing = append(missing, "basicSalary")
	}
	return missing
}
