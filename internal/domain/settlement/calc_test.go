package settlement

import (
	"errors"
	"testing"
	"time"

	"sueldos/internal/moneyfmt"
)

// The span 2023-06-01 to 2025-06-01 covers the 2024 leap day, so it is 731
// days and lands solidly on two full years under the 365.25 divisor.
var (
	testHireDate       = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	testSettlementDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

func newTestSettlement(basicSalary string) *Settlement {
	s := New("emp-1")
	s.Period = "Mayo 2025"
	s.SettlementDate = testSettlementDate
	s.BasicSalary = basicSalary
	return s
}

func mustRecompute(t *testing.T, s *Settlement) {
	t.Helper()
	if err := Recompute(s, testHireDate); err != nil {
		t.Fatalf("Recompute: %v", err)
	}
}

func TestYearsOfService(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		asOf  time.Time
		want  int
	}{
		{"two years across a leap day", testHireDate, testSettlementDate, 2},
		{"two calendar years without leap day truncates to one", time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), 1},
		{"under a year", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), testSettlementDate, 0},
		{"same day", testSettlementDate, testSettlementDate, 0},
		{"start in the future", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), testSettlementDate, 0},
		{"zero start", time.Time{}, testSettlementDate, 0},
		{"ten years", time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), testSettlementDate, 10},
	}
	for _, tc := range cases {
		if got := YearsOfService(tc.start, tc.asOf); got != tc.want {
			t.Errorf("%s: YearsOfService = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestSeniorityAmount(t *testing.T) {
	if got := SeniorityAmount("200.000,00", 3); got != "6.000,00" {
		t.Fatalf("SeniorityAmount = %q, want 6.000,00", got)
	}
	if got := SeniorityAmount("200.000,00", 0); got != "0,00" {
		t.Fatalf("SeniorityAmount with zero years = %q, want 0,00", got)
	}
}

func TestPresentismoAmount(t *testing.T) {
	// (200.000 + 6.000) * 8,33% = 17.159,80. The base includes seniority.
	if got := PresentismoAmount("200.000,00", "6.000,00", "8,33"); got != "17.159,80" {
		t.Fatalf("PresentismoAmount = %q, want 17.159,80", got)
	}
}

func TestRecomputeEndToEnd(t *testing.T) {
	s := newTestSettlement("100.000,00")
	mustRecompute(t, s)

	if s.SeniorityYears != 2 {
		t.Fatalf("SeniorityYears = %d, want 2", s.SeniorityYears)
	}
	if s.SeniorityAmount != "2.000,00" {
		t.Errorf("SeniorityAmount = %q, want 2.000,00", s.SeniorityAmount)
	}
	if s.PresentismoAmount != "8.496,60" {
		t.Errorf("PresentismoAmount = %q, want 8.496,60", s.PresentismoAmount)
	}
	if s.TotalRemunerative != "110.496,60" {
		t.Errorf("TotalRemunerative = %q, want 110.496,60", s.TotalRemunerative)
	}
	if s.TotalNet != "110.496,60" {
		t.Errorf("TotalNet = %q, want 110.496,60", s.TotalNet)
	}
}

func TestPercentageRemunerativeItem(t *testing.T) {
	s := newTestSettlement("100.000,00")
	s.AddRemunerativeItem("Título", "10", "", true)
	mustRecompute(t, s)

	if got := s.RemunerativeItems[0].Amount; got != "10.000,00" {
		t.Fatalf("item amount = %q, want 10.000,00", got)
	}
	if s.TotalRemunerative != "120.496,60" {
		t.Fatalf("TotalRemunerative = %q, want 120.496,60", s.TotalRemunerative)
	}
}

func TestNonRemunerativeTriple(t *testing.T) {
	s := newTestSettlement("100.000,00")
	triple := s.AddNonRemunerativeItem("Acuerdo 2025", "", "10.000,00")
	if len(triple) != 3 {
		t.Fatalf("triple has %d items, want 3", len(triple))
	}
	mustRecompute(t, s)

	principal, seniorityRow, attendanceRow := s.NonRemunerativeItems[0], s.NonRemunerativeItems[1], s.NonRemunerativeItems[2]
	if !seniorityRow.IsSeniorityRow || seniorityRow.ReferenceItemID != principal.ID {
		t.Fatalf("seniority row not linked to principal: %+v", seniorityRow)
	}
	if !attendanceRow.IsAttendanceRow || attendanceRow.ReferenceItemID != principal.ID {
		t.Fatalf("attendance row not linked to principal: %+v", attendanceRow)
	}
	if seniorityRow.Amount != "200,00" {
		t.Errorf("seniority row amount = %q, want 200,00", seniorityRow.Amount)
	}
	if attendanceRow.Amount != "849,66" {
		t.Errorf("attendance row amount = %q, want 849,66", attendanceRow.Amount)
	}
	if s.TotalNonRemunerative != "11.049,66" {
		t.Errorf("TotalNonRemunerative = %q, want 11.049,66", s.TotalNonRemunerative)
	}
}

func TestPrincipalEditRecomputesRowsInOrder(t *testing.T) {
	s := newTestSettlement("100.000,00")
	triple := s.AddNonRemunerativeItem("Acuerdo 2025", "", "10.000,00")
	mustRecompute(t, s)

	if !s.SetNonRemunerativeAmount(triple[0].ID, "20.000,00") {
		t.Fatal("SetNonRemunerativeAmount on principal returned false")
	}
	mustRecompute(t, s)

	if got := s.NonRemunerativeItems[1].Amount; got != "400,00" {
		t.Errorf("seniority row amount = %q, want 400,00", got)
	}
	// The attendance row reads the already-updated seniority amount:
	// (20.000 + 400) * 8,33% = 1.699,32.
	if got := s.NonRemunerativeItems[2].Amount; got != "1.699,32" {
		t.Errorf("attendance row amount = %q, want 1.699,32", got)
	}
}

func TestDerivedRowAmountsNotDirectlyEditable(t *testing.T) {
	s := newTestSettlement("100.000,00")
	triple := s.AddNonRemunerativeItem("Acuerdo 2025", "", "10.000,00")
	mustRecompute(t, s)

	if s.SetNonRemunerativeAmount(triple[1].ID, "999,99") {
		t.Error("seniority row amount accepted a direct edit")
	}
	if s.SetNonRemunerativeAmount(triple[2].ID, "999,99") {
		t.Error("attendance row amount accepted a direct edit")
	}
}

func TestRemovePrincipalCascades(t *testing.T) {
	s := newTestSettlement("100.000,00")
	first := s.AddNonRemunerativeItem("Acuerdo A", "", "10.000,00")
	s.AddNonRemunerativeItem("Acuerdo B", "", "5.000,00")
	if len(s.NonRemunerativeItems) != 6 {
		t.Fatalf("got %d items, want 6", len(s.NonRemunerativeItems))
	}

	if !s.RemoveNonRemunerativeItem(first[0].ID) {
		t.Fatal("RemoveNonRemunerativeItem returned false")
	}
	if len(s.NonRemunerativeItems) != 3 {
		t.Fatalf("got %d items after cascade, want 3", len(s.NonRemunerativeItems))
	}
	for _, item := range s.NonRemunerativeItems {
		if item.ReferenceItemID == first[0].ID || item.ID == first[0].ID {
			t.Fatalf("item %q survived the cascade", item.Name)
		}
	}
	mustRecompute(t, s)
}

func TestRemoveRemunerativeItemNoCascade(t *testing.T) {
	s := newTestSettlement("100.000,00")
	a := s.AddRemunerativeItem("Título", "10", "", true)
	s.AddRemunerativeItem("Plus fijo", "", "1.000,00", false)

	if !s.RemoveRemunerativeItem(a.ID) {
		t.Fatal("RemoveRemunerativeItem returned false")
	}
	if len(s.RemunerativeItems) != 1 {
		t.Fatalf("got %d items, want 1", len(s.RemunerativeItems))
	}
	if s.RemoveRemunerativeItem("no-such-id") {
		t.Fatal("RemoveRemunerativeItem found a nonexistent id")
	}
}

func TestDeductionContributions(t *testing.T) {
	s := newTestSettlement("100.000,00")
	s.AddDeductionItem("Jubilación", "11", true, false, "", "")
	mustRecompute(t, s)

	// 110.496,60 * 11% = 12.154,626, rounded half-up to 12.154,63.
	ded := s.DeductionItems[0]
	if ded.RemunerativeAmount != "12.154,63" {
		t.Errorf("RemunerativeAmount = %q, want 12.154,63", ded.RemunerativeAmount)
	}
	if s.TotalDeductions != "12.154,63" {
		t.Errorf("TotalDeductions = %q, want 12.154,63", s.TotalDeductions)
	}
	if s.TotalNet != "98.341,97" {
		t.Errorf("TotalNet = %q, want 98.341,97", s.TotalNet)
	}
}

func TestDeductionBothBases(t *testing.T) {
	s := newTestSettlement("100.000,00")
	s.AddNonRemunerativeItem("Acuerdo 2025", "", "10.000,00")
	s.AddDeductionItem("Obra Social", "3", true, true, "", "")
	mustRecompute(t, s)

	ded := s.DeductionItems[0]
	if ded.RemunerativeAmount != "3.314,90" {
		t.Errorf("RemunerativeAmount = %q, want 3.314,90", ded.RemunerativeAmount)
	}
	if ded.NonRemunerativeAmount != "331,49" {
		t.Errorf("NonRemunerativeAmount = %q, want 331,49", ded.NonRemunerativeAmount)
	}
	if s.TotalDeductions != "3.646,39" {
		t.Errorf("TotalDeductions = %q, want 3.646,39", s.TotalDeductions)
	}
}

func TestDeductionManualFallback(t *testing.T) {
	s := newTestSettlement("100.000,00")
	s.AddDeductionItem("Adelanto", "", false, false, "5.000,00", "500,00")
	mustRecompute(t, s)

	ded := s.DeductionItems[0]
	if ded.RemunerativeAmount != "5.000,00" || ded.NonRemunerativeAmount != "500,00" {
		t.Fatalf("manual amounts were overwritten: %q / %q", ded.RemunerativeAmount, ded.NonRemunerativeAmount)
	}
	if s.TotalDeductions != "5.500,00" {
		t.Fatalf("TotalDeductions = %q, want 5.500,00", s.TotalDeductions)
	}
}

func TestNetInvariantUnderMutations(t *testing.T) {
	s := newTestSettlement("100.000,00")

	check := func(step string) {
		t.Helper()
		mustRecompute(t, s)
		rem := moneyfmt.Parse(s.TotalRemunerative)
		nonRem := moneyfmt.Parse(s.TotalNonRemunerative)
		ded := moneyfmt.Parse(s.TotalDeductions)
		net := moneyfmt.Parse(s.TotalNet)
		if !rem.Add(nonRem).Sub(ded).Equal(net) {
			t.Fatalf("%s: net %s != %s + %s - %s", step, s.TotalNet, s.TotalRemunerative, s.TotalNonRemunerative, s.TotalDeductions)
		}
	}

	check("initial")
	rem := s.AddRemunerativeItem("Título", "10", "", true)
	check("add remunerative")
	triple := s.AddNonRemunerativeItem("Acuerdo 2025", "", "10.000,00")
	check("add non-remunerative triple")
	ded := s.AddDeductionItem("Jubilación", "11", true, true, "", "")
	check("add deduction")
	s.SetNonRemunerativeAmount(triple[0].ID, "25.000,00")
	check("edit principal")
	s.BasicSalary = "150.000,00"
	check("edit basic salary")
	s.RemoveRemunerativeItem(rem.ID)
	check("remove remunerative")
	s.RemoveNonRemunerativeItem(triple[0].ID)
	check("remove principal with cascade")
	s.RemoveDeductionItem(ded.ID)
	check("remove deduction")
}

func TestRecomputeBrokenReference(t *testing.T) {
	s := newTestSettlement("100.000,00")
	s.NonRemunerativeItems = append(s.NonRemunerativeItems, NonRemunerativeItem{
		ID:              "orphan",
		Name:            "Antigüedad huérfana 1%",
		Percentage:      SeniorityRowPercentage,
		IsSeniorityRow:  true,
		ReferenceItemID: "gone",
	})
	err := Recompute(s, testHireDate)
	if !errors.Is(err, ErrBrokenReference) {
		t.Fatalf("Recompute error = %v, want ErrBrokenReference", err)
	}
}

func TestMissingFields(t *testing.T) {
	s := New("")
	missing := s.MissingFields()
	if len(missing) != 4 {
		t.Fatalf("MissingFields = %v, want 4 entries", missing)
	}

	s = newTestSettlement("100.000,00")
	if missing := s.MissingFields(); len(missing) != 0 {
		t.Fatalf("MissingFields = %v, want none", missing)
	}
}
