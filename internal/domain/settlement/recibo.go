package settlement

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"sueldos/internal/moneyfmt"
)

// GenerateReciboPDF renders the pay slip for a settlement and returns the
// path of the written file. Derived amounts are recomputed right before
// rendering so the PDF never shows stale totals.
func (svc *Service) GenerateReciboPDF(ctx context.Context, settlementID string) (string, error) {
	data, err := svc.store.ReciboData(ctx, settlementID)
	if err != nil {
		return "", err
	}
	if err := Recompute(&data.Settlement, data.EmployeeHire); err != nil {
		return "", err
	}

	if err := os.MkdirAll("storage/recibos", 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join("storage/recibos", settlementID+".pdf")

	pdf := renderRecibo(data)
	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}

// renderRecibo produces the two statutory copies, employer original and
// employee duplicate, each on its own page.
func renderRecibo(data *ReciboData) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	writeReciboCopy(pdf, tr, data, "ORIGINAL")
	writeReciboCopy(pdf, tr, data, "DUPLICADO")
	return pdf
}

func writeReciboCopy(pdf *gofpdf.Fpdf, tr func(string) string, data *ReciboData, copyLabel string) {
	s := data.Settlement

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, tr("Recibo de Haberes"))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, copyLabel)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, tr(data.CompanyName))
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("CUIT: %s    %s", data.CompanyCUIT, data.CompanyAddress)))
	pdf.Ln(8)

	pdf.Cell(0, 6, tr(fmt.Sprintf("Empleado: %s    CUIL: %s", data.EmployeeName, data.EmployeeCUIL)))
	pdf.Ln(5)
	category := data.Category
	if data.SubCategory != "" {
		category = fmt.Sprintf("%s / %s", data.Category, data.SubCategory)
	}
	pdf.Cell(0, 6, tr(fmt.Sprintf("Categoría: %s    Ingreso: %s", category, data.EmployeeHire.Format("02/01/2006"))))
	pdf.Ln(5)
	settlementDate := ""
	if !s.SettlementDate.IsZero() {
		settlementDate = s.SettlementDate.Format("02/01/2006")
	}
	pdf.Cell(0, 6, tr(fmt.Sprintf("Período: %s    Fecha de pago: %s", s.Period, settlementDate)))
	pdf.Ln(8)

	const (
		conceptW = 70.0
		amountW  = 30.0
		rowH     = 5.0
	)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(conceptW, rowH, tr("Concepto"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(amountW, rowH, "Remunerativo", "1", 0, "R", false, 0, "")
	pdf.CellFormat(amountW, rowH, "No Remun.", "1", 0, "R", false, 0, "")
	pdf.CellFormat(amountW, rowH, "Ded. Remun.", "1", 0, "R", false, 0, "")
	pdf.CellFormat(amountW, rowH, "Ded. No Rem.", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	row := func(concept, rem, nonRem, dedRem, dedNonRem string) {
		pdf.CellFormat(conceptW, rowH, tr(concept), "1", 0, "L", false, 0, "")
		pdf.CellFormat(amountW, rowH, rem, "1", 0, "R", false, 0, "")
		pdf.CellFormat(amountW, rowH, nonRem, "1", 0, "R", false, 0, "")
		pdf.CellFormat(amountW, rowH, dedRem, "1", 0, "R", false, 0, "")
		pdf.CellFormat(amountW, rowH, dedNonRem, "1", 1, "R", false, 0, "")
	}

	row("Sueldo Básico", s.BasicSalary, "", "", "")
	row(fmt.Sprintf("%s 1%% - %d años", SeniorityRowName, s.SeniorityYears), s.SeniorityAmount, "", "", "")
	row(fmt.Sprintf("%s %s%%", PresentismoRowName, s.PresentismoPercentage), s.PresentismoAmount, "", "", "")
	for _, item := range s.RemunerativeItems {
		row(item.Name, item.Amount, "", "", "")
	}
	for _, item := range s.NonRemunerativeItems {
		row(item.Name, "", item.Amount, "", "")
	}
	for _, item := range s.DeductionItems {
		row(item.Name, "", "", item.RemunerativeAmount, item.NonRemunerativeAmount)
	}

	// The deductions total splits per base on the subtotals row.
	dedRem := decimal.Zero
	dedNonRem := decimal.Zero
	for _, item := range s.DeductionItems {
		dedRem = dedRem.Add(moneyfmt.Parse(item.RemunerativeAmount))
		dedNonRem = dedNonRem.Add(moneyfmt.Parse(item.NonRemunerativeAmount))
	}
	pdf.SetFont("Helvetica", "B", 9)
	row("Subtotales", s.TotalRemunerative, s.TotalNonRemunerative, moneyfmt.Format(dedRem), moneyfmt.Format(dedNonRem))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Sueldo Bruto: %s    Deducciones: %s    Neto a cobrar: %s", s.GrossPay, s.TotalDeductions, s.TotalNet)))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf(
		"Recibí la suma de %s en concepto de haberes correspondientes al período indicado, dejando constancia de haber recibido un duplicado de este recibo.",
		AmountInWords(s.TotalNet),
	)), "", "L", false)
	pdf.Ln(14)

	pdf.Cell(95, 6, tr("________________________"))
	pdf.Cell(95, 6, tr("________________________"))
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Cell(95, 5, tr("Firma del empleador"))
	pdf.Cell(95, 5, tr("Firma del empleado"))
}
