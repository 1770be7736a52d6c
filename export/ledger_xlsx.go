package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"pmis/billing"
)

const (
	ledgerSheet = "Ledger"
	billSheet   = "Bill"
)

// LedgerWorkbook writes the bill particulars and its ledger into a workbook.
func LedgerWorkbook(snap billing.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ledgerSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(billSheet); err != nil {
		return nil, err
	}
	_ = f.SetDocProps(&excelize.DocProperties{
		Creator: "pmis",
		Title:   "RA bill " + snap.Input.BillNo,
	})

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 4})
	if err != nil {
		return nil, err
	}

	headers := []string{"Line", "Particulars", "Amount", "Deduction"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(ledgerSheet, cell, h)
	}
	_ = f.SetCellStyle(ledgerSheet, "A1", "D1", bold)

	rowIdx := 2
	write := func(ln billing.LedgerLine, label string, strong bool) {
		values := []any{string(ln.Kind), label, ln.Amount.InexactFloat64(), ln.Deduction}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			_ = f.SetCellValue(ledgerSheet, cell, v)
		}
		amountCell, _ := excelize.CoordinatesToCellName(3, rowIdx)
		style := money
		if strong {
			style = bold
		}
		_ = f.SetCellStyle(ledgerSheet, amountCell, amountCell, style)
		rowIdx++
	}

	ledger := billing.BuildLedger(snap.Input, snap.Summary)
	for _, ln := range ledger.Lines {
		write(ln, ln.Label, ln.Subtotal || ln.Emphasis)
		for _, c := range ln.Components {
			write(c, "  "+c.Label, false)
		}
	}
	_ = f.SetColWidth(ledgerSheet, "B", "B", 48)
	_ = f.SetColWidth(ledgerSheet, "C", "C", 18)

	in := snap.Input
	particulars := [][2]string{
		{"RA bill no.", in.BillNo},
		{"Project", snap.Project.DisplayName()},
		{"Contractor / vendor", snap.Counterparty.DisplayName()},
		{"Work order no.", in.WorkOrderNo},
		{"Invoice no.", in.InvoiceNo},
		{"Period start", in.PeriodStart},
		{"Period end", in.PeriodEnd},
		{"Submission date", in.SubmissionDate},
		{"Withholding category", string(in.WithholdingCategory)},
	}
	for i, p := range particulars {
		_ = f.SetCellValue(billSheet, fmt.Sprintf("A%d", i+1), p[0])
		_ = f.SetCellValue(billSheet, fmt.Sprintf("B%d", i+1), p[1])
	}
	_ = f.SetColWidth(billSheet, "A", "B", 28)

	return f, nil
}

// LedgerXLSX returns the workbook as .xlsx bytes.
func LedgerXLSX(snap billing.Snapshot) ([]byte, error) {
	f, err := LedgerWorkbook(snap)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}
