// Package export produces XLSX workbooks from stored extraction records.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"invoice-audit/constants"
	"invoice-audit/internal/money"
	"invoice-audit/internal/store"
)

// Service is a tiny façade over the store that produces XLSX bytes for exports.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

func NewService(st store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, logger: logger}
}

// ExportInvoicesXLSX returns an XLSX workbook (as bytes) with one row per
// stored invoice plus a totals summary row. Totals are summed per the
// record's own currency symbol; unparseable amounts contribute zero.
func (s *Service) ExportInvoicesXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	recs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Invoices"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Filename",
		"Vendor",
		"Invoice Number",
		"Invoice Date",
		"Due Date",
		"Subtotal",
		"VAT",
		"Total",
		"Currency",
		"Score",
		"Status",
		"Issues",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}

	totalsByCurrency := map[string]float64{}
	row := 2
	for _, r := range recs {
		ex := r.Extraction
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, ex.Filename)
		write(2, ex.Sender.CompanyName)
		write(3, ex.InvoiceDetails.InvoiceNumber)
		write(4, ex.InvoiceDetails.InvoiceDate)
		write(5, ex.InvoiceDetails.DueDate)
		write(6, ex.Amounts.Subtotal)
		write(7, ex.Amounts.VatTaxAmount)
		write(8, ex.Amounts.Total)
		write(9, ex.Amounts.Currency)
		write(10, ex.Legitimacy.LegitimacyScore)
		write(11, string(ex.Legitimacy.LegitimacyStatus))
		write(12, truncate(joinLines(ex.Legitimacy.Issues), 140))

		if ex.Amounts.Total != constants.Missing {
			totalsByCurrency[ex.Amounts.Currency] += money.ParseAmount(ex.Amounts.Total)
		}
		row++
	}

	// Totals summary row, one cell per currency seen. Keys are sorted so
	// the same records always produce the same workbook.
	row++
	cell, _ := excelize.CoordinatesToCellName(1, row)
	_ = f.SetCellValue(sheet, cell, "TOTAL")
	currencies := make([]string, 0, len(totalsByCurrency))
	for cur := range totalsByCurrency {
		currencies = append(currencies, cur)
	}
	sort.Strings(currencies)
	for i, cur := range currencies {
		cell, _ := excelize.CoordinatesToCellName(i+2, row)
		_ = f.SetCellValue(sheet, cell, fmt.Sprintf("%s%.2f", cur, totalsByCurrency[cur]))
	}

	_ = f.SetColWidth(sheet, "A", "A", 28) // filename
	_ = f.SetColWidth(sheet, "B", "B", 26) // vendor
	_ = f.SetColWidth(sheet, "C", "E", 16) // number + dates
	_ = f.SetColWidth(sheet, "F", "H", 14) // amounts
	_ = f.SetColWidth(sheet, "K", "K", 14) // status
	_ = f.SetColWidth(sheet, "L", "L", 60) // issues

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func joinLines(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += "; "
		}
		out += s
	}
	return out
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
