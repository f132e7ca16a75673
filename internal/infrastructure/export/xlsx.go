// Package export renders reports as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/iho/restledger/internal/domain"
)

// XLSXContentType is the media type of the workbooks written here.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const ledgerSheet = "Ledger"

var ledgerHeader = []any{"Date", "Voucher No", "Particulars", "Type", "Remarks", "Ref No", "Debit", "Credit", "Balance", "Dr/Cr"}

// LedgerFilename names the workbook for a ledger report.
func LedgerFilename(r *domain.LedgerReport) string {
	return fmt.Sprintf("ledger_%s_%s_%s.xlsx", r.Account.ID, domain.FormatDate(r.From), domain.FormatDate(r.To))
}

// WriteLedgerReport writes r as a single-sheet workbook: a title row, the
// opening balance, one row per entry and the closing totals.
func WriteLedgerReport(w io.Writer, r *domain.LedgerReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return err
	}

	title := fmt.Sprintf("%s  %s to %s", r.Account.Name, domain.FormatDate(r.From), domain.FormatDate(r.To))
	if err := f.SetCellValue(ledgerSheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetSheetRow(ledgerSheet, "A2", &ledgerHeader); err != nil {
		return err
	}

	row := 3
	opening := []any{domain.FormatDate(r.From), "", "Opening balance", "", "", "", "", "",
		r.Opening.Amount.InexactFloat64(), string(r.Opening.Side)}
	if err := setRow(f, row, opening); err != nil {
		return err
	}

	for _, line := range r.Rows {
		row++
		values := []any{
			domain.FormatDate(line.Date),
			line.VoucherNo,
			line.ParticularsName,
			string(line.Kind),
			line.Remarks,
			line.RefNo,
			line.Debit.InexactFloat64(),
			line.Credit.InexactFloat64(),
			line.Balance.Amount.InexactFloat64(),
			string(line.Balance.Side),
		}
		if err := setRow(f, row, values); err != nil {
			return err
		}
	}

	row++
	closing := []any{domain.FormatDate(r.To), "", "Closing balance", "", "", "",
		r.TotalDebit.InexactFloat64(), r.TotalCredit.InexactFloat64(),
		r.Closing.Amount.InexactFloat64(), string(r.Closing.Side)}
	if err := setRow(f, row, closing); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(ledgerSheet, "G3", fmt.Sprintf("I%d", row), style); err != nil {
		return err
	}

	return f.Write(w)
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(ledgerSheet, cell, &values)
}
