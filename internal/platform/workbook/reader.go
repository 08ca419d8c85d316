// Package workbook is the spreadsheet boundary of the reconciler: it reads
// the GL, bank and outstanding-check extracts into typed records and renders
// the run result as a styled multi-sheet report. The reconciliation core
// never touches a spreadsheet directly.
package workbook

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/glbank-reconciler/internal/config"
	"github.com/glbank-reconciler/internal/domain/bank"
	"github.com/glbank-reconciler/internal/domain/gl"
	"github.com/glbank-reconciler/internal/domain/outstanding"
	"github.com/glbank-reconciler/internal/domain/shared"
)

// Input table names used in error reporting.
const (
	glTable          = "GL"
	bankTable        = "Bank"
	outstandingTable = "Outstanding Checks"
)

// Required column headers of the three input sheets. These match the
// upstream extract layouts verbatim.
var (
	glColumns = []string{
		"CO", "AU", "Acct", "Sub Acct", "Project", "Period Name", "Source",
		"Journal Name", "Batch Name", "Description",
		"Entered DR", "Entered CR", "Accounted DR", "Accounted CR",
		"Transaction Number", "Transaction Date", "Transaction Amount",
		"Party Number", "Party Name", "Accounted Sum",
	}
	bankColumns = []string{
		"Bank reference", "Customer reference", "TRN TYPE", "TRN status",
		"Value date", "Credit amount", "Debit amount", "Time", "Post date",
	}
	outstandingColumns = []string{
		"Check number", "Date posted", "Vendor Name", "Amount", "Cleared?",
	}
)

// Reader loads reconciliation inputs from xlsx workbooks.
type Reader struct {
	cfg    config.WorkbookConfig
	logger *slog.Logger
}

func NewReader(cfg config.WorkbookConfig, logger *slog.Logger) *Reader {
	return &Reader{cfg: cfg, logger: logger}
}

// ReadRunInput loads one run's three tables. The GL workbook carries both
// the GL extract and the prior outstanding-checks sheet; the bank statement
// is its own workbook.
func (r *Reader) ReadRunInput(glPath, bankPath string) (*shared.RunInput, error) {
	glFile, err := excelize.OpenFile(glPath)
	if err != nil {
		return nil, fmt.Errorf("open gl workbook %s: %w", glPath, err)
	}
	defer glFile.Close()

	bankFile, err := excelize.OpenFile(bankPath)
	if err != nil {
		return nil, fmt.Errorf("open bank workbook %s: %w", bankPath, err)
	}
	defer bankFile.Close()

	glRecords, err := r.ReadGL(glFile, r.cfg.GLSheet)
	if err != nil {
		return nil, err
	}
	bankRecords, err := r.ReadBank(bankFile, r.cfg.BankSheet)
	if err != nil {
		return nil, err
	}
	prior, err := r.ReadOutstanding(glFile, r.cfg.OutstandingSheet)
	if err != nil {
		return nil, err
	}

	r.logger.Info("run input loaded",
		"gl_records", len(glRecords),
		"bank_records", len(bankRecords),
		"prior_outstanding", len(prior),
	)
	return &shared.RunInput{GL: glRecords, Bank: bankRecords, Outstanding: prior}, nil
}

// ReadGL reads the GL extract sheet into records.
func (r *Reader) ReadGL(f *excelize.File, sheet string) ([]gl.Record, error) {
	rows, cols, err := readSheet(f, sheet, glTable, glColumns)
	if err != nil {
		return nil, err
	}

	records := make([]gl.Record, 0, len(rows))
	for _, row := range rows {
		rec := gl.Record{
			Company:           cell(row, cols["CO"]),
			BusinessUnit:      cell(row, cols["AU"]),
			Account:           cell(row, cols["Acct"]),
			SubAccount:        cell(row, cols["Sub Acct"]),
			Project:           cell(row, cols["Project"]),
			PeriodName:        cell(row, cols["Period Name"]),
			Source:            cell(row, cols["Source"]),
			JournalName:       cell(row, cols["Journal Name"]),
			BatchName:         cell(row, cols["Batch Name"]),
			Description:       cell(row, cols["Description"]),
			TransactionNumber: cell(row, cols["Transaction Number"]),
			TransactionDate:   cell(row, cols["Transaction Date"]),
			PartyNumber:       cell(row, cols["Party Number"]),
			PartyName:         cell(row, cols["Party Name"]),
		}

		amounts := []struct {
			column string
			target *decimal.Decimal
		}{
			{"Entered DR", &rec.EnteredDR},
			{"Entered CR", &rec.EnteredCR},
			{"Accounted DR", &rec.AccountedDR},
			{"Accounted CR", &rec.AccountedCR},
			{"Transaction Amount", &rec.TransactionAmount},
			{"Accounted Sum", &rec.AccountedSum},
		}
		for _, a := range amounts {
			if *a.target, err = parseAmount(glTable, a.column, cell(row, cols[a.column])); err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadBank reads the bank statement sheet into records. Transaction types
// stay raw; normalization happens inside the run.
func (r *Reader) ReadBank(f *excelize.File, sheet string) ([]bank.Record, error) {
	rows, cols, err := readSheet(f, sheet, bankTable, bankColumns)
	if err != nil {
		return nil, err
	}

	records := make([]bank.Record, 0, len(rows))
	for _, row := range rows {
		rec := bank.Record{
			BankReference:     cell(row, cols["Bank reference"]),
			CustomerReference: cell(row, cols["Customer reference"]),
			TrnType:           cell(row, cols["TRN TYPE"]),
			Status:            cell(row, cols["TRN status"]),
			ValueDate:         cell(row, cols["Value date"]),
			Time:              cell(row, cols["Time"]),
			PostDate:          cell(row, cols["Post date"]),
		}
		if rec.CreditAmount, err = parseAmount(bankTable, "Credit amount", cell(row, cols["Credit amount"])); err != nil {
			return nil, err
		}
		if rec.DebitAmount, err = parseAmount(bankTable, "Debit amount", cell(row, cols["Debit amount"])); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadOutstanding reads the prior outstanding-checks sheet.
func (r *Reader) ReadOutstanding(f *excelize.File, sheet string) ([]outstanding.PriorEntry, error) {
	rows, cols, err := readSheet(f, sheet, outstandingTable, outstandingColumns)
	if err != nil {
		return nil, err
	}

	entries := make([]outstanding.PriorEntry, 0, len(rows))
	for _, row := range rows {
		entry := outstanding.PriorEntry{
			CheckNumber: cell(row, cols["Check number"]),
			DatePosted:  cell(row, cols["Date posted"]),
			VendorName:  cell(row, cols["Vendor Name"]),
			Cleared:     cell(row, cols["Cleared?"]),
		}
		if entry.Amount, err = parseAmount(outstandingTable, "Amount", cell(row, cols["Amount"])); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// readSheet returns the data rows and a header-name index for the sheet,
// after verifying every required column is present. All missing columns are
// reported in one error.
func readSheet(f *excelize.File, sheet, table string, required []string) ([][]string, map[string]int, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, &shared.MissingColumnsError{Table: table, Columns: required}
	}

	cols := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		cols[header] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &shared.MissingColumnsError{Table: table, Columns: missing}
	}

	return rows[1:], cols, nil
}

// cell returns the trimmed-by-excelize cell value, tolerating short rows:
// trailing empty cells are omitted by the xlsx format.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseAmount coerces a monetary cell. Empty cells are zero; anything else
// must parse as a decimal or the whole read aborts.
func parseAmount(table, column, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, &shared.TypeCoercionError{Table: table, Column: column, Value: value, Err: err}
	}
	return d, nil
}
