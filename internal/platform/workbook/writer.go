package workbook

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/glbank-reconciler/internal/config"
	"github.com/glbank-reconciler/internal/domain/outstanding"
	"github.com/glbank-reconciler/internal/domain/shared"
)

// Report column layouts. The orders are fixed output contracts.
var (
	glVsBankHeaders = []string{
		"Key_Transaction Number", "GL_CO", "GL_AU", "GL_Acct", "GL_Sub Acct",
		"GL_Project", "GL_Period Name", "Key_Type", "GL_Accounted Sum",
		"Bnk_TRN status", "Bnk_Value date", "Bnk_Credit amount",
		"Bnk_Debit amount", "Bnk_Accounted Sum", "Bnk_Time", "Bnk_Post date",
		"Bnk_Comparsion_Key", "variance", "comment",
	}
	outstandingHeaders = []string{
		"Check number", "Date posted", "Vendor Name", "Amount", "Cleared?",
		"Bank reference", "Customer reference", "TRN TYPE", "TRN status",
		"Value date", "Credit amount", "Debit amount", "Time", "Post date",
		"comparsion_key", "variance", "updated status",
	}
)

// Writer renders a run result as a styled xlsx report.
type Writer struct {
	cfg    config.WorkbookConfig
	logger *slog.Logger
}

func NewWriter(cfg config.WorkbookConfig, logger *slog.Logger) *Writer {
	return &Writer{cfg: cfg, logger: logger}
}

// WriteReport produces the three-sheet report: the summary pivots, the
// matched GL-vs-bank table with comment highlighting, and the consolidated
// outstanding-checks ledger.
func (w *Writer) WriteReport(result *shared.RunResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writePivotSheet(f, result); err != nil {
		return fmt.Errorf("write pivot sheet: %w", err)
	}
	if err := w.writeMatchedSheet(f, result.Matched); err != nil {
		return fmt.Errorf("write matched sheet: %w", err)
	}
	if err := w.writeOutstandingSheet(f, result.Outstanding); err != nil {
		return fmt.Errorf("write outstanding sheet: %w", err)
	}

	// The default sheet excelize creates is replaced by the pivot sheet.
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}
	w.logger.Info("report written", "path", path, "run_id", result.RunID.String())
	return nil
}

func (w *Writer) writePivotSheet(f *excelize.File, result *shared.RunResult) error {
	sheet := w.cfg.PivotSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Font: &excelize.Font{Bold: true, Color: "FBEFEF"},
	})
	if err != nil {
		return err
	}

	row := 1
	row, err = writePivotBlock(f, sheet, row, headerStyle, "Bank Pivot",
		[]string{"TRN TYPE", "Banking Credit amount", "Banking Debit amount", "Banking sum Cr Dr"},
		result.BankPivot)
	if err != nil {
		return err
	}
	row, err = writePivotBlock(f, sheet, row, headerStyle, "GL Pivot",
		[]string{"Type", "GL Accounted CR", "GL Accounted DR", "GL sum Accounted Cr Dr"},
		result.GLPivot)
	if err != nil {
		return err
	}
	return writeDifferenceBlock(f, sheet, row, headerStyle, result.Differences)
}

// writePivotBlock writes one titled pivot table and returns the row index
// following the block and its spacing.
func writePivotBlock(f *excelize.File, sheet string, row, headerStyle int, title string, headers []string, pivot shared.Pivot) (int, error) {
	if err := f.SetCellValue(sheet, cellRef(1, row), title); err != nil {
		return 0, err
	}
	row++

	if err := writeRow(f, sheet, row, toAny(headers)); err != nil {
		return 0, err
	}
	if err := styleRow(f, sheet, row, len(headers), headerStyle); err != nil {
		return 0, err
	}
	row++

	for _, p := range pivot.Rows {
		if err := writeRow(f, sheet, row, []any{p.Label, num(p.Credit), num(p.Debit), num(p.Net)}); err != nil {
			return 0, err
		}
		row++
	}
	t := pivot.Total
	if err := writeRow(f, sheet, row, []any{t.Label, num(t.Credit), num(t.Debit), num(t.Net)}); err != nil {
		return 0, err
	}

	// Two spacer rows between blocks.
	return row + 3, nil
}

func writeDifferenceBlock(f *excelize.File, sheet string, row, headerStyle int, grid shared.DifferenceGrid) error {
	if err := f.SetCellValue(sheet, cellRef(1, row), "Difference"); err != nil {
		return err
	}
	row++

	headers := []string{"Type", "Bank Sum", "GL Sum", "Difference"}
	if err := writeRow(f, sheet, row, toAny(headers)); err != nil {
		return err
	}
	if err := styleRow(f, sheet, row, len(headers), headerStyle); err != nil {
		return err
	}
	row++

	for _, d := range grid.Rows {
		if err := writeRow(f, sheet, row, []any{d.Label, num(d.BankNet), num(d.GLNet), num(d.Difference)}); err != nil {
			return err
		}
		row++
	}
	t := grid.Total
	return writeRow(f, sheet, row, []any{t.Label, num(t.BankNet), num(t.GLNet), num(t.Difference)})
}

func (w *Writer) writeMatchedSheet(f *excelize.File, matched []shared.MatchedRecord) error {
	sheet := w.cfg.GLVsBankSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2F5496"}},
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
	})
	if err != nil {
		return err
	}

	commentStyles, err := newCommentStyles(f)
	if err != nil {
		return err
	}

	if err := writeRow(f, sheet, 1, toAny(glVsBankHeaders)); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(glVsBankHeaders), headerStyle); err != nil {
		return err
	}

	for i, m := range matched {
		row := i + 2
		values := make([]any, len(glVsBankHeaders))
		values[0] = m.TransactionNumber()
		if m.GL != nil {
			values[1] = m.GL.Company
			values[2] = m.GL.BusinessUnit
			values[3] = m.GL.Account
			values[4] = m.GL.SubAccount
			values[5] = m.GL.Project
			values[6] = m.GL.PeriodName
			values[8] = num(m.GL.AccountedSum)
		}
		values[7] = m.Type
		if m.Bank != nil {
			values[9] = m.Bank.Status
			values[10] = m.Bank.ValueDate
			values[11] = num(m.Bank.CreditAmount)
			values[12] = num(m.Bank.DebitAmount)
			values[13] = num(m.Bank.NetAmount())
			values[14] = m.Bank.Time
			values[15] = m.Bank.PostDate
			values[16] = m.Bank.ComparisonKey
		}
		values[17] = num(m.Variance)
		values[18] = string(m.Comment)

		if err := writeRow(f, sheet, row, values); err != nil {
			return err
		}
		if style, ok := commentStyles[m.Comment]; ok {
			ref := cellRef(len(glVsBankHeaders), row)
			if err := f.SetCellStyle(sheet, ref, ref, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) writeOutstandingSheet(f *excelize.File, entries []outstanding.Entry) error {
	sheet := w.cfg.OutstandingOutSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2F5496"}},
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
	})
	if err != nil {
		return err
	}

	if err := writeRow(f, sheet, 1, toAny(outstandingHeaders)); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, len(outstandingHeaders), headerStyle); err != nil {
		return err
	}

	for i, e := range entries {
		row := i + 2
		values := make([]any, len(outstandingHeaders))
		values[0] = e.CheckNumber
		values[1] = e.DatePosted
		values[2] = e.VendorName
		values[3] = num(e.Amount)
		values[4] = e.Cleared
		if e.Bank != nil {
			values[5] = e.Bank.BankReference
			values[6] = e.Bank.CustomerReference
			values[7] = e.Bank.TrnType
			values[8] = e.Bank.Status
			values[9] = e.Bank.ValueDate
			values[10] = num(e.Bank.CreditAmount)
			values[11] = num(e.Bank.DebitAmount)
			values[12] = e.Bank.Time
			values[13] = e.Bank.PostDate
			values[14] = e.Bank.ComparisonKey
		} else {
			// Missing amount-like fields render as zero, not blank.
			values[10] = 0.0
			values[11] = 0.0
		}
		if e.Variance != nil {
			values[15] = num(*e.Variance)
		}
		values[16] = e.UpdatedStatus

		if err := writeRow(f, sheet, row, values); err != nil {
			return err
		}
	}
	return nil
}

// newCommentStyles builds the comment-cell highlight per outcome: green for
// full matches, yellow for amount mismatches, blue for checks the bank has
// not seen, red for bank activity missing from the GL.
func newCommentStyles(f *excelize.File) (map[shared.Comment]int, error) {
	colors := map[shared.Comment]struct{ fill, font string }{
		shared.CommentFullMatch:    {"008000", "FFFFFF"},
		shared.CommentPartialMatch: {"FFFF00", "000000"},
		shared.CommentGLYesBankNo:  {"0000FF", "FFFFFF"},
		shared.CommentGLNoBankYes:  {"FF0000", "FFFFFF"},
	}

	styles := make(map[shared.Comment]int, len(colors))
	for comment, c := range colors {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{c.fill}},
			Font: &excelize.Font{Color: c.font},
		})
		if err != nil {
			return nil, err
		}
		styles[comment] = style
	}
	return styles, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	return f.SetSheetRow(sheet, cellRef(1, row), &values)
}

func styleRow(f *excelize.File, sheet string, row, width, style int) error {
	return f.SetCellStyle(sheet, cellRef(1, row), cellRef(width, row), style)
}

func cellRef(col, row int) string {
	ref, _ := excelize.CoordinatesToCellName(col, row)
	return ref
}

func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
