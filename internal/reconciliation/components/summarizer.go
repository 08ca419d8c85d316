package components

import (
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/glbank-reconciler/internal/domain/bank"
	"github.com/glbank-reconciler/internal/domain/gl"
	"github.com/glbank-reconciler/internal/domain/shared"
	"github.com/glbank-reconciler/internal/reconciliation/service"
)

type CategorySummarizerImpl struct {
	logger *slog.Logger
}

func NewCategorySummarizer(logger *slog.Logger) service.CategorySummarizer {
	return &CategorySummarizerImpl{logger: logger}
}

// Summarize builds the bank pivot, the GL pivot and the difference grid.
// The bank net is credit + debit (statement debits arrive sign-normalized),
// the GL net is accounted debit - accounted credit, and the grid difference
// is bank net - GL net per category over the union of both label sets.
func (s *CategorySummarizerImpl) Summarize(classifiedGL []gl.Record, bankRecords []bank.Record) (shared.Pivot, shared.Pivot, shared.DifferenceGrid) {
	bankPivot := pivotBank(bankRecords)
	glPivot := pivotGL(classifiedGL)
	grid := differenceGrid(bankPivot, glPivot)

	s.logger.Info("category summaries built",
		"bank_categories", len(bankPivot.Rows),
		"gl_categories", len(glPivot.Rows),
		"grid_rows", len(grid.Rows),
	)
	return bankPivot, glPivot, grid
}

func pivotBank(records []bank.Record) shared.Pivot {
	credits := make(map[string]decimal.Decimal)
	debits := make(map[string]decimal.Decimal)
	for _, r := range records {
		credits[r.TrnType] = credits[r.TrnType].Add(r.CreditAmount)
		debits[r.TrnType] = debits[r.TrnType].Add(r.DebitAmount)
	}

	pivot := shared.Pivot{Rows: make([]shared.PivotRow, 0, len(credits))}
	pivot.Total = shared.PivotRow{Label: shared.TotalLabel}
	for _, label := range sortedLabels(credits) {
		row := shared.PivotRow{
			Label:  label,
			Credit: credits[label],
			Debit:  debits[label],
			Net:    credits[label].Add(debits[label]),
		}
		pivot.Rows = append(pivot.Rows, row)
		pivot.Total.Credit = pivot.Total.Credit.Add(row.Credit)
		pivot.Total.Debit = pivot.Total.Debit.Add(row.Debit)
		pivot.Total.Net = pivot.Total.Net.Add(row.Net)
	}
	return pivot
}

func pivotGL(records []gl.Record) shared.Pivot {
	credits := make(map[string]decimal.Decimal)
	debits := make(map[string]decimal.Decimal)
	for _, r := range records {
		label := string(r.Category)
		credits[label] = credits[label].Add(r.AccountedCR)
		debits[label] = debits[label].Add(r.AccountedDR)
	}

	pivot := shared.Pivot{Rows: make([]shared.PivotRow, 0, len(credits))}
	pivot.Total = shared.PivotRow{Label: shared.TotalLabel}
	for _, label := range sortedLabels(credits) {
		row := shared.PivotRow{
			Label:  label,
			Credit: credits[label],
			Debit:  debits[label],
			Net:    debits[label].Sub(credits[label]),
		}
		pivot.Rows = append(pivot.Rows, row)
		pivot.Total.Credit = pivot.Total.Credit.Add(row.Credit)
		pivot.Total.Debit = pivot.Total.Debit.Add(row.Debit)
		pivot.Total.Net = pivot.Total.Net.Add(row.Net)
	}
	return pivot
}

func differenceGrid(bankPivot, glPivot shared.Pivot) shared.DifferenceGrid {
	labels := make(map[string]struct{}, len(bankPivot.Rows)+len(glPivot.Rows))
	for _, r := range bankPivot.Rows {
		labels[r.Label] = struct{}{}
	}
	for _, r := range glPivot.Rows {
		labels[r.Label] = struct{}{}
	}

	union := make([]string, 0, len(labels))
	for label := range labels {
		union = append(union, label)
	}
	sort.Strings(union)

	grid := shared.DifferenceGrid{Rows: make([]shared.DifferenceRow, 0, len(union))}
	grid.Total = shared.DifferenceRow{Label: shared.TotalLabel}
	for _, label := range union {
		row := shared.DifferenceRow{Label: label}
		if bankRow, ok := bankPivot.Row(label); ok {
			row.BankNet = bankRow.Net
		}
		if glRow, ok := glPivot.Row(label); ok {
			row.GLNet = glRow.Net
		}
		row.Difference = row.BankNet.Sub(row.GLNet)

		grid.Rows = append(grid.Rows, row)
		grid.Total.BankNet = grid.Total.BankNet.Add(row.BankNet)
		grid.Total.GLNet = grid.Total.GLNet.Add(row.GLNet)
		grid.Total.Difference = grid.Total.Difference.Add(row.Difference)
	}
	return grid
}

func sortedLabels(m map[string]decimal.Decimal) []string {
	labels := make([]string, 0, len(m))
	for label := range m {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
