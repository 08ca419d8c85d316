package shared

import "github.com/shopspring/decimal"

// TotalLabel names the grand-total row appended to every summary table.
const TotalLabel = "Total"

// PivotRow is one per-category line of a summary pivot. Net follows the
// side's convention: credit + debit for the bank pivot, debit - credit for
// the GL pivot.
type PivotRow struct {
	Label  string
	Credit decimal.Decimal
	Debit  decimal.Decimal
	Net    decimal.Decimal
}

// Pivot is a per-category aggregate with an explicit grand-total row.
type Pivot struct {
	Rows  []PivotRow
	Total PivotRow
}

// Row returns the pivot row for the label, if present.
func (p Pivot) Row(label string) (PivotRow, bool) {
	for _, r := range p.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return PivotRow{}, false
}

// DifferenceRow aligns one category across both pivots. Difference is the
// bank net minus the GL net.
type DifferenceRow struct {
	Label      string
	BankNet    decimal.Decimal
	GLNet      decimal.Decimal
	Difference decimal.Decimal
}

// DifferenceGrid is the category-level comparison of the two pivots over the
// union of their labels, with a grand-total row summing every numeric column.
type DifferenceGrid struct {
	Rows  []DifferenceRow
	Total DifferenceRow
}

// Row returns the grid row for the label, if present.
func (g DifferenceGrid) Row(label string) (DifferenceRow, bool) {
	for _, r := range g.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return DifferenceRow{}, false
}
