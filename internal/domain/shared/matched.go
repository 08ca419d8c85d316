// Package shared defines the types that cross component boundaries: the
// matched GL-vs-bank row, the reconciliation comment taxonomy, the summary
// pivots, run input/output containers and the input error taxonomy.
package shared

import (
	"github.com/shopspring/decimal"

	"github.com/glbank-reconciler/internal/domain/bank"
	"github.com/glbank-reconciler/internal/domain/gl"
)

// Comment classifies the outcome of matching one GL aggregate group against
// one bank record.
type Comment string

const (
	CommentFullMatch    Comment = "Full Match"
	CommentPartialMatch Comment = "Partial Match"
	CommentGLNoBankYes  Comment = "GL No, Bank Yes"
	CommentGLYesBankNo  Comment = "GL Yes, Bank No"
)

// MatchedRecord is one row of the outer join between aggregated GL groups
// and normalized bank records. Exactly one of GL and Bank may be nil; a nil
// side means the row was unmatched on that side. Absence is explicit rather
// than encoded in a sentinel key so unrelated missing rows cannot collide.
type MatchedRecord struct {
	GL   *gl.Group
	Bank *bank.Record

	// Type is the consolidated classification for the row: the GL category
	// when the GL side is present, otherwise the bank transaction type.
	Type string

	// Variance is the GL accounted sum minus the bank net amount, with an
	// absent side contributing zero.
	Variance decimal.Decimal

	Comment Comment
}

// TransactionNumber returns the GL-side join key, or empty when the row was
// unmatched on the GL side.
func (m MatchedRecord) TransactionNumber() string {
	if m.GL == nil {
		return ""
	}
	return m.GL.TransactionNumber
}

// ComparisonKey returns the bank-side join key, or empty when the row was
// unmatched on the bank side.
func (m MatchedRecord) ComparisonKey() string {
	if m.Bank == nil {
		return ""
	}
	return m.Bank.ComparisonKey
}
