// Package gl holds the general-ledger side of the reconciliation: the raw
// transaction record, the pre-classification cleaning rules and the
// aggregated group that is matched against the bank statement.
package gl

import (
	"github.com/shopspring/decimal"

	"github.com/glbank-reconciler/internal/domain/category"
)

// Record is one GL transaction line. It is produced by ingestion, mutated
// once by the classifier (which sets Category) and read-only afterwards.
type Record struct {
	Company      string
	BusinessUnit string
	Account      string
	SubAccount   string
	Project      string
	PeriodName   string
	Source       string

	JournalName string
	BatchName   string
	Description string

	EnteredDR   decimal.Decimal
	EnteredCR   decimal.Decimal
	AccountedDR decimal.Decimal
	AccountedCR decimal.Decimal

	TransactionNumber string
	TransactionDate   string
	TransactionAmount decimal.Decimal
	PartyNumber       string
	PartyName         string

	// AccountedSum is the signed accounted amount for the line.
	AccountedSum decimal.Decimal

	// Category is empty until the classifier runs; afterwards every record
	// carries exactly one category.
	Category category.Category
}

// Group is one aggregated GL group: all records sharing the account
// dimensions, transaction number and category, with their accounted sums
// added up. Groups whose sum is exactly zero are dropped by the aggregator.
type Group struct {
	Company           string
	BusinessUnit      string
	Account           string
	SubAccount        string
	Project           string
	PeriodName        string
	Source            string
	TransactionNumber string
	Category          category.Category
	AccountedSum      decimal.Decimal
}
