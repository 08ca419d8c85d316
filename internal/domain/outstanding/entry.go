// Package outstanding holds the outstanding-checks ledger: the prior-period
// rows supplied as input and the consolidated entries the resolver produces.
package outstanding

import (
	"github.com/shopspring/decimal"

	"github.com/glbank-reconciler/internal/domain/bank"
)

// Clearance statuses assigned by the resolver.
const (
	StatusCleared           = "Check cleared"
	StatusClearedAmountDiff = "Check cleared but difference in transaction amount"
	StatusNotCleared        = "check not cleared"
	StatusNewFromGL         = "Check not cleared. New entries from GL"
)

// PriorEntry is one row of the prior-period outstanding-checks ledger.
type PriorEntry struct {
	CheckNumber string
	DatePosted  string
	VendorName  string
	Amount      decimal.Decimal
	Cleared     string
}

// Entry is one consolidated outstanding-check row. Bank is nil when the
// check never appeared on the statement; Variance is nil in the same case
// because an uncleared check has no amount to compare against.
type Entry struct {
	CheckNumber   string
	DatePosted    string
	VendorName    string
	Amount        decimal.Decimal
	Cleared       string
	Bank          *bank.Record
	Variance      *decimal.Decimal
	UpdatedStatus string
}
