// Package bank holds the bank-statement side of the reconciliation.
package bank

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NonReference is the bank's marker for statement lines without a usable
// bank reference; the comparison key falls back to the customer reference.
const NonReference = "NONREF"

// Record is one bank statement line. TrnType starts as the raw label from
// the statement and is rewritten to the canonical vocabulary by the key
// normalizer, which also derives ComparisonKey.
type Record struct {
	BankReference     string
	CustomerReference string
	TrnType           string
	Status            string
	ValueDate         string
	CreditAmount      decimal.Decimal
	DebitAmount       decimal.Decimal
	Time              string
	PostDate          string

	// ComparisonKey is the field GL transaction numbers are matched against.
	// It is a deterministic function of TrnType and the two references.
	ComparisonKey string
}

// NetAmount nets the statement line. Credit and debit are added, not
// subtracted: debit entries arrive sign-normalized upstream.
func (r Record) NetAmount() decimal.Decimal {
	return r.CreditAmount.Add(r.DebitAmount)
}

// Clean strips leading zeros from both reference fields so they compare
// equal to GL transaction numbers cleaned the same way. The input slice is
// not modified.
func Clean(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		r.BankReference = stripZeros(r.BankReference)
		r.CustomerReference = stripZeros(r.CustomerReference)
		out[i] = r
	}
	return out
}

func stripZeros(s string) string {
	if s == "" || s == NonReference {
		return s
	}
	stripped := strings.TrimLeft(s, "0")
	if stripped == "" {
		return "0"
	}
	return stripped
}
