// Package category defines the closed business-classification vocabulary
// shared by the GL classifier, the bank-label normalizer and the summary
// pivots.
package category

// Category is the business classification assigned to a transaction.
type Category string

const (
	ARModule   Category = "AR Module"
	Autodebits Category = "Autodebits"
	Brinks     Category = "Brinks"
	Checks     Category = "Checks"
	EFTPS      Category = "EFTPS"
	Interest   Category = "Interest"
	LNACH      Category = "LN ACH"
	Lockbox    Category = "Lockbox"
	Payroll    Category = "Payroll"
	Return     Category = "Return"
	Square     Category = "Square"
	Stripe     Category = "Stripe"
	Ticketing  Category = "Ticketing"
	VibeeAR    Category = "Vibee AR"
	Wires      Category = "Wires"
	ZBA        Category = "ZBA"

	// NoCategory marks a transaction no classification rule resolved. It is
	// not part of the canonical bank vocabulary.
	NoCategory Category = "NoCategory"
)

// vocabulary lists the canonical bank transaction-type labels in their fixed
// order. Similarity ties during normalization resolve to the earliest label.
var vocabulary = []Category{
	ARModule, Autodebits, Brinks, Checks, EFTPS, Interest, LNACH, Lockbox,
	Payroll, Return, Square, Stripe, Ticketing, VibeeAR, Wires, ZBA,
}

// Vocabulary returns a copy of the canonical label list.
func Vocabulary() []Category {
	out := make([]Category, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// Known reports whether the label is one of the canonical categories.
func Known(c Category) bool {
	for _, v := range vocabulary {
		if v == c {
			return true
		}
	}
	return false
}
