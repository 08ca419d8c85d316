package components

import (
	"log/slog"

	"github.com/glbank-reconciler/internal/domain/bank"
	"github.com/glbank-reconciler/internal/domain/category"
	"github.com/glbank-reconciler/internal/domain/gl"
	"github.com/glbank-reconciler/internal/domain/outstanding"
	"github.com/glbank-reconciler/internal/domain/shared"
	"github.com/glbank-reconciler/internal/reconciliation/service"
)

type OutstandingResolverImpl struct {
	logger *slog.Logger
}

func NewOutstandingResolver(logger *slog.Logger) service.OutstandingResolver {
	return &OutstandingResolverImpl{logger: logger}
}

// Resolve produces the consolidated outstanding-checks ledger in three
// stages: prior-ledger rows are matched against bank clearance data, new
// outstanding checks are discovered from GL-only matched rows, and the
// discoveries are enriched with payee and posting-date lookups built from
// the classified GL table. A check number present in the prior-ledger result
// is never duplicated by a GL discovery.
func (o *OutstandingResolverImpl) Resolve(
	prior []outstanding.PriorEntry,
	bankRecords []bank.Record,
	matched []shared.MatchedRecord,
	classifiedGL []gl.Record,
) []outstanding.Entry {
	cleared := o.matchPriorAgainstBank(prior, bankRecords)

	seen := make(map[string]bool, len(cleared))
	for _, e := range cleared {
		seen[e.CheckNumber] = true
	}

	discovered := discoverFromGL(matched, seen)

	payees := buildPayeeLookup(classifiedGL)
	dates := buildPostingDateLookup(classifiedGL)
	if len(payees) == 0 {
		o.logger.Warn("payee lookup is empty; vendor names stay unresolved")
	}
	if len(dates) == 0 {
		o.logger.Warn("posting-date lookup is empty; dates stay unresolved")
	}

	entries := append(cleared, discovered...)
	for i := range entries {
		// Never overwrite a vendor name the prior ledger already knows.
		if entries[i].VendorName == "" {
			entries[i].VendorName = payees[entries[i].CheckNumber]
		}
		if entries[i].DatePosted == "" {
			entries[i].DatePosted = dates[entries[i].CheckNumber]
		}
	}

	o.logger.Info("outstanding checks consolidated",
		"prior", len(prior),
		"discovered", len(discovered),
		"total", len(entries),
	)
	return entries
}

// matchPriorAgainstBank left-joins the prior ledger on check number against
// the bank customer reference. A matched check's variance is its ledger
// amount minus the bank net; an unmatched check has no variance and stays
// not cleared.
func (o *OutstandingResolverImpl) matchPriorAgainstBank(prior []outstanding.PriorEntry, bankRecords []bank.Record) []outstanding.Entry {
	byCustomerRef := make(map[string]*bank.Record, len(bankRecords))
	for i := range bankRecords {
		ref := bankRecords[i].CustomerReference
		if ref == "" {
			continue
		}
		if _, ok := byCustomerRef[ref]; !ok {
			byCustomerRef[ref] = &bankRecords[i]
		}
	}

	entries := make([]outstanding.Entry, 0, len(prior))
	for _, p := range prior {
		entry := outstanding.Entry{
			CheckNumber: p.CheckNumber,
			DatePosted:  p.DatePosted,
			VendorName:  p.VendorName,
			Amount:      p.Amount,
			Cleared:     "no",
		}

		if b := byCustomerRef[p.CheckNumber]; b != nil {
			variance := p.Amount.Sub(b.NetAmount())
			entry.Bank = b
			entry.Variance = &variance
			if variance.IsZero() {
				entry.UpdatedStatus = outstanding.StatusCleared
				entry.Cleared = "yes"
			} else {
				entry.UpdatedStatus = outstanding.StatusClearedAmountDiff
			}
		} else {
			entry.UpdatedStatus = outstanding.StatusNotCleared
		}
		entries = append(entries, entry)
	}
	return entries
}

// discoverFromGL selects checks the GL knows about but the bank statement
// does not: matched rows categorized as Checks and unmatched on the bank
// side. Check numbers already present in the prior-ledger result are
// skipped so a check is never counted twice.
func discoverFromGL(matched []shared.MatchedRecord, seen map[string]bool) []outstanding.Entry {
	var entries []outstanding.Entry
	for _, m := range matched {
		if m.GL == nil || m.Comment != shared.CommentGLYesBankNo {
			continue
		}
		if m.GL.Category != category.Checks {
			continue
		}
		if seen[m.GL.TransactionNumber] {
			continue
		}
		seen[m.GL.TransactionNumber] = true
		entries = append(entries, outstanding.Entry{
			CheckNumber:   m.GL.TransactionNumber,
			Amount:        m.GL.AccountedSum,
			Cleared:       "no",
			UpdatedStatus: outstanding.StatusNewFromGL,
		})
	}
	return entries
}

// buildPayeeLookup maps transaction numbers to party names, one payee per
// transaction. Rows without a known party number do not contribute: a name
// that cannot be tied to a party is not trustworthy enough to fill a vendor
// field.
func buildPayeeLookup(records []gl.Record) map[string]string {
	lookup := make(map[string]string)
	for _, r := range records {
		if r.PartyNumber == "" || r.PartyNumber == "NA" {
			continue
		}
		if r.PartyName == "" || r.PartyName == "NA" {
			continue
		}
		if _, ok := lookup[r.TransactionNumber]; !ok {
			lookup[r.TransactionNumber] = r.PartyName
		}
	}
	return lookup
}

// buildPostingDateLookup maps check transaction numbers to their GL
// transaction dates, restricted to records classified as Checks.
func buildPostingDateLookup(records []gl.Record) map[string]string {
	lookup := make(map[string]string)
	for _, r := range records {
		if r.Category != category.Checks {
			continue
		}
		if r.TransactionDate == "" || r.TransactionDate == "NA" {
			continue
		}
		if _, ok := lookup[r.TransactionNumber]; !ok {
			lookup[r.TransactionNumber] = r.TransactionDate
		}
	}
	return lookup
}
