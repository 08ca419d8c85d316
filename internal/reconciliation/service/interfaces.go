// Package service defines the reconciliation pipeline contracts and the
// engine that runs them in order. Implementations live in the components
// package.
package service

import (
	"context"

	"github.com/glbank-reconciler/internal/domain/bank"
	"github.com/glbank-reconciler/internal/domain/gl"
	"github.com/glbank-reconciler/internal/domain/outstanding"
	"github.com/glbank-reconciler/internal/domain/shared"
)

// KeyNormalizer canonicalizes bank transaction-type labels against the fixed
// category vocabulary and derives the per-record comparison key.
type KeyNormalizer interface {
	// NormalizeTrnType is idempotent: an already-canonical label maps to
	// itself.
	NormalizeTrnType(raw string) string
	DeriveComparisonKey(r bank.Record) string
	NormalizeRecords(records []bank.Record) []bank.Record
}

// TransactionClassifier assigns exactly one category to every GL record via
// the ordered rule cascade, seeded by the bank comparison-key lookup.
type TransactionClassifier interface {
	Classify(glRecords []gl.Record, bankRecords []bank.Record) ([]gl.Record, error)
}

// GLAggregator groups classified GL records by account dimensions,
// transaction number and category, summing the signed accounted amount and
// dropping zero-sum groups.
type GLAggregator interface {
	Aggregate(records []gl.Record) []gl.Group
}

// RecordMatcher outer-joins aggregated GL groups against normalized bank
// records and assigns variance and comment per row.
type RecordMatcher interface {
	Match(groups []gl.Group, bankRecords []bank.Record) []shared.MatchedRecord
}

// OutstandingResolver merges the prior outstanding-checks ledger with bank
// clearance data and GL-only discoveries into one deduplicated table.
type OutstandingResolver interface {
	Resolve(
		prior []outstanding.PriorEntry,
		bankRecords []bank.Record,
		matched []shared.MatchedRecord,
		classifiedGL []gl.Record,
	) []outstanding.Entry
}

// CategorySummarizer produces the per-category pivots for both sides and the
// difference grid between them.
type CategorySummarizer interface {
	Summarize(classifiedGL []gl.Record, bankRecords []bank.Record) (bankPivot, glPivot shared.Pivot, grid shared.DifferenceGrid)
}

// ReconciliationService runs one full reconciliation: cleaning,
// normalization, classification, aggregation, matching, outstanding
// resolution and summaries. A run either returns the complete result or an
// error; no partial output is produced.
type ReconciliationService interface {
	Reconcile(ctx context.Context, input *shared.RunInput) (*shared.RunResult, error)
}
