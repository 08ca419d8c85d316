package shared

import (
	"github.com/google/uuid"

	"github.com/glbank-reconciler/internal/domain/bank"
	"github.com/glbank-reconciler/internal/domain/gl"
	"github.com/glbank-reconciler/internal/domain/outstanding"
)

// RunInput carries the three raw tables one reconciliation run consumes.
// Ingestion has already coerced cell types; cleaning and normalization
// happen inside the run.
type RunInput struct {
	GL          []gl.Record
	Bank        []bank.Record
	Outstanding []outstanding.PriorEntry
}

// RunResult is the complete output of one reconciliation run. A run either
// produces all of these tables or fails; partial results are never returned.
type RunResult struct {
	RunID uuid.UUID

	// ClassifiedGL is the cleaned GL table with exactly one category per
	// record.
	ClassifiedGL []gl.Record

	// NormalizedBank is the cleaned bank table with canonical transaction
	// types and derived comparison keys.
	NormalizedBank []bank.Record

	// Matched is the outer join of aggregated GL groups and bank records,
	// one row per joined or unmatched group.
	Matched []MatchedRecord

	// Outstanding is the consolidated outstanding-checks ledger.
	Outstanding []outstanding.Entry

	BankPivot   Pivot
	GLPivot     Pivot
	Differences DifferenceGrid
}
