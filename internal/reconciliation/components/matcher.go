package components

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/glbank-reconciler/internal/domain/bank"
	"github.com/glbank-reconciler/internal/domain/gl"
	"github.com/glbank-reconciler/internal/domain/shared"
	"github.com/glbank-reconciler/internal/reconciliation/service"
)

type RecordMatcherImpl struct {
	logger *slog.Logger
}

func NewRecordMatcher(logger *slog.Logger) service.RecordMatcher {
	return &RecordMatcherImpl{logger: logger}
}

// Match performs a full outer join of GL aggregate groups against normalized
// bank records on transaction number versus comparison key. Every GL group
// and every bank record appears in the output exactly once: a GL group
// consumes the first unconsumed bank record sharing its key, and leftover
// bank records become bank-only rows. Output order is GL groups first (input
// order), then unmatched bank records (input order).
func (m *RecordMatcherImpl) Match(groups []gl.Group, bankRecords []bank.Record) []shared.MatchedRecord {
	// Index bank records by comparison key, preserving statement order per
	// key.
	byKey := make(map[string][]int, len(bankRecords))
	for i, b := range bankRecords {
		byKey[b.ComparisonKey] = append(byKey[b.ComparisonKey], i)
	}

	consumed := make([]bool, len(bankRecords))
	out := make([]shared.MatchedRecord, 0, len(groups)+len(bankRecords))

	fullMatches := 0
	for i := range groups {
		group := groups[i]
		var matched *bank.Record
		for _, idx := range byKey[group.TransactionNumber] {
			if consumed[idx] {
				continue
			}
			consumed[idx] = true
			matched = &bankRecords[idx]
			break
		}

		row := buildRow(&group, matched)
		if row.Comment == shared.CommentFullMatch {
			fullMatches++
		}
		out = append(out, row)
	}

	bankOnly := 0
	for i := range bankRecords {
		if consumed[i] {
			continue
		}
		bankOnly++
		out = append(out, buildRow(nil, &bankRecords[i]))
	}

	m.logger.Info("gl and bank records matched",
		"rows", len(out),
		"full_matches", fullMatches,
		"bank_only", bankOnly,
	)
	return out
}

// buildRow computes the consolidated type, comment and variance for one
// joined or unmatched row. The comment is decided before the variance
// arithmetic: an unmatched side would otherwise trivially satisfy the
// variance conditions.
func buildRow(group *gl.Group, b *bank.Record) shared.MatchedRecord {
	row := shared.MatchedRecord{GL: group, Bank: b}

	switch {
	case group == nil:
		row.Comment = shared.CommentGLNoBankYes
	case b == nil:
		row.Comment = shared.CommentGLYesBankNo
	}

	glSum := decimal.Zero
	if group != nil {
		glSum = group.AccountedSum
		row.Type = string(group.Category)
	} else if b != nil {
		row.Type = b.TrnType
	}

	bankNet := decimal.Zero
	if b != nil {
		bankNet = b.NetAmount()
	}

	row.Variance = glSum.Sub(bankNet)
	if row.Comment == "" {
		if row.Variance.IsZero() {
			row.Comment = shared.CommentFullMatch
		} else {
			row.Comment = shared.CommentPartialMatch
		}
	}
	return row
}
