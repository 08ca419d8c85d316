package components

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/glbank-reconciler/internal/domain/category"
	"github.com/glbank-reconciler/internal/domain/gl"
	"github.com/glbank-reconciler/internal/reconciliation/service"
)

// groupKey is the full aggregation key: account dimensions plus transaction
// number and category.
type groupKey struct {
	Company           string
	BusinessUnit      string
	Account           string
	SubAccount        string
	Project           string
	PeriodName        string
	Source            string
	TransactionNumber string
	Category          category.Category
}

type GLAggregatorImpl struct {
	logger *slog.Logger
}

func NewGLAggregator(logger *slog.Logger) service.GLAggregator {
	return &GLAggregatorImpl{logger: logger}
}

// Aggregate sums the signed accounted amount per group and drops groups
// whose sum is exactly zero: those are fully offsetting entries with no net
// effect on the reconciliation. Output order follows first encounter of each
// key so repeated runs over the same input produce identical tables.
func (a *GLAggregatorImpl) Aggregate(records []gl.Record) []gl.Group {
	sums := make(map[groupKey]decimal.Decimal, len(records))
	order := make([]groupKey, 0, len(records))

	for _, r := range records {
		key := groupKey{
			Company:           r.Company,
			BusinessUnit:      r.BusinessUnit,
			Account:           r.Account,
			SubAccount:        r.SubAccount,
			Project:           r.Project,
			PeriodName:        r.PeriodName,
			Source:            r.Source,
			TransactionNumber: r.TransactionNumber,
			Category:          r.Category,
		}
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] = sums[key].Add(r.AccountedSum)
	}

	groups := make([]gl.Group, 0, len(order))
	dropped := 0
	for _, key := range order {
		sum := sums[key]
		if sum.IsZero() {
			dropped++
			continue
		}
		groups = append(groups, gl.Group{
			Company:           key.Company,
			BusinessUnit:      key.BusinessUnit,
			Account:           key.Account,
			SubAccount:        key.SubAccount,
			Project:           key.Project,
			PeriodName:        key.PeriodName,
			Source:            key.Source,
			TransactionNumber: key.TransactionNumber,
			Category:          key.Category,
			AccountedSum:      sum,
		})
	}

	a.logger.Info("gl records aggregated",
		"records", len(records),
		"groups", len(groups),
		"zero_sum_dropped", dropped,
	)
	return groups
}
