package components

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/glbank-reconciler/internal/config"
	"github.com/glbank-reconciler/internal/domain/bank"
	"github.com/glbank-reconciler/internal/domain/category"
	"github.com/glbank-reconciler/internal/domain/gl"
	"github.com/glbank-reconciler/internal/reconciliation/service"
)

// classifierRule is one step of the classification cascade. It returns
// NoCategory when it does not apply; the first rule returning anything else
// decides the record's category.
type classifierRule struct {
	name  string
	apply func(r gl.Record) category.Category
}

type TransactionClassifierImpl struct {
	cfg    config.ReconciliationConfig
	logger *slog.Logger
}

func NewTransactionClassifier(cfg config.ReconciliationConfig, logger *slog.Logger) service.TransactionClassifier {
	return &TransactionClassifierImpl{
		cfg:    cfg,
		logger: logger,
	}
}

// Classify assigns exactly one category to every GL record. The bank-based
// lookup is consulted first and is final when it resolves; the pattern and
// keyword rules only run for records the bank could not categorize. The
// cascade order is fixed: bank lookup, check prefix, ACH prefix,
// ZBA/interest, journal keywords, square, ticketing, wires, AR.
func (c *TransactionClassifierImpl) Classify(glRecords []gl.Record, bankRecords []bank.Record) ([]gl.Record, error) {
	for i, r := range glRecords {
		if r.TransactionNumber == "" {
			return nil, fmt.Errorf("gl record %d has an empty transaction number; input was not cleaned", i)
		}
	}

	lookup := buildBankCategoryLookup(bankRecords)
	if len(lookup) == 0 {
		// Tolerated: classification degrades to the pattern rules alone.
		c.logger.Warn("bank category lookup is empty; relying on pattern rules only")
	}

	rules := c.cascade(lookup)

	out := make([]gl.Record, len(glRecords))
	counts := make(map[category.Category]int)
	for i, r := range glRecords {
		r.Category = classify(r, rules)
		counts[r.Category]++
		out[i] = r
	}

	c.logger.Info("gl records classified",
		"records", len(out),
		"uncategorized", counts[category.NoCategory],
	)
	return out, nil
}

// buildBankCategoryLookup maps each bank comparison key to its transaction
// type. Later records overwrite earlier ones on key collisions.
func buildBankCategoryLookup(bankRecords []bank.Record) map[string]category.Category {
	lookup := make(map[string]category.Category, len(bankRecords))
	for _, b := range bankRecords {
		if b.ComparisonKey == "" {
			continue
		}
		lookup[b.ComparisonKey] = category.Category(b.TrnType)
	}
	return lookup
}

// classify runs the cascade: first rule that resolves wins.
func classify(r gl.Record, rules []classifierRule) category.Category {
	for _, rule := range rules {
		if cat := rule.apply(r); cat != category.NoCategory {
			return cat
		}
	}
	return category.NoCategory
}

// cascade builds the ordered rule list with the bank lookup captured. The
// rules are data so the priority is explicit and testable on its own.
func (c *TransactionClassifierImpl) cascade(lookup map[string]category.Category) []classifierRule {
	cfg := c.cfg
	return []classifierRule{
		{name: "bank", apply: func(r gl.Record) category.Category {
			if cat, ok := lookup[r.TransactionNumber]; ok && cat != category.NoCategory {
				return cat
			}
			return category.NoCategory
		}},
		{name: "check", apply: func(r gl.Record) category.Category {
			if len(r.TransactionNumber) > cfg.CheckNumberMaxLen {
				return category.NoCategory
			}
			for _, prefix := range cfg.CheckPrefixes {
				if strings.HasPrefix(r.TransactionNumber, prefix) {
					return category.Checks
				}
			}
			return category.NoCategory
		}},
		{name: "ach", apply: func(r gl.Record) category.Category {
			if strings.HasPrefix(r.TransactionNumber, cfg.ACHPrefix) {
				return category.LNACH
			}
			return category.NoCategory
		}},
		{name: "zba_interest", apply: func(r gl.Record) category.Category {
			if !containsFold(r.JournalName, cfg.ZBAJournalMarker) {
				return category.NoCategory
			}
			if containsFold(r.Description, cfg.InterestMarker) {
				return category.Interest
			}
			return category.ZBA
		}},
		{name: "journal_keywords", apply: func(r gl.Record) category.Category {
			journal := strings.ToLower(r.JournalName)
			for _, jk := range cfg.JournalKeywords {
				if strings.Contains(journal, strings.ToLower(jk.Keyword)) {
					return jk.Category
				}
			}
			return category.NoCategory
		}},
		{name: "square", apply: func(r gl.Record) category.Category {
			if containsFold(r.JournalName, cfg.SquareMarker) || containsFold(r.Description, cfg.SquareMarker) {
				return category.Square
			}
			return category.NoCategory
		}},
		{name: "ticketing", apply: func(r gl.Record) category.Category {
			for _, marker := range cfg.TicketingMarkers {
				if containsFold(r.PartyName, marker) {
					return category.Ticketing
				}
			}
			return category.NoCategory
		}},
		{name: "wire", apply: func(r gl.Record) category.Category {
			for _, marker := range cfg.WireBatchMarkers {
				if containsFold(r.BatchName, marker) {
					return category.Wires
				}
			}
			return category.NoCategory
		}},
		{name: "ar", apply: func(r gl.Record) category.Category {
			for _, marker := range cfg.ARBatchMarkers {
				if containsFold(r.BatchName, marker) {
					return category.ARModule
				}
			}
			return category.NoCategory
		}},
	}
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
