package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glbank-reconciler/internal/config"
	"github.com/glbank-reconciler/internal/domain/bank"
	"github.com/glbank-reconciler/internal/domain/category"
	"github.com/glbank-reconciler/internal/domain/gl"
)

// testRuleConfig mirrors the default rule tables so the component tests do
// not depend on config file loading.
func testRuleConfig() config.ReconciliationConfig {
	return config.ReconciliationConfig{
		SimilarityThreshold: 0.80,
		CheckPrefixes:       []string{"1112", "340"},
		CheckNumberMaxLen:   9,
		ACHPrefix:           "640",
		ZBAJournalMarker:    "ZBA",
		InterestMarker:      "interest",
		JournalKeywords: []config.JournalKeyword{
			{Keyword: "payroll", Category: category.Payroll},
			{Keyword: "autodebit", Category: category.Autodebits},
			{Keyword: "eftps", Category: category.EFTPS},
			{Keyword: "vibee", Category: category.VibeeAR},
			{Keyword: "stripe", Category: category.Stripe},
			{Keyword: "table sales", Category: category.Brinks},
		},
		SquareMarker:     "square",
		TicketingMarkers: []string{"front gate", "vivendi"},
		WireBatchMarkers: []string{"payables", "wire"},
		ARBatchMarkers:   []string{"receivable", "ar", "on account", "receipt", "cash"},
	}
}

func classifyOne(t *testing.T, r gl.Record, bankRecords []bank.Record) category.Category {
	t.Helper()
	classifier := NewTransactionClassifier(testRuleConfig(), testLogger())
	out, err := classifier.Classify([]gl.Record{r}, bankRecords)
	require.NoError(t, err)
	require.Len(t, out, 1)
	return out[0].Category
}

func TestClassify_RejectsUncleanedInput(t *testing.T) {
	classifier := NewTransactionClassifier(testRuleConfig(), testLogger())
	_, err := classifier.Classify([]gl.Record{{TransactionNumber: ""}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty transaction number")
}

func TestClassify_BankLookupWins(t *testing.T) {
	bankRecords := []bank.Record{
		{TrnType: "Wires", ComparisonKey: "1112345"},
	}

	// The number matches the check-prefix pattern, but the bank statement
	// says Wires and the bank is authoritative.
	got := classifyOne(t, gl.Record{TransactionNumber: "1112345"}, bankRecords)
	assert.Equal(t, category.Wires, got)
}

func TestClassify_BankLookupSkipsNoCategory(t *testing.T) {
	bankRecords := []bank.Record{
		{TrnType: "NoCategory", ComparisonKey: "1112345"},
	}

	// An uncategorized bank label does not block the pattern rules.
	got := classifyOne(t, gl.Record{TransactionNumber: "1112345"}, bankRecords)
	assert.Equal(t, category.Checks, got)
}

func TestClassify_PatternRules(t *testing.T) {
	testCases := []struct {
		name     string
		record   gl.Record
		expected category.Category
	}{
		{
			name:     "check prefix 1112",
			record:   gl.Record{TransactionNumber: "1112345"},
			expected: category.Checks,
		},
		{
			name:     "check prefix 340",
			record:   gl.Record{TransactionNumber: "340998"},
			expected: category.Checks,
		},
		{
			name:     "long number is not a check",
			record:   gl.Record{TransactionNumber: "1112345678"},
			expected: category.NoCategory,
		},
		{
			name:     "ach prefix",
			record:   gl.Record{TransactionNumber: "640112233"},
			expected: category.LNACH,
		},
		{
			name:     "zba journal without interest",
			record:   gl.Record{TransactionNumber: "900001", JournalName: "ZBA Transfer June"},
			expected: category.ZBA,
		},
		{
			name:     "zba journal with interest description",
			record:   gl.Record{TransactionNumber: "900002", JournalName: "ZBA Transfer June", Description: "Monthly interest earned"},
			expected: category.Interest,
		},
		{
			name:     "payroll journal keyword",
			record:   gl.Record{TransactionNumber: "900003", JournalName: "Payroll Run 2026-06"},
			expected: category.Payroll,
		},
		{
			name:     "autodebit journal keyword",
			record:   gl.Record{TransactionNumber: "900004", JournalName: "autodebit utilities"},
			expected: category.Autodebits,
		},
		{
			name:     "eftps journal keyword",
			record:   gl.Record{TransactionNumber: "900005", JournalName: "EFTPS federal tax"},
			expected: category.EFTPS,
		},
		{
			name:     "vibee journal keyword",
			record:   gl.Record{TransactionNumber: "900006", JournalName: "Vibee settlements"},
			expected: category.VibeeAR,
		},
		{
			name:     "stripe journal keyword",
			record:   gl.Record{TransactionNumber: "900007", JournalName: "Stripe payouts"},
			expected: category.Stripe,
		},
		{
			name:     "table sales journal keyword",
			record:   gl.Record{TransactionNumber: "900008", JournalName: "Table Sales deposit"},
			expected: category.Brinks,
		},
		{
			name:     "square marker in journal",
			record:   gl.Record{TransactionNumber: "900009", JournalName: "Square settlement"},
			expected: category.Square,
		},
		{
			name:     "square marker in description",
			record:   gl.Record{TransactionNumber: "900010", Description: "SQUARE INC deposit"},
			expected: category.Square,
		},
		{
			name:     "ticketing party front gate",
			record:   gl.Record{TransactionNumber: "900011", PartyName: "Front Gate Tickets LLC"},
			expected: category.Ticketing,
		},
		{
			name:     "ticketing party vivendi",
			record:   gl.Record{TransactionNumber: "900012", PartyName: "VIVENDI ticketing"},
			expected: category.Ticketing,
		},
		{
			name:     "wire batch payables",
			record:   gl.Record{TransactionNumber: "900013", BatchName: "Weekly Payables Batch"},
			expected: category.Wires,
		},
		{
			name:     "wire batch wire",
			record:   gl.Record{TransactionNumber: "900014", BatchName: "Outgoing wire 17"},
			expected: category.Wires,
		},
		{
			name:     "ar batch receivable",
			record:   gl.Record{TransactionNumber: "900015", BatchName: "Trade Receivable May"},
			expected: category.ARModule,
		},
		{
			name:     "ar batch on account",
			record:   gl.Record{TransactionNumber: "900016", BatchName: "Applied on account"},
			expected: category.ARModule,
		},
		{
			name:     "no rule applies",
			record:   gl.Record{TransactionNumber: "900017", JournalName: "Manual Adjustments", BatchName: "Adj 12"},
			expected: category.NoCategory,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifyOne(t, tc.record, nil))
		})
	}
}

func TestClassify_Priority(t *testing.T) {
	t.Run("check beats ach for ambiguous records", func(t *testing.T) {
		// Prefix 1112 and an ACH-looking journal: the check rule runs first.
		got := classifyOne(t, gl.Record{
			TransactionNumber: "340640",
			JournalName:       "Payroll Run",
		}, nil)
		assert.Equal(t, category.Checks, got)
	})

	t.Run("wire batch beats ar batch", func(t *testing.T) {
		// "Wire receipts" matches both marker sets; wires evaluate first.
		got := classifyOne(t, gl.Record{
			TransactionNumber: "900020",
			BatchName:         "Wire receipts",
		}, nil)
		assert.Equal(t, category.Wires, got)
	})

	t.Run("journal keyword beats square marker", func(t *testing.T) {
		got := classifyOne(t, gl.Record{
			TransactionNumber: "900021",
			JournalName:       "Stripe and Square clearing",
		}, nil)
		assert.Equal(t, category.Stripe, got)
	})
}

func TestClassify_EveryRecordGetsExactlyOneCategory(t *testing.T) {
	classifier := NewTransactionClassifier(testRuleConfig(), testLogger())

	records := []gl.Record{
		{TransactionNumber: "1112001"},
		{TransactionNumber: "640002"},
		{TransactionNumber: "900030", JournalName: "ZBA sweep"},
		{TransactionNumber: "900031"},
	}

	out, err := classifier.Classify(records, nil)
	require.NoError(t, err)
	require.Len(t, out, len(records))
	for _, r := range out {
		assert.NotEmpty(t, r.Category)
	}
	assert.Equal(t, category.NoCategory, out[3].Category)

	t.Run("input records keep their other fields", func(t *testing.T) {
		assert.Equal(t, "1112001", out[0].TransactionNumber)
		assert.Equal(t, "ZBA sweep", out[2].JournalName)
	})
}
