package components

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glbank-reconciler/internal/domain/bank"
	"github.com/glbank-reconciler/internal/domain/category"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func TestLevenshteinRatio(t *testing.T) {
	testCases := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{name: "identical", a: "Wires", b: "Wires", expected: 1},
		{name: "case insensitive", a: "wires", b: "WIRES", expected: 1},
		{name: "both empty", a: "", b: "", expected: 1},
		{name: "one empty", a: "Wires", b: "", expected: 0},
		{name: "one edit of five", a: "Wires", b: "Wired", expected: 0.8},
		{name: "unrelated", a: "ab", b: "xy", expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, LevenshteinRatio(tc.a, tc.b), 1e-9)
			assert.InDelta(t, tc.expected, LevenshteinRatio(tc.b, tc.a), 1e-9, "must be symmetric")
		})
	}
}

func TestNormalizeTrnType(t *testing.T) {
	normalizer := NewKeyNormalizer(testRuleConfig(), testLogger())

	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "empty becomes NoCategory", raw: "", expected: "NoCategory"},
		{name: "whitespace only becomes NoCategory", raw: "   ", expected: "NoCategory"},
		{name: "exact label kept", raw: "Wires", expected: "Wires"},
		{name: "close misspelling replaced", raw: "Wirez", expected: "Wires"},
		{name: "case variant replaced", raw: "CHECKS", expected: "Checks"},
		{name: "near miss below threshold kept raw", raw: "Misc Fees", expected: "Misc Fees"},
		{name: "checks typo", raw: "Cheks", expected: "Checks"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizer.NormalizeTrnType(tc.raw))
		})
	}

	t.Run("idempotent on canonical labels", func(t *testing.T) {
		for _, canonical := range category.Vocabulary() {
			once := normalizer.NormalizeTrnType(string(canonical))
			assert.Equal(t, string(canonical), once)
			assert.Equal(t, once, normalizer.NormalizeTrnType(once))
		}
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		cfg := testRuleConfig()
		cfg.SimilarityThreshold = 0.8
		exact := NewKeyNormalizer(cfg, testLogger())
		// "Wired" scores exactly 0.8 against "Wires".
		assert.Equal(t, "Wires", exact.NormalizeTrnType("Wired"))

		cfg.SimilarityThreshold = 0.81
		strict := NewKeyNormalizer(cfg, testLogger())
		assert.Equal(t, "Wired", strict.NormalizeTrnType("Wired"))
	})

	t.Run("ties resolve to earliest vocabulary entry", func(t *testing.T) {
		// A similarity that scores every label equally must pick the first
		// vocabulary entry.
		flat := func(a, b string) float64 { return 1 }
		n := NewKeyNormalizerWithSimilarity(testRuleConfig(), flat, testLogger())
		assert.Equal(t, string(category.Vocabulary()[0]), n.NormalizeTrnType("anything"))
	})
}

func TestDeriveComparisonKey(t *testing.T) {
	normalizer := NewKeyNormalizer(testRuleConfig(), testLogger())

	testCases := []struct {
		name     string
		record   bank.Record
		expected string
	}{
		{
			name:     "checks use customer reference",
			record:   bank.Record{TrnType: "Checks", CustomerReference: "C123", BankReference: "B999"},
			expected: "C123",
		},
		{
			name:     "wires use bank reference",
			record:   bank.Record{TrnType: "Wires", CustomerReference: "C123", BankReference: "B999"},
			expected: "B999",
		},
		{
			name:     "nonref falls back to customer reference",
			record:   bank.Record{TrnType: "Lockbox", CustomerReference: "C500", BankReference: "NONREF"},
			expected: "C500",
		},
		{
			name:     "default uses bank reference",
			record:   bank.Record{TrnType: "Lockbox", CustomerReference: "C500", BankReference: "B777"},
			expected: "B777",
		},
		{
			name:     "check rule beats nonref fallback",
			record:   bank.Record{TrnType: "Checks", CustomerReference: "C123", BankReference: "NONREF"},
			expected: "C123",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizer.DeriveComparisonKey(tc.record))
		})
	}
}

func TestNormalizeRecords(t *testing.T) {
	normalizer := NewKeyNormalizer(testRuleConfig(), testLogger())

	input := []bank.Record{
		{TrnType: "Wirez", CustomerReference: "C1", BankReference: "B1"},
		{TrnType: "", CustomerReference: "C2", BankReference: "NONREF"},
		{TrnType: "Checks", CustomerReference: "C3", BankReference: "B3"},
	}

	out := normalizer.NormalizeRecords(input)
	require.Len(t, out, 3)

	assert.Equal(t, "Wires", out[0].TrnType)
	assert.Equal(t, "B1", out[0].ComparisonKey)

	assert.Equal(t, "NoCategory", out[1].TrnType)
	assert.Equal(t, "C2", out[1].ComparisonKey)

	assert.Equal(t, "Checks", out[2].TrnType)
	assert.Equal(t, "C3", out[2].ComparisonKey)

	t.Run("input slice is untouched", func(t *testing.T) {
		assert.Equal(t, "Wirez", input[0].TrnType)
		assert.Empty(t, input[0].ComparisonKey)
	})
}
