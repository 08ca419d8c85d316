// Package components implements the reconciliation pipeline stages declared
// in the service package: bank-label normalization, GL classification,
// aggregation, matching, outstanding-check resolution and category
// summaries.
package components

import (
	"log/slog"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/glbank-reconciler/internal/config"
	"github.com/glbank-reconciler/internal/domain/bank"
	"github.com/glbank-reconciler/internal/domain/category"
	"github.com/glbank-reconciler/internal/reconciliation/service"
)

// Similarity scores how close two labels are, from 0 (unrelated) to 1
// (identical). Implementations must be symmetric and case-insensitive.
type Similarity func(a, b string) float64

// LevenshteinRatio is the default Similarity: one minus the edit distance
// normalized by the longer label's rune length, on lower-cased input.
func LevenshteinRatio(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptionsWithSub)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	return 1 - float64(distance)/float64(longest)
}

type KeyNormalizerImpl struct {
	vocabulary []category.Category
	threshold  float64
	similarity Similarity
	logger     *slog.Logger
}

// NewKeyNormalizer builds the normalizer from the configured threshold and
// the fixed category vocabulary, using LevenshteinRatio for scoring.
func NewKeyNormalizer(cfg config.ReconciliationConfig, logger *slog.Logger) service.KeyNormalizer {
	return NewKeyNormalizerWithSimilarity(cfg, LevenshteinRatio, logger)
}

// NewKeyNormalizerWithSimilarity builds a normalizer with a caller-supplied
// similarity function. Callers swap the scoring algorithm without touching
// the normalization or key-derivation logic.
func NewKeyNormalizerWithSimilarity(cfg config.ReconciliationConfig, similarity Similarity, logger *slog.Logger) service.KeyNormalizer {
	return &KeyNormalizerImpl{
		vocabulary: category.Vocabulary(),
		threshold:  cfg.SimilarityThreshold,
		similarity: similarity,
		logger:     logger,
	}
}

// NormalizeTrnType canonicalizes one raw bank transaction-type label. Empty
// labels become NoCategory. The raw label is replaced by the best-scoring
// canonical category when that score reaches the threshold; otherwise it is
// kept unchanged. Ties resolve to the earliest category in vocabulary order.
func (n *KeyNormalizerImpl) NormalizeTrnType(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return string(category.NoCategory)
	}

	best := ""
	bestScore := 0.0
	for _, canonical := range n.vocabulary {
		score := n.similarity(raw, string(canonical))
		if score > bestScore {
			best = string(canonical)
			bestScore = score
		}
	}

	if bestScore >= n.threshold {
		return best
	}
	return raw
}

// DeriveComparisonKey picks the bank-side join key. Check and wire rules
// take precedence over the generic NONREF fallback; the order here is load
// bearing.
func (n *KeyNormalizerImpl) DeriveComparisonKey(r bank.Record) string {
	switch {
	case r.TrnType == string(category.Checks):
		return r.CustomerReference
	case r.TrnType == string(category.Wires):
		return r.BankReference
	case r.BankReference == bank.NonReference:
		return r.CustomerReference
	default:
		return r.BankReference
	}
}

// NormalizeRecords canonicalizes every record's transaction type and derives
// its comparison key. The input slice is not modified.
func (n *KeyNormalizerImpl) NormalizeRecords(records []bank.Record) []bank.Record {
	out := make([]bank.Record, len(records))
	replaced := 0
	for i, r := range records {
		normalized := n.NormalizeTrnType(r.TrnType)
		if normalized != r.TrnType {
			replaced++
		}
		r.TrnType = normalized
		r.ComparisonKey = n.DeriveComparisonKey(r)
		out[i] = r
	}
	n.logger.Info("bank transaction types normalized",
		"records", len(records),
		"labels_replaced", replaced,
	)
	return out
}
