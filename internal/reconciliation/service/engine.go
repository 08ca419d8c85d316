package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/glbank-reconciler/internal/domain/bank"
	"github.com/glbank-reconciler/internal/domain/gl"
	"github.com/glbank-reconciler/internal/domain/shared"
	"github.com/glbank-reconciler/internal/logger"
)

// Engine runs one reconciliation end to end. Every stage is a pure
// transform over the previous stage's output; the engine only sequences
// them and owns the run-scoped logging.
type Engine struct {
	normalizer KeyNormalizer
	classifier TransactionClassifier
	aggregator GLAggregator
	matcher    RecordMatcher
	resolver   OutstandingResolver
	summarizer CategorySummarizer
	logger     *slog.Logger
}

func NewEngine(
	normalizer KeyNormalizer,
	classifier TransactionClassifier,
	aggregator GLAggregator,
	matcher RecordMatcher,
	resolver OutstandingResolver,
	summarizer CategorySummarizer,
	log *slog.Logger,
) ReconciliationService {
	return &Engine{
		normalizer: normalizer,
		classifier: classifier,
		aggregator: aggregator,
		matcher:    matcher,
		resolver:   resolver,
		summarizer: summarizer,
		logger:     log,
	}
}

// Reconcile executes the pipeline: clean both sides, normalize bank labels
// and derive comparison keys, classify GL, aggregate, match, resolve
// outstanding checks, summarize. The run fails atomically: any stage error
// aborts and no partial result is returned.
func (e *Engine) Reconcile(ctx context.Context, input *shared.RunInput) (*shared.RunResult, error) {
	runID := uuid.New()
	log := logger.ForRun(e.logger, runID)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("reconciliation started",
		"gl_records", len(input.GL),
		"bank_records", len(input.Bank),
		"prior_outstanding", len(input.Outstanding),
	)

	cleanedGL := gl.Clean(input.GL)
	cleanedBank := bank.Clean(input.Bank)

	normalizedBank := e.normalizer.NormalizeRecords(cleanedBank)

	classifiedGL, err := e.classifier.Classify(cleanedGL, normalizedBank)
	if err != nil {
		log.Error("classification failed", "error", err)
		return nil, fmt.Errorf("classification: %w", err)
	}

	groups := e.aggregator.Aggregate(classifiedGL)
	matched := e.matcher.Match(groups, normalizedBank)

	entries := e.resolver.Resolve(input.Outstanding, normalizedBank, matched, classifiedGL)

	bankPivot, glPivot, grid := e.summarizer.Summarize(classifiedGL, normalizedBank)

	log.Info("reconciliation completed",
		"matched_rows", len(matched),
		"outstanding_entries", len(entries),
	)

	return &shared.RunResult{
		RunID:          runID,
		ClassifiedGL:   classifiedGL,
		NormalizedBank: normalizedBank,
		Matched:        matched,
		Outstanding:    entries,
		BankPivot:      bankPivot,
		GLPivot:        glPivot,
		Differences:    grid,
	}, nil
}
