package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/glbank-reconciler/internal/domain/shared"
)

// WorkerPoolReconciliationService bounds how many reconciliation runs
// execute at once in batch mode. Each run stays single-threaded internally;
// the pool only schedules independent runs side by side.
type WorkerPoolReconciliationService struct {
	baseService ReconciliationService
	pool        *ants.Pool
	logger      *slog.Logger
	// Use a mutex to protect access to the results map
	mu      sync.Mutex
	results map[string]chan runOutcome
}

type runOutcome struct {
	result *shared.RunResult
	err    error
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolReconciliationService(
	baseService ReconciliationService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolReconciliationService, error) {
	// Create a new worker pool with the specified size
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolReconciliationService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
		results:     make(map[string]chan runOutcome),
	}, nil
}

// Reconcile submits one run to the worker pool and blocks until it
// finishes, so callers keep the synchronous contract of the base service.
func (s *WorkerPoolReconciliationService) Reconcile(ctx context.Context, input *shared.RunInput) (*shared.RunResult, error) {
	jobID := uuid.New().String()
	s.logger.Info("Submitting reconciliation run to worker pool",
		"job_id", jobID,
		"gl_records", len(input.GL),
		"bank_records", len(input.Bank),
	)

	// Create a channel to receive the result of the run
	resultChan := make(chan runOutcome, 1)

	s.mu.Lock()
	s.results[jobID] = resultChan
	s.mu.Unlock()

	// Submit the task to the worker pool
	err := s.pool.Submit(func() {
		result, runErr := s.baseService.Reconcile(ctx, input)

		resultChan <- runOutcome{result: result, err: runErr}

		// Remove the result channel from the map
		s.mu.Lock()
		delete(s.results, jobID)
		close(resultChan)
		s.mu.Unlock()
	})

	if err != nil {
		// If we couldn't submit the task to the pool, remove the result channel
		s.mu.Lock()
		delete(s.results, jobID)
		close(resultChan)
		s.mu.Unlock()

		s.logger.Error("Failed to submit reconciliation run to worker pool",
			"job_id", jobID,
			"error", err,
		)
		return nil, err
	}

	// Wait for the result from the worker
	outcome := <-resultChan
	return outcome.result, outcome.err
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolReconciliationService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolReconciliationService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolReconciliationService) Capacity() int {
	return s.pool.Cap()
}
