package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/glbank-reconciler/internal/domain/shared"
)

// MockReconciliationService mocks the ReconciliationService interface
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Reconcile(ctx context.Context, input *shared.RunInput) (*shared.RunResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.RunResult), args.Error(1)
}

func TestWorkerPoolReconciliationService_Reconcile(t *testing.T) {
	logger := slog.Default()
	input := &shared.RunInput{}

	tests := []struct {
		name          string
		setupMocks    func(m *MockReconciliationService)
		expectedError error
	}{
		{
			name: "successful run",
			setupMocks: func(m *MockReconciliationService) {
				m.On("Reconcile", mock.Anything, input).
					Return(&shared.RunResult{RunID: uuid.New()}, nil).Once()
			},
			expectedError: nil,
		},
		{
			name: "run error",
			setupMocks: func(m *MockReconciliationService) {
				m.On("Reconcile", mock.Anything, input).
					Return(nil, errors.New("run error")).Once()
			},
			expectedError: errors.New("run error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBaseService := &MockReconciliationService{}

			workerPoolService, err := NewWorkerPoolReconciliationService(
				mockBaseService,
				WorkerPoolConfig{
					Size: 2,
				},
				logger,
			)
			assert.NoError(t, err)
			defer workerPoolService.Shutdown()

			tt.setupMocks(mockBaseService)

			result, err := workerPoolService.Reconcile(context.Background(), input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
			}

			mockBaseService.AssertExpectations(t)
		})
	}
}

func TestWorkerPoolReconciliationService_Concurrency(t *testing.T) {
	mockBaseService := &MockReconciliationService{}
	logger := slog.Default()

	workerPoolService, err := NewWorkerPoolReconciliationService(
		mockBaseService,
		WorkerPoolConfig{
			Size: 2,
		},
		logger,
	)
	assert.NoError(t, err)
	defer workerPoolService.Shutdown()

	// Each run blocks briefly so the pool has to schedule them side by side.
	numRuns := 5
	mockBaseService.On("Reconcile", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			time.Sleep(50 * time.Millisecond)
		}).
		Return(&shared.RunResult{RunID: uuid.New()}, nil).
		Times(numRuns)

	var wg sync.WaitGroup
	errs := make([]error, numRuns)
	for i := 0; i < numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = workerPoolService.Reconcile(context.Background(), &shared.RunInput{})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	mockBaseService.AssertExpectations(t)

	assert.Equal(t, 2, workerPoolService.Capacity())
}
