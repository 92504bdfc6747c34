// Package mocks provides mock implementations for testing system use cases and handlers.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	systemDomain "github.com/allisson/ros/internal/system/domain"
)

// MockSystemRepository is a mock implementation of SystemRepository for testing.
type MockSystemRepository struct {
	mock.Mock
}

// GetByInventoryID mocks the GetByInventoryID method of SystemRepository.
func (m *MockSystemRepository) GetByInventoryID(
	ctx context.Context,
	orgID string,
	inventoryID uuid.UUID,
) (*systemDomain.System, error) {
	args := m.Called(ctx, orgID, inventoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*systemDomain.System), args.Error(1)
}

// Stats mocks the Stats method of SystemRepository.
func (m *MockSystemRepository) Stats(ctx context.Context, orgID string) (*systemDomain.Stats, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*systemDomain.Stats), args.Error(1)
}

// UpsertRating mocks the UpsertRating method of SystemRepository.
func (m *MockSystemRepository) UpsertRating(ctx context.Context, rating *systemDomain.SystemRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

// ListHistory mocks the ListHistory method of SystemRepository.
func (m *MockSystemRepository) ListHistory(ctx context.Context, systemID int64) ([]systemDomain.HistoryEntry, error) {
	args := m.Called(ctx, systemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]systemDomain.HistoryEntry), args.Error(1)
}

// MockSystemUseCase is a mock implementation of SystemUseCase for testing.
type MockSystemUseCase struct {
	mock.Mock
}

// Get mocks the Get method of SystemUseCase.
func (m *MockSystemUseCase) Get(
	ctx context.Context,
	orgID string,
	inventoryID uuid.UUID,
) (*systemDomain.System, error) {
	args := m.Called(ctx, orgID, inventoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*systemDomain.System), args.Error(1)
}

// IsConfigured mocks the IsConfigured method of SystemUseCase.
func (m *MockSystemUseCase) IsConfigured(ctx context.Context, orgID string) (*systemDomain.Stats, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*systemDomain.Stats), args.Error(1)
}

// Rate mocks the Rate method of SystemUseCase.
func (m *MockSystemUseCase) Rate(
	ctx context.Context,
	orgID string,
	inventoryID uuid.UUID,
	rating systemDomain.Rating,
	ratedBy string,
) (*systemDomain.SystemRating, error) {
	args := m.Called(ctx, orgID, inventoryID, rating, ratedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*systemDomain.SystemRating), args.Error(1)
}

// History mocks the History method of SystemUseCase.
func (m *MockSystemUseCase) History(
	ctx context.Context,
	orgID string,
	inventoryID uuid.UUID,
) ([]systemDomain.HistoryEntry, error) {
	args := m.Called(ctx, orgID, inventoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]systemDomain.HistoryEntry), args.Error(1)
}

// MockTxManager runs the callback in place, without a transaction.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method of TxManager.
// The callback is invoked unless the expectation returns an error.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// MockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type MockBusinessMetrics struct {
	mock.Mock
}

// RecordOperation mocks the RecordOperation method.
func (m *MockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

// RecordDuration mocks the RecordDuration method.
func (m *MockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}
