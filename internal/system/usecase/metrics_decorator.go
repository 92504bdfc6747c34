package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/ros/internal/metrics"
	systemDomain "github.com/allisson/ros/internal/system/domain"
)

// systemUseCaseWithMetrics decorates SystemUseCase with metrics instrumentation.
type systemUseCaseWithMetrics struct {
	next    SystemUseCase
	metrics metrics.BusinessMetrics
}

// NewSystemUseCaseWithMetrics wraps a SystemUseCase with metrics recording.
func NewSystemUseCaseWithMetrics(useCase SystemUseCase, m metrics.BusinessMetrics) SystemUseCase {
	return &systemUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Get records metrics for system lookups.
func (s *systemUseCaseWithMetrics) Get(
	ctx context.Context,
	orgID string,
	inventoryID uuid.UUID,
) (*systemDomain.System, error) {
	start := time.Now()
	system, err := s.next.Get(ctx, orgID, inventoryID)

	s.record(ctx, "system_get", start, err)
	return system, err
}

// IsConfigured records metrics for stats computation.
func (s *systemUseCaseWithMetrics) IsConfigured(ctx context.Context, orgID string) (*systemDomain.Stats, error) {
	start := time.Now()
	stats, err := s.next.IsConfigured(ctx, orgID)

	s.record(ctx, "system_is_configured", start, err)
	return stats, err
}

// Rate records metrics for rating writes.
func (s *systemUseCaseWithMetrics) Rate(
	ctx context.Context,
	orgID string,
	inventoryID uuid.UUID,
	rating systemDomain.Rating,
	ratedBy string,
) (*systemDomain.SystemRating, error) {
	start := time.Now()
	stored, err := s.next.Rate(ctx, orgID, inventoryID, rating, ratedBy)
	s.record(ctx, "system_rate", start, err)
	return stored, err
}

// History records metrics for history lookups.
func (s *systemUseCaseWithMetrics) History(
	ctx context.Context,
	orgID string,
	inventoryID uuid.UUID,
) ([]systemDomain.HistoryEntry, error) {
	start := time.Now()
	entries, err := s.next.History(ctx, orgID, inventoryID)
	s.record(ctx, "system_history", start, err)
	return entries, err
}

func (s *systemUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordOperation(ctx, "system", operation, status)
	s.metrics.RecordDuration(ctx, "system", operation, time.Since(start), status)
}
