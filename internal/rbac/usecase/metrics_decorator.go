package usecase

import (
	"context"
	"time"

	"github.com/allisson/ros/internal/metrics"
	rbacDomain "github.com/allisson/ros/internal/rbac/domain"
)

// accessUseCaseWithMetrics decorates AccessUseCase with metrics instrumentation.
type accessUseCaseWithMetrics struct {
	next    AccessUseCase
	metrics metrics.BusinessMetrics
}

// NewAccessUseCaseWithMetrics wraps an AccessUseCase with metrics recording.
// The status label is the decision on success, "denied" for a permission
// mismatch and "error" for everything else.
func NewAccessUseCaseWithMetrics(useCase AccessUseCase, m metrics.BusinessMetrics) AccessUseCase {
	return &accessUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// EnsureAuthorized records metrics for access decisions.
func (a *accessUseCaseWithMetrics) EnsureAuthorized(
	ctx context.Context,
	input *rbacDomain.CheckInput,
) (rbacDomain.Decision, error) {
	start := time.Now()
	decision, err := a.next.EnsureAuthorized(ctx, input)

	status := string(decision)
	switch {
	case err == nil:
	case rbacDomain.IsDenial(err):
		status = "denied"
	default:
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "rbac", "ensure_authorized", status)
	a.metrics.RecordDuration(ctx, "rbac", "ensure_authorized", time.Since(start), status)

	return decision, err
}
