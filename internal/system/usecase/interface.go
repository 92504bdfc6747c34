// Package usecase implements access to an organization's systems and their ratings.
package usecase

import (
	"context"

	"github.com/google/uuid"

	systemDomain "github.com/allisson/ros/internal/system/domain"
)

// SystemRepository defines the persistence operations on systems.
type SystemRepository interface {
	GetByInventoryID(ctx context.Context, orgID string, inventoryID uuid.UUID) (*systemDomain.System, error)
	Stats(ctx context.Context, orgID string) (*systemDomain.Stats, error)
	UpsertRating(ctx context.Context, rating *systemDomain.SystemRating) error
	ListHistory(ctx context.Context, systemID int64) ([]systemDomain.HistoryEntry, error)
}

// SystemUseCase defines the system operations exposed over HTTP.
type SystemUseCase interface {
	// Get returns a system of the organization or systemDomain.ErrSystemNotFound.
	Get(ctx context.Context, orgID string, inventoryID uuid.UUID) (*systemDomain.System, error)
	// IsConfigured summarizes the organization's systems.
	IsConfigured(ctx context.Context, orgID string) (*systemDomain.Stats, error)
	// Rate records ratedBy's rating for a system of the organization.
	Rate(
		ctx context.Context,
		orgID string,
		inventoryID uuid.UUID,
		rating systemDomain.Rating,
		ratedBy string,
	) (*systemDomain.SystemRating, error)
	// History lists past reports of a system of the organization, newest first.
	History(ctx context.Context, orgID string, inventoryID uuid.UUID) ([]systemDomain.HistoryEntry, error)
}
