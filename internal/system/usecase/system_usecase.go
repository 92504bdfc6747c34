package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/ros/internal/database"
	apperrors "github.com/allisson/ros/internal/errors"
	systemDomain "github.com/allisson/ros/internal/system/domain"
)

var errOrgIDRequired = apperrors.Wrap(apperrors.ErrInvalidInput, "org id is required")

type systemUseCase struct {
	txManager  database.TxManager
	systemRepo SystemRepository
}

// Get retrieves a system scoped to orgID.
func (s *systemUseCase) Get(
	ctx context.Context,
	orgID string,
	inventoryID uuid.UUID,
) (*systemDomain.System, error) {
	if orgID == "" {
		return nil, errOrgIDRequired
	}
	return s.systemRepo.GetByInventoryID(ctx, orgID, inventoryID)
}

// IsConfigured counts the organization's systems.
func (s *systemUseCase) IsConfigured(ctx context.Context, orgID string) (*systemDomain.Stats, error) {
	if orgID == "" {
		return nil, errOrgIDRequired
	}
	return s.systemRepo.Stats(ctx, orgID)
}

// Rate looks the system up in orgID and stores the rating in one transaction.
// Systems of other organizations are reported as not found.
func (s *systemUseCase) Rate(
	ctx context.Context,
	orgID string,
	inventoryID uuid.UUID,
	rating systemDomain.Rating,
	ratedBy string,
) (*systemDomain.SystemRating, error) {
	if orgID == "" {
		return nil, errOrgIDRequired
	}
	if !rating.Valid() {
		return nil, systemDomain.ErrInvalidRating
	}

	var stored *systemDomain.SystemRating
	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		system, err := s.systemRepo.GetByInventoryID(txCtx, orgID, inventoryID)
		if err != nil {
			return err
		}

		candidate := &systemDomain.SystemRating{
			SystemID:    system.ID,
			InventoryID: system.InventoryID,
			Rating:      rating,
			RatedBy:     ratedBy,
			RatedAt:     time.Now().UTC(),
		}
		if err := s.systemRepo.UpsertRating(txCtx, candidate); err != nil {
			return err
		}
		stored = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// History lists the past reports of a system scoped to orgID.
func (s *systemUseCase) History(
	ctx context.Context,
	orgID string,
	inventoryID uuid.UUID,
) ([]systemDomain.HistoryEntry, error) {
	system, err := s.Get(ctx, orgID, inventoryID)
	if err != nil {
		return nil, err
	}
	return s.systemRepo.ListHistory(ctx, system.ID)
}

// NewSystemUseCase creates a new SystemUseCase.
func NewSystemUseCase(txManager database.TxManager, systemRepo SystemRepository) SystemUseCase {
	return &systemUseCase{
		txManager:  txManager,
		systemRepo: systemRepo,
	}
}
