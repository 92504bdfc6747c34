package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/ros/internal/database"
	apperrors "github.com/allisson/ros/internal/errors"
	systemDomain "github.com/allisson/ros/internal/system/domain"
)

// MySQLSystemRepository implements system persistence for MySQL databases.
// Inventory ids are stored as BINARY(16).
type MySQLSystemRepository struct {
	db *sql.DB
}

// GetByInventoryID retrieves a system of the organization by inventory id.
func (m *MySQLSystemRepository) GetByInventoryID(
	ctx context.Context,
	orgID string,
	inventoryID uuid.UUID,
) (*systemDomain.System, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT s.id, s.inventory_id, s.org_id, s.display_name, s.operating_system, s.state,
			  s.report_date, s.created_at, r.rating
			  FROM systems s
			  LEFT JOIN ratings r ON r.system_id = s.id
			  WHERE s.org_id = ? AND s.inventory_id = ?`

	id, err := inventoryID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal inventory id")
	}

	var system systemDomain.System
	var rawInventoryID []byte
	var state string
	var rating sql.NullInt16
	err = querier.QueryRowContext(ctx, query, orgID, id).Scan(
		&system.ID,
		&rawInventoryID,
		&system.OrgID,
		&system.DisplayName,
		&system.OperatingSystem,
		&state,
		&system.ReportDate,
		&system.CreatedAt,
		&rating,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, systemDomain.ErrSystemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get system by inventory id")
	}

	if err := system.InventoryID.UnmarshalBinary(rawInventoryID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal inventory id")
	}
	system.State = systemDomain.State(state)
	system.Rating = ratingFromNull(rating)

	return &system, nil
}

// Stats counts the systems of the organization.
func (m *MySQLSystemRepository) Stats(ctx context.Context, orgID string) (*systemDomain.Stats, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + statsColumns + ` FROM systems WHERE org_id = ?`

	var stats systemDomain.Stats
	err := querier.QueryRowContext(ctx, query, orgID).Scan(
		&stats.Count,
		&stats.WithSuggestions,
		&stats.WaitingForData,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to compute system stats")
	}

	return &stats, nil
}

// UpsertRating stores the rating of a system, replacing any previous one.
func (m *MySQLSystemRepository) UpsertRating(ctx context.Context, rating *systemDomain.SystemRating) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO ratings (system_id, rating, rated_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  rating = VALUES(rating), rated_by = VALUES(rated_by), updated_at = VALUES(updated_at)`

	_, err := querier.ExecContext(
		ctx, query, rating.SystemID, int16(rating.Rating), rating.RatedBy, rating.RatedAt, rating.RatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert rating")
	}
	return nil
}

// ListHistory returns the past reports of a system, newest first.
func (m *MySQLSystemRepository) ListHistory(
	ctx context.Context,
	systemID int64,
) ([]systemDomain.HistoryEntry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT state, report_date FROM performance_history
			  WHERE system_id = ?
			  ORDER BY report_date DESC`

	rows, err := querier.QueryContext(ctx, query, systemID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list system history")
	}
	return scanHistory(rows)
}

// NewMySQLSystemRepository creates a new MySQL System repository.
func NewMySQLSystemRepository(db *sql.DB) *MySQLSystemRepository {
	return &MySQLSystemRepository{db: db}
}
