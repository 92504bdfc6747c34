// Package repository persists systems, their ratings and report history for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/ros/internal/database"
	apperrors "github.com/allisson/ros/internal/errors"
	systemDomain "github.com/allisson/ros/internal/system/domain"
)

// statsColumns computes the organization summary; it is valid SQL for both drivers.
var statsColumns = fmt.Sprintf(`COUNT(*),
	COALESCE(SUM(CASE WHEN state IN (%s) THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN state = '%s' THEN 1 ELSE 0 END), 0)`,
	quotedStates(systemDomain.SuggestionStates), systemDomain.StateWaitingForData)

func ratingFromNull(n sql.NullInt16) *systemDomain.Rating {
	if !n.Valid {
		return nil
	}
	r := systemDomain.Rating(n.Int16)
	return &r
}

func quotedStates(states []systemDomain.State) string {
	quoted := make([]string, 0, len(states))
	for _, s := range states {
		quoted = append(quoted, "'"+string(s)+"'")
	}
	return strings.Join(quoted, ", ")
}

func scanHistory(rows *sql.Rows) ([]systemDomain.HistoryEntry, error) {
	defer func() { _ = rows.Close() }()

	entries := make([]systemDomain.HistoryEntry, 0)
	for rows.Next() {
		var entry systemDomain.HistoryEntry
		var state string
		if err := rows.Scan(&state, &entry.ReportDate); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan history entry")
		}
		entry.State = systemDomain.State(state)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate system history")
	}
	return entries, nil
}

// PostgreSQLSystemRepository implements system persistence for PostgreSQL databases.
type PostgreSQLSystemRepository struct {
	db *sql.DB
}

// GetByInventoryID retrieves a system of the organization by inventory id.
func (p *PostgreSQLSystemRepository) GetByInventoryID(
	ctx context.Context,
	orgID string,
	inventoryID uuid.UUID,
) (*systemDomain.System, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT s.id, s.inventory_id, s.org_id, s.display_name, s.operating_system, s.state,
			  s.report_date, s.created_at, r.rating
			  FROM systems s
			  LEFT JOIN ratings r ON r.system_id = s.id
			  WHERE s.org_id = $1 AND s.inventory_id = $2`

	var system systemDomain.System
	var state string
	var rating sql.NullInt16
	err := querier.QueryRowContext(ctx, query, orgID, inventoryID).Scan(
		&system.ID,
		&system.InventoryID,
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
	system.State = systemDomain.State(state)
	system.Rating = ratingFromNull(rating)

	return &system, nil
}

// Stats counts the systems of the organization.
func (p *PostgreSQLSystemRepository) Stats(ctx context.Context, orgID string) (*systemDomain.Stats, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + statsColumns + ` FROM systems WHERE org_id = $1`

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
func (p *PostgreSQLSystemRepository) UpsertRating(ctx context.Context, rating *systemDomain.SystemRating) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO ratings (system_id, rating, rated_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $4)
			  ON CONFLICT (system_id) DO UPDATE
			  SET rating = EXCLUDED.rating, rated_by = EXCLUDED.rated_by, updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(ctx, query, rating.SystemID, int16(rating.Rating), rating.RatedBy, rating.RatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert rating")
	}
	return nil
}

// ListHistory returns the past reports of a system, newest first.
func (p *PostgreSQLSystemRepository) ListHistory(
	ctx context.Context,
	systemID int64,
) ([]systemDomain.HistoryEntry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT state, report_date FROM performance_history
			  WHERE system_id = $1
			  ORDER BY report_date DESC`

	rows, err := querier.QueryContext(ctx, query, systemID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list system history")
	}
	return scanHistory(rows)
}

// NewPostgreSQLSystemRepository creates a new PostgreSQL System repository.
func NewPostgreSQLSystemRepository(db *sql.DB) *PostgreSQLSystemRepository {
	return &PostgreSQLSystemRepository{db: db}
}
