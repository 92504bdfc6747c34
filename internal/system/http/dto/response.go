package dto

import (
	"time"

	"github.com/google/uuid"

	systemDomain "github.com/allisson/ros/internal/system/domain"
)

// SystemResponse represents a system in API responses.
type SystemResponse struct {
	InventoryID string     `json:"inventory_id"`
	DisplayName string     `json:"display_name"`
	OS          *string    `json:"os"`
	State       string     `json:"state"`
	ReportDate  *time.Time `json:"report_date"`
	Rating      *int       `json:"rating"`
}

// RatingResponse is returned after a system is rated.
type RatingResponse struct {
	InventoryID string `json:"inventory_id"`
	Rating      int    `json:"rating"`
}

// HistoryEntryResponse is one past report of a system.
type HistoryEntryResponse struct {
	State      string    `json:"state"`
	ReportDate time.Time `json:"report_date"`
}

// MetaResponse carries list metadata.
type MetaResponse struct {
	Count int `json:"count"`
}

// HistoryResponse lists the past reports of a system.
type HistoryResponse struct {
	InventoryID string                 `json:"inventory_id"`
	Meta        MetaResponse           `json:"meta"`
	Data        []HistoryEntryResponse `json:"data"`
}

// SystemsStatsResponse is the nested summary of IsConfiguredResponse.
type SystemsStatsResponse struct {
	WithSuggestions int `json:"with_suggestions"`
	WaitingForData  int `json:"waiting_for_data"`
}

// IsConfiguredResponse tells the UI whether the organization has any reporting systems.
type IsConfiguredResponse struct {
	Count        int                  `json:"count"`
	SystemsStats SystemsStatsResponse `json:"systems_stats"`
}

// StatusResponse is returned by the liveness endpoints of the API.
type StatusResponse struct {
	Status string `json:"status"`
}

// MapSystemToResponse converts a domain system to an API response.
func MapSystemToResponse(system *systemDomain.System) SystemResponse {
	return SystemResponse{
		InventoryID: system.InventoryID.String(),
		DisplayName: system.DisplayName,
		OS:          system.OperatingSystem,
		State:       string(system.State),
		ReportDate:  system.ReportDate,
		Rating:      ratingValue(system.Rating),
	}
}

func ratingValue(r *systemDomain.Rating) *int {
	if r == nil {
		return nil
	}
	v := int(*r)
	return &v
}

// MapRatingToResponse converts a stored rating to an API response.
func MapRatingToResponse(rating *systemDomain.SystemRating) RatingResponse {
	return RatingResponse{
		InventoryID: rating.InventoryID.String(),
		Rating:      int(rating.Rating),
	}
}

// MapHistoryToResponse converts the history of a system to an API response.
func MapHistoryToResponse(inventoryID uuid.UUID, entries []systemDomain.HistoryEntry) HistoryResponse {
	data := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		data = append(data, HistoryEntryResponse{
			State:      string(entry.State),
			ReportDate: entry.ReportDate,
		})
	}
	return HistoryResponse{
		InventoryID: inventoryID.String(),
		Meta:        MetaResponse{Count: len(data)},
		Data:        data,
	}
}

// MapStatsToResponse converts domain stats to an API response.
func MapStatsToResponse(stats *systemDomain.Stats) IsConfiguredResponse {
	return IsConfiguredResponse{
		Count: stats.Count,
		SystemsStats: SystemsStatsResponse{
			WithSuggestions: stats.WithSuggestions,
			WaitingForData:  stats.WaitingForData,
		},
	}
}
