// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/json"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	systemDomain "github.com/allisson/ros/internal/system/domain"
	customValidation "github.com/allisson/ros/internal/validation"
)

// GetSystemRequest holds the path parameters of a system lookup.
type GetSystemRequest struct {
	InventoryID string `json:"inventory_id"`
}

// Validate checks the inventory id is a canonical UUID.
func (r *GetSystemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.InventoryID,
			validation.Required,
			customValidation.NoWhitespace,
			customValidation.InventoryID,
		),
	)
}

// ParsedInventoryID returns the inventory id. Call Validate first.
func (r *GetSystemRequest) ParsedInventoryID() uuid.UUID {
	return uuid.MustParse(r.InventoryID)
}

// RateSystemRequest is the body of POST /rating.
// Rating accepts a JSON number or a numeric string; anything else fails to decode.
type RateSystemRequest struct {
	InventoryID string      `json:"inventory_id"`
	Rating      json.Number `json:"rating"`
}

var ratingChoice = validation.By(func(value interface{}) error {
	n, _ := value.(json.Number)
	v, err := n.Int64()
	if err != nil || !systemDomain.Rating(v).Valid() {
		return validation.NewError("validation_rating_choice", "must be one of -1, 0, 1")
	}
	return nil
})

// Validate checks both fields are present and the rating is an accepted choice.
// The inventory id format is not checked here: an id that is not a UUID names no system.
func (r *RateSystemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.InventoryID, validation.Required, customValidation.NoWhitespace),
		validation.Field(&r.Rating, validation.Required, ratingChoice),
	)
}

// LookupInventoryID parses the inventory id, returning systemDomain.ErrSystemNotFound
// when it is not a canonical UUID.
func (r *RateSystemRequest) LookupInventoryID() (uuid.UUID, error) {
	if err := customValidation.InventoryID.Validate(r.InventoryID); err != nil {
		return uuid.Nil, systemDomain.ErrSystemNotFound
	}
	return uuid.MustParse(r.InventoryID), nil
}

// ParsedRating returns the rating. Call Validate first.
func (r *RateSystemRequest) ParsedRating() systemDomain.Rating {
	v, _ := r.Rating.Int64()
	return systemDomain.Rating(v)
}
