package domain

import (
	"github.com/allisson/ros/internal/errors"
)

var (
	// ErrSystemNotFound means no system with the inventory id exists in the caller's organization.
	ErrSystemNotFound = errors.Wrap(errors.ErrNotFound, "system not found")

	// ErrInvalidRating means the rating is not -1, 0 or 1.
	ErrInvalidRating = errors.Wrap(errors.ErrInvalidInput, "rating must be one of -1, 0, 1")
)
