package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Rating is a user's verdict on the suggestions shown for a system.
type Rating int

const (
	RatingNegative Rating = -1
	RatingNeutral  Rating = 0
	RatingPositive Rating = 1
)

// Valid reports whether r is one of the accepted choices.
func (r Rating) Valid() bool {
	switch r {
	case RatingNegative, RatingNeutral, RatingPositive:
		return true
	}
	return false
}

func (r Rating) String() string {
	return strconv.Itoa(int(r))
}

// SystemRating is the rating stored for a system. There is at most one per system;
// rating again replaces it.
type SystemRating struct {
	SystemID    int64
	InventoryID uuid.UUID
	Rating      Rating
	RatedBy     string
	RatedAt     time.Time
}

// HistoryEntry is one past report for a system.
type HistoryEntry struct {
	State      State
	ReportDate time.Time
}
