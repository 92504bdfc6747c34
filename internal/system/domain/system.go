// Package domain defines the read model of monitored hosts and their report state.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// State is the latest optimization verdict for a system.
type State string

const (
	StateUndersized     State = "Undersized"
	StateOversized      State = "Oversized"
	StateUnderPressure  State = "Under pressure"
	StateIdling         State = "Idling"
	StateOptimized      State = "Optimized"
	StateWaitingForData State = "Waiting for data"
)

// SuggestionStates are the states that come with at least one suggestion.
var SuggestionStates = []State{StateUndersized, StateOversized, StateUnderPressure, StateIdling}

// HasSuggestions reports whether a system in state s has suggestions to show.
func (s State) HasSuggestions() bool {
	for _, candidate := range SuggestionStates {
		if s == candidate {
			return true
		}
	}
	return false
}

// System is a monitored host belonging to an organization.
type System struct {
	ID              int64
	InventoryID     uuid.UUID
	OrgID           string
	DisplayName     string
	OperatingSystem *string
	State           State
	ReportDate      *time.Time
	CreatedAt       time.Time
	// Rating is nil until someone in the organization rates the system.
	Rating *Rating
}

// Stats summarizes the systems of an organization.
type Stats struct {
	Count           int
	WithSuggestions int
	WaitingForData  int
}
